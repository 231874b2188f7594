package ratelimit

import (
	"context"
	"fmt"
	"mockly-server/internal/clients/redis"
	"mockly-server/internal/observability"
	"time"
)

// RateLimitResult represents the result of a rate limit check
type RateLimitResult struct {
	Allowed    bool          `json:"allowed"`
	Limit      int           `json:"limit"`
	Remaining  int           `json:"remaining"`
	RetryAfter time.Duration `json:"retry_after,omitempty"`
}

// Service is a fixed-window limiter backed by Redis.
// A nil or disabled Redis client allows every request, and so does any Redis failure.
type Service struct {
	redis  *redis.Client
	scope  string
	limit  int
	window time.Duration
	logger *observability.Logger
}

// NewService creates a limiter allowing limit hits per window for each key within scope.
func NewService(redis *redis.Client, scope string, limit int, window time.Duration, logger *observability.Logger) *Service {
	return &Service{
		redis:  redis,
		scope:  scope,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

func (s *Service) Allow(ctx context.Context, key string) RateLimitResult {
	allowAll := RateLimitResult{Allowed: true, Limit: s.limit, Remaining: s.limit}
	if !s.redis.IsEnabled() || s.limit <= 0 {
		return allowAll
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "rate_limit_scope", Value: s.scope},
		observability.Field{Key: "rate_limit_key", Value: key},
	)

	count, ttl, err := s.redis.IncrWithExpiry(ctx, s.redisKey(key), s.window)
	if err != nil {
		s.logger.Error(ctx, "rate limit check failed, allowing request", err)
		return allowAll
	}

	remaining := s.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	if int(count) > s.limit {
		return RateLimitResult{Allowed: false, Limit: s.limit, Remaining: 0, RetryAfter: ttl}
	}
	return RateLimitResult{Allowed: true, Limit: s.limit, Remaining: remaining}
}

func (s *Service) redisKey(key string) string {
	return fmt.Sprintf("ratelimit:%s:%s", s.scope, key)
}
