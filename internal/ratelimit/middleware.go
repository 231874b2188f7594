package ratelimit

import (
	"math"
	"mockly-server/internal/apierrors"
	"mockly-server/internal/observability"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// KeyFunc derives the rate limit key from a request. An empty key skips limiting.
type KeyFunc func(c *gin.Context) string

// Middleware creates a Gin middleware for rate limiting
func (s *Service) Middleware(keyFn KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)
		if key == "" {
			c.Next()
			return
		}

		result := s.Allow(c.Request.Context(), key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			s.logger.Warn(observability.WithFields(c.Request.Context(),
				observability.Field{Key: "rate_limit_scope", Value: s.scope},
				observability.Field{Key: "retry_after_seconds", Value: retryAfter},
			), "rate limit exceeded")

			apierrors.RespondWithError(c, apierrors.TooManyRequests("Rate limit exceeded. Please try again later."))
			c.Abort()
			return
		}

		c.Next()
	}
}

// ClientIPKey limits by the caller's address.
func ClientIPKey(c *gin.Context) string {
	return observability.GetRealClientIP(c)
}

// JSONFieldKey limits by a string field of the JSON body, falling back to the caller's address.
// The body is cached, so handlers behind it must bind with ShouldBindBodyWith.
func JSONFieldKey(field string) KeyFunc {
	return func(c *gin.Context) string {
		var body map[string]any
		if err := c.ShouldBindBodyWith(&body, binding.JSON); err == nil {
			if v, ok := body[field].(string); ok && strings.TrimSpace(v) != "" {
				return field + ":" + strings.TrimSpace(v)
			}
		}
		return "ip:" + ClientIPKey(c)
	}
}
