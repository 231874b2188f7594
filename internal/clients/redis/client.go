package redis

import (
	"context"
	"fmt"
	"mockly-server/internal/config"
	"mockly-server/internal/observability"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps the Redis client with observability
type Client struct {
	client *redis.Client
	logger *observability.Logger
}

// NewClient creates a new Redis client. A disabled config yields a nil *Client, which is safe to use.
func NewClient(cfg config.RedisConfig, logger *observability.Logger) (*Client, error) {
	if !cfg.Enabled {
		logger.Info(context.Background(), "Redis is disabled, skipping client initialization")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "host", Value: cfg.Host},
		observability.Field{Key: "port", Value: cfg.Port},
		observability.Field{Key: "db", Value: cfg.DB},
	)
	logger.Info(ctx, "successfully connected to Redis")

	return Wrap(client, logger), nil
}

// Wrap adopts an existing go-redis client.
func Wrap(client *redis.Client, logger *observability.Logger) *Client {
	return &Client{client: client, logger: logger}
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	if c == nil {
		return nil
	}
	return c.client
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Ping checks connectivity
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("Redis client not initialized")
	}
	return c.client.Ping(ctx).Err()
}

// IncrWithExpiry increments key and sets its expiry when the increment created it.
// It returns the new count and the key's remaining time to live.
func (c *Client) IncrWithExpiry(ctx context.Context, key string, expiration time.Duration) (int64, time.Duration, error) {
	if c == nil || c.client == nil {
		return 0, 0, fmt.Errorf("Redis client not initialized")
	}

	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to increment %s: %w", key, err)
	}
	if count == 1 {
		if err := c.client.Expire(ctx, key, expiration).Err(); err != nil {
			return count, 0, fmt.Errorf("failed to set expiry on %s: %w", key, err)
		}
		return count, expiration, nil
	}

	ttl, err := c.client.TTL(ctx, key).Result()
	if err != nil {
		return count, 0, fmt.Errorf("failed to read ttl of %s: %w", key, err)
	}
	// a key that lost its expiry would otherwise block forever
	if ttl < 0 {
		if err := c.client.Expire(ctx, key, expiration).Err(); err != nil {
			return count, 0, fmt.Errorf("failed to set expiry on %s: %w", key, err)
		}
		ttl = expiration
	}
	return count, ttl, nil
}

// IsEnabled returns whether Redis is enabled
func (c *Client) IsEnabled() bool {
	return c != nil && c.client != nil
}
