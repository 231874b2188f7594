package redis

import (
	"context"
	"mockly-server/internal/config"
	"mockly-server/internal/observability"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return Wrap(rdb, observability.NewNopLogger()), mr
}

func TestNewClient_Disabled(t *testing.T) {
	c, err := NewClient(config.RedisConfig{Enabled: false}, observability.NewNopLogger())
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.False(t, c.IsEnabled())
	assert.NoError(t, c.Close())
	assert.Nil(t, c.GetClient())
}

func TestIncrWithExpiry(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	count, ttl, err := c.IncrWithExpiry(ctx, "k", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Hour, ttl)

	mr.FastForward(10 * time.Minute)

	count, ttl, err = c.IncrWithExpiry(ctx, "k", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 50*time.Minute, ttl)

	mr.FastForward(time.Hour)

	count, _, err = c.IncrWithExpiry(ctx, "k", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestIncrWithExpiry_RepairsMissingTTL(t *testing.T) {
	c, mr := newTestClient(t)
	require.NoError(t, mr.Set("k", "5"))

	count, ttl, err := c.IncrWithExpiry(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)
	assert.Equal(t, time.Minute, ttl)
	assert.Equal(t, time.Minute, mr.TTL("k"))
}

func TestIncrWithExpiry_ServerDown(t *testing.T) {
	c, mr := newTestClient(t)
	mr.Close()

	_, _, err := c.IncrWithExpiry(context.Background(), "k", time.Minute)
	assert.Error(t, err)
}
