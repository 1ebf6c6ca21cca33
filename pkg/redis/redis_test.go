package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, config *Config) (*Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	if config == nil {
		config = NewRedisConfig()
	}
	client := NewClientFromExisting(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), config)
	return client, mr
}

func TestCacheRoundTrip(t *testing.T) {
	client, _ := newTestClient(t, nil)
	cache := NewCache(client, NewCacheOptions().WithCacheName("weather"))
	ctx := context.Background()

	type payload struct {
		Value string `json:"value"`
	}

	require.NoError(t, cache.Set(ctx, "key", payload{Value: "cached"}))

	var out payload
	require.NoError(t, cache.Get(ctx, "key", &out))
	assert.Equal(t, "cached", out.Value)
}

func TestCacheMiss(t *testing.T) {
	client, _ := newTestClient(t, nil)
	cache := NewCache(client, NewCacheOptions())

	var out string
	err := cache.Get(context.Background(), "absent", &out)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCacheNamespacesKeys(t *testing.T) {
	client, mr := newTestClient(t, nil)
	cache := NewCache(client, NewCacheOptions().WithCacheName("weather"))

	require.NoError(t, cache.Set(context.Background(), "lima", "ok"))
	assert.True(t, mr.Exists("weather::lima"))
}

func TestCacheUsesNamedTTL(t *testing.T) {
	config := NewRedisConfig().WithCacheTTL("weather", 30*time.Minute)
	client, mr := newTestClient(t, config)
	cache := NewCache(client, NewCacheOptions().WithCacheName("weather"))

	require.NoError(t, cache.Set(context.Background(), "lima", "ok"))
	assert.Equal(t, 30*time.Minute, mr.TTL("weather::lima"))
}

func TestCacheExpires(t *testing.T) {
	client, mr := newTestClient(t, nil)
	cache := NewCache(client, NewCacheOptions().WithCacheName("weather"))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "lima", "ok"))
	mr.FastForward(2 * time.Hour)

	var out string
	assert.ErrorIs(t, cache.Get(ctx, "lima", &out), ErrCacheMiss)
}

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	client, _ := newTestClient(t, nil)
	limiter := NewRateLimiter(client, &RateLimiterOptions{
		Limit:     3,
		Window:    time.Minute,
		Namespace: "test-limit",
	})
	ctx := context.Background()

	for i := int64(0); i < 3; i++ {
		result, err := limiter.Allow(ctx, "client-1")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 2-i, result.Remaining)
	}

	result, err := limiter.Allow(ctx, "client-1")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Positive(t, result.RetryIn)
}

func TestRateLimiterIsolatesKeys(t *testing.T) {
	client, _ := newTestClient(t, nil)
	limiter := NewRateLimiter(client, &RateLimiterOptions{
		Limit:     1,
		Window:    time.Minute,
		Namespace: "test-limit",
	})
	ctx := context.Background()

	result, err := limiter.Allow(ctx, "client-1")
	require.NoError(t, err)
	require.True(t, result.Allowed)

	result, err = limiter.Allow(ctx, "client-1")
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	result, err = limiter.Allow(ctx, "client-2")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestRateLimiterWindowResets(t *testing.T) {
	client, mr := newTestClient(t, nil)
	limiter := NewRateLimiter(client, &RateLimiterOptions{
		Limit:     1,
		Window:    time.Minute,
		Namespace: "test-limit",
	})
	ctx := context.Background()

	result, err := limiter.Allow(ctx, "client-1")
	require.NoError(t, err)
	require.True(t, result.Allowed)

	result, err = limiter.Allow(ctx, "client-1")
	require.NoError(t, err)
	require.False(t, result.Allowed)

	mr.FastForward(2 * time.Minute)

	result, err = limiter.Allow(ctx, "client-1")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestLockIsExclusive(t *testing.T) {
	client, _ := newTestClient(t, nil)
	ctx := context.Background()

	opts := NewLockOptions().WithMaxRetries(0)
	first := NewLock(client, "refresh", opts)
	second := NewLock(client, "refresh", NewLockOptions().WithMaxRetries(0))

	require.NoError(t, first.Lock(ctx))
	assert.Error(t, second.Lock(ctx))

	require.NoError(t, first.Unlock(ctx))
	assert.NoError(t, second.Lock(ctx))
}

func TestLockUnlockRequiresOwnership(t *testing.T) {
	client, _ := newTestClient(t, nil)
	ctx := context.Background()

	holder := NewLock(client, "refresh", NewLockOptions().WithMaxRetries(0))
	intruder := NewLock(client, "refresh", NewLockOptions().WithMaxRetries(0))

	require.NoError(t, holder.Lock(ctx))
	assert.Error(t, intruder.Unlock(ctx))
	assert.NoError(t, holder.Unlock(ctx))
}

func TestLockNamespace(t *testing.T) {
	client, mr := newTestClient(t, nil)
	ctx := context.Background()

	lock := NewLock(client, "refresh", NewLockOptions().WithLockNamespace("weather_schedules"))
	require.NoError(t, lock.Lock(ctx))
	assert.True(t, mr.Exists("weather_schedules::refresh"))
}
