package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates an in-memory Redis server for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, redisClient.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = redisClient.Close() })

	return redisClient, mr
}

func TestTokenBucket_Allow(t *testing.T) {
	redisClient, _ := setupTestRedis(t)
	bucket := NewTokenBucket(redisClient, 5, 5)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, err := bucket.Allow(ctx, "a@x.com", ActionLogin)
		require.NoError(t, err)
		require.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := bucket.Allow(ctx, "a@x.com", ActionLogin)
	require.NoError(t, err)
	assert.False(t, allowed, "sixth request must be denied")

	remaining, err := bucket.GetRemaining(ctx, "a@x.com", ActionLogin)
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func TestTokenBucket_SubjectsAndActionsAreIndependent(t *testing.T) {
	redisClient, _ := setupTestRedis(t)
	bucket := NewTokenBucket(redisClient, 1, 1)
	ctx := context.Background()

	allowed, _ := bucket.Allow(ctx, "u1", ActionLikes)
	assert.True(t, allowed)
	allowed, _ = bucket.Allow(ctx, "u1", ActionLikes)
	assert.False(t, allowed)

	allowed, _ = bucket.Allow(ctx, "u2", ActionLikes)
	assert.True(t, allowed)
	allowed, _ = bucket.Allow(ctx, "u1", ActionLogin)
	assert.True(t, allowed)
}

func TestTokenBucket_Refills(t *testing.T) {
	redisClient, _ := setupTestRedis(t)
	bucket := NewTokenBucket(redisClient, 2, 2)
	ctx := context.Background()

	now := time.Unix(1_700_000_000, 0)
	bucket.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		allowed, err := bucket.Allow(ctx, "u1", ActionLikes)
		require.NoError(t, err)
		require.True(t, allowed)
	}
	allowed, _ := bucket.Allow(ctx, "u1", ActionLikes)
	require.False(t, allowed)

	now = now.Add(30 * time.Second)
	allowed, err := bucket.Allow(ctx, "u1", ActionLikes)
	require.NoError(t, err)
	assert.True(t, allowed, "half a window refills one token")

	now = now.Add(10 * time.Minute)
	remaining, err := bucket.GetRemaining(ctx, "u1", ActionLikes)
	require.NoError(t, err)
	assert.Equal(t, int64(2), remaining, "refill is capped at capacity")
}

func TestTokenBucket_GetRemaining(t *testing.T) {
	redisClient, _ := setupTestRedis(t)
	bucket := NewTokenBucket(redisClient, 10, 10)
	ctx := context.Background()

	remaining, err := bucket.GetRemaining(ctx, "u1", ActionLikes)
	require.NoError(t, err)
	assert.Equal(t, int64(10), remaining)

	for i := 0; i < 3; i++ {
		_, err := bucket.Allow(ctx, "u1", ActionLikes)
		require.NoError(t, err)
	}

	remaining, err = bucket.GetRemaining(ctx, "u1", ActionLikes)
	require.NoError(t, err)
	assert.Equal(t, int64(7), remaining)
	assert.Equal(t, int64(10), bucket.Limit())
}

func TestTokenBucket_Reset(t *testing.T) {
	redisClient, mr := setupTestRedis(t)
	bucket := NewTokenBucket(redisClient, 5, 5)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = bucket.Allow(ctx, "u1", ActionLikes)
	}
	assert.True(t, mr.Exists("rate_limit:u1:likes"))

	require.NoError(t, bucket.Reset(ctx, "u1", ActionLikes))

	remaining, err := bucket.GetRemaining(ctx, "u1", ActionLikes)
	require.NoError(t, err)
	assert.Equal(t, int64(5), remaining)
}

func TestTokenBucket_RedisDown(t *testing.T) {
	redisClient, mr := setupTestRedis(t)
	bucket := NewTokenBucket(redisClient, 5, 5)
	mr.Close()

	_, err := bucket.Allow(context.Background(), "u1", ActionLikes)
	assert.Error(t, err)
}
