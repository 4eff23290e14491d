package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locates/internal/shared/logger"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisJobLocker_ExclusiveUntilUnlocked(t *testing.T) {
	client := setupTestRedis(t)
	locker := NewRedisJobLocker(client, logger.NewNopLogger())
	ctx := context.Background()

	unlock, ok, err := locker.TryLock(ctx, "locates:lock:test", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = locker.TryLock(ctx, "locates:lock:test", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	unlock()

	unlock2, ok, err := locker.TryLock(ctx, "locates:lock:test", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	unlock2()
}

func TestRedisJobLocker_UnlockLeavesForeignHolder(t *testing.T) {
	client := setupTestRedis(t)
	locker := NewRedisJobLocker(client, logger.NewNopLogger())
	ctx := context.Background()

	unlock, ok, err := locker.TryLock(ctx, "locates:lock:test", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	// Simulate expiry followed by another instance taking the lock.
	require.NoError(t, client.Set(ctx, "locates:lock:test", "other", time.Minute).Err())
	unlock()

	val, err := client.Get(ctx, "locates:lock:test").Result()
	require.NoError(t, err)
	assert.Equal(t, "other", val)
}

func TestLocalJobLocker(t *testing.T) {
	locker := NewLocalJobLocker()
	now := time.Date(2024, 5, 13, 14, 0, 0, 0, time.UTC)
	locker.nowFn = func() time.Time { return now }
	ctx := context.Background()

	unlock, ok, err := locker.TryLock(ctx, "sweep", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, _ = locker.TryLock(ctx, "sweep", time.Minute)
	assert.False(t, ok)

	_, ok, _ = locker.TryLock(ctx, "sync", time.Minute)
	assert.True(t, ok, "keys are independent")

	unlock()
	unlock()

	_, ok, _ = locker.TryLock(ctx, "sweep", time.Minute)
	assert.True(t, ok)
}

func TestLocalJobLocker_ExpiredLockCanBeTaken(t *testing.T) {
	locker := NewLocalJobLocker()
	now := time.Date(2024, 5, 13, 14, 0, 0, 0, time.UTC)
	locker.nowFn = func() time.Time { return now }
	ctx := context.Background()

	staleUnlock, ok, _ := locker.TryLock(ctx, "sweep", time.Minute)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = locker.TryLock(ctx, "sweep", time.Minute)
	require.True(t, ok)

	// The stale holder must not release the new lock.
	staleUnlock()
	_, ok, _ = locker.TryLock(ctx, "sweep", time.Minute)
	assert.False(t, ok)
}
