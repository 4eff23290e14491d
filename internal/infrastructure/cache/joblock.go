package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"locates/internal/shared/logger"
)

// releaseScript deletes the lock only while it still holds our token, so a
// lock that expired and was taken by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisJobLocker is a cross-instance mutex built on SET NX with a TTL.
type RedisJobLocker struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisJobLocker(client *redis.Client, logger logger.Interface) *RedisJobLocker {
	return &RedisJobLocker{client: client, logger: logger}
}

func (l *RedisJobLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	unlock := func() {
		// The caller's context may already be cancelled.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
			l.logger.Warnw("failed to release job lock", "key", key, "error", err)
		}
	}
	return unlock, true, nil
}

// LocalJobLocker serializes jobs within one process. It is used when Redis
// is disabled.
type LocalJobLocker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	nowFn func() time.Time
}

func NewLocalJobLocker() *LocalJobLocker {
	return &LocalJobLocker{
		held:  make(map[string]time.Time),
		nowFn: time.Now,
	}
}

func (l *LocalJobLocker) TryLock(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFn()
	if expiry, ok := l.held[key]; ok && now.Before(expiry) {
		return nil, false, nil
	}
	expiry := now.Add(ttl)
	l.held[key] = expiry

	var once sync.Once
	unlock := func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			// A later holder may have taken the key after our TTL ran out.
			if l.held[key].Equal(expiry) {
				delete(l.held, key)
			}
		})
	}
	return unlock, true, nil
}
