// Package locks provides short-lived mutual exclusion keyed by string,
// used to keep at most one swipe per user pair in flight.
package locks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Unlock releases a lock. Releasing an already expired lock is not an error.
type Unlock func(ctx context.Context) error

// RedisLock holds locks as SET NX PX keys so that every server instance
// sees the same in-flight set.
type RedisLock struct {
	client *redis.Client
	prefix string
}

func NewRedisLock(client *redis.Client, prefix string) *RedisLock {
	return &RedisLock{client: client, prefix: prefix}
}

// Only the owner token may delete the key.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (l *RedisLock) TryLock(ctx context.Context, key string, ttl time.Duration) (Unlock, bool, error) {
	token := uuid.NewString()
	fullKey := l.prefix + key
	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil || !ok {
		return nil, false, err
	}
	return func(ctx context.Context) error {
		return releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err()
	}, true, nil
}

// LocalLock is the single-process fallback used when Redis is not configured.
type LocalLock struct {
	mu   sync.Mutex
	held map[string]localEntry
	now  func() time.Time
}

type localEntry struct {
	token     string
	expiresAt time.Time
}

func NewLocalLock() *LocalLock {
	return &LocalLock{held: make(map[string]localEntry), now: time.Now}
}

func (l *LocalLock) TryLock(_ context.Context, key string, ttl time.Duration) (Unlock, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if entry, ok := l.held[key]; ok && now.Before(entry.expiresAt) {
		return nil, false, nil
	}
	token := uuid.NewString()
	l.held[key] = localEntry{token: token, expiresAt: now.Add(ttl)}

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if entry, ok := l.held[key]; ok && entry.token == token {
			delete(l.held, key)
		}
		return nil
	}, true, nil
}
