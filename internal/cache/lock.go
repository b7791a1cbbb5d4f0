package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SweepLock grants at most one holder at a time.
type SweepLock interface {
	// TryLock returns acquired=false without blocking when another holder owns the lock.
	TryLock(ctx context.Context) (unlock func(context.Context) error, acquired bool, err error)
}

type lockClient interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	redis.Scripter
}

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// renewScript extends the lease only while the key still holds our token.
var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLock is a SweepLock shared by every replica pointing at the same Redis.
type RedisLock struct {
	client lockClient
	key    string
	ttl    time.Duration
}

// NewRedisLock creates a lock stored under key. The ttl bounds how long a
// crashed holder blocks others; a live holder renews it every third of the
// ttl until it unlocks, so a sweep may run longer than the ttl.
func NewRedisLock(client lockClient, key string, ttl time.Duration) *RedisLock {
	return &RedisLock{client: client, key: key, ttl: ttl}
}

func (l *RedisLock) TryLock(ctx context.Context) (func(context.Context) error, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis lock %s: %w", l.key, err)
	}
	if !ok {
		return nil, false, nil
	}

	renewCtx, stop := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.keepAlive(renewCtx, token)
	}()

	unlock := func(ctx context.Context) error {
		stop()
		<-done
		if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil {
			return fmt.Errorf("redis unlock %s: %w", l.key, err)
		}
		return nil
	}
	return unlock, true, nil
}

func (l *RedisLock) keepAlive(ctx context.Context, token string) {
	interval := l.ttl / 3
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			renewed, err := renewScript.Run(ctx, l.client, []string{l.key}, token, l.ttl.Milliseconds()).Int64()
			if err == nil && renewed == 0 {
				// lease lost to another holder
				return
			}
		}
	}
}

// LocalLock is the single-process SweepLock used when Redis is not configured.
type LocalLock struct {
	mu sync.Mutex
}

func (l *LocalLock) TryLock(context.Context) (func(context.Context) error, bool, error) {
	if !l.mu.TryLock() {
		return nil, false, nil
	}
	return func(context.Context) error {
		l.mu.Unlock()
		return nil
	}, true, nil
}
