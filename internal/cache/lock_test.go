package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// fakeRedis keeps keys in memory and evaluates the release script by hand.
type fakeRedis struct {
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
	renews int
	setErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return redis.NewBoolResult(false, f.setErr)
	}
	if _, exists := f.values[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	f.values[key] = value.(string)
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) compareAndDelete(keys []string, args []any) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.values[keys[0]] != args[0].(string) {
		return redis.NewCmdResult(int64(0), nil)
	}
	delete(f.values, keys[0])
	return redis.NewCmdResult(int64(1), nil)
}

func (f *fakeRedis) compareAndExpire(keys []string, args []any) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.values[keys[0]] != args[0].(string) {
		return redis.NewCmdResult(int64(0), nil)
	}
	f.renews++
	f.ttls[keys[0]] = time.Duration(args[1].(int64)) * time.Millisecond
	return redis.NewCmdResult(int64(1), nil)
}

func (f *fakeRedis) Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	return f.EvalSha(ctx, redis.NewScript(script).Hash(), keys, args...)
}

func (f *fakeRedis) EvalSha(_ context.Context, sha string, keys []string, args ...any) *redis.Cmd {
	if sha == renewScript.Hash() {
		return f.compareAndExpire(keys, args)
	}
	return f.compareAndDelete(keys, args)
}

func (f *fakeRedis) renewCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.renews
}

func (f *fakeRedis) EvalRO(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	return f.Eval(ctx, script, keys, args...)
}

func (f *fakeRedis) EvalShaRO(ctx context.Context, sha string, keys []string, args ...any) *redis.Cmd {
	return f.EvalSha(ctx, sha, keys, args...)
}

func (f *fakeRedis) ScriptExists(_ context.Context, hashes ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult(make([]bool, len(hashes)), nil)
}

func (f *fakeRedis) ScriptLoad(context.Context, string) *redis.StringCmd {
	return redis.NewStringResult("", nil)
}

func TestRedisLockIsExclusive(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	first := NewRedisLock(client, "sweep", time.Minute)
	second := NewRedisLock(client, "sweep", time.Minute)

	unlock, ok, err := first.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, time.Minute, client.ttls["sweep"])

	_, ok, err = second.TryLock(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, unlock(ctx))

	_, ok, err = second.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRedisLockReleaseKeepsForeignToken(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	lock := NewRedisLock(client, "sweep", time.Second)

	unlock, ok, err := lock.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// the lease expired and another replica took over
	client.mu.Lock()
	client.values["sweep"] = "other-holder"
	client.mu.Unlock()

	require.NoError(t, unlock(ctx))
	client.mu.Lock()
	defer client.mu.Unlock()
	require.Equal(t, "other-holder", client.values["sweep"])
}

func TestRedisLockRenewsWhileHeld(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	lock := NewRedisLock(client, "sweep", 30*time.Millisecond)

	unlock, ok, err := lock.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// a sweep outliving the ttl keeps its lease
	require.Eventually(t, func() bool { return client.renewCount() >= 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, unlock(ctx))
	renewed := client.renewCount()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, renewed, client.renewCount())

	client.mu.Lock()
	_, held := client.values["sweep"]
	client.mu.Unlock()
	require.False(t, held)
}

func TestRedisLockStopsRenewingLostLease(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	lock := NewRedisLock(client, "sweep", 90*time.Millisecond)

	unlock, ok, err := lock.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	client.mu.Lock()
	client.values["sweep"] = "other-holder"
	client.mu.Unlock()

	time.Sleep(100 * time.Millisecond)
	require.Zero(t, client.renewCount())
	require.NoError(t, unlock(ctx))

	client.mu.Lock()
	defer client.mu.Unlock()
	require.Equal(t, "other-holder", client.values["sweep"])
}

func TestRedisLockPropagatesErrors(t *testing.T) {
	client := newFakeRedis()
	client.setErr = errors.New("connection refused")

	_, ok, err := NewRedisLock(client, "sweep", time.Second).TryLock(context.Background())
	require.Error(t, err)
	require.False(t, ok)
}

func TestLocalLock(t *testing.T) {
	ctx := context.Background()
	var lock LocalLock

	unlock, ok, err := lock.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, _ = lock.TryLock(ctx)
	require.False(t, ok)

	require.NoError(t, unlock(ctx))
	_, ok, _ = lock.TryLock(ctx)
	require.True(t, ok)
}
