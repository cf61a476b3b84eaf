package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := NewRedisCacheFromOptions(&redis.Options{Addr: mr.Addr()}, "test")
	t.Cleanup(func() { _ = rc.Close() })
	return rc, mr
}

func TestRedisCache_SetExistsDelete(t *testing.T) {
	rc, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))
	raw, err := mr.Get("test:k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, raw)
	assert.Equal(t, time.Minute, mr.TTL("test:k"))

	found, err := rc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, rc.Delete(ctx, "k"))
	found, err = rc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_CountersAndTTL(t *testing.T) {
	rc, mr := newTestCache(t)
	ctx := context.Background()

	n, err := rc.Increment(ctx, "hits")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = rc.Increment(ctx, "hits")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, rc.Expire(ctx, "hits", time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("test:hits"))

	mr.FastForward(2 * time.Minute)
	exists, err := rc.Exists(ctx, "hits")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_Ping(t *testing.T) {
	rc, _ := newTestCache(t)
	assert.NoError(t, rc.Ping(context.Background()))
	assert.NoError(t, rc.Connect(context.Background()))
}
