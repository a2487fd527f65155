package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGet(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, s.Set(ctx, "k1", payload{Name: "widget", Count: 3}, 0))

	var got payload
	found, err := s.Get(ctx, "k1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "widget", Count: 3}, got)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()

	var got string
	found, err := s.Get(context.Background(), "nope", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, got)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v", 0))
	require.NoError(t, s.Delete(ctx, "k"))

	exists, err := s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting again is fine.
	require.NoError(t, s.Delete(ctx, "k"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "short", "v", 20*time.Millisecond))

	exists, err := s.Exists(ctx, "short")
	require.NoError(t, err)
	assert.True(t, exists)

	time.Sleep(50 * time.Millisecond)

	var got string
	found, err := s.Get(ctx, "short", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreExpire(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	ok, err := s.Expire(ctx, "missing", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", "v", 0))
	ok, err = s.Expire(ctx, "k", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := s.TTL(ctx, "k")
	require.NoError(t, err)
	assert.Greater(t, ttl, int64(3500))
}

func TestMemoryStoreTTL(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	ttl, err := s.TTL(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), ttl)

	require.NoError(t, s.Set(ctx, "forever", "v", 0))
	ttl, err = s.TTL(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), ttl)

	require.NoError(t, s.Set(ctx, "timed", "v", time.Hour))
	ttl, err = s.TTL(ctx, "timed")
	require.NoError(t, err)
	assert.Greater(t, ttl, int64(3500))
}

func TestMemoryStoreIncrementCounter(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	const limit = 5
	for i := int64(1); i <= limit; i++ {
		res := s.IncrementCounter(ctx, "rl", time.Minute, limit)
		assert.Equal(t, i, res.Count)
		assert.Equal(t, limit-i, res.Remaining)
		assert.False(t, res.Limited, "call %d should not be limited", i)
	}

	res := s.IncrementCounter(ctx, "rl", time.Minute, limit)
	assert.True(t, res.Limited)
	assert.Equal(t, int64(limit+1), res.Count)
	assert.Equal(t, int64(0), res.Remaining)
}

func TestMemoryStoreIncrementCounterWindowReset(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s.IncrementCounter(ctx, "rl", 20*time.Millisecond, 2)
	}
	time.Sleep(40 * time.Millisecond)

	res := s.IncrementCounter(ctx, "rl", 20*time.Millisecond, 2)
	assert.Equal(t, int64(1), res.Count)
	assert.False(t, res.Limited)
}
