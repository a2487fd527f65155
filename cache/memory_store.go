package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryStore implements KeyValueStore in process memory using ttlcache.
// It backs single-node development mode and substitutes for Redis in tests.
type MemoryStore struct {
	cache *ttlcache.Cache[string, []byte]

	mu       sync.Mutex
	counters map[string]*memoryCounter
}

type memoryCounter struct {
	count   int64
	resetAt time.Time
}

// NewMemoryStore creates an in-memory store with automatic expiry cleanup.
func NewMemoryStore() *MemoryStore {
	c := ttlcache.New(
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	go c.Start()

	return &MemoryStore{
		cache:    c,
		counters: make(map[string]*memoryCounter),
	}
}

// Set implements KeyValueStore.Set.
func (s *MemoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for %q: %w", key, err)
	}
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	s.cache.Set(key, payload, ttl)
	return nil
}

// Get implements KeyValueStore.Get.
func (s *MemoryStore) Get(_ context.Context, key string, dest any) (bool, error) {
	item := s.cache.Get(key)
	if item == nil || item.IsExpired() {
		return false, nil
	}
	if err := json.Unmarshal(item.Value(), dest); err != nil {
		return false, nil
	}
	return true, nil
}

// Delete implements KeyValueStore.Delete.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}

// Exists implements KeyValueStore.Exists.
func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	item := s.cache.Get(key)
	return item != nil && !item.IsExpired(), nil
}

// Expire implements KeyValueStore.Expire by re-inserting the current value
// with the new TTL.
func (s *MemoryStore) Expire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	item := s.cache.Get(key)
	if item == nil || item.IsExpired() {
		return false, nil
	}
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	s.cache.Set(key, item.Value(), ttl)
	return true, nil
}

// TTL implements KeyValueStore.TTL.
func (s *MemoryStore) TTL(_ context.Context, key string) (int64, error) {
	item := s.cache.Get(key)
	if item == nil || item.IsExpired() {
		return -1, nil
	}
	exp := item.ExpiresAt()
	if exp.IsZero() {
		return -1, nil
	}
	remaining := time.Until(exp)
	if remaining < 0 {
		return -1, nil
	}
	return int64(remaining.Seconds()), nil
}

// IncrementCounter implements KeyValueStore.IncrementCounter.
func (s *MemoryStore) IncrementCounter(_ context.Context, key string, window time.Duration, limit int64) RateLimitResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	ctr, ok := s.counters[key]
	if !ok || now.After(ctr.resetAt) {
		ctr = &memoryCounter{resetAt: now.Add(window)}
		s.counters[key] = ctr
	}
	ctr.count++

	remaining := limit - ctr.count
	if remaining < 0 {
		remaining = 0
	}
	return RateLimitResult{
		Count:        ctr.count,
		Remaining:    remaining,
		ResetSeconds: int64(time.Until(ctr.resetAt).Seconds()),
		Limited:      ctr.count > limit,
	}
}

// Ping implements KeyValueStore.Ping. Memory is always reachable.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	s.cache.Stop()
	return nil
}

var _ KeyValueStore = (*MemoryStore)(nil)
