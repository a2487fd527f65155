package cache

import (
	"context"
	"time"
)

// ErrorPolicy controls how read operations behave when the backing store is
// unreachable. Degrade turns failures into cache misses so callers keep
// serving from the source of truth; Fail surfaces ErrStoreUnavailable.
// Writes always propagate failures regardless of policy.
type ErrorPolicy int

const (
	Degrade ErrorPolicy = iota
	Fail
)

// RateLimitResult reports the outcome of a counter increment within a
// sliding window.
type RateLimitResult struct {
	Count        int64 `json:"count"`
	Remaining    int64 `json:"remaining"`
	ResetSeconds int64 `json:"reset"`
	Limited      bool  `json:"limited"`
}

// KeyValueStore is an expiring key to JSON-value store. Implementations back
// sessions, carts, catalog caches and rate-limit counters.
type KeyValueStore interface {
	// Set serializes value as JSON under key. ttl <= 0 stores without expiry.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Get decodes the stored value into dest and reports whether the key was
	// found. Absent keys and undecodable payloads are misses, not errors.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)
	// Expire refreshes the TTL without rewriting the value. Returns false if
	// the key does not exist.
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// TTL returns the remaining lifetime in whole seconds, or -1 when the key
	// is absent or has no expiry.
	TTL(ctx context.Context, key string) (int64, error)
	// IncrementCounter atomically increments the integer at key. The first
	// hit in a window arms the window TTL. On backend failure the permissive
	// default (Limited=false) is returned so rate limiting never blocks
	// traffic on store outages.
	IncrementCounter(ctx context.Context, key string, window time.Duration, limit int64) RateLimitResult
	// Ping verifies connectivity to the backing store.
	Ping(ctx context.Context) error
	// Close releases the underlying client or background workers.
	Close() error
}
