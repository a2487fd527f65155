package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/vividmart/storefront/cache"
	apperrors "github.com/vividmart/storefront/errors"
)

// Store implements cache.KeyValueStore on a Redis client.
type Store struct {
	client *redis.Client
	policy cache.ErrorPolicy
}

// Option configures a Store.
type Option func(*Store)

// WithErrorPolicy overrides the read-failure policy. The default is
// cache.Degrade: read failures report a cache miss.
func WithErrorPolicy(p cache.ErrorPolicy) Option {
	return func(s *Store) { s.policy = p }
}

// NewStore wraps an existing Redis client.
func NewStore(client *redis.Client, opts ...Option) *Store {
	s := &Store{client: client, policy: cache.Degrade}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Set implements cache.KeyValueStore.Set. Write failures always propagate.
func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for %q: %w", key, err)
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %q: %w", apperrors.ErrStoreUnavailable, key, err)
	}
	return nil
}

// Get implements cache.KeyValueStore.Get. An undecodable payload counts as a
// miss so a stale or corrupt entry never poisons the caller.
func (s *Store) Get(ctx context.Context, key string, dest any) (bool, error) {
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		if s.policy == cache.Fail {
			return false, fmt.Errorf("%w: get %q: %w", apperrors.ErrStoreUnavailable, key, err)
		}
		log.Warn().Err(err).Str("key", key).Msg("redis get failed, degrading to miss")
		return false, nil
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("undecodable cache payload, treating as miss")
		return false, nil
	}
	return true, nil
}

// Delete implements cache.KeyValueStore.Delete.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: del %q: %w", apperrors.ErrStoreUnavailable, key, err)
	}
	return nil
}

// Exists implements cache.KeyValueStore.Exists.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		if s.policy == cache.Fail {
			return false, fmt.Errorf("%w: exists %q: %w", apperrors.ErrStoreUnavailable, key, err)
		}
		return false, nil
	}
	return n == 1, nil
}

// Expire implements cache.KeyValueStore.Expire.
func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.Expire(ctx, key, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: expire %q: %w", apperrors.ErrStoreUnavailable, key, err)
	}
	return ok, nil
}

// TTL implements cache.KeyValueStore.TTL. Redis reports -2 for an absent key
// and -1 for no expiry; both collapse to -1 here.
func (s *Store) TTL(ctx context.Context, key string) (int64, error) {
	d, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		if s.policy == cache.Fail {
			return -1, fmt.Errorf("%w: ttl %q: %w", apperrors.ErrStoreUnavailable, key, err)
		}
		return -1, nil
	}
	if d < 0 {
		return -1, nil
	}
	return int64(d.Seconds()), nil
}

// IncrementCounter implements cache.KeyValueStore.IncrementCounter using
// INCR plus EXPIRE on the first hit of a window.
func (s *Store) IncrementCounter(ctx context.Context, key string, window time.Duration, limit int64) cache.RateLimitResult {
	permissive := cache.RateLimitResult{
		Count:        0,
		Remaining:    limit,
		ResetSeconds: int64(window.Seconds()),
		Limited:      false,
	}

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("rate limit increment failed, allowing request")
		return permissive
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to arm rate limit window")
		}
	}

	reset, _ := s.TTL(ctx, key)
	if reset < 0 {
		reset = int64(window.Seconds())
	}
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return cache.RateLimitResult{
		Count:        count,
		Remaining:    remaining,
		ResetSeconds: reset,
		Limited:      count > limit,
	}
}

// Ping implements cache.KeyValueStore.Ping.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: ping: %w", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

// Close implements cache.KeyValueStore.Close.
func (s *Store) Close() error {
	return s.client.Close()
}

var _ cache.KeyValueStore = (*Store)(nil)
