package services

import (
	"context"
	"time"

	"github.com/vividmart/storefront/cache"
	"github.com/vividmart/storefront/domain"
)

// Cache key namespaces. These are shared with other consumers of the store
// and must not change.
const (
	refreshTokenKeyPrefix = "refresh_token:"
	sessionKeyPrefix      = "session:"
	cartKeyPrefix         = "cart:"
	productKeyPrefix      = "product:"
	categoriesKey         = "categories:all"
)

// Default lifetimes for registry entries.
const (
	DefaultSessionTTL    = time.Hour
	DefaultCartTTL       = 24 * time.Hour
	DefaultProductTTL    = time.Hour
	DefaultCategoriesTTL = 2 * time.Hour
)

// SessionRegistry tracks the single authoritative refresh token per
// principal plus auxiliary per-principal state: carts, session blobs and
// catalog cache entries.
//
// Rotation is last-write-wins: two concurrent refreshes for one principal
// can both validate against the same stored token, and the later
// StoreRefreshToken wins. The window equals one store round-trip and is an
// accepted trade-off against serializing refreshes per principal.
type SessionRegistry struct {
	store      cache.KeyValueStore
	refreshTTL time.Duration
}

// NewSessionRegistry creates a registry. refreshTTL is the refresh-token
// lifetime and doubles as the stored token's TTL.
func NewSessionRegistry(store cache.KeyValueStore, refreshTTL time.Duration) *SessionRegistry {
	return &SessionRegistry{store: store, refreshTTL: refreshTTL}
}

// StoreRefreshToken records token as the only valid refresh token for the
// principal, overwriting any prior value.
func (r *SessionRegistry) StoreRefreshToken(ctx context.Context, principalID, token string) error {
	return r.store.Set(ctx, refreshTokenKeyPrefix+principalID, token, r.refreshTTL)
}

// GetStoredRefreshToken returns the current refresh token for the principal.
func (r *SessionRegistry) GetStoredRefreshToken(ctx context.Context, principalID string) (string, bool, error) {
	var token string
	found, err := r.store.Get(ctx, refreshTokenKeyPrefix+principalID, &token)
	if err != nil || !found {
		return "", false, err
	}
	return token, true, nil
}

// RemoveRefreshToken invalidates the principal's refresh token. Removing an
// absent token is not an error, so logout is idempotent.
func (r *SessionRegistry) RemoveRefreshToken(ctx context.Context, principalID string) error {
	return r.store.Delete(ctx, refreshTokenKeyPrefix+principalID)
}

// SetCart stores the cart under the user ID or anonymous session key.
func (r *SessionRegistry) SetCart(ctx context.Context, key string, cart *domain.Cart) error {
	return r.store.Set(ctx, cartKeyPrefix+key, cart, DefaultCartTTL)
}

// GetCart returns the stored cart, or nil when absent.
func (r *SessionRegistry) GetCart(ctx context.Context, key string) (*domain.Cart, error) {
	var cart domain.Cart
	found, err := r.store.Get(ctx, cartKeyPrefix+key, &cart)
	if err != nil || !found {
		return nil, err
	}
	return &cart, nil
}

// DeleteCart drops the stored cart.
func (r *SessionRegistry) DeleteCart(ctx context.Context, key string) error {
	return r.store.Delete(ctx, cartKeyPrefix+key)
}

// ExtendCart refreshes the cart TTL without rewriting the payload.
func (r *SessionRegistry) ExtendCart(ctx context.Context, key string) (bool, error) {
	return r.store.Expire(ctx, cartKeyPrefix+key, DefaultCartTTL)
}

// SetSession stores an arbitrary session blob.
func (r *SessionRegistry) SetSession(ctx context.Context, sessionID string, data any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return r.store.Set(ctx, sessionKeyPrefix+sessionID, data, ttl)
}

// GetSession decodes a session blob into dest.
func (r *SessionRegistry) GetSession(ctx context.Context, sessionID string, dest any) (bool, error) {
	return r.store.Get(ctx, sessionKeyPrefix+sessionID, dest)
}

// DeleteSession drops a session blob.
func (r *SessionRegistry) DeleteSession(ctx context.Context, sessionID string) error {
	return r.store.Delete(ctx, sessionKeyPrefix+sessionID)
}

// ExtendSession refreshes a session TTL without rewriting the payload.
func (r *SessionRegistry) ExtendSession(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return r.store.Expire(ctx, sessionKeyPrefix+sessionID, ttl)
}

// CacheProduct stores a catalog product for fast reads.
func (r *SessionRegistry) CacheProduct(ctx context.Context, p *domain.Product) error {
	return r.store.Set(ctx, productKeyPrefix+p.ID, p, DefaultProductTTL)
}

// GetCachedProduct returns a cached product, or nil on a miss.
func (r *SessionRegistry) GetCachedProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var p domain.Product
	found, err := r.store.Get(ctx, productKeyPrefix+productID, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

// InvalidateProduct drops a cached product after a catalog write.
func (r *SessionRegistry) InvalidateProduct(ctx context.Context, productID string) error {
	return r.store.Delete(ctx, productKeyPrefix+productID)
}

// CacheCategories stores the full active category list.
func (r *SessionRegistry) CacheCategories(ctx context.Context, categories []*domain.Category) error {
	return r.store.Set(ctx, categoriesKey, categories, DefaultCategoriesTTL)
}

// GetCachedCategories returns the cached category list, or nil on a miss.
func (r *SessionRegistry) GetCachedCategories(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	found, err := r.store.Get(ctx, categoriesKey, &categories)
	if err != nil || !found {
		return nil, err
	}
	return categories, nil
}

// InvalidateCategories drops the cached category list.
func (r *SessionRegistry) InvalidateCategories(ctx context.Context) error {
	return r.store.Delete(ctx, categoriesKey)
}
