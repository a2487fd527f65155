package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vividmart/storefront/domain"
	apperrors "github.com/vividmart/storefront/errors"
)

// CartService manages shopping carts in the key-value store. Carts are keyed
// by user ID for signed-in customers or an anonymous session ID otherwise,
// and survive login/logout independently of auth state.
type CartService struct {
	catalog  *CatalogService
	sessions *SessionRegistry
}

// NewCartService creates a CartService.
func NewCartService(catalog *CatalogService, sessions *SessionRegistry) *CartService {
	return &CartService{catalog: catalog, sessions: sessions}
}

// Get returns the cart for a key, empty when none is stored.
func (s *CartService) Get(ctx context.Context, key string) (*domain.Cart, error) {
	cart, err := s.sessions.GetCart(ctx, key)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &domain.Cart{Items: []domain.CartItem{}}, nil
	}
	return cart, nil
}

// Put replaces the cart contents. Every line is validated against the live
// catalog: unknown or inactive products are rejected, and name/price/sku are
// taken from the catalog rather than trusted from the client.
func (s *CartService) Put(ctx context.Context, key string, items []domain.CartItem) (*domain.Cart, error) {
	cart := &domain.Cart{Items: make([]domain.CartItem, 0, len(items)), UpdatedAt: time.Now().UTC()}

	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, item.ProductID)
			}
			return nil, err
		}
		if product.Status != domain.ProductStatusActive {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, item.ProductID)
		}

		qty := item.Quantity
		if product.TrackQuantity && qty > product.Quantity {
			qty = product.Quantity
		}
		if qty == 0 {
			continue
		}

		var image string
		if len(product.Images) > 0 {
			image = product.Images[0].URL
		}
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			SKU:       product.SKU,
			Price:     product.Price,
			Quantity:  qty,
			Image:     image,
		})
	}

	if err := s.sessions.SetCart(ctx, key, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear removes the cart.
func (s *CartService) Clear(ctx context.Context, key string) error {
	return s.sessions.DeleteCart(ctx, key)
}

// Touch refreshes the cart TTL, keeping active carts alive past the default
// window.
func (s *CartService) Touch(ctx context.Context, key string) error {
	_, err := s.sessions.ExtendCart(ctx, key)
	return err
}
