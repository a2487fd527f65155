package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vividmart/storefront/domain"
)

// CouponService handles admin management of discount codes.
type CouponService struct {
	coupons domain.CouponRepository
}

// NewCouponService creates a CouponService.
func NewCouponService(coupons domain.CouponRepository) *CouponService {
	return &CouponService{coupons: coupons}
}

// Create inserts a coupon. Codes are stored uppercase.
func (s *CouponService) Create(ctx context.Context, c *domain.Coupon) error {
	now := time.Now().UTC()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.coupons.CreateCoupon(ctx, c)
}

// Get returns one coupon by ID.
func (s *CouponService) Get(ctx context.Context, id string) (*domain.Coupon, error) {
	return s.coupons.GetCouponByID(ctx, id)
}

// List returns all coupons.
func (s *CouponService) List(ctx context.Context) ([]*domain.Coupon, error) {
	return s.coupons.ListCoupons(ctx)
}

// Update rewrites a coupon.
func (s *CouponService) Update(ctx context.Context, c *domain.Coupon) error {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	c.UpdatedAt = time.Now().UTC()
	return s.coupons.UpdateCoupon(ctx, c)
}

// Delete removes a coupon.
func (s *CouponService) Delete(ctx context.Context, id string) error {
	return s.coupons.DeleteCoupon(ctx, id)
}
