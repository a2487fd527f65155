package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vividmart/storefront/domain"
	apperrors "github.com/vividmart/storefront/errors"
)

type orderTestEnv struct {
	orders   *OrderService
	carts    *CartService
	products *fakeProductRepo
	coupons  *fakeCouponRepo
}

func newOrderTestEnv(t *testing.T, products []*domain.Product, coupons []*domain.Coupon) orderTestEnv {
	t.Helper()
	reg := newTestRegistry(t)
	productRepo := newFakeProductRepo(products...)
	couponRepo := newFakeCouponRepo(coupons...)
	catalog := NewCatalogService(productRepo, newFakeCategoryRepo(), reg)
	carts := NewCartService(catalog, reg)
	orders := NewOrderService(newFakeOrderRepo(), productRepo, couponRepo, carts)
	return orderTestEnv{orders: orders, carts: carts, products: productRepo, coupons: couponRepo}
}

func TestCheckout(t *testing.T) {
	tracked := activeProduct("p1", "Widget", "W-1", 9.99)
	tracked.TrackQuantity = true
	tracked.Quantity = 10
	env := newOrderTestEnv(t, []*domain.Product{tracked, activeProduct("p2", "Gadget", "G-1", 4.50)}, nil)
	ctx := context.Background()

	_, err := env.carts.Put(ctx, "sess-1", []domain.CartItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	})
	require.NoError(t, err)

	order, err := env.orders.Checkout(ctx, CheckoutInput{
		CartKey: "sess-1",
		UserID:  "u1",
		Email:   "Jo@Example.com",
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^ORD-[0-9A-F]{10}$`), order.OrderNumber)
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, "jo@example.com", order.Email)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 24.48, order.Subtotal, 0.001)
	assert.Zero(t, order.Discount)
	assert.InDelta(t, 24.48, order.Total, 0.001)

	// Tracked stock was decremented and the cart cleared.
	p, err := env.products.GetProductByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 8, p.Quantity)

	cart, err := env.carts.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	// The order is retrievable.
	got, err := env.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, got.OrderNumber)
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newOrderTestEnv(t, nil, nil)

	_, err := env.orders.Checkout(context.Background(), CheckoutInput{CartKey: "sess-1", Email: "jo@example.com"})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutPercentageCoupon(t *testing.T) {
	coupon := &domain.Coupon{
		ID:              "c1",
		Code:            "SAVE10",
		Type:            domain.CouponPercentage,
		Value:           10,
		MaximumDiscount: 5,
		IsActive:        true,
	}
	env := newOrderTestEnv(t, []*domain.Product{activeProduct("p1", "Widget", "W-1", 100)}, []*domain.Coupon{coupon})
	ctx := context.Background()

	_, err := env.carts.Put(ctx, "sess-1", []domain.CartItem{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	// 10% of 100 is 10, capped at the 5 maximum discount. Codes match
	// case-insensitively.
	order, err := env.orders.Checkout(ctx, CheckoutInput{
		CartKey:    "sess-1",
		Email:      "jo@example.com",
		CouponCode: "save10",
	})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, order.Discount, 0.001)
	assert.InDelta(t, 95.0, order.Total, 0.001)
	assert.Equal(t, "SAVE10", order.CouponCode)

	got, err := env.coupons.GetCouponByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.UsageCount)
}

func TestCheckoutFixedCouponCappedBySubtotal(t *testing.T) {
	coupon := &domain.Coupon{
		ID:       "c1",
		Code:     "FLAT50",
		Type:     domain.CouponFixedAmount,
		Value:    50,
		IsActive: true,
	}
	env := newOrderTestEnv(t, []*domain.Product{activeProduct("p1", "Widget", "W-1", 19.99)}, []*domain.Coupon{coupon})
	ctx := context.Background()

	_, err := env.carts.Put(ctx, "sess-1", []domain.CartItem{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	order, err := env.orders.Checkout(ctx, CheckoutInput{
		CartKey:    "sess-1",
		Email:      "jo@example.com",
		CouponCode: "FLAT50",
	})
	require.NoError(t, err)
	assert.InDelta(t, 19.99, order.Discount, 0.001)
	assert.Zero(t, order.Total)
}

func TestCheckoutUnknownCoupon(t *testing.T) {
	env := newOrderTestEnv(t, []*domain.Product{activeProduct("p1", "Widget", "W-1", 9.99)}, nil)
	ctx := context.Background()

	_, err := env.carts.Put(ctx, "sess-1", []domain.CartItem{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	_, err = env.orders.Checkout(ctx, CheckoutInput{
		CartKey:    "sess-1",
		Email:      "jo@example.com",
		CouponCode: "NOPE",
	})
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestCheckoutExpiredCoupon(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	coupon := &domain.Coupon{
		ID:       "c1",
		Code:     "OLD",
		Type:     domain.CouponPercentage,
		Value:    10,
		IsActive: true,
		EndDate:  &past,
	}
	env := newOrderTestEnv(t, []*domain.Product{activeProduct("p1", "Widget", "W-1", 9.99)}, []*domain.Coupon{coupon})
	ctx := context.Background()

	_, err := env.carts.Put(ctx, "sess-1", []domain.CartItem{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	_, err = env.orders.Checkout(ctx, CheckoutInput{
		CartKey:    "sess-1",
		Email:      "jo@example.com",
		CouponCode: "OLD",
	})
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

// A price change between add-to-cart and checkout must be charged at the
// catalog price, not the cart snapshot.
func TestCheckoutReReadsPrices(t *testing.T) {
	p := activeProduct("p1", "Widget", "W-1", 9.99)
	env := newOrderTestEnv(t, []*domain.Product{p}, nil)
	ctx := context.Background()

	_, err := env.carts.Put(ctx, "sess-1", []domain.CartItem{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)

	p.Price = 14.99
	require.NoError(t, env.products.UpdateProduct(ctx, p))

	order, err := env.orders.Checkout(ctx, CheckoutInput{CartKey: "sess-1", Email: "jo@example.com"})
	require.NoError(t, err)
	assert.InDelta(t, 14.99, order.Total, 0.001)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	tracked := activeProduct("p1", "Widget", "W-1", 9.99)
	tracked.TrackQuantity = true
	tracked.Quantity = 5
	env := newOrderTestEnv(t, []*domain.Product{tracked}, nil)
	ctx := context.Background()

	_, err := env.carts.Put(ctx, "sess-1", []domain.CartItem{{ProductID: "p1", Quantity: 5}})
	require.NoError(t, err)

	tracked.Quantity = 2
	require.NoError(t, env.products.UpdateProduct(ctx, tracked))

	_, err = env.orders.Checkout(ctx, CheckoutInput{CartKey: "sess-1", Email: "jo@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
}

func TestUpdateStatus(t *testing.T) {
	env := newOrderTestEnv(t, []*domain.Product{activeProduct("p1", "Widget", "W-1", 9.99)}, nil)
	ctx := context.Background()

	_, err := env.carts.Put(ctx, "sess-1", []domain.CartItem{{ProductID: "p1", Quantity: 1}})
	require.NoError(t, err)
	order, err := env.orders.Checkout(ctx, CheckoutInput{CartKey: "sess-1", Email: "jo@example.com"})
	require.NoError(t, err)

	require.NoError(t, env.orders.UpdateStatus(ctx, order.ID, domain.OrderStatusPaid))

	got, err := env.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, got.Status)

	err = env.orders.UpdateStatus(ctx, order.ID, domain.OrderStatus("refunded"))
	assert.Error(t, err)

	err = env.orders.UpdateStatus(ctx, "missing", domain.OrderStatusPaid)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
