package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vividmart/storefront/domain"
	apperrors "github.com/vividmart/storefront/errors"
	"github.com/vividmart/storefront/internal/metrics"
)

// ErrEmptyCart is returned when checkout is attempted with no cart items.
var ErrEmptyCart = errors.New("cart is empty")

// ErrInvalidCoupon is returned when a presented coupon code cannot be
// redeemed.
var ErrInvalidCoupon = errors.New("invalid coupon")

// CheckoutInput carries everything needed to place an order.
type CheckoutInput struct {
	CartKey    string
	UserID     string // empty for guest checkout
	Email      string
	Addresses  []domain.Address
	CouponCode string
}

// OrderService turns carts into orders and manages order lifecycle.
type OrderService struct {
	orders   domain.OrderRepository
	products domain.ProductRepository
	coupons  domain.CouponRepository
	carts    *CartService
}

// NewOrderService creates an OrderService.
func NewOrderService(orders domain.OrderRepository, products domain.ProductRepository, coupons domain.CouponRepository, carts *CartService) *OrderService {
	return &OrderService{orders: orders, products: products, coupons: coupons, carts: carts}
}

// Checkout places an order from the stored cart: prices are re-read from the
// catalog and snapshotted, the coupon (if any) is applied and consumed,
// tracked stock is decremented, and the cart is cleared.
func (s *OrderService) Checkout(ctx context.Context, in CheckoutInput) (*domain.Order, error) {
	cart, err := s.carts.Get(ctx, in.CartKey)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	now := time.Now().UTC()
	items := make([]domain.OrderItem, 0, len(cart.Items))
	var subtotal float64
	for _, line := range cart.Items {
		product, err := s.products.GetProductByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, line.ProductID)
			}
			return nil, err
		}
		if product.Status != domain.ProductStatusActive {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, line.ProductID)
		}
		if product.TrackQuantity && line.Quantity > product.Quantity {
			return nil, fmt.Errorf("insufficient stock for %s", product.Name)
		}

		total := math.Round(product.Price*float64(line.Quantity)*100) / 100
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			SKU:       product.SKU,
			Price:     product.Price,
			Quantity:  line.Quantity,
			Total:     total,
		})
		subtotal += total
	}
	subtotal = math.Round(subtotal*100) / 100

	var discount float64
	var coupon *domain.Coupon
	if in.CouponCode != "" {
		code := strings.ToUpper(strings.TrimSpace(in.CouponCode))
		coupon, err = s.coupons.GetCouponByCode(ctx, code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, ErrInvalidCoupon
			}
			return nil, err
		}
		discount = coupon.CalculateDiscount(subtotal, now)
		if !coupon.IsValid(now) {
			return nil, ErrInvalidCoupon
		}
	}

	order := &domain.Order{
		ID:          uuid.NewString(),
		OrderNumber: newOrderNumber(),
		UserID:      in.UserID,
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Items:       items,
		Addresses:   in.Addresses,
		Subtotal:    subtotal,
		Discount:    discount,
		Total:       math.Round((subtotal-discount)*100) / 100,
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if coupon != nil {
		order.CouponCode = coupon.Code
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	if coupon != nil {
		if err := s.coupons.IncrementUsage(ctx, coupon.ID); err != nil {
			log.Warn().Err(err).Str("coupon", coupon.Code).Msg("failed to record coupon usage")
		}
	}
	for _, item := range items {
		if err := s.products.DecrementQuantity(ctx, item.ProductID, item.Quantity); err != nil {
			log.Warn().Err(err).Str("product_id", item.ProductID).Msg("failed to decrement stock")
		}
	}
	if err := s.carts.Clear(ctx, in.CartKey); err != nil {
		log.Warn().Err(err).Str("cart_key", in.CartKey).Msg("failed to clear cart after checkout")
	}

	metrics.OrdersPlacedTotal.Inc()
	return order, nil
}

// GetOrder returns a single order.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetOrderByID(ctx, id)
}

// ListUserOrders returns a customer's own orders.
func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.orders.ListOrdersByUser(ctx, userID)
}

// ListOrders returns a page of all orders (admin).
func (s *OrderService) ListOrders(ctx context.Context, page, perPage int) ([]*domain.Order, int64, error) {
	return s.orders.ListOrders(ctx, page, perPage)
}

// UpdateStatus moves an order to a new lifecycle state (admin).
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !domain.ValidOrderStatus(status) {
		return fmt.Errorf("unknown order status %q", status)
	}
	return s.orders.UpdateOrderStatus(ctx, id, status)
}

// newOrderNumber builds a human-facing order reference like ORD-1A2B3C4D5E.
func newOrderNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ORD-" + raw[:10]
}
