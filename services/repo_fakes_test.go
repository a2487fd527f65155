package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/vividmart/storefront/domain"
	apperrors "github.com/vividmart/storefront/errors"
)

// In-memory repository fakes for exercising the stateful service flows
// (cart validation, checkout, cache coherence) end to end without MongoDB.

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) CreateProduct(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; ok {
		return apperrors.ErrDuplicate
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, id)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) ListProducts(_ context.Context, filter domain.ProductFilter) ([]*domain.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Product
	for _, p := range r.products {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, p.ID)
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) DeleteProduct(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) DecrementQuantity(_ context.Context, id string, by int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || !p.TrackQuantity {
		return nil
	}
	p.Quantity -= by
	return nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*domain.Category
	listCalls  int
}

func newFakeCategoryRepo(categories ...*domain.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: make(map[string]*domain.Category)}
	for _, c := range categories {
		cp := *c
		r.categories[c.ID] = &cp
	}
	return r
}

func (r *fakeCategoryRepo) CreateCategory(_ context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetCategoryByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, id)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) ListCategories(_ context.Context, activeOnly bool) ([]*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	var out []*domain.Category
	for _, c := range r.categories {
		if activeOnly && !c.IsActive {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCategoryRepo) UpdateCategory(_ context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) DeleteCategory(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *fakeOrderRepo) CreateOrder(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetOrderByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: order %s", apperrors.ErrNotFound, id)
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ListOrdersByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListOrders(_ context.Context, page, perPage int) ([]*domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, o := range r.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(_ context.Context, id string, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, id)
	}
	o.Status = status
	return nil
}

type fakeCouponRepo struct {
	mu      sync.Mutex
	coupons map[string]*domain.Coupon
}

func newFakeCouponRepo(coupons ...*domain.Coupon) *fakeCouponRepo {
	r := &fakeCouponRepo{coupons: make(map[string]*domain.Coupon)}
	for _, c := range coupons {
		cp := *c
		r.coupons[c.ID] = &cp
	}
	return r
}

func (r *fakeCouponRepo) CreateCoupon(_ context.Context, c *domain.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.coupons[c.ID] = &cp
	return nil
}

func (r *fakeCouponRepo) GetCouponByID(_ context.Context, id string) (*domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coupons[id]
	if !ok {
		return nil, fmt.Errorf("%w: coupon %s", apperrors.ErrNotFound, id)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCouponRepo) GetCouponByCode(_ context.Context, code string) (*domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coupons {
		if strings.EqualFold(c.Code, code) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: coupon %s", apperrors.ErrNotFound, code)
}

func (r *fakeCouponRepo) ListCoupons(_ context.Context) ([]*domain.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Coupon
	for _, c := range r.coupons {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCouponRepo) UpdateCoupon(_ context.Context, c *domain.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.coupons[c.ID] = &cp
	return nil
}

func (r *fakeCouponRepo) DeleteCoupon(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.coupons, id)
	return nil
}

func (r *fakeCouponRepo) IncrementUsage(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coupons[id]
	if !ok {
		return fmt.Errorf("%w: coupon %s", apperrors.ErrNotFound, id)
	}
	c.UsageCount++
	return nil
}

var (
	_ domain.ProductRepository  = (*fakeProductRepo)(nil)
	_ domain.CategoryRepository = (*fakeCategoryRepo)(nil)
	_ domain.OrderRepository    = (*fakeOrderRepo)(nil)
	_ domain.CouponRepository   = (*fakeCouponRepo)(nil)
)
