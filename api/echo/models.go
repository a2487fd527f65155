package echo

import (
	"time"

	"github.com/vividmart/storefront/domain"
)

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest is the body of POST /api/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	User         *domain.User `json:"user,omitempty"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// CartItemRequest is one line of a cart replacement.
type CartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=999"`
}

// PutCartRequest is the body of PUT /api/cart.
type PutCartRequest struct {
	Items []CartItemRequest `json:"items" validate:"required,dive"`
}

// CheckoutRequest is the body of POST /api/orders.
type CheckoutRequest struct {
	Email      string           `json:"email" validate:"omitempty,email"`
	Addresses  []domain.Address `json:"addresses"`
	CouponCode string           `json:"couponCode"`
}

// ProductRequest is the admin create/update payload for products.
type ProductRequest struct {
	Name             string                `json:"name" validate:"required"`
	Description      string                `json:"description"`
	ShortDescription string                `json:"shortDescription"`
	Price            float64               `json:"price" validate:"required,gt=0"`
	ComparePrice     float64               `json:"comparePrice" validate:"omitempty,gt=0"`
	SKU              string                `json:"sku" validate:"required"`
	TrackQuantity    bool                  `json:"trackQuantity"`
	Quantity         int                   `json:"quantity" validate:"min=0"`
	Category         string                `json:"category" validate:"required"`
	Tags             []string              `json:"tags"`
	Images           []domain.ProductImage `json:"images"`
	Status           domain.ProductStatus  `json:"status" validate:"omitempty,oneof=active draft archived"`
	Featured         bool                  `json:"featured"`
}

func (r *ProductRequest) apply(p *domain.Product) {
	p.Name = r.Name
	p.Description = r.Description
	p.ShortDescription = r.ShortDescription
	p.Price = r.Price
	p.ComparePrice = r.ComparePrice
	p.SKU = r.SKU
	p.TrackQuantity = r.TrackQuantity
	p.Quantity = r.Quantity
	p.Category = r.Category
	p.Tags = r.Tags
	p.Images = r.Images
	p.Status = r.Status
	if p.Status == "" {
		p.Status = domain.ProductStatusDraft
	}
	p.Featured = r.Featured
}

// CategoryRequest is the admin create/update payload for categories.
type CategoryRequest struct {
	Name           string `json:"name" validate:"required"`
	Slug           string `json:"slug"`
	Description    string `json:"description"`
	Image          string `json:"image"`
	ParentCategory string `json:"parentCategory"`
	IsActive       *bool  `json:"isActive"`
	SortOrder      int    `json:"sortOrder"`
}

func (r *CategoryRequest) apply(cat *domain.Category) {
	cat.Name = r.Name
	cat.Slug = r.Slug
	cat.Description = r.Description
	cat.Image = r.Image
	cat.ParentCategory = r.ParentCategory
	cat.IsActive = r.IsActive == nil || *r.IsActive
	cat.SortOrder = r.SortOrder
}

// CouponRequest is the admin create/update payload for coupons.
type CouponRequest struct {
	Code            string     `json:"code" validate:"required"`
	Type            string     `json:"type" validate:"required,oneof=percentage fixed_amount free_shipping"`
	Value           float64    `json:"value" validate:"min=0"`
	Description     string     `json:"description"`
	MinimumAmount   float64    `json:"minimumAmount" validate:"min=0"`
	MaximumDiscount float64    `json:"maximumDiscount" validate:"min=0"`
	UsageLimit      int        `json:"usageLimit" validate:"min=0"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	IsActive        *bool      `json:"isActive"`
}

func (r *CouponRequest) apply(cp *domain.Coupon) {
	cp.Code = r.Code
	cp.Type = domain.CouponType(r.Type)
	cp.Value = r.Value
	cp.Description = r.Description
	cp.MinimumAmount = r.MinimumAmount
	cp.MaximumDiscount = r.MaximumDiscount
	cp.UsageLimit = r.UsageLimit
	cp.StartDate = r.StartDate
	cp.EndDate = r.EndDate
	cp.IsActive = r.IsActive == nil || *r.IsActive
}

// OrderStatusRequest is the body of PATCH /api/admin/orders/:id/status.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
}

// ListResponse wraps a page of results with the total count.
type ListResponse struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
}
