package domain

import (
	"math"
	"time"
)

// CouponType selects the discount calculation.
type CouponType string

const (
	CouponPercentage   CouponType = "percentage"
	CouponFixedAmount  CouponType = "fixed_amount"
	CouponFreeShipping CouponType = "free_shipping"
)

// Coupon is a discount code redeemable at checkout.
type Coupon struct {
	ID              string     `bson:"_id,omitempty" json:"id"`
	Code            string     `bson:"code" json:"code"`
	Type            CouponType `bson:"type" json:"type"`
	Value           float64    `bson:"value" json:"value"`
	Description     string     `bson:"description,omitempty" json:"description,omitempty"`
	MinimumAmount   float64    `bson:"minimum_amount,omitempty" json:"minimumAmount,omitempty"`
	MaximumDiscount float64    `bson:"maximum_discount,omitempty" json:"maximumDiscount,omitempty"`
	UsageLimit      int        `bson:"usage_limit,omitempty" json:"usageLimit,omitempty"`
	UsageCount      int        `bson:"usage_count" json:"usageCount"`
	StartDate       *time.Time `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate         *time.Time `bson:"end_date,omitempty" json:"endDate,omitempty"`
	IsActive        bool       `bson:"is_active" json:"isActive"`
	CreatedAt       time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updatedAt"`
}

// IsValid reports whether the coupon can currently be redeemed.
func (c *Coupon) IsValid(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.StartDate != nil && now.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && now.After(*c.EndDate) {
		return false
	}
	if c.UsageLimit > 0 && c.UsageCount >= c.UsageLimit {
		return false
	}
	return true
}

// CalculateDiscount returns the discount for a subtotal, rounded to cents.
// Free-shipping coupons contribute no line discount.
func (c *Coupon) CalculateDiscount(subtotal float64, now time.Time) float64 {
	if !c.IsValid(now) {
		return 0
	}
	if c.MinimumAmount > 0 && subtotal < c.MinimumAmount {
		return 0
	}

	var discount float64
	switch c.Type {
	case CouponPercentage:
		discount = subtotal * c.Value / 100
		if c.MaximumDiscount > 0 && discount > c.MaximumDiscount {
			discount = c.MaximumDiscount
		}
	case CouponFixedAmount:
		discount = math.Min(c.Value, subtotal)
	case CouponFreeShipping:
		discount = 0
	}

	return math.Round(discount*100) / 100
}
