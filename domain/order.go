package domain

import "time"

// OrderStatus tracks an order through fulfilment.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a known status value.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a priced line captured at checkout. Prices are snapshots:
// later catalog edits do not change past orders.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	SKU       string  `bson:"sku,omitempty" json:"sku,omitempty"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Total     float64 `bson:"total" json:"total"`
}

// Address is a shipping or billing address attached to an order.
type Address struct {
	Type      string `bson:"type" json:"type"` // shipping | billing
	FirstName string `bson:"first_name" json:"firstName"`
	LastName  string `bson:"last_name" json:"lastName"`
	Company   string `bson:"company,omitempty" json:"company,omitempty"`
	Address1  string `bson:"address1" json:"address1"`
	Address2  string `bson:"address2,omitempty" json:"address2,omitempty"`
	City      string `bson:"city" json:"city"`
	State     string `bson:"state" json:"state"`
	ZipCode   string `bson:"zip_code" json:"zipCode"`
	Country   string `bson:"country" json:"country"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Order is a placed checkout.
type Order struct {
	ID          string      `bson:"_id,omitempty" json:"id"`
	OrderNumber string      `bson:"order_number" json:"orderNumber"`
	UserID      string      `bson:"user_id,omitempty" json:"userId,omitempty"`
	Email       string      `bson:"email" json:"email"`
	Items       []OrderItem `bson:"items" json:"items"`
	Addresses   []Address   `bson:"addresses,omitempty" json:"addresses,omitempty"`
	Subtotal    float64     `bson:"subtotal" json:"subtotal"`
	Discount    float64     `bson:"discount" json:"discount"`
	Total       float64     `bson:"total" json:"total"`
	CouponCode  string      `bson:"coupon_code,omitempty" json:"couponCode,omitempty"`
	Status      OrderStatus `bson:"status" json:"status"`
	CreatedAt   time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updated_at" json:"updatedAt"`
}
