package domain

import "time"

// ProductStatus defines the lifecycle state of a catalog product.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusArchived ProductStatus = "archived"
)

// ProductImage is a single catalog image, ordered by Position.
type ProductImage struct {
	URL      string `bson:"url" json:"url"`
	Alt      string `bson:"alt" json:"alt"`
	Position int    `bson:"position" json:"position"`
}

// Product is a catalog entry. Price fields are in the store currency's
// major unit (dollars, not cents), matching the wire format.
type Product struct {
	ID               string         `bson:"_id,omitempty" json:"id"`
	Name             string         `bson:"name" json:"name"`
	Description      string         `bson:"description" json:"description"`
	ShortDescription string         `bson:"short_description" json:"shortDescription"`
	Price            float64        `bson:"price" json:"price"`
	ComparePrice     float64        `bson:"compare_price,omitempty" json:"comparePrice,omitempty"`
	SKU              string         `bson:"sku" json:"sku"`
	TrackQuantity    bool           `bson:"track_quantity" json:"trackQuantity"`
	Quantity         int            `bson:"quantity" json:"quantity"`
	Category         string         `bson:"category" json:"category"`
	Tags             []string       `bson:"tags,omitempty" json:"tags,omitempty"`
	Images           []ProductImage `bson:"images,omitempty" json:"images,omitempty"`
	Status           ProductStatus  `bson:"status" json:"status"`
	Featured         bool           `bson:"featured" json:"featured"`
	CreatedAt        time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time      `bson:"updated_at" json:"updatedAt"`
}

// ProductFilter narrows catalog listings. Zero values mean "no constraint".
type ProductFilter struct {
	Category string
	Status   ProductStatus
	Featured *bool
	Page     int
	PerPage  int
}

// Limit returns the page size, defaulting to 20 and capping at 100.
func (f ProductFilter) Limit() int64 {
	switch {
	case f.PerPage <= 0:
		return 20
	case f.PerPage > 100:
		return 100
	default:
		return int64(f.PerPage)
	}
}

// Skip returns the offset implied by Page and PerPage.
func (f ProductFilter) Skip() int64 {
	if f.Page <= 1 {
		return 0
	}
	return int64(f.Page-1) * f.Limit()
}
