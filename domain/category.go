package domain

import (
	"regexp"
	"strings"
	"time"
)

// Category is a catalog grouping. Slug is derived from Name when empty.
type Category struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Slug           string    `bson:"slug" json:"slug"`
	Description    string    `bson:"description,omitempty" json:"description,omitempty"`
	Image          string    `bson:"image,omitempty" json:"image,omitempty"`
	ParentCategory string    `bson:"parent_category,omitempty" json:"parentCategory,omitempty"`
	IsActive       bool      `bson:"is_active" json:"isActive"`
	SortOrder      int       `bson:"sort_order" json:"sortOrder"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9 -]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugCollapse = regexp.MustCompile(`-+`)
)

// Slugify produces a URL-safe slug from a category name.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
