package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Electronics", "electronics"},
		{"Garden & Outdoors", "garden-outdoors"},
		{"  Home   Decor  ", "home-decor"},
		{"Kids' Toys!", "kids-toys"},
		{"already-a-slug", "already-a-slug"},
		{"--dashes--", "dashes"},
		{"Über Deals", "ber-deals"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}
