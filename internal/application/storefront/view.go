package storefront

import (
	"time"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/catalog"
)

// StorefrontView is the derived, read-only projection of the raw admin
// records: active items only, variant records folded into their
// primary, live section counts.
type StorefrontView struct {
	Sections    []SectionView `json:"sections"`
	Items       []ItemView    `json:"items"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

// SectionView is a section with its live product count.
type SectionView struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	ProductCount int    `json:"productCount"`
}

// ItemView is a storefront-facing product card.
type ItemView struct {
	ID             int                 `json:"id"`
	Name           string              `json:"name"`
	Price          int64               `json:"price"`
	SectionCode    string              `json:"sectionCode"`
	SKU            string              `json:"sku"`
	StockCount     int                 `json:"stockCount"`
	Description    string              `json:"description"`
	Features       []string            `json:"features"`
	Specifications []catalog.SpecEntry `json:"specifications"`
	Badge          string              `json:"badge,omitempty"`
	Featured       bool                `json:"featured"`
	Images         []string            `json:"images"`
	HasColors      bool                `json:"hasColors"`
	Colors         []ColorOption       `json:"colors,omitempty"`
}

// ColorOption is one selectable color of a multi-color product,
// resolved from the primary's variant records.
type ColorOption struct {
	VariantID  int      `json:"variantId"`
	Name       string   `json:"name"`
	ColorValue string   `json:"colorValue"`
	Images     []string `json:"images"`
}

// Stats summarizes the current projection.
type Stats struct {
	TotalItems    int       `json:"totalItems"`
	FeaturedItems int       `json:"featuredItems"`
	TotalSections int       `json:"totalSections"`
	LastUpdated   time.Time `json:"lastUpdated"`
}
