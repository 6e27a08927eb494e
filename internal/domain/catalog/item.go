package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/shared"
)

// Limits on item payloads
const (
	MaxImages        = 5
	MaxColorVariants = 10
)

// SpecEntry is one key/value pair of an item's specification table.
// Entries keep their insertion order; keys are unique within an item.
type SpecEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ColorVariant describes one color option of a multi-color item.
type ColorVariant struct {
	Name       string   `json:"name"`
	ColorValue string   `json:"colorValue"`
	Images     []string `json:"images,omitempty"`
}

// Item is a catalog record. A record is either a primary item or a
// derived color-variant record; the two cases are distinguished by
// IsColorVariant. Variant records are created only by fanning out a
// primary with MultipleColors set, are never themselves multi-color
// and always reference their primary through OriginalItemID.
type Item struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	Price          int64          `json:"price"` // minor currency units
	SectionCode    string         `json:"sectionCode"`
	SKU            string         `json:"sku"`
	StockCount     int            `json:"stockCount"`
	Description    string         `json:"description"`
	Features       []string       `json:"features"`
	Specifications []SpecEntry    `json:"specifications"`
	Badge          string         `json:"badge,omitempty"`
	Active         bool           `json:"active"`
	Featured       bool           `json:"featured"`
	Images         []string       `json:"images"`
	MultipleColors bool           `json:"multipleColors"`
	ColorVariants  []ColorVariant `json:"colorVariants,omitempty"`

	// Variant-record fields, zero for primary items.
	IsColorVariant bool   `json:"isColorVariant,omitempty"`
	OriginalItemID int    `json:"originalItemId,omitempty"`
	ColorIndex     int    `json:"colorIndex,omitempty"`
	ColorName      string `json:"colorName,omitempty"`
	ColorValue     string `json:"colorValue,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsVariant reports whether the record is a derived color-variant record.
func (i *Item) IsVariant() bool {
	return i.IsColorVariant
}

// Normalize fills defaults for optional fields. Applied at the
// repository boundary so records read back with a defined shape.
func (i *Item) Normalize(now time.Time) {
	if i.SKU == "" {
		i.SKU = fmt.Sprintf("MF-%d", i.ID)
	}
	if i.Features == nil {
		i.Features = []string{}
	}
	if i.Specifications == nil {
		i.Specifications = []SpecEntry{}
	}
	if i.Images == nil {
		i.Images = []string{}
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	if i.UpdatedAt.IsZero() {
		i.UpdatedAt = now
	}
}

// Validate checks the invariants a record must satisfy before it is
// persisted.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return shared.NewValidationError("item name is required")
	}
	if i.Price < 0 {
		return shared.NewValidationError("item price cannot be negative")
	}
	if i.StockCount < 0 {
		return shared.NewValidationError("item stock count cannot be negative")
	}
	if len(i.Images) > MaxImages {
		return shared.NewValidationError(fmt.Sprintf("item cannot carry more than %d images", MaxImages))
	}
	if len(i.ColorVariants) > MaxColorVariants {
		return shared.NewValidationError(fmt.Sprintf("item cannot carry more than %d color variants", MaxColorVariants))
	}
	for _, v := range i.ColorVariants {
		if len(v.Images) > MaxImages {
			return shared.NewValidationError(fmt.Sprintf("color variant %q cannot carry more than %d images", v.Name, MaxImages))
		}
	}
	seen := make(map[string]struct{}, len(i.Specifications))
	for _, s := range i.Specifications {
		if _, dup := seen[s.Key]; dup {
			return shared.NewValidationError(fmt.Sprintf("duplicate specification key %q", s.Key))
		}
		seen[s.Key] = struct{}{}
	}
	if i.IsColorVariant {
		if i.OriginalItemID <= 0 {
			return shared.NewValidationError("color-variant record must reference its primary item")
		}
		if i.MultipleColors {
			return shared.NewValidationError("color-variant record cannot itself be multi-color")
		}
	}
	return nil
}

// NewVariantRecord derives the variant record for one color of a
// multi-color primary. index is 1-based and determines the variant sku
// suffix. Variant ids are assigned fresh on every save of the primary.
func NewVariantRecord(primary Item, variant ColorVariant, index, id int, now time.Time) Item {
	images := variant.Images
	if len(images) == 0 {
		images = primary.Images
	}
	rec := Item{
		ID:             id,
		Name:           fmt.Sprintf("%s - %s", primary.Name, variant.Name),
		Price:          primary.Price,
		SectionCode:    primary.SectionCode,
		SKU:            fmt.Sprintf("%s_%d", primary.SKU, index),
		StockCount:     primary.StockCount,
		Description:    primary.Description,
		Features:       append([]string(nil), primary.Features...),
		Specifications: append([]SpecEntry(nil), primary.Specifications...),
		Badge:          primary.Badge,
		Active:         primary.Active,
		Featured:       false,
		Images:         append([]string(nil), images...),
		IsColorVariant: true,
		OriginalItemID: primary.ID,
		ColorIndex:     index,
		ColorName:      variant.Name,
		ColorValue:     variant.ColorValue,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	rec.Normalize(now)
	return rec
}
