package catalog

import (
	"strings"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/shared"
)

// Section groups catalog items. Code is the stable identifier items
// reference; ProductCount is derived during projection and what is
// stored for it is never authoritative.
type Section struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	Active       bool   `json:"active"`
	ProductCount int    `json:"productCount"`
}

// Validate checks section invariants before persisting.
func (s *Section) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return shared.NewValidationError("section name is required")
	}
	if strings.TrimSpace(s.Code) == "" {
		return shared.NewValidationError("section code is required")
	}
	return nil
}

// DefaultSections is the canonical first-run seed. The legacy admin
// and storefront entry points each seeded their own list; this is the
// single list the whole system bootstraps from now.
func DefaultSections() []Section {
	return []Section{
		{ID: 1, Name: "Пантографы", Code: "pantograph", Active: true},
		{ID: 2, Name: "Nuomi Hera", Code: "nuomi-hera", Active: true},
		{ID: 3, Name: "Nuomi Ralphie", Code: "nuomi-ralphie", Active: true},
		{ID: 4, Name: "Коллекция Wise", Code: "wise", Active: true},
		{ID: 5, Name: "Коллекция Time", Code: "time", Active: true},
		{ID: 6, Name: "Кухонные лифты", Code: "kitchen", Active: true},
	}
}
