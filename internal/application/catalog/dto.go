package catalog

import (
	"time"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/catalog"
)

// CreateItemRequest is the admin payload for a new catalog item.
type CreateItemRequest struct {
	Name           string                 `json:"name" binding:"required,min=1,max=200"`
	Price          int64                  `json:"price" binding:"min=0"`
	SectionCode    string                 `json:"sectionCode" binding:"required"`
	SKU            string                 `json:"sku"`
	StockCount     int                    `json:"stockCount" binding:"min=0"`
	Description    string                 `json:"description"`
	Features       []string               `json:"features"`
	Specifications []catalog.SpecEntry    `json:"specifications"`
	Badge          string                 `json:"badge"`
	Active         *bool                  `json:"active"`
	Featured       bool                   `json:"featured"`
	Images         []string               `json:"images" binding:"max=5"`
	MultipleColors bool                   `json:"multipleColors"`
	ColorVariants  []catalog.ColorVariant `json:"colorVariants" binding:"max=10"`
}

// UpdateItemRequest is the admin payload for editing an item. The
// whole record is replaced; variant records are re-fanned-out.
type UpdateItemRequest = CreateItemRequest

// CreateSectionRequest is the admin payload for a new section.
type CreateSectionRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=100"`
	Code   string `json:"code" binding:"required,min=1,max=50"`
	Active *bool  `json:"active"`
}

// UpdateSectionRequest is the admin payload for editing a section.
type UpdateSectionRequest struct {
	Name   string `json:"name" binding:"omitempty,min=1,max=100"`
	Active *bool  `json:"active"`
}

// ItemResponse is the admin view of a catalog record.
type ItemResponse struct {
	ID             int                    `json:"id"`
	Name           string                 `json:"name"`
	Price          int64                  `json:"price"`
	SectionCode    string                 `json:"sectionCode"`
	SKU            string                 `json:"sku"`
	StockCount     int                    `json:"stockCount"`
	Description    string                 `json:"description"`
	Features       []string               `json:"features"`
	Specifications []catalog.SpecEntry    `json:"specifications"`
	Badge          string                 `json:"badge,omitempty"`
	Active         bool                   `json:"active"`
	Featured       bool                   `json:"featured"`
	Images         []string               `json:"images"`
	MultipleColors bool                   `json:"multipleColors"`
	ColorVariants  []catalog.ColorVariant `json:"colorVariants,omitempty"`
	IsColorVariant bool                   `json:"isColorVariant,omitempty"`
	OriginalItemID int                    `json:"originalItemId,omitempty"`
	CreatedAt      string                 `json:"createdAt"`
	UpdatedAt      string                 `json:"updatedAt"`
}

// SectionResponse is the admin view of a section.
type SectionResponse struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	Active       bool   `json:"active"`
	ProductCount int    `json:"productCount"`
}

// ToItemResponse converts a domain item for the API.
func ToItemResponse(it catalog.Item) ItemResponse {
	return ItemResponse{
		ID:             it.ID,
		Name:           it.Name,
		Price:          it.Price,
		SectionCode:    it.SectionCode,
		SKU:            it.SKU,
		StockCount:     it.StockCount,
		Description:    it.Description,
		Features:       it.Features,
		Specifications: it.Specifications,
		Badge:          it.Badge,
		Active:         it.Active,
		Featured:       it.Featured,
		Images:         it.Images,
		MultipleColors: it.MultipleColors,
		ColorVariants:  it.ColorVariants,
		IsColorVariant: it.IsColorVariant,
		OriginalItemID: it.OriginalItemID,
		CreatedAt:      it.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      it.UpdatedAt.Format(time.RFC3339),
	}
}

// ToSectionResponse converts a domain section for the API.
func ToSectionResponse(s catalog.Section) SectionResponse {
	return SectionResponse{
		ID:           s.ID,
		Name:         s.Name,
		Code:         s.Code,
		Active:       s.Active,
		ProductCount: s.ProductCount,
	}
}
