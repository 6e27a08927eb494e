package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pzf-studio/MAshop-sub000/internal/application/storefront"
	"github.com/pzf-studio/MAshop-sub000/internal/domain/shared"
)

// StorefrontHandler serves the projected catalog view.
type StorefrontHandler struct {
	BaseHandler
	projector *storefront.Projector
}

// NewStorefrontHandler creates a new StorefrontHandler
func NewStorefrontHandler(projector *storefront.Projector) *StorefrontHandler {
	return &StorefrontHandler{projector: projector}
}

// View returns the full storefront projection.
func (h *StorefrontHandler) View(c *gin.Context) {
	h.Success(c, h.projector.View())
}

// Item returns one storefront product card.
func (h *StorefrontHandler) Item(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.BadRequest(c, "item id must be a positive integer")
		return
	}
	item, ok := h.projector.ItemByID(id)
	if !ok {
		h.DomainError(c, shared.NewNotFoundError(fmt.Sprintf("item %d is not available", id)))
		return
	}
	h.Success(c, item)
}

// Section returns the items of one section.
func (h *StorefrontHandler) Section(c *gin.Context) {
	h.Success(c, h.projector.ItemsBySection(c.Param("code")))
}

// Featured returns up to `limit` featured items (default 8).
func (h *StorefrontHandler) Featured(c *gin.Context) {
	limit := 8
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	h.Success(c, h.projector.FeaturedItems(limit))
}

// Stats returns projection summary counters.
func (h *StorefrontHandler) Stats(c *gin.Context) {
	h.Success(c, h.projector.Stats())
}
