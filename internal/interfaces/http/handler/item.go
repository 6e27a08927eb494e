package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/pzf-studio/MAshop-sub000/internal/application/catalog"
	"github.com/pzf-studio/MAshop-sub000/internal/interfaces/http/dto"
)

// ItemHandler handles admin item endpoints
type ItemHandler struct {
	BaseHandler
	items *catalogapp.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(items *catalogapp.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// List returns every catalog record, variant records included.
func (h *ItemHandler) List(c *gin.Context) {
	out, err := h.items.List(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, out)
}

// Get returns one catalog record by id.
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	out, err := h.items.Get(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, out)
}

// Create inserts a new primary item.
func (h *ItemHandler) Create(c *gin.Context) {
	var req catalogapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}
	out, err := h.items.Create(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, out)
}

// Update replaces an existing primary item.
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	var req catalogapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}
	out, err := h.items.Update(c.Request.Context(), id, req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, out)
}

// Delete removes a primary item and its variant records.
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ItemHandler) itemID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.BadRequest(c, "item id must be a positive integer")
		return 0, false
	}
	return id, true
}
