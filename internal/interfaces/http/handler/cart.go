package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	cartapp "github.com/pzf-studio/MAshop-sub000/internal/application/cart"
	"github.com/pzf-studio/MAshop-sub000/internal/interfaces/http/dto"
)

// CartHandler handles storefront cart endpoints
type CartHandler struct {
	BaseHandler
	cart *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cart *cartapp.Service) *CartHandler {
	return &CartHandler{cart: cart}
}

// AddRequest is the add-to-cart payload. Quantity defaults to one.
type AddRequest struct {
	ItemID   int `json:"itemId" binding:"required,min=1"`
	Quantity int `json:"quantity" binding:"omitempty,min=1,max=99"`
}

// QuantityRequest sets a line's quantity; zero removes the line.
type QuantityRequest struct {
	Quantity int `json:"quantity" binding:"min=0,max=99"`
}

// Get returns the current cart content.
func (h *CartHandler) Get(c *gin.Context) {
	lines, err := h.cart.Lines(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, cartapp.Result{Lines: lines, Total: lines.Total(), Count: lines.Count()})
}

// Add merges an item into the cart.
func (h *CartHandler) Add(c *gin.Context) {
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	out, err := h.cart.Add(c.Request.Context(), req.ItemID, qty)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, out)
}

// SetQuantity replaces a line's quantity.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	id, ok := h.lineItemID(c)
	if !ok {
		return
	}
	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}
	out, err := h.cart.SetQuantity(c.Request.Context(), id, req.Quantity)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, out)
}

// Remove drops a line from the cart.
func (h *CartHandler) Remove(c *gin.Context) {
	id, ok := h.lineItemID(c)
	if !ok {
		return
	}
	out, err := h.cart.Remove(c.Request.Context(), id)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, out)
}

func (h *CartHandler) lineItemID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.BadRequest(c, "item id must be a positive integer")
		return 0, false
	}
	return id, true
}
