package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/pzf-studio/MAshop-sub000/internal/application/checkout"
	"github.com/pzf-studio/MAshop-sub000/internal/domain/order"
	"github.com/pzf-studio/MAshop-sub000/internal/interfaces/http/dto"
)

// CheckoutHandler drives the order delivery pipeline.
type CheckoutHandler struct {
	BaseHandler
	pipeline *checkout.Pipeline
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(pipeline *checkout.Pipeline) *CheckoutHandler {
	return &CheckoutHandler{pipeline: pipeline}
}

// Submit runs one submission attempt. A rejected attempt returns the
// validation error; a failed delivery returns the fallback link with a
// 200, because the flow continues through the fallback action.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var form order.CustomerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}
	result, err := h.pipeline.Submit(c.Request.Context(), form)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, result)
}

// ConfirmFallback is invoked after the user opened the fallback link;
// it clears the cart and ends the checkout flow.
func (h *CheckoutHandler) ConfirmFallback(c *gin.Context) {
	var payload order.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}
	if err := h.pipeline.ConfirmFallback(c.Request.Context(), payload); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
