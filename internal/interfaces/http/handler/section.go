package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/pzf-studio/MAshop-sub000/internal/application/catalog"
	"github.com/pzf-studio/MAshop-sub000/internal/interfaces/http/dto"
)

// SectionHandler handles admin section endpoints
type SectionHandler struct {
	BaseHandler
	sections *catalogapp.SectionService
}

// NewSectionHandler creates a new SectionHandler
func NewSectionHandler(sections *catalogapp.SectionService) *SectionHandler {
	return &SectionHandler{sections: sections}
}

// List returns all sections.
func (h *SectionHandler) List(c *gin.Context) {
	out, err := h.sections.List(c.Request.Context())
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, out)
}

// Create inserts a new section.
func (h *SectionHandler) Create(c *gin.Context) {
	var req catalogapp.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}
	out, err := h.sections.Create(c.Request.Context(), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Created(c, out)
}

// Update edits a section's name or active flag.
func (h *SectionHandler) Update(c *gin.Context) {
	var req catalogapp.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}
	out, err := h.sections.Update(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, out)
}

// Delete removes a section unless active items still reference it.
func (h *SectionHandler) Delete(c *gin.Context) {
	if err := h.sections.Delete(c.Request.Context(), c.Param("code")); err != nil {
		h.DomainError(c, err)
		return
	}
	h.NoContent(c)
}
