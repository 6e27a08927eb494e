package order

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/cart"
	"github.com/pzf-studio/MAshop-sub000/internal/domain/shared"
)

var validate = validator.New()

// CustomerForm is the checkout form as submitted by the user.
type CustomerForm struct {
	Name    string `json:"customerName" validate:"required"`
	Phone   string `json:"customerPhone" validate:"required"`
	Email   string `json:"customerEmail" validate:"omitempty,email"`
	Address string `json:"customerAddress"`
	Comment string `json:"customerComment"`
}

// Trim removes surrounding whitespace from every field. Validation
// runs on the trimmed form, so whitespace-only required fields fail.
func (f *CustomerForm) Trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.TrimSpace(f.Email)
	f.Address = strings.TrimSpace(f.Address)
	f.Comment = strings.TrimSpace(f.Comment)
}

// Payload is a write-once order snapshot. It is never persisted beyond
// the delivery attempt.
type Payload struct {
	CustomerName    string     `json:"customerName"`
	CustomerPhone   string     `json:"customerPhone"`
	CustomerEmail   string     `json:"customerEmail,omitempty"`
	CustomerAddress string     `json:"customerAddress,omitempty"`
	CustomerComment string     `json:"customerComment,omitempty"`
	Lines           cart.Lines `json:"lines"`
	Total           int64      `json:"total"`
	SubmittedAt     time.Time  `json:"submittedAt"`
}

// NewPayload validates the form and snapshots the cart into an order
// payload. The total is recomputed from the lines here and never
// trusted from any client-side cache.
func NewPayload(form CustomerForm, lines cart.Lines, now time.Time) (Payload, error) {
	form.Trim()
	if err := validate.Struct(form); err != nil {
		if strings.TrimSpace(form.Name) == "" {
			return Payload{}, shared.NewValidationError("customer name is required")
		}
		if strings.TrimSpace(form.Phone) == "" {
			return Payload{}, shared.NewValidationError("customer phone is required")
		}
		return Payload{}, shared.NewValidationError("customer form is invalid: " + err.Error())
	}
	if len(lines) == 0 {
		return Payload{}, shared.NewValidationError("cannot submit an order with an empty cart")
	}

	snapshot := lines.Clone()
	return Payload{
		CustomerName:    form.Name,
		CustomerPhone:   form.Phone,
		CustomerEmail:   form.Email,
		CustomerAddress: form.Address,
		CustomerComment: form.Comment,
		Lines:           snapshot,
		Total:           snapshot.Total(),
		SubmittedAt:     now,
	}, nil
}
