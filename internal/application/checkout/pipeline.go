// Package checkout implements the order delivery pipeline: package the
// cart and customer form into an order payload, make exactly one
// delivery attempt against the external notification endpoint, and on
// failure offer the human-mediated fallback channel instead of
// retrying.
package checkout

import (
	"context"
	"time"

	"go.uber.org/zap"

	cartapp "github.com/pzf-studio/MAshop-sub000/internal/application/cart"
	"github.com/pzf-studio/MAshop-sub000/internal/domain/order"
	"github.com/pzf-studio/MAshop-sub000/internal/domain/shared"
)

// State is a stage of one submission attempt.
type State string

const (
	StateComposing       State = "composing"
	StateValidating      State = "validating"
	StateSending         State = "sending"
	StateDelivered       State = "delivered"
	StateFallbackOffered State = "fallback_offered"
	StateRejected        State = "rejected"
)

// Notifier is the external notification channel: one delivery attempt
// plus the pre-filled fallback deep link.
type Notifier interface {
	SendOrder(ctx context.Context, payload order.Payload) error
	FallbackLink(payload order.Payload) string
}

// Result is the terminal state of one submission attempt. Delivered
// and FallbackOffered both end the checkout flow, but only Delivered
// is endpoint-confirmed; logs keep the two apart.
type Result struct {
	State       State         `json:"state"`
	Payload     order.Payload `json:"payload"`
	FallbackURL string        `json:"fallbackUrl,omitempty"`
	Message     string        `json:"message"`
}

// Pipeline runs submission attempts. Each Submit call is an
// independent state machine instance; a rejected attempt leaves the
// cart untouched and the user resubmits after correcting input.
type Pipeline struct {
	cart     *cartapp.Service
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewPipeline creates a delivery pipeline.
func NewPipeline(cartSvc *cartapp.Service, notifier Notifier, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		cart:     cartSvc,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit runs Composing → Validating → Sending and resolves to one of
// the three terminal states. A validation failure surfaces as
// StateRejected together with the validation error; the cart is only
// cleared on confirmed delivery.
func (p *Pipeline) Submit(ctx context.Context, form order.CustomerForm) (*Result, error) {
	lines, err := p.cart.Lines(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := order.NewPayload(form, lines, p.now())
	if err != nil {
		p.logger.Warn("order rejected by validation",
			zap.String("state", string(StateValidating)),
			zap.Error(err),
		)
		return &Result{State: StateRejected, Message: err.Error()}, err
	}

	if err := p.notifier.SendOrder(ctx, payload); err != nil {
		fallback := p.notifier.FallbackLink(payload)
		p.logger.Warn("order delivery failed, offering fallback channel",
			zap.String("state", string(StateFallbackOffered)),
			zap.Int64("order_total", payload.Total),
			zap.Error(err),
		)
		return &Result{
			State:       StateFallbackOffered,
			Payload:     payload,
			FallbackURL: fallback,
			Message:     "Automatic delivery failed. Send the order through the fallback link.",
		}, nil
	}

	if err := p.cart.Clear(ctx); err != nil {
		// The order is already delivered; a failed cart clear must not
		// undo that. Report delivered and let the next cart write
		// replace the stale lines.
		p.logger.Error("cart clear failed after delivery", zap.Error(err))
	}
	p.logger.Info("order delivered",
		zap.String("state", string(StateDelivered)),
		zap.Int64("order_total", payload.Total),
		zap.Int("line_count", len(payload.Lines)),
	)
	return &Result{
		State:   StateDelivered,
		Payload: payload,
		Message: "Order delivered. We will contact you shortly.",
	}, nil
}

// ConfirmFallback is the user-triggered fallback action: the order has
// been handed to the messaging client, so the cart clears and the
// checkout flow ends. Unlike Delivered the hand-off is unconfirmed,
// which the log line records.
func (p *Pipeline) ConfirmFallback(ctx context.Context, payload order.Payload) error {
	if len(payload.Lines) == 0 {
		return shared.NewDomainError(shared.CodeInvalidState, "no pending order to hand off")
	}
	if err := p.cart.Clear(ctx); err != nil {
		return err
	}
	p.logger.Info("order handed off via fallback channel, delivery unconfirmed",
		zap.String("state", string(StateFallbackOffered)),
		zap.Int64("order_total", payload.Total),
	)
	return nil
}
