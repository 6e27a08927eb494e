// Package signal implements the replication signal bus: same-context
// publish/subscribe plus a bridge from cross-context store change
// notifications. A signal means "a collection changed, re-read it";
// it carries no data payload.
package signal

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Signal names, one per replicated collection.
const (
	ItemsChanged    = "items-changed"
	SectionsChanged = "sections-changed"
	CartChanged     = "cart-changed"
)

// Signal sources, kept distinct so logs can tell a local write from a
// replicated one.
const (
	SourceLocal   = "local"
	SourceReplica = "replica"
)

// Signal is a collection-changed notification.
type Signal struct {
	ID       uuid.UUID
	Name     string
	Source   string
	IssuedAt time.Time
}

// New creates a signal for the given collection name and source.
func New(name, source string) Signal {
	return Signal{
		ID:       uuid.New(),
		Name:     name,
		Source:   source,
		IssuedAt: time.Now(),
	}
}

// Handler consumes signals.
type Handler interface {
	// Handle processes one signal. Handlers must re-read the
	// authoritative collection from the store; the signal itself
	// guarantees nothing about freshness.
	Handle(ctx context.Context, sig Signal) error
	// SignalNames returns the signal names the handler subscribes to
	// by default. Empty means all signals.
	SignalNames() []string
}

// HandlerFunc adapts a function to the Handler interface. It
// subscribes to the names given at Subscribe time.
type HandlerFunc func(ctx context.Context, sig Signal) error

func (f HandlerFunc) Handle(ctx context.Context, sig Signal) error { return f(ctx, sig) }
func (f HandlerFunc) SignalNames() []string                        { return nil }

// Bus is the in-process signal bus. Dispatch is synchronous and in
// subscription order, so two rapid publishes in the same context are
// observed as two signals in issuance order.
type Bus struct {
	logger *zap.Logger

	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus creates a signal bus.
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		logger:   logger,
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers a handler for the given signal names. When no
// names are given, the handler's own SignalNames are used.
func (b *Bus) Subscribe(handler Handler, names ...string) {
	if len(names) == 0 {
		names = handler.SignalNames()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, name := range names {
		b.handlers[name] = append(b.handlers[name], handler)
	}
	b.logger.Debug("signal handler subscribed", zap.Strings("signals", names))
}

// Unsubscribe removes a handler from every signal name.
func (b *Bus) Unsubscribe(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for name, hs := range b.handlers {
		kept := hs[:0]
		for _, h := range hs {
			if h != handler {
				kept = append(kept, h)
			}
		}
		b.handlers[name] = kept
	}
}

// Publish dispatches signals to all registered handlers. A failing or
// panicking handler is logged and does not stop delivery to the rest.
func (b *Bus) Publish(ctx context.Context, signals ...Signal) {
	for _, sig := range signals {
		b.mu.RLock()
		handlers := append([]Handler(nil), b.handlers[sig.Name]...)
		b.mu.RUnlock()

		for _, h := range handlers {
			if err := b.dispatch(ctx, h, sig); err != nil {
				b.logger.Error("signal handler failed",
					zap.String("signal", sig.Name),
					zap.String("source", sig.Source),
					zap.String("signal_id", sig.ID.String()),
					zap.Error(err),
				)
			}
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, h Handler, sig Signal) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("signal handler panicked",
				zap.String("signal", sig.Name),
				zap.Any("panic", r),
			)
		}
	}()
	return h.Handle(ctx, sig)
}
