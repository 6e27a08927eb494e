package signal

import (
	"context"

	"go.uber.org/zap"

	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/store"
)

// KeyRoutes maps replicated store keys to the signal each one raises.
func KeyRoutes() map[string]string {
	return map[string]string{
		store.KeyCatalogItems:    ItemsChanged,
		store.KeyCatalogSections: SectionsChanged,
		store.KeyCartLines:       CartChanged,
	}
}

// Bridge republishes cross-context store change notifications as bus
// signals, so subscribers observe writes from every context through a
// single subscription. Writes by this process never arrive here; the
// writer publishes on the bus itself after the store write commits.
type Bridge struct {
	watcher *store.Watcher
	bus     *Bus
	routes  map[string]string
	logger  *zap.Logger
}

// NewBridge wires a store watcher to a bus using the given key routes.
func NewBridge(watcher *store.Watcher, bus *Bus, routes map[string]string, logger *zap.Logger) *Bridge {
	return &Bridge{
		watcher: watcher,
		bus:     bus,
		routes:  routes,
		logger:  logger,
	}
}

// Run consumes watcher events until the stream closes or the context
// is cancelled. Call in a goroutine after Watcher.Start.
func (b *Bridge) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-b.watcher.Events():
			if !ok {
				return
			}
			name, watched := b.routes[ev.Key]
			if !watched {
				continue
			}
			b.logger.Debug("replicating store change",
				zap.String("key", ev.Key),
				zap.String("signal", name),
			)
			b.bus.Publish(ctx, New(name, SourceReplica))
		}
	}
}
