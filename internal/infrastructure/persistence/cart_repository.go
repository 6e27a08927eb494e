package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/cart"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/signal"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/store"
)

// CartRepository persists the cart line list whole under its store key
// and raises cart-changed after every committed write.
type CartRepository struct {
	store  store.Store
	bus    *signal.Bus
	logger *zap.Logger
}

// NewCartRepository creates a cart repository.
func NewCartRepository(st store.Store, bus *signal.Bus, logger *zap.Logger) *CartRepository {
	return &CartRepository{
		store:  st,
		bus:    bus,
		logger: logger,
	}
}

// LoadLines reads the full line list; an absent key is an empty cart.
func (r *CartRepository) LoadLines(ctx context.Context) (cart.Lines, error) {
	raw, ok := r.store.Get(store.KeyCartLines)
	if !ok || raw == "" {
		return cart.Lines{}, nil
	}
	var lines cart.Lines
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", store.KeyCartLines, err)
	}
	return lines, nil
}

// SaveLines replaces the line list.
func (r *CartRepository) SaveLines(ctx context.Context, lines cart.Lines) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", store.KeyCartLines, err)
	}
	if err := r.store.SetWithRecovery(store.KeyCartLines, string(data)); err != nil {
		return err
	}
	r.bus.Publish(ctx, signal.New(signal.CartChanged, signal.SourceLocal))
	return nil
}

var _ cart.Repository = (*CartRepository)(nil)
