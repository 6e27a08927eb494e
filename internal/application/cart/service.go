// Package cart exposes the storefront cart operations. Every mutation
// runs a load-mutate-persist cycle against the shared store and leaves
// a cart-changed signal behind; cross-tab observers re-read the full
// line list instead of diffing.
package cart

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/cart"
	"github.com/pzf-studio/MAshop-sub000/internal/domain/catalog"
	"github.com/pzf-studio/MAshop-sub000/internal/domain/shared"
)

// Result reports the cart state after a mutation. Clamped is set when
// a quantity hit the per-line maximum, so the caller can warn the
// user.
type Result struct {
	Lines   cart.Lines `json:"lines"`
	Total   int64      `json:"total"`
	Count   int        `json:"count"`
	Clamped bool       `json:"clamped,omitempty"`
}

// Service wires the cart aggregate to its repository and the catalog.
type Service struct {
	carts   cart.Repository
	catalog catalog.Repository
	logger  *zap.Logger
}

// NewService creates a cart service.
func NewService(carts cart.Repository, cat catalog.Repository, logger *zap.Logger) *Service {
	return &Service{carts: carts, catalog: cat, logger: logger}
}

// Add puts qty units of an item into the cart, merging into an
// existing line for the same item. The line snapshots the item's name,
// price and first image at add-time. An unknown or inactive item id is
// a NOT_FOUND error and mutates nothing.
func (s *Service) Add(ctx context.Context, itemID, qty int) (*Result, error) {
	items, err := s.catalog.LoadItems(ctx)
	if err != nil {
		return nil, err
	}
	var item *catalog.Item
	for i := range items {
		if items[i].ID == itemID && items[i].Active {
			item = &items[i]
			break
		}
	}
	if item == nil {
		return nil, shared.NewNotFoundError(fmt.Sprintf("item %d is not available", itemID))
	}

	lines, err := s.carts.LoadLines(ctx)
	if err != nil {
		return nil, err
	}

	imageRef := ""
	if len(item.Images) > 0 {
		imageRef = item.Images[0]
	}
	clamped := lines.Add(cart.Line{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		ImageRef:  imageRef,
		Quantity:  qty,
	})

	if err := s.carts.SaveLines(ctx, lines); err != nil {
		return nil, err
	}
	if clamped {
		s.logger.Warn("cart quantity clamped",
			zap.Int("item_id", itemID),
			zap.Int("max", cart.MaxQuantity),
		)
	}
	return s.result(lines, clamped), nil
}

// SetQuantity replaces a line's quantity; a quantity below one removes
// the line.
func (s *Service) SetQuantity(ctx context.Context, itemID, qty int) (*Result, error) {
	lines, err := s.carts.LoadLines(ctx)
	if err != nil {
		return nil, err
	}
	found, clamped := lines.SetQuantity(itemID, qty)
	if !found && qty >= cart.MinQuantity {
		return nil, shared.NewNotFoundError(fmt.Sprintf("item %d is not in the cart", itemID))
	}
	if err := s.carts.SaveLines(ctx, lines); err != nil {
		return nil, err
	}
	return s.result(lines, clamped), nil
}

// Remove drops an item's line. Removing an absent line is a no-op.
func (s *Service) Remove(ctx context.Context, itemID int) (*Result, error) {
	lines, err := s.carts.LoadLines(ctx)
	if err != nil {
		return nil, err
	}
	lines.Remove(itemID)
	if err := s.carts.SaveLines(ctx, lines); err != nil {
		return nil, err
	}
	return s.result(lines, false), nil
}

// Lines returns the current cart content.
func (s *Service) Lines(ctx context.Context) (cart.Lines, error) {
	return s.carts.LoadLines(ctx)
}

// Clear empties the cart; called on successful order hand-off.
func (s *Service) Clear(ctx context.Context) error {
	return s.carts.SaveLines(ctx, cart.Lines{})
}

func (s *Service) result(lines cart.Lines, clamped bool) *Result {
	return &Result{
		Lines:   lines,
		Total:   lines.Total(),
		Count:   lines.Count(),
		Clamped: clamped,
	}
}
