// Package catalog contains the admin-facing application services. The
// storefront never mutates catalog records; it only consumes them
// through the projector.
package catalog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/catalog"
	"github.com/pzf-studio/MAshop-sub000/internal/domain/shared"
)

// ItemService handles admin item operations.
type ItemService struct {
	repo   catalog.Repository
	logger *zap.Logger
}

// NewItemService creates an ItemService.
func NewItemService(repo catalog.Repository, logger *zap.Logger) *ItemService {
	return &ItemService{repo: repo, logger: logger}
}

// Create inserts a new primary item, fanning out variant records when
// it is multi-color.
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	id, err := s.repo.NextItemID(ctx)
	if err != nil {
		return nil, err
	}

	item := itemFromRequest(req)
	item.ID = id
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	stored, err := s.repo.SaveItem(ctx, item)
	if err != nil {
		return nil, err
	}

	s.logger.Info("catalog item created",
		zap.Int("item_id", stored.ID),
		zap.String("section", stored.SectionCode),
		zap.Bool("multiple_colors", stored.MultipleColors),
	)
	resp := ToItemResponse(stored)
	return &resp, nil
}

// Update replaces an existing primary item. Editing a multi-color item
// destroys and recreates all its variant records.
func (s *ItemService) Update(ctx context.Context, id int, req UpdateItemRequest) (*ItemResponse, error) {
	existing, err := s.findPrimary(ctx, id)
	if err != nil {
		return nil, err
	}

	item := itemFromRequest(req)
	item.ID = id
	item.CreatedAt = existing.CreatedAt

	stored, err := s.repo.SaveItem(ctx, item)
	if err != nil {
		return nil, err
	}

	s.logger.Info("catalog item updated", zap.Int("item_id", id))
	resp := ToItemResponse(stored)
	return &resp, nil
}

// Delete removes a primary item together with its variant records.
func (s *ItemService) Delete(ctx context.Context, id int) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.logger.Info("catalog item deleted", zap.Int("item_id", id))
	return nil
}

// Get returns one item, variant records included.
func (s *ItemService) Get(ctx context.Context, id int) (*ItemResponse, error) {
	items, err := s.repo.LoadItems(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ID == id {
			resp := ToItemResponse(it)
			return &resp, nil
		}
	}
	return nil, shared.NewNotFoundError(fmt.Sprintf("item %d does not exist", id))
}

// List returns the raw record collection, variant records included:
// the admin console shows everything the store holds.
func (s *ItemService) List(ctx context.Context) ([]ItemResponse, error) {
	items, err := s.repo.LoadItems(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToItemResponse(it))
	}
	return out, nil
}

func (s *ItemService) findPrimary(ctx context.Context, id int) (catalog.Item, error) {
	items, err := s.repo.LoadItems(ctx)
	if err != nil {
		return catalog.Item{}, err
	}
	for _, it := range items {
		if it.ID == id && !it.IsColorVariant {
			return it, nil
		}
	}
	return catalog.Item{}, shared.NewNotFoundError(fmt.Sprintf("item %d does not exist", id))
}

func itemFromRequest(req CreateItemRequest) catalog.Item {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return catalog.Item{
		Name:           req.Name,
		Price:          req.Price,
		SectionCode:    req.SectionCode,
		SKU:            req.SKU,
		StockCount:     req.StockCount,
		Description:    req.Description,
		Features:       req.Features,
		Specifications: req.Specifications,
		Badge:          req.Badge,
		Active:         active,
		Featured:       req.Featured,
		Images:         req.Images,
		MultipleColors: req.MultipleColors,
		ColorVariants:  req.ColorVariants,
	}
}
