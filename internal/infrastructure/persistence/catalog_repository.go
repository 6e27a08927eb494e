// Package persistence implements the record repositories over the
// shared store adapter. Collections are persisted whole: a save either
// fully replaces a collection or is not attempted.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/catalog"
	"github.com/pzf-studio/MAshop-sub000/internal/domain/shared"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/signal"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/store"
)

// CatalogRepository persists catalog items and sections as serialized
// arrays under their store keys and publishes the matching signal
// after every committed write. The write fully commits before the
// signal fires.
type CatalogRepository struct {
	store  store.Store
	bus    *signal.Bus
	logger *zap.Logger
	now    func() time.Time
}

// NewCatalogRepository creates a catalog repository.
func NewCatalogRepository(st store.Store, bus *signal.Bus, logger *zap.Logger) *CatalogRepository {
	return &CatalogRepository{
		store:  st,
		bus:    bus,
		logger: logger,
		now:    time.Now,
	}
}

// LoadItems reads the full item collection. An absent key is an empty
// collection.
func (r *CatalogRepository) LoadItems(ctx context.Context) ([]catalog.Item, error) {
	raw, ok := r.store.Get(store.KeyCatalogItems)
	if !ok || raw == "" {
		return []catalog.Item{}, nil
	}
	var items []catalog.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", store.KeyCatalogItems, err)
	}
	now := r.now()
	for i := range items {
		items[i].Normalize(now)
	}
	return items, nil
}

// LoadSections reads the section collection, seeding and persisting
// the canonical default set on first run.
func (r *CatalogRepository) LoadSections(ctx context.Context) ([]catalog.Section, error) {
	raw, ok := r.store.Get(store.KeyCatalogSections)
	if ok && raw != "" {
		var sections []catalog.Section
		if err := json.Unmarshal([]byte(raw), &sections); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", store.KeyCatalogSections, err)
		}
		if len(sections) > 0 {
			return sections, nil
		}
	}

	seed := catalog.DefaultSections()
	if err := r.SaveSections(ctx, seed); err != nil {
		return nil, err
	}
	r.logger.Info("seeded default catalog sections", zap.Int("count", len(seed)))
	return seed, nil
}

// SaveItems replaces the item collection.
func (r *CatalogRepository) SaveItems(ctx context.Context, items []catalog.Item) error {
	if err := r.persist(store.KeyCatalogItems, items); err != nil {
		return err
	}
	r.bus.Publish(ctx, signal.New(signal.ItemsChanged, signal.SourceLocal))
	return nil
}

// SaveSections replaces the section collection.
func (r *CatalogRepository) SaveSections(ctx context.Context, sections []catalog.Section) error {
	if err := r.persist(store.KeyCatalogSections, sections); err != nil {
		return err
	}
	r.bus.Publish(ctx, signal.New(signal.SectionsChanged, signal.SourceLocal))
	return nil
}

// SaveItem upserts one primary item. When the item is multi-color,
// every previously fanned-out variant record for it is removed and a
// fresh set is created, one per color variant. This is a full replace:
// variant ids are not stable across edits.
func (r *CatalogRepository) SaveItem(ctx context.Context, item catalog.Item) (catalog.Item, error) {
	if item.IsColorVariant {
		return catalog.Item{}, shared.NewValidationError("variant records cannot be saved directly, edit the primary item")
	}

	now := r.now()
	item.Normalize(now)
	item.UpdatedAt = now
	if err := item.Validate(); err != nil {
		return catalog.Item{}, err
	}

	items, err := r.LoadItems(ctx)
	if err != nil {
		return catalog.Item{}, err
	}

	// Variant ids advance past everything ever observed, the previous
	// variant set included, so a re-save never reuses an id.
	nextID := maxItemID(items)
	if item.ID > nextID {
		nextID = item.ID
	}
	nextID++

	// Drop the previous version of the primary and all its variants.
	kept := items[:0]
	for _, it := range items {
		if it.ID == item.ID {
			continue
		}
		if it.IsColorVariant && it.OriginalItemID == item.ID {
			continue
		}
		kept = append(kept, it)
	}
	kept = append(kept, item)

	if item.MultipleColors {
		for idx, v := range item.ColorVariants {
			rec := catalog.NewVariantRecord(item, v, idx+1, nextID, now)
			kept = append(kept, rec)
			nextID++
		}
	}

	if err := r.SaveItems(ctx, kept); err != nil {
		return catalog.Item{}, err
	}
	return item, nil
}

// DeleteItem removes a primary item and cascades to its variant
// records.
func (r *CatalogRepository) DeleteItem(ctx context.Context, id int) error {
	items, err := r.LoadItems(ctx)
	if err != nil {
		return err
	}
	found := false
	kept := items[:0]
	for _, it := range items {
		if it.ID == id {
			found = true
			continue
		}
		if it.IsColorVariant && it.OriginalItemID == id {
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return shared.NewNotFoundError(fmt.Sprintf("item %d does not exist", id))
	}
	return r.SaveItems(ctx, kept)
}

// DeleteSection removes a section by code. The delete is refused while
// any active item still references the code; this referential check
// lives here at the repository boundary, not in the store.
func (r *CatalogRepository) DeleteSection(ctx context.Context, code string) error {
	sections, err := r.LoadSections(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i, s := range sections {
		if s.Code == code {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.NewNotFoundError(fmt.Sprintf("section %q does not exist", code))
	}

	items, err := r.LoadItems(ctx)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.Active && it.SectionCode == code {
			return shared.NewDomainError(shared.CodeReferenceInUse,
				fmt.Sprintf("section %q still has active items", code))
		}
	}

	sections = append(sections[:idx], sections[idx+1:]...)
	return r.SaveSections(ctx, sections)
}

// NextItemID returns max(existing ids)+1. Persist before requesting
// another id, or a batch of inserts will collide.
func (r *CatalogRepository) NextItemID(ctx context.Context) (int, error) {
	items, err := r.LoadItems(ctx)
	if err != nil {
		return 0, err
	}
	return maxItemID(items) + 1, nil
}

// NextSectionID returns max(existing ids)+1.
func (r *CatalogRepository) NextSectionID(ctx context.Context) (int, error) {
	sections, err := r.LoadSections(ctx)
	if err != nil {
		return 0, err
	}
	max := 0
	for _, s := range sections {
		if s.ID > max {
			max = s.ID
		}
	}
	return max + 1, nil
}

func (r *CatalogRepository) persist(key string, collection any) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return r.store.SetWithRecovery(key, string(data))
}

func maxItemID(items []catalog.Item) int {
	max := 0
	for _, it := range items {
		if it.ID > max {
			max = it.ID
		}
	}
	return max
}

var _ catalog.Repository = (*CatalogRepository)(nil)
