// Package storefront derives the read-only product view the shop
// serves. The projection is recomputed from the raw records whenever a
// replication signal fires; it never mutates its inputs and never
// writes the store.
package storefront

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/catalog"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/signal"
)

// legacyPalette backs the representative-color fallback for variant
// records that predate explicit color values.
var legacyPalette = []string{"#cccccc", "#FFD700", "#8B4513", "#2F4F4F", "#800000"}

// Project computes the storefront view from raw records. Deterministic
// given its inputs, except the documented legacy fallback that assigns
// a random representative color when a variant record carries none.
func Project(items []catalog.Item, sections []catalog.Section) StorefrontView {
	counts := make(map[string]int)
	views := make([]ItemView, 0, len(items))

	for _, it := range items {
		if !it.Active || it.IsVariant() {
			continue
		}
		counts[it.SectionCode]++
		views = append(views, ItemView{
			ID:             it.ID,
			Name:           it.Name,
			Price:          it.Price,
			SectionCode:    it.SectionCode,
			SKU:            it.SKU,
			StockCount:     it.StockCount,
			Description:    it.Description,
			Features:       append([]string(nil), it.Features...),
			Specifications: append([]catalog.SpecEntry(nil), it.Specifications...),
			Badge:          it.Badge,
			Featured:       it.Featured,
			Images:         append([]string(nil), it.Images...),
			HasColors:      it.MultipleColors,
			Colors:         resolveColors(it, items),
		})
	}

	sectionViews := make([]SectionView, 0, len(sections))
	for _, s := range sections {
		if !s.Active {
			continue
		}
		sectionViews = append(sectionViews, SectionView{
			ID:           s.ID,
			Name:         s.Name,
			Code:         s.Code,
			ProductCount: counts[s.Code],
		})
	}

	return StorefrontView{
		Sections:    sectionViews,
		Items:       views,
		GeneratedAt: time.Now(),
	}
}

// resolveColors collects the active variant records of a primary item
// into selectable color options.
func resolveColors(primary catalog.Item, items []catalog.Item) []ColorOption {
	if !primary.MultipleColors {
		return nil
	}
	var colors []ColorOption
	for _, it := range items {
		if !it.IsVariant() || it.OriginalItemID != primary.ID || !it.Active {
			continue
		}
		colorValue := it.ColorValue
		if colorValue == "" {
			// Legacy variant data without an explicit color.
			colorValue = legacyPalette[rand.Intn(len(legacyPalette))]
		}
		colors = append(colors, ColorOption{
			VariantID:  it.ID,
			Name:       it.ColorName,
			ColorValue: colorValue,
			Images:     append([]string(nil), it.Images...),
		})
	}
	return colors
}

// Projector keeps the current storefront view, refreshing it on every
// items-changed/sections-changed signal regardless of which context
// produced the write.
type Projector struct {
	repo   catalog.Repository
	logger *zap.Logger

	mu   sync.RWMutex
	view StorefrontView
}

// NewProjector creates a projector and subscribes it to the bus.
// Call Refresh once after construction to populate the initial view.
func NewProjector(repo catalog.Repository, bus *signal.Bus, logger *zap.Logger) *Projector {
	p := &Projector{repo: repo, logger: logger}
	bus.Subscribe(p)
	return p
}

// Handle implements signal.Handler: any catalog signal invalidates the
// cached view. The signal carries no payload worth trusting; the
// authoritative collections are re-read from the store.
func (p *Projector) Handle(ctx context.Context, sig signal.Signal) error {
	p.logger.Debug("recomputing storefront projection",
		zap.String("signal", sig.Name),
		zap.String("source", sig.Source),
	)
	return p.Refresh(ctx)
}

// SignalNames implements signal.Handler.
func (p *Projector) SignalNames() []string {
	return []string{signal.ItemsChanged, signal.SectionsChanged}
}

// Refresh re-reads the catalog and swaps in a fresh projection.
func (p *Projector) Refresh(ctx context.Context) error {
	items, err := p.repo.LoadItems(ctx)
	if err != nil {
		return err
	}
	sections, err := p.repo.LoadSections(ctx)
	if err != nil {
		return err
	}

	view := Project(items, sections)

	p.mu.Lock()
	p.view = view
	p.mu.Unlock()
	return nil
}

// View returns the current projection snapshot.
func (p *Projector) View() StorefrontView {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view
}

// ItemByID returns one storefront item from the current view.
func (p *Projector) ItemByID(id int) (ItemView, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, it := range p.view.Items {
		if it.ID == id {
			return it, true
		}
	}
	return ItemView{}, false
}

// ItemsBySection returns the view items of one section.
func (p *Projector) ItemsBySection(code string) []ItemView {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []ItemView
	for _, it := range p.view.Items {
		if it.SectionCode == code {
			out = append(out, it)
		}
	}
	return out
}

// FeaturedItems returns up to limit featured items.
func (p *Projector) FeaturedItems(limit int) []ItemView {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []ItemView
	for _, it := range p.view.Items {
		if !it.Featured {
			continue
		}
		out = append(out, it)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// Stats summarizes the current projection.
func (p *Projector) Stats() Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	featured := 0
	for _, it := range p.view.Items {
		if it.Featured {
			featured++
		}
	}
	return Stats{
		TotalItems:    len(p.view.Items),
		FeaturedItems: featured,
		TotalSections: len(p.view.Sections),
		LastUpdated:   p.view.GeneratedAt,
	}
}

var _ signal.Handler = (*Projector)(nil)
