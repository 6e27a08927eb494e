package storefront

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/catalog"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/persistence"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/signal"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/store"
)

func activeItem(id int, section string) catalog.Item {
	item := catalog.Item{
		ID:          id,
		Name:        "Item",
		Price:       1000,
		SectionCode: section,
		Active:      true,
	}
	item.Normalize(time.Now())
	return item
}

func TestProject_FiltersInactiveAndVariantRecords(t *testing.T) {
	inactive := activeItem(2, "pantograph")
	inactive.Active = false
	variant := activeItem(3, "pantograph")
	variant.IsColorVariant = true
	variant.OriginalItemID = 1

	view := Project(
		[]catalog.Item{activeItem(1, "pantograph"), inactive, variant},
		catalog.DefaultSections(),
	)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].ID)
}

func TestProject_SectionCountsAreLive(t *testing.T) {
	items := []catalog.Item{
		activeItem(1, "pantograph"),
		activeItem(2, "pantograph"),
		activeItem(3, "kitchen"),
	}

	view := Project(items, catalog.DefaultSections())

	counts := make(map[string]int)
	for _, s := range view.Sections {
		counts[s.Code] = s.ProductCount
	}
	assert.Equal(t, 2, counts["pantograph"])
	assert.Equal(t, 1, counts["kitchen"])
	assert.Equal(t, 0, counts["wise"])
}

func TestProject_ExcludesInactiveSections(t *testing.T) {
	sections := catalog.DefaultSections()
	sections[0].Active = false

	view := Project(nil, sections)

	assert.Len(t, view.Sections, 5)
	for _, s := range view.Sections {
		assert.NotEqual(t, "pantograph", s.Code)
	}
}

func TestProject_ResolvesColorsFromVariantRecords(t *testing.T) {
	primary := activeItem(1, "pantograph")
	primary.MultipleColors = true

	oak := activeItem(2, "pantograph")
	oak.IsColorVariant = true
	oak.OriginalItemID = 1
	oak.ColorName = "Дуб"
	oak.ColorValue = "#8B4513"
	oak.Images = []string{"oak.jpg"}

	hidden := activeItem(3, "pantograph")
	hidden.IsColorVariant = true
	hidden.OriginalItemID = 1
	hidden.Active = false

	view := Project([]catalog.Item{primary, oak, hidden}, catalog.DefaultSections())

	require.Len(t, view.Items, 1)
	card := view.Items[0]
	assert.True(t, card.HasColors)
	require.Len(t, card.Colors, 1, "inactive variants stay hidden")
	assert.Equal(t, 2, card.Colors[0].VariantID)
	assert.Equal(t, "Дуб", card.Colors[0].Name)
	assert.Equal(t, "#8B4513", card.Colors[0].ColorValue)
	assert.Equal(t, []string{"oak.jpg"}, card.Colors[0].Images)
}

func TestProject_LegacyVariantGetsFallbackColor(t *testing.T) {
	primary := activeItem(1, "pantograph")
	primary.MultipleColors = true

	legacy := activeItem(2, "pantograph")
	legacy.IsColorVariant = true
	legacy.OriginalItemID = 1
	legacy.ColorName = "Старый"

	view := Project([]catalog.Item{primary, legacy}, catalog.DefaultSections())

	require.Len(t, view.Items, 1)
	require.Len(t, view.Items[0].Colors, 1)
	assert.NotEmpty(t, view.Items[0].Colors[0].ColorValue)
}

func newProjectorHarness(t *testing.T) (*Projector, *persistence.CatalogRepository) {
	t.Helper()
	bus := signal.NewBus(zap.NewNop())
	repo := persistence.NewCatalogRepository(store.NewMemStore(0), bus, zap.NewNop())
	p := NewProjector(repo, bus, zap.NewNop())
	require.NoError(t, p.Refresh(context.Background()))
	return p, repo
}

func TestProjector_RefreshesOnCatalogSignals(t *testing.T) {
	p, repo := newProjectorHarness(t)
	ctx := context.Background()

	assert.Empty(t, p.View().Items)

	// SaveItem publishes items-changed, which must reach the projector
	// without an explicit Refresh call.
	_, err := repo.SaveItem(ctx, activeItem(1, "pantograph"))
	require.NoError(t, err)

	view := p.View()
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].ID)
}

func TestProjector_Getters(t *testing.T) {
	p, repo := newProjectorHarness(t)
	ctx := context.Background()

	featured := activeItem(1, "pantograph")
	featured.Featured = true
	_, err := repo.SaveItem(ctx, featured)
	require.NoError(t, err)
	_, err = repo.SaveItem(ctx, activeItem(2, "kitchen"))
	require.NoError(t, err)

	got, ok := p.ItemByID(2)
	require.True(t, ok)
	assert.Equal(t, "kitchen", got.SectionCode)

	_, ok = p.ItemByID(404)
	assert.False(t, ok)

	assert.Len(t, p.ItemsBySection("pantograph"), 1)
	assert.Empty(t, p.ItemsBySection("wise"))

	hot := p.FeaturedItems(10)
	require.Len(t, hot, 1)
	assert.Equal(t, 1, hot[0].ID)

	stats := p.Stats()
	assert.Equal(t, 2, stats.TotalItems)
	assert.Equal(t, 1, stats.FeaturedItems)
	assert.Equal(t, 6, stats.TotalSections)
}
