package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/catalog"
	"github.com/pzf-studio/MAshop-sub000/internal/domain/shared"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/signal"
	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/store"
)

// signalRecorder counts signals per name for assertion.
type signalRecorder struct {
	names []string
	seen  []signal.Signal
}

func (r *signalRecorder) Handle(ctx context.Context, sig signal.Signal) error {
	r.seen = append(r.seen, sig)
	return nil
}

func (r *signalRecorder) SignalNames() []string { return r.names }

func (r *signalRecorder) count(name string) int {
	n := 0
	for _, sig := range r.seen {
		if sig.Name == name {
			n++
		}
	}
	return n
}

func newTestRepo(t *testing.T) (*CatalogRepository, *signalRecorder) {
	t.Helper()
	bus := signal.NewBus(zap.NewNop())
	rec := &signalRecorder{names: []string{
		signal.ItemsChanged, signal.SectionsChanged, signal.CartChanged,
	}}
	bus.Subscribe(rec)
	return NewCatalogRepository(store.NewMemStore(0), bus, zap.NewNop()), rec
}

func primaryItem(id int) catalog.Item {
	return catalog.Item{
		ID:          id,
		Name:        "Пантограф",
		Price:       100000,
		SectionCode: "pantograph",
		Active:      true,
	}
}

func TestCatalogRepository_LoadItemsEmptyStore(t *testing.T) {
	repo, _ := newTestRepo(t)

	items, err := repo.LoadItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCatalogRepository_LoadSectionsSeedsDefaults(t *testing.T) {
	repo, rec := newTestRepo(t)
	ctx := context.Background()

	sections, err := repo.LoadSections(ctx)
	require.NoError(t, err)
	assert.Len(t, sections, 6)
	assert.Equal(t, 1, rec.count(signal.SectionsChanged), "seeding persists and signals once")

	// A second load reads the persisted seed, no re-seeding.
	again, err := repo.LoadSections(ctx)
	require.NoError(t, err)
	assert.Equal(t, sections, again)
	assert.Equal(t, 1, rec.count(signal.SectionsChanged))
}

func TestCatalogRepository_SaveItemRoundTrip(t *testing.T) {
	repo, rec := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.SaveItem(ctx, primaryItem(1))
	require.NoError(t, err)
	assert.Equal(t, "MF-1", saved.SKU)
	assert.Equal(t, 1, rec.count(signal.ItemsChanged))

	items, err := repo.LoadItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Пантограф", items[0].Name)
}

func TestCatalogRepository_SaveItemRejectsVariantRecord(t *testing.T) {
	repo, _ := newTestRepo(t)

	variant := primaryItem(2)
	variant.IsColorVariant = true
	variant.OriginalItemID = 1

	_, err := repo.SaveItem(context.Background(), variant)
	require.Error(t, err)
	assert.True(t, shared.ErrValidationFailed.Is(err))
}

func TestCatalogRepository_SaveItemFansOutVariants(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	item := primaryItem(1)
	item.SKU = "MF-1"
	item.MultipleColors = true
	item.ColorVariants = []catalog.ColorVariant{
		{Name: "Дуб", ColorValue: "#8B4513"},
		{Name: "Белый", ColorValue: "#ffffff"},
	}

	_, err := repo.SaveItem(ctx, item)
	require.NoError(t, err)

	items, err := repo.LoadItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	var variants []catalog.Item
	for _, it := range items {
		if it.IsColorVariant {
			variants = append(variants, it)
		}
	}
	require.Len(t, variants, 2)
	assert.Equal(t, 2, variants[0].ID)
	assert.Equal(t, "MF-1_1", variants[0].SKU)
	assert.Equal(t, 3, variants[1].ID)
	assert.Equal(t, "MF-1_2", variants[1].SKU)
	for _, v := range variants {
		assert.Equal(t, 1, v.OriginalItemID)
	}
}

func TestCatalogRepository_ResaveReplacesVariantSet(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	item := primaryItem(1)
	item.MultipleColors = true
	item.ColorVariants = []catalog.ColorVariant{
		{Name: "A", ColorValue: "#111111"},
		{Name: "B", ColorValue: "#222222"},
	}
	_, err := repo.SaveItem(ctx, item)
	require.NoError(t, err)

	firstGen := make(map[int]bool)
	items, err := repo.LoadItems(ctx)
	require.NoError(t, err)
	for _, it := range items {
		if it.IsColorVariant {
			firstGen[it.ID] = true
		}
	}
	require.Len(t, firstGen, 2)

	item.ColorVariants = append(item.ColorVariants, catalog.ColorVariant{Name: "C", ColorValue: "#333333"})
	_, err = repo.SaveItem(ctx, item)
	require.NoError(t, err)

	items, err = repo.LoadItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 4, "one primary plus a fresh three-variant set")

	names := make(map[string]bool)
	for _, it := range items {
		if it.IsColorVariant {
			names[it.ColorName] = true
			assert.False(t, firstGen[it.ID], "variant ids are never reused across saves")
		}
	}
	assert.Equal(t, map[string]bool{"A": true, "B": true, "C": true}, names)
}

func TestCatalogRepository_DeleteItemCascadesToVariants(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	item := primaryItem(1)
	item.MultipleColors = true
	item.ColorVariants = []catalog.ColorVariant{{Name: "A", ColorValue: "#111111"}}
	_, err := repo.SaveItem(ctx, item)
	require.NoError(t, err)
	_, err = repo.SaveItem(ctx, primaryItem(9))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteItem(ctx, 1))

	items, err := repo.LoadItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 9, items[0].ID)
}

func TestCatalogRepository_DeleteItemNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.DeleteItem(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, shared.ErrNotFound.Is(err))
}

func TestCatalogRepository_DeleteSectionGuardedByActiveItems(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.SaveItem(ctx, primaryItem(1))
	require.NoError(t, err)

	err = repo.DeleteSection(ctx, "pantograph")
	require.Error(t, err)
	assert.True(t, shared.ErrReferenceInUse.Is(err))

	sections, err := repo.LoadSections(ctx)
	require.NoError(t, err)
	assert.Len(t, sections, 6, "refused delete must not mutate")
}

func TestCatalogRepository_DeleteSectionWithInactiveItemsOnly(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	item := primaryItem(1)
	item.Active = false
	_, err := repo.SaveItem(ctx, item)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteSection(ctx, "pantograph"))

	sections, err := repo.LoadSections(ctx)
	require.NoError(t, err)
	assert.Len(t, sections, 5)
}

func TestCatalogRepository_DeleteSectionNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.DeleteSection(context.Background(), "no-such-code")
	require.Error(t, err)
	assert.True(t, shared.ErrNotFound.Is(err))
}

func TestCatalogRepository_NextItemID(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.NextItemID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, id, "empty catalog starts at 1")

	_, err = repo.SaveItem(ctx, primaryItem(7))
	require.NoError(t, err)

	id, err = repo.NextItemID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, id)
}

func TestCatalogRepository_NextSectionID(t *testing.T) {
	repo, _ := newTestRepo(t)

	id, err := repo.NextSectionID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, id, "follows the six seeded sections")
}
