package catalog

import "context"

// Repository owns typed access to the two catalog collections and
// id assignment. Ids are max(existing)+1, so callers must persist
// before requesting another id within a batch of inserts.
type Repository interface {
	LoadItems(ctx context.Context) ([]Item, error)
	LoadSections(ctx context.Context) ([]Section, error)
	SaveItems(ctx context.Context, items []Item) error
	SaveSections(ctx context.Context, sections []Section) error

	// SaveItem upserts a primary item, fanning out color-variant
	// records when MultipleColors is set. Returns the stored primary.
	SaveItem(ctx context.Context, item Item) (Item, error)
	// DeleteItem removes a primary item and cascades to its variants.
	DeleteItem(ctx context.Context, id int) error
	// DeleteSection refuses with a REFERENCE_IN_USE error while any
	// active item still references the section code.
	DeleteSection(ctx context.Context, code string) error

	NextItemID(ctx context.Context) (int, error)
	NextSectionID(ctx context.Context) (int, error)
}
