// Package store provides the shared, origin-scoped key-value store
// every execution context reads and writes. All operations are
// synchronous; values are strings (JSON-serialized collections).
package store

// Well-known store keys. Auxiliary keys may exist alongside these but
// are not replicated.
const (
	KeyCatalogItems    = "catalog-items"
	KeyCatalogSections = "catalog-sections"
	KeyCartLines       = "cart-lines"
)

// Store is the persistent store port. Set may fail with a
// CAPACITY_EXCEEDED domain error when the configured quota would be
// exceeded; SetWithRecovery implements the documented recovery policy
// of clearing the entire store and retrying the single write once.
// A second failure is fatal to that write only, never to the process.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	SetWithRecovery(key, value string) error
	Remove(key string)
	Clear()
}
