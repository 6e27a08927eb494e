package cart

import "context"

// Repository persists the whole line list; cross-tab observers re-read
// the full list rather than diffing.
type Repository interface {
	LoadLines(ctx context.Context) (Lines, error)
	SaveLines(ctx context.Context, lines Lines) error
}
