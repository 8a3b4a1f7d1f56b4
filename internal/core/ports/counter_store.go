package ports

import "context"

// CounterStore hands out gapless-enough daily sequence numbers for
// human-facing order numbers (ORD-YYYYMMDD-NNNN). Next must be safe under
// concurrent callers: two orders placed at the same instant get distinct
// numbers.
type CounterStore interface {
	// Next atomically increments and returns the counter for the given
	// scope, e.g. "orders:20260314". The first call for a scope returns 1.
	Next(ctx context.Context, scope string) (int64, error)
}
