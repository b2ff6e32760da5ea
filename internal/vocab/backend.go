package vocab

import "context"

// Backend persists vocabulary entries in insertion order.
type Backend interface {
	// All returns every stored entry in insertion order.
	All(ctx context.Context) ([]Entry, error)
	// Insert stores entries atomically: either all are written or none.
	Insert(ctx context.Context, entries []Entry) error
	Close() error
}
