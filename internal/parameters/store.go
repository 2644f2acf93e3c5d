package parameters

import "context"

// Change sets Key to Value. A nil Value removes the key.
type Change struct {
	Key   string
	Value any
}

// Store persists parameters. Keys are dotted paths into nested tables:
// setting a key replaces any table stored at that path and any scalar
// stored at one of its parents.
type Store interface {
	// All returns every parameter flattened to dotted keys.
	All(ctx context.Context) (map[string]any, error)

	// Get returns the scalar stored at key, or nil when there is none.
	Get(ctx context.Context, key string) (any, error)

	// Apply performs changes in order as a single write.
	Apply(ctx context.Context, changes ...Change) error
}
