package caches

import (
	"context"
	"encoding/json"

	"github.com/JaimeStill/system-api/pkg/jsonapi"
	"github.com/JaimeStill/system-api/pkg/pagination"
)

// UpdateCommand carries the submitted attributes for one cache control.
// Index locates the resource in the request for error pointers.
type UpdateCommand struct {
	Index      int
	ID         string
	Attributes map[string]json.RawMessage
}

// System defines the operations of the caches resource.
type System interface {
	// List returns one page of cache controls matching the query filters.
	// Invalid filters or sort fields are returned as jsonapi.Errors.
	List(ctx context.Context, q *jsonapi.Query) (*pagination.PageResult[Cache], error)

	// Find returns the control registered under id.
	// Returns ErrNotFound if no such control exists.
	Find(ctx context.Context, id string) (*Cache, error)

	// Update validates every command and, only when all are valid, applies
	// the requested enabled states. Validation failures are returned together
	// as jsonapi.Errors.
	Update(ctx context.Context, cmds []UpdateCommand) ([]Cache, error)

	// Warm preloads the control's cache. Returns ErrNotFound for unknown ids.
	Warm(ctx context.Context, id string) error

	// Clear empties the control's cache. Returns ErrNotFound for unknown ids.
	Clear(ctx context.Context, id string) error
}
