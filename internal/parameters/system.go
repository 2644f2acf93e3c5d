package parameters

import (
	"context"
	"encoding/json"

	"github.com/JaimeStill/system-api/pkg/jsonapi"
	"github.com/JaimeStill/system-api/pkg/pagination"
)

// Command carries one submitted resource. Index locates it in the request
// for error pointers; ID is the targeted key for updates and deletes.
type Command struct {
	Index      int
	ID         string
	Attributes map[string]json.RawMessage
}

// System defines the operations of the parameters resource. Write
// operations validate every command first and change nothing when any
// command fails; validation failures are returned as jsonapi.Errors.
type System interface {
	// List returns one page of parameters matching the query filters.
	List(ctx context.Context, q *jsonapi.Query) (*pagination.PageResult[Parameter], error)

	// Find returns the parameter stored under key.
	// Returns ErrNotFound when no scalar is stored there.
	Find(ctx context.Context, key string) (*Parameter, error)

	// Create stores new parameters. Existing keys yield data-exists.
	Create(ctx context.Context, cmds []Command) ([]Parameter, error)

	// Update changes values and, when the key attribute differs from the
	// id, renames the parameter.
	Update(ctx context.Context, cmds []Command) ([]Parameter, error)

	// Delete removes parameters.
	Delete(ctx context.Context, cmds []Command) error
}
