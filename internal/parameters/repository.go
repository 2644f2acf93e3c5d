package parameters

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/JaimeStill/system-api/pkg/jsonapi"
	"github.com/JaimeStill/system-api/pkg/pagination"
	"github.com/JaimeStill/system-api/pkg/query"
)

// repository serializes writes so conflict checks and the store write see
// the same state.
type repository struct {
	mu      sync.Mutex
	store   Store
	matcher query.Matcher
	logger  *slog.Logger
}

// New creates the parameters system over store.
func New(store Store, matcher query.Matcher, logger *slog.Logger) System {
	return &repository{
		store:   store,
		matcher: matcher,
		logger:  logger.With("system", "parameters"),
	}
}

func (r *repository) List(ctx context.Context, q *jsonapi.Query) (*pagination.PageResult[Parameter], error) {
	filters, errs := FiltersFromQuery(q)

	sorter, sortErrs := jsonapi.NewSorter(Type, q.Sort, defaultSort, comparators)
	errs.Append(sortErrs)

	if err := errs.Err(); err != nil {
		return nil, err
	}

	all, err := r.store.All(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]Parameter, 0, len(all))
	for _, key := range sortedKeys(all) {
		p := Parameter{Key: key, Value: all[key]}
		if filters.Match(p, r.matcher) {
			items = append(items, p)
		}
	}

	sorter.Sort(items)

	result := pagination.Apply(items, q.Page)
	return &result, nil
}

func (r *repository) Find(ctx context.Context, key string) (*Parameter, error) {
	value, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return &Parameter{Key: key, Value: value}, nil
}

func (r *repository) Create(ctx context.Context, cmds []Command) ([]Parameter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.store.All(ctx)
	if err != nil {
		return nil, err
	}

	var errs jsonapi.Errors
	claimed := make(map[string]bool)
	changes := make([]Change, 0, len(cmds))
	created := make([]Parameter, 0, len(cmds))

	for _, cmd := range cmds {
		errs.Append(checkAttributes(cmd.Attributes, cmd.Index))

		key, keyErr := decodeKey(cmd.Attributes[AttrKey], cmd.Index)
		value, valueErr := decodeValue(cmd.Attributes[AttrValue], cmd.Index)

		if keyErr != nil {
			errs.Add(keyErr)
		} else if conflicts(existing, key, "") || claimedOverlap(claimed, key) {
			errs.Add(jsonapi.DataExists(Type, key, cmd.Index))
		}
		if valueErr != nil {
			errs.Add(valueErr)
		}
		if keyErr != nil || valueErr != nil {
			continue
		}

		claimed[key] = true
		changes = append(changes, Change{Key: key, Value: value})
		created = append(created, Parameter{Key: key, Value: value})
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	if err := r.store.Apply(ctx, changes...); err != nil {
		return nil, fmt.Errorf("create parameters: %w", err)
	}

	r.logger.Info("parameters created", "count", len(created))
	return created, nil
}

func (r *repository) Update(ctx context.Context, cmds []Command) ([]Parameter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.store.All(ctx)
	if err != nil {
		return nil, err
	}

	var errs jsonapi.Errors
	claimed := make(map[string]bool)
	changes := make([]Change, 0, len(cmds))
	updated := make([]Parameter, 0, len(cmds))

	for _, cmd := range cmds {
		current, ok := existing[cmd.ID]
		if !ok {
			errs.Add(jsonapi.ResourceNotFound(Type, cmd.ID))
			continue
		}

		errs.Append(checkAttributes(cmd.Attributes, cmd.Index))

		key := cmd.ID
		valid := true
		if raw, ok := cmd.Attributes[AttrKey]; ok {
			k, keyErr := decodeKey(raw, cmd.Index)
			if keyErr != nil {
				errs.Add(keyErr)
				valid = false
			} else {
				key = k
			}
		}

		value := current
		if raw, ok := cmd.Attributes[AttrValue]; ok {
			v, valueErr := decodeValue(raw, cmd.Index)
			if valueErr != nil {
				errs.Add(valueErr)
				valid = false
			} else {
				value = v
			}
		}

		if !valid {
			continue
		}

		if key != cmd.ID && (conflicts(existing, key, cmd.ID) || claimedOverlap(claimed, key)) {
			errs.Add(jsonapi.DataExists(Type, key, cmd.Index))
			continue
		}

		claimed[key] = true
		if key != cmd.ID {
			changes = append(changes, Change{Key: cmd.ID})
		}
		changes = append(changes, Change{Key: key, Value: value})
		updated = append(updated, Parameter{Key: key, Value: value})
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	if err := r.store.Apply(ctx, changes...); err != nil {
		return nil, fmt.Errorf("update parameters: %w", err)
	}

	r.logger.Info("parameters updated", "count", len(updated))
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, cmds []Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.store.All(ctx)
	if err != nil {
		return err
	}

	var errs jsonapi.Errors
	changes := make([]Change, 0, len(cmds))

	for _, cmd := range cmds {
		if _, ok := existing[cmd.ID]; !ok {
			errs.Add(jsonapi.ResourceNotFound(Type, cmd.ID))
			continue
		}
		changes = append(changes, Change{Key: cmd.ID})
	}

	if err := errs.Err(); err != nil {
		return err
	}

	if err := r.store.Apply(ctx, changes...); err != nil {
		return fmt.Errorf("delete parameters: %w", err)
	}

	r.logger.Info("parameters deleted", "count", len(changes))
	return nil
}

// conflicts reports whether key overlaps a stored parameter other than except.
func conflicts(existing map[string]any, key, except string) bool {
	for k := range existing {
		if k != except && overlaps(k, key) {
			return true
		}
	}
	return false
}

func claimedOverlap(claimed map[string]bool, key string) bool {
	for k := range claimed {
		if overlaps(k, key) {
			return true
		}
	}
	return false
}
