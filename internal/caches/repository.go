package caches

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/JaimeStill/system-api/pkg/jsonapi"
	"github.com/JaimeStill/system-api/pkg/pagination"
	"github.com/JaimeStill/system-api/pkg/query"
)

type repository struct {
	registry *Registry
	matcher  query.Matcher
	logger   *slog.Logger
}

// New creates the caches system over registry. matcher decides the case
// policy of the name filter.
func New(registry *Registry, matcher query.Matcher, logger *slog.Logger) System {
	return &repository{
		registry: registry,
		matcher:  matcher,
		logger:   logger.With("system", "caches"),
	}
}

func (r *repository) List(ctx context.Context, q *jsonapi.Query) (*pagination.PageResult[Cache], error) {
	filters, errs := FiltersFromQuery(q)

	sorter, sortErrs := jsonapi.NewSorter(Type, q.Sort, defaultSort, comparators)
	errs.Append(sortErrs)

	if err := errs.Err(); err != nil {
		return nil, err
	}

	controls := r.registry.All()
	items := make([]Cache, 0, len(controls))
	for _, c := range controls {
		snap := Snapshot(c)
		if filters.Match(snap, r.matcher) {
			items = append(items, snap)
		}
	}

	sorter.Sort(items)

	result := pagination.Apply(items, q.Page)
	return &result, nil
}

func (r *repository) Find(ctx context.Context, id string) (*Cache, error) {
	c, err := r.registry.Get(id)
	if err != nil {
		return nil, err
	}
	snap := Snapshot(c)
	return &snap, nil
}

type pendingUpdate struct {
	control Control
	enabled *bool
}

func (r *repository) Update(ctx context.Context, cmds []UpdateCommand) ([]Cache, error) {
	var errs jsonapi.Errors
	pending := make([]pendingUpdate, 0, len(cmds))

	for _, cmd := range cmds {
		c, err := r.registry.Get(cmd.ID)
		if err != nil {
			errs.Add(jsonapi.ResourceNotFound(Type, cmd.ID))
			continue
		}

		update, validationErrs := validate(c, cmd)
		errs.Append(validationErrs)
		pending = append(pending, update)
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	result := make([]Cache, 0, len(pending))
	for _, p := range pending {
		if err := apply(p); err != nil {
			return nil, err
		}
		r.logger.Info("cache updated", "cache", p.control.Name(), "enabled", p.control.IsEnabled())
		result = append(result, Snapshot(p.control))
	}

	return result, nil
}

func (r *repository) Warm(ctx context.Context, id string) error {
	c, err := r.registry.Get(id)
	if err != nil {
		return err
	}
	if err := c.Warm(ctx); err != nil {
		return err
	}
	r.logger.Info("cache warmed", "cache", id)
	return nil
}

func (r *repository) Clear(ctx context.Context, id string) error {
	c, err := r.registry.Get(id)
	if err != nil {
		return err
	}
	if err := c.Clear(ctx); err != nil {
		return fmt.Errorf("clear %s: %w", id, err)
	}
	r.logger.Info("cache cleared", "cache", id)
	return nil
}

// validate checks the submitted attributes against the live control. name
// and isLocked are derived from the control and never writable.
func validate(c Control, cmd UpdateCommand) (pendingUpdate, jsonapi.Errors) {
	update := pendingUpdate{control: c}
	var errs jsonapi.Errors

	names := make([]string, 0, len(cmd.Attributes))
	for name := range cmd.Attributes {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		raw := cmd.Attributes[name]

		switch name {
		case AttrName, AttrIsLocked:
			errs.Add(jsonapi.AttributeReadonly(Type, name, cmd.Index))

		case AttrIsEnabled:
			var enabled bool
			if jsonapi.IsNull(raw) || json.Unmarshal(raw, &enabled) != nil {
				errs.Add(jsonapi.AttributeValidation(Type, name, "should be a boolean", cmd.Index))
				continue
			}
			if enabled != c.IsEnabled() && !c.CanToggle() {
				errs.Add(jsonapi.AttributeReadonly(Type, name, cmd.Index))
				continue
			}
			update.enabled = &enabled

		default:
			errs.Add(jsonapi.AttributeValidation(Type, name, "is not an attribute of "+Type, cmd.Index))
		}
	}

	return update, errs
}

func apply(p pendingUpdate) error {
	if p.enabled == nil || *p.enabled == p.control.IsEnabled() {
		return nil
	}
	if *p.enabled {
		return p.control.Enable()
	}
	return p.control.Disable()
}
