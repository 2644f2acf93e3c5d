package caches

import (
	"github.com/JaimeStill/system-api/pkg/jsonapi"
	"github.com/JaimeStill/system-api/pkg/query"
)

// Filters holds the supported filter[...] values of a list request.
type Filters struct {
	Name      string
	IsLocked  *bool
	IsEnabled *bool
}

// FiltersFromQuery reads the supported filters from q. Unknown filter names
// are reported as filter-not-found, unparsable booleans as attribute-validation.
func FiltersFromQuery(q *jsonapi.Query) (Filters, jsonapi.Errors) {
	var f Filters
	var errs jsonapi.Errors

	for _, name := range q.FilterNames() {
		value := q.Filters[name]

		switch name {
		case AttrName:
			f.Name = value
		case AttrIsLocked:
			b, err := query.ParseBool(value)
			if err != nil {
				errs.Add(jsonapi.FilterInvalid(name, "should be a boolean"))
				continue
			}
			f.IsLocked = &b
		case AttrIsEnabled:
			b, err := query.ParseBool(value)
			if err != nil {
				errs.Add(jsonapi.FilterInvalid(name, "should be a boolean"))
				continue
			}
			f.IsEnabled = &b
		default:
			errs.Add(jsonapi.FilterNotFound(Type, name))
		}
	}

	return f, errs
}

// Match reports whether c satisfies every set filter.
func (f Filters) Match(c Cache, m query.Matcher) bool {
	if f.Name != "" && !m.Contains(c.Name, f.Name) {
		return false
	}
	if f.IsLocked != nil && c.IsLocked != *f.IsLocked {
		return false
	}
	if f.IsEnabled != nil && c.IsEnabled != *f.IsEnabled {
		return false
	}
	return true
}
