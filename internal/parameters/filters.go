package parameters

import (
	"maps"
	"slices"

	"github.com/JaimeStill/system-api/pkg/jsonapi"
	"github.com/JaimeStill/system-api/pkg/query"
)

// Filters holds the supported filter[...] values of a list request.
type Filters struct {
	Key   string
	Value string
}

// FiltersFromQuery reads the supported filters from q. Unknown filter names
// are reported as filter-not-found.
func FiltersFromQuery(q *jsonapi.Query) (Filters, jsonapi.Errors) {
	var f Filters
	var errs jsonapi.Errors

	for _, name := range q.FilterNames() {
		switch name {
		case AttrKey:
			f.Key = q.Filters[name]
		case AttrValue:
			f.Value = q.Filters[name]
		default:
			errs.Add(jsonapi.FilterNotFound(Type, name))
		}
	}

	return f, errs
}

// Match reports whether p satisfies every set filter.
func (f Filters) Match(p Parameter, m query.Matcher) bool {
	return m.Contains(p.Key, f.Key) && m.ContainsValue(p.Value, f.Value)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
