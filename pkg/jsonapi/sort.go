package jsonapi

import (
	"slices"

	"github.com/JaimeStill/system-api/pkg/query"
)

// Comparator orders two records on one field.
type Comparator[T any] func(a, b T) int

// Sorter orders records by the requested sort fields of a resource type.
type Sorter[T any] struct {
	fields      []query.SortField
	comparators map[string]Comparator[T]
}

// NewSorter validates requested against the supported comparators. Unknown
// fields are reported as sort-not-found errors. When nothing is requested
// the defaults apply.
func NewSorter[T any](
	typ string,
	requested []query.SortField,
	defaults []query.SortField,
	comparators map[string]Comparator[T],
) (*Sorter[T], Errors) {
	var errs Errors
	for _, f := range requested {
		if _, ok := comparators[f.Field]; !ok {
			errs.Add(SortNotFound(typ, f.Field))
		}
	}

	fields := requested
	if len(fields) == 0 {
		fields = defaults
	}

	return &Sorter[T]{
		fields:      fields,
		comparators: comparators,
	}, errs
}

// Sort orders items in place. The sort is stable, so records equal on every
// requested field keep their incoming order.
func (s *Sorter[T]) Sort(items []T) {
	if len(s.fields) == 0 {
		return
	}

	slices.SortStableFunc(items, func(a, b T) int {
		for _, f := range s.fields {
			compare, ok := s.comparators[f.Field]
			if !ok {
				continue
			}
			c := compare(a, b)
			if f.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}
