package jsonapi

import "fmt"

// Adapter projects an internal record of type T onto a resource object,
// rendering only the attributes requested by q.
type Adapter[T any] interface {
	Resource(item T, q *Query) (*Resource, error)
}

// Resources adapts every item, stopping at the first failure.
func Resources[T any](adapter Adapter[T], items []T, q *Query) ([]*Resource, error) {
	resources := make([]*Resource, 0, len(items))
	for i, item := range items {
		res, err := adapter.Resource(item, q)
		if err != nil {
			return nil, fmt.Errorf("adapt item %d: %w", i, err)
		}
		resources = append(resources, res)
	}
	return resources, nil
}
