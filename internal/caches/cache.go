package caches

import (
	"github.com/JaimeStill/system-api/pkg/jsonapi"
	"github.com/JaimeStill/system-api/pkg/query"
)

// Type is the JSON:API resource type of cache controls.
const Type = "caches"

// Attribute names of the caches resource.
const (
	AttrName      = "name"
	AttrIsLocked  = "isLocked"
	AttrIsEnabled = "isEnabled"
)

// DetailRoute names the route resolving a single cache control.
const DetailRoute = "api.caches.detail"

// Cache is a point-in-time projection of a Control.
type Cache struct {
	ID        string
	Name      string
	IsLocked  bool
	IsEnabled bool
}

// Snapshot projects c. A nil control yields an empty record, which adapters reject.
func Snapshot(c Control) Cache {
	if c == nil {
		return Cache{}
	}
	return Cache{
		ID:        c.Name(),
		Name:      c.Name(),
		IsLocked:  !c.CanToggle(),
		IsEnabled: c.IsEnabled(),
	}
}

var defaultSort = []query.SortField{{Field: AttrName}}

var comparators = map[string]jsonapi.Comparator[Cache]{
	AttrName: func(a, b Cache) int {
		return query.CompareString(a.Name, b.Name)
	},
	AttrIsLocked: func(a, b Cache) int {
		return query.CompareBool(a.IsLocked, b.IsLocked)
	},
	AttrIsEnabled: func(a, b Cache) int {
		return query.CompareBool(a.IsEnabled, b.IsEnabled)
	},
}
