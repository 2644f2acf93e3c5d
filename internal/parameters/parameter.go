// Package parameters exposes the configuration store as the JSON:API
// "parameters" resource. Nested tables are presented as flat dotted keys.
package parameters

import (
	"github.com/JaimeStill/system-api/pkg/jsonapi"
	"github.com/JaimeStill/system-api/pkg/query"
)

// Type is the JSON:API resource type of parameters.
const Type = "parameters"

// Attribute names of the parameters resource.
const (
	AttrKey   = "key"
	AttrValue = "value"
)

// DetailRoute names the route resolving a single parameter.
const DetailRoute = "api.parameters.detail"

// Parameter is one dotted key with its scalar value.
type Parameter struct {
	Key   string
	Value any
}

var defaultSort = []query.SortField{{Field: AttrKey}}

var comparators = map[string]jsonapi.Comparator[Parameter]{
	AttrKey: func(a, b Parameter) int {
		return query.CompareString(a.Key, b.Key)
	},
	AttrValue: func(a, b Parameter) int {
		return query.CompareString(query.Stringify(a.Value), query.Stringify(b.Value))
	},
}
