package caches

import "github.com/JaimeStill/system-api/pkg/openapi"

// spec holds OpenAPI operation definitions for the caches domain.
type spec struct {
	List       *openapi.Operation
	Find       *openapi.Operation
	Update     *openapi.Operation
	UpdateBulk *openapi.Operation
	Warm       *openapi.Operation
	Clear      *openapi.Operation
}

// Spec contains OpenAPI operation definitions for all cache endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List caches",
		Description: "Returns a page of registered cache controls",
		Parameters: append([]*openapi.Parameter{
			openapi.QueryParam("filter[name]", "string", "Name contains", false),
			openapi.QueryParam("filter[isLocked]", "boolean", "Locked state", false),
			openapi.QueryParam("filter[isEnabled]", "boolean", "Enabled state", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields (name, isLocked, isEnabled). Prefix with - for descending", false),
			openapi.QueryParam("fields[caches]", "string", "Sparse fieldset", false),
		}, openapi.PageParams()...),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONAPI("Page of caches", "CacheCollection"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		Summary: "Find cache by name",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Cache name"),
			openapi.QueryParam("fields[caches]", "string", "Sparse fieldset", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONAPI("Cache control", "CacheDocument"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update cache",
		Description: "Enables or disables a cache. Only isEnabled is writable and only on unlocked caches",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Cache name"),
		},
		RequestBody: openapi.RequestBodyJSONAPI("CacheDocument", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONAPI("Cache updated", "CacheDocument"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	UpdateBulk: &openapi.Operation{
		Summary:     "Update caches",
		Description: `Bulk update using the ext="bulk" media type parameter. Nothing is saved when any resource fails validation`,
		RequestBody: openapi.RequestBodyJSONAPI("CacheCollection", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONAPI("Caches updated", "CacheCollection"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Warm: &openapi.Operation{
		Summary: "Warm cache",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Cache name"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Cache warmed"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Clear: &openapi.Operation{
		Summary: "Clear cache",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Cache name"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Cache cleared"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas returns the cache domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Cache": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"type": {Type: "string", Enum: []string{Type}},
				"id":   {Type: "string"},
				"attributes": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						AttrName:      {Type: "string", ReadOnly: true},
						AttrIsLocked:  {Type: "boolean", ReadOnly: true},
						AttrIsEnabled: {Type: "boolean"},
					},
				},
				"links": {Type: "object"},
			},
		},
		"CacheDocument": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data": openapi.SchemaRef("Cache"),
			},
		},
		"CacheCollection": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":  {Type: "array", Items: openapi.SchemaRef("Cache")},
				"meta":  {Type: "object"},
				"links": {Type: "object"},
			},
		},
	}
}
