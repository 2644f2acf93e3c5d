package parameters

import "github.com/JaimeStill/system-api/pkg/openapi"

type spec struct {
	List       *openapi.Operation
	Find       *openapi.Operation
	Create     *openapi.Operation
	Update     *openapi.Operation
	UpdateBulk *openapi.Operation
	Delete     *openapi.Operation
	DeleteBulk *openapi.Operation
}

// Spec contains OpenAPI operation definitions for all parameter endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List parameters",
		Description: "Returns a page of flattened parameters",
		Parameters: append([]*openapi.Parameter{
			openapi.QueryParam("filter[key]", "string", "Key contains", false),
			openapi.QueryParam("filter[value]", "string", "Value contains", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields (key, value). Prefix with - for descending", false),
			openapi.QueryParam("fields[parameters]", "string", "Sparse fieldset", false),
		}, openapi.PageParams()...),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONAPI("Page of parameters", "ParameterCollection"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		Summary: "Find parameter by key",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Parameter key"),
			openapi.QueryParam("fields[parameters]", "string", "Sparse fieldset", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONAPI("Parameter", "ParameterDocument"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create parameters",
		Description: `Accepts a single resource or, with the ext="bulk" media type parameter, an array`,
		RequestBody: openapi.RequestBodyJSONAPI("ParameterDocument", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSONAPI("Parameter created", "ParameterDocument"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update parameter",
		Description: "Changes the value. A key attribute different from the id renames the parameter",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Parameter key"),
		},
		RequestBody: openapi.RequestBodyJSONAPI("ParameterDocument", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONAPI("Parameter updated", "ParameterDocument"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	UpdateBulk: &openapi.Operation{
		Summary:     "Update parameters",
		Description: `Bulk update using the ext="bulk" media type parameter. Nothing is saved when any resource fails validation`,
		RequestBody: openapi.RequestBodyJSONAPI("ParameterCollection", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONAPI("Parameters updated", "ParameterCollection"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary: "Delete parameter",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Parameter key"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Parameter deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	DeleteBulk: &openapi.Operation{
		Summary:     "Delete parameters",
		Description: `Deletes the identified resources using the ext="bulk" media type parameter`,
		RequestBody: openapi.RequestBodyJSONAPI("ParameterIdentifiers", true),
		Responses: map[int]*openapi.Response{
			204: {Description: "Parameters deleted"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	identifier := &openapi.Schema{
		Type:     "object",
		Required: []string{"type", "id"},
		Properties: map[string]*openapi.Schema{
			"type": {Type: "string", Enum: []string{Type}},
			"id":   {Type: "string"},
		},
	}

	return map[string]*openapi.Schema{
		"Parameter": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"type": {Type: "string", Enum: []string{Type}},
				"id":   {Type: "string"},
				"attributes": {
					Type:     "object",
					Required: []string{AttrKey, AttrValue},
					Properties: map[string]*openapi.Schema{
						AttrKey: {Type: "string", Example: "app.name"},
						AttrValue: {
							Description: "Scalar value",
							OneOf: []*openapi.Schema{
								{Type: "string"},
								{Type: "number"},
								{Type: "boolean"},
							},
						},
					},
				},
				"links": {Type: "object"},
			},
		},
		"ParameterDocument": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data": openapi.SchemaRef("Parameter"),
			},
		},
		"ParameterCollection": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":  {Type: "array", Items: openapi.SchemaRef("Parameter")},
				"meta":  {Type: "object"},
				"links": {Type: "object"},
			},
		},
		"ParameterIdentifiers": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data": {Type: "array", Items: identifier},
			},
		},
	}
}
