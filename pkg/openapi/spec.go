package openapi

import (
	"encoding/json"
	"maps"
	"net/http"
	"strings"
)

// MediaTypeJSONAPI is the content type used by request and response bodies.
const MediaTypeJSONAPI = "application/vnd.api+json"

// NewSpec creates an OpenAPI 3.1 document with the shared error components.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI: "3.1.0",
		Info: &Info{
			Title:   title,
			Version: version,
		},
		Paths: make(map[string]*PathItem),
		Components: &Components{
			Schemas:   errorSchemas(),
			Responses: errorResponses(),
		},
	}
}

// SetDescription sets the API description.
func (s *Spec) SetDescription(desc string) {
	s.Info.Description = desc
}

// AddServer appends a server URL. Empty URLs are ignored.
func (s *Spec) AddServer(url string) {
	if url == "" {
		return
	}
	s.Servers = append(s.Servers, &Server{URL: url})
}

// AddSchemas merges domain schemas into the components.
func (s *Spec) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(s.Components.Schemas, schemas)
}

// AddOperation attaches op to path under method.
func (s *Spec) AddOperation(path, method string, op *Operation) {
	if op == nil {
		return
	}

	item, ok := s.Paths[path]
	if !ok {
		item = &PathItem{}
		s.Paths[path] = item
	}

	switch strings.ToUpper(method) {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodPatch:
		item.Patch = op
	case http.MethodDelete:
		item.Delete = op
	}
}

// MarshalJSON renders the document with indentation.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// ServeSpec returns a handler serving pre-rendered spec bytes.
func ServeSpec(spec []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(spec)
	}
}

// SchemaRef creates a JSON reference to a schema in components/schemas.
func SchemaRef(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

// ResponseRef creates a JSON reference to a response in components/responses.
func ResponseRef(name string) *Response {
	return &Response{Ref: "#/components/responses/" + name}
}

// RequestBodyJSONAPI creates a request body referencing a document schema.
func RequestBodyJSONAPI(schemaName string, required bool) *RequestBody {
	return &RequestBody{
		Required: required,
		Content: map[string]*MediaType{
			MediaTypeJSONAPI: {Schema: SchemaRef(schemaName)},
		},
	}
}

// ResponseJSONAPI creates a response referencing a document schema.
func ResponseJSONAPI(description, schemaName string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			MediaTypeJSONAPI: {Schema: SchemaRef(schemaName)},
		},
	}
}

// PathParam creates a required string path parameter.
func PathParam(name, description string) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "path",
		Required:    true,
		Description: description,
		Schema:      &Schema{Type: "string"},
	}
}

// QueryParam creates a query parameter with the specified type.
func QueryParam(name, typ, description string, required bool) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "query",
		Required:    required,
		Description: description,
		Schema:      &Schema{Type: typ},
	}
}

// PageParams returns the offset pagination query parameters.
func PageParams() []*Parameter {
	return []*Parameter{
		QueryParam("page[offset]", "integer", "Number of records to skip", false),
		QueryParam("page[limit]", "integer", "Records per page (max 100)", false),
	}
}

func errorSchemas() map[string]*Schema {
	return map[string]*Schema{
		"Error": {
			Type: "object",
			Properties: map[string]*Schema{
				"id":     {Type: "string", Format: "uuid"},
				"status": {Type: "string"},
				"code":   {Type: "string"},
				"title":  {Type: "string"},
				"detail": {Type: "string"},
				"source": {
					Type: "object",
					Properties: map[string]*Schema{
						"pointer":   {Type: "string"},
						"parameter": {Type: "string"},
					},
				},
			},
		},
		"ErrorDocument": {
			Type: "object",
			Properties: map[string]*Schema{
				"errors": {Type: "array", Items: SchemaRef("Error")},
			},
		},
	}
}

func errorResponses() map[string]*Response {
	doc := func(desc string) *Response {
		return ResponseJSONAPI(desc, "ErrorDocument")
	}
	return map[string]*Response{
		"BadRequest": doc("Invalid request"),
		"Forbidden":  doc("Read-only attribute"),
		"NotFound":   doc("Resource not found"),
		"Conflict":   doc("Resource conflict"),
	}
}
