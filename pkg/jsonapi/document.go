// Package jsonapi implements the subset of JSON:API 1.0 the service speaks:
// documents and resource objects, query parameters (sparse fieldsets,
// filters, sort, offset pagination), error objects and the bulk extension.
package jsonapi

import (
	"bytes"
	"encoding/json"
)

// Version is the JSON:API version advertised in every document.
const Version = "1.0"

// Document is a top-level JSON:API document.
type Document struct {
	Data    any               `json:"data,omitempty"`
	Errors  Errors            `json:"errors,omitempty"`
	Meta    map[string]any    `json:"meta,omitempty"`
	Links   map[string]string `json:"links,omitempty"`
	JSONAPI *Object           `json:"jsonapi,omitempty"`
}

// Object is the "jsonapi" member describing the server implementation.
type Object struct {
	Version string   `json:"version"`
	Ext     []string `json:"ext,omitempty"`
}

// Resource is an outgoing resource object.
type Resource struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Attributes map[string]any    `json:"attributes,omitempty"`
	Links      map[string]string `json:"links,omitempty"`
}

// NewResource creates an empty resource of the given type and id.
func NewResource(typ, id string) *Resource {
	return &Resource{
		Type:       typ,
		ID:         id,
		Attributes: make(map[string]any),
		Links:      make(map[string]string),
	}
}

// SetAttribute sets an attribute value. Nil values are kept and serialize as null.
func (r *Resource) SetAttribute(name string, value any) {
	r.Attributes[name] = value
}

// SetLink sets a link on the resource.
func (r *Resource) SetLink(name, href string) {
	r.Links[name] = href
}

// Identifier is a resource identifier object.
type Identifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// ResourceObject is an incoming resource object as submitted by a client.
// Attributes stay raw so presence, null and type can each be validated.
type ResourceObject struct {
	Type       string                     `json:"type"`
	ID         string                     `json:"id,omitempty"`
	Attributes map[string]json.RawMessage `json:"attributes,omitempty"`
}

// Identifier returns the type and id of o.
func (o ResourceObject) Identifier() Identifier {
	return Identifier{Type: o.Type, ID: o.ID}
}

// Attribute returns the raw value of name and whether it was submitted.
func (o ResourceObject) Attribute(name string) (json.RawMessage, bool) {
	raw, ok := o.Attributes[name]
	return raw, ok
}

// IsNull reports whether raw is absent or the JSON null literal.
func IsNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
