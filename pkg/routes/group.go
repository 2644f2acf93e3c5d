// Package routes declares route groups and registers them on a mux,
// feeding each route's operation into the OpenAPI document.
package routes

import (
	"net/http"

	"github.com/JaimeStill/system-api/pkg/openapi"
)

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// Route represents an HTTP route with method, pattern, and handler.
// Named routes can be resolved back to URLs through Links.
type Route struct {
	Name    string
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}
