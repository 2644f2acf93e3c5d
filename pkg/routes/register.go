package routes

import (
	"net/http"

	"github.com/JaimeStill/system-api/pkg/openapi"
)

// Register adds every route of groups to mux. Patterns are registered
// relative to the module (without basePath) while the OpenAPI document and
// links use the full public path. spec and links may be nil.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, links *Links, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, basePath, "", spec, links, group, nil)
	}
}

func registerGroup(
	mux *http.ServeMux,
	basePath, parentPrefix string,
	spec *openapi.Spec,
	links *Links,
	group Group,
	parentTags []string,
) {
	prefix := parentPrefix + group.Prefix
	tags := group.Tags
	if len(tags) == 0 {
		tags = parentTags
	}

	if spec != nil && group.Schemas != nil {
		spec.AddSchemas(group.Schemas)
	}

	for _, route := range group.Routes {
		pattern := prefix + route.Pattern
		mux.HandleFunc(route.Method+" "+pattern, route.Handler)

		if links != nil && route.Name != "" {
			links.Add(route.Name, basePath+pattern)
		}

		if spec != nil && route.OpenAPI != nil {
			if len(route.OpenAPI.Tags) == 0 {
				route.OpenAPI.Tags = tags
			}
			spec.AddOperation(basePath+pattern, route.Method, route.OpenAPI)
		}
	}

	for _, child := range group.Children {
		registerGroup(mux, basePath, prefix, spec, links, child, tags)
	}
}
