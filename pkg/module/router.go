package module

import (
	"net/http"
	"strings"
)

// Router dispatches requests to mounted modules by prefix, falling back to
// natively registered routes.
type Router struct {
	native  *http.ServeMux
	modules map[string]*Module
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		native:  http.NewServeMux(),
		modules: make(map[string]*Module),
	}
}

// HandleNative registers a handler outside any module, e.g. "GET /healthz".
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount registers m under its prefix.
func (r *Router) Mount(m *Module) {
	r.modules[m.prefix] = m
}

// ServeHTTP strips the module prefix before handing the request to the module.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	prefix := modulePrefix(req.URL.Path)

	m, ok := r.modules[prefix]
	if !ok {
		r.native.ServeHTTP(w, req)
		return
	}

	inner := req.Clone(req.Context())
	inner.URL.Path = strings.TrimPrefix(req.URL.Path, prefix)
	if inner.URL.RawPath != "" {
		inner.URL.RawPath = strings.TrimPrefix(req.URL.RawPath, prefix)
	}
	if inner.URL.Path == "" {
		inner.URL.Path = "/"
	}

	m.Handler().ServeHTTP(w, inner)
}

func modulePrefix(path string) string {
	if !strings.HasPrefix(path, "/") {
		return ""
	}
	rest := path[1:]
	if i := strings.Index(rest, "/"); i >= 0 {
		return path[:i+1]
	}
	return path
}
