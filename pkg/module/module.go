// Package module groups an http.Handler under a single-segment URL prefix
// with its own middleware stack, and mounts modules on a root router.
package module

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/system-api/pkg/middleware"
)

// Module is a self-contained handler served beneath Prefix.
type Module struct {
	prefix      string
	handler     http.Handler
	middlewares []middleware.Middleware
}

// New creates a module. prefix must be a single path segment such as "/api";
// anything else is a wiring error and panics.
func New(prefix string, handler http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:  prefix,
		handler: handler,
	}
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware to the module stack.
func (m *Module) Use(mw middleware.Middleware) {
	m.middlewares = append(m.middlewares, mw)
}

// Handler returns the module handler wrapped in its middleware. Paths are
// relative to the prefix.
func (m *Module) Handler() http.Handler {
	return middleware.Chain(m.handler, m.middlewares...)
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix required")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix %q must start with /", prefix)
	}
	if strings.Count(prefix, "/") > 1 {
		return fmt.Errorf("module prefix %q must be a single path segment", prefix)
	}
	return nil
}
