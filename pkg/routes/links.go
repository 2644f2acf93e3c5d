package routes

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// Links resolves named routes into URLs.
type Links struct {
	mu       sync.RWMutex
	patterns map[string]string
}

// NewLinks creates an empty link table.
func NewLinks() *Links {
	return &Links{patterns: make(map[string]string)}
}

// Add records the full pattern of a named route.
func (l *Links) Add(name, pattern string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.patterns[name] = pattern
}

// URL builds the path of the named route, substituting each {key} wildcard
// with the escaped value that follows it in params.
func (l *Links) URL(name string, params ...string) (string, error) {
	l.mu.RLock()
	pattern, ok := l.patterns[name]
	l.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("route %q not registered", name)
	}
	if len(params)%2 != 0 {
		return "", fmt.Errorf("route %q: params must be key/value pairs", name)
	}

	path := pattern
	for i := 0; i < len(params); i += 2 {
		path = strings.ReplaceAll(path, "{"+params[i]+"}", url.PathEscape(params[i+1]))
	}

	if strings.Contains(path, "{") {
		return "", fmt.Errorf("route %q: unresolved wildcard in %s", name, path)
	}

	return path, nil
}
