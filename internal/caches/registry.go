package caches

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/JaimeStill/system-api/pkg/lifecycle"
)

// Registry holds the cache controls of the process keyed by name.
type Registry struct {
	mu       sync.RWMutex
	controls map[string]Control
	order    []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{controls: make(map[string]Control)}
}

// Register adds c. Names must be unique.
func (r *Registry) Register(c Control) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, ok := r.controls[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}

	r.controls[name] = c
	r.order = append(r.order, name)
	return nil
}

// Get returns the control registered under name.
func (r *Registry) Get(name string) (Control, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.controls[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return c, nil
}

// All returns every control in registration order.
func (r *Registry) All() []Control {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]Control, 0, len(r.order))
	for _, name := range r.order {
		all = append(all, r.controls[name])
	}
	return all
}

// Start launches background maintenance of every Runner control, warms
// enabled controls once startup completes and stops maintenance on shutdown.
func (r *Registry) Start(lc *lifecycle.Coordinator, logger *slog.Logger) {
	logger = logger.With("system", "caches")

	for _, c := range r.All() {
		if runner, ok := c.(Runner); ok {
			runner.Start()
		}
	}

	lc.OnStartup(func() {
		for _, c := range r.All() {
			if !c.IsEnabled() {
				continue
			}
			if err := c.Warm(lc.Context()); err != nil {
				logger.Warn("cache warm failed", "cache", c.Name(), "error", err)
			}
		}
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		for _, c := range r.All() {
			if runner, ok := c.(Runner); ok {
				runner.Stop()
			}
		}
		logger.Info("cache maintenance stopped")
	})
}
