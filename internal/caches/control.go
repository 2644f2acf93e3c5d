// Package caches exposes the registered cache controls as the JSON:API
// "caches" resource: list, inspect, toggle, warm and clear.
package caches

import "context"

// Control is a live handle on one named cache.
type Control interface {
	Name() string
	IsEnabled() bool

	// CanToggle reports whether the enabled state may be changed at runtime.
	// Locked controls return false.
	CanToggle() bool

	// Enable and Disable return ErrLocked when the control cannot toggle.
	Enable() error
	Disable() error

	Warm(ctx context.Context) error
	Clear(ctx context.Context) error
}

// Runner is implemented by controls with background maintenance.
type Runner interface {
	Start()
	Stop()
}
