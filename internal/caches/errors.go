package caches

import (
	"errors"
	"net/http"
)

// Domain errors for the caches system.
var (
	// ErrNotFound indicates no control is registered under the name.
	ErrNotFound = errors.New("cache not found")

	// ErrLocked indicates the control cannot be toggled.
	ErrLocked = errors.New("cache is locked")

	// ErrDuplicate indicates a control with the same name is already registered.
	ErrDuplicate = errors.New("cache already registered")
)

// MapHTTPStatus maps domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrLocked):
		return http.StatusForbidden
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
