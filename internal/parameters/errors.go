package parameters

import (
	"errors"
	"net/http"
)

// Domain errors for the parameters system.
var (
	// ErrNotFound indicates no scalar is stored under the key.
	ErrNotFound = errors.New("parameter not found")
)

// MapHTTPStatus maps domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
