package api

import (
	"github.com/JaimeStill/system-api/internal/caches"
	"github.com/JaimeStill/system-api/internal/parameters"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Caches     caches.System
	Parameters parameters.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Caches: caches.New(
			runtime.Caches,
			runtime.Matcher,
			runtime.Logger,
		),
		Parameters: parameters.New(
			runtime.Parameters,
			runtime.Matcher,
			runtime.Logger,
		),
	}
}
