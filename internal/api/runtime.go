package api

import (
	"github.com/JaimeStill/system-api/internal/config"
	"github.com/JaimeStill/system-api/internal/infrastructure"
	"github.com/JaimeStill/system-api/pkg/pagination"
	"github.com/JaimeStill/system-api/pkg/query"
	"github.com/JaimeStill/system-api/pkg/routes"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Matcher    query.Matcher
	Links      *routes.Links
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle:  infra.Lifecycle,
			Logger:     infra.Logger.With("module", "api"),
			Database:   infra.Database,
			Caches:     infra.Caches,
			Parameters: infra.Parameters,
		},
		Pagination: cfg.API.Pagination,
		Matcher:    query.Matcher{CaseSensitive: cfg.API.FilterCaseSensitive},
		Links:      routes.NewLinks(),
	}
}
