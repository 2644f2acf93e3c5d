package api

import (
	"net/http"

	"github.com/JaimeStill/system-api/internal/caches"
	"github.com/JaimeStill/system-api/internal/config"
	"github.com/JaimeStill/system-api/internal/parameters"
	"github.com/JaimeStill/system-api/pkg/openapi"
	"github.com/JaimeStill/system-api/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) {
	cachesHandler := caches.NewHandler(
		domain.Caches,
		caches.NewAdapter(runtime.Links),
		runtime.Logger,
		runtime.Pagination,
	)
	parametersHandler := parameters.NewHandler(
		domain.Parameters,
		parameters.NewAdapter(runtime.Links),
		runtime.Logger,
		runtime.Pagination,
	)

	routes.Register(
		mux,
		cfg.API.BasePath,
		spec,
		runtime.Links,
		cachesHandler.Routes(),
		parametersHandler.Routes(),
	)
}
