package main

import (
	"net/http"

	"github.com/JaimeStill/system-api/internal/api"
	"github.com/JaimeStill/system-api/internal/config"
	"github.com/JaimeStill/system-api/internal/infrastructure"
	"github.com/JaimeStill/system-api/pkg/handlers"
	"github.com/JaimeStill/system-api/pkg/module"
)

type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.Status(w, http.StatusOK, "ok")
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			handlers.Status(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		if infra.Database != nil {
			if err := infra.Database.Ready(); err != nil {
				handlers.RespondError(w, infra.Logger, http.StatusServiceUnavailable, err)
				return
			}
		}
		handlers.Status(w, http.StatusOK, "ready")
	})

	return router
}
