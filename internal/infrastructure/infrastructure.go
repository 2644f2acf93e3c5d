// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies the API systems require: logging, the
// parameter store with its backing database, and the cache registry.
package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/JaimeStill/system-api/internal/caches"
	"github.com/JaimeStill/system-api/internal/config"
	"github.com/JaimeStill/system-api/internal/parameters"
	"github.com/JaimeStill/system-api/pkg/database"
	"github.com/JaimeStill/system-api/pkg/lifecycle"
	"github.com/JaimeStill/system-api/pkg/logging"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger

	// Database is nil unless parameters use the database backend.
	Database database.System

	Caches     *caches.Registry
	Parameters *parameters.CachedStore
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	infra := &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Caches:    caches.NewRegistry(),
	}

	backing, err := infra.parameterStore(cfg)
	if err != nil {
		return nil, err
	}

	params := cfg.Caches[config.ParametersCache]
	infra.Parameters = parameters.NewCachedStore(backing, config.ParametersCache, cacheOptions(&params))
	if err := infra.Caches.Register(infra.Parameters.Control()); err != nil {
		return nil, err
	}

	// Other configured caches have no source to load from. They are
	// registered for toggling and status only; warm and clear do nothing.
	for _, name := range slices.Sorted(maps.Keys(cfg.Caches)) {
		if name == config.ParametersCache {
			continue
		}
		cc := cfg.Caches[name]
		control := caches.NewTTLControl[string, any](name, cacheOptions(&cc), nil)
		if err := infra.Caches.Register(control); err != nil {
			return nil, fmt.Errorf("cache %s: %w", name, err)
		}
	}

	return infra, nil
}

// Start initializes all infrastructure systems and registers them with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
	}
	i.Caches.Start(i.Lifecycle, i.Logger)
	return nil
}

func (i *Infrastructure) parameterStore(cfg *config.Config) (parameters.Store, error) {
	switch cfg.Parameters.Backend {
	case config.BackendDatabase:
		db, err := database.New(&cfg.Database, i.Logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}

		url := cfg.Database.URL("pgx5")
		db.OnStart(func(ctx context.Context, conn *sql.DB) error {
			if err := parameters.Migrate(url); err != nil {
				return fmt.Errorf("parameters migration failed: %w", err)
			}
			i.Logger.Info("parameters schema migrated")
			return nil
		})

		i.Database = db
		return parameters.NewDatabaseStore(db.Connection()), nil
	default:
		i.Logger.Info("parameters backed by file", "path", cfg.Parameters.Path)
		return parameters.NewFileStore(cfg.Parameters.Path), nil
	}
}

func cacheOptions(cc *config.CacheConfig) caches.Options {
	return caches.Options{
		TTL:      cc.TTLDuration(),
		Capacity: cc.Capacity,
		Enabled:  cc.IsEnabled(),
		Locked:   cc.Locked,
	}
}
