// Package database manages the PostgreSQL connection pool through the pgx
// database/sql driver and ties it to the service lifecycle.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/JaimeStill/system-api/pkg/lifecycle"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotReady is returned when the connection is used before Start succeeded.
var ErrNotReady = errors.New("database not ready")

// StartHook runs against the live connection once it has been verified,
// before the system reports ready. Migrations register here.
type StartHook func(ctx context.Context, db *sql.DB) error

// System owns the connection pool.
type System interface {
	Connection() *sql.DB
	Start(lc *lifecycle.Coordinator) error
	Ready() error
	OnStart(hook StartHook)
}

type database struct {
	cfg    *Config
	conn   *sql.DB
	logger *slog.Logger
	hooks  []StartHook
	ready  atomic.Bool
}

// New opens the pool without connecting. Connectivity is verified in Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	conn, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		cfg:    cfg,
		conn:   conn,
		logger: logger.With("system", "database"),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) OnStart(hook StartHook) {
	d.hooks = append(d.hooks, hook)
}

func (d *database) Ready() error {
	if !d.ready.Load() {
		return ErrNotReady
	}
	return nil
}

// Start pings the server, runs the start hooks and closes the pool on shutdown.
func (d *database) Start(lc *lifecycle.Coordinator) error {
	ctx, cancel := context.WithTimeout(lc.Context(), d.cfg.ConnTimeoutDuration())
	defer cancel()

	if err := d.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	for _, hook := range d.hooks {
		if err := hook(lc.Context(), d.conn); err != nil {
			return err
		}
	}

	d.ready.Store(true)
	d.logger.Info("database connected", "host", d.cfg.Host, "name", d.cfg.Name)

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.ready.Store(false)
		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close error", "error", err)
			return
		}
		d.logger.Info("database connection closed")
	})

	return nil
}
