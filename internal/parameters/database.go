package parameters

import (
	"bytes"
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies the parameter schema migrations to the database at url.
// url uses the pgx5:// scheme.
func Migrate(url string) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	_, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return errors.New("parameters migration is dirty")
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate parameters: %w", err)
	}
	return nil
}

// DatabaseStore keeps parameters in the parameters table, one row per
// dotted key with a JSONB scalar value.
type DatabaseStore struct {
	db *sql.DB
}

// NewDatabaseStore creates a store on db. The schema is created by Migrate.
func NewDatabaseStore(db *sql.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (s *DatabaseStore) All(ctx context.Context) (map[string]any, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM parameters`)
	if err != nil {
		return nil, fmt.Errorf("query parameters: %w", err)
	}
	defer rows.Close()

	out := make(map[string]any)
	for rows.Next() {
		var key string
		var raw []byte
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("scan parameter: %w", err)
		}

		value, err := decodeJSONValue(raw)
		if err != nil {
			return nil, fmt.Errorf("decode parameter %s: %w", key, err)
		}
		out[key] = value
	}

	return out, rows.Err()
}

func (s *DatabaseStore) Get(ctx context.Context, key string) (any, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM parameters WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query parameter %s: %w", key, err)
	}
	return decodeJSONValue(raw)
}

// Apply runs every change in one transaction. Setting a key removes rows
// for its descendants and ancestors so the table stays a valid tree.
func (s *DatabaseStore) Apply(ctx context.Context, changes ...Change) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range changes {
		if err := applyRow(ctx, tx, c); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit parameters: %w", err)
	}
	return nil
}

func applyRow(ctx context.Context, tx *sql.Tx, c Change) error {
	if c.Value == nil {
		_, err := tx.ExecContext(ctx, `
			DELETE FROM parameters
			WHERE key = $1 OR starts_with(key, $1::text || '.')`,
			c.Key,
		)
		if err != nil {
			return fmt.Errorf("delete parameter %s: %w", c.Key, err)
		}
		return nil
	}

	data, err := json.Marshal(c.Value)
	if err != nil {
		return fmt.Errorf("encode parameter %s: %w", c.Key, err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM parameters
		WHERE starts_with(key, $1::text || '.') OR starts_with($1::text, key || '.')`,
		c.Key,
	)
	if err != nil {
		return fmt.Errorf("clear parameter tree %s: %w", c.Key, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO parameters (key, value, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		c.Key, string(data),
	)
	if err != nil {
		return fmt.Errorf("upsert parameter %s: %w", c.Key, err)
	}
	return nil
}

func decodeJSONValue(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return normalize(v), nil
}
