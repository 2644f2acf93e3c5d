package config

import (
	"fmt"
	"os"
)

const (
	// BackendFile stores parameters in a TOML document.
	BackendFile = "file"

	// BackendDatabase stores parameters in PostgreSQL.
	BackendDatabase = "database"

	// EnvParametersBackend overrides the parameter store backend.
	EnvParametersBackend = "PARAMETERS_BACKEND"

	// EnvParametersPath overrides the parameter file location.
	EnvParametersPath = "PARAMETERS_PATH"
)

// ParametersConfig selects and configures the parameter store.
type ParametersConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

// Finalize applies defaults, loads environment overrides, and validates the parameters configuration.
func (c *ParametersConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *ParametersConfig) Merge(overlay *ParametersConfig) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
}

func (c *ParametersConfig) loadDefaults() {
	if c.Backend == "" {
		c.Backend = BackendFile
	}
	if c.Path == "" {
		c.Path = "parameters.toml"
	}
}

func (c *ParametersConfig) loadEnv() {
	if v := os.Getenv(EnvParametersBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvParametersPath); v != "" {
		c.Path = v
	}
}

func (c *ParametersConfig) validate() error {
	switch c.Backend {
	case BackendFile, BackendDatabase:
	default:
		return fmt.Errorf("invalid backend %q: must be %s or %s", c.Backend, BackendFile, BackendDatabase)
	}
	return nil
}
