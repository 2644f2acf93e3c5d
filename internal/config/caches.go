package config

import (
	"fmt"
	"time"
)

// ParametersCache names the cache fronting parameter lookups. It is always defined.
const ParametersCache = "parameters"

// CacheConfig defines one named cache control.
type CacheConfig struct {
	TTL      string `toml:"ttl"`
	Capacity uint64 `toml:"capacity"`
	Enabled  *bool  `toml:"enabled"`
	Locked   bool   `toml:"locked"`
}

// TTLDuration parses and returns the entry lifetime as a time.Duration.
func (c *CacheConfig) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TTL)
	return d
}

// IsEnabled reports the initial enabled state. Caches start enabled unless configured otherwise.
func (c *CacheConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Finalize applies defaults and validates the cache configuration.
func (c *CacheConfig) Finalize() error {
	if c.TTL == "" {
		c.TTL = "10m"
	}

	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return fmt.Errorf("invalid ttl: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("ttl must be positive")
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *CacheConfig) Merge(overlay *CacheConfig) {
	if overlay.TTL != "" {
		c.TTL = overlay.TTL
	}
	if overlay.Capacity != 0 {
		c.Capacity = overlay.Capacity
	}
	if overlay.Enabled != nil {
		c.Enabled = overlay.Enabled
	}
	if overlay.Locked {
		c.Locked = true
	}
}
