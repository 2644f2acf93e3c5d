package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/JaimeStill/system-api/pkg/middleware"
	"github.com/JaimeStill/system-api/pkg/openapi"
	"github.com/JaimeStill/system-api/pkg/pagination"
	"github.com/docker/go-units"
)

const (
	// EnvAPIBasePath overrides the API mount prefix.
	EnvAPIBasePath = "API_BASE_PATH"

	// EnvAPIMaxBodySize overrides the request body limit (human size, e.g. "1MB").
	EnvAPIMaxBodySize = "API_MAX_BODY_SIZE"

	// EnvAPIFilterCaseSensitive overrides substring filter case handling.
	EnvAPIFilterCaseSensitive = "API_FILTER_CASE_SENSITIVE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "API_CORS_ENABLED",
	Origins:          "API_CORS_ORIGINS",
	AllowedMethods:   "API_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "API_CORS_ALLOWED_HEADERS",
	AllowCredentials: "API_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "API_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "API_OPENAPI_TITLE",
	Description: "API_OPENAPI_DESCRIPTION",
}

var paginationEnv = &pagination.Env{
	DefaultLimit: "API_PAGINATION_DEFAULT_LIMIT",
	MaxLimit:     "API_PAGINATION_MAX_LIMIT",
}

// APIConfig contains settings of the /api module.
type APIConfig struct {
	BasePath            string                `toml:"base_path"`
	CORS                middleware.CORSConfig `toml:"cors"`
	Pagination          pagination.Config     `toml:"pagination"`
	OpenAPI             openapi.Config        `toml:"openapi"`
	MaxBodySize         string                `toml:"max_body_size"`
	FilterCaseSensitive bool                  `toml:"filter_case_sensitive"`
	maxBodySizeVal      int64
}

// MaxBodySizeBytes returns the parsed request body limit.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	return c.maxBodySizeVal
}

func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}
	if overlay.FilterCaseSensitive {
		c.FilterCaseSensitive = true
	}
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxBodySize); v != "" {
		c.MaxBodySize = v
	}
	if v := os.Getenv(EnvAPIFilterCaseSensitive); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.FilterCaseSensitive = b
		}
	}
}

func (c *APIConfig) validate() error {
	size, err := units.FromHumanSize(c.MaxBodySize)
	if err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_body_size must be positive")
	}
	c.maxBodySizeVal = size
	return nil
}
