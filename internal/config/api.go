package config

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/docquest/pkg/formatting"
	"github.com/JaimeStill/docquest/pkg/middleware"
	"github.com/JaimeStill/docquest/pkg/openapi"
	"github.com/JaimeStill/docquest/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "DOCQUEST_CORS_ENABLED",
	Origins:          "DOCQUEST_CORS_ORIGINS",
	AllowedMethods:   "DOCQUEST_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "DOCQUEST_CORS_ALLOWED_HEADERS",
	AllowCredentials: "DOCQUEST_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "DOCQUEST_CORS_MAX_AGE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "DOCQUEST_OPENAPI_TITLE",
	Description: "DOCQUEST_OPENAPI_DESCRIPTION",
	ServerURL:   "DOCQUEST_OPENAPI_SERVER_URL",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "DOCQUEST_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "DOCQUEST_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, request limits, CORS, catalog pagination, and
// OpenAPI document settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

// MaxUploadSizeBytes returns the request body limit in bytes.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, _ := formatting.ParseBytes(c.MaxUploadSize)
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "32MB"
	}

	envString("DOCQUEST_API_BASE_PATH", &c.BasePath)
	envString("DOCQUEST_API_MAX_UPLOAD_SIZE", &c.MaxUploadSize)

	if !strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1 {
		return fmt.Errorf("base_path must be a single segment starting with /: %q", c.BasePath)
	}
	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("max_upload_size: %w", err)
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}
