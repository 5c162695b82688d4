// Package config loads the DocQuest service configuration from TOML files and
// DOCQUEST_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JaimeStill/docquest/pkg/auth"
	"github.com/JaimeStill/docquest/pkg/database"
	"github.com/JaimeStill/docquest/pkg/storage"
	"github.com/pelletier/go-toml/v2"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvDocquestEnv     = "DOCQUEST_ENV"
	EnvShutdownTimeout = "DOCQUEST_SHUTDOWN_TIMEOUT"
	EnvVersion         = "DOCQUEST_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "DOCQUEST_DB_HOST",
	Port:            "DOCQUEST_DB_PORT",
	Name:            "DOCQUEST_DB_NAME",
	User:            "DOCQUEST_DB_USER",
	Password:        "DOCQUEST_DB_PASSWORD",
	SSLMode:         "DOCQUEST_DB_SSL_MODE",
	MaxOpenConns:    "DOCQUEST_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "DOCQUEST_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "DOCQUEST_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "DOCQUEST_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Provider:         "DOCQUEST_STORAGE_PROVIDER",
	Container:        "DOCQUEST_STORAGE_CONTAINER",
	ConnectionString: "DOCQUEST_STORAGE_CONNECTION_STRING",
	AccountURL:       "DOCQUEST_STORAGE_ACCOUNT_URL",
	CredentialsFile:  "DOCQUEST_STORAGE_CREDENTIALS_FILE",
}

var authEnv = &auth.Env{
	Issuer:   "DOCQUEST_AUTH_ISSUER",
	ClientID: "DOCQUEST_AUTH_CLIENT_ID",
	JWKSURL:  "DOCQUEST_AUTH_JWKS_URL",
}

// Config is the root configuration for the DocQuest service and CLI.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	Auth            auth.Config     `toml:"auth"`
	API             APIConfig       `toml:"api"`
	Artifacts       ArtifactsConfig `toml:"artifacts"`
	Document        DocumentConfig  `toml:"document"`
	Review          ReviewConfig    `toml:"review"`
	Export          ExportConfig    `toml:"export"`
	Pipeline        PipelineConfig  `toml:"pipeline"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the DOCQUEST_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvDocquestEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads configuration from the working directory.
func Load() (*Config, error) {
	return LoadDir(".")
}

// LoadDir reads dir/config.toml (if present), applies the config.<env>.toml
// overlay selected by DOCQUEST_ENV, and finalizes all values. Without any file,
// defaults and environment variables provide all configuration.
func LoadDir(dir string) (*Config, error) {
	cfg := &Config{}

	base := filepath.Join(dir, BaseConfigFile)
	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(dir); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Auth.Merge(&overlay.Auth)
	c.API.Merge(&overlay.API)
	c.Artifacts.merge(&overlay.Artifacts)
	c.Document.merge(&overlay.Document)
	c.Review.merge(&overlay.Review)
	c.Export.merge(&overlay.Export)
	c.Pipeline.merge(&overlay.Pipeline)
}

func (c *Config) finalize() error {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	envString(EnvShutdownTimeout, &c.ShutdownTimeout)
	envString(EnvVersion, &c.Version)

	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}

	sections := []struct {
		name     string
		finalize func() error
	}{
		{"server", c.Server.Finalize},
		{"database", func() error { return c.Database.Finalize(databaseEnv) }},
		{"storage", func() error { return c.Storage.Finalize(storageEnv) }},
		{"auth", func() error { return c.Auth.Finalize(authEnv) }},
		{"api", c.API.Finalize},
		{"artifacts", c.Artifacts.finalize},
		{"document", c.Document.finalize},
		{"review", c.Review.finalize},
		{"export", c.Export.finalize},
		{"pipeline", c.Pipeline.finalize},
	}

	for _, s := range sections {
		if err := s.finalize(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}

	if c.Artifacts.Backend == BackendBlob && !c.Storage.Enabled() {
		return fmt.Errorf("artifacts: blob backend requires a storage provider")
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(dir string) string {
	if env := os.Getenv(EnvDocquestEnv); env != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
