package storage

import (
	"fmt"
	"os"
)

// Providers supported by New.
const (
	ProviderAzure = "azure"
	ProviderGCS   = "gcs"
)

// Config holds blob storage connection parameters. Storage is optional:
// it is enabled only when Provider is set.
//
// Azure authenticates with ConnectionString when present, otherwise with the
// default Azure credential chain against AccountURL. GCS uses application
// default credentials unless CredentialsFile is set.
type Config struct {
	Provider         string `toml:"provider"`
	Container        string `toml:"container"`
	ConnectionString string `toml:"connection_string"`
	AccountURL       string `toml:"account_url"`
	CredentialsFile  string `toml:"credentials_file"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Provider         string
	Container        string
	ConnectionString string
	AccountURL       string
	CredentialsFile  string
}

// Enabled reports whether a storage provider is configured.
func (c *Config) Enabled() bool {
	return c.Provider != ""
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	c.loadDefaults()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.Container != "" {
		c.Container = overlay.Container
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.AccountURL != "" {
		c.AccountURL = overlay.AccountURL
	}
	if overlay.CredentialsFile != "" {
		c.CredentialsFile = overlay.CredentialsFile
	}
}

func (c *Config) loadDefaults() {
	if c.Enabled() && c.Container == "" {
		c.Container = "docquest"
	}
}

func (c *Config) loadEnv(env *Env) {
	set := func(name string, dst *string) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	set(env.Provider, &c.Provider)
	set(env.Container, &c.Container)
	set(env.ConnectionString, &c.ConnectionString)
	set(env.AccountURL, &c.AccountURL)
	set(env.CredentialsFile, &c.CredentialsFile)
}

func (c *Config) validate() error {
	switch c.Provider {
	case "":
		return nil
	case ProviderAzure:
		if c.ConnectionString == "" && c.AccountURL == "" {
			return fmt.Errorf("azure requires connection_string or account_url")
		}
	case ProviderGCS:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	return nil
}
