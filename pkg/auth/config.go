package auth

import (
	"fmt"
	"os"
)

// Config holds OpenID Connect verification settings. Authentication is
// disabled when Issuer is empty.
type Config struct {
	Issuer   string `toml:"issuer"`
	ClientID string `toml:"client_id"`
	JWKSURL  string `toml:"jwks_url"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Issuer   string
	ClientID string
	JWKSURL  string
}

// Enabled reports whether bearer token verification is configured.
func (c *Config) Enabled() bool {
	return c.Issuer != ""
}

// Finalize applies environment variable overrides and validation.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
	if overlay.JWKSURL != "" {
		c.JWKSURL = overlay.JWKSURL
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := os.Getenv(env.Issuer); env.Issuer != "" && v != "" {
		c.Issuer = v
	}
	if v := os.Getenv(env.ClientID); env.ClientID != "" && v != "" {
		c.ClientID = v
	}
	if v := os.Getenv(env.JWKSURL); env.JWKSURL != "" && v != "" {
		c.JWKSURL = v
	}
}

func (c *Config) validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.ClientID == "" {
		return fmt.Errorf("client_id required when issuer is set")
	}
	if c.JWKSURL == "" {
		return fmt.Errorf("jwks_url required when issuer is set")
	}
	return nil
}
