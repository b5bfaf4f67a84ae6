package experts

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds identity provider parameters. When DevHeaders is enabled
// the Issuer and ClientID may be left empty and identity is taken from
// request headers instead of verified tokens.
type Config struct {
	Issuer     string `toml:"issuer"`
	ClientID   string `toml:"client_id"`
	DevHeaders bool   `toml:"dev_headers"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Issuer     string
	ClientID   string
	DevHeaders string
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
	if overlay.DevHeaders {
		c.DevHeaders = true
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Issuer != "" {
		if v := os.Getenv(env.Issuer); v != "" {
			c.Issuer = v
		}
	}
	if env.ClientID != "" {
		if v := os.Getenv(env.ClientID); v != "" {
			c.ClientID = v
		}
	}
	if env.DevHeaders != "" {
		if v := os.Getenv(env.DevHeaders); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.DevHeaders = b
			}
		}
	}
}

func (c *Config) validate() error {
	if c.DevHeaders {
		return nil
	}
	if c.Issuer == "" {
		return fmt.Errorf("issuer required")
	}
	if c.ClientID == "" {
		return fmt.Errorf("client_id required")
	}
	return nil
}
