package feed

import (
	"fmt"
	"os"
	"time"
)

// Config holds change feed parameters.
type Config struct {
	Channel        string `toml:"channel"`
	ReconnectDelay string `toml:"reconnect_delay"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Channel        string
	ReconnectDelay string
}

// ReconnectDelayDuration returns ReconnectDelay as a time.Duration.
func (c *Config) ReconnectDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReconnectDelay)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Channel != "" {
		c.Channel = overlay.Channel
	}
	if overlay.ReconnectDelay != "" {
		c.ReconnectDelay = overlay.ReconnectDelay
	}
}

func (c *Config) loadDefaults() {
	if c.Channel == "" {
		c.Channel = "scan_changes"
	}
	if c.ReconnectDelay == "" {
		c.ReconnectDelay = "5s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Channel != "" {
		if v := os.Getenv(env.Channel); v != "" {
			c.Channel = v
		}
	}
	if env.ReconnectDelay != "" {
		if v := os.Getenv(env.ReconnectDelay); v != "" {
			c.ReconnectDelay = v
		}
	}
}

func (c *Config) validate() error {
	if c.Channel == "" {
		return fmt.Errorf("channel required")
	}
	if _, err := time.ParseDuration(c.ReconnectDelay); err != nil {
		return fmt.Errorf("invalid reconnect_delay: %w", err)
	}
	return nil
}
