package validation

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds coordinator step timeouts and reconciliation sweep
// parameters.
type Config struct {
	ReadTimeout   string `toml:"read_timeout"`
	WriteTimeout  string `toml:"write_timeout"`
	SweepInterval string `toml:"sweep_interval"`
	SweepLimit    int    `toml:"sweep_limit"`
	SweepWorkers  int    `toml:"sweep_workers"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	ReadTimeout   string
	WriteTimeout  string
	SweepInterval string
	SweepLimit    string
	SweepWorkers  string
}

// ReadTimeoutDuration returns ReadTimeout as a time.Duration.
func (c *Config) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	return d
}

// WriteTimeoutDuration returns WriteTimeout as a time.Duration.
func (c *Config) WriteTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	return d
}

// SweepIntervalDuration returns SweepInterval as a time.Duration.
func (c *Config) SweepIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.SweepInterval)
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
	if overlay.ReadTimeout != "" {
		c.ReadTimeout = overlay.ReadTimeout
	}
	if overlay.WriteTimeout != "" {
		c.WriteTimeout = overlay.WriteTimeout
	}
	if overlay.SweepInterval != "" {
		c.SweepInterval = overlay.SweepInterval
	}
	if overlay.SweepLimit != 0 {
		c.SweepLimit = overlay.SweepLimit
	}
	if overlay.SweepWorkers != 0 {
		c.SweepWorkers = overlay.SweepWorkers
	}
}

func (c *Config) loadDefaults() {
	if c.ReadTimeout == "" {
		c.ReadTimeout = "5s"
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = "10s"
	}
	if c.SweepInterval == "" {
		c.SweepInterval = "1m"
	}
	if c.SweepLimit == 0 {
		c.SweepLimit = 100
	}
	if c.SweepWorkers == 0 {
		c.SweepWorkers = 4
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.ReadTimeout != "" {
		if v := os.Getenv(env.ReadTimeout); v != "" {
			c.ReadTimeout = v
		}
	}
	if env.WriteTimeout != "" {
		if v := os.Getenv(env.WriteTimeout); v != "" {
			c.WriteTimeout = v
		}
	}
	if env.SweepInterval != "" {
		if v := os.Getenv(env.SweepInterval); v != "" {
			c.SweepInterval = v
		}
	}
	if env.SweepLimit != "" {
		if v := os.Getenv(env.SweepLimit); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.SweepLimit = n
			}
		}
	}
	if env.SweepWorkers != "" {
		if v := os.Getenv(env.SweepWorkers); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.SweepWorkers = n
			}
		}
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ReadTimeout); err != nil {
		return fmt.Errorf("invalid read_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.WriteTimeout); err != nil {
		return fmt.Errorf("invalid write_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.SweepInterval); err != nil {
		return fmt.Errorf("invalid sweep_interval: %w", err)
	}
	if c.SweepLimit < 1 {
		return fmt.Errorf("invalid sweep_limit: %d", c.SweepLimit)
	}
	if c.SweepWorkers < 1 {
		return fmt.Errorf("invalid sweep_workers: %d", c.SweepWorkers)
	}
	return nil
}
