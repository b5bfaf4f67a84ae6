package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/experts"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/feed"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/internal/validation"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/database"
	"github.com/mikeangelocasono/BitterScan-Dashboard-sub001/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvBitterScanEnv             = "BITTERSCAN_ENV"
	EnvBitterScanShutdownTimeout = "BITTERSCAN_SHUTDOWN_TIMEOUT"
	EnvBitterScanVersion         = "BITTERSCAN_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "BITTERSCAN_DB_HOST",
	Port:            "BITTERSCAN_DB_PORT",
	Name:            "BITTERSCAN_DB_NAME",
	User:            "BITTERSCAN_DB_USER",
	Password:        "BITTERSCAN_DB_PASSWORD",
	SSLMode:         "BITTERSCAN_DB_SSL_MODE",
	MaxOpenConns:    "BITTERSCAN_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "BITTERSCAN_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "BITTERSCAN_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "BITTERSCAN_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "BITTERSCAN_STORAGE_CONTAINER_NAME",
	ConnectionString: "BITTERSCAN_STORAGE_CONNECTION_STRING",
}

var identityEnv = &experts.Env{
	Issuer:     "BITTERSCAN_IDENTITY_ISSUER",
	ClientID:   "BITTERSCAN_IDENTITY_CLIENT_ID",
	DevHeaders: "BITTERSCAN_IDENTITY_DEV_HEADERS",
}

var feedEnv = &feed.Env{
	Channel:        "BITTERSCAN_FEED_CHANNEL",
	ReconnectDelay: "BITTERSCAN_FEED_RECONNECT_DELAY",
}

var validationEnv = &validation.Env{
	ReadTimeout:   "BITTERSCAN_VALIDATION_READ_TIMEOUT",
	WriteTimeout:  "BITTERSCAN_VALIDATION_WRITE_TIMEOUT",
	SweepInterval: "BITTERSCAN_VALIDATION_SWEEP_INTERVAL",
	SweepLimit:    "BITTERSCAN_VALIDATION_SWEEP_LIMIT",
	SweepWorkers:  "BITTERSCAN_VALIDATION_SWEEP_WORKERS",
}

// Config is the root configuration for the BitterScan dashboard service.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        database.Config   `toml:"database"`
	Storage         storage.Config    `toml:"storage"`
	Identity        experts.Config    `toml:"identity"`
	Feed            feed.Config       `toml:"feed"`
	Validation      validation.Config `toml:"validation"`
	API             APIConfig         `toml:"api"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the BITTERSCAN_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvBitterScanEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
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
	c.Identity.Merge(&overlay.Identity)
	c.Feed.Merge(&overlay.Feed)
	c.Validation.Merge(&overlay.Validation)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Identity.Finalize(identityEnv); err != nil {
		return fmt.Errorf("identity: %w", err)
	}
	if err := c.Feed.Finalize(feedEnv); err != nil {
		return fmt.Errorf("feed: %w", err)
	}
	if err := c.Validation.Finalize(validationEnv); err != nil {
		return fmt.Errorf("validation: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvBitterScanShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvBitterScanVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
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

func overlayPath() string {
	if env := os.Getenv(EnvBitterScanEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
