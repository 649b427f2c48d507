// Package config loads and validates plotforge configuration files.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the main configuration structure for plotforge.
type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Logging   LoggingConfig   `yaml:"logging"`
	Tracing   TracingConfig   `yaml:"tracing"`
	Templates TemplatesConfig `yaml:"templates"`
	Retention RetentionConfig `yaml:"retention"`
}

// StoreConfig selects and configures the payload store backend.
type StoreConfig struct {
	// Backend is one of "memory", "sqlite", or "postgres".
	Backend string `yaml:"backend"`

	// Path is the database file for the sqlite backend.
	Path string `yaml:"path"`

	// DSN is the connection string for the postgres backend.
	DSN string `yaml:"dsn"`

	MaxConnections  int           `yaml:"max_connections"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TracingConfig controls OpenTelemetry tracing.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Endpoint     string  `yaml:"endpoint"`
	ServiceName  string  `yaml:"service_name"`
	Environment  string  `yaml:"environment"`
	SamplingRate float64 `yaml:"sampling_rate"`
	Insecure     bool    `yaml:"insecure"`
}

// TemplatesConfig configures seed template discovery.
type TemplatesConfig struct {
	// Dirs are scanned for template files in addition to the builtins.
	// Later directories win name conflicts.
	Dirs []string `yaml:"dirs"`

	// Default names the template used when a seed request names none.
	Default string `yaml:"default"`

	// Watch re-discovers templates when files change.
	Watch         bool          `yaml:"watch"`
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// RetentionConfig controls the payload retention sweeper.
type RetentionConfig struct {
	Enabled bool `yaml:"enabled"`

	// Cron is the sweep schedule (five-field cron or @descriptor).
	Cron string `yaml:"cron"`

	// MaxAge is how long payloads are kept after their last save.
	MaxAge time.Duration `yaml:"max_age"`
}

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Load reads, parses, and validates the configuration file at path.
func Load(path string) (*Config, error) {
	raw, err := LoadRaw(path)
	if err != nil {
		return nil, err
	}
	cfg, err := decodeRawConfig(raw)
	if err != nil {
		return nil, err
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration with all defaults applied and no file input.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields with their default values.
func ApplyDefaults(cfg *Config) {
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendMemory
	}
	if cfg.Store.MaxConnections == 0 {
		cfg.Store.MaxConnections = 25
	}
	if cfg.Store.ConnMaxLifetime == 0 {
		cfg.Store.ConnMaxLifetime = 5 * time.Minute
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = "plotforge"
	}
	if cfg.Tracing.SamplingRate == 0 {
		cfg.Tracing.SamplingRate = 1.0
	}
	if cfg.Templates.WatchDebounce == 0 {
		cfg.Templates.WatchDebounce = 250 * time.Millisecond
	}
	if cfg.Retention.Cron == "" {
		cfg.Retention.Cron = "@hourly"
	}
}

// Validate checks the configuration for inconsistent or missing values.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendSQLite:
		if strings.TrimSpace(c.Store.Path) == "" {
			return fmt.Errorf("store.path is required for the sqlite backend")
		}
	case BackendPostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("store.dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("store.backend must be one of memory, sqlite, postgres (got %q)", c.Store.Backend)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text (got %q)", c.Logging.Format)
	}

	if c.Tracing.SamplingRate < 0 || c.Tracing.SamplingRate > 1 {
		return fmt.Errorf("tracing.sampling_rate must be between 0 and 1 (got %v)", c.Tracing.SamplingRate)
	}
	if c.Tracing.Enabled && strings.TrimSpace(c.Tracing.Endpoint) == "" {
		return fmt.Errorf("tracing.endpoint is required when tracing is enabled")
	}

	if c.Templates.WatchDebounce < 0 {
		return fmt.Errorf("templates.watch_debounce must not be negative")
	}

	if c.Retention.Enabled && c.Retention.MaxAge <= 0 {
		return fmt.Errorf("retention.max_age must be positive when retention is enabled")
	}

	return nil
}
