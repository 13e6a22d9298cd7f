package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/bitelog/bitelog/internal/localstate"
)

// Config holds configuration for the CLI shell. The core library takes
// explicit parameters; only the shell reads the environment.
// Variables are prefixed with BITELOG_, e.g. BITELOG_DB_PATH.
type Config struct {
	// DBPath is the SQLite database file. Empty means ~/.bitelog/bitelog.db.
	DBPath string `envconfig:"DB_PATH" default:""`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// TimeZone overrides the zone used for day bucketing and export
	// rendering. Empty means the process-local zone.
	TimeZone string `envconfig:"TIME_ZONE" default:""`
}

// New creates a Config by parsing environment variables and resolving
// defaults.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("BITELOG", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveDefaults fills DBPath from the local-state convention and
// validates TimeZone.
func (c *Config) ResolveDefaults() error {
	if c.DBPath == "" {
		p, err := localstate.DefaultDBPath()
		if err != nil {
			return err
		}
		c.DBPath = p
	}
	if c.TimeZone != "" {
		if _, err := time.LoadLocation(c.TimeZone); err != nil {
			return fmt.Errorf("unsupported TIME_ZONE: %s", c.TimeZone)
		}
	}
	return nil
}

// Location returns the zone selected by TimeZone, or the local zone.
func (c *Config) Location() *time.Location {
	if c.TimeZone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}
