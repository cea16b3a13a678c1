// Package config handles configuration loading and validation for tzc.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hay-kot/tzc/internal/core/zone"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverJSON   = "json"
)

// Config holds the application configuration.
type Config struct {
	Theme    string         `yaml:"theme"    envconfig:"THEME"`
	Storage  StorageConfig  `yaml:"storage"  envconfig:"STORAGE"`
	Timeline TimelineConfig `yaml:"timeline" envconfig:"TIMELINE"`
	Catalog  CatalogConfig  `yaml:"catalog"  envconfig:"CATALOG"`
	// Defaults replaces the built-in first-run selection.
	Defaults []zone.ID `yaml:"defaults" envconfig:"DEFAULTS"`
	DataDir  string    `yaml:"-"        ignored:"true"` // set by caller, not from config file
}

// StorageConfig selects where preferences are persisted.
type StorageConfig struct {
	Driver string `yaml:"driver" envconfig:"DRIVER"`
}

// TimelineConfig tunes the drag behaviour.
type TimelineConfig struct {
	SnapMinutes    int  `yaml:"snap_minutes"    envconfig:"SNAP_MINUTES"`
	RestoreInstant bool `yaml:"restore_instant" envconfig:"RESTORE_INSTANT"`
	Strict         bool `yaml:"strict"          envconfig:"STRICT"`
}

// CatalogConfig narrows the zone catalog with doublestar globs.
type CatalogConfig struct {
	Include []string `yaml:"include" envconfig:"INCLUDE"`
	Exclude []string `yaml:"exclude" envconfig:"EXCLUDE"`
	// ZoneInfoDir, when set, is scanned for zone files instead of using the
	// embedded list.
	ZoneInfoDir string `yaml:"zoneinfo_dir" envconfig:"ZONEINFO_DIR"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme:    "tokyo-night",
		Storage:  StorageConfig{Driver: DriverSQLite},
		Timeline: TimelineConfig{SnapMinutes: 15},
	}
}

// Load reads configuration from the given path, applies TZC_* environment
// overrides and sets the data directory. A missing file yields the defaults.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = defaults.Storage.Driver
	}
	if c.Timeline.SnapMinutes == 0 {
		c.Timeline.SnapMinutes = defaults.Timeline.SnapMinutes
	}
	c.Defaults = slices.DeleteFunc(c.Defaults, func(id zone.ID) bool { return id == "" })
}

// Snap returns the configured snap interval.
func (c *Config) Snap() time.Duration {
	return time.Duration(c.Timeline.SnapMinutes) * time.Minute
}
