package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"github.com/hay-kot/tzc/internal/core/styles"
	"github.com/hay-kot/tzc/internal/core/zone"
)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("theme", c.Theme, themeExists),
		criterio.Run("storage.driver", c.Storage.Driver, driverKnown),
		validateSnap(c.Timeline.SnapMinutes),
		validateGlobs("catalog.include", c.Catalog.Include),
		validateGlobs("catalog.exclude", c.Catalog.Exclude),
		c.validateDefaults(),
	)
}

// ValidateDeep runs Validate and additionally checks the config file, data
// directory and zoneinfo directory on disk. An empty configPath skips the
// config file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("catalog.zoneinfo_dir", c.Catalog.ZoneInfoDir, isDirectoryIfSet),
	)
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func driverKnown(driver string) error {
	switch driver {
	case DriverSQLite, DriverJSON:
		return nil
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", driver, DriverSQLite, DriverJSON)
	}
}

func validateSnap(minutes int) error {
	if minutes < 1 || minutes > 60 || 60%minutes != 0 {
		return criterio.NewFieldErrors("timeline.snap_minutes", fmt.Errorf("must divide 60, got %d", minutes))
	}
	return nil
}

func validateGlobs(field string, patterns []string) error {
	var errs criterio.FieldErrorsBuilder
	for i, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			errs = errs.Append(fmt.Sprintf("%s[%d]", field, i), fmt.Errorf("invalid glob %q", p))
		}
	}
	return errs.ToError()
}

func (c *Config) validateDefaults() error {
	var errs criterio.FieldErrorsBuilder
	for i, id := range c.Defaults {
		if !zone.Valid(id) {
			errs = errs.Append(fmt.Sprintf("defaults[%d]", i), fmt.Errorf("%w: %q", zone.ErrUnknownZone, id))
		}
	}
	return errs.ToError()
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func isDirectoryIfSet(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory")
	}
	return nil
}
