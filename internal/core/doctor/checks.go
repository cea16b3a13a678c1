package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/tzc/internal/core/catalog"
	"github.com/hay-kot/tzc/internal/core/config"
	"github.com/hay-kot/tzc/internal/core/zone"
)

// ConfigCheck runs the deep configuration validation.
type ConfigCheck struct {
	cfg        *config.Config
	configPath string
}

func NewConfigCheck(cfg *config.Config, configPath string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, configPath: configPath}
}

func (c *ConfigCheck) Name() string { return "Configuration" }

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	err := c.cfg.ValidateDeep(c.configPath)
	if err == nil {
		result.Items = append(result.Items, pass("config", c.configPath))
		return result
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			result.Items = append(result.Items, fail(fe.Field, fe.Err.Error()))
		}
		return result
	}

	result.Items = append(result.Items, fail("config", err.Error()))
	return result
}

// StoredPrefs reports whether the preferences document has been written.
type StoredPrefs interface {
	Stored(ctx context.Context) (bool, error)
	Location() string
}

// StorageCheck reports which preferences backend is in use and whether it
// holds a preferences document.
type StorageCheck struct {
	driver   string
	location string
	openErr  error
	prefs    StoredPrefs
}

// NewStorageCheck creates a storage check. openErr is the error that made
// the application fall back to in-memory preferences, if any.
func NewStorageCheck(driver, location string, openErr error, prefs StoredPrefs) *StorageCheck {
	return &StorageCheck{driver: driver, location: location, openErr: openErr, prefs: prefs}
}

func (c *StorageCheck) Name() string { return "Storage" }

func (c *StorageCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}
	if c.openErr != nil {
		result.Items = append(result.Items, fail(c.driver, fmt.Sprintf("unavailable, changes are not saved: %v", c.openErr)))
		return result
	}
	result.Items = append(result.Items, pass(c.driver, c.location))

	stored, err := c.prefs.Stored(ctx)
	switch {
	case err != nil:
		result.Items = append(result.Items, fail("preferences", fmt.Sprintf("cannot read %s: %v", c.prefs.Location(), err)))
	case stored:
		result.Items = append(result.Items, pass("preferences", c.prefs.Location()))
	default:
		result.Items = append(result.Items, pass("preferences", "nothing saved yet, defaults in use"))
	}
	return result
}

// Selection is the part of a workspace the zone check inspects and repairs.
type Selection interface {
	Local() zone.ID
	Zones() []zone.ID
	Catalog() *catalog.Catalog
	Remove(ctx context.Context, id zone.ID)
}

// ZonesCheck verifies that every displayed zone resolves to zone rules.
// With autofix, unresolvable zones are removed from the selection.
type ZonesCheck struct {
	sel     Selection
	autofix bool
}

func NewZonesCheck(sel Selection, autofix bool) *ZonesCheck {
	return &ZonesCheck{sel: sel, autofix: autofix}
}

func (c *ZonesCheck) Name() string { return "Timezones" }

func (c *ZonesCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	local := c.sel.Local()
	if local == zone.UTC {
		result.Items = append(result.Items, warn(string(local), "local timezone not detected or UTC; set TZ to override"))
	} else {
		result.Items = append(result.Items, pass(string(local), "local"))
	}

	for _, id := range c.sel.Zones() {
		if id == local {
			continue
		}

		switch {
		case !zone.Valid(id):
			if c.autofix {
				c.sel.Remove(ctx, id)
				result.Items = append(result.Items, pass(string(id), "unknown timezone removed"))
				continue
			}
			item := fail(string(id), "unknown timezone")
			item.Fixable = true
			result.Items = append(result.Items, item)
		case !c.sel.Catalog().Contains(id):
			result.Items = append(result.Items, warn(string(id), "not in the configured catalog"))
		default:
			result.Items = append(result.Items, pass(string(id), ""))
		}
	}

	return result
}

// ClipboardCheck reports whether copying is supported on this system.
type ClipboardCheck struct {
	unsupported bool
}

func NewClipboardCheck() *ClipboardCheck {
	return &ClipboardCheck{unsupported: clipboard.Unsupported}
}

func (c *ClipboardCheck) Name() string { return "Clipboard" }

func (c *ClipboardCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}
	if c.unsupported {
		result.Items = append(result.Items, warn("clipboard", "no clipboard utility found (install xclip, xsel or wl-clipboard)"))
		return result
	}
	result.Items = append(result.Items, pass("clipboard", ""))
	return result
}
