package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/tzc/internal/core/zone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), dataDir)
	require.NoError(t, err)

	assert.Equal(t, "tokyo-night", cfg.Theme)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, 15*time.Minute, cfg.Snap())
	assert.Equal(t, dataDir, cfg.DataDir)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
theme: gruvbox
storage:
  driver: json
timeline:
  snap_minutes: 30
  restore_instant: true
catalog:
  include: ["Europe/**", "America/**"]
  exclude: ["Etc/**"]
defaults: [Asia/Tokyo, UTC]
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, DriverJSON, cfg.Storage.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Snap())
	assert.True(t, cfg.Timeline.RestoreInstant)
	assert.False(t, cfg.Timeline.Strict)
	assert.Equal(t, []string{"Europe/**", "America/**"}, cfg.Catalog.Include)
	assert.Equal(t, []zone.ID{"Asia/Tokyo", "UTC"}, cfg.Defaults)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "theme: gruvbox\nstorage:\n  driver: sqlite\n")

	t.Setenv("TZC_STORAGE_DRIVER", "json")
	t.Setenv("TZC_TIMELINE_SNAP_MINUTES", "5")
	t.Setenv("TZC_DEFAULTS", "Asia/Tokyo,Europe/Paris")

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.Theme, "file value kept when env unset")
	assert.Equal(t, DriverJSON, cfg.Storage.Driver)
	assert.Equal(t, 5, cfg.Timeline.SnapMinutes)
	assert.Equal(t, []zone.ID{"Asia/Tokyo", "Europe/Paris"}, cfg.Defaults)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown theme", "theme: solarized-neon\n"},
		{"unknown driver", "storage:\n  driver: redis\n"},
		{"snap not dividing hour", "timeline:\n  snap_minutes: 7\n"},
		{"bad glob", "catalog:\n  include: ['Europe/[']\n"},
		{"unknown default zone", "defaults: [Mars/Olympus]\n"},
		{"malformed yaml", "theme: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), t.TempDir())
			assert.Error(t, err)
		})
	}
}
