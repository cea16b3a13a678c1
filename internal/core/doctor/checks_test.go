package doctor

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/tzc/internal/core/catalog"
	"github.com/hay-kot/tzc/internal/core/config"
	"github.com/hay-kot/tzc/internal/core/zone"
)

type fakeSelection struct {
	local   zone.ID
	zones   []zone.ID
	catalog *catalog.Catalog
	removed []zone.ID
}

func (f *fakeSelection) Local() zone.ID            { return f.local }
func (f *fakeSelection) Catalog() *catalog.Catalog { return f.catalog }

func (f *fakeSelection) Zones() []zone.ID {
	return append([]zone.ID{f.local}, f.zones...)
}

func (f *fakeSelection) Remove(_ context.Context, id zone.ID) {
	f.removed = append(f.removed, id)
	f.zones = slices.DeleteFunc(f.zones, func(z zone.ID) bool { return z == id })
}

func statuses(r Result) map[string]Status {
	out := make(map[string]Status, len(r.Items))
	for _, item := range r.Items {
		out[item.Label] = item.Status
	}
	return out
}

func TestZonesCheck(t *testing.T) {
	sel := &fakeSelection{
		local:   "Europe/Berlin",
		zones:   []zone.ID{"Asia/Tokyo", "Mars/Olympus", "Europe/Paris"},
		catalog: catalog.New([]zone.ID{"Europe/Berlin", "Asia/Tokyo"}),
	}

	result := NewZonesCheck(sel, false).Run(context.Background())

	assert.Equal(t, map[string]Status{
		"Europe/Berlin": StatusPass,
		"Asia/Tokyo":    StatusPass,
		"Mars/Olympus":  StatusFail,
		"Europe/Paris":  StatusWarn,
	}, statuses(result))
	assert.Empty(t, sel.removed)

	results := []Result{result}
	assert.Equal(t, 1, CountFixable(results))
	passed, warned, failed := Summary(results)
	assert.Equal(t, []int{2, 1, 1}, []int{passed, warned, failed})
}

func TestZonesCheck_Autofix(t *testing.T) {
	sel := &fakeSelection{
		local:   zone.UTC,
		zones:   []zone.ID{"Mars/Olympus", "Asia/Tokyo"},
		catalog: catalog.Default(),
	}

	results := RunAll(context.Background(), []Check{NewZonesCheck(sel, true)})

	assert.Equal(t, []zone.ID{"Mars/Olympus"}, sel.removed)
	assert.Equal(t, []zone.ID{"Asia/Tokyo"}, sel.zones)
	assert.Equal(t, StatusWarn, statuses(results[0])["UTC"])
	assert.Equal(t, StatusPass, statuses(results[0])["Mars/Olympus"])
	assert.Equal(t, "pass", results[0].Items[1].StatusStr)
	assert.Zero(t, CountFixable(results))
}

func TestConfigCheck(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	result := NewConfigCheck(&cfg, filepath.Join(cfg.DataDir, "config.yaml")).Run(context.Background())
	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)

	cfg.Timeline.SnapMinutes = 7
	cfg.Storage.Driver = "redis"
	result = NewConfigCheck(&cfg, "").Run(context.Background())
	assert.Equal(t, map[string]Status{
		"storage.driver":        StatusFail,
		"timeline.snap_minutes": StatusFail,
	}, statuses(result))
}

type fakeStoredPrefs struct {
	stored bool
	err    error
}

func (f fakeStoredPrefs) Stored(context.Context) (bool, error) { return f.stored, f.err }
func (f fakeStoredPrefs) Location() string                     { return "prefs:timezone-compare-data" }

func TestStorageCheck(t *testing.T) {
	ctx := context.Background()

	ok := NewStorageCheck("sqlite", "/data/tzc.db", nil, fakeStoredPrefs{stored: true}).Run(ctx)
	require.Len(t, ok.Items, 2)
	assert.Equal(t, StatusPass, ok.Items[0].Status)
	assert.Equal(t, "/data/tzc.db", ok.Items[0].Detail)
	assert.Equal(t, StatusPass, ok.Items[1].Status)
	assert.Equal(t, "prefs:timezone-compare-data", ok.Items[1].Detail)

	broken := NewStorageCheck("json", "/data/prefs.json", errors.New("read-only file system"), fakeStoredPrefs{}).Run(ctx)
	require.Len(t, broken.Items, 1)
	assert.Equal(t, StatusFail, broken.Items[0].Status)
	assert.Contains(t, broken.Items[0].Detail, "read-only")
}

func TestStorageCheck_PreferencesState(t *testing.T) {
	ctx := context.Background()

	empty := NewStorageCheck("json", "/data/prefs.json", nil, fakeStoredPrefs{}).Run(ctx)
	require.Len(t, empty.Items, 2)
	assert.Equal(t, StatusPass, empty.Items[1].Status)
	assert.Contains(t, empty.Items[1].Detail, "defaults in use")

	unreadable := NewStorageCheck("json", "/data/prefs.json", nil, fakeStoredPrefs{err: errors.New("unexpected end of JSON input")}).Run(ctx)
	require.Len(t, unreadable.Items, 2)
	assert.Equal(t, StatusFail, unreadable.Items[1].Status)
	assert.Contains(t, unreadable.Items[1].Detail, "unexpected end of JSON input")
}

func TestClipboardCheck(t *testing.T) {
	c := &ClipboardCheck{unsupported: true}
	assert.Equal(t, StatusWarn, c.Run(context.Background()).Items[0].Status)

	c = &ClipboardCheck{}
	assert.Equal(t, StatusPass, c.Run(context.Background()).Items[0].Status)
}
