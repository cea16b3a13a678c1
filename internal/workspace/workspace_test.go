package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hay-kot/tzc/internal/core/catalog"
	"github.com/hay-kot/tzc/internal/core/kv"
	"github.com/hay-kot/tzc/internal/core/prefs"
	"github.com/hay-kot/tzc/internal/core/zone"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 11, 26, 8, 45, 0, 0, time.UTC)

type failingPrefs struct {
	data  prefs.Data
	err   error
	saves int
}

func (f *failingPrefs) Load(context.Context) prefs.Data { return f.data }

func (f *failingPrefs) Save(context.Context, prefs.Data) error {
	f.saves++
	if f.err != nil {
		return f.err
	}
	return errors.New("disk full")
}

func newTestWorkspace(t *testing.T, stored *prefs.Data) (*Workspace, *prefs.Store) {
	t.Helper()

	backend := kv.NewMemory()
	store := prefs.NewStore(backend, nil, zerolog.Nop())
	if stored != nil {
		require.NoError(t, store.Save(context.Background(), *stored))
	}

	ws := New(context.Background(), Options{
		Catalog:   catalog.Default(),
		Prefs:     store,
		Converter: zone.NewConverter(true),
		Local:     zone.UTC,
		Now:       func() time.Time { return fixedNow },
		Logger:    zerolog.Nop(),
	})
	return ws, store
}

func TestNew_EmptyStoreUsesDefaults(t *testing.T) {
	ws, _ := newTestWorkspace(t, nil)

	want := append([]zone.ID{zone.UTC}, prefs.DefaultZones...)
	assert.Equal(t, want, ws.Zones())
	assert.Equal(t, fixedNow, ws.Instant())
}

func TestNew_DropsLocalAndDuplicates(t *testing.T) {
	ws, _ := newTestWorkspace(t, &prefs.Data{
		SelectedTimezones: []zone.ID{"UTC", "Asia/Tokyo", "Asia/Tokyo", "Europe/Paris"},
	})

	assert.Equal(t, []zone.ID{"UTC", "Asia/Tokyo", "Europe/Paris"}, ws.Zones())
}

func TestNew_RestoreInstant(t *testing.T) {
	ctx := context.Background()
	stored := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	store := prefs.NewStore(kv.NewMemory(), nil, zerolog.Nop())
	require.NoError(t, store.Save(ctx, prefs.Data{
		SelectedTimezones: []zone.ID{"Asia/Tokyo"},
		LastBaseTime:      &stored,
	}))

	opts := Options{Prefs: store, Now: func() time.Time { return fixedNow }, Logger: zerolog.Nop()}

	assert.Equal(t, fixedNow, New(ctx, opts).Instant())

	opts.RestoreInstant = true
	assert.Equal(t, stored, New(ctx, opts).Instant())
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	ws, store := newTestWorkspace(t, &prefs.Data{SelectedTimezones: []zone.ID{"Asia/Tokyo"}})

	require.NoError(t, ws.Add(ctx, "Europe/Paris"))
	require.NoError(t, ws.Add(ctx, "Europe/Paris"))
	require.NoError(t, ws.Add(ctx, zone.UTC))
	assert.Equal(t, []zone.ID{"UTC", "Asia/Tokyo", "Europe/Paris"}, ws.Zones())

	err := ws.Add(ctx, "Mars/Olympus_Mons")
	require.ErrorIs(t, err, catalog.ErrNotFound)

	assert.Equal(t, []zone.ID{"Asia/Tokyo", "Europe/Paris"}, store.Load(ctx).SelectedTimezones)
}

func TestRemove_DropsLabelAndDeselection(t *testing.T) {
	ctx := context.Background()
	ws, store := newTestWorkspace(t, &prefs.Data{
		SelectedTimezones: []zone.ID{"Asia/Tokyo", "Europe/Paris"},
		CustomLabels:      map[zone.ID]string{"Asia/Tokyo": "HQ"},
	})
	ws.ToggleCopy("Asia/Tokyo")

	ws.Remove(ctx, "Asia/Tokyo")
	assert.Equal(t, []zone.ID{"UTC", "Europe/Paris"}, ws.Zones())
	assert.Empty(t, ws.CustomLabel("Asia/Tokyo"))
	assert.True(t, ws.Selected("Asia/Tokyo"))

	loaded := store.Load(ctx)
	assert.NotContains(t, loaded.CustomLabels, zone.ID("Asia/Tokyo"))

	// re-adding starts from a clean slate
	require.NoError(t, ws.Add(ctx, "Asia/Tokyo"))
	assert.Equal(t, "Tokyo", ws.Label("Asia/Tokyo"))
}

func TestRemove_LocalIsNoop(t *testing.T) {
	ws, _ := newTestWorkspace(t, nil)
	before := ws.Zones()

	ws.Remove(context.Background(), zone.UTC)
	assert.Equal(t, before, ws.Zones())
}

func TestReorder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		from, to int
		want     []zone.ID
	}{
		{"down", 1, 3, []zone.ID{"UTC", "B/B", "C/C", "A/A"}},
		{"up", 3, 1, []zone.ID{"UTC", "C/C", "A/A", "B/B"}},
		{"onto local", 2, 0, []zone.ID{"UTC", "A/A", "B/B", "C/C"}},
		{"from local", 0, 2, []zone.ID{"UTC", "A/A", "B/B", "C/C"}},
		{"out of range", 1, 9, []zone.ID{"UTC", "A/A", "B/B", "C/C"}},
		{"same index", 2, 2, []zone.ID{"UTC", "A/A", "B/B", "C/C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := prefs.NewStore(kv.NewMemory(), nil, zerolog.Nop())
			require.NoError(t, store.Save(ctx, prefs.Data{SelectedTimezones: []zone.ID{"A/A", "B/B", "C/C"}}))

			ws := New(ctx, Options{
				Catalog: catalog.New([]zone.ID{"A/A", "B/B", "C/C"}),
				Prefs:   store,
				Logger:  zerolog.Nop(),
			})

			ws.Reorder(ctx, tt.from, tt.to)
			assert.Equal(t, tt.want, ws.Zones())
			assert.Equal(t, tt.want[1:], store.Load(ctx).SelectedTimezones)
		})
	}
}

func TestSetLabel(t *testing.T) {
	ctx := context.Background()
	ws, store := newTestWorkspace(t, &prefs.Data{SelectedTimezones: []zone.ID{"Asia/Tokyo"}})

	ws.SetLabel(ctx, "Asia/Tokyo", "  Office  ")
	assert.Equal(t, "Office", ws.Label("Asia/Tokyo"))
	assert.Equal(t, "Office", store.Load(ctx).CustomLabels["Asia/Tokyo"])

	ws.SetLabel(ctx, "Asia/Tokyo", "   ")
	assert.Equal(t, "Tokyo", ws.Label("Asia/Tokyo"))
	assert.Empty(t, ws.CustomLabel("Asia/Tokyo"))

	// zones that are not displayed cannot be labelled
	ws.SetLabel(ctx, "Europe/Paris", "Paris office")
	assert.Empty(t, ws.CustomLabel("Europe/Paris"))
}

func TestCopyText_SkipsDeselected(t *testing.T) {
	ws, _ := newTestWorkspace(t, &prefs.Data{SelectedTimezones: []zone.ID{"Asia/Tokyo"}})

	ws.ToggleCopy(zone.UTC)
	assert.Equal(t, 1, ws.SelectedCount())
	assert.Equal(t, "Tokyo: 11/26 17:45", ws.CopyText())

	ws.ToggleCopy(zone.UTC)
	assert.Equal(t, 2, ws.SelectedCount())
	assert.Equal(t, "UTC: 11/26 08:45\nTokyo: 11/26 17:45", ws.CopyText())
}

func TestCopyText_UsesCustomLabel(t *testing.T) {
	ws, _ := newTestWorkspace(t, &prefs.Data{
		SelectedTimezones: []zone.ID{"America/New_York"},
		CustomLabels:      map[zone.ID]string{"America/New_York": "NYC"},
	})
	ws.ToggleCopy(zone.UTC)

	assert.Equal(t, "NYC: 11/26 03:45", ws.CopyText())
}

func TestSetInstantInput(t *testing.T) {
	ctx := context.Background()
	ws, _ := newTestWorkspace(t, nil)

	ok := ws.SetInstantInput(ctx, "2025-06-01T09:30")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC), ws.Instant())
	assert.Equal(t, "2025-06-01T09:30", ws.InstantInput())

	ok = ws.SetInstantInput(ctx, "tomorrow-ish")
	assert.False(t, ok)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC), ws.Instant())

	ws.ResetNow(ctx)
	assert.Equal(t, fixedNow, ws.Instant())
}

func TestSetInstantInput_LocalZone(t *testing.T) {
	ws := New(context.Background(), Options{
		Prefs:  prefs.NewStore(kv.NewMemory(), nil, zerolog.Nop()),
		Local:  "Asia/Tokyo",
		Logger: zerolog.Nop(),
	})

	require.True(t, ws.SetInstantInput(context.Background(), "2025-01-10T09:00"))
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), ws.Instant())
}

func TestRows(t *testing.T) {
	ws, _ := newTestWorkspace(t, &prefs.Data{SelectedTimezones: []zone.ID{"Asia/Tokyo"}})
	ws.ToggleCopy("Asia/Tokyo")

	rows := ws.Rows()
	require.Len(t, rows, 2)

	assert.True(t, rows[0].Local)
	assert.False(t, rows[0].Removable)
	assert.True(t, rows[0].Selected)

	assert.Equal(t, zone.ID("Asia/Tokyo"), rows[1].ID)
	assert.Equal(t, "Tokyo", rows[1].Label)
	assert.False(t, rows[1].Selected)
	assert.True(t, rows[1].Removable)
	assert.Equal(t, 17, rows[1].View.Hour)
}

func TestReload(t *testing.T) {
	ctx := context.Background()
	ws, store := newTestWorkspace(t, &prefs.Data{SelectedTimezones: []zone.ID{"Asia/Tokyo"}})

	assert.False(t, ws.Reload(ctx))

	require.NoError(t, store.Save(ctx, prefs.Data{
		SelectedTimezones: []zone.ID{"Asia/Tokyo", "Europe/Paris"},
		CustomLabels:      map[zone.ID]string{"Europe/Paris": "Paris"},
	}))

	assert.True(t, ws.Reload(ctx))
	assert.Equal(t, []zone.ID{"UTC", "Asia/Tokyo", "Europe/Paris"}, ws.Zones())
	assert.Equal(t, "Paris", ws.Label("Europe/Paris"))
	assert.False(t, ws.Reload(ctx))
}

func TestSaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	fp := &failingPrefs{data: prefs.Defaults([]zone.ID{"Asia/Tokyo"})}

	ws := New(ctx, Options{Prefs: fp, Logger: zerolog.Nop()})
	require.NoError(t, ws.Add(ctx, "Europe/Paris"))

	assert.Equal(t, 1, fp.saves)
	assert.Equal(t, []zone.ID{"UTC", "Asia/Tokyo", "Europe/Paris"}, ws.Zones())
}

func TestSaveFailureLogLevel(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantMsg   string
	}{
		{
			name:      "busy database",
			err:       fmt.Errorf("save preferences: %w", sqlite3.Error{Code: sqlite3.ErrBusy}),
			wantLevel: "warn",
			wantMsg:   "database busy, preferences not saved",
		},
		{
			name:      "other failure",
			err:       errors.New("save preferences: disk full"),
			wantLevel: "error",
			wantMsg:   "failed to save preferences",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			fp := &failingPrefs{data: prefs.Defaults([]zone.ID{"Asia/Tokyo"}), err: tt.err}
			ws := New(ctx, Options{Prefs: fp, Logger: zerolog.New(&buf).Level(zerolog.WarnLevel)})

			ws.Remove(ctx, "Asia/Tokyo")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, tt.wantMsg, entry["message"])
		})
	}
}

func TestAt_DoesNotPersist(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewStore(kv.NewMemory(), nil, zerolog.Nop())
	ws := New(ctx, Options{Prefs: store, RestoreInstant: true, Logger: zerolog.Nop()})

	at := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	ws.At(at)
	assert.Equal(t, at, ws.Instant())
	assert.Nil(t, store.Load(ctx).LastBaseTime)

	ws.SetInstant(ctx, at)
	require.NotNil(t, store.Load(ctx).LastBaseTime)
	assert.Equal(t, at, *store.Load(ctx).LastBaseTime)
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	ws, store := newTestWorkspace(t, &prefs.Data{SelectedTimezones: []zone.ID{"Asia/Tokyo"}})

	err := ws.Import(ctx, prefs.Data{
		SelectedTimezones: []zone.ID{"UTC", "Europe/Paris", "Europe/Paris", "Asia/Kolkata"},
		CustomLabels:      map[zone.ID]string{"Asia/Kolkata": " Bangalore "},
	})
	require.NoError(t, err)

	assert.Equal(t, []zone.ID{"UTC", "Europe/Paris", "Asia/Kolkata"}, ws.Zones())
	assert.Equal(t, "Bangalore", ws.Label("Asia/Kolkata"))

	stored := store.Load(ctx)
	assert.Equal(t, []zone.ID{"Europe/Paris", "Asia/Kolkata"}, stored.SelectedTimezones)
}

func TestImport_UnknownZoneChangesNothing(t *testing.T) {
	ctx := context.Background()
	ws, store := newTestWorkspace(t, &prefs.Data{SelectedTimezones: []zone.ID{"Asia/Tokyo"}})

	err := ws.Import(ctx, prefs.Data{SelectedTimezones: []zone.ID{"Europe/Paris", "Mars/Olympus"}})
	require.ErrorIs(t, err, zone.ErrUnknownZone)
	assert.Contains(t, err.Error(), "Mars/Olympus")

	assert.Equal(t, []zone.ID{"UTC", "Asia/Tokyo"}, ws.Zones())
	assert.Equal(t, []zone.ID{"Asia/Tokyo"}, store.Load(ctx).SelectedTimezones)
}
