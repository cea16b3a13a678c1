package row

import (
	"testing"
	"time"

	"github.com/hay-kot/tzc/internal/core/zone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var instant = time.Date(2025, 1, 10, 8, 45, 0, 0, time.UTC)

func TestBuild(t *testing.T) {
	conv := zone.NewConverter(false)

	r := Build(conv, Input{
		ID:           "Asia/Tokyo",
		Instant:      instant,
		DefaultLabel: "Tokyo",
		Selected:     true,
	})

	require.NoError(t, r.Err)
	assert.Equal(t, "Tokyo", r.Label)
	assert.False(t, r.Custom)
	assert.Equal(t, "UTC+09:00", r.Offset)
	assert.Equal(t, "Fri 17:45", r.Time)
	assert.Equal(t, 17, r.Strip[Center].Hour)
	assert.InDelta(t, 3.0, r.Shift, 1e-9)
	assert.True(t, r.Selected)
	assert.True(t, r.Removable)
}

func TestBuild_CustomLabelAndLocal(t *testing.T) {
	conv := zone.NewConverter(false)

	r := Build(conv, Input{
		ID:           "UTC",
		Instant:      instant,
		DefaultLabel: "UTC",
		CustomLabel:  "Server",
		Local:        true,
	})

	assert.Equal(t, "Server", r.Label)
	assert.True(t, r.Custom)
	assert.True(t, r.Local)
	assert.False(t, r.Removable)
	assert.Equal(t, "UTC+00:00", r.Offset)
}

func TestBuild_UnknownZoneDegrades(t *testing.T) {
	conv := zone.NewConverter(false)

	r := Build(conv, Input{ID: "Mars/Olympus", Instant: instant, DefaultLabel: "Olympus"})

	require.ErrorIs(t, r.Err, zone.ErrUnknownZone)
	assert.Equal(t, "Mars/Olympus", r.Label)
	assert.Empty(t, r.Offset)
}

func TestBuild_UnknownZoneStrictPanics(t *testing.T) {
	conv := zone.NewConverter(true)

	assert.Panics(t, func() {
		Build(conv, Input{ID: "Mars/Olympus", Instant: instant})
	})
}
