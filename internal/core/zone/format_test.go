package zone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsetString(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "UTC+00:00"},
		{540, "UTC+09:00"},
		{-300, "UTC-05:00"},
		{330, "UTC+05:30"},
		{-210, "UTC-03:30"},
		{765, "UTC+12:45"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, OffsetString(tt.minutes))
		})
	}
}

func TestFormats(t *testing.T) {
	instant := time.Date(2025, 11, 26, 8, 45, 0, 0, time.UTC)
	v, err := ToZoned(instant, "Asia/Tokyo")
	require.NoError(t, err)

	assert.Equal(t, "Wed 17:45", FormatShort(v))
	assert.Equal(t, "2025-11-26 17:45", FormatFull(v))
	assert.Equal(t, "Tokyo: 11/26 17:45", FormatCopyLine("Tokyo", v))
	assert.Equal(t, "2025-11-26T17:45", FormatInput(v))
	assert.Equal(t, "UTC+09:00", v.OffsetString())
}

func TestParseInput(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	got, err := ParseInput("2025-01-10T07:00", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())

	for _, bad := range []string{"", "tomorrow", "2025-13-01T00:00", "2025-01-10 07:00"} {
		_, err := ParseInput(bad, loc)
		assert.Error(t, err, "input %q", bad)
	}
}
