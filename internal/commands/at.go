package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/hay-kot/tzc/internal/core/zone"
)

// parseAt parses an --at value. Accepted forms are RFC 3339, the base-time
// entry format "2006-01-02T15:04" and a bare "15:04" on the current day, the
// last two in loc.
func parseAt(value string, now time.Time, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "now" {
		return now.UTC(), nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	if t, err := zone.ParseInput(value, loc); err == nil {
		return t, nil
	}

	if clock, err := time.Parse("15:04", value); err == nil {
		day := now.In(loc)
		t := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
		return t.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("invalid time %q: use RFC 3339, 2006-01-02T15:04 or 15:04", value)
}
