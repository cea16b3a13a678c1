package zone

import (
	"fmt"
	"time"
)

const (
	layoutShort = "Mon 15:04"
	layoutFull  = "2006-01-02 15:04"
	layoutCopy  = "01/02 15:04"
	layoutInput = "2006-01-02T15:04"
)

// OffsetString formats a signed offset in minutes as "UTC+09:00".
func OffsetString(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, minutes/60, minutes%60)
}

// OffsetString formats the view's offset, e.g. "UTC-05:00".
func (v View) OffsetString() string {
	return OffsetString(v.OffsetMinutes())
}

// FormatShort renders weekday and 24h time, e.g. "Thu 21:00".
func FormatShort(v View) string {
	return v.Time.Format(layoutShort)
}

// FormatFull renders date and 24h time, e.g. "2025-01-10 21:00".
func FormatFull(v View) string {
	return v.Time.Format(layoutFull)
}

// FormatCopyLine renders one clipboard line, e.g. "Tokyo: 11/26 17:45".
func FormatCopyLine(label string, v View) string {
	return label + ": " + v.Time.Format(layoutCopy)
}

// FormatInput renders the value used by the base-time entry field.
func FormatInput(v View) string {
	return v.Time.Format(layoutInput)
}

// ParseInput parses a base-time entry ("2006-01-02T15:04") as wall-clock time
// in loc and returns the absolute instant in UTC.
func ParseInput(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(layoutInput, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse base time %q: %w", value, err)
	}
	return t.UTC(), nil
}
