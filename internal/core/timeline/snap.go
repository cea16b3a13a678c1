package timeline

import (
	"math"
	"time"
)

// DefaultSnap is the grid every drag result is rounded to.
const DefaultSnap = 15 * time.Minute

// Snap rounds t to the nearest interval boundary. Only the minute field takes
// part in the rounding; seconds and sub-seconds are dropped and a result of 60
// minutes carries into the next hour. The grid is anchored to UTC.
func Snap(t time.Time, interval time.Duration) time.Time {
	step := int(interval / time.Minute)
	if step <= 0 {
		return t
	}

	u := t.UTC()
	snapped := int(math.Round(float64(u.Minute())/float64(step))) * step
	hour := time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), 0, 0, 0, time.UTC)
	return hour.Add(time.Duration(snapped) * time.Minute)
}
