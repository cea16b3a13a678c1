// Package zone converts canonical instants into wall-clock views for IANA
// timezones. Zone rules come from Go's time package; time/tzdata is embedded
// so conversions do not depend on the host's zoneinfo files.
package zone

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/hay-kot/tzc/pkg/kv"
)

// ID names an IANA timezone region, e.g. "America/New_York".
type ID string

// UTC is the synthetic catalog entry for Coordinated Universal Time.
const UTC ID = "UTC"

// ErrUnknownZone is returned when an identifier cannot be resolved to zone rules.
var ErrUnknownZone = errors.New("unknown timezone")

// View is the wall-clock rendering of an instant under one zone's rules.
type View struct {
	ID            ID
	Time          time.Time // the instant expressed in the zone's location
	Hour          int
	Minute        int
	Weekday       time.Weekday
	OffsetSeconds int
}

// OffsetMinutes returns the signed UTC offset in minutes.
func (v View) OffsetMinutes() int {
	return v.OffsetSeconds / 60
}

// Instant reconstructs the absolute instant from the wall clock and the offset.
func (v View) Instant() time.Time {
	t := v.Time
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return wall.Add(-time.Duration(v.OffsetSeconds) * time.Second)
}

// Converter resolves zone identifiers and caches the loaded locations.
//
// In Strict mode an unknown identifier panics instead of returning an error.
// Identifiers only come from the catalog, so strict mode surfaces programming
// errors during development.
type Converter struct {
	Strict bool

	locations *kv.Store[ID, *time.Location]
}

// NewConverter creates a converter with an empty location cache.
func NewConverter(strict bool) *Converter {
	return &Converter{
		Strict:    strict,
		locations: kv.New[ID, *time.Location](),
	}
}

// Location returns the zone rules for id.
func (c *Converter) Location(id ID) (*time.Location, error) {
	loc, err := c.locations.GetOrCompute(id, load)
	if err != nil && c.Strict {
		panic(err)
	}
	return loc, err
}

// ToZoned converts instant into the wall clock of zone id.
func (c *Converter) ToZoned(instant time.Time, id ID) (View, error) {
	loc, err := c.Location(id)
	if err != nil {
		return View{}, err
	}

	zt := instant.In(loc)
	_, offset := zt.Zone()

	return View{
		ID:            id,
		Time:          zt,
		Hour:          zt.Hour(),
		Minute:        zt.Minute(),
		Weekday:       zt.Weekday(),
		OffsetSeconds: offset,
	}, nil
}

// Valid reports whether id names loadable zone rules.
func Valid(id ID) bool {
	_, err := load(id)
	return err == nil
}

func load(id ID) (*time.Location, error) {
	// time.LoadLocation maps "" to UTC and "Local" to the host zone; neither
	// is an IANA identifier.
	if id == "" || id == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, id)
	}

	loc, err := time.LoadLocation(string(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownZone, id, err)
	}
	return loc, nil
}

var defaultConverter = NewConverter(false)

// ToZoned converts instant into zone id using the shared non-strict converter.
func ToZoned(instant time.Time, id ID) (View, error) {
	return defaultConverter.ToZoned(instant, id)
}
