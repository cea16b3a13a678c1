package row

import (
	"time"

	"github.com/hay-kot/tzc/internal/core/zone"
)

// Row is everything needed to render one timezone row. Label is the custom
// label if set, otherwise the catalog label, and the raw identifier when the
// zone could not be resolved.
type Row struct {
	ID        zone.ID
	Label     string
	Custom    bool
	Local     bool
	Offset    string
	Time      string
	View      zone.View
	Strip     [Cells]Cell
	Shift     float64
	Selected  bool
	Removable bool
	Err       error
}

// Input describes a row to build.
type Input struct {
	ID           zone.ID
	Instant      time.Time
	DefaultLabel string
	CustomLabel  string
	Local        bool
	Selected     bool
}

// Build converts in.Instant to the row's zone and derives the presentation.
// A zone that cannot be resolved yields a row labelled with its raw
// identifier and Err set.
func Build(conv *zone.Converter, in Input) Row {
	r := Row{
		ID:        in.ID,
		Local:     in.Local,
		Selected:  in.Selected,
		Removable: !in.Local,
	}

	v, err := conv.ToZoned(in.Instant, in.ID)
	if err != nil {
		r.Label = string(in.ID)
		r.Err = err
		return r
	}

	switch {
	case in.CustomLabel != "":
		r.Label = in.CustomLabel
		r.Custom = true
	case in.DefaultLabel != "":
		r.Label = in.DefaultLabel
	default:
		r.Label = string(in.ID)
	}

	r.View = v
	r.Offset = v.OffsetString()
	r.Time = zone.FormatShort(v)
	r.Strip = Strip(v.Hour)
	r.Shift = BarOffsetPercent(v.Minute)
	return r
}
