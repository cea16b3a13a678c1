// Package row computes the presentation of one timezone row: its label, its
// offset, and the 25-cell hour strip centred on the zoned current hour.
package row

import "math"

const (
	// Cells is the number of hour cells in a strip.
	Cells = 25
	// Center is the index of the cell holding the zoned current hour.
	Center = 12
)

// Class is the visual classification of an hour cell.
type Class int

const (
	Plain Class = iota
	Night
	Work
)

func (c Class) String() string {
	switch c {
	case Night:
		return "night"
	case Work:
		return "work"
	default:
		return "plain"
	}
}

// Cell is one hour of the strip.
type Cell struct {
	Hour  int
	Class Class
}

// Classify returns the class of hour. Night wins over work.
func Classify(hour int) Class {
	switch {
	case hour < 6 || hour >= 22:
		return Night
	case hour >= 9 && hour < 18:
		return Work
	default:
		return Plain
	}
}

// Strip returns the hours around hour: cell 12 is hour itself and the cells
// wrap modulo 24 in both directions.
func Strip(hour int) [Cells]Cell {
	var s [Cells]Cell
	for i := range s {
		h := ((hour+i-Center)%24 + 24) % 24
		s[i] = Cell{Hour: h, Class: Classify(h)}
	}
	return s
}

// BarOffsetPercent is the horizontal shift of the strip, as a percentage of
// its width, that puts the centre line at minute within cell 12.
func BarOffsetPercent(minute int) float64 {
	return float64(minute) / 60 / Cells * 100
}

// BarOffsetColumns is BarOffsetPercent for a terminal strip whose cells are
// cellWidth columns wide.
func BarOffsetColumns(minute, cellWidth int) int {
	return int(math.Round(float64(minute) / 60 * float64(cellWidth)))
}
