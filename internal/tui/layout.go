package tui

import "github.com/hay-kot/tzc/internal/core/row"

// Screen layout, top to bottom: title line, input line, divider, the picker
// dropdown when open, then two lines per zone (info line and hour strip).
const (
	inputLine   = 1
	headerLines = 3
	linesPerRow = 2

	defaultWidth = 80
	minCellWidth = 3
)

// Info line columns.
const (
	handleWidth = 2
	colCheck    = 3
	checkWidth  = 3
	colLabel    = 7
	labelWidth  = 20
	badgeWidth  = 3
	offsetWidth = 9
	timeWidth   = 9
	colRemove   = colLabel + labelWidth + 1 + badgeWidth + 1 + offsetWidth + 2 + timeWidth + 2
)

func inHandle(x int) bool   { return x >= 0 && x < handleWidth }
func inCheckbox(x int) bool { return x >= colCheck && x < colCheck+checkWidth }
func inLabel(x int) bool    { return x >= colLabel && x < colLabel+labelWidth }
func inRemove(x int) bool   { return x == colRemove }

// cellWidth is the number of columns per hour cell for a terminal width.
func cellWidth(width int) int {
	if width <= 0 {
		width = defaultWidth
	}
	return max(width/row.Cells, minCellWidth)
}

// stripWidth is the visible width of an hour strip, which is also the
// timeline width the drag machine maps onto one day.
func stripWidth(width int) int {
	return cellWidth(width) * row.Cells
}

func (m Model) rowsTop() int {
	return headerLines + m.picker.Height()
}

// rowAt maps a screen line to a display index and reports whether the line
// is the row's strip.
func (m Model) rowAt(y int) (idx int, strip bool, ok bool) {
	rel := y - m.rowsTop()
	if rel < 0 {
		return 0, false, false
	}
	idx = rel / linesPerRow
	if idx >= len(m.ws.Zones()) {
		return 0, false, false
	}
	return idx, rel%linesPerRow == 1, true
}

// pickerItemAt maps a screen line to a dropdown entry index, or -1.
func (m Model) pickerItemAt(y int) int {
	if !m.picker.Open() {
		return -1
	}
	// the dropdown's top border sits on the first line after the header
	return y - headerLines - 1
}
