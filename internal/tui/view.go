package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/hay-kot/tzc/internal/core/row"
	"github.com/hay-kot/tzc/internal/core/styles"
	"github.com/hay-kot/tzc/internal/core/zone"
)

func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	lines := []string{
		m.titleView(),
		m.inputView(),
		styles.DividerStyle.Render(strings.Repeat("─", width)),
	}
	if m.picker.Open() {
		lines = append(lines, m.picker.DropdownView(width))
	}

	cw := cellWidth(m.width)
	for i, r := range m.ws.Rows() {
		lines = append(lines, m.infoLine(i, r), renderStrip(r, cw))
	}

	lines = append(lines, "", m.helpView())
	return strings.Join(lines, "\n")
}

func (m Model) titleView() string {
	parts := []string{styles.TitleStyle.Render("tzc")}

	v, err := m.ws.Converter().ToZoned(m.ws.Instant(), m.ws.Local())
	if err == nil {
		parts = append(parts,
			styles.TimeStyle.Render(zone.FormatFull(v)),
			styles.OffsetStyle.Render(string(m.ws.Local())+" "+v.OffsetString()),
		)
	}

	parts = append(parts, styles.MutedStyle.Render(fmt.Sprintf("%d selected", m.ws.SelectedCount())))
	if m.copied {
		parts = append(parts, styles.CopiedStyle.Render(styles.IconCopied+" copied"))
	}
	return strings.Join(parts, "  ")
}

func (m Model) inputView() string {
	switch {
	case m.state == stateSettingTime:
		return styles.InputFocusedStyle.Render(m.timeInput.View())
	case m.state == statePicking, m.picker.Open():
		return m.picker.InputView()
	}
	return styles.InputStyle.Render(styles.MutedStyle.Render("/ add timezone · t set time · ? help"))
}

func (m Model) helpView() string {
	switch m.state {
	case stateEditing:
		return styles.HelpStyle.Render("enter save · esc cancel · empty resets the label")
	case statePicking:
		return styles.HelpStyle.Render("enter add · ↑/↓ select · esc close")
	case stateSettingTime:
		return styles.HelpStyle.Render("enter apply · esc cancel")
	}
	return m.help.View(m.keys)
}

func (m Model) infoLine(i int, r row.Row) string {
	var b strings.Builder

	b.WriteString(m.handleView(i, r))
	b.WriteString(" ")

	if r.Selected {
		b.WriteString(styles.CheckedStyle.Render(styles.IconChecked))
	} else {
		b.WriteString(styles.UncheckedStyle.Render(styles.IconUnchecked))
	}
	b.WriteString(" ")

	b.WriteString(m.labelView(r))
	b.WriteString(" ")

	if r.Local {
		b.WriteString(styles.LocalBadgeStyle.Render(styles.IconLocal))
	} else {
		b.WriteString(strings.Repeat(" ", badgeWidth))
	}
	b.WriteString(" ")

	b.WriteString(styles.OffsetStyle.Render(fit(r.Offset, offsetWidth)))
	b.WriteString("  ")
	b.WriteString(styles.TimeStyle.Render(fit(r.Time, timeWidth)))
	b.WriteString("  ")

	if r.Removable {
		b.WriteString(styles.MutedStyle.Render(styles.IconRemove))
	}
	return b.String()
}

func (m Model) handleView(i int, r row.Row) string {
	if r.Local {
		if i == m.cursor {
			return styles.CursorStyle.Render(fit("▸", handleWidth))
		}
		return strings.Repeat(" ", handleWidth)
	}

	style := styles.HandleStyle
	candidate, hasCandidate := m.reorder.Candidate()
	switch {
	case m.reorder.Active() && m.reorder.From() == i:
		style = styles.HandleDragStyle
	case m.reorder.Active() && hasCandidate && candidate == i:
		style = styles.DropTargetStyle
	case i == m.cursor:
		style = styles.CursorStyle
	}
	return style.Render(styles.IconHandle)
}

func (m Model) labelView(r row.Row) string {
	if m.state == stateEditing && m.editID == r.ID {
		in := m.labelInput
		in.Width = labelWidth - 1
		return fit(in.View(), labelWidth)
	}

	style := styles.LabelStyle
	switch {
	case r.Err != nil:
		style = styles.LabelErrorStyle
	case r.Custom:
		style = styles.LabelCustomStyle
	}
	return style.Render(fit(r.Label, labelWidth))
}

// fit truncates or pads s to exactly w columns.
func fit(s string, w int) string {
	s = ansi.Truncate(s, w, "…")
	if pad := w - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// renderStrip draws the hour cells of r, shifted left by the zoned minute so
// the fixed centre line marks the exact time within the centre cell.
func renderStrip(r row.Row, cw int) string {
	if r.Err != nil {
		return styles.LabelErrorStyle.Render(fit("unknown timezone "+string(r.ID), cw*row.Cells))
	}

	cells := make([]row.Cell, 0, row.Cells+1)
	cells = append(cells, r.Strip[:]...)
	next := (r.Strip[row.Cells-1].Hour + 1) % 24
	cells = append(cells, row.Cell{Hour: next, Class: row.Classify(next)})

	type column struct {
		r      rune
		class  row.Class
		center bool
	}
	cols := make([]column, 0, len(cells)*cw)
	for _, c := range cells {
		for _, ch := range fmt.Sprintf("%*d ", cw-1, c.Hour) {
			cols = append(cols, column{r: ch, class: c.Class})
		}
	}

	shift := row.BarOffsetColumns(r.View.Minute, cw)
	visible := cols[shift : shift+row.Cells*cw]
	centre := row.Center * cw
	visible[centre].r = []rune(styles.IconCenter)[0]
	visible[centre].center = true

	var b strings.Builder
	for start := 0; start < len(visible); {
		end := start + 1
		for end < len(visible) &&
			visible[end].class == visible[start].class &&
			visible[end].center == visible[start].center {
			end++
		}

		var run strings.Builder
		for _, c := range visible[start:end] {
			run.WriteRune(c.r)
		}
		b.WriteString(cellStyle(visible[start].class, visible[start].center).Render(run.String()))
		start = end
	}
	return b.String()
}

func cellStyle(c row.Class, center bool) lipgloss.Style {
	var s lipgloss.Style
	switch c {
	case row.Night:
		s = styles.CellNightStyle
	case row.Work:
		s = styles.CellWorkStyle
	default:
		s = styles.CellPlainStyle
	}
	if center {
		s = s.Foreground(styles.CenterStyle.GetForeground()).Bold(true)
	}
	return s
}
