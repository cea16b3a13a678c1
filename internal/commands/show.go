package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/hay-kot/tzc/internal/core/row"
	"github.com/hay-kot/tzc/internal/core/zone"
	"github.com/hay-kot/tzc/internal/workspace"
)

// zoneInfo is the JSON output format for one displayed zone.
type zoneInfo struct {
	Zone     zone.ID `json:"zone"`
	Label    string  `json:"label"`
	Local    bool    `json:"local,omitempty"`
	Offset   string  `json:"offset"`
	Time     string  `json:"time"`
	Display  string  `json:"display"`
	Class    string  `json:"class"`
	Selected bool    `json:"selected"`
	Error    string  `json:"error,omitempty"`
}

func buildZoneInfos(ws *workspace.Workspace) []zoneInfo {
	rows := ws.Rows()
	out := make([]zoneInfo, 0, len(rows))
	for _, r := range rows {
		info := zoneInfo{
			Zone:     r.ID,
			Label:    r.Label,
			Local:    r.Local,
			Offset:   r.Offset,
			Display:  r.Time,
			Selected: r.Selected,
		}
		if r.Err != nil {
			info.Error = r.Err.Error()
		} else {
			info.Time = r.View.Time.Format("2006-01-02T15:04:05Z07:00")
			info.Class = row.Classify(r.View.Hour).String()
		}
		out = append(out, info)
	}
	return out
}

// writeTable prints the comparison as an aligned text table.
func writeTable(w io.Writer, ws *workspace.Workspace) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "LABEL\tZONE\tOFFSET\tTIME\tDATE\t")

	for _, r := range ws.Rows() {
		label := r.Label
		if r.Local {
			label += " (local)"
		}
		if r.Err != nil {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t-\t-\t-\t\n", label, r.ID)
			continue
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			label, r.ID, r.Offset, r.Time, r.View.Time.Format("2006-01-02"))
	}

	return tw.Flush()
}

// markdownTable renders the comparison as a markdown document.
func markdownTable(ws *workspace.Workspace) string {
	var b strings.Builder

	if v, err := ws.Converter().ToZoned(ws.Instant(), ws.Local()); err == nil {
		fmt.Fprintf(&b, "## %s %s\n\n", zone.FormatFull(v), v.OffsetString())
	}

	b.WriteString("| Label | Zone | Offset | Time | Hours |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, r := range ws.Rows() {
		label := r.Label
		if r.Local {
			label = "**" + label + "**"
		}
		if r.Err != nil {
			fmt.Fprintf(&b, "| %s | `%s` | - | - | - |\n", label, r.ID)
			continue
		}
		fmt.Fprintf(&b, "| %s | `%s` | %s | %s | %s |\n", label, r.ID, r.Offset, r.Time, row.Classify(r.View.Hour))
	}
	return b.String()
}
