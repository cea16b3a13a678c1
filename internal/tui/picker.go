package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/hay-kot/tzc/internal/core/catalog"
	"github.com/hay-kot/tzc/internal/core/styles"
	"github.com/hay-kot/tzc/internal/core/zone"
)

// pickerCloseDelay keeps the dropdown open briefly after the input loses
// focus so a click on a result still lands.
const pickerCloseDelay = 200 * time.Millisecond

type pickerCloseMsg struct {
	gen int
}

// Picker is the timezone search input and its dropdown.
type Picker struct {
	input   textinput.Model
	open    bool
	focused bool
	gen     int
	result  catalog.Result
	cursor  int
}

func newPicker() Picker {
	ti := textinput.New()
	ti.Prompt = "+ "
	ti.Placeholder = "add timezone"
	ti.CharLimit = 64
	return Picker{input: ti}
}

// Focus opens the dropdown and cancels a pending close.
func (p Picker) Focus() (Picker, tea.Cmd) {
	p.gen++
	p.open = true
	p.focused = true
	cmd := p.input.Focus()
	return p, cmd
}

// Blur schedules the dropdown to close after pickerCloseDelay.
func (p Picker) Blur() (Picker, tea.Cmd) {
	if !p.focused {
		return p, nil
	}
	p.gen++
	p.focused = false
	p.input.Blur()

	gen := p.gen
	return p, tea.Tick(pickerCloseDelay, func(time.Time) tea.Msg {
		return pickerCloseMsg{gen: gen}
	})
}

// Close handles a scheduled close. Stale closes and closes that were
// overtaken by a new focus are ignored.
func (p Picker) Close(msg pickerCloseMsg) Picker {
	if msg.gen != p.gen || p.focused {
		return p
	}
	p.open = false
	p.cursor = 0
	p.input.Reset()
	return p
}

// Refresh re-runs the search for the current query.
func (p Picker) Refresh(c *catalog.Catalog, selected []zone.ID) Picker {
	p.result = c.Search(p.input.Value(), selected)
	if p.cursor >= len(p.result.Entries) {
		p.cursor = max(len(p.result.Entries)-1, 0)
	}
	return p
}

// Clear empties the query after a zone was added.
func (p Picker) Clear() Picker {
	p.input.Reset()
	p.cursor = 0
	return p
}

func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	prev := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != prev {
		p.cursor = 0
	}
	return p, cmd
}

func (p Picker) Next() Picker {
	if p.cursor < len(p.result.Entries)-1 {
		p.cursor++
	}
	return p
}

func (p Picker) Prev() Picker {
	if p.cursor > 0 {
		p.cursor--
	}
	return p
}

// Highlighted returns the entry under the cursor.
func (p Picker) Highlighted() (catalog.Entry, bool) {
	if p.cursor < 0 || p.cursor >= len(p.result.Entries) {
		return catalog.Entry{}, false
	}
	return p.result.Entries[p.cursor], true
}

// Entry returns the i-th visible entry.
func (p Picker) Entry(i int) (catalog.Entry, bool) {
	if i < 0 || i >= len(p.result.Entries) {
		return catalog.Entry{}, false
	}
	return p.result.Entries[i], true
}

func (p Picker) Open() bool    { return p.open }
func (p Picker) Focused() bool { return p.focused }
func (p Picker) Query() string { return p.input.Value() }

// lines returns the number of content lines of the dropdown.
func (p Picker) lines() int {
	n := len(p.result.Entries)
	if n == 0 || p.result.More > 0 {
		n++
	}
	return n
}

// Height is the rendered height of the dropdown including its border.
func (p Picker) Height() int {
	if !p.open {
		return 0
	}
	return p.lines() + 2
}

// InputView renders the search input.
func (p Picker) InputView() string {
	if p.focused {
		return styles.InputFocusedStyle.Render(p.input.View())
	}
	return styles.InputStyle.Render(p.input.View())
}

// DropdownView renders the result list, or "" when closed.
func (p Picker) DropdownView(width int) string {
	if !p.open {
		return ""
	}

	inner := width - 4
	lines := make([]string, 0, p.lines())
	for i, e := range p.result.Entries {
		text := fmt.Sprintf("%-20s %s", e.Label, e.ID)
		if inner > 0 {
			text = ansi.Truncate(text, inner, "…")
		}
		if i == p.cursor {
			lines = append(lines, styles.PickerSelectedStyle.Render(text))
		} else {
			lines = append(lines, styles.PickerItemStyle.Render(text))
		}
	}

	switch {
	case len(p.result.Entries) == 0:
		lines = append(lines, styles.PickerMoreStyle.Render("no matching timezones"))
	case p.result.More > 0:
		lines = append(lines, styles.PickerMoreStyle.Render(fmt.Sprintf("… %d more of %d", p.result.More, p.result.Total())))
	}

	return styles.PickerStyle.Render(strings.Join(lines, "\n"))
}
