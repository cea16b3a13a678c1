package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hay-kot/tzc/internal/store/filewatch"
)

// prefsChangedMsg reports that the store file was written, possibly by
// another tzc process.
type prefsChangedMsg struct {
	event filewatch.Event
}

func waitForChange(ch <-chan filewatch.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return prefsChangedMsg{event: ev}
	}
}
