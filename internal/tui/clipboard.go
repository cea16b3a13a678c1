package tui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// copiedFlagTTL is how long the copied confirmation stays visible.
const copiedFlagTTL = 2 * time.Second

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard is the Clipboard backed by the OS clipboard utilities.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

type copyResultMsg struct {
	err error
}

type copiedClearMsg struct {
	gen int
}

func writeClipboard(cb Clipboard, text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{err: cb.WriteAll(text)}
	}
}

func clearCopiedAfter(gen int) tea.Cmd {
	return tea.Tick(copiedFlagTTL, func(time.Time) tea.Msg {
		return copiedClearMsg{gen: gen}
	})
}
