package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// FormTheme returns a huh theme using the active palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(ColorMuted)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(ColorSecondary).SetString("> ")
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(ColorSuccess)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(ColorSecondary)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(ColorPrimary)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderForeground(ColorMuted)
	return t
}
