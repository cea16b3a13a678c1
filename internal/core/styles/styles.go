// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import "github.com/charmbracelet/lipgloss"

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
	MutedStyle         lipgloss.Style

	// Timeline rows.
	TitleStyle       lipgloss.Style
	LabelStyle       lipgloss.Style
	LabelCustomStyle lipgloss.Style
	LabelErrorStyle  lipgloss.Style
	LocalBadgeStyle  lipgloss.Style
	OffsetStyle      lipgloss.Style
	TimeStyle        lipgloss.Style
	CursorStyle      lipgloss.Style
	HandleStyle      lipgloss.Style
	HandleDragStyle  lipgloss.Style
	DropTargetStyle  lipgloss.Style
	CheckedStyle     lipgloss.Style
	UncheckedStyle   lipgloss.Style

	// Hour strip cells.
	CellNightStyle lipgloss.Style
	CellWorkStyle  lipgloss.Style
	CellPlainStyle lipgloss.Style
	CenterStyle    lipgloss.Style

	// Picker and inputs.
	PickerStyle         lipgloss.Style
	PickerItemStyle     lipgloss.Style
	PickerSelectedStyle lipgloss.Style
	PickerMoreStyle     lipgloss.Style
	InputStyle          lipgloss.Style
	InputFocusedStyle   lipgloss.Style

	// Status line.
	HelpStyle   lipgloss.Style
	CopiedStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	MutedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	LabelStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	LabelCustomStyle = LabelStyle.
		Foreground(ColorSecondary)
	LabelErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	LocalBadgeStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Padding(0, 1)
	OffsetStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	TimeStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	CursorStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	HandleStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	HandleDragStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)
	DropTargetStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)
	CheckedStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	UncheckedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	CellNightStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Background(p.Night)
	CellWorkStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(p.Work)
	CellPlainStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(ColorSurface)
	CenterStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	PickerStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)
	PickerItemStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	PickerSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary)
	PickerMoreStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
	InputStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorMuted).
		PaddingLeft(1)
	InputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)

	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	CopiedStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	p, _ := GetPalette(DefaultTheme)
	SetTheme(p)
}
