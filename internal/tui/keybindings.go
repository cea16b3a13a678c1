package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings of the timeline view.
type KeyMap struct {
	Earlier     key.Binding
	Later       key.Binding
	HourEarlier key.Binding
	HourLater   key.Binding
	Now         key.Binding
	SetTime     key.Binding
	Add         key.Binding
	Up          key.Binding
	Down        key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	Toggle      key.Binding
	Edit        key.Binding
	Remove      key.Binding
	Copy        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Earlier: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "earlier"),
		),
		Later: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "later"),
		),
		HourEarlier: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "-1h"),
		),
		HourLater: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "+1h"),
		),
		Now: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "now"),
		),
		SetTime: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "set time"),
		),
		Add: key.NewBinding(
			key.WithKeys("/", "a"),
			key.WithHelp("/", "add zone"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle copy"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit label"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c", "y"),
			key.WithHelp("c", "copy"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Earlier, k.Later, k.Add, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Earlier, k.Later, k.HourEarlier, k.HourLater, k.Now, k.SetTime},
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Add, k.Toggle, k.Edit, k.Remove, k.Copy},
		{k.Help, k.Quit},
	}
}

// inputKeys are the bindings shared by every text input.
type inputKeys struct {
	Accept key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
}

func defaultInputKeys() inputKeys {
	return inputKeys{
		Accept: key.NewBinding(key.WithKeys("enter")),
		Cancel: key.NewBinding(key.WithKeys("esc")),
		Next:   key.NewBinding(key.WithKeys("down", "tab", "ctrl+n")),
		Prev:   key.NewBinding(key.WithKeys("up", "shift+tab", "ctrl+p")),
	}
}
