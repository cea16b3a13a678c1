// Package tui implements the interactive timeline: one row per timezone with
// a draggable hour strip, a search picker to add zones, inline label editing
// and copy to clipboard.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hay-kot/tzc/internal/core/row"
	"github.com/hay-kot/tzc/internal/core/timeline"
	"github.com/hay-kot/tzc/internal/core/zone"
	"github.com/hay-kot/tzc/internal/store/filewatch"
	"github.com/hay-kot/tzc/internal/workspace"
	"github.com/rs/zerolog"
)

// UIState is the input mode of the model.
type UIState int

const (
	stateNormal UIState = iota
	stateEditing
	statePicking
	stateSettingTime
)

// Options configures the model.
type Options struct {
	// Snap is the drag and step interval. Zero uses timeline.DefaultSnap.
	Snap      time.Duration
	Clipboard Clipboard
	// Watch delivers store file changes; nil disables live reload.
	Watch  <-chan filewatch.Event
	Logger zerolog.Logger
}

// Model is the bubbletea model of the timeline view.
type Model struct {
	ctx  context.Context
	ws   *workspace.Workspace
	opts Options
	log  zerolog.Logger

	keys      KeyMap
	inputKeys inputKeys
	help      help.Model

	width  int
	height int
	state  UIState
	cursor int

	picker     Picker
	editor     row.Editor
	editID     zone.ID
	labelInput textinput.Model
	timeInput  textinput.Model

	source  *timeline.Dispatcher
	engine  *timeline.Engine
	reorder timeline.Reorder

	copied  bool
	copyGen int
}

// New creates the model and activates the timeline engine on the model's
// input source. Call Close when the program exits.
func New(ctx context.Context, ws *workspace.Workspace, opts Options) Model {
	if opts.Snap <= 0 {
		opts.Snap = timeline.DefaultSnap
	}
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard{}
	}

	labelInput := textinput.New()
	labelInput.Prompt = ""
	labelInput.CharLimit = 48

	timeInput := textinput.New()
	timeInput.Prompt = "@ "
	timeInput.Placeholder = "2006-01-02T15:04"
	timeInput.CharLimit = 16

	m := Model{
		ctx:        ctx,
		ws:         ws,
		opts:       opts,
		log:        opts.Logger,
		keys:       DefaultKeyMap(),
		inputKeys:  defaultInputKeys(),
		help:       help.New(),
		picker:     newPicker(),
		labelInput: labelInput,
		timeInput:  timeInput,
		source:     &timeline.Dispatcher{},
	}

	m.engine = timeline.NewEngine(timeline.Options{
		Width:   float64(stripWidth(0)),
		Snap:    opts.Snap,
		Instant: ws.Instant,
		Publish: func(t time.Time) { ws.SetInstant(ctx, t) },
		Logger:  opts.Logger,
	})
	m.engine.Activate(m.source)

	return m
}

// Close releases the engine's input subscription.
func (m Model) Close() {
	m.engine.Close()
}

// Workspace returns the hosted workspace.
func (m Model) Workspace() *workspace.Workspace {
	return m.ws
}

func (m Model) Init() tea.Cmd {
	return waitForChange(m.opts.Watch)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.source.Dispatch(timeline.Event{Kind: timeline.Resize, Width: float64(stripWidth(msg.Width))})
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case pickerCloseMsg:
		m.picker = m.picker.Close(msg)
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("clipboard write failed")
			return m, nil
		}
		m.copied = true
		m.copyGen++
		return m, clearCopiedAfter(m.copyGen)

	case copiedClearMsg:
		if msg.gen == m.copyGen {
			m.copied = false
		}
		return m, nil

	case prefsChangedMsg:
		if m.ws.Reload(m.ctx) {
			m.log.Debug().Str("file", msg.event.Name).Msg("reloaded preferences")
			m.clampCursor()
			if m.picker.Open() {
				m.picker = m.picker.Refresh(m.ws.Catalog(), m.ws.Zones())
			}
		}
		return m, waitForChange(m.opts.Watch)
	}

	return m.updateFocusedInput(msg)
}

// updateFocusedInput forwards messages such as cursor blinks to the input
// that currently has focus.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case statePicking:
		m.picker, cmd = m.picker.Update(msg)
	case stateEditing:
		m.labelInput, cmd = m.labelInput.Update(msg)
	case stateSettingTime:
		m.timeInput, cmd = m.timeInput.Update(msg)
	}
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.engine.Close()
	return m, tea.Quit
}

func (m *Model) clampCursor() {
	n := len(m.ws.Zones())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) cursorZone() zone.ID {
	zones := m.ws.Zones()
	if m.cursor < 0 || m.cursor >= len(zones) {
		return zones[0]
	}
	return zones[m.cursor]
}

// step moves the instant by d and snaps the result.
func (m Model) step(d time.Duration) {
	m.ws.SetInstant(m.ctx, timeline.Snap(m.ws.Instant().Add(d), m.opts.Snap))
}

func (m Model) copy() tea.Cmd {
	if m.ws.SelectedCount() == 0 {
		return nil
	}
	return writeClipboard(m.opts.Clipboard, m.ws.CopyText())
}

// State returns the current input mode.
func (m Model) State() UIState {
	return m.state
}

// Cursor returns the display index of the highlighted row.
func (m Model) Cursor() int {
	return m.cursor
}

// Copied reports whether the copied confirmation is visible.
func (m Model) Copied() bool {
	return m.copied
}

// Gesture returns the state of the timeline drag machine.
func (m Model) Gesture() timeline.State {
	return m.engine.State()
}
