package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hay-kot/tzc/internal/core/catalog"
	"github.com/hay-kot/tzc/internal/core/timeline"
	"github.com/hay-kot/tzc/internal/core/zone"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	switch m.state {
	case statePicking:
		return m.handlePickerKey(msg)
	case stateEditing:
		return m.handleEditKey(msg)
	case stateSettingTime:
		return m.handleTimeKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Earlier):
		m.step(-m.opts.Snap)
	case key.Matches(msg, m.keys.Later):
		m.step(m.opts.Snap)
	case key.Matches(msg, m.keys.HourEarlier):
		m.step(-time.Hour)
	case key.Matches(msg, m.keys.HourLater):
		m.step(time.Hour)
	case key.Matches(msg, m.keys.Now):
		m.ws.ResetNow(m.ctx)
	case key.Matches(msg, m.keys.SetTime):
		return m.openTimeInput()
	case key.Matches(msg, m.keys.Add):
		return m.openPicker()
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		m.clampCursor()
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()
	case key.Matches(msg, m.keys.MoveUp):
		if m.cursor > 1 {
			m.ws.Reorder(m.ctx, m.cursor, m.cursor-1)
			m.cursor--
		}
	case key.Matches(msg, m.keys.MoveDown):
		if m.cursor > 0 && m.cursor < len(m.ws.Zones())-1 {
			m.ws.Reorder(m.ctx, m.cursor, m.cursor+1)
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.ws.ToggleCopy(m.cursorZone())
	case key.Matches(msg, m.keys.Edit):
		return m.startEdit(m.cursorZone())
	case key.Matches(msg, m.keys.Remove):
		m.ws.Remove(m.ctx, m.cursorZone())
		m.clampCursor()
	case key.Matches(msg, m.keys.Copy):
		return m, m.copy()
	}
	return m, nil
}

func (m Model) openPicker() (tea.Model, tea.Cmd) {
	m.state = statePicking
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Focus()
	m.picker = m.picker.Refresh(m.ws.Catalog(), m.ws.Zones())
	return m, cmd
}

func (m Model) blurPicker() (Model, tea.Cmd) {
	m.state = stateNormal
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Blur()
	return m, cmd
}

func (m Model) addZone(e catalog.Entry) Model {
	if err := m.ws.Add(m.ctx, e.ID); err != nil {
		m.log.Warn().Err(err).Msg("cannot add zone")
	}
	m.picker = m.picker.Clear().Refresh(m.ws.Catalog(), m.ws.Zones())
	return m
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.inputKeys.Cancel):
		return m.blurPicker()
	case key.Matches(msg, m.inputKeys.Accept):
		if e, ok := m.picker.Highlighted(); ok {
			m = m.addZone(e)
		}
		return m, nil
	case key.Matches(msg, m.inputKeys.Next):
		m.picker = m.picker.Next()
		return m, nil
	case key.Matches(msg, m.inputKeys.Prev):
		m.picker = m.picker.Prev()
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	m.picker = m.picker.Refresh(m.ws.Catalog(), m.ws.Zones())
	return m, cmd
}

func (m Model) startEdit(id zone.ID) (tea.Model, tea.Cmd) {
	m.state = stateEditing
	m.editID = id
	m.editor = m.editor.Start(m.ws.CustomLabel(id))
	m.labelInput.SetValue(m.editor.Buffer())
	m.labelInput.Placeholder = m.ws.Label(id)
	m.labelInput.CursorEnd()
	cmd := m.labelInput.Focus()
	return m, cmd
}

// commitEdit stores the edited label. It runs on enter and whenever the input
// loses focus.
func (m Model) commitEdit() Model {
	next, label, ok := m.editor.Input(m.labelInput.Value()).Commit()
	m.editor = next
	if ok {
		m.ws.SetLabel(m.ctx, m.editID, label)
	}
	return m.leaveEdit()
}

func (m Model) leaveEdit() Model {
	m.state = stateNormal
	m.editID = ""
	m.labelInput.Blur()
	m.labelInput.Reset()
	return m
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.inputKeys.Accept):
		return m.commitEdit(), nil
	case key.Matches(msg, m.inputKeys.Cancel):
		m.editor = m.editor.Cancel()
		return m.leaveEdit(), nil
	}

	var cmd tea.Cmd
	m.labelInput, cmd = m.labelInput.Update(msg)
	m.editor = m.editor.Input(m.labelInput.Value())
	return m, cmd
}

func (m Model) openTimeInput() (tea.Model, tea.Cmd) {
	m.state = stateSettingTime
	m.timeInput.SetValue(m.ws.InstantInput())
	m.timeInput.CursorEnd()
	cmd := m.timeInput.Focus()
	return m, cmd
}

func (m Model) handleTimeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.inputKeys.Accept):
		m.ws.SetInstantInput(m.ctx, m.timeInput.Value())
		fallthrough
	case key.Matches(msg, m.inputKeys.Cancel):
		m.state = stateNormal
		m.timeInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.timeInput, cmd = m.timeInput.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.handlePress(msg.X, msg.Y)

	case tea.MouseActionMotion:
		if m.reorder.Active() {
			if idx, _, ok := m.rowAt(msg.Y); ok {
				m.reorder = m.reorder.Over(idx)
			} else {
				m.reorder = m.reorder.Leave()
			}
			return m, nil
		}
		m.source.Dispatch(timeline.Event{Kind: timeline.PointerMove, X: float64(msg.X), Y: float64(msg.Y)})

	case tea.MouseActionRelease:
		if m.reorder.Active() {
			idx, _, ok := m.rowAt(msg.Y)
			if !ok {
				m.reorder = m.reorder.Cancel()
				return m, nil
			}
			next, move, ok := m.reorder.Drop(idx)
			m.reorder = next
			if ok {
				m.ws.Reorder(m.ctx, move.From, move.To)
				m.cursor = move.To
			}
			return m, nil
		}
		m.source.Dispatch(timeline.Event{Kind: timeline.PointerUp, X: float64(msg.X), Y: float64(msg.Y)})
	}
	return m, nil
}

func (m Model) handlePress(x, y int) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.picker.Open() {
		if e, ok := m.picker.Entry(m.pickerItemAt(y)); ok {
			m = m.addZone(e)
			if !m.picker.Focused() {
				var cmd tea.Cmd
				m.state = statePicking
				m.picker, cmd = m.picker.Focus()
				cmds = append(cmds, cmd)
			}
			return m, tea.Batch(cmds...)
		}
	}

	if y == inputLine {
		if m.state == stateEditing {
			m = m.commitEdit()
		}
		if m.state != statePicking {
			return m.openPicker()
		}
		return m, nil
	}

	switch m.state {
	case statePicking:
		var cmd tea.Cmd
		m, cmd = m.blurPicker()
		cmds = append(cmds, cmd)
	case stateSettingTime:
		m.state = stateNormal
		m.timeInput.Blur()
	}

	idx, onStrip, ok := m.rowAt(y)
	if m.state == stateEditing && (!ok || idx != m.indexOf(m.editID) || onStrip || !inLabel(x)) {
		m = m.commitEdit()
	}
	if !ok {
		return m, tea.Batch(cmds...)
	}

	m.cursor = idx
	id := m.ws.Zones()[idx]

	if onStrip {
		m.source.Dispatch(timeline.Event{Kind: timeline.PointerDown, X: float64(x), Y: float64(y)})
		return m, tea.Batch(cmds...)
	}

	switch {
	case inHandle(x):
		m.reorder = m.reorder.Start(idx)
	case inCheckbox(x):
		m.ws.ToggleCopy(id)
	case inLabel(x):
		if m.state != stateEditing {
			model, cmd := m.startEdit(id)
			return model, tea.Batch(append(cmds, cmd)...)
		}
	case inRemove(x):
		m.ws.Remove(m.ctx, id)
		m.clampCursor()
	}
	return m, tea.Batch(cmds...)
}

func (m Model) indexOf(id zone.ID) int {
	for i, z := range m.ws.Zones() {
		if z == id {
			return i
		}
	}
	return -1
}
