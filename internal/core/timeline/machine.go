// Package timeline turns drag gestures over the timeline area into changes of
// the shared instant, and drag-and-drop gestures over rows into reorders.
package timeline

import (
	"math"
	"time"
)

const (
	// MinutesPerWidth maps one full timeline width to one day.
	MinutesPerWidth = 1440
	// SwipeThreshold is the displacement a touch must exceed before its
	// direction is classified.
	SwipeThreshold = 10
)

// State is the gesture state of the machine.
type State int

const (
	Idle State = iota
	Dragging
	SwipeUndetermined
	SwipeHorizontal
	SwipeVertical
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case SwipeUndetermined:
		return "swipe-undetermined"
	case SwipeHorizontal:
		return "swipe-horizontal"
	case SwipeVertical:
		return "swipe-vertical"
	default:
		return "unknown"
	}
}

// EventKind identifies an input event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	TouchStart
	TouchMove
	TouchEnd
	Resize
)

// Event is one input event. Touches is the number of simultaneous touch
// points for touch events; Width is the measured timeline width for Resize.
type Event struct {
	Kind    EventKind
	X, Y    float64
	Touches int
	Width   float64
}

// Session is the drag session captured at gesture start.
type Session struct {
	OriginX float64
	OriginY float64
	Start   time.Time
}

// Output describes the effect of one transition.
type Output struct {
	// Instant is the snapped instant to publish when Changed is set.
	Instant time.Time
	Changed bool
	// PreventScroll asks the host to suppress native scrolling for this event.
	PreventScroll bool
	// Redraw asks the host to re-measure and re-render.
	Redraw bool
}

// Machine is the drag state machine. It is a value: Next returns the
// successor and never mutates the receiver.
type Machine struct {
	State   State
	Session Session
	Width   float64
	Snap    time.Duration
}

// NewMachine returns an idle machine for a timeline of the given width.
func NewMachine(width float64, snap time.Duration) Machine {
	return Machine{State: Idle, Width: width, Snap: snap}
}

// MinutesPerUnit is the time one unit of horizontal movement represents.
// An unmeasured (zero) width counts one minute per unit.
func (m Machine) MinutesPerUnit() float64 {
	if m.Width <= 0 {
		return 1
	}
	return MinutesPerWidth / m.Width
}

// Next applies ev. current is the canonical instant at the time of the event;
// it is captured as the session start on gesture begin.
func (m Machine) Next(ev Event, current time.Time) (Machine, Output) {
	switch ev.Kind {
	case Resize:
		m.Width = ev.Width
		return m, Output{Redraw: true}

	case PointerDown:
		if m.State != Idle && m.State != Dragging {
			return m, Output{}
		}
		m.State = Dragging
		m.Session = Session{OriginX: ev.X, OriginY: ev.Y, Start: current}
		return m, Output{}

	case PointerMove:
		if m.State != Dragging {
			return m, Output{}
		}
		return m, m.drag(ev.X)

	case PointerUp:
		if m.State != Dragging {
			return m, Output{}
		}
		return m.reset(), Output{}

	case TouchStart:
		if ev.Touches != 1 || m.State != Idle {
			return m, Output{}
		}
		m.State = SwipeUndetermined
		m.Session = Session{OriginX: ev.X, OriginY: ev.Y, Start: current}
		return m, Output{}

	case TouchMove:
		if ev.Touches != 1 {
			return m, Output{}
		}
		return m.touchMove(ev)

	case TouchEnd:
		switch m.State {
		case SwipeUndetermined, SwipeHorizontal, SwipeVertical:
			return m.reset(), Output{}
		}
		return m, Output{}
	}

	return m, Output{}
}

func (m Machine) touchMove(ev Event) (Machine, Output) {
	switch m.State {
	case SwipeUndetermined:
		dx := ev.X - m.Session.OriginX
		dy := ev.Y - m.Session.OriginY
		if math.Abs(dx) <= SwipeThreshold && math.Abs(dy) <= SwipeThreshold {
			return m, Output{}
		}
		if math.Abs(dx) <= math.Abs(dy) {
			m.State = SwipeVertical
			return m, Output{}
		}
		m.State = SwipeHorizontal
		out := m.drag(ev.X)
		out.PreventScroll = true
		return m, out

	case SwipeHorizontal:
		out := m.drag(ev.X)
		out.PreventScroll = true
		return m, out
	}

	return m, Output{}
}

func (m Machine) drag(x float64) Output {
	deltaX := x - m.Session.OriginX
	deltaMinutes := -deltaX * m.MinutesPerUnit()
	moved := m.Session.Start.Add(time.Duration(deltaMinutes * float64(time.Minute)))
	return Output{Instant: Snap(moved, m.Snap), Changed: true}
}

func (m Machine) reset() Machine {
	m.State = Idle
	m.Session = Session{}
	return m
}
