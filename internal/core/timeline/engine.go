package timeline

import (
	"time"

	"github.com/rs/zerolog"
)

// Options configures an Engine.
type Options struct {
	Width float64
	Snap  time.Duration
	// Instant returns the current canonical instant.
	Instant func() time.Time
	// Publish receives every snapped instant produced by a drag.
	Publish func(time.Time)
	// OnRedraw is called when the source reports a resize.
	OnRedraw func()
	Logger   zerolog.Logger
}

// Engine owns a Machine and its subscription to an input Source.
type Engine struct {
	machine     Machine
	opts        Options
	unsubscribe func()
	last        Output
}

// NewEngine creates an idle engine. It receives no events until Activate.
func NewEngine(opts Options) *Engine {
	if opts.Snap == 0 {
		opts.Snap = DefaultSnap
	}
	if opts.Instant == nil {
		opts.Instant = func() time.Time { return time.Now().UTC() }
	}
	return &Engine{
		machine: NewMachine(opts.Width, opts.Snap),
		opts:    opts,
	}
}

// Activate subscribes the engine to src. A second call replaces the previous
// subscription.
func (e *Engine) Activate(src Source) {
	e.Close()
	e.unsubscribe = src.Subscribe(func(ev Event) { e.Handle(ev) })
}

// Close releases the source subscription.
func (e *Engine) Close() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

// Active reports whether the engine holds a subscription.
func (e *Engine) Active() bool {
	return e.unsubscribe != nil
}

// Handle applies one event and runs the publish and redraw callbacks.
func (e *Engine) Handle(ev Event) Output {
	prev := e.machine.State
	next, out := e.machine.Next(ev, e.opts.Instant())
	e.machine = next
	e.last = out

	if prev != next.State {
		e.opts.Logger.Debug().
			Stringer("from", prev).
			Stringer("to", next.State).
			Msg("gesture transition")
	}

	if out.Changed && e.opts.Publish != nil {
		e.opts.Publish(out.Instant)
	}
	if out.Redraw && e.opts.OnRedraw != nil {
		e.opts.OnRedraw()
	}
	return out
}

// State returns the current gesture state.
func (e *Engine) State() State {
	return e.machine.State
}

// Width returns the last measured timeline width.
func (e *Engine) Width() float64 {
	return e.machine.Width
}

// LastOutput returns the output of the most recent event.
func (e *Engine) LastOutput() Output {
	return e.last
}
