package row

import "strings"

// Editor is the inline label edit state. The zero value is not editing.
type Editor struct {
	editing bool
	buffer  string
}

// Start enters edit mode with the buffer seeded from the current custom
// label, which is empty when the row has none.
func (e Editor) Start(current string) Editor {
	return Editor{editing: true, buffer: current}
}

// Input replaces the buffer.
func (e Editor) Input(value string) Editor {
	if !e.editing {
		return e
	}
	e.buffer = value
	return e
}

// Commit leaves edit mode and returns the trimmed label. An empty label means
// the custom label should be cleared. ok is false when not editing.
func (e Editor) Commit() (next Editor, label string, ok bool) {
	if !e.editing {
		return e, "", false
	}
	return Editor{}, strings.TrimSpace(e.buffer), true
}

// Cancel leaves edit mode and discards the buffer.
func (e Editor) Cancel() Editor {
	return Editor{}
}

func (e Editor) Editing() bool {
	return e.editing
}

func (e Editor) Buffer() string {
	return e.buffer
}
