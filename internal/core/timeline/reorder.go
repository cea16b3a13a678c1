package timeline

// Move is a committed single-element reorder.
type Move struct {
	From int
	To   int
}

// Reorder is the drag-and-drop state machine for row order. Index 0 (the
// local row) is never draggable and never a drop target.
type Reorder struct {
	active  bool
	from    int
	over    int
	hasOver bool
}

// Start begins dragging the row at index i.
func (r Reorder) Start(i int) Reorder {
	if i <= 0 {
		return Reorder{}
	}
	return Reorder{active: true, from: i}
}

// Over marks j as the drop candidate.
func (r Reorder) Over(j int) Reorder {
	if !r.active || j <= 0 {
		return r
	}
	r.over = j
	r.hasOver = true
	return r
}

// Leave clears the drop candidate.
func (r Reorder) Leave() Reorder {
	r.over = 0
	r.hasOver = false
	return r
}

// Drop ends the gesture on index j and reports the move to commit, if any.
func (r Reorder) Drop(j int) (Reorder, Move, bool) {
	if !r.active || j <= 0 || j == r.from {
		return Reorder{}, Move{}, false
	}
	return Reorder{}, Move{From: r.from, To: j}, true
}

// Cancel ends the gesture without a move.
func (r Reorder) Cancel() Reorder {
	return Reorder{}
}

// Active reports whether a row is being dragged.
func (r Reorder) Active() bool {
	return r.active
}

// From returns the index of the dragged row.
func (r Reorder) From() int {
	return r.from
}

// Candidate returns the current drop candidate.
func (r Reorder) Candidate() (int, bool) {
	return r.over, r.hasOver
}

// Apply returns a copy of s with m applied: the element at m.From is removed
// and reinserted at m.To. Out-of-range moves return an unchanged copy.
func Apply[T any](s []T, m Move) []T {
	out := make([]T, len(s))
	copy(out, s)
	if m.From < 0 || m.From >= len(s) || m.To < 0 || m.To >= len(s) || m.From == m.To {
		return out
	}

	item := out[m.From]
	out = append(out[:m.From], out[m.From+1:]...)
	out = append(out[:m.To], append([]T{item}, out[m.To:]...)...)
	return out
}
