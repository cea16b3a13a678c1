package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReorder_DropCommitsMove(t *testing.T) {
	var r Reorder
	r = r.Start(3)
	assert.True(t, r.Active())
	assert.Equal(t, 3, r.From())

	r = r.Over(1)
	j, ok := r.Candidate()
	assert.True(t, ok)
	assert.Equal(t, 1, j)

	r, mv, ok := r.Drop(1)
	assert.True(t, ok)
	assert.Equal(t, Move{From: 3, To: 1}, mv)
	assert.False(t, r.Active())
}

func TestReorder_LocalRowIsPinned(t *testing.T) {
	tests := []struct {
		name  string
		start int
		over  int
		drop  int
	}{
		{"dragging local row", 0, 2, 2},
		{"dropping on local row", 2, 1, 0},
		{"dropping on itself", 2, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reorder{}.Start(tt.start).Over(tt.over)
			_, _, ok := r.Drop(tt.drop)
			assert.False(t, ok)
		})
	}
}

func TestReorder_OverLocalRowKeepsCandidate(t *testing.T) {
	r := Reorder{}.Start(2).Over(3).Over(0)
	j, ok := r.Candidate()
	assert.True(t, ok)
	assert.Equal(t, 3, j)

	r = r.Leave()
	_, ok = r.Candidate()
	assert.False(t, ok)
	assert.True(t, r.Active())
}

func TestReorder_Cancel(t *testing.T) {
	r := Reorder{}.Start(2).Over(1).Cancel()
	assert.False(t, r.Active())
	_, ok := r.Candidate()
	assert.False(t, ok)
}

func TestApply(t *testing.T) {
	in := []string{"local", "a", "b", "c"}

	assert.Equal(t, []string{"local", "c", "a", "b"}, Apply(in, Move{From: 3, To: 1}))
	assert.Equal(t, []string{"local", "b", "c", "a"}, Apply(in, Move{From: 1, To: 3}))
	assert.Equal(t, in, Apply(in, Move{From: 1, To: 9}))
	assert.Equal(t, []string{"local", "a", "b", "c"}, in, "input is not mutated")
}
