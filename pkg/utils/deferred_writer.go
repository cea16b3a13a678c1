package utils

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// DeferredWriter collects notices while the terminal is owned by the TUI and
// prints them once it is released. Each write is one notice; repeated
// notices are kept once. Safe for concurrent use.
type DeferredWriter struct {
	mu      sync.Mutex
	prefix  string
	notices []string
}

// NewDeferredWriter creates a writer that prefixes every flushed line.
func NewDeferredWriter(prefix string) *DeferredWriter {
	return &DeferredWriter{prefix: prefix}
}

// Write stores p as one notice. Trailing newlines are dropped.
func (d *DeferredWriter) Write(p []byte) (n int, err error) {
	d.add(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// Printf formats and stores a notice.
func (d *DeferredWriter) Printf(format string, args ...any) {
	d.add(fmt.Sprintf(format, args...))
}

func (d *DeferredWriter) add(s string) {
	if s == "" {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if slices.Contains(d.notices, s) {
		return
	}
	d.notices = append(d.notices, s)
}

// Len returns the number of pending notices.
func (d *DeferredWriter) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.notices)
}

// Flush writes all pending notices to w, one per line, and clears them.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	notices := d.notices
	d.notices = nil
	d.mu.Unlock()

	for _, n := range notices {
		if _, err := fmt.Fprintln(w, d.prefix+n); err != nil {
			return err
		}
	}
	return nil
}
