// Package filewatch reports changes to the store files in the data directory
// so a running TUI picks up edits made by other tzc processes.
package filewatch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const (
	debounceDelay   = 50 * time.Millisecond
	eventBufferSize = 16
)

// Event reports that a file in the watched directory changed.
type Event struct {
	Name      string
	Timestamp time.Time
}

// Watcher watches one directory using fsnotify.
type Watcher struct {
	dir     string
	watcher *fsnotify.Watcher
	logger  zerolog.Logger

	mu          sync.Mutex
	subscribers map[string][]chan<- Event // pattern -> channels
	debounce    map[string]*time.Timer    // file name -> debounce timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a watcher for dir. The directory is created if it doesn't exist.
func New(dir string, logger zerolog.Logger) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		dir:         dir,
		watcher:     watcher,
		logger:      logger,
		subscribers: make(map[string][]chan<- Event),
		debounce:    make(map[string]*time.Timer),
		ctx:         ctx,
		cancel:      cancel,
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Watch returns a channel that receives events for files whose base name
// matches the doublestar pattern. The channel is closed when ctx is done or
// the watcher is closed.
func (w *Watcher) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}

	ch := make(chan Event, eventBufferSize)

	w.mu.Lock()
	w.subscribers[pattern] = append(w.subscribers[pattern], ch)
	w.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			w.unsubscribe(pattern, ch)
		case <-w.ctx.Done():
		}
	}()

	return ch, nil
}

// Close stops watching and closes all subscriber channels.
func (w *Watcher) Close() error {
	w.cancel()

	w.mu.Lock()
	for _, timer := range w.debounce {
		timer.Stop()
	}
	for _, subs := range w.subscribers {
		for _, ch := range subs {
			close(ch)
		}
	}
	w.subscribers = make(map[string][]chan<- Event)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) unsubscribe(pattern string, ch chan<- Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	subs := w.subscribers[pattern]
	for i, sub := range subs {
		if sub == ch {
			w.subscribers[pattern] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
	if len(w.subscribers[pattern]) == 0 {
		delete(w.subscribers, pattern)
	}
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Str("dir", w.dir).Msg("file watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	name := filepath.Base(event.Name)
	if strings.HasSuffix(name, ".tmp") || strings.HasSuffix(name, ".lock") {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, exists := w.debounce[name]; exists {
		timer.Stop()
	}
	w.debounce[name] = time.AfterFunc(debounceDelay, func() {
		w.notify(name)
	})
}

func (w *Watcher) notify(name string) {
	event := Event{Name: name, Timestamp: time.Now()}

	w.mu.Lock()
	defer w.mu.Unlock()

	for pattern, subs := range w.subscribers {
		if ok, _ := doublestar.Match(pattern, name); !ok {
			continue
		}
		for _, ch := range subs {
			select {
			case ch <- event:
			default:
				// subscriber is behind; it will reload on the next event
			}
		}
	}

	delete(w.debounce, name)
}
