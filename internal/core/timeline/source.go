package timeline

import "sync"

// Handler receives input events.
type Handler func(Event)

// Source is a stream of pointer, touch and resize events. Subscribe
// registers h and returns the function that removes it again.
type Source interface {
	Subscribe(h Handler) (unsubscribe func())
}

// Dispatcher is a Source fed by the host's event loop.
type Dispatcher struct {
	mu       sync.Mutex
	nextID   int
	handlers []subscription
}

type subscription struct {
	id int
	h  Handler
}

var _ Source = (*Dispatcher)(nil)

// Subscribe implements Source.
func (d *Dispatcher) Subscribe(h Handler) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++
	d.handlers = append(d.handlers, subscription{id: id, h: h})

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(id) })
	}
}

func (d *Dispatcher) remove(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, s := range d.handlers {
		if s.id == id {
			d.handlers = append(d.handlers[:i], d.handlers[i+1:]...)
			return
		}
	}
}

// Dispatch delivers ev to every subscriber in subscription order.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.Lock()
	handlers := make([]Handler, len(d.handlers))
	for i, s := range d.handlers {
		handlers[i] = s.h
	}
	d.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

// Subscribers returns the number of registered handlers.
func (d *Dispatcher) Subscribers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers)
}
