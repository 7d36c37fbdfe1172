package events

import (
	"sync"

	"github.com/fuad-daoud/discord-gateway/logger/dlog"
)

// Listener receives every published event of the type it subscribed to.
type Listener func(e Event)

type subscription struct {
	id int
	fn Listener
}

// Dispatcher is a process-wide publish mechanism. Publish runs listeners
// synchronously on the calling goroutine, in registration order; a
// panicking listener is recovered and logged, never propagated.
// Subscribe/Unsubscribe are safe against concurrent Publish.
type Dispatcher struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[Type][]subscription
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: map[Type][]subscription{}}
}

// Subscribe registers fn for events of type t and returns an id usable
// with Unsubscribe.
func (d *Dispatcher) Subscribe(t Type, fn Listener) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	d.listeners[t] = append(d.listeners[t], subscription{id: d.nextID, fn: fn})
	return d.nextID
}

func (d *Dispatcher) Unsubscribe(t Type, id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	subs := d.listeners[t]
	for i, sub := range subs {
		if sub.id == id {
			d.listeners[t] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

func (d *Dispatcher) Publish(e Event) {
	d.mu.RLock()
	subs := append([]subscription(nil), d.listeners[e.EventType()]...)
	d.mu.RUnlock()

	for _, sub := range subs {
		invoke(sub, e)
	}
}

func invoke(sub subscription, e Event) {
	defer func() {
		if r := recover(); r != nil {
			dlog.Error("Event listener panicked", "event", e.EventType(), "panic", r)
		}
	}()
	sub.fn(e)
}
