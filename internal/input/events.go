// Package input turns polled pointer and touch state into discrete events
// and fans them out to listeners, in the manner of document-level DOM events.
package input

import (
	"sync"

	"github.com/iburimskiy/wave-line/internal/overlay"
)

// Kind identifies an event type.
type Kind int

const (
	PointerDown Kind = iota
	PointerMove
	PointerUp
	PointerLeave
	TouchStart
	TouchMove
	TouchEnd
	TouchCancel
)

var kindNames = [...]string{
	PointerDown:  "pointerdown",
	PointerMove:  "pointermove",
	PointerUp:    "pointerup",
	PointerLeave: "pointerleave",
	TouchStart:   "touchstart",
	TouchMove:    "touchmove",
	TouchEnd:     "touchend",
	TouchCancel:  "touchcancel",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Event is one input occurrence in logical pixels. Touches is the number of
// touches still on the surface after the event; it is zero for mouse events.
type Event struct {
	Kind    Kind
	X, Y    float64
	Touches int
	Target  *overlay.Element
}

// Handler receives events synchronously.
type Handler func(Event)

type listener struct {
	id int
	fn Handler
}

// Dispatcher is a listener registry keyed by event kind.
type Dispatcher struct {
	mu        sync.Mutex
	nextID    int
	listeners map[Kind][]listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[Kind][]listener)}
}

// Listen registers fn for kind and returns the func that detaches it.
// Detaching twice is harmless.
func (d *Dispatcher) Listen(kind Kind, fn Handler) (detach func()) {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.listeners[kind] = append(d.listeners[kind], listener{id: id, fn: fn})
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		ls := d.listeners[kind]
		for i, l := range ls {
			if l.id == id {
				d.listeners[kind] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Dispatch runs every listener for e.Kind in registration order. Handlers
// run outside the lock so they may register or detach listeners.
func (d *Dispatcher) Dispatch(e Event) {
	d.mu.Lock()
	ls := append([]listener(nil), d.listeners[e.Kind]...)
	d.mu.Unlock()
	for _, l := range ls {
		l.fn(e)
	}
}

// Len is the number of attached listeners across all kinds.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, ls := range d.listeners {
		n += len(ls)
	}
	return n
}
