// Package events provides the typed publish/subscribe bus that connects the
// runner's components. A Bus is created per game instance and handed to each
// component explicitly; there is no process-wide registry.
//
// A Bus is not safe for concurrent use. It is owned by the goroutine that
// steps the game.
package events

import "reflect"

// Bus delivers events synchronously to handlers registered for their type.
type Bus struct {
	handlers  map[reflect.Type][]handler
	observers []handler
	nextID    uint64
	closed    bool
}

type handler struct {
	id uint64
	fn any
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		handlers: make(map[reflect.Type][]handler),
	}
}

// Subscription identifies a registered handler.
type Subscription struct {
	bus *Bus
	typ reflect.Type // nil for observers
	id  uint64
}

// Unsubscribe removes the handler. Calling it more than once is harmless.
func (s Subscription) Unsubscribe() {
	if s.bus == nil || s.id == 0 {
		return
	}
	if s.typ == nil {
		s.bus.observers = without(s.bus.observers, s.id)
		return
	}
	hs := without(s.bus.handlers[s.typ], s.id)
	if len(hs) == 0 {
		delete(s.bus.handlers, s.typ)
		return
	}
	s.bus.handlers[s.typ] = hs
}

// without returns a fresh slice so that deliveries already iterating over
// the old one are unaffected.
func without(hs []handler, id uint64) []handler {
	out := make([]handler, 0, len(hs))
	for _, h := range hs {
		if h.id != id {
			out = append(out, h)
		}
	}
	return out
}

// Subscribe registers fn for events of type T. Handlers run in the order they
// were subscribed. Subscribing on a closed bus returns an inert Subscription.
func Subscribe[T Event](b *Bus, fn func(T)) Subscription {
	if b == nil || b.closed || fn == nil {
		return Subscription{}
	}
	t := reflect.TypeFor[T]()
	b.nextID++
	hs := b.handlers[t]
	next := make([]handler, len(hs), len(hs)+1)
	copy(next, hs)
	b.handlers[t] = append(next, handler{id: b.nextID, fn: fn})
	return Subscription{bus: b, typ: t, id: b.nextID}
}

// Publish delivers ev to every handler subscribed to T, then to observers.
// Handlers may publish further events; those are delivered depth-first.
func Publish[T Event](b *Bus, ev T) {
	if b == nil || b.closed {
		return
	}
	for _, h := range b.handlers[reflect.TypeFor[T]()] {
		h.fn.(func(T))(ev)
	}
	for _, h := range b.observers {
		h.fn.(func(Event))(ev)
	}
}

// Observe registers fn for every event regardless of type.
func (b *Bus) Observe(fn func(Event)) Subscription {
	if b.closed || fn == nil {
		return Subscription{}
	}
	b.nextID++
	next := make([]handler, len(b.observers), len(b.observers)+1)
	copy(next, b.observers)
	b.observers = append(next, handler{id: b.nextID, fn: fn})
	return Subscription{bus: b, id: b.nextID}
}

// Handlers returns the number of registered handlers, observers included.
func (b *Bus) Handlers() int {
	n := len(b.observers)
	for _, hs := range b.handlers {
		n += len(hs)
	}
	return n
}

// Close drops every handler. Publishing on a closed bus is a no-op.
func (b *Bus) Close() {
	b.closed = true
	b.handlers = make(map[reflect.Type][]handler)
	b.observers = nil
}
