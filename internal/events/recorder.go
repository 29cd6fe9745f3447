package events

// Recorder captures every event published on a bus, in order.
type Recorder struct {
	sub    Subscription
	events []Event
}

// Record starts capturing events from b.
func Record(b *Bus) *Recorder {
	r := &Recorder{}
	r.sub = b.Observe(func(ev Event) {
		r.events = append(r.events, ev)
	})
	return r
}

// Events returns the captured events.
func (r *Recorder) Events() []Event {
	return r.events
}

// Reset forgets captured events. Slices returned by Events stay intact.
func (r *Recorder) Reset() {
	r.events = nil
}

// Stop detaches the recorder from its bus.
func (r *Recorder) Stop() {
	r.sub.Unsubscribe()
}

// Count returns how many captured events have type T.
func Count[T Event](r *Recorder) int {
	n := 0
	for _, ev := range r.events {
		if _, ok := ev.(T); ok {
			n++
		}
	}
	return n
}

// Last returns the most recent captured event of type T.
func Last[T Event](r *Recorder) (T, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if ev, ok := r.events[i].(T); ok {
			return ev, true
		}
	}
	var zero T
	return zero, false
}
