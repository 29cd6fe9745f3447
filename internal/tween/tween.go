// Package tween drives timed interpolations between two values.
// Tweens advance by explicit time steps so simulations stay deterministic.
package tween

// Tween interpolates from From to To over Duration seconds.
type Tween struct {
	From     float64
	To       float64
	Duration float64
	Ease     Ease

	elapsed    float64
	done       bool
	killed     bool
	onComplete func()
}

// New creates a tween. A nil ease means Linear.
func New(from, to, duration float64, ease Ease) *Tween {
	if ease == nil {
		ease = Linear
	}
	return &Tween{
		From:     from,
		To:       to,
		Duration: duration,
		Ease:     ease,
	}
}

// OnComplete sets the callback invoked once when the tween finishes.
// It is not invoked for killed tweens.
func (t *Tween) OnComplete(fn func()) *Tween {
	t.onComplete = fn
	return t
}

// Step advances the tween by dt seconds and fires the completion callback
// when the end is reached. It reports whether the tween is still active.
func (t *Tween) Step(dt float64) bool {
	if t.done || t.killed {
		return false
	}
	t.elapsed += dt
	if t.Duration <= 0 || t.elapsed >= t.Duration {
		t.elapsed = t.Duration
		t.done = true
		if t.onComplete != nil {
			t.onComplete()
		}
		return false
	}
	return true
}

// Progress returns linear progress in [0, 1].
func (t *Tween) Progress() float64 {
	if t.Duration <= 0 || t.done {
		return 1
	}
	p := t.elapsed / t.Duration
	if p < 0 {
		return 0
	}
	return p
}

// Eased returns eased progress in [0, 1].
func (t *Tween) Eased() float64 {
	return t.Ease(t.Progress())
}

// Value returns the interpolated value for the current progress.
func (t *Tween) Value() float64 {
	return t.From + (t.To-t.From)*t.Eased()
}

// Done reports whether the tween ran to completion.
func (t *Tween) Done() bool {
	return t.done
}

// Active reports whether the tween is neither finished nor killed.
func (t *Tween) Active() bool {
	return t != nil && !t.done && !t.killed
}

// Kill stops the tween without running its completion callback.
func (t *Tween) Kill() {
	if t == nil {
		return
	}
	t.killed = true
}
