package tween

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestTweenInterpolatesAndCompletes(t *testing.T) {
	completed := 0
	tw := New(-2, 2, 1.0, Linear).OnComplete(func() { completed++ })

	if !tw.Step(0.25) {
		t.Fatal("tween should still be active at 25%")
	}
	if v := tw.Value(); math.Abs(v-(-1)) > eps {
		t.Errorf("Value() at 25%% = %v, expected -1", v)
	}

	if tw.Step(0.75) {
		t.Error("tween should finish at 100%")
	}
	if !tw.Done() || tw.Active() {
		t.Error("tween should report done and inactive")
	}
	if v := tw.Value(); v != 2 {
		t.Errorf("final Value() = %v, expected 2", v)
	}

	tw.Step(1)
	if completed != 1 {
		t.Errorf("completion fired %d times, expected 1", completed)
	}
}

func TestTweenKillSkipsCompletion(t *testing.T) {
	completed := false
	tw := New(0, 1, 1, nil).OnComplete(func() { completed = true })
	tw.Step(0.5)
	tw.Kill()

	if tw.Step(1) {
		t.Error("killed tween should not be active")
	}
	if completed {
		t.Error("killed tween must not run its completion callback")
	}

	var nilTween *Tween
	nilTween.Kill()
	if nilTween.Active() {
		t.Error("nil tween should be inactive")
	}
}

func TestZeroDurationCompletesImmediately(t *testing.T) {
	completed := false
	tw := New(0, 5, 0, Linear).OnComplete(func() { completed = true })
	tw.Step(0)
	if !completed || tw.Value() != 5 {
		t.Errorf("zero-duration tween: completed=%v value=%v", completed, tw.Value())
	}
}

func TestEasingEndpoints(t *testing.T) {
	eases := map[string]Ease{
		"linear":    Linear,
		"inOutQuad": InOutQuad,
		"inOutSine": InOutSine,
	}
	for name, e := range eases {
		if math.Abs(e(0)) > eps || math.Abs(e(1)-1) > eps {
			t.Errorf("%s: endpoints = (%v, %v), expected (0, 1)", name, e(0), e(1))
		}
		if math.Abs(e(0.5)-0.5) > eps {
			t.Errorf("%s: midpoint = %v, expected 0.5", name, e(0.5))
		}
		prev := 0.0
		for i := 1; i <= 20; i++ {
			v := e(float64(i) / 20)
			if v < prev-eps {
				t.Errorf("%s is not monotonic at step %d", name, i)
			}
			prev = v
		}
	}
}

func TestArc(t *testing.T) {
	if Arc(0, 3) != 0 || Arc(1, 3) != 0 {
		t.Error("arc should be grounded at both ends")
	}
	if math.Abs(Arc(0.5, 3)-3) > eps {
		t.Errorf("Arc(0.5, 3) = %v, expected 3", Arc(0.5, 3))
	}
	if math.Abs(Arc(0.25, 3)-Arc(0.75, 3)) > eps {
		t.Error("arc should be symmetric")
	}
}
