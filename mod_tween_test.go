package galleria

import (
	"math"
	"testing"
	"time"
)

func TestEasingEndpoints(t *testing.T) {
	easings := map[string]Easing{
		"Linear":        Linear,
		"EaseInQuad":    EaseInQuad,
		"EaseOutQuad":   EaseOutQuad,
		"EaseInOutQuad": EaseInOutQuad,
	}
	for name, ease := range easings {
		if math.Abs(float64(ease(0))) > 1e-6 {
			t.Errorf("%s(0) = %v, want 0", name, ease(0))
		}
		if math.Abs(float64(ease(1)-1)) > 1e-6 {
			t.Errorf("%s(1) = %v, want 1", name, ease(1))
		}
	}
	if math.Abs(float64(EaseInOutQuad(0.5)-0.5)) > 1e-6 {
		t.Errorf("EaseInOutQuad(0.5) = %v, want 0.5", EaseInOutQuad(0.5))
	}
}

func TestTweenAdvance(t *testing.T) {
	tweens := NewTweens()

	var value float32
	tweens.Start("test", Tween{
		From:     0,
		To:       10,
		Duration: 100 * time.Millisecond,
		Ease:     Linear,
		Apply:    func(v float32) { value = v },
	})

	tweens.Advance(50 * time.Millisecond)
	if math.Abs(float64(value-5)) > 1e-4 {
		t.Errorf("expected value 5 at midpoint, got %v", value)
	}
	if !tweens.Active("test") {
		t.Errorf("tween should still be active at midpoint")
	}

	tweens.Advance(50 * time.Millisecond)
	if value != 10 {
		t.Errorf("expected final value 10, got %v", value)
	}
	if tweens.Active("test") {
		t.Errorf("tween should be done after the full duration")
	}
}

func TestTweenCompletesOnce(t *testing.T) {
	tweens := NewTweens()

	completions := 0
	tweens.Start("once", Tween{
		From:       0,
		To:         1,
		Duration:   10 * time.Millisecond,
		Apply:      func(float32) {},
		OnComplete: func() { completions++ },
	})

	for i := 0; i < 5; i++ {
		tweens.Advance(10 * time.Millisecond)
	}
	if completions != 1 {
		t.Errorf("OnComplete should fire exactly once, fired %d times", completions)
	}
}

func TestTweenOverrideInPlace(t *testing.T) {
	tweens := NewTweens()

	var value float32
	tweens.Start("chan", Tween{
		From:     0,
		To:       100,
		Duration: 100 * time.Millisecond,
		Apply:    func(v float32) { value = v },
	})
	tweens.Advance(50 * time.Millisecond)

	// Restart the channel mid-flight from the current value.
	tweens.Start("chan", Tween{
		From:     value,
		To:       0,
		Duration: 100 * time.Millisecond,
		Apply:    func(v float32) { value = v },
	})
	if tweens.Count() != 1 {
		t.Errorf("restart must replace the running tween, have %d active", tweens.Count())
	}

	tweens.Advance(100 * time.Millisecond)
	if value != 0 {
		t.Errorf("expected retargeted tween to land on 0, got %v", value)
	}
}

func TestTweenChainFromCompletion(t *testing.T) {
	tweens := NewTweens()

	var phase2 bool
	tweens.Start("chain", Tween{
		From:     0,
		To:       1,
		Duration: 10 * time.Millisecond,
		Apply:    func(float32) {},
		OnComplete: func() {
			tweens.Start("chain", Tween{
				From:     1,
				To:       0,
				Duration: 10 * time.Millisecond,
				Apply:    func(float32) { phase2 = true },
			})
		},
	})

	tweens.Advance(10 * time.Millisecond)
	if !tweens.Active("chain") {
		t.Fatalf("completion callback should have started a follow-up tween on the same channel")
	}
	tweens.Advance(10 * time.Millisecond)
	if !phase2 {
		t.Errorf("follow-up tween never applied a value")
	}
	if tweens.Active("chain") {
		t.Errorf("follow-up tween should have finished")
	}
}

func TestTweenZeroDuration(t *testing.T) {
	tweens := NewTweens()

	var value float32
	done := false
	tweens.Start("instant", Tween{
		From:       0,
		To:         7,
		Apply:      func(v float32) { value = v },
		OnComplete: func() { done = true },
	})

	tweens.Advance(time.Millisecond)
	if value != 7 || !done {
		t.Errorf("zero-duration tween should snap to its target, value=%v done=%v", value, done)
	}
}
