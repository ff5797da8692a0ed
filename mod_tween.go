package galleria

import (
	"time"
)

// Easing maps normalized elapsed time [0,1] to an interpolation factor.
type Easing func(t float32) float32

func Linear(t float32) float32 { return t }

func EaseInQuad(t float32) float32 { return t * t }

func EaseOutQuad(t float32) float32 { return 1 - (1-t)*(1-t) }

func EaseInOutQuad(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// Tween interpolates a scalar from From to To over Duration, feeding each
// sample to Apply. OnComplete fires exactly once, after the final value has
// been applied.
type Tween struct {
	From       float32
	To         float32
	Duration   time.Duration
	Ease       Easing
	Apply      func(v float32)
	OnComplete func()

	elapsed time.Duration
}

// Tweens runs active tweens, one per named channel. Starting a channel that
// is already animating replaces the running tween in place; there is no
// cancellation beyond that.
type Tweens struct {
	active map[string]*Tween
}

func NewTweens() *Tweens {
	return &Tweens{active: make(map[string]*Tween)}
}

func (tw *Tweens) Start(channel string, t Tween) {
	if t.Ease == nil {
		t.Ease = Linear
	}
	t.elapsed = 0
	tw.active[channel] = &t
}

func (tw *Tweens) Active(channel string) bool {
	_, ok := tw.active[channel]
	return ok
}

func (tw *Tweens) Count() int {
	return len(tw.active)
}

// Advance steps every active tween by dt. Completed tweens are removed
// before their OnComplete runs, so a completion callback may start a new
// tween on the same channel.
func (tw *Tweens) Advance(dt time.Duration) {
	if len(tw.active) == 0 {
		return
	}

	channels := make([]string, 0, len(tw.active))
	for ch := range tw.active {
		channels = append(channels, ch)
	}

	for _, ch := range channels {
		t, ok := tw.active[ch]
		if !ok {
			continue
		}

		t.elapsed += dt
		if t.Duration <= 0 || t.elapsed >= t.Duration {
			if t.Apply != nil {
				t.Apply(t.To)
			}
			delete(tw.active, ch)
			if t.OnComplete != nil {
				t.OnComplete()
			}
			continue
		}

		frac := float32(t.elapsed) / float32(t.Duration)
		v := t.From + (t.To-t.From)*t.Ease(frac)
		if t.Apply != nil {
			t.Apply(v)
		}
	}
}

type TweenModule struct{}

func (TweenModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewTweens())
	app.UseSystem(
		System(tweenSystem).
			InStage(Update),
	)
}

func tweenSystem(t *Time, tweens *Tweens) {
	if t.Dt <= 0 {
		return
	}
	tweens.Advance(t.Dt)
}
