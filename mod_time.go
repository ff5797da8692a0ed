package galleria

import (
	"time"
)

type Time struct {
	Now   time.Time
	Dt    time.Duration
	Frame uint64
}

type TimeModule struct{}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Now: time.Now(),
	})
	app.UseSystem(
		System(timeSystem).
			InStage(PreUpdate),
	)
}

func timeSystem(t *Time) {
	now := time.Now()
	t.Dt = now.Sub(t.Now)
	t.Now = now
	t.Frame += 1
}
