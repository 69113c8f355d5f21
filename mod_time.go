package cloudmorph

import (
	"time"
)

type Time struct {
	Time    time.Time
	Start   time.Time
	Dt      time.Duration
	Elapsed time.Duration
}

// DtSeconds returns the last frame delta in seconds, clamped to a sane
// value so a debugger pause or window drag cannot produce a huge step.
func (t *Time) DtSeconds() float32 {
	dt := float32(t.Dt.Seconds())
	if dt <= 0 {
		return 0
	}
	if dt > 0.1 {
		dt = 0.1
	}
	return dt
}

func (t *Time) ElapsedSeconds() float32 {
	return float32(t.Elapsed.Seconds())
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := time.Now()
	cmd.AddResources(&Time{
		Time:  now,
		Start: now,
	})
	app.UseSystem(System(timeSystem).InStage(Prelude))
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
	timeResource.Elapsed = now.Sub(timeResource.Start)
}
