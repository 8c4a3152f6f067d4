package common

import "time"

// GameTimer measures the wall time between ticks. The zero value is not
// ready; use NewGameTimer.
type GameTimer struct {
	previous  time.Time
	frameTime float64
	ticks     int
	now       func() time.Time
}

func NewGameTimer() *GameTimer {
	return newGameTimerWithClock(time.Now)
}

func newGameTimerWithClock(now func() time.Time) *GameTimer {
	return &GameTimer{previous: now(), now: now}
}

// NewFixedTimer returns a timer that reports frameTime seconds on every tick,
// for headless runs and tests.
func NewFixedTimer(frameTime float64) *GameTimer {
	t := time.Unix(0, 0)
	step := time.Duration(frameTime * float64(time.Second))
	return newGameTimerWithClock(func() time.Time {
		t = t.Add(step)
		return t
	})
}

// Tick records the time elapsed since the previous tick.
func (g *GameTimer) Tick() {
	if g == nil {
		return
	}
	now := g.now()
	g.frameTime = now.Sub(g.previous).Seconds()
	g.previous = now
	g.ticks++
}

// FrameTime returns the seconds elapsed between the last two ticks.
func (g *GameTimer) FrameTime() float64 {
	if g == nil {
		return 0
	}
	return g.frameTime
}

// Ticks returns the number of ticks so far.
func (g *GameTimer) Ticks() int {
	if g == nil {
		return 0
	}
	return g.ticks
}
