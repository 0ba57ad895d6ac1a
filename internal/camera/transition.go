// Package camera eases the scene camera between context viewpoints.
package camera

import (
	"math"
	"time"

	"github.com/gen2brain/raylib-go/easings"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultDuration       = 1500 * time.Millisecond
	ReducedMotionDuration = 500 * time.Millisecond

	// BreathingRate is the angular rate (rad/s) of the idle vertical sway.
	BreathingRate = 0.3
)

// Duration picks the transition length for the motion preference.
func Duration(reducedMotion bool) time.Duration {
	if reducedMotion {
		return ReducedMotionDuration
	}
	return DefaultDuration
}

// EaseOutCubic is 1-(1-p)^3 for p in [0,1].
func EaseOutCubic(p float32) float32 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return easings.CubicOut(p, 0, 1, 1)
}

// Transition is one camera move. Times are on the engine's frame clock.
type Transition struct {
	Start     mgl32.Vec3
	End       mgl32.Vec3
	StartTime time.Duration
	Duration  time.Duration
}

// Progress is the linear completion fraction at now, clamped to [0,1].
func (t Transition) Progress(now time.Duration) float32 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now-t.StartTime) / float64(t.Duration)
	return float32(math.Max(0, math.Min(1, p)))
}

// At is the eased camera position at now. The endpoints are returned
// exactly.
func (t Transition) At(now time.Duration) mgl32.Vec3 {
	p := t.Progress(now)
	switch p {
	case 0:
		return t.Start
	case 1:
		return t.End
	}
	eased := EaseOutCubic(p)
	return t.Start.Add(t.End.Sub(t.Start).Mul(eased))
}

// Controller runs at most one transition. A new Start replaces the running
// one; callers pass the current sampled position as the new start so the
// camera never jumps back.
type Controller struct {
	current *Transition
}

func NewController() *Controller {
	return &Controller{}
}

// Start begins a move from -> to at now.
func (c *Controller) Start(from, to mgl32.Vec3, now time.Duration, reducedMotion bool) {
	c.current = &Transition{
		Start:     from,
		End:       to,
		StartTime: now,
		Duration:  Duration(reducedMotion),
	}
}

// Active reports whether a transition is running.
func (c *Controller) Active() bool {
	return c.current != nil
}

// Current returns the running transition, if any.
func (c *Controller) Current() (Transition, bool) {
	if c.current == nil {
		return Transition{}, false
	}
	return *c.current, true
}

// Peek samples the running transition without completing it. ok is false
// when idle.
func (c *Controller) Peek(now time.Duration) (pos mgl32.Vec3, ok bool) {
	if c.current == nil {
		return mgl32.Vec3{}, false
	}
	return c.current.At(now), true
}

// Advance samples the running transition and discards it once progress
// reaches 1. done is true on that final sample only.
func (c *Controller) Advance(now time.Duration) (pos mgl32.Vec3, done bool) {
	if c.current == nil {
		return mgl32.Vec3{}, false
	}
	pos = c.current.At(now)
	if c.current.Progress(now) >= 1 {
		c.current = nil
		return pos, true
	}
	return pos, false
}

// Cancel drops the running transition where it is.
func (c *Controller) Cancel() {
	c.current = nil
}

// BreathingOffset is the vertical sway added to the camera at elapsed time.
func BreathingOffset(elapsed time.Duration, amplitude float32) float32 {
	if amplitude == 0 {
		return 0
	}
	return float32(math.Sin(elapsed.Seconds()*BreathingRate)) * amplitude
}
