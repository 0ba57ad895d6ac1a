// Package physics animates the navigation hexagon's yaw with a damped spring
// that tracks the active section.
package physics

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	// FaceCount is the number of hexagon faces, one per top-level section.
	FaceCount = 6
	// FaceAngle is the yaw between two neighbouring faces (60°).
	FaceAngle = math.Pi / 3

	// FrameRate is the rate the spring constants are expressed in.
	FrameRate = 60
	// FrameStep is one spring step.
	FrameStep = time.Second / FrameRate
	// MaxCatchUpSteps bounds the steps taken by one Update after a stall.
	MaxCatchUpSteps = 10

	DefaultSpringStrength    = 0.015
	DefaultDamping           = 0.8
	DefaultHarmonicFrequency = 6.0

	// SettleVelocity is the per-step velocity below which the spring counts
	// as settled.
	SettleVelocity = 1e-4
)

var ErrUnstableSpring = errors.New("physics: unstable spring parameters")

// Input is what the host feeds the spring each frame.
type Input struct {
	Section       int
	ReducedMotion bool
	Interacting   bool
}

// State is the spring state. Angles are radians, Velocity is radians per
// step.
type State struct {
	Current  float64
	Target   float64
	Velocity float64
}

// Integrator advances a State by exactly one FrameStep.
type Integrator interface {
	Step(s *State)
}

// FrameSpring is the per-frame spring:
//
//	force = (target - current) * Strength
//	velocity = (velocity + force) * Damping
//	current += velocity
type FrameSpring struct {
	Strength float64
	Damping  float64
}

func (f FrameSpring) Step(s *State) {
	force := (s.Target - s.Current) * f.Strength
	s.Velocity = (s.Velocity + force) * f.Damping
	s.Current += s.Velocity
}

// Validate reports whether the linear system is contracting. Damping must be
// in (0,1) and the strength must keep both eigenvalues inside the unit
// circle.
func (f FrameSpring) Validate() error {
	if !(f.Damping > 0 && f.Damping < 1) {
		return fmt.Errorf("%w: damping %v not in (0,1)", ErrUnstableSpring, f.Damping)
	}
	limit := 2 * (1 + f.Damping) / f.Damping
	if !(f.Strength > 0 && f.Strength < limit) {
		return fmt.Errorf("%w: strength %v not in (0,%v)", ErrUnstableSpring, f.Strength, limit)
	}
	return nil
}

// Harmonic steps the angle with harmonica's analytic damped spring. It keeps
// State.Velocity in radians per step so both integrators are interchangeable.
type Harmonic struct {
	spring harmonica.Spring
}

// NewHarmonic builds a spring with the given angular frequency and damping
// ratio (1 is critically damped).
func NewHarmonic(frequency, ratio float64) (*Harmonic, error) {
	if frequency <= 0 || ratio <= 0 {
		return nil, fmt.Errorf("%w: frequency %v ratio %v", ErrUnstableSpring, frequency, ratio)
	}
	return &Harmonic{spring: harmonica.NewSpring(harmonica.FPS(FrameRate), frequency, ratio)}, nil
}

func (h *Harmonic) Step(s *State) {
	pos, vel := h.spring.Update(s.Current, s.Velocity*FrameRate, s.Target)
	s.Velocity = vel / FrameRate
	s.Current = pos
}

// Rotation owns the hexagon yaw. It is not safe for concurrent use; the
// engine drives it from the frame callback only.
type Rotation struct {
	state       State
	integrator  Integrator
	accumulator time.Duration
}

// NewRotation wraps an integrator. FrameSpring parameters are validated.
func NewRotation(integrator Integrator) (*Rotation, error) {
	switch in := integrator.(type) {
	case nil:
		return nil, fmt.Errorf("%w: no integrator", ErrUnstableSpring)
	case FrameSpring:
		if err := in.Validate(); err != nil {
			return nil, err
		}
	case *FrameSpring:
		if err := in.Validate(); err != nil {
			return nil, err
		}
	}
	return &Rotation{integrator: integrator}, nil
}

// NewFrameRotation is NewRotation with a FrameSpring.
func NewFrameRotation(strength, damping float64) (*Rotation, error) {
	return NewRotation(FrameSpring{Strength: strength, Damping: damping})
}

// TargetAngle maps a section index to the yaw that shows its face.
func TargetAngle(section int) float64 {
	return float64(section) * FaceAngle
}

// Update retargets from the input and advances the spring by as many whole
// steps as dt covers. A zero dt never changes the angle. It returns the
// number of steps taken.
func (r *Rotation) Update(dt time.Duration, in Input) int {
	if !in.ReducedMotion && !in.Interacting {
		r.state.Target = TargetAngle(in.Section)
	}

	if dt > 0 {
		r.accumulator += dt
	}
	steps := 0
	for r.accumulator >= FrameStep {
		r.accumulator -= FrameStep
		if steps == MaxCatchUpSteps {
			// Drop the backlog rather than stall the frame.
			r.accumulator = 0
			break
		}
		r.integrator.Step(&r.state)
		steps++
	}
	r.guard()
	return steps
}

// Nudge moves the angle directly, as a drag would. The spring is parked at
// the new angle so it does not pull against the user.
func (r *Rotation) Nudge(delta float64) {
	if delta == 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	r.state.Current += delta
	r.state.Target = r.state.Current
	r.state.Velocity = 0
}

func (r *Rotation) guard() {
	if isFinite(r.state.Current) && isFinite(r.state.Velocity) {
		return
	}
	if !isFinite(r.state.Target) {
		r.state.Target = 0
	}
	r.state.Current = r.state.Target
	r.state.Velocity = 0
}

// Current is the yaw to apply to the hexagon group.
func (r *Rotation) Current() float64 { return r.state.Current }

// State returns a copy of the spring state.
func (r *Rotation) State() State { return r.state }

// Settled reports whether the spring is at rest on its target.
func (r *Rotation) Settled() bool {
	return math.Abs(r.state.Velocity) < SettleVelocity &&
		math.Abs(r.state.Target-r.state.Current) < 1e-3
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
