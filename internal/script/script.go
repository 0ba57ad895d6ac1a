// Package script drives a scene manager from a list of timed host inputs,
// for headless simulation.
package script

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"HexScene/internal/engine"
	"HexScene/internal/logger"

	"go.uber.org/zap"
)

// Step is one scripted host input, "<time>:<key>=<value>".
type Step struct {
	At    time.Duration
	Key   string
	Value string
}

func ParseStep(s string) (Step, error) {
	at, action, ok := strings.Cut(s, ":")
	if !ok {
		return Step{}, fmt.Errorf("step %q: want <time>:<key>=<value>", s)
	}
	d, err := time.ParseDuration(at)
	if err != nil {
		return Step{}, fmt.Errorf("step %q: %w", s, err)
	}
	if d < 0 {
		return Step{}, fmt.Errorf("step %q: negative time", s)
	}
	key, value, ok := strings.Cut(action, "=")
	if !ok || key == "" {
		return Step{}, fmt.Errorf("step %q: want <key>=<value>", s)
	}
	step := Step{At: d, Key: key, Value: value}
	if err := step.check(); err != nil {
		return Step{}, fmt.Errorf("step %q: %w", s, err)
	}
	return step, nil
}

func Parse(specs []string) ([]Step, error) {
	steps := make([]Step, 0, len(specs))
	for _, s := range specs {
		step, err := ParseStep(s)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })
	return steps, nil
}

func (s Step) check() error {
	return s.Apply(nil)
}

// Apply feeds the step to m. A nil m only validates the value.
func (s Step) Apply(m *engine.SceneManager) error {
	switch s.Key {
	case "section":
		i, err := strconv.Atoi(s.Value)
		if err != nil {
			return err
		}
		if m != nil {
			m.SetSectionIndex(i)
		}
	case "context":
		if m != nil {
			m.SetContext(s.Value)
		}
	case "reduced", "interacting":
		b, err := strconv.ParseBool(s.Value)
		if err != nil {
			return err
		}
		if m != nil {
			if s.Key == "reduced" {
				m.SetReducedMotion(b)
			} else {
				m.SetInteracting(b)
			}
		}
	case "nudge":
		f, err := strconv.ParseFloat(s.Value, 64)
		if err != nil {
			return err
		}
		if m != nil {
			m.Nudge(f)
		}
	case "resize":
		ws, hs, ok := strings.Cut(s.Value, "x")
		w, errW := strconv.Atoi(ws)
		h, errH := strconv.Atoi(hs)
		if !ok || errW != nil || errH != nil {
			return fmt.Errorf("resize wants <w>x<h>, got %q", s.Value)
		}
		if m != nil {
			m.Resize(w, h)
		}
	default:
		return fmt.Errorf("unknown key %q", s.Key)
	}
	return nil
}

// Frames wraps a frame source, feeding due steps to the manager before each
// frame and reporting once per interval.
type Frames struct {
	src      engine.FrameSource
	m        *engine.SceneManager
	steps    []Step
	interval time.Duration
	nextLog  time.Duration

	// A report falls due on a frame but is written on the following Next
	// call, once the host has ticked that frame.
	due    time.Duration
	hasDue bool
	report func(*engine.SceneManager, time.Duration)
}

// NewFrames plays steps, which must be sorted by time, against m. A
// non-positive interval disables reports.
func NewFrames(src engine.FrameSource, m *engine.SceneManager, steps []Step, interval time.Duration) *Frames {
	return &Frames{src: src, m: m, steps: steps, interval: interval, nextLog: interval, report: Report}
}

// Pending is the number of steps not yet applied.
func (f *Frames) Pending() int {
	return len(f.steps)
}

// Next applies the steps due at the returned frame time. Reports describe
// the state after a frame's tick, so each is written one call late.
func (f *Frames) Next(ctx context.Context) (time.Duration, bool) {
	if f.hasDue {
		f.report(f.m, f.due)
		f.hasDue = false
	}
	now, ok := f.src.Next(ctx)
	if !ok {
		return 0, false
	}
	if f.interval > 0 && now >= f.nextLog {
		f.due, f.hasDue = now, true
		f.nextLog += f.interval
	}
	for len(f.steps) > 0 && f.steps[0].At <= now {
		step := f.steps[0]
		f.steps = f.steps[1:]
		logger.Log.Info("Script step", zap.Duration("at", step.At), zap.String("key", step.Key), zap.String("value", step.Value))
		if err := step.Apply(f.m); err != nil {
			logger.Log.Error("Script step failed", zap.Error(err))
		}
	}
	return now, true
}

// Report logs the manager state at now.
func Report(m *engine.SceneManager, now time.Duration) {
	cam := m.CameraPosition()
	logger.Log.Info("Frame",
		zap.Duration("t", now),
		zap.String("state", m.State().String()),
		zap.String("context", string(m.ActiveContext())),
		zap.String("target", string(m.TargetContext())),
		zap.Float64("yaw", m.Yaw()),
		zap.Float64("yaw_deg", m.Yaw()*180/math.Pi),
		zap.Float32("camera_x", cam[0]),
		zap.Float32("camera_y", cam[1]),
		zap.Float32("camera_z", cam[2]),
		zap.Bool("transitioning", m.IsTransitioning()))
}

