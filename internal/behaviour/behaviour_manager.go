// Package behaviour runs per-frame scripts attached to the live scene.
package behaviour

import "time"

// Frame is the clock and navigation state a behaviour sees on one tick.
type Frame struct {
	Elapsed       time.Duration // since mount
	Delta         time.Duration // since the previous tick; 0 on a repeated tick
	Section       int
	ReducedMotion bool
}

// Behaviour is a time-varying effect. Update must be a function of the frame
// rather than of how often it was called, so repeating a tick is harmless.
type Behaviour interface {
	Start()
	Update(frame Frame)
}

// Func adapts a plain function to Behaviour. Func values are not
// comparable, so pass a *Func if it will be removed later.
type Func func(frame Frame)

func (f Func) Start()             {}
func (f Func) Update(frame Frame) { f(frame) }

type behaviourWrapper struct {
	behaviour Behaviour
	started   bool
}

type Manager struct {
	behaviours []behaviourWrapper
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Add(behaviour Behaviour) {
	m.behaviours = append(m.behaviours, behaviourWrapper{behaviour: behaviour})
}

func (m *Manager) Remove(behaviour Behaviour) {
	for i := range m.behaviours {
		if m.behaviours[i].behaviour == behaviour {
			// Order matters for layered effects, so shift instead of swap.
			m.behaviours = append(m.behaviours[:i], m.behaviours[i+1:]...)
			return
		}
	}
}

// Clear removes all behaviours from the manager
func (m *Manager) Clear() {
	clear(m.behaviours)
	m.behaviours = m.behaviours[:0]
}

func (m *Manager) Len() int {
	return len(m.behaviours)
}

// UpdateAll starts behaviours added since the last call, then updates every
// behaviour in insertion order.
func (m *Manager) UpdateAll(frame Frame) {
	for i := range m.behaviours {
		if !m.behaviours[i].started {
			m.behaviours[i].behaviour.Start()
			m.behaviours[i].started = true
		}
		m.behaviours[i].behaviour.Update(frame)
	}
}
