package scene

import (
	"math"

	"HexScene/internal/behaviour"
	"HexScene/internal/renderer"
)

const (
	pulseAmplitude = 0.15
	pulseRate      = 2.0 // rad/s
	spinRate       = 0.35
)

// FaceHighlight keeps the current section's face lit. Without reduced
// motion the lit face pulses gently.
type FaceHighlight struct {
	Hexagon *Hexagon
}

func (f *FaceHighlight) Start() {}

func (f *FaceHighlight) Update(frame behaviour.Frame) {
	var pulse float32
	if !frame.ReducedMotion {
		pulse = pulseAmplitude * float32(math.Sin(frame.Elapsed.Seconds()*pulseRate))
	}
	f.Hexagon.Highlight(frame.Section, pulse)
}

// DecorationSpin turns each decorative model slowly about its own axes.
// Under reduced motion the models hold their current pose.
type DecorationSpin struct {
	Models []*renderer.Mesh
}

func (d *DecorationSpin) Start() {}

func (d *DecorationSpin) Update(frame behaviour.Frame) {
	if frame.ReducedMotion {
		return
	}
	t := frame.Elapsed.Seconds() * spinRate
	for i, m := range d.Models {
		phase := float64(i) * 0.9
		m.SetRotation(float32(0.5*t+phase), float32(t+phase), 0)
	}
}

// ParticleDrift moves the mote field with noise, or parks it under reduced
// motion.
type ParticleDrift struct {
	Particles *Particles
}

func (p *ParticleDrift) Start() {
	p.Particles.Settle()
}

func (p *ParticleDrift) Update(frame behaviour.Frame) {
	if frame.ReducedMotion {
		p.Particles.Settle()
		return
	}
	p.Particles.Drift(frame.Elapsed)
}
