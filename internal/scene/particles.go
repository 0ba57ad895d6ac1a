package scene

import (
	"math"
	"math/rand"
	"time"

	"HexScene/internal/renderer"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	particleInnerRadius = 9.0
	particleOuterRadius = 22.0
	// DriftAmplitude is the largest displacement of a mote from its rest
	// position.
	DriftAmplitude = 0.8
	driftSpeed     = 0.15
)

// Particles is the ambient mote field. Rest positions and noise are seeded,
// so two fields with the same seed drift identically.
type Particles struct {
	Mesh    *renderer.Mesh
	rest    []mgl32.Vec3
	noise   *perlin.Perlin
	drifted bool
}

func NewParticles(count int, seed int64) *Particles {
	rng := rand.New(rand.NewSource(seed))
	rest := make([]mgl32.Vec3, count)
	for i := range rest {
		// Uniform direction on the sphere, radius in the shell.
		z := rng.Float64()*2 - 1
		phi := rng.Float64() * 2 * math.Pi
		r := particleInnerRadius + rng.Float64()*(particleOuterRadius-particleInnerRadius)
		s := math.Sqrt(1 - z*z)
		rest[i] = mgl32.Vec3{float32(r * s * math.Cos(phi)), float32(r * z), float32(r * s * math.Sin(phi))}
	}

	mat := renderer.NewMaterial("particles", 0.8, 0.85, 1)
	mat.PointSize = 2.5
	mat.SetAlpha(0.6)
	return &Particles{
		Mesh:  renderer.NewMesh("particles", renderer.PointsGeometry(rest), mat),
		rest:  rest,
		noise: perlin.NewPerlin(2, 2, 3, seed),
	}
}

// Rest is the undisplaced position of mote i.
func (p *Particles) Rest(i int) mgl32.Vec3 {
	return p.rest[i]
}

func (p *Particles) Len() int {
	return len(p.rest)
}

// Drift places every mote at its noise offset for the given time. Positions
// depend only on elapsed, not on how often Drift is called.
func (p *Particles) Drift(elapsed time.Duration) {
	t := elapsed.Seconds() * driftSpeed
	for i, rest := range p.rest {
		fi := float64(i) * 0.61
		offset := mgl32.Vec3{
			float32(p.noise.Noise2D(fi, t)),
			float32(p.noise.Noise2D(fi+31.7, t)),
			float32(p.noise.Noise2D(fi+67.3, t)),
		}.Mul(DriftAmplitude)
		p.Mesh.SetVertex(i, rest.Add(offset))
	}
	p.drifted = true
}

// Settle puts every mote back at rest. It only touches the mesh if it has
// drifted.
func (p *Particles) Settle() {
	if !p.drifted {
		return
	}
	for i, rest := range p.rest {
		p.Mesh.SetVertex(i, rest)
	}
	p.drifted = false
}
