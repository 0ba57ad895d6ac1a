package scene

import (
	"fmt"
	"time"

	"HexScene/internal/behaviour"
	"HexScene/internal/renderer"
)

// GraphOptions sizes the parts of a graph that are not in the descriptor.
type GraphOptions struct {
	ParticleCount int
	ParticleSeed  int64
	// Wireframe draws the hexagon and models as edges. Particles are
	// points and are not affected.
	Wireframe bool
}

// Graph is everything live for one context. It owns its meshes and their
// materials; nothing is shared with the graph it replaces.
type Graph struct {
	Context    Context
	Descriptor Descriptor
	Rig        Rig
	Hexagon    *Hexagon
	Models     []*renderer.Mesh
	Particles  *Particles
	Behaviours *behaviour.Manager

	meshes   []*renderer.Mesh
	disposed bool
}

// BuildGraph assembles a graph from a resolved descriptor. It creates no GPU
// resources; call Upload for that.
func BuildGraph(ctx Context, d Descriptor, opts GraphOptions) *Graph {
	g := &Graph{
		Context:    ctx,
		Descriptor: d,
		Rig:        BuildLighting(d.Atmosphere),
		Hexagon:    NewHexagon(),
		Models:     BuildModels(d.Models),
		Behaviours: behaviour.NewManager(),
	}
	g.meshes = append(g.meshes, g.Hexagon.Meshes()...)
	g.meshes = append(g.meshes, g.Models...)
	if opts.Wireframe {
		for _, mesh := range g.meshes {
			mesh.Material.Wireframe = true
		}
	}
	if opts.ParticleCount > 0 {
		g.Particles = NewParticles(opts.ParticleCount, opts.ParticleSeed)
		g.meshes = append(g.meshes, g.Particles.Mesh)
	}

	g.Behaviours.Add(&FaceHighlight{Hexagon: g.Hexagon})
	if len(g.Models) > 0 {
		g.Behaviours.Add(&DecorationSpin{Models: g.Models})
	}
	if g.Particles != nil {
		g.Behaviours.Add(&ParticleDrift{Particles: g.Particles})
	}
	return g
}

// Meshes is every mesh in draw order: hexagon, models, particles.
func (g *Graph) Meshes() []*renderer.Mesh {
	return g.meshes
}

// Upload creates GPU resources for every mesh. On failure whatever was
// uploaded is released again.
func (g *Graph) Upload(r renderer.Render) error {
	for i, mesh := range g.meshes {
		if err := r.Upload(mesh); err != nil {
			for _, done := range g.meshes[:i] {
				r.Release(done)
			}
			return fmt.Errorf("scene: upload %s: %w", mesh.Name, err)
		}
	}
	return nil
}

// Update applies the hexagon yaw and runs the graph's behaviours.
func (g *Graph) Update(frame behaviour.Frame, yaw float64) {
	g.Hexagon.SetYaw(yaw)
	g.Behaviours.UpdateAll(frame)
}

// RenderFrame describes the graph as seen from cam.
func (g *Graph) RenderFrame(cam *renderer.Camera, elapsed time.Duration) *renderer.Frame {
	return &renderer.Frame{
		Camera:     cam,
		Lights:     g.Rig.Lights,
		Meshes:     g.meshes,
		ClearColor: g.Rig.Background,
		Elapsed:    elapsed,
	}
}

// Dispose releases every mesh. Calling it again does nothing.
func (g *Graph) Dispose(r renderer.Render) {
	if g.disposed {
		return
	}
	for _, mesh := range g.meshes {
		r.Release(mesh)
	}
	g.Behaviours.Clear()
	g.disposed = true
}

func (g *Graph) Disposed() bool {
	return g.disposed
}
