package scene

import (
	"errors"
	"testing"
	"time"

	"HexScene/internal/behaviour"
	"HexScene/internal/physics"
	"HexScene/internal/renderer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func featuresGraph(t *testing.T) *Graph {
	t.Helper()
	d, ok := defaultRegistry(t).Resolve(Features)
	require.True(t, ok)
	return BuildGraph(Features, d, GraphOptions{ParticleCount: 24, ParticleSeed: 5})
}

func TestBuildGraphContents(t *testing.T) {
	g := featuresGraph(t)

	assert.Equal(t, Dynamic, g.Rig.Atmosphere)
	assert.Len(t, g.Models, 3)
	require.NotNil(t, g.Particles)
	assert.Len(t, g.Meshes(), physics.FaceCount+1+3+1)
	assert.Equal(t, 3, g.Behaviours.Len())
}

func TestBuildGraphFallbackHasNoModels(t *testing.T) {
	g := BuildGraph("missing", Fallback, GraphOptions{})

	assert.Equal(t, DefaultAtmosphere, g.Rig.Atmosphere)
	assert.Empty(t, g.Models)
	assert.Nil(t, g.Particles)
	assert.Len(t, g.Meshes(), physics.FaceCount+1)
	assert.Equal(t, 1, g.Behaviours.Len())
}

func TestBuildGraphWireframe(t *testing.T) {
	d, ok := defaultRegistry(t).Resolve(Features)
	require.True(t, ok)

	g := BuildGraph(Features, d, GraphOptions{ParticleCount: 8, Wireframe: true})

	for _, mesh := range g.Hexagon.Meshes() {
		assert.True(t, mesh.Material.Wireframe, mesh.Name)
	}
	for _, mesh := range g.Models {
		assert.True(t, mesh.Material.Wireframe, mesh.Name)
	}
	assert.False(t, g.Particles.Mesh.Material.Wireframe, "points have no edges")

	solid := featuresGraph(t)
	for _, mesh := range solid.Meshes() {
		assert.False(t, mesh.Material.Wireframe, mesh.Name)
	}
}

func TestGraphUploadAndDispose(t *testing.T) {
	r := renderer.NewNullRenderer()
	g := featuresGraph(t)

	require.NoError(t, g.Upload(r))
	assert.Equal(t, len(g.Meshes()), r.LiveMeshes())

	g.Dispose(r)
	assert.Zero(t, r.LiveMeshes())
	assert.True(t, g.Disposed())
	assert.Zero(t, g.Behaviours.Len())

	releases := r.Releases()
	g.Dispose(r)
	assert.Equal(t, releases, r.Releases(), "second dispose must not release again")
}

type failingRenderer struct {
	*renderer.NullRenderer
	failAt int
	calls  int
}

func (f *failingRenderer) Upload(mesh *renderer.Mesh) error {
	f.calls++
	if f.calls == f.failAt {
		return errors.New("out of memory")
	}
	return f.NullRenderer.Upload(mesh)
}

func TestGraphUploadFailureReleasesPartialWork(t *testing.T) {
	r := &failingRenderer{NullRenderer: renderer.NewNullRenderer(), failAt: 4}
	g := featuresGraph(t)

	err := g.Upload(r)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of memory")
	assert.Zero(t, r.LiveMeshes())
}

func TestGraphUpdateAppliesYawAndHighlight(t *testing.T) {
	g := featuresGraph(t)

	g.Update(behaviour.Frame{Elapsed: time.Second, Section: 2}, physics.TargetAngle(2))

	p := g.Hexagon.Faces[2].WorldPosition()
	assert.InDelta(t, HexApothem, p[2], 1e-4)
	assert.Greater(t, g.Hexagon.Faces[2].Material.EmissiveIntensity, g.Hexagon.Faces[0].Material.EmissiveIntensity)
}

func TestGraphRenderFrame(t *testing.T) {
	g := featuresGraph(t)
	cam := renderer.NewDefaultCamera(800, 600)

	f := g.RenderFrame(cam, time.Second)

	assert.Same(t, cam, f.Camera)
	assert.Equal(t, g.Rig.Background, f.ClearColor)
	assert.Len(t, f.Lights, 4)
	assert.Len(t, f.Meshes, len(g.Meshes()))
}

func TestGraphsDoNotShareMeshes(t *testing.T) {
	a := featuresGraph(t)
	b := featuresGraph(t)
	seen := map[*renderer.Mesh]bool{}
	for _, m := range a.Meshes() {
		seen[m] = true
	}
	for _, m := range b.Meshes() {
		assert.False(t, seen[m], "mesh %s shared between graphs", m.Name)
		assert.NotSame(t, a.Hexagon.Faces[0].Material, m.Material)
	}
}
