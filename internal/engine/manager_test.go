package engine

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"HexScene/internal/camera"
	"HexScene/internal/config"
	"HexScene/internal/physics"
	"HexScene/internal/renderer"
	"HexScene/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = physics.FrameStep

var surface = renderer.StaticSurface{Width: 800, Height: 600}

func newManager(t *testing.T, mutate func(*config.EngineConfig)) (*SceneManager, *renderer.NullRenderer) {
	t.Helper()
	cfg := config.Default()
	cfg.ParticleCount = 16
	if mutate != nil {
		mutate(&cfg)
	}
	r := renderer.NewNullRenderer()
	m, err := NewSceneManager(Options{Config: cfg, Renderer: r})
	require.NoError(t, err)
	return m, r
}

func mounted(t *testing.T, mutate func(*config.EngineConfig)) (*SceneManager, *renderer.NullRenderer) {
	t.Helper()
	m, r := newManager(t, mutate)
	require.NoError(t, m.Mount(surface, 0))
	return m, r
}

// tickUntil ticks once per frame after from, finishing with a tick at
// exactly until.
func tickUntil(m *SceneManager, from, until time.Duration) time.Duration {
	now := from
	for now+frame < until {
		now += frame
		m.Tick(now)
	}
	m.Tick(until)
	return until
}

func target(t *testing.T, ctx scene.Context) mgl32.Vec3 {
	t.Helper()
	reg, err := scene.DefaultRegistry()
	require.NoError(t, err)
	d, ok := reg.Lookup(ctx)
	require.True(t, ok)
	return d.CameraTarget
}

func TestHeroToSectionThreeToFeatures(t *testing.T) {
	m, _ := mounted(t, nil)
	var completed []scene.Context
	m.OnTransitionComplete(func(ctx scene.Context) { completed = append(completed, ctx) })

	// Mount places the camera without easing.
	assert.Equal(t, target(t, scene.Hero), m.CameraPosition())
	assert.Equal(t, target(t, scene.Hero), m.ViewPosition())
	assert.Equal(t, Active, m.State())
	assert.Equal(t, scene.Professional, m.Graph().Rig.Atmosphere)

	m.SetSectionIndex(3)
	m.SetReducedMotion(false)
	now := tickUntil(m, 0, 3*time.Second)

	assert.InDelta(t, math.Pi, m.Yaw(), 1e-3)
	assert.Equal(t, target(t, scene.Hero), m.CameraPosition(), "section change must not move the camera")
	assert.Equal(t, Active, m.State())
	assert.False(t, m.IsTransitioning())

	m.SetContext(string(scene.Features))
	start := now + frame
	m.Tick(start)
	require.Equal(t, Transitioning, m.State())
	require.True(t, m.IsTransitioning())

	end := target(t, scene.Features)
	prevDist := m.CameraPosition().Sub(end).Len()
	for now = start + frame; now < start+camera.DefaultDuration; now += frame {
		m.Tick(now)
		assert.Equal(t, scene.Professional, m.Graph().Rig.Atmosphere, "lighting swapped before arrival at %v", now-start)
		assert.Equal(t, Transitioning, m.State())
		dist := m.CameraPosition().Sub(end).Len()
		assert.LessOrEqual(t, dist, prevDist+1e-5)
		prevDist = dist
	}
	assert.Empty(t, completed)

	m.Tick(start + camera.DefaultDuration)

	assert.Equal(t, end, m.CameraPosition())
	assert.Equal(t, Active, m.State())
	assert.False(t, m.IsTransitioning())
	assert.Equal(t, scene.Dynamic, m.Graph().Rig.Atmosphere)
	assert.Equal(t, scene.Features, m.ActiveContext())
	assert.Equal(t, []scene.Context{scene.Features}, completed)
}

func TestMountWithoutSurfaceIsFatal(t *testing.T) {
	m, r := newManager(t, nil)

	err := m.Mount(nil, 0)

	assert.ErrorIs(t, err, ErrSurfaceUnavailable)
	assert.Equal(t, Idle, m.State())
	assert.Zero(t, r.LiveMeshes())

	m.Tick(time.Second)
	assert.Zero(t, r.Frames(), "an idle manager must not render")
}

type brokenRenderer struct {
	*renderer.NullRenderer
}

var errNoContext = errors.New("no GL context")

func (brokenRenderer) Init(renderer.Surface) error { return errNoContext }

func TestMountRendererFailureIsWrapped(t *testing.T) {
	m, err := NewSceneManager(Options{Config: config.Default(), Renderer: brokenRenderer{renderer.NewNullRenderer()}})
	require.NoError(t, err)

	err = m.Mount(surface, 0)

	assert.ErrorIs(t, err, ErrSurfaceUnavailable)
	assert.ErrorIs(t, err, errNoContext)
	assert.Equal(t, Idle, m.State())
}

func TestMountTwice(t *testing.T) {
	m, _ := mounted(t, nil)
	assert.ErrorIs(t, m.Mount(surface, 0), ErrAlreadyMounted)

	m.Unmount()
	assert.ErrorIs(t, m.Mount(surface, 0), ErrDisposed)
}

func TestNewSceneManagerRejectsUnstableSpring(t *testing.T) {
	_, err := NewSceneManager(Options{
		Config:   config.EngineConfig{Damping: 1.2},
		Renderer: renderer.NewNullRenderer(),
	})
	assert.ErrorIs(t, err, physics.ErrUnstableSpring)
}

func TestTickIsIdempotentAtZeroDelta(t *testing.T) {
	m, r := mounted(t, nil)
	m.SetSectionIndex(2)
	m.SetContext(string(scene.Solutions))
	now := tickUntil(m, 0, 400*time.Millisecond)
	require.True(t, m.IsTransitioning())

	rot, cam, view := m.Rotation(), m.CameraPosition(), m.ViewPosition()
	glow := m.Graph().Hexagon.Faces[2].Material.EmissiveIntensity
	particles := append([]float32(nil), m.Graph().Particles.Mesh.Positions...)

	m.Tick(now)

	assert.Equal(t, rot, m.Rotation())
	assert.Equal(t, cam, m.CameraPosition())
	assert.Equal(t, view, m.ViewPosition())
	assert.Equal(t, glow, m.Graph().Hexagon.Faces[2].Material.EmissiveIntensity)
	assert.Equal(t, particles, m.Graph().Particles.Mesh.Positions)
	assert.Equal(t, Transitioning, m.State())
	assert.NotZero(t, r.Frames())
}

func TestRetargetStartsFromInterpolatedPosition(t *testing.T) {
	m, _ := mounted(t, nil)
	m.SetContext(string(scene.Features))
	m.Tick(frame)
	first, ok := m.Transition()
	require.True(t, ok)

	half := first.StartTime + first.Duration/2
	m.Tick(half)
	mid := m.CameraPosition()
	require.Equal(t, first.At(half), mid)
	require.NotEqual(t, first.Start, mid)

	m.SetContext(string(scene.Pricing))
	m.Tick(half)

	second, ok := m.Transition()
	require.True(t, ok)
	assert.Equal(t, mid, second.Start)
	assert.Equal(t, target(t, scene.Pricing), second.End)
	assert.Equal(t, half, second.StartTime)
	assert.Equal(t, mid, m.CameraPosition(), "retarget must not jump")

	tickUntil(m, half, half+camera.DefaultDuration)
	assert.Equal(t, target(t, scene.Pricing), m.CameraPosition())
	assert.Equal(t, scene.Elegant, m.Graph().Rig.Atmosphere)
}

func TestLatestContextBeforeTickWins(t *testing.T) {
	m, _ := mounted(t, nil)
	m.SetContext(string(scene.Features))
	m.SetContext(string(scene.About))
	m.Tick(frame)

	tr, ok := m.Transition()
	require.True(t, ok)
	assert.Equal(t, target(t, scene.About), tr.End)
	assert.Equal(t, scene.About, m.TargetContext())
}

func TestSameContextIsNoop(t *testing.T) {
	m, _ := mounted(t, nil)
	m.SetContext(string(scene.Hero))
	m.Tick(frame)

	assert.Equal(t, Active, m.State())
	assert.False(t, m.IsTransitioning())
}

func TestUnknownContextFallsBack(t *testing.T) {
	m, _ := mounted(t, nil)
	m.SetContext("blog-post")
	m.Tick(frame)
	require.Equal(t, Transitioning, m.State())

	tickUntil(m, frame, frame+camera.DefaultDuration)

	assert.Equal(t, Active, m.State())
	assert.Equal(t, scene.DefaultCameraTarget, m.CameraPosition())
	assert.Equal(t, scene.DefaultAtmosphere, m.Graph().Rig.Atmosphere)
	assert.Empty(t, m.Graph().Models)
	assert.Equal(t, scene.Context("blog-post"), m.ActiveContext())
}

func TestReducedMotion(t *testing.T) {
	m, _ := mounted(t, func(c *config.EngineConfig) { c.ReducedMotion = true })
	m.SetSectionIndex(4)
	m.SetContext(string(scene.Contact))
	m.Tick(frame)

	tr, ok := m.Transition()
	require.True(t, ok)
	assert.Equal(t, camera.ReducedMotionDuration, tr.Duration)

	tickUntil(m, frame, frame+camera.ReducedMotionDuration)
	assert.Equal(t, Active, m.State())
	assert.Equal(t, m.CameraPosition(), m.ViewPosition(), "no breathing under reduced motion")
	assert.Zero(t, m.Yaw(), "no auto-rotation under reduced motion")
}

func TestBreathingOffset(t *testing.T) {
	m, _ := mounted(t, nil)
	m.Tick(5 * time.Second)

	base, view := m.CameraPosition(), m.ViewPosition()
	assert.Equal(t, base[0], view[0])
	assert.Equal(t, base[2], view[2])
	assert.InDelta(t, math.Sin(1.5)*0.15, view[1]-base[1], 1e-5)
}

func TestResize(t *testing.T) {
	m, r := mounted(t, nil)
	aspect := m.Camera().AspectRatio

	m.Resize(0, 600)
	m.Tick(frame)
	w, h := r.Viewport()
	assert.Equal(t, int32(800), w)
	assert.Equal(t, int32(600), h)
	assert.Equal(t, aspect, m.Camera().AspectRatio)

	rot := m.Rotation()
	m.Resize(1024, 512)
	m.Tick(frame)
	w, h = r.Viewport()
	assert.Equal(t, int32(1024), w)
	assert.Equal(t, int32(512), h)
	assert.Equal(t, float32(2), m.Camera().AspectRatio)
	assert.Equal(t, rot, m.Rotation(), "resize must not touch the spring")
}

func TestUnmountMidTransition(t *testing.T) {
	m, r := mounted(t, nil)
	m.SetContext(string(scene.Features))
	now := tickUntil(m, 0, 700*time.Millisecond)
	require.True(t, m.IsTransitioning())
	require.NotZero(t, r.LiveMeshes())

	m.Unmount()

	assert.Equal(t, Disposed, m.State())
	assert.False(t, m.IsTransitioning())
	assert.Zero(t, r.LiveMeshes())
	assert.True(t, r.CleanedUp())
	assert.Equal(t, r.Uploads(), r.Releases())

	frames := r.Frames()
	m.Unmount()
	m.Tick(now + frame)
	assert.Equal(t, frames, r.Frames())
}

func TestGraphRebuildReleasesPrevious(t *testing.T) {
	m, r := mounted(t, nil)
	old := m.Graph()
	m.SetContext(string(scene.Features))
	m.Tick(frame)
	tickUntil(m, frame, frame+camera.DefaultDuration)

	assert.True(t, old.Disposed())
	assert.NotSame(t, old, m.Graph())
	assert.Equal(t, len(m.Graph().Meshes()), r.LiveMeshes())
	for _, mesh := range old.Meshes() {
		assert.False(t, r.IsLive(mesh))
	}
}

func TestRebuildOnStart(t *testing.T) {
	m, _ := mounted(t, func(c *config.EngineConfig) { c.RebuildOn = config.RebuildOnStart })
	m.SetContext(string(scene.Features))
	m.Tick(frame)

	assert.Equal(t, Transitioning, m.State())
	assert.Equal(t, scene.Dynamic, m.Graph().Rig.Atmosphere)

	built := m.Graph()
	tickUntil(m, frame, frame+camera.DefaultDuration)
	assert.Same(t, built, m.Graph(), "completion must not rebuild again")
}

func TestWireframeSurvivesRebuild(t *testing.T) {
	m, _ := mounted(t, func(c *config.EngineConfig) { c.Wireframe = true })
	assert.True(t, m.Graph().Hexagon.Core.Material.Wireframe)

	m.SetContext(string(scene.Features))
	m.Tick(frame)
	tickUntil(m, frame, frame+camera.DefaultDuration)

	require.Equal(t, scene.Features, m.Graph().Context)
	for _, mesh := range m.Graph().Models {
		assert.True(t, mesh.Material.Wireframe, mesh.Name)
	}
}

func TestSectionIndexIsClamped(t *testing.T) {
	m, _ := mounted(t, nil)
	m.SetSectionIndex(9)
	m.Tick(frame)

	assert.Equal(t, physics.TargetAngle(physics.FaceCount-1), m.Rotation().Target)
	assert.Greater(t, m.Graph().Hexagon.Faces[5].Material.EmissiveIntensity, m.Graph().Hexagon.Faces[0].Material.EmissiveIntensity)
}

func TestNudgeWhileInteracting(t *testing.T) {
	m, _ := mounted(t, nil)
	m.SetSectionIndex(1)
	m.SetInteracting(true)
	m.Nudge(0.2)
	m.Nudge(0.1)
	now := tickUntil(m, 0, time.Second)

	assert.InDelta(t, 0.3, m.Yaw(), 1e-9)

	m.SetInteracting(false)
	tickUntil(m, now, now+3*time.Second)
	assert.InDelta(t, physics.TargetAngle(1), m.Yaw(), 1e-3)
}

func TestYawIsContinuous(t *testing.T) {
	m, _ := mounted(t, nil)
	now := time.Duration(0)
	prev := m.Yaw()
	for _, section := range []int{5, 0, 3, 1, 4} {
		m.SetSectionIndex(section)
		for i := 0; i < 20; i++ {
			now += frame
			m.Tick(now)
			assert.Less(t, math.Abs(m.Yaw()-prev), 0.15*physics.TargetAngle(5))
			prev = m.Yaw()
		}
	}
}

func TestRunWithSyntheticFrames(t *testing.T) {
	m, r := mounted(t, nil)
	frames := r.Frames()

	err := m.Run(context.Background(), &SyntheticFrames{Start: frame, Step: frame, Count: 60})

	require.NoError(t, err)
	assert.Equal(t, frames+60, r.Frames())
	assert.Equal(t, Active, m.State())
}

func TestRunRequiresMount(t *testing.T) {
	m, _ := newManager(t, nil)
	assert.ErrorIs(t, m.Run(context.Background(), &SyntheticFrames{Count: 1}), ErrNotMounted)
}

func TestRunStopsOnCancel(t *testing.T) {
	m, _ := mounted(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Run(ctx, &SyntheticFrames{Step: frame, Count: 10})
	assert.ErrorIs(t, err, context.Canceled)
}

type chanSource chan time.Duration

func (c chanSource) Next(ctx context.Context) (time.Duration, bool) {
	select {
	case <-ctx.Done():
		return 0, false
	case now, ok := <-c:
		return now, ok
	}
}

func TestUnmountStopsRun(t *testing.T) {
	m, r := mounted(t, nil)
	src := make(chanSource)
	result := make(chan error, 1)
	go func() { result <- m.Run(context.Background(), src) }()

	src <- frame
	src <- 2 * frame
	m.Unmount()

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Unmount")
	}
	assert.Equal(t, Disposed, m.State())
	assert.Zero(t, r.LiveMeshes())
}
