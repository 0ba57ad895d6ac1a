// Package engine runs the navigation scene: it owns the scene graph, the
// rotation spring and the camera transition, and advances them once per
// display refresh.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"HexScene/internal/behaviour"
	"HexScene/internal/camera"
	"HexScene/internal/config"
	"HexScene/internal/logger"
	"HexScene/internal/physics"
	"HexScene/internal/renderer"
	"HexScene/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var (
	ErrSurfaceUnavailable = errors.New("engine: drawing surface unavailable")
	ErrAlreadyMounted     = errors.New("engine: already mounted")
	ErrNotMounted         = errors.New("engine: not mounted")
	ErrDisposed           = errors.New("engine: disposed")
)

var origin = mgl32.Vec3{0, 0, 0}

type Options struct {
	Config config.EngineConfig
	// Registry defaults to the embedded scene table.
	Registry *scene.Registry
	Renderer renderer.Render
}

// pending is written by the setters from any goroutine and consumed at the
// start of the next tick.
type pending struct {
	context    scene.Context
	contextSet bool

	section     int
	reduced     bool
	interacting bool

	width, height int
	resized       bool

	nudge float64
}

// SceneManager is the root of the scene engine. Setters, IsTransitioning and
// State may be called from any goroutine. Everything else belongs to the
// goroutine driving Tick.
type SceneManager struct {
	cfg         config.EngineConfig
	registry    *scene.Registry
	render      renderer.Render
	rotation    *physics.Rotation
	transitions *camera.Controller
	camera      *renderer.Camera
	graph       *scene.Graph

	state         atomic.Int32
	transitioning atomic.Bool

	mu      sync.Mutex
	pending pending
	cancel  context.CancelFunc
	done    chan struct{}

	input         physics.Input
	targetContext scene.Context
	target        scene.Descriptor
	cameraBase    mgl32.Vec3
	mountedAt     time.Duration
	lastTick      time.Duration

	onComplete []func(scene.Context)
}

func NewSceneManager(opts Options) (*SceneManager, error) {
	if opts.Renderer == nil {
		return nil, errors.New("engine: no renderer")
	}
	cfg := opts.Config
	cfg.Normalize()

	registry := opts.Registry
	if registry == nil {
		var err error
		if registry, err = scene.DefaultRegistry(); err != nil {
			return nil, err
		}
	}

	rotation, err := newRotation(cfg)
	if err != nil {
		return nil, err
	}

	m := &SceneManager{
		cfg:         cfg,
		registry:    registry,
		render:      opts.Renderer,
		rotation:    rotation,
		transitions: camera.NewController(),
	}
	m.pending = pending{
		context:    scene.Context(cfg.StartContext),
		contextSet: true,
		section:    scene.ClampSection(cfg.StartSection),
		reduced:    cfg.ReducedMotion,
	}
	return m, nil
}

func newRotation(cfg config.EngineConfig) (*physics.Rotation, error) {
	if cfg.Integrator == config.IntegratorHarmonic {
		h, err := physics.NewHarmonic(cfg.HarmonicFrequency, 1)
		if err != nil {
			return nil, err
		}
		return physics.NewRotation(h)
	}
	return physics.NewFrameRotation(cfg.SpringStrength, cfg.Damping)
}

// Mount initializes the renderer on surface, builds the graph for the
// starting context and places the camera at its target without easing.
// A surface failure is returned wrapped in ErrSurfaceUnavailable and the
// manager stays Idle.
func (m *SceneManager) Mount(surface renderer.Surface, now time.Duration) error {
	switch m.State() {
	case Disposed:
		return ErrDisposed
	case Active, Transitioning:
		return ErrAlreadyMounted
	}
	if surface == nil {
		return fmt.Errorf("%w: no surface", ErrSurfaceUnavailable)
	}
	if err := m.render.Init(surface); err != nil {
		logger.Log.Error("Could not initialize renderer", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}

	w, h := surface.FramebufferSize()
	m.camera = renderer.NewDefaultCamera(int32(w), int32(h))

	p := m.takePending()
	m.input = physics.Input{Section: p.section, ReducedMotion: p.reduced, Interacting: p.interacting}
	m.targetContext = p.context
	m.target, _ = m.registry.Resolve(p.context)
	m.cameraBase = m.target.CameraTarget
	m.camera.Position = m.cameraBase
	m.camera.LookAt(origin)

	if err := m.rebuildGraph(m.targetContext, m.target); err != nil {
		m.render.Cleanup()
		return fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}

	m.mountedAt = now
	m.lastTick = now
	m.state.Store(int32(Active))
	logger.Log.Info("Scene mounted",
		zap.String("context", string(m.targetContext)),
		zap.Int("width", w), zap.Int("height", h))
	return nil
}

// SetContext requests a scene change. Only the latest request before a tick
// is applied.
func (m *SceneManager) SetContext(ctx string) {
	m.mu.Lock()
	m.pending.context = scene.Context(ctx)
	m.pending.contextSet = true
	m.mu.Unlock()
}

// SetSectionIndex selects the hexagon face. Out of range indices are
// clamped.
func (m *SceneManager) SetSectionIndex(i int) {
	m.mu.Lock()
	m.pending.section = scene.ClampSection(i)
	m.mu.Unlock()
}

func (m *SceneManager) SetReducedMotion(reduced bool) {
	m.mu.Lock()
	m.pending.reduced = reduced
	m.mu.Unlock()
}

// SetInteracting marks a drag in progress. The spring stops retargeting
// while it is set.
func (m *SceneManager) SetInteracting(interacting bool) {
	m.mu.Lock()
	m.pending.interacting = interacting
	m.mu.Unlock()
}

// Resize records a new framebuffer size for the next tick.
func (m *SceneManager) Resize(width, height int) {
	m.mu.Lock()
	m.pending.width, m.pending.height = width, height
	m.pending.resized = true
	m.mu.Unlock()
}

// Nudge turns the hexagon by delta radians, as a drag does. Nudges between
// two ticks add up.
func (m *SceneManager) Nudge(delta float64) {
	m.mu.Lock()
	m.pending.nudge += delta
	m.mu.Unlock()
}

// OnTransitionComplete registers fn to run on the frame goroutine whenever
// a camera transition finishes and the new graph is live.
func (m *SceneManager) OnTransitionComplete(fn func(scene.Context)) {
	m.onComplete = append(m.onComplete, fn)
}

func (m *SceneManager) takePending() pending {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.pending
	m.pending.contextSet = false
	m.pending.resized = false
	m.pending.nudge = 0
	return p
}

// Tick advances the scene to now and renders one frame. now is the host's
// refresh timestamp; repeating a timestamp changes nothing.
func (m *SceneManager) Tick(now time.Duration) {
	switch m.State() {
	case Idle, Disposed:
		return
	}

	p := m.takePending()
	m.input = physics.Input{Section: p.section, ReducedMotion: p.reduced, Interacting: p.interacting}
	if p.resized {
		m.applyResize(p.width, p.height)
	}
	if p.nudge != 0 {
		m.rotation.Nudge(p.nudge)
	}
	if p.contextSet {
		m.applyContext(p.context, now)
	}

	var dt time.Duration
	if now > m.lastTick {
		dt = now - m.lastTick
		m.lastTick = now
	}
	m.rotation.Update(dt, m.input)

	if m.transitions.Active() {
		pos, done := m.transitions.Advance(now)
		m.cameraBase = pos
		if done {
			m.completeTransition()
		}
	}

	elapsed := max(now-m.mountedAt, 0)
	amplitude := m.cfg.BreathingAmplitude
	if m.input.ReducedMotion {
		amplitude = 0
	}
	m.camera.Position = m.cameraBase.Add(mgl32.Vec3{0, camera.BreathingOffset(elapsed, amplitude), 0})
	m.camera.LookAt(origin)

	if m.graph == nil {
		m.render.Render(&renderer.Frame{Camera: m.camera, Elapsed: elapsed})
		return
	}
	m.graph.Update(behaviour.Frame{
		Elapsed:       elapsed,
		Delta:         dt,
		Section:       m.input.Section,
		ReducedMotion: m.input.ReducedMotion,
	}, m.rotation.Current())
	m.render.Render(m.graph.RenderFrame(m.camera, elapsed))
}

func (m *SceneManager) applyResize(width, height int) {
	if width <= 0 || height <= 0 {
		logger.Log.Debug("Skipping zero-size resize", zap.Int("width", width), zap.Int("height", height))
		return
	}
	m.camera.SetAspectRatio(float32(width) / float32(height))
	m.render.UpdateViewport(int32(width), int32(height))
}

func (m *SceneManager) applyContext(ctx scene.Context, now time.Duration) {
	if ctx == m.targetContext {
		return
	}
	d, ok := m.registry.Resolve(ctx)

	// Start from wherever the camera is right now, mid-transition or not.
	from, moving := m.transitions.Peek(now)
	if !moving {
		from = m.cameraBase
	}
	m.transitions.Start(from, d.CameraTarget, now, m.input.ReducedMotion)
	m.targetContext = ctx
	m.target = d
	m.state.Store(int32(Transitioning))
	m.transitioning.Store(true)
	logger.Log.Info("Scene transition started",
		zap.String("context", string(ctx)),
		zap.Bool("known", ok),
		zap.Bool("retarget", moving),
		zap.Duration("duration", camera.Duration(m.input.ReducedMotion)))

	if m.cfg.RebuildOn == config.RebuildOnStart {
		m.rebuildOrLog(ctx, d)
	}
}

func (m *SceneManager) completeTransition() {
	if m.graph == nil || m.graph.Context != m.targetContext {
		m.rebuildOrLog(m.targetContext, m.target)
	}
	m.state.Store(int32(Active))
	m.transitioning.Store(false)
	logger.Log.Info("Scene transition complete", zap.String("context", string(m.targetContext)))
	for _, fn := range m.onComplete {
		fn(m.targetContext)
	}
}

// rebuildGraph disposes the live graph before creating its replacement, so
// at most one graph holds GPU resources.
func (m *SceneManager) rebuildGraph(ctx scene.Context, d scene.Descriptor) error {
	if m.graph != nil {
		m.graph.Dispose(m.render)
		m.graph = nil
	}
	g := scene.BuildGraph(ctx, d, scene.GraphOptions{
		ParticleCount: m.cfg.ParticleCount,
		ParticleSeed:  m.cfg.ParticleSeed,
		Wireframe:     m.cfg.Wireframe,
	})
	if err := g.Upload(m.render); err != nil {
		return err
	}
	m.graph = g
	logger.Log.Debug("Scene graph built",
		zap.String("context", string(ctx)),
		zap.String("atmosphere", string(g.Rig.Atmosphere)),
		zap.Int("meshes", len(g.Meshes())))
	return nil
}

func (m *SceneManager) rebuildOrLog(ctx scene.Context, d scene.Descriptor) {
	if err := m.rebuildGraph(ctx, d); err != nil {
		logger.Log.Error("Could not build scene graph", zap.String("context", string(ctx)), zap.Error(err))
	}
}

// Run ticks the manager for every frame src delivers, until src is
// exhausted, ctx is cancelled or Unmount is called. It returns ctx's error
// if ctx ended the loop.
func (m *SceneManager) Run(ctx context.Context, src FrameSource) error {
	switch m.State() {
	case Idle:
		return ErrNotMounted
	case Disposed:
		return ErrDisposed
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.mu.Lock()
	m.cancel, m.done = cancel, done
	m.mu.Unlock()
	defer func() {
		cancel()
		m.mu.Lock()
		m.cancel, m.done = nil, nil
		m.mu.Unlock()
		close(done)
	}()

	for {
		now, ok := src.Next(runCtx)
		if !ok || runCtx.Err() != nil {
			break
		}
		m.Tick(now)
	}
	return ctx.Err()
}

// Unmount stops Run, discards any transition and releases the graph and the
// renderer. It is safe to call more than once, and from another goroutine
// while Run is active, but not from an OnTransitionComplete callback.
func (m *SceneManager) Unmount() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}

	prev := State(m.state.Swap(int32(Disposed)))
	if prev == Disposed {
		return
	}
	m.transitions.Cancel()
	m.transitioning.Store(false)
	if prev == Idle {
		return
	}
	if m.graph != nil {
		m.graph.Dispose(m.render)
		m.graph = nil
	}
	m.render.Cleanup()
	logger.Log.Info("Scene unmounted", zap.String("state", prev.String()))
}

func (m *SceneManager) State() State {
	return State(m.state.Load())
}

// IsTransitioning reports whether a camera transition is running. Hosts poll
// it to hold navigation input during camera moves.
func (m *SceneManager) IsTransitioning() bool {
	return m.transitioning.Load()
}

// CameraPosition is the camera's base pose, without the breathing offset.
func (m *SceneManager) CameraPosition() mgl32.Vec3 {
	return m.cameraBase
}

// ViewPosition is where the camera was rendered from on the last tick.
func (m *SceneManager) ViewPosition() mgl32.Vec3 {
	if m.camera == nil {
		return m.cameraBase
	}
	return m.camera.Position
}

func (m *SceneManager) Camera() *renderer.Camera {
	return m.camera
}

func (m *SceneManager) Yaw() float64 {
	return m.rotation.Current()
}

func (m *SceneManager) Rotation() physics.State {
	return m.rotation.State()
}

// ActiveContext is the context of the live graph.
func (m *SceneManager) ActiveContext() scene.Context {
	if m.graph == nil {
		return ""
	}
	return m.graph.Context
}

// TargetContext is the context the camera is at or moving to.
func (m *SceneManager) TargetContext() scene.Context {
	return m.targetContext
}

func (m *SceneManager) Graph() *scene.Graph {
	return m.graph
}

// Transition returns the running camera transition, if any.
func (m *SceneManager) Transition() (camera.Transition, bool) {
	return m.transitions.Current()
}
