package renderer

import (
	"sync/atomic"
)

// NullRenderer is a headless backend. It tracks GPU-side bookkeeping without
// drawing, which is enough for simulations and tests.
type NullRenderer struct {
	width, height int32
	initialized   bool
	cleanedUp     bool
	nextHandle    uint32
	live          map[*Mesh]struct{}

	// Counters are atomic so a host goroutine can poll them.
	frames   atomic.Int64
	uploads  atomic.Int64
	releases atomic.Int64

	// LastFrame is a shallow copy of the most recent frame.
	LastFrame Frame
	// LastCamera is a copy of the camera used for LastFrame.
	LastCamera Camera
}

func NewNullRenderer() *NullRenderer {
	return &NullRenderer{live: make(map[*Mesh]struct{})}
}

func (r *NullRenderer) Init(surface Surface) error {
	if surface == nil {
		return ErrNoSurface
	}
	r.width, r.height = clampSize(surface.FramebufferSize())
	r.initialized = true
	r.cleanedUp = false
	return nil
}

func (r *NullRenderer) Upload(mesh *Mesh) error {
	if _, ok := r.live[mesh]; ok {
		return nil
	}
	r.nextHandle++
	mesh.VAO = r.nextHandle
	mesh.VBO = r.nextHandle
	if len(mesh.Indices) > 0 {
		mesh.EBO = r.nextHandle
	}
	mesh.Dirty = false
	r.live[mesh] = struct{}{}
	r.uploads.Add(1)
	return nil
}

func (r *NullRenderer) Release(mesh *Mesh) {
	if _, ok := r.live[mesh]; !ok {
		return
	}
	delete(r.live, mesh)
	mesh.VAO, mesh.VBO, mesh.EBO = 0, 0, 0
	r.releases.Add(1)
}

func (r *NullRenderer) Render(frame *Frame) {
	if frame == nil {
		return
	}
	for _, mesh := range frame.Meshes {
		mesh.Dirty = false
	}
	r.LastFrame = *frame
	if frame.Camera != nil {
		r.LastCamera = *frame.Camera
	}
	r.frames.Add(1)
}

func (r *NullRenderer) UpdateViewport(width, height int32) {
	r.width, r.height = width, height
}

func (r *NullRenderer) Cleanup() {
	for mesh := range r.live {
		r.Release(mesh)
	}
	r.cleanedUp = true
	r.initialized = false
}

// Viewport is the last size passed to Init or UpdateViewport.
func (r *NullRenderer) Viewport() (int32, int32) { return r.width, r.height }

// LiveMeshes is the number of uploaded, unreleased meshes.
func (r *NullRenderer) LiveMeshes() int { return len(r.live) }

// IsLive reports whether mesh is currently uploaded.
func (r *NullRenderer) IsLive(mesh *Mesh) bool {
	_, ok := r.live[mesh]
	return ok
}

func (r *NullRenderer) Frames() int64   { return r.frames.Load() }
func (r *NullRenderer) Uploads() int64  { return r.uploads.Load() }
func (r *NullRenderer) Releases() int64 { return r.releases.Load() }
func (r *NullRenderer) CleanedUp() bool { return r.cleanedUp }

// StaticSurface is a fixed size Surface for headless rendering.
type StaticSurface struct {
	Width, Height int
}

func (s StaticSurface) FramebufferSize() (int, int) { return s.Width, s.Height }

func clampSize(width, height int) (int32, int32) {
	return int32(max(width, 0)), int32(max(height, 0))
}
