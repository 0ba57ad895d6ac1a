package renderer

import (
	"errors"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrNoSurface = errors.New("renderer: no drawing surface")

// Surface is whatever the renderer draws into. Implementations must have
// made their drawing context current before Init is called.
type Surface interface {
	FramebufferSize() (width, height int)
}

// Frame is everything one draw call needs. It is rebuilt by the engine every
// tick and must not be retained by the renderer.
type Frame struct {
	Camera     *Camera
	Lights     []Light
	Meshes     []*Mesh
	ClearColor mgl32.Vec3
	Elapsed    time.Duration
}

// Render is implemented by drawing backends. A Render is owned by exactly one
// engine and is not safe for concurrent use.
type Render interface {
	Init(surface Surface) error
	// Upload creates GPU resources for a mesh. Uploading twice is a no-op.
	Upload(mesh *Mesh) error
	// Release frees a mesh's GPU resources. Releasing an unknown mesh is a
	// no-op.
	Release(mesh *Mesh)
	Render(frame *Frame)
	UpdateViewport(width, height int32)
	Cleanup()
}
