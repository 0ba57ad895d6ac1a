// camera.go
package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Camera struct {
	// HOT DATA - Accessed every frame for view/projection calculations
	Position   mgl32.Vec3 // Camera position in world space
	Front      mgl32.Vec3 // Forward direction vector
	Up         mgl32.Vec3 // Up direction vector
	Right      mgl32.Vec3 // Right direction vector
	Projection mgl32.Mat4 // Projection matrix

	// COLD DATA - Configuration, changed on resize or setup only
	WorldUp     mgl32.Vec3 // World up vector (usually (0,1,0))
	Fov         float32    // Vertical field of view in degrees
	Near        float32    // Near clipping plane
	Far         float32    // Far clipping plane
	AspectRatio float32    // Screen aspect ratio (width / height)
}

// NewDefaultCamera returns a camera looking down -Z from (0,0,10).
func NewDefaultCamera(width, height int32) *Camera {
	aspect := float32(16.0 / 9.0)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	camera := Camera{
		Position:    mgl32.Vec3{0, 0, 10},
		Front:       mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Fov:         75.0,
		Near:        0.1,
		Far:         1000.0,
		AspectRatio: aspect,
	}
	camera.Right = camera.Front.Cross(camera.WorldUp).Normalize()
	camera.UpdateProjection()
	return &camera
}

func (c *Camera) UpdateProjection() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.AspectRatio, c.Near, c.Far)
}

// SetAspectRatio ignores non-positive or non-finite ratios, which show up
// when a surface reports a zero dimension mid-layout.
func (c *Camera) SetAspectRatio(aspectRatio float32) bool {
	if !(aspectRatio > 0) || aspectRatio > 1e6 {
		return false
	}
	c.AspectRatio = aspectRatio
	c.UpdateProjection()
	return true
}

// LookAt aims the camera at target. Looking at its own position is a no-op.
func (c *Camera) LookAt(target mgl32.Vec3) {
	direction := target.Sub(c.Position)
	if direction.Len() < 1e-6 {
		return
	}
	c.Front = direction.Normalize()
	right := c.Front.Cross(c.WorldUp)
	if right.Len() < 1e-6 {
		// Looking straight up or down, keep the previous right vector.
		right = c.Right
	}
	c.Right = right.Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return c.Projection
}

func (c *Camera) GetViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.GetViewMatrix())
}
