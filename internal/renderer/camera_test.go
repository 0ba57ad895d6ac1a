package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewDefaultCamera(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	if cam == nil {
		t.Fatal("NewDefaultCamera returned nil")
	}

	if cam.Position == (mgl32.Vec3{0, 0, 0}) {
		t.Error("Camera position should not be at origin")
	}

	if math.Abs(float64(cam.AspectRatio)-800.0/600.0) > 1e-6 {
		t.Errorf("Expected aspect 4:3, got %f", cam.AspectRatio)
	}
}

func TestCameraZeroSizeKeepsDefaultAspect(t *testing.T) {
	cam := NewDefaultCamera(0, 0)

	if cam.AspectRatio <= 0 {
		t.Error("Aspect ratio should stay positive for a zero sized surface")
	}
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 5}
	cam.LookAt(mgl32.Vec3{})

	view := cam.GetViewMatrix()

	if view.At(3, 3) != 1.0 {
		t.Error("View matrix should be valid (w component = 1)")
	}
}

func TestCameraGetProjectionMatrix(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	proj := cam.GetProjectionMatrix()

	if proj.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}
}

func TestCameraGetViewProjection(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	vp := cam.GetViewProjection()

	zero := mgl32.Mat4{}
	if vp == zero {
		t.Error("ViewProjection should not be zero matrix")
	}
}

func TestCameraLookAtOrigin(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Position = mgl32.Vec3{3, 4, 0}

	cam.LookAt(mgl32.Vec3{})

	want := mgl32.Vec3{-0.6, -0.8, 0}
	if !vecNear(cam.Front, want, 1e-5) {
		t.Errorf("Expected front %v, got %v", want, cam.Front)
	}
	if math.Abs(float64(cam.Front.Len())-1.0) > 1e-5 {
		t.Errorf("Front vector should be normalized, length=%f", cam.Front.Len())
	}
	if math.Abs(float64(cam.Up.Dot(cam.Front))) > 1e-5 {
		t.Error("Up should be orthogonal to front")
	}
}

func TestCameraLookAtSelfIsNoop(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	front := cam.Front

	cam.LookAt(cam.Position)

	if cam.Front != front {
		t.Error("Looking at own position should not change the camera")
	}
}

func TestCameraSetAspectRatioRejectsZero(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	if cam.SetAspectRatio(0) {
		t.Error("Zero aspect ratio should be rejected")
	}
	if cam.SetAspectRatio(float32(math.Inf(1))) {
		t.Error("Infinite aspect ratio should be rejected")
	}
	if !cam.SetAspectRatio(2) || cam.AspectRatio != 2 {
		t.Error("Valid aspect ratio should be applied")
	}
}
