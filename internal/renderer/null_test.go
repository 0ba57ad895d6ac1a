package renderer

import (
	"errors"
	"testing"
)

func TestNullRendererInitRequiresSurface(t *testing.T) {
	r := NewNullRenderer()

	if err := r.Init(nil); !errors.Is(err, ErrNoSurface) {
		t.Errorf("Expected ErrNoSurface, got %v", err)
	}
	if err := r.Init(StaticSurface{Width: 640, Height: 480}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if w, h := r.Viewport(); w != 640 || h != 480 {
		t.Errorf("Expected 640x480 viewport, got %dx%d", w, h)
	}
}

func TestNullRendererUploadRelease(t *testing.T) {
	r := NewNullRenderer()
	mesh := NewMesh("box", BoxGeometry(1, 1, 1), nil)

	_ = r.Upload(mesh)
	_ = r.Upload(mesh)

	if r.Uploads() != 1 || r.LiveMeshes() != 1 {
		t.Errorf("Double upload should be a no-op, uploads=%d live=%d", r.Uploads(), r.LiveMeshes())
	}
	if mesh.VAO == 0 {
		t.Error("Upload should assign handles")
	}

	r.Release(mesh)
	r.Release(mesh)

	if r.Releases() != 1 || r.LiveMeshes() != 0 {
		t.Errorf("Double release should be a no-op, releases=%d live=%d", r.Releases(), r.LiveMeshes())
	}
	if mesh.VAO != 0 {
		t.Error("Release should clear handles")
	}
}

func TestNullRendererCleanupReleasesEverything(t *testing.T) {
	r := NewNullRenderer()
	for i := 0; i < 3; i++ {
		_ = r.Upload(NewMesh("box", BoxGeometry(1, 1, 1), nil))
	}

	r.Cleanup()

	if r.LiveMeshes() != 0 || !r.CleanedUp() {
		t.Error("Cleanup should release all meshes")
	}
}
