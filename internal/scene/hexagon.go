package scene

import (
	"fmt"
	"math"

	"HexScene/internal/physics"
	"HexScene/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// HexApothem is the distance from the hexagon axis to a face.
	HexApothem = 2.0
	HexHeight  = 2.4

	panelThickness = 0.08

	// Emissive levels for the face highlight.
	HighlightIntensity = 0.6
	IdleIntensity      = 0.05
)

var faceColors = [physics.FaceCount]mgl32.Vec3{
	{0.25, 0.5, 1},
	{0.95, 0.3, 0.7},
	{0.2, 0.85, 0.65},
	{1, 0.7, 0.2},
	{0.6, 0.4, 1},
	{0.2, 0.8, 1},
}

// Hexagon is the navigation structure: six face panels around a prism core,
// all parented to one group whose yaw is driven by the rotation spring.
type Hexagon struct {
	Group *renderer.Group
	Faces [physics.FaceCount]*renderer.Mesh
	Core  *renderer.Mesh
}

// FaceAzimuth is where face i sits around the Y axis. A group yaw of
// i*pi/3 brings it to +Z, facing the camera.
func FaceAzimuth(i int) float32 {
	return -float32(i) * math.Pi / 3
}

func NewHexagon() *Hexagon {
	h := &Hexagon{Group: renderer.NewGroup("hexagon")}

	// Side length of a regular hexagon with this apothem.
	side := float32(2 * HexApothem / math.Sqrt(3))
	for i := range h.Faces {
		c := faceColors[i]
		mat := renderer.NewMaterial(fmt.Sprintf("face-%d", i), c[0], c[1], c[2])
		mat.SetEmissive(c[0], c[1], c[2], IdleIntensity)
		mat.SetAlpha(0.85)

		panel := renderer.NewMesh(fmt.Sprintf("hex:face:%d", i), renderer.BoxGeometry(side*0.96, HexHeight, panelThickness), mat)
		theta := FaceAzimuth(i)
		panel.SetPosition(
			HexApothem*float32(math.Sin(float64(theta))),
			0,
			HexApothem*float32(math.Cos(float64(theta))),
		)
		panel.SetRotation(0, theta, 0)
		h.Group.Add(panel)
		h.Faces[i] = panel
	}

	coreMat := renderer.NewMaterial("hex-core", 0.12, 0.13, 0.18)
	coreMat.Shininess = 96
	circumradius := float32(HexApothem/math.Cos(math.Pi/6)) * 0.85
	h.Core = renderer.NewMesh("hex:core", renderer.CylinderGeometry(circumradius, circumradius, HexHeight*0.9, physics.FaceCount, true), coreMat)
	// Cylinder corners start at +Z; turn half a face so a flat side faces
	// each panel.
	h.Core.SetRotation(0, math.Pi/6, 0)
	h.Group.Add(h.Core)
	return h
}

// SetYaw applies the spring angle.
func (h *Hexagon) SetYaw(angle float64) {
	h.Group.SetYaw(float32(angle))
}

// Highlight lights face section and dims the others. pulse is added to the
// highlighted face only.
func (h *Hexagon) Highlight(section int, pulse float32) {
	section = ClampSection(section)
	for i, face := range h.Faces {
		intensity := float32(IdleIntensity)
		if i == section {
			intensity = HighlightIntensity + pulse
		}
		face.Material.EmissiveIntensity = intensity
	}
}

// Meshes returns the panels followed by the core.
func (h *Hexagon) Meshes() []*renderer.Mesh {
	out := make([]*renderer.Mesh, 0, len(h.Faces)+1)
	out = append(out, h.Faces[:]...)
	return append(out, h.Core)
}
