package renderer

import "github.com/go-gl/mathgl/mgl32"

// DefaultMaterial provides a basic material to fall back on
var DefaultMaterial = Material{
	Name:         "default",
	DiffuseColor: mgl32.Vec3{1.0, 1.0, 1.0},
	Shininess:    32.0,
	Alpha:        1.0,
	PointSize:    1.0,
}

type Material struct {
	// HOT DATA - Accessed every render call for shading calculations
	DiffuseColor      mgl32.Vec3
	EmissiveColor     mgl32.Vec3
	EmissiveIntensity float32
	Shininess         float32
	Alpha             float32 // 0 = transparent, 1 = opaque
	PointSize         float32 // pixels, point meshes only
	Wireframe         bool

	// COLD DATA - identification only
	Name string
}

// NewMaterial returns a copy of DefaultMaterial with the given colour.
func NewMaterial(name string, r, g, b float32) *Material {
	m := DefaultMaterial
	m.Name = name
	m.DiffuseColor = mgl32.Vec3{r, g, b}
	return &m
}

func (m *Material) SetEmissive(r, g, b, intensity float32) {
	m.EmissiveColor = mgl32.Vec3{r, g, b}
	m.EmissiveIntensity = intensity
}

func (m *Material) SetAlpha(alpha float32) {
	m.Alpha = mgl32.Clamp(alpha, 0, 1)
}

// Transparent reports whether the material needs blending.
func (m *Material) Transparent() bool {
	return m.Alpha < 1
}
