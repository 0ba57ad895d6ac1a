package scene

import (
	"fmt"
	"math"

	"HexScene/internal/logger"
	"HexScene/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// FallbackModel names the placeholder built for unknown tags.
const FallbackModel ModelTag = "fallback"

type catalogEntry struct {
	geometry func() renderer.Geometry
	color    mgl32.Vec3
}

var catalog = map[ModelTag]catalogEntry{
	Cube:       {func() renderer.Geometry { return renderer.BoxGeometry(1.2, 1.2, 1.2) }, mgl32.Vec3{0.3, 0.55, 1}},
	Sphere:     {func() renderer.Geometry { return renderer.SphereGeometry(0.8, 24, 16) }, mgl32.Vec3{0.9, 0.35, 0.6}},
	Torus:      {func() renderer.Geometry { return renderer.TorusGeometry(0.7, 0.25, 16, 32) }, mgl32.Vec3{1, 0.7, 0.2}},
	Octahedron: {func() renderer.Geometry { return renderer.OctahedronGeometry(0.9) }, mgl32.Vec3{0.3, 0.9, 0.6}},
	Cone:       {func() renderer.Geometry { return renderer.ConeGeometry(0.7, 1.4, 24) }, mgl32.Vec3{0.95, 0.45, 0.3}},
	Cylinder:   {func() renderer.Geometry { return renderer.CylinderGeometry(0.5, 0.5, 1.4, 24, false) }, mgl32.Vec3{0.6, 0.5, 1}},
}

var fallbackEntry = catalogEntry{
	geometry: func() renderer.Geometry { return renderer.IcosahedronGeometry(0.8) },
	color:    mgl32.Vec3{0.6, 0.6, 0.65},
}

// ModelPosition is the placement of the i-th decorative model:
// ((i-1)*4, sin(i)*2, -5+i*2).
func ModelPosition(i int) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(i-1) * 4,
		float32(math.Sin(float64(i))) * 2,
		-5 + float32(i)*2,
	}
}

// BuildModels creates one mesh per tag. Every mesh has its own geometry and
// material. Unknown tags get the fallback model.
func BuildModels(tags []ModelTag) []*renderer.Mesh {
	meshes := make([]*renderer.Mesh, 0, len(tags))
	for i, tag := range tags {
		entry, ok := catalog[tag]
		name := tag
		if !ok {
			logger.Log.Debug("Unknown model tag, using fallback", zap.String("tag", string(tag)))
			entry, name = fallbackEntry, FallbackModel
		}
		mat := renderer.NewMaterial(string(name), entry.color[0], entry.color[1], entry.color[2])
		mat.Shininess = 48
		mesh := renderer.NewMesh(fmt.Sprintf("model:%s:%d", name, i), entry.geometry(), mat)
		p := ModelPosition(i)
		mesh.SetPosition(p[0], p[1], p[2])
		meshes = append(meshes, mesh)
	}
	return meshes
}
