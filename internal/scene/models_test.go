package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelPosition(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{-4, 0, -5}, ModelPosition(0))
	p := ModelPosition(2)
	assert.Equal(t, float32(4), p[0])
	assert.InDelta(t, 2*math.Sin(2), p[1], 1e-6)
	assert.Equal(t, float32(-1), p[2])
}

func TestBuildModelsEmpty(t *testing.T) {
	assert.Empty(t, BuildModels(nil))
	assert.Empty(t, BuildModels([]ModelTag{}))
}

func TestBuildModelsPlacesByIndex(t *testing.T) {
	meshes := BuildModels([]ModelTag{Cube, Sphere, Torus})

	require.Len(t, meshes, 3)
	for i, m := range meshes {
		assert.Equal(t, ModelPosition(i), m.Position)
		assert.NotZero(t, m.VertexCount())
	}
	assert.Equal(t, "model:cube:0", meshes[0].Name)
	assert.Equal(t, "model:torus:2", meshes[2].Name)
}

func TestBuildModelsUnknownTagFallsBack(t *testing.T) {
	meshes := BuildModels([]ModelTag{Cube, "teapot"})

	require.Len(t, meshes, 2)
	assert.Equal(t, "model:fallback:1", meshes[1].Name)
	assert.Equal(t, string(FallbackModel), meshes[1].Material.Name)
	assert.NotEmpty(t, meshes[1].Indices)
}

func TestBuildModelsDoesNotShareMaterials(t *testing.T) {
	meshes := BuildModels([]ModelTag{Cube, Cube})

	require.Len(t, meshes, 2)
	assert.NotSame(t, meshes[0].Material, meshes[1].Material)
	assert.NotSame(t, &meshes[0].Positions[0], &meshes[1].Positions[0])
}
