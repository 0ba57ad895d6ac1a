package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Primitive int

const (
	Triangles Primitive = iota
	Points
)

// FloatsPerVertex is the interleaved layout: position (3) + normal (3).
const FloatsPerVertex = 6

type Mesh struct {
	// HOT DATA - Accessed every frame in render loop
	ModelMatrix mgl32.Mat4 // Local TRS matrix
	Position    mgl32.Vec3 // Position relative to the parent group
	Scale       mgl32.Vec3 // Scale factors
	Rotation    mgl32.Quat // Rotation quaternion
	Material    *Material  // Material properties pointer
	Parent      *Group     // Optional parent transform
	Visible     bool
	VAO         uint32 // Vertex Array Object
	VBO         uint32 // Vertex Buffer Object
	EBO         uint32 // Element Buffer Object
	Dirty       bool   // Vertex data changed since the last upload

	// COLD DATA - Initialization only or rarely accessed
	Name      string
	Primitive Primitive
	Positions []float32 // x,y,z per vertex
	Normals   []float32 // x,y,z per vertex
	Indices   []uint32  // triangle indices; empty for point meshes
}

// NewMesh wraps a geometry. A nil material gets a copy of DefaultMaterial so
// meshes never share materials by accident.
func NewMesh(name string, geometry Geometry, material *Material) *Mesh {
	if material == nil {
		m := DefaultMaterial
		material = &m
	}
	mesh := &Mesh{
		Name:      name,
		Primitive: geometry.Primitive,
		Positions: geometry.Positions,
		Normals:   geometry.Normals,
		Indices:   geometry.Indices,
		Material:  material,
		Position:  mgl32.Vec3{0, 0, 0},
		Rotation:  mgl32.QuatIdent(),
		Scale:     mgl32.Vec3{1, 1, 1},
		Visible:   true,
	}
	mesh.updateModelMatrix()
	return mesh
}

// SetPosition sets the position of the mesh
func (m *Mesh) SetPosition(x, y, z float32) {
	m.Position = mgl32.Vec3{x, y, z}
	m.updateModelMatrix()
}

// SetRotation sets an absolute rotation from Euler angles in radians,
// applied X then Y then Z.
func (m *Mesh) SetRotation(x, y, z float32) {
	m.Rotation = mgl32.AnglesToQuat(x, y, z, mgl32.XYZ)
	m.updateModelMatrix()
}

func (m *Mesh) updateModelMatrix() {
	// Matrices are multiplied right-to-left: T * R * S transforms vertices as: scale first, then rotate, then translate
	scaleMatrix := mgl32.Scale3D(m.Scale[0], m.Scale[1], m.Scale[2])
	rotationMatrix := m.Rotation.Normalize().Mat4()
	translationMatrix := mgl32.Translate3D(m.Position[0], m.Position[1], m.Position[2])
	m.ModelMatrix = translationMatrix.Mul4(rotationMatrix).Mul4(scaleMatrix)
}

// WorldMatrix is the parent's matrix times the local one.
func (m *Mesh) WorldMatrix() mgl32.Mat4 {
	if m.Parent == nil {
		return m.ModelMatrix
	}
	return m.Parent.Matrix().Mul4(m.ModelMatrix)
}

// WorldPosition is the mesh origin in world space.
func (m *Mesh) WorldPosition() mgl32.Vec3 {
	return m.WorldMatrix().Col(3).Vec3()
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// SetVertex moves one vertex and flags the mesh for re-upload.
func (m *Mesh) SetVertex(i int, v mgl32.Vec3) {
	if i < 0 || i >= m.VertexCount() {
		return
	}
	m.Positions[i*3] = v[0]
	m.Positions[i*3+1] = v[1]
	m.Positions[i*3+2] = v[2]
	m.Dirty = true
}

// Interleaved returns position+normal pairs as uploaded to the GPU.
func (m *Mesh) Interleaved() []float32 {
	n := m.VertexCount()
	data := make([]float32, 0, n*FloatsPerVertex)
	for i := 0; i < n; i++ {
		data = append(data, m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2])
		if len(m.Normals) >= (i+1)*3 {
			data = append(data, m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2])
		} else {
			data = append(data, 0, 1, 0)
		}
	}
	return data
}

// Group is a parent transform shared by several meshes, such as the
// hexagon faces.
type Group struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Children []*Mesh
}

func NewGroup(name string) *Group {
	return &Group{
		Name:     name,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Add parents mesh to the group.
func (g *Group) Add(mesh *Mesh) {
	mesh.Parent = g
	g.Children = append(g.Children, mesh)
}

// SetYaw sets the rotation about the world Y axis, in radians.
func (g *Group) SetYaw(angle float32) {
	g.Rotation = mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0})
}

func (g *Group) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(g.Position[0], g.Position[1], g.Position[2]).
		Mul4(g.Rotation.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(g.Scale[0], g.Scale[1], g.Scale[2]))
}
