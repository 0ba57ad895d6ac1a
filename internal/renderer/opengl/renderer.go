// Package opengl draws the navigation scene with an OpenGL 4.1 core context.
package opengl

import (
	"HexScene/internal/logger"
	"HexScene/internal/renderer"
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

type Renderer struct {
	shader   *Shader
	uniforms *UniformCache
	meshes   map[*renderer.Mesh]struct{}
	width    int32
	height   int32
	// scratch slice reused every frame for transparent sorting
	ordered []*renderer.Mesh
}

func NewRenderer() *Renderer {
	return &Renderer{meshes: make(map[*renderer.Mesh]struct{})}
}

// Init expects the surface's GL context to be current on this thread.
func (rend *Renderer) Init(surface renderer.Surface) error {
	if surface == nil {
		return renderer.ErrNoSurface
	}
	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl: init: %w", err)
	}

	shader := newSceneShader()
	if err := shader.Compile(); err != nil {
		return err
	}
	rend.shader = shader
	rend.uniforms = NewUniformCache(shader.program)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	w, h := surface.FramebufferSize()
	rend.UpdateViewport(int32(w), int32(h))
	logger.Log.Info("OpenGL renderer initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.Int32("width", rend.width), zap.Int32("height", rend.height))
	return nil
}

func (rend *Renderer) Upload(mesh *renderer.Mesh) error {
	if _, ok := rend.meshes[mesh]; ok {
		return nil
	}
	data := mesh.Interleaved()
	if len(data) == 0 {
		return fmt.Errorf("opengl: mesh %q has no vertices", mesh.Name)
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	usage := uint32(gl.STATIC_DRAW)
	if mesh.Primitive == renderer.Points {
		usage = gl.DYNAMIC_DRAW
	}

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), usage)

	var ebo uint32
	if len(mesh.Indices) > 0 {
		gl.GenBuffers(1, &ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
	}

	stride := int32(renderer.FloatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	mesh.VAO, mesh.VBO, mesh.EBO = vao, vbo, ebo
	mesh.Dirty = false
	rend.meshes[mesh] = struct{}{}
	return nil
}

func (rend *Renderer) Release(mesh *renderer.Mesh) {
	if _, ok := rend.meshes[mesh]; !ok {
		return
	}
	gl.DeleteVertexArrays(1, &mesh.VAO)
	gl.DeleteBuffers(1, &mesh.VBO)
	if mesh.EBO != 0 {
		gl.DeleteBuffers(1, &mesh.EBO)
	}
	mesh.VAO, mesh.VBO, mesh.EBO = 0, 0, 0
	delete(rend.meshes, mesh)
}

func (rend *Renderer) Render(frame *renderer.Frame) {
	gl.ClearColor(frame.ClearColor[0], frame.ClearColor[1], frame.ClearColor[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if frame.Camera == nil || rend.shader == nil {
		return
	}

	rend.shader.Use()
	rend.uniforms.SetMat4("viewProjection", frame.Camera.GetViewProjection())
	rend.uniforms.SetVec3("viewPos", frame.Camera.Position)
	rend.setLights(frame.Lights)

	// Opaque first, then transparent back to front.
	rend.ordered = rend.ordered[:0]
	for _, mesh := range frame.Meshes {
		if mesh.Visible && mesh.VAO != 0 {
			rend.ordered = append(rend.ordered, mesh)
		}
	}
	eye := frame.Camera.Position
	sort.SliceStable(rend.ordered, func(i, j int) bool {
		a, b := rend.ordered[i], rend.ordered[j]
		if a.Material.Transparent() != b.Material.Transparent() {
			return !a.Material.Transparent()
		}
		if !a.Material.Transparent() {
			return false
		}
		return a.WorldPosition().Sub(eye).Len() > b.WorldPosition().Sub(eye).Len()
	})

	for _, mesh := range rend.ordered {
		rend.drawMesh(mesh)
	}
	gl.BindVertexArray(0)
}

func (rend *Renderer) setLights(lights []renderer.Light) {
	count := min(len(lights), renderer.MaxLights)
	if len(lights) > renderer.MaxLights {
		logger.Log.Debug("Light rig exceeds shader capacity", zap.Int("lights", len(lights)))
	}
	rend.uniforms.SetInt("lightCount", int32(count))
	for i := 0; i < count; i++ {
		l := lights[i]
		rend.uniforms.SetInt(lightUniform(i, "kind"), int32(l.Kind))
		rend.uniforms.SetVec3(lightUniform(i, "position"), l.Position)
		rend.uniforms.SetVec3(lightUniform(i, "direction"), l.Direction)
		rend.uniforms.SetVec3(lightUniform(i, "color"), l.Color)
		rend.uniforms.SetFloat(lightUniform(i, "intensity"), l.Intensity)
		rend.uniforms.SetFloat(lightUniform(i, "range"), l.Range)
		outer := float64(l.Angle)
		inner := outer * (1 - float64(l.Penumbra))
		rend.uniforms.SetFloat(lightUniform(i, "cosOuter"), float32(math.Cos(outer)))
		rend.uniforms.SetFloat(lightUniform(i, "cosInner"), float32(math.Cos(inner)))
	}
}

func (rend *Renderer) drawMesh(mesh *renderer.Mesh) {
	if mesh.Dirty {
		data := mesh.Interleaved()
		gl.BindBuffer(gl.ARRAY_BUFFER, mesh.VBO)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
		mesh.Dirty = false
	}

	mat := mesh.Material
	rend.uniforms.SetMat4("model", mesh.WorldMatrix())
	rend.uniforms.SetVec3("diffuseColor", mat.DiffuseColor)
	rend.uniforms.SetVec3("emissiveColor", mat.EmissiveColor)
	rend.uniforms.SetFloat("emissiveIntensity", mat.EmissiveIntensity)
	rend.uniforms.SetFloat("shininess", mgl32.Clamp(mat.Shininess, 1, 256))
	rend.uniforms.SetFloat("alpha", mat.Alpha)
	rend.uniforms.SetFloat("pointSize", mat.PointSize)
	unlit := int32(0)
	if mesh.Primitive == renderer.Points {
		unlit = 1
	}
	rend.uniforms.SetInt("unlit", unlit)

	// Transparent meshes do not write depth so they do not hide each other.
	gl.DepthMask(!mat.Transparent())
	gl.BindVertexArray(mesh.VAO)
	switch {
	case mesh.Primitive == renderer.Points:
		gl.DrawArrays(gl.POINTS, 0, int32(mesh.VertexCount()))
	case mat.Wireframe:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		gl.DrawElements(gl.TRIANGLES, int32(len(mesh.Indices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	default:
		gl.DrawElements(gl.TRIANGLES, int32(len(mesh.Indices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
	}
	gl.DepthMask(true)
}

// UpdateViewport updates the OpenGL viewport to match the current framebuffer size
func (rend *Renderer) UpdateViewport(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	rend.width, rend.height = width, height
	gl.Viewport(0, 0, width, height)
}

func (rend *Renderer) Cleanup() {
	for mesh := range rend.meshes {
		rend.Release(mesh)
	}
	if rend.shader != nil {
		rend.shader.Delete()
		rend.shader = nil
	}
	if rend.uniforms != nil {
		rend.uniforms.Clear()
	}
	logger.Log.Info("OpenGL renderer cleaned up")
}
