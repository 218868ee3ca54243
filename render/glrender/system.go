package glrender

import (
	"log"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/fray/game"
	"github.com/mogaika/fray/render"
	"github.com/mogaika/fray/scene"
	"github.com/mogaika/fray/utils"
	"github.com/mogaika/fray/viewport"
)

type meshBuffers struct {
	vao      uint32
	position uint32
	normal   uint32
	color    uint32
	index    uint32

	hasColor    bool
	hasIndex    bool
	topology    uint32
	vertexCount int32
	indexCount  int32
}

// System draws every frame: border-colored canvas, one scissored clear
// plus scene and skybox per leaf viewport. Mesh GPU state is built
// lazily from the scene's draw command queue.
type System struct {
	game.Base

	backend *Backend
	skybox  *SkyboxProgram
	color   *ColorProgram

	meshes map[scene.MeshID]*meshBuffers
}

// NewSystem compiles the programs; the GL context must be current.
func NewSystem(backend *Backend) *System {
	s := &System{
		backend: backend,
		skybox:  NewSkyboxProgram(),
		color:   NewColorProgram(),
		meshes:  make(map[scene.MeshID]*meshBuffers),
	}

	gl.Enable(gl.DEPTH_TEST)
	return s
}

func glTopology(t scene.Topology) uint32 {
	if t == scene.TriangleStrip {
		return gl.TRIANGLE_STRIP
	}
	return gl.TRIANGLES
}

// colorAttribConstant maps a mesh's color list onto the vertex color
// attribute: no colors means white, a single color tints every vertex,
// and only longer lists become a real per-vertex array.
func colorAttribConstant(colors []utils.ColorFloat) (constant utils.ColorFloat, isConstant bool) {
	switch len(colors) {
	case 0:
		return utils.ColorFloat{1, 1, 1, 1}, true
	case 1:
		return colors[0], true
	}
	return utils.ColorFloat{}, false
}

func bufferData(buffer uint32, size int, data interface{}) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (s *System) uploadMesh(id scene.MeshID, mesh *scene.Mesh) {
	mb, ok := s.meshes[id]
	if !ok {
		mb = &meshBuffers{}
		gl.GenVertexArrays(1, &mb.vao)
		gl.GenBuffers(1, &mb.position)
		gl.GenBuffers(1, &mb.normal)
		gl.GenBuffers(1, &mb.color)
		gl.GenBuffers(1, &mb.index)
		s.meshes[id] = mb
	}

	constColor, isConstColor := colorAttribConstant(mesh.VColor)

	mb.topology = glTopology(mesh.Topology)
	mb.vertexCount = int32(len(mesh.VPosition))
	mb.indexCount = int32(len(mesh.Indices))
	mb.hasColor = !isConstColor
	mb.hasIndex = len(mesh.Indices) > 0

	bufferData(mb.position, len(mesh.VPosition)*4*4, mesh.VPosition)
	bufferData(mb.normal, len(mesh.VNormal)*4*4, mesh.VNormal)
	if mb.hasColor {
		bufferData(mb.color, len(mesh.VColor)*4*4, mesh.VColor)
	}
	if mb.hasIndex {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mb.index)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*2, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	}

	gl.BindVertexArray(mb.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, mb.position)
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointer(attribPosition, 4, gl.FLOAT, false, 4*4, gl.PtrOffset(0))

	gl.BindBuffer(gl.ARRAY_BUFFER, mb.normal)
	gl.EnableVertexAttribArray(attribNormal)
	gl.VertexAttribPointer(attribNormal, 4, gl.FLOAT, false, 4*4, gl.PtrOffset(0))

	if mb.hasColor {
		gl.BindBuffer(gl.ARRAY_BUFFER, mb.color)
		gl.EnableVertexAttribArray(attribColor)
		gl.VertexAttribPointer(attribColor, 4, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	} else {
		gl.DisableVertexAttribArray(attribColor)
		gl.VertexAttrib4f(attribColor, constColor[0], constColor[1], constColor[2], constColor[3])
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

func (s *System) pumpSceneCommands(sc *scene.Scene) {
	for _, cmd := range sc.DrawCommands {
		switch cmd.Kind {
		case scene.CommandAddMesh:
			if mesh, ok := sc.Meshes[cmd.Mesh]; ok {
				s.uploadMesh(cmd.Mesh, mesh)
			}
		case scene.CommandAddMeshInstance:
			// Instances carry no GPU state of their own.
		}
	}
}

func (s *System) drawMesh(mb *meshBuffers) {
	gl.BindVertexArray(mb.vao)
	if mb.hasIndex {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mb.index)
		gl.DrawElements(mb.topology, mb.indexCount, gl.UNSIGNED_SHORT, gl.PtrOffset(0))
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	} else {
		gl.DrawArrays(mb.topology, 0, mb.vertexCount)
	}
	gl.BindVertexArray(0)
}

func (s *System) renderSceneWithCamera(sc *scene.Scene, camera *scene.Camera, aspect float32) {
	view := camera.ViewMatrix()
	proj := camera.ProjMatrix(aspect)

	gl.UseProgram(s.color.Id)
	gl.UniformMatrix4fv(s.color.UProj, 1, false, &proj[0])
	gl.Uniform3f(s.color.ULightPositionView, 0, 0, 0)
	gl.Uniform3f(s.color.ULightColor, 1, 1, 1)

	for _, inst := range sc.MeshInstances {
		if inst.MeshID == scene.MeshIDSkybox {
			continue
		}
		mb, ok := s.meshes[inst.MeshID]
		if !ok {
			continue
		}

		modelview := view.Mul4(inst.Xform.Mat4())
		normalMatrix := modelview.Inv().Transpose()
		gl.UniformMatrix4fv(s.color.UModelView, 1, false, &modelview[0])
		gl.UniformMatrix4fv(s.color.UNormalMatrix, 1, false, &normalMatrix[0])

		s.drawMesh(mb)
	}
	gl.UseProgram(0)
}

func (s *System) renderSkybox(sc *scene.Scene, camera *scene.Camera, aspect float32, selector viewport.SkyboxSelector) {
	mb, ok := s.meshes[scene.MeshIDSkybox]
	if !ok {
		return
	}
	tex, ok := s.backend.TextureName(render.TextureArrayID(selector.Tab))
	if !ok {
		log.Printf("[glrender] Skybox selector points at missing array %d", selector.Tab)
		return
	}

	proj := camera.ProjMatrix(aspect)
	viewNoTranslation := camera.ViewMatrix()
	viewNoTranslation.SetCol(3, mgl32.Vec4{0, 0, 0, 1})

	gl.UseProgram(s.skybox.Id)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP_ARRAY, tex)

	gl.UniformMatrix4fv(s.skybox.UProj, 1, false, &proj[0])
	gl.UniformMatrix4fv(s.skybox.UModelView, 1, false, &viewNoTranslation[0])
	gl.Uniform1i(s.skybox.UCubemaps, 0)
	gl.Uniform1f(s.skybox.ULayer, float32(selector.Layer))

	gl.DepthFunc(gl.LEQUAL)
	s.drawMesh(mb)
	gl.DepthFunc(gl.LESS)

	gl.BindTexture(gl.TEXTURE_CUBE_MAP_ARRAY, 0)
	gl.UseProgram(0)
}

type leafRenderVisitor struct {
	sys *System
	g   *game.G
}

func (v *leafRenderVisitor) AcceptLeaf(args viewport.AcceptLeafArgs) {
	rect := args.Rect.Inset(args.BorderPx)
	if rect.W == 0 || rect.H == 0 {
		return
	}

	gl.Viewport(int32(rect.X), int32(rect.Y), int32(rect.W), int32(rect.H))
	gl.Scissor(int32(rect.X), int32(rect.Y), int32(rect.W), int32(rect.H))

	c := args.Info.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	camera := v.g.Scene.Cameras[1]
	if camera == nil {
		return
	}
	aspect := float32(rect.W) / float32(rect.H)
	v.sys.renderSceneWithCamera(v.g.Scene, camera, aspect)
	v.sys.renderSkybox(v.g.Scene, camera, aspect, args.Info.Skybox)
}

func (v *leafRenderVisitor) AcceptSplit(args viewport.AcceptSplitArgs) {}

func (s *System) Draw(g *game.G, d *game.Draw) {
	s.pumpSceneCommands(g.Scene)

	size := g.CanvasSize
	gl.Disable(gl.SCISSOR_TEST)
	gl.Viewport(0, 0, int32(size.W), int32(size.H))

	// The canvas shows through between leaf insets as the borders.
	bc := g.Viewports.BorderColor()
	gl.ClearColor(bc[0], bc[1], bc[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.SCISSOR_TEST)
	g.Viewports.Visit(g.CanvasRect(), &leafRenderVisitor{sys: s, g: g})
	gl.Disable(gl.SCISSOR_TEST)
}
