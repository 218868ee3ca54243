// Package scene is the CPU-side scene graph: cameras, meshes, mesh
// instances and the per-frame draw command queue the renderer consumes.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

type ProjectionMode int

const (
	Perspective ProjectionMode = iota
	Ortho
)

type Camera struct {
	Position   mgl32.Vec3
	Target     mgl32.Vec3
	Scale      mgl32.Vec3
	Projection ProjectionMode
	FovYRad    float32
	Near       float32
	Far        float32
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, mgl32.Vec3{0, 1, 0}).
		Mul4(mgl32.Scale3D(c.Scale.X(), c.Scale.Y(), c.Scale.Z()))
}

// ProjMatrix for the given viewport aspect ratio.
func (c *Camera) ProjMatrix(aspect float32) mgl32.Mat4 {
	if c.Projection == Ortho {
		return mgl32.Ortho(-1, 1, -1, 1, c.Near, c.Far)
	}
	return mgl32.Perspective(c.FovYRad, aspect, c.Near, c.Far)
}

type (
	MeshID         uint32
	MeshInstanceID uint32
	CameraID       uint32
)

type MeshInstance struct {
	MeshID MeshID
	Xform  Transform
}

// Transform is a decomposed model transform.
type Transform struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	Scale       mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{
		Orientation: mgl32.QuatIdent(),
		Scale:       mgl32.Vec3{1, 1, 1},
	}
}

func (t Transform) Mat4() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.Orientation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

type CommandKind int

const (
	CommandAddMesh CommandKind = iota
	CommandAddMeshInstance
)

// Command tells the renderer that GPU-side state must be created for a
// scene object. Commands are cleared after every draw.
type Command struct {
	Kind     CommandKind
	Mesh     MeshID
	Instance MeshInstanceID
}

const (
	MeshIDSkybox     MeshID = 10
	MeshIDCube       MeshID = 11
	MeshIDCubeSmooth MeshID = 12
)

type Scene struct {
	Cameras       map[CameraID]*Camera
	Meshes        map[MeshID]*Mesh
	MeshInstances map[MeshInstanceID]*MeshInstance

	DrawCommands []Command
}

func New() *Scene {
	s := &Scene{
		Cameras:       make(map[CameraID]*Camera),
		Meshes:        make(map[MeshID]*Mesh),
		MeshInstances: make(map[MeshInstanceID]*MeshInstance),
	}

	s.Cameras[1] = &Camera{
		Position:   mgl32.Vec3{0, 0, -5},
		Target:     mgl32.Vec3{},
		Scale:      mgl32.Vec3{1, 1, 1},
		Projection: Perspective,
		FovYRad:    mgl32.DegToRad(60),
		Near:       0.001,
		Far:        10000,
	}

	s.AddMesh(MeshIDSkybox, NewSkybox())
	s.AddMesh(MeshIDCube, NewCubeTriangles(0.5))
	s.AddMesh(MeshIDCubeSmooth, NewCubeSmoothTriangleStrip(0.5))

	skyXform := NewTransform()
	skyXform.Scale = mgl32.Vec3{1000, 1000, 1000}
	s.AddMeshInstance(1300, &MeshInstance{MeshID: MeshIDSkybox, Xform: skyXform})

	s.AddMeshInstance(13, &MeshInstance{MeshID: MeshIDCube, Xform: NewTransform()})

	right := NewTransform()
	right.Position = mgl32.Vec3{2, 0, 0}
	s.AddMeshInstance(42, &MeshInstance{MeshID: MeshIDCube, Xform: right})

	left := NewTransform()
	left.Position = mgl32.Vec3{-2, 0, 0}
	s.AddMeshInstance(468, &MeshInstance{MeshID: MeshIDCubeSmooth, Xform: left})

	return s
}

func (s *Scene) AddMesh(id MeshID, m *Mesh) {
	s.Meshes[id] = m
	s.DrawCommands = append(s.DrawCommands, Command{Kind: CommandAddMesh, Mesh: id})
}

func (s *Scene) AddMeshInstance(id MeshInstanceID, inst *MeshInstance) {
	s.MeshInstances[id] = inst
	s.DrawCommands = append(s.DrawCommands, Command{Kind: CommandAddMeshInstance, Instance: id})
}

// ClearDrawCommands runs after every renderer has seen the queue.
func (s *Scene) ClearDrawCommands() {
	s.DrawCommands = s.DrawCommands[:0]
}
