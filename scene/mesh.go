package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/fray/utils"
)

// Topology mirrors the GL primitive types without importing gl here,
// so mesh generation stays testable off the render thread.
type Topology int

const (
	Triangles Topology = iota
	TriangleStrip
)

// Mesh is CPU-side geometry. VColor with a single element means one
// color for all vertices; empty Indices means non-indexed drawing.
type Mesh struct {
	Topology  Topology
	VPosition []mgl32.Vec4
	VNormal   []mgl32.Vec4
	VColor    []utils.ColorFloat
	Indices   []uint16
}

func point(v mgl32.Vec3) mgl32.Vec4 {
	return mgl32.Vec4{v.X(), v.Y(), v.Z(), 1}
}

func direction(v mgl32.Vec3) mgl32.Vec4 {
	return mgl32.Vec4{v.X(), v.Y(), v.Z(), 0}
}

// NewIcosahedron builds a subdivided icosphere of radius s.
func NewIcosahedron(s float32, subdivisions int) *Mesh {
	t := float32((1 + math.Sqrt(5)) / 2)
	vertices := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range vertices {
		vertices[i] = vertices[i].Normalize().Mul(s)
	}
	indices := []uint16{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	for n := 0; n < subdivisions; n++ {
		outVertices := make([]mgl32.Vec3, 0, len(indices)*2)
		outIndices := make([]uint16, 0, len(indices)*4)
		for f := 0; f < len(indices); f += 3 {
			v0 := vertices[indices[f+0]]
			v1 := vertices[indices[f+1]]
			v2 := vertices[indices[f+2]]
			v3 := v0.Add(v1).Mul(0.5).Normalize().Mul(s)
			v4 := v1.Add(v2).Mul(0.5).Normalize().Mul(s)
			v5 := v2.Add(v0).Mul(0.5).Normalize().Mul(s)
			i := uint16(len(outVertices))
			outVertices = append(outVertices, v0, v1, v2, v3, v4, v5)
			outIndices = append(outIndices,
				i+0, i+3, i+5,
				i+3, i+1, i+4,
				i+5, i+4, i+2,
				i+3, i+4, i+5)
		}
		vertices = outVertices
		indices = outIndices
	}

	m := &Mesh{
		Topology: Triangles,
		VColor:   []utils.ColorFloat{utils.NewColorFloat(0, 0, 1)},
		Indices:  indices,
	}
	for _, v := range vertices {
		m.VPosition = append(m.VPosition, point(v))
		m.VNormal = append(m.VNormal, direction(v))
	}
	return m
}

// NewCubeSmoothTriangleStrip builds a 14-vertex cube strip with
// smooth (radial) normals.
func NewCubeSmoothTriangleStrip(s float32) *Mesh {
	vposition := []mgl32.Vec4{
		{-s, s, s, 1},   // front-top-left
		{s, s, s, 1},    // front-top-right
		{-s, -s, s, 1},  // front-bottom-left
		{s, -s, s, 1},   // front-bottom-right
		{s, -s, -s, 1},  // back-bottom-right
		{s, s, s, 1},    // front-top-right
		{s, s, -s, 1},   // back-top-right
		{-s, s, s, 1},   // front-top-left
		{-s, s, -s, 1},  // back-top-left
		{-s, -s, s, 1},  // front-bottom-left
		{-s, -s, -s, 1}, // back-bottom-left
		{s, -s, -s, 1},  // back-bottom-right
		{-s, s, -s, 1},  // back-top-left
		{s, s, -s, 1},   // back-top-right
	}
	m := &Mesh{
		Topology:  TriangleStrip,
		VPosition: vposition,
		VColor:    []utils.ColorFloat{utils.NewColorFloat(1, 0, 0)},
	}
	for _, p := range vposition {
		n := p.Vec3().Normalize()
		m.VNormal = append(m.VNormal, direction(n))
	}
	return m
}

// NewCubeTriangles builds a 36-vertex cube with flat per-face normals.
func NewCubeTriangles(s float32) *Mesh {
	v := [8]mgl32.Vec4{
		{-s, s, -s, 1}, {s, s, -s, 1}, {s, s, s, 1}, {-s, s, s, 1},
		{-s, -s, s, 1}, {-s, -s, -s, 1}, {s, -s, -s, 1}, {s, -s, s, 1},
	}
	vposition := []mgl32.Vec4{
		v[7], v[2], v[1], v[7], v[1], v[6], // +X
		v[4], v[5], v[0], v[4], v[0], v[3], // -X
		v[0], v[1], v[2], v[0], v[2], v[3], // +Y
		v[5], v[4], v[7], v[5], v[7], v[6], // -Y
		v[4], v[3], v[2], v[4], v[2], v[7], // +Z
		v[1], v[0], v[5], v[1], v[5], v[6], // -Z
	}
	normals := [6]mgl32.Vec4{
		{1, 0, 0, 0}, {-1, 0, 0, 0},
		{0, 1, 0, 0}, {0, -1, 0, 0},
		{0, 0, 1, 0}, {0, 0, -1, 0},
	}
	m := &Mesh{
		Topology:  Triangles,
		VPosition: vposition,
		VColor:    []utils.ColorFloat{utils.NewColorFloat(0, 1, 0)},
	}
	for face := 0; face < 6; face++ {
		for i := 0; i < 6; i++ {
			m.VNormal = append(m.VNormal, normals[face])
		}
	}
	return m
}

func NewCube() *Mesh {
	return NewCubeTriangles(0.5)
}

// NewSkybox is a cube strip with inverted winding so that it renders
// from the inside without changing cull state, plus reversed normals
// and opaque white color.
func NewSkybox() *Mesh {
	m := NewCubeSmoothTriangleStrip(0.5)

	// Flip winding by inserting a degenerate triangle.
	m.VPosition = append([]mgl32.Vec4{m.VPosition[0]}, m.VPosition...)
	m.VNormal = append([]mgl32.Vec4{m.VNormal[0]}, m.VNormal...)

	for i := range m.VNormal {
		m.VNormal[i] = m.VNormal[i].Mul(-1)
	}
	for i := range m.VColor {
		m.VColor[i] = utils.NewColorFloat(1, 1, 1)
	}
	return m
}
