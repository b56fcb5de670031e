package renderer

import (
	"github.com/raoe/engine/engine/math"
	"github.com/raoe/engine/engine/renderer/metadata"
)

// GenerateCubeMeshElement builds a unit-extent cube centred at the origin
// with per-face normals and UVs, indexed with 16-bit indices.
func GenerateCubeMeshElement(width, height, depth float32) *MeshElement {
	hw, hh, hd := width*0.5, height*0.5, depth*0.5

	type face struct {
		normal math.Vec3
		// corner order: bottom-left, bottom-right, top-right, top-left
		corners [4]math.Vec3
	}
	faces := []face{
		{ // front (+z)
			normal: math.NewVec3(0, 0, 1),
			corners: [4]math.Vec3{
				{X: -hw, Y: -hh, Z: hd}, {X: hw, Y: -hh, Z: hd},
				{X: hw, Y: hh, Z: hd}, {X: -hw, Y: hh, Z: hd},
			},
		},
		{ // back (-z)
			normal: math.NewVec3(0, 0, -1),
			corners: [4]math.Vec3{
				{X: hw, Y: -hh, Z: -hd}, {X: -hw, Y: -hh, Z: -hd},
				{X: -hw, Y: hh, Z: -hd}, {X: hw, Y: hh, Z: -hd},
			},
		},
		{ // left (-x)
			normal: math.NewVec3(-1, 0, 0),
			corners: [4]math.Vec3{
				{X: -hw, Y: -hh, Z: -hd}, {X: -hw, Y: -hh, Z: hd},
				{X: -hw, Y: hh, Z: hd}, {X: -hw, Y: hh, Z: -hd},
			},
		},
		{ // right (+x)
			normal: math.NewVec3(1, 0, 0),
			corners: [4]math.Vec3{
				{X: hw, Y: -hh, Z: hd}, {X: hw, Y: -hh, Z: -hd},
				{X: hw, Y: hh, Z: -hd}, {X: hw, Y: hh, Z: hd},
			},
		},
		{ // top (+y)
			normal: math.NewVec3(0, 1, 0),
			corners: [4]math.Vec3{
				{X: -hw, Y: hh, Z: hd}, {X: hw, Y: hh, Z: hd},
				{X: hw, Y: hh, Z: -hd}, {X: -hw, Y: hh, Z: -hd},
			},
		},
		{ // bottom (-y)
			normal: math.NewVec3(0, -1, 0),
			corners: [4]math.Vec3{
				{X: -hw, Y: -hh, Z: -hd}, {X: hw, Y: -hh, Z: -hd},
				{X: hw, Y: -hh, Z: hd}, {X: -hw, Y: -hh, Z: hd},
			},
		},
	}

	uvs := [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	white := math.Vec4{X: 1, Y: 1, Z: 1, W: 1}

	vertices := make([]metadata.StandardVertex, 0, 24)
	indices := make([]uint16, 0, 36)
	for _, f := range faces {
		base := uint16(len(vertices))
		for i, corner := range f.corners {
			vertices = append(vertices, metadata.StandardVertex{
				Position: corner,
				Normal:   f.normal,
				UV:       uvs[i],
				Color:    white,
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	e := NewMeshElement()
	SetVertices(e, vertices, metadata.StandardVertexDescription())
	SetIndices16(e, indices)
	return e
}
