// Package metadata holds the shared renderer data model: the type
// descriptions that drive buffer upload and vertex-array construction,
// shader stage identities, and the CPU-side texture and font records.
package metadata

import (
	"hash/fnv"

	"github.com/raoe/engine/engine/math"
)

// RendererType enumerates every element type a buffer, uniform or program
// input can carry.
type RendererType uint8

const (
	TypeFloat RendererType = iota
	TypeVec2
	TypeVec3
	TypeVec4
	TypeInt
	TypeIVec2
	TypeIVec3
	TypeIVec4
	TypeUInt
	TypeMat3
	TypeMat4
	TypeColor
	TypeByte
	TypeUByte
	TypeShort
	TypeUShort
	TypeSampler2D
	TypeSamplerCube
)

// ComponentCount returns the number of scalar lanes of the type.
func (t RendererType) ComponentCount() int32 {
	switch t {
	case TypeFloat, TypeInt, TypeUInt, TypeByte, TypeUByte, TypeShort, TypeUShort:
		return 1
	case TypeVec2, TypeIVec2:
		return 2
	case TypeVec3, TypeIVec3:
		return 3
	case TypeVec4, TypeIVec4, TypeColor:
		return 4
	case TypeMat3:
		return 9
	case TypeMat4:
		return 16
	}
	return 0
}

// ByteSize returns the tightly-packed size of one element of the type.
func (t RendererType) ByteSize() uint32 {
	switch t {
	case TypeByte, TypeUByte:
		return 1
	case TypeShort, TypeUShort:
		return 2
	case TypeMat3:
		return 9 * 4
	case TypeMat4:
		return 16 * 4
	default:
		return uint32(t.ComponentCount()) * 4
	}
}

// IsSampler reports whether the type names a texture binding rather than a
// value uniform.
func (t RendererType) IsSampler() bool {
	return t == TypeSampler2D || t == TypeSamplerCube
}

// SemanticHint tags what a vertex attribute means, so generated shaders can
// wire attributes without naming conventions.
type SemanticHint uint8

const (
	HintNone SemanticHint = iota
	HintPosition
	HintNormal
	HintUV
	HintColor
	HintTangent
	HintBitangent
)

func (h SemanticHint) String() string {
	switch h {
	case HintPosition:
		return "position"
	case HintNormal:
		return "normal"
	case HintUV:
		return "uv"
	case HintColor:
		return "color"
	case HintTangent:
		return "tangent"
	case HintBitangent:
		return "bitangent"
	}
	return "none"
}

// TypeDescription describes one element of a memory layout: what it is,
// where it starts and how wide it is.
type TypeDescription struct {
	Type   RendererType
	Offset uint32
	Size   uint32
	Hint   SemanticHint
}

// LayoutHash folds an ordered description span into the layout identity
// used to cache vertex arrays. Order is significant.
func LayoutHash(descriptions []TypeDescription) uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, len(descriptions)*10)
	for _, d := range descriptions {
		buf = append(buf,
			byte(d.Type),
			byte(d.Hint),
			byte(d.Offset), byte(d.Offset>>8), byte(d.Offset>>16), byte(d.Offset>>24),
			byte(d.Size), byte(d.Size>>8), byte(d.Size>>16), byte(d.Size>>24),
		)
	}
	h.Write(buf)
	return h.Sum64()
}

// StandardVertex is the default mesh vertex: position, normal, uv, color.
type StandardVertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
	Color    math.Vec4
}

// StandardVertexStride is the packed size of one StandardVertex.
const StandardVertexStride = uint32(12 + 12 + 8 + 16)

// StandardVertexDescription returns the layout of StandardVertex. The slice
// is shared; callers must not mutate it.
func StandardVertexDescription() []TypeDescription {
	return standardVertexDescription
}

var standardVertexDescription = []TypeDescription{
	{Type: TypeVec3, Offset: 0, Size: 12, Hint: HintPosition},
	{Type: TypeVec3, Offset: 12, Size: 12, Hint: HintNormal},
	{Type: TypeVec2, Offset: 24, Size: 8, Hint: HintUV},
	{Type: TypeVec4, Offset: 32, Size: 16, Hint: HintColor},
}
