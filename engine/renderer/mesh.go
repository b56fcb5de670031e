package renderer

import (
	"unsafe"

	"github.com/raoe/engine/engine/renderer/metadata"
)

// MeshElement is one drawable batch: CPU vertex bytes, optional index
// bytes and their layouts. GPU buffers are (re)generated on demand when
// the dirty bit is set.
type MeshElement struct {
	vertexData         []byte
	vertexDescriptions []metadata.TypeDescription
	vertexStride       uint32
	vertexCount        uint32

	indexData   []byte
	indexStride uint32
	indexCount  uint32

	dirty        bool
	vertexBuffer *Buffer
	indexBuffer  *Buffer
}

func NewMeshElement() *MeshElement {
	return &MeshElement{}
}

// SetVertexData replaces the CPU vertex bytes and marks the element dirty.
func (e *MeshElement) SetVertexData(data []byte, descriptions []metadata.TypeDescription, count, stride uint32) {
	e.vertexData = data
	e.vertexDescriptions = descriptions
	e.vertexCount = count
	e.vertexStride = stride
	e.dirty = true
}

// SetIndexData replaces the CPU index bytes (stride 1, 2 or 4) and marks
// the element dirty.
func (e *MeshElement) SetIndexData(data []byte, stride, count uint32) {
	e.indexData = data
	e.indexStride = stride
	e.indexCount = count
	e.dirty = true
}

// SetVertices uploads a typed vertex slice, deriving stride from T.
func SetVertices[T any](e *MeshElement, vertices []T, descriptions []metadata.TypeDescription) {
	var zero T
	stride := uint32(unsafe.Sizeof(zero))
	if len(vertices) == 0 {
		e.SetVertexData(nil, descriptions, 0, stride)
		return
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), uintptr(len(vertices))*unsafe.Sizeof(zero))
	e.SetVertexData(data, descriptions, uint32(len(vertices)), stride)
}

// SetIndices16 uploads 16-bit indices.
func SetIndices16(e *MeshElement, indices []uint16) {
	if len(indices) == 0 {
		e.SetIndexData(nil, 2, 0)
		return
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(&indices[0])), len(indices)*2)
	e.SetIndexData(data, 2, uint32(len(indices)))
}

// SetIndices32 uploads 32-bit indices.
func SetIndices32(e *MeshElement, indices []uint32) {
	if len(indices) == 0 {
		e.SetIndexData(nil, 4, 0)
		return
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(&indices[0])), len(indices)*4)
	e.SetIndexData(data, 4, uint32(len(indices)))
}

func (e *MeshElement) Dirty() bool { return e.dirty }

func (e *MeshElement) VertexCount() uint32 { return e.vertexCount }

func (e *MeshElement) IndexCount() uint32 { return e.indexCount }

func (e *MeshElement) VertexDescriptions() []metadata.TypeDescription {
	return e.vertexDescriptions
}

// GenerateBuffers pushes the CPU data into GPU buffers, after which the
// buffers reflect the CPU data and the element is clean.
func (e *MeshElement) GenerateBuffers(device Device) {
	if e.vertexBuffer == nil {
		e.vertexBuffer = NewBuffer(device, BufferVertex, false)
	}
	e.vertexBuffer.SetData(e.vertexData, e.vertexDescriptions, e.vertexCount, e.vertexStride)

	if len(e.indexData) > 0 {
		if e.indexBuffer == nil {
			e.indexBuffer = NewBuffer(device, BufferIndex, false)
		}
		e.indexBuffer.SetData(e.indexData, nil, e.indexCount, e.indexStride)
	}
	e.dirty = false
}

// Release frees both GPU buffers; the CPU data survives and the element
// goes back to dirty.
func (e *MeshElement) Release() {
	if e.vertexBuffer != nil {
		e.vertexBuffer.Release()
		e.vertexBuffer = nil
	}
	if e.indexBuffer != nil {
		e.indexBuffer.Release()
		e.indexBuffer = nil
	}
	e.dirty = true
}

// MeshPart pairs an element with the material drawing it. A nil material
// (or one whose shader failed to build) falls back to the error shader.
type MeshPart struct {
	Element  *MeshElement
	Material *Material
}

// Mesh is an ordered list of parts plus a debug name.
type Mesh struct {
	Name  string
	Parts []MeshPart
}

// Release frees the GPU buffers of every part.
func (m *Mesh) Release() {
	for _, p := range m.Parts {
		if p.Element != nil {
			p.Element.Release()
		}
	}
}
