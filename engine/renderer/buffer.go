package renderer

import (
	"unsafe"

	"github.com/raoe/engine/engine/core"
	"github.com/raoe/engine/engine/renderer/metadata"
)

type BufferKind uint8

const (
	BufferVertex BufferKind = iota
	BufferIndex
	BufferUniform
)

func (k BufferKind) String() string {
	switch k {
	case BufferVertex:
		return "vertex"
	case BufferIndex:
		return "index"
	case BufferUniform:
		return "uniform"
	}
	return "unknown"
}

// Buffer owns one GPU buffer object and remembers the shape of the data it
// holds. The GPU object is allocated lazily on the first SetData.
type Buffer struct {
	device        Device
	handle        BufferHandle
	kind          BufferKind
	dynamic       bool
	bytes         uint32
	elementCount  uint32
	elementStride uint32
	descriptions  []metadata.TypeDescription
}

func NewBuffer(device Device, kind BufferKind, dynamic bool) *Buffer {
	return &Buffer{device: device, kind: kind, dynamic: dynamic}
}

// SetData uploads count elements of stride bytes each. len(data) must
// equal count*stride; index buffers only accept strides of 1, 2 or 4.
func (b *Buffer) SetData(data []byte, descriptions []metadata.TypeDescription, count, stride uint32) {
	if b.kind == BufferIndex && stride != 1 && stride != 2 && stride != 4 {
		core.Panicf("index buffer stride must be 1, 2 or 4, got %d", stride)
	}
	if uint32(len(data)) != count*stride {
		core.Panicf("%s buffer: %d bytes does not match %d elements of stride %d",
			b.kind, len(data), count, stride)
	}

	if b.handle == 0 {
		b.handle = b.device.CreateBuffer()
	}
	b.device.BufferData(b.handle, data, b.dynamic)

	b.bytes = uint32(len(data))
	b.elementCount = count
	b.elementStride = stride
	b.descriptions = descriptions
}

func (b *Buffer) Handle() BufferHandle { return b.handle }

func (b *Buffer) Kind() BufferKind { return b.kind }

func (b *Buffer) Bytes() uint32 { return b.bytes }

func (b *Buffer) ElementCount() uint32 { return b.elementCount }

func (b *Buffer) ElementStride() uint32 { return b.elementStride }

func (b *Buffer) Descriptions() []metadata.TypeDescription { return b.descriptions }

// LayoutHash is the layout identity of the buffer's description span.
func (b *Buffer) LayoutHash() uint64 {
	return metadata.LayoutHash(b.descriptions)
}

// Release frees the GPU buffer and clears all state. The buffer can be
// reused with a later SetData.
func (b *Buffer) Release() {
	if b.handle != 0 {
		b.device.DestroyBuffer(b.handle)
		b.handle = 0
	}
	b.bytes = 0
	b.elementCount = 0
	b.elementStride = 0
	b.descriptions = nil
}

// SetTypedData uploads a slice of fixed-layout elements, deriving count
// and stride from the element type.
func SetTypedData[T any](b *Buffer, elements []T, descriptions []metadata.TypeDescription) {
	var zero T
	stride := uint32(unsafe.Sizeof(zero))
	if len(elements) == 0 {
		b.SetData(nil, descriptions, 0, stride)
		return
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(&elements[0])), uintptr(len(elements))*unsafe.Sizeof(zero))
	b.SetData(data, descriptions, uint32(len(elements)), stride)
}
