// Package renderer implements the OpenGL-class render core: type-described
// buffers, textures, the GLSL preprocessor, shader programs with
// introspection, materials and the mesh draw path. All GPU access goes
// through the Device command sink; the opengl subpackage provides the real
// driver, tests provide fakes.
package renderer

import "github.com/raoe/engine/engine/renderer/metadata"

// Handles are driver-side object names. Zero is the sentinel "no object"
// value for every handle kind.
type (
	BufferHandle      uint32
	TextureHandle     uint32
	ModuleHandle      uint32
	ProgramHandle     uint32
	VertexArrayHandle uint32
)

// UniformInfo describes one active uniform of a linked program. For sampler
// uniforms TextureUnit is the unit the sampler reads from.
type UniformInfo struct {
	Name        string
	Location    int32
	Type        metadata.RendererType
	TextureUnit int32
}

// UniformBlockInfo describes one active uniform block.
type UniformBlockInfo struct {
	Name    string
	Binding uint32
	Layout  []metadata.TypeDescription
}

// InputInfo describes one active program (vertex) input.
type InputInfo struct {
	Name     string
	Location int32
	Type     metadata.RendererType
}

// ProgramInfo is the full introspection result of a linked program.
type ProgramInfo struct {
	Uniforms []UniformInfo
	Blocks   []UniformBlockInfo
	Inputs   []InputInfo
}

// PipelineState is the fixed-function state set before a draw.
type PipelineState struct {
	DepthTest    bool
	CullFace     bool
	FrontFaceCCW bool
}

// Device is the typed command sink over the GPU driver. Implementations
// are not required to be safe for concurrent use; the render core drives
// one device from the scheduler goroutine.
type Device interface {
	CreateBuffer() BufferHandle
	BufferData(h BufferHandle, data []byte, dynamic bool)
	DestroyBuffer(h BufferHandle)

	CreateTexture(data metadata.TextureData, params metadata.TextureParams) TextureHandle
	DestroyTexture(h TextureHandle)
	BindTextureUnit(unit uint32, h TextureHandle)

	// CompileModule returns the module handle and the compiler log. A zero
	// handle signals compile failure.
	CompileModule(stage metadata.ShaderStage, source string) (ModuleHandle, string)
	DestroyModule(h ModuleHandle)
	// LinkProgram returns the program handle and the linker log. A zero
	// handle signals link failure.
	LinkProgram(modules []ModuleHandle) (ProgramHandle, string)
	DestroyProgram(h ProgramHandle)
	Introspect(h ProgramHandle) ProgramInfo
	UseProgram(h ProgramHandle)
	SetUniform(h ProgramHandle, location int32, value any)

	CreateVertexArray(layout []metadata.TypeDescription) VertexArrayHandle
	BindVertexArray(h VertexArrayHandle)
	BindVertexBuffer(vao VertexArrayHandle, buffer BufferHandle, stride uint32)
	BindIndexBuffer(vao VertexArrayHandle, buffer BufferHandle)

	SetPipeline(state PipelineState)
	Viewport(width, height uint32)
	Clear(r, g, b, a float32)
	Draw(vertexCount uint32)
	DrawIndexed(indexCount uint32, indexStride uint32)
}
