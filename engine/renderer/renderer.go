package renderer

import (
	"github.com/raoe/engine/engine/core"
	"github.com/raoe/engine/engine/math"
	"github.com/raoe/engine/engine/renderer/metadata"
)

// Renderer is the frontend of the render core. It owns the VAO cache, the
// process-wide error shader and error texture, and the mesh draw path.
type Renderer struct {
	device Device

	vaoCache map[uint64]VertexArrayHandle

	errorShader  *Shader
	errorTexture *Texture

	width  uint32
	height uint32
}

func New(device Device) *Renderer {
	return &Renderer{
		device:   device,
		vaoCache: make(map[uint64]VertexArrayHandle),
	}
}

// Initialize builds the fallback resources and sets the initial viewport.
// The error shader is generated from the standard vertex layout; failing
// to build it is fatal since every missing material falls back to it.
func (r *Renderer) Initialize(width, height uint32) {
	r.width = width
	r.height = height
	r.device.Viewport(width, height)

	r.errorTexture = NewCheckerboardTexture(r.device)
	r.errorTexture.Upload()

	vsSource, fsSource := GenerateErrorShaderSources(metadata.StandardVertexDescription())
	shader, ok := NewBuilder(r.device, "error_shader").
		AddStage(metadata.StageVertex, vsSource).
		AddStage(metadata.StageFragment, fsSource).
		Build()
	if !ok {
		core.Panicf("renderer: error shader failed to build")
	}
	r.errorShader = shader
	core.LogInfo("renderer initialized (%dx%d)", width, height)
}

// ErrorShader exposes the fallback shader, e.g. for tests and debug draws.
func (r *Renderer) ErrorShader() *Shader { return r.errorShader }

// ErrorTexture exposes the fallback checkerboard texture.
func (r *Renderer) ErrorTexture() *Texture { return r.errorTexture }

func (r *Renderer) Device() Device { return r.device }

// Resize updates the viewport.
func (r *Renderer) Resize(width, height uint32) {
	r.width = width
	r.height = height
	r.device.Viewport(width, height)
}

// BeginFrame clears the backbuffer.
func (r *Renderer) BeginFrame() {
	r.device.Clear(0.1, 0.1, 0.12, 1.0)
}

// EndFrame marks the end of draw submission; presentation is owned by the
// window backend.
func (r *Renderer) EndFrame() {}

// vertexArrayFor returns the cached VAO for a vertex layout, creating it
// on first use. VAOs live for the whole process; the cache is bounded by
// the number of distinct layouts.
func (r *Renderer) vertexArrayFor(layout []metadata.TypeDescription) VertexArrayHandle {
	key := metadata.LayoutHash(layout)
	if vao, ok := r.vaoCache[key]; ok {
		return vao
	}
	vao := r.device.CreateVertexArray(layout)
	r.vaoCache[key] = vao
	core.LogDebug("vertex array created for layout %016x", key)
	return vao
}

// RenderMesh draws every part of the mesh under the given camera and world
// matrices. Parts without a usable material draw with the error shader,
// and the error texture is pre-bound to the "tex" sampler so materials
// that never assign one still sample something visible.
func (r *Renderer) RenderMesh(cameraMatrix math.Mat4, mesh *Mesh, world math.Mat4) {
	mvp := cameraMatrix.Mul(world)

	for _, part := range mesh.Parts {
		if part.Element == nil {
			continue
		}

		shader := r.errorShader
		if part.Material != nil && part.Material.Shader() != nil {
			shader = part.Material.Shader()
		}

		shader.Use()
		shader.SetUniformByName("mvp", mvp)
		if u, ok := shader.Uniform("tex"); ok && u.Type.IsSampler() {
			r.device.BindTextureUnit(uint32(u.TextureUnit), r.errorTexture.Upload())
		}
		if part.Material != nil && part.Material.Shader() == shader {
			part.Material.Flush()
		}

		r.RenderMeshElement(part.Element)
	}
}

// RenderMeshElement submits one element: regenerate stale GPU buffers,
// bind the layout's VAO and buffers, set the fixed pipeline state (depth
// test less, no face culling, CCW front faces) and draw.
func (r *Renderer) RenderMeshElement(e *MeshElement) {
	if e.Dirty() {
		e.GenerateBuffers(r.device)
	}
	if e.vertexBuffer == nil || e.vertexCount == 0 {
		return
	}

	vao := r.vertexArrayFor(e.vertexDescriptions)
	r.device.BindVertexArray(vao)
	r.device.BindVertexBuffer(vao, e.vertexBuffer.Handle(), e.vertexStride)
	if e.indexBuffer != nil && e.indexCount > 0 {
		r.device.BindIndexBuffer(vao, e.indexBuffer.Handle())
	}

	r.device.SetPipeline(PipelineState{
		DepthTest:    true,
		CullFace:     false,
		FrontFaceCCW: true,
	})

	if e.indexBuffer != nil && e.indexCount > 0 {
		r.device.DrawIndexed(e.indexCount, e.indexStride)
	} else {
		r.device.Draw(e.vertexCount)
	}
}

// Shutdown releases the fallback resources. Cached VAOs are process-owned
// and die with the GL context.
func (r *Renderer) Shutdown() {
	if r.errorShader != nil {
		r.errorShader.Release()
		r.errorShader = nil
	}
	if r.errorTexture != nil {
		r.errorTexture.Release()
		r.errorTexture = nil
	}
}
