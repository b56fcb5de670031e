// Package opengl implements the renderer's Device contract on an OpenGL
// 4.6 core context using direct state access. The window backend must have
// made a context current on the calling goroutine before Initialize.
package opengl

import (
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/raoe/engine/engine/core"
	"github.com/raoe/engine/engine/math"
	"github.com/raoe/engine/engine/renderer"
	"github.com/raoe/engine/engine/renderer/metadata"
)

type Device struct {
	currentProgram renderer.ProgramHandle
	currentVAO     renderer.VertexArrayHandle
}

func New() *Device {
	return &Device{}
}

// Initialize loads the GL function pointers from the current context.
func (d *Device) Initialize() error {
	if err := gl.Init(); err != nil {
		return err
	}
	version := gl.GoStr(gl.GetString(gl.VERSION))
	vendor := gl.GoStr(gl.GetString(gl.RENDERER))
	core.LogInfo("opengl %s on %s", version, vendor)
	return nil
}

func (d *Device) CreateBuffer() renderer.BufferHandle {
	var h uint32
	gl.CreateBuffers(1, &h)
	return renderer.BufferHandle(h)
}

func (d *Device) BufferData(h renderer.BufferHandle, data []byte, dynamic bool) {
	usage := uint32(gl.STATIC_DRAW)
	if dynamic {
		usage = gl.DYNAMIC_DRAW
	}
	var ptr = gl.Ptr(nil)
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.NamedBufferData(uint32(h), len(data), ptr, usage)
}

func (d *Device) DestroyBuffer(h renderer.BufferHandle) {
	id := uint32(h)
	gl.DeleteBuffers(1, &id)
}

func filterEnum(m metadata.FilterMode) int32 {
	if m == metadata.FilterNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func repeatEnum(m metadata.RepeatMode) int32 {
	switch m {
	case metadata.RepeatMirrored:
		return gl.MIRRORED_REPEAT
	case metadata.RepeatClampToEdge:
		return gl.CLAMP_TO_EDGE
	case metadata.RepeatClampToBorder:
		return gl.CLAMP_TO_BORDER
	}
	return gl.REPEAT
}

func (d *Device) CreateTexture(data metadata.TextureData, params metadata.TextureParams) renderer.TextureHandle {
	var h uint32
	gl.CreateTextures(gl.TEXTURE_2D, 1, &h)
	gl.TextureStorage2D(h, 1, gl.RGBA8, int32(data.Width), int32(data.Height))
	if len(data.Pixels) > 0 {
		gl.TextureSubImage2D(h, 0, 0, 0, int32(data.Width), int32(data.Height),
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(data.Pixels))
	}
	gl.TextureParameteri(h, gl.TEXTURE_MIN_FILTER, filterEnum(params.MinFilter))
	gl.TextureParameteri(h, gl.TEXTURE_MAG_FILTER, filterEnum(params.MagFilter))
	gl.TextureParameteri(h, gl.TEXTURE_WRAP_S, repeatEnum(params.RepeatU))
	gl.TextureParameteri(h, gl.TEXTURE_WRAP_T, repeatEnum(params.RepeatV))
	return renderer.TextureHandle(h)
}

func (d *Device) DestroyTexture(h renderer.TextureHandle) {
	id := uint32(h)
	gl.DeleteTextures(1, &id)
}

func (d *Device) BindTextureUnit(unit uint32, h renderer.TextureHandle) {
	gl.BindTextureUnit(unit, uint32(h))
}

func stageEnum(stage metadata.ShaderStage) uint32 {
	switch stage {
	case metadata.StageVertex:
		return gl.VERTEX_SHADER
	case metadata.StageFragment:
		return gl.FRAGMENT_SHADER
	case metadata.StageGeometry:
		return gl.GEOMETRY_SHADER
	case metadata.StageTesselationControl:
		return gl.TESS_CONTROL_SHADER
	case metadata.StageTesselationEvaluation:
		return gl.TESS_EVALUATION_SHADER
	case metadata.StageCompute:
		return gl.COMPUTE_SHADER
	}
	core.Panicf("no OpenGL shader type for stage %s", stage)
	return 0
}

func (d *Device) CompileModule(stage metadata.ShaderStage, source string) (renderer.ModuleHandle, string) {
	h := gl.CreateShader(stageEnum(stage))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(h, 1, csources, nil)
	free()
	gl.CompileShader(h)

	var status int32
	gl.GetShaderiv(h, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := shaderInfoLog(h)
		gl.DeleteShader(h)
		return 0, log
	}
	return renderer.ModuleHandle(h), ""
}

func shaderInfoLog(h uint32) string {
	var logLength int32
	gl.GetShaderiv(h, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(h, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func programInfoLog(h uint32) string {
	var logLength int32
	gl.GetProgramiv(h, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(h, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Device) DestroyModule(h renderer.ModuleHandle) {
	gl.DeleteShader(uint32(h))
}

func (d *Device) LinkProgram(modules []renderer.ModuleHandle) (renderer.ProgramHandle, string) {
	p := gl.CreateProgram()
	for _, m := range modules {
		gl.AttachShader(p, uint32(m))
	}
	gl.LinkProgram(p)
	for _, m := range modules {
		gl.DetachShader(p, uint32(m))
	}

	var status int32
	gl.GetProgramiv(p, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := programInfoLog(p)
		gl.DeleteProgram(p)
		return 0, log
	}
	return renderer.ProgramHandle(p), ""
}

func (d *Device) DestroyProgram(h renderer.ProgramHandle) {
	if d.currentProgram == h {
		d.currentProgram = 0
	}
	gl.DeleteProgram(uint32(h))
}

func glTypeToRendererType(xtype uint32) (metadata.RendererType, bool) {
	switch xtype {
	case gl.FLOAT:
		return metadata.TypeFloat, true
	case gl.FLOAT_VEC2:
		return metadata.TypeVec2, true
	case gl.FLOAT_VEC3:
		return metadata.TypeVec3, true
	case gl.FLOAT_VEC4:
		return metadata.TypeVec4, true
	case gl.INT:
		return metadata.TypeInt, true
	case gl.INT_VEC2:
		return metadata.TypeIVec2, true
	case gl.INT_VEC3:
		return metadata.TypeIVec3, true
	case gl.INT_VEC4:
		return metadata.TypeIVec4, true
	case gl.UNSIGNED_INT:
		return metadata.TypeUInt, true
	case gl.FLOAT_MAT3:
		return metadata.TypeMat3, true
	case gl.FLOAT_MAT4:
		return metadata.TypeMat4, true
	case gl.SAMPLER_2D:
		return metadata.TypeSampler2D, true
	case gl.SAMPLER_CUBE:
		return metadata.TypeSamplerCube, true
	}
	return metadata.TypeFloat, false
}

// Introspect enumerates active uniforms, uniform blocks and vertex inputs.
// Sampler uniforms are assigned increasing texture units here, so the rest
// of the renderer only ever binds textures to units.
func (d *Device) Introspect(h renderer.ProgramHandle) renderer.ProgramInfo {
	p := uint32(h)
	var info renderer.ProgramInfo
	nameBuf := strings.Repeat("\x00", 257)

	var uniformCount int32
	gl.GetProgramiv(p, gl.ACTIVE_UNIFORMS, &uniformCount)
	textureUnit := int32(0)
	for i := int32(0); i < uniformCount; i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(p, uint32(i), 256, &length, &size, &xtype, gl.Str(nameBuf))
		name := nameBuf[:length]
		location := gl.GetUniformLocation(p, gl.Str(name+"\x00"))
		if location < 0 {
			// Block members have no standalone location.
			continue
		}
		t, known := glTypeToRendererType(xtype)
		if !core.Ensure(known, "uniform %q has unsupported GL type 0x%x", name, xtype) {
			continue
		}
		u := renderer.UniformInfo{Name: name, Location: location, Type: t, TextureUnit: -1}
		if t.IsSampler() {
			u.TextureUnit = textureUnit
			gl.ProgramUniform1i(p, location, textureUnit)
			textureUnit++
		}
		info.Uniforms = append(info.Uniforms, u)
	}

	var blockCount int32
	gl.GetProgramiv(p, gl.ACTIVE_UNIFORM_BLOCKS, &blockCount)
	for i := int32(0); i < blockCount; i++ {
		var length int32
		gl.GetActiveUniformBlockName(p, uint32(i), 256, &length, gl.Str(nameBuf))
		var binding int32
		gl.GetActiveUniformBlockiv(p, uint32(i), gl.UNIFORM_BLOCK_BINDING, &binding)
		info.Blocks = append(info.Blocks, renderer.UniformBlockInfo{
			Name:    nameBuf[:length],
			Binding: uint32(binding),
		})
	}

	var inputCount int32
	gl.GetProgramiv(p, gl.ACTIVE_ATTRIBUTES, &inputCount)
	for i := int32(0); i < inputCount; i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveAttrib(p, uint32(i), 256, &length, &size, &xtype, gl.Str(nameBuf))
		name := nameBuf[:length]
		location := gl.GetAttribLocation(p, gl.Str(name+"\x00"))
		if location < 0 {
			continue
		}
		t, known := glTypeToRendererType(xtype)
		if !known {
			continue
		}
		info.Inputs = append(info.Inputs, renderer.InputInfo{Name: name, Location: location, Type: t})
	}

	return info
}

func (d *Device) UseProgram(h renderer.ProgramHandle) {
	if d.currentProgram == h {
		return
	}
	gl.UseProgram(uint32(h))
	d.currentProgram = h
}

func (d *Device) SetUniform(h renderer.ProgramHandle, location int32, value any) {
	p := uint32(h)
	switch v := value.(type) {
	case float32:
		gl.ProgramUniform1f(p, location, v)
	case int32:
		gl.ProgramUniform1i(p, location, v)
	case int:
		gl.ProgramUniform1i(p, location, int32(v))
	case uint32:
		gl.ProgramUniform1ui(p, location, v)
	case math.Vec2:
		gl.ProgramUniform2f(p, location, v.X, v.Y)
	case math.Vec3:
		gl.ProgramUniform3f(p, location, v.X, v.Y, v.Z)
	case math.Vec4:
		gl.ProgramUniform4f(p, location, v.X, v.Y, v.Z, v.W)
	case math.Mat4:
		gl.ProgramUniformMatrix4fv(p, location, 1, false, &v.Data[0])
	default:
		core.Ensure(false, "unsupported uniform value type %T at location %d", value, location)
	}
}

func attribBaseType(t metadata.RendererType) (base uint32, integer bool) {
	switch t {
	case metadata.TypeInt, metadata.TypeIVec2, metadata.TypeIVec3, metadata.TypeIVec4:
		return gl.INT, true
	case metadata.TypeUInt:
		return gl.UNSIGNED_INT, true
	case metadata.TypeByte:
		return gl.BYTE, true
	case metadata.TypeUByte:
		return gl.UNSIGNED_BYTE, true
	case metadata.TypeShort:
		return gl.SHORT, true
	case metadata.TypeUShort:
		return gl.UNSIGNED_SHORT, true
	}
	return gl.FLOAT, false
}

func (d *Device) CreateVertexArray(layout []metadata.TypeDescription) renderer.VertexArrayHandle {
	var h uint32
	gl.CreateVertexArrays(1, &h)
	for i, desc := range layout {
		attrib := uint32(i)
		gl.EnableVertexArrayAttrib(h, attrib)
		base, integer := attribBaseType(desc.Type)
		if integer {
			gl.VertexArrayAttribIFormat(h, attrib, desc.Type.ComponentCount(), base, desc.Offset)
		} else {
			gl.VertexArrayAttribFormat(h, attrib, desc.Type.ComponentCount(), base, false, desc.Offset)
		}
		gl.VertexArrayAttribBinding(h, attrib, 0)
	}
	return renderer.VertexArrayHandle(h)
}

func (d *Device) BindVertexArray(h renderer.VertexArrayHandle) {
	if d.currentVAO == h {
		return
	}
	gl.BindVertexArray(uint32(h))
	d.currentVAO = h
}

func (d *Device) BindVertexBuffer(vao renderer.VertexArrayHandle, buffer renderer.BufferHandle, stride uint32) {
	gl.VertexArrayVertexBuffer(uint32(vao), 0, uint32(buffer), 0, int32(stride))
}

func (d *Device) BindIndexBuffer(vao renderer.VertexArrayHandle, buffer renderer.BufferHandle) {
	gl.VertexArrayElementBuffer(uint32(vao), uint32(buffer))
}

func (d *Device) SetPipeline(state renderer.PipelineState) {
	if state.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	if state.CullFace {
		gl.Enable(gl.CULL_FACE)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
	if state.FrontFaceCCW {
		gl.FrontFace(gl.CCW)
	} else {
		gl.FrontFace(gl.CW)
	}
}

func (d *Device) Viewport(width, height uint32) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) Draw(vertexCount uint32) {
	gl.DrawArrays(gl.TRIANGLES, 0, int32(vertexCount))
}

func (d *Device) DrawIndexed(indexCount, indexStride uint32) {
	var indexType uint32
	switch indexStride {
	case 1:
		indexType = gl.UNSIGNED_BYTE
	case 2:
		indexType = gl.UNSIGNED_SHORT
	case 4:
		indexType = gl.UNSIGNED_INT
	default:
		core.Panicf("index stride %d has no OpenGL index type", indexStride)
	}
	gl.DrawElements(gl.TRIANGLES, int32(indexCount), indexType, gl.PtrOffset(0))
}
