package renderer

import (
	"testing"

	"github.com/raoe/engine/engine/math"
	"github.com/raoe/engine/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDevice records every command so tests can assert on the submitted
// stream without a GL context.
type fakeDevice struct {
	nextHandle uint32

	buffers        map[BufferHandle][]byte
	bufferDynamic  map[BufferHandle]bool
	textures       map[TextureHandle]metadata.TextureData
	modules        map[ModuleHandle]metadata.ShaderStage
	programs       map[ProgramHandle][]ModuleHandle
	vertexArrays   map[VertexArrayHandle][]metadata.TypeDescription
	uniformWrites  map[int32]any
	boundTextures  map[uint32]TextureHandle
	currentProgram ProgramHandle
	boundVAO       VertexArrayHandle
	pipeline       PipelineState

	programInfo ProgramInfo
	failCompile map[metadata.ShaderStage]string
	failLink    string

	draws []fakeDraw
}

type fakeDraw struct {
	indexed bool
	count   uint32
	stride  uint32
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		buffers:       make(map[BufferHandle][]byte),
		bufferDynamic: make(map[BufferHandle]bool),
		textures:      make(map[TextureHandle]metadata.TextureData),
		modules:       make(map[ModuleHandle]metadata.ShaderStage),
		programs:      make(map[ProgramHandle][]ModuleHandle),
		vertexArrays:  make(map[VertexArrayHandle][]metadata.TypeDescription),
		uniformWrites: make(map[int32]any),
		boundTextures: make(map[uint32]TextureHandle),
		failCompile:   make(map[metadata.ShaderStage]string),
		programInfo: ProgramInfo{
			Uniforms: []UniformInfo{
				{Name: "mvp", Location: 0, Type: metadata.TypeMat4},
				{Name: "tex", Location: 1, Type: metadata.TypeSampler2D, TextureUnit: 0},
			},
		},
	}
}

func (d *fakeDevice) handle() uint32 {
	d.nextHandle++
	return d.nextHandle
}

func (d *fakeDevice) CreateBuffer() BufferHandle {
	h := BufferHandle(d.handle())
	d.buffers[h] = nil
	return h
}

func (d *fakeDevice) BufferData(h BufferHandle, data []byte, dynamic bool) {
	d.buffers[h] = append([]byte(nil), data...)
	d.bufferDynamic[h] = dynamic
}

func (d *fakeDevice) DestroyBuffer(h BufferHandle) { delete(d.buffers, h) }

func (d *fakeDevice) CreateTexture(data metadata.TextureData, params metadata.TextureParams) TextureHandle {
	h := TextureHandle(d.handle())
	d.textures[h] = data
	return h
}

func (d *fakeDevice) DestroyTexture(h TextureHandle) { delete(d.textures, h) }

func (d *fakeDevice) BindTextureUnit(unit uint32, h TextureHandle) { d.boundTextures[unit] = h }

func (d *fakeDevice) CompileModule(stage metadata.ShaderStage, source string) (ModuleHandle, string) {
	if log, ok := d.failCompile[stage]; ok {
		return 0, log
	}
	h := ModuleHandle(d.handle())
	d.modules[h] = stage
	return h, ""
}

func (d *fakeDevice) DestroyModule(h ModuleHandle) { delete(d.modules, h) }

func (d *fakeDevice) LinkProgram(modules []ModuleHandle) (ProgramHandle, string) {
	if d.failLink != "" {
		return 0, d.failLink
	}
	h := ProgramHandle(d.handle())
	d.programs[h] = append([]ModuleHandle(nil), modules...)
	return h, ""
}

func (d *fakeDevice) DestroyProgram(h ProgramHandle) { delete(d.programs, h) }

func (d *fakeDevice) Introspect(h ProgramHandle) ProgramInfo { return d.programInfo }

func (d *fakeDevice) UseProgram(h ProgramHandle) { d.currentProgram = h }

func (d *fakeDevice) SetUniform(h ProgramHandle, location int32, value any) {
	d.uniformWrites[location] = value
}

func (d *fakeDevice) CreateVertexArray(layout []metadata.TypeDescription) VertexArrayHandle {
	h := VertexArrayHandle(d.handle())
	d.vertexArrays[h] = layout
	return h
}

func (d *fakeDevice) BindVertexArray(h VertexArrayHandle) { d.boundVAO = h }

func (d *fakeDevice) BindVertexBuffer(vao VertexArrayHandle, buffer BufferHandle, stride uint32) {}

func (d *fakeDevice) BindIndexBuffer(vao VertexArrayHandle, buffer BufferHandle) {}

func (d *fakeDevice) SetPipeline(state PipelineState) { d.pipeline = state }

func (d *fakeDevice) Viewport(width, height uint32) {}

func (d *fakeDevice) Clear(r, g, b, a float32) {}

func (d *fakeDevice) Draw(vertexCount uint32) {
	d.draws = append(d.draws, fakeDraw{count: vertexCount})
}

func (d *fakeDevice) DrawIndexed(indexCount, indexStride uint32) {
	d.draws = append(d.draws, fakeDraw{indexed: true, count: indexCount, stride: indexStride})
}

func TestBufferTypedSetData(t *testing.T) {
	dev := newFakeDevice()
	b := NewBuffer(dev, BufferVertex, false)

	vertices := make([]metadata.StandardVertex, 3)
	SetTypedData(b, vertices, metadata.StandardVertexDescription())

	assert.Equal(t, uint32(3)*metadata.StandardVertexStride, b.Bytes())
	assert.Equal(t, uint32(3), b.ElementCount())
	assert.Equal(t, metadata.StandardVertexStride, b.ElementStride())
	assert.Equal(t, metadata.StandardVertexDescription(), b.Descriptions())
	require.NotZero(t, b.Handle())
	assert.Len(t, dev.buffers[b.Handle()], int(b.Bytes()))
}

func TestBufferLazyAllocationAndRelease(t *testing.T) {
	dev := newFakeDevice()
	b := NewBuffer(dev, BufferIndex, false)
	assert.Zero(t, b.Handle())

	indices := []uint16{0, 1, 2}
	SetTypedData(b, indices, nil)
	require.NotZero(t, b.Handle())
	assert.Equal(t, uint32(6), b.Bytes())
	assert.Equal(t, uint32(2), b.ElementStride())

	b.Release()
	assert.Zero(t, b.Handle())
	assert.Zero(t, b.Bytes())
	assert.Empty(t, dev.buffers)
}

func TestLayoutHashOrderSensitive(t *testing.T) {
	a := []metadata.TypeDescription{
		{Type: metadata.TypeVec3, Offset: 0, Size: 12, Hint: metadata.HintPosition},
		{Type: metadata.TypeVec2, Offset: 12, Size: 8, Hint: metadata.HintUV},
	}
	b := []metadata.TypeDescription{a[1], a[0]}
	assert.NotEqual(t, metadata.LayoutHash(a), metadata.LayoutHash(b))
	assert.Equal(t, metadata.LayoutHash(a), metadata.LayoutHash(a))
}

func TestShaderBuildIntrospection(t *testing.T) {
	dev := newFakeDevice()
	dev.programInfo = ProgramInfo{
		Uniforms: []UniformInfo{
			{Name: "mvp", Location: 0, Type: metadata.TypeMat4},
			{Name: "tint", Location: 4, Type: metadata.TypeVec4},
			{Name: "tex", Location: 2, Type: metadata.TypeSampler2D, TextureUnit: 3},
		},
		Inputs: []InputInfo{
			{Name: "in_uv", Location: 2, Type: metadata.TypeVec2},
			{Name: "in_position", Location: 0, Type: metadata.TypeVec3},
		},
	}

	s, ok := NewBuilder(dev, "test").
		AddStage(metadata.StageVertex, "v").
		AddStage(metadata.StageFragment, "f").
		Build()
	require.True(t, ok)

	u, ok := s.Uniform("tint")
	require.True(t, ok)
	assert.Equal(t, int32(4), u.Location)

	byLoc, ok := s.UniformAt(2)
	require.True(t, ok)
	assert.Equal(t, "tex", byLoc.Name)

	// Inputs come back sorted by location.
	require.Len(t, s.Inputs(), 2)
	assert.Equal(t, "in_position", s.Inputs()[0].Name)
	assert.Equal(t, "in_uv", s.Inputs()[1].Name)

	// Shader modules are destroyed after linking.
	assert.Empty(t, dev.modules)
}

func TestShaderCompileFailureReturnsFalse(t *testing.T) {
	dev := newFakeDevice()
	dev.failCompile[metadata.StageFragment] = "syntax error"

	_, ok := NewBuilder(dev, "broken").
		AddStage(metadata.StageVertex, "v").
		AddStage(metadata.StageFragment, "f").
		Build()
	assert.False(t, ok)
}

func TestShaderLinkFailureReturnsFalse(t *testing.T) {
	dev := newFakeDevice()
	dev.failLink = "unresolved symbol"

	_, ok := NewBuilder(dev, "broken").
		AddStage(metadata.StageVertex, "v").
		AddStage(metadata.StageFragment, "f").
		Build()
	assert.False(t, ok)
	assert.Empty(t, dev.programs)
}

func TestShaderSamplerUniformBindsUnit(t *testing.T) {
	dev := newFakeDevice()
	dev.programInfo.Uniforms[1].TextureUnit = 5

	s, ok := NewBuilder(dev, "test").
		AddStage(metadata.StageVertex, "v").
		AddStage(metadata.StageFragment, "f").
		Build()
	require.True(t, ok)

	s.SetUniformByName("tex", TextureHandle(42))
	assert.Equal(t, TextureHandle(42), dev.boundTextures[5])

	// Non-sampler uniforms go through the device uniform write.
	s.SetUniformByName("mvp", math.NewMat4Identity())
	assert.Equal(t, math.NewMat4Identity(), dev.uniformWrites[0])

	assert.False(t, s.SetUniformByName("no_such_uniform", 1))
}

func TestMaterialDeferredAssignments(t *testing.T) {
	dev := newFakeDevice()
	s, ok := NewBuilder(dev, "test").
		AddStage(metadata.StageVertex, "v").
		AddStage(metadata.StageFragment, "f").
		Build()
	require.True(t, ok)

	m := NewMaterial(s)
	require.True(t, m.Set("mvp", math.NewMat4Identity()))
	assert.False(t, m.Set("missing", 1))

	// Nothing reaches the device until the material is used.
	assert.Empty(t, dev.uniformWrites)

	m.Use()
	assert.Equal(t, s.Program(), dev.currentProgram)
	assert.Equal(t, math.NewMat4Identity(), dev.uniformWrites[0])
}

func TestMeshElementDirtyLifecycle(t *testing.T) {
	dev := newFakeDevice()
	e := GenerateCubeMeshElement(1, 1, 1)

	assert.True(t, e.Dirty())
	assert.Equal(t, uint32(24), e.VertexCount())
	assert.Equal(t, uint32(36), e.IndexCount())

	e.GenerateBuffers(dev)
	assert.False(t, e.Dirty())
	assert.Len(t, dev.buffers, 2)

	// Touching the data dirties the element again.
	SetIndices16(e, []uint16{0, 1, 2})
	assert.True(t, e.Dirty())

	e.Release()
	assert.True(t, e.Dirty())
	assert.Empty(t, dev.buffers)
}

func newTestRenderer(t *testing.T) (*Renderer, *fakeDevice) {
	t.Helper()
	dev := newFakeDevice()
	r := New(dev)
	r.Initialize(640, 480)
	return r, dev
}

func TestRendererInitializeBuildsFallbacks(t *testing.T) {
	r, dev := newTestRenderer(t)
	require.NotNil(t, r.ErrorShader())
	require.NotNil(t, r.ErrorTexture())

	data := dev.textures[r.ErrorTexture().Handle()]
	assert.Equal(t, uint32(16), data.Width)
	// Checkerboard: first cell and its diagonal neighbour share a colour,
	// the adjacent cell differs.
	first := data.Pixels[0:4]
	adjacent := data.Pixels[4*4 : 4*4+4]
	assert.NotEqual(t, first, adjacent)
}

func TestRenderMeshFallsBackToErrorShader(t *testing.T) {
	r, dev := newTestRenderer(t)

	mesh := &Mesh{
		Name:  "cube",
		Parts: []MeshPart{{Element: GenerateCubeMeshElement(1, 1, 1)}},
	}

	r.RenderMesh(math.NewMat4Identity(), mesh, math.NewMat4Translation(math.NewVec3(1, 2, 3)))

	assert.Equal(t, r.ErrorShader().Program(), dev.currentProgram)
	// The error texture is bound for the tex sampler.
	assert.Equal(t, r.ErrorTexture().Handle(), dev.boundTextures[0])
	// mvp = camera × world; with identity camera that is the world matrix.
	assert.Equal(t, math.NewMat4Translation(math.NewVec3(1, 2, 3)), dev.uniformWrites[0])

	require.Len(t, dev.draws, 1)
	assert.True(t, dev.draws[0].indexed)
	assert.Equal(t, uint32(36), dev.draws[0].count)
	assert.Equal(t, uint32(2), dev.draws[0].stride)

	// Depth test on, no face culling, CCW front faces.
	assert.Equal(t, PipelineState{DepthTest: true, CullFace: false, FrontFaceCCW: true}, dev.pipeline)
}

func TestRenderMeshReusesVertexArray(t *testing.T) {
	r, dev := newTestRenderer(t)

	mesh := &Mesh{Parts: []MeshPart{
		{Element: GenerateCubeMeshElement(1, 1, 1)},
		{Element: GenerateCubeMeshElement(2, 2, 2)},
	}}

	r.RenderMesh(math.NewMat4Identity(), mesh, math.NewMat4Identity())
	r.RenderMesh(math.NewMat4Identity(), mesh, math.NewMat4Identity())

	// Both elements share the standard vertex layout: one VAO total.
	assert.Len(t, dev.vertexArrays, 1)
	assert.Len(t, dev.draws, 4)
}

func TestRenderMeshNonIndexedDraw(t *testing.T) {
	r, dev := newTestRenderer(t)

	e := NewMeshElement()
	SetVertices(e, make([]metadata.StandardVertex, 3), metadata.StandardVertexDescription())

	r.RenderMesh(math.NewMat4Identity(), &Mesh{Parts: []MeshPart{{Element: e}}}, math.NewMat4Identity())

	require.Len(t, dev.draws, 1)
	assert.False(t, dev.draws[0].indexed)
	assert.Equal(t, uint32(3), dev.draws[0].count)
}

func TestGeneratedErrorShaderSources(t *testing.T) {
	vs, fs := GenerateErrorShaderSources(metadata.StandardVertexDescription())

	assert.Contains(t, vs, "layout(location = 0) in vec3 in_position;")
	assert.Contains(t, vs, "layout(location = 2) in vec2 in_uv;")
	assert.Contains(t, vs, "uniform mat4 mvp;")
	assert.Contains(t, vs, "v_uv = in_uv;")
	assert.Contains(t, fs, "uniform sampler2D tex;")
	assert.Contains(t, fs, "v_normal")

	// Without UVs the vertex shader falls back to position-derived UVs.
	noUV := []metadata.TypeDescription{
		{Type: metadata.TypeVec3, Offset: 0, Size: 12, Hint: metadata.HintPosition},
	}
	vs2, _ := GenerateErrorShaderSources(noUV)
	assert.Contains(t, vs2, "v_uv = in_position.xy;")
}

func TestGeneratedErrorShaderWithoutPositionStaysCompilable(t *testing.T) {
	layout := []metadata.TypeDescription{
		{Type: metadata.TypeVec4, Offset: 0, Size: 16, Hint: metadata.HintColor},
	}

	vs, _ := GenerateErrorShaderSources(layout)

	assert.NotContains(t, vs, "in_position")
	assert.Contains(t, vs, "gl_Position = vec4(0.0, 0.0, 0.0, 1.0);")
	assert.Contains(t, vs, "v_uv = vec2(0.0);")
}
