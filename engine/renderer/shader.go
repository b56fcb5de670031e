package renderer

import (
	"sort"

	"github.com/raoe/engine/engine/core"
	"github.com/raoe/engine/engine/renderer/metadata"
)

// Shader wraps a linked GPU program and its introspected interface.
type Shader struct {
	device             Device
	program            ProgramHandle
	name               string
	uniformsByLocation map[int32]*UniformInfo
	locationsByName    map[string]int32
	blocks             []UniformBlockInfo
	inputs             []InputInfo
}

// Builder collects per-stage sources and produces a linked Shader.
type Builder struct {
	device  Device
	name    string
	sources map[metadata.ShaderStage]string
}

func NewBuilder(device Device, name string) *Builder {
	return &Builder{
		device:  device,
		name:    name,
		sources: make(map[metadata.ShaderStage]string),
	}
}

// AddStage registers the (already preprocessed) source for one stage.
// Adding a stage twice replaces the earlier source.
func (b *Builder) AddStage(stage metadata.ShaderStage, source string) *Builder {
	b.sources[stage] = source
	return b
}

// buildOrder fixes the stage compile order so logs are deterministic.
var buildOrder = []metadata.ShaderStage{
	metadata.StageVertex,
	metadata.StageTesselationControl,
	metadata.StageTesselationEvaluation,
	metadata.StageGeometry,
	metadata.StageMesh,
	metadata.StageFragment,
	metadata.StageCompute,
}

// Build compiles, links and introspects the program. An illegal stage
// combination panics; compile and link failures are logged and reported
// by a false return.
func (b *Builder) Build() (*Shader, bool) {
	b.checkStages()

	var modules []ModuleHandle
	failed := false
	for _, stage := range buildOrder {
		source, ok := b.sources[stage]
		if !ok {
			continue
		}
		module, log := b.device.CompileModule(stage, source)
		if module == 0 {
			core.LogError("shader %q: %s stage failed to compile:\n%s\n--- source ---\n%s",
				b.name, stage, log, source)
			failed = true
			continue
		}
		modules = append(modules, module)
	}
	defer func() {
		for _, m := range modules {
			b.device.DestroyModule(m)
		}
	}()
	if failed {
		return nil, false
	}

	program, log := b.device.LinkProgram(modules)
	if program == 0 {
		core.LogError("shader %q: link failed:\n%s", b.name, log)
		return nil, false
	}

	info := b.device.Introspect(program)
	s := &Shader{
		device:             b.device,
		program:            program,
		name:               b.name,
		uniformsByLocation: make(map[int32]*UniformInfo, len(info.Uniforms)),
		locationsByName:    make(map[string]int32, len(info.Uniforms)),
		blocks:             info.Blocks,
		inputs:             info.Inputs,
	}
	for i := range info.Uniforms {
		u := &info.Uniforms[i]
		s.uniformsByLocation[u.Location] = u
		s.locationsByName[u.Name] = u.Location
	}
	sort.Slice(s.inputs, func(i, j int) bool {
		return s.inputs[i].Location < s.inputs[j].Location
	})
	return s, true
}

// checkStages enforces the legal stage combinations: compute alone,
// mesh+fragment, or vertex+fragment with optional geometry and an optional
// tesselation pair.
func (b *Builder) checkStages() {
	has := func(s metadata.ShaderStage) bool {
		_, ok := b.sources[s]
		return ok
	}

	if len(b.sources) == 0 {
		core.Panicf("shader %q: no stages to build", b.name)
	}
	if has(metadata.StageCompute) {
		if len(b.sources) != 1 {
			core.Panicf("shader %q: compute must be the only stage", b.name)
		}
		return
	}
	if has(metadata.StageMesh) {
		if !has(metadata.StageFragment) {
			core.Panicf("shader %q: mesh stage requires a fragment stage", b.name)
		}
		if len(b.sources) != 2 {
			core.Panicf("shader %q: mesh pipeline allows only mesh+fragment", b.name)
		}
		return
	}
	if !has(metadata.StageVertex) || !has(metadata.StageFragment) {
		core.Panicf("shader %q: classic pipeline requires vertex and fragment stages", b.name)
	}
	if has(metadata.StageTesselationControl) != has(metadata.StageTesselationEvaluation) {
		core.Panicf("shader %q: tesselation stages must come as a control+evaluation pair", b.name)
	}
}

func (s *Shader) Name() string { return s.name }

func (s *Shader) Program() ProgramHandle { return s.program }

func (s *Shader) Inputs() []InputInfo { return s.inputs }

func (s *Shader) Blocks() []UniformBlockInfo { return s.blocks }

// Uniform resolves an active uniform by name.
func (s *Shader) Uniform(name string) (*UniformInfo, bool) {
	loc, ok := s.locationsByName[name]
	if !ok {
		return nil, false
	}
	return s.uniformsByLocation[loc], true
}

// UniformAt resolves an active uniform by location.
func (s *Shader) UniformAt(location int32) (*UniformInfo, bool) {
	u, ok := s.uniformsByLocation[location]
	return u, ok
}

// Use binds the program.
func (s *Shader) Use() {
	s.device.UseProgram(s.program)
}

// SetUniform writes one uniform. Sampler uniforms take a TextureHandle,
// which is bound to the sampler's texture unit; everything else goes
// through the device's typed uniform write.
func (s *Shader) SetUniform(location int32, value any) {
	u, ok := s.uniformsByLocation[location]
	if !core.Ensure(ok, "shader %q has no uniform at location %d", s.name, location) {
		return
	}
	if u.Type.IsSampler() {
		handle, ok := value.(TextureHandle)
		if !core.Ensure(ok, "shader %q: sampler uniform %q needs a texture handle", s.name, u.Name) {
			return
		}
		s.device.BindTextureUnit(uint32(u.TextureUnit), handle)
		return
	}
	s.device.SetUniform(s.program, location, value)
}

// SetUniformByName writes one uniform by name; unknown names are ignored
// with a false return.
func (s *Shader) SetUniformByName(name string, value any) bool {
	loc, ok := s.locationsByName[name]
	if !ok {
		return false
	}
	s.SetUniform(loc, value)
	return true
}

// Release deletes the GPU program.
func (s *Shader) Release() {
	if s.program != 0 {
		s.device.DestroyProgram(s.program)
		s.program = 0
	}
}
