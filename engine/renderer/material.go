package renderer

import "github.com/raoe/engine/engine/core"

// Material pairs a shader with deferred uniform assignments. Assignments
// accumulate between frames and are written to the GPU when the material
// is used; setting the same uniform again simply overwrites the pending
// value.
type Material struct {
	shader  *Shader
	pending map[int32]any
}

func NewMaterial(shader *Shader) *Material {
	return &Material{
		shader:  shader,
		pending: make(map[int32]any),
	}
}

func (m *Material) Shader() *Shader { return m.shader }

// Set stages a uniform assignment by name. Unknown names are reported by
// a soft assertion and dropped.
func (m *Material) Set(name string, value any) bool {
	u, ok := m.shader.Uniform(name)
	if !core.Ensure(ok, "material: shader %q has no uniform %q", m.shader.Name(), name) {
		return false
	}
	m.pending[u.Location] = value
	return true
}

// SetLocation stages a uniform assignment by location.
func (m *Material) SetLocation(location int32, value any) {
	m.pending[location] = value
}

// Use binds the shader and flushes every staged assignment.
func (m *Material) Use() {
	m.shader.Use()
	m.Flush()
}

// Flush writes the staged assignments to the currently bound program.
func (m *Material) Flush() {
	for location, value := range m.pending {
		m.shader.SetUniform(location, value)
	}
}
