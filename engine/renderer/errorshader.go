package renderer

import (
	"fmt"
	"strings"

	"github.com/raoe/engine/engine/core"
	"github.com/raoe/engine/engine/renderer/metadata"
)

// glslTypeName maps a renderer type to its GLSL spelling for generated
// shader code.
func glslTypeName(t metadata.RendererType) string {
	switch t {
	case metadata.TypeFloat:
		return "float"
	case metadata.TypeVec2:
		return "vec2"
	case metadata.TypeVec3:
		return "vec3"
	case metadata.TypeVec4, metadata.TypeColor:
		return "vec4"
	case metadata.TypeInt:
		return "int"
	case metadata.TypeIVec2:
		return "ivec2"
	case metadata.TypeIVec3:
		return "ivec3"
	case metadata.TypeIVec4:
		return "ivec4"
	case metadata.TypeUInt:
		return "uint"
	case metadata.TypeMat3:
		return "mat3"
	case metadata.TypeMat4:
		return "mat4"
	case metadata.TypeSampler2D:
		return "sampler2D"
	case metadata.TypeSamplerCube:
		return "samplerCube"
	}
	return "float"
}

// GenerateErrorShaderSources synthesizes the fallback vertex+fragment pair
// from a vertex layout. Attribute declarations come from the layout's
// semantic hints; UVs fall back to position.xy when absent and a fixed
// directional light is applied when normals are present. The layout is
// expected to carry a position attribute; without one the clip position
// degenerates to the origin.
func GenerateErrorShaderSources(layout []metadata.TypeDescription) (vertex, fragment string) {
	hasPosition := false
	hasUV := false
	hasNormal := false

	var vs strings.Builder
	vs.WriteString("#version 460 core\n")
	for i, d := range layout {
		name := fmt.Sprintf("in_%s", d.Hint)
		if d.Hint == metadata.HintNone {
			name = fmt.Sprintf("in_attr%d", i)
		}
		fmt.Fprintf(&vs, "layout(location = %d) in %s %s;\n", i, glslTypeName(d.Type), name)
		switch d.Hint {
		case metadata.HintPosition:
			hasPosition = true
		case metadata.HintUV:
			hasUV = true
		case metadata.HintNormal:
			hasNormal = true
		}
	}
	core.Ensure(hasPosition, "error shader layout has no position attribute")
	vs.WriteString("uniform mat4 mvp;\n")
	vs.WriteString("out vec2 v_uv;\n")
	if hasNormal {
		vs.WriteString("out vec3 v_normal;\n")
	}
	vs.WriteString("void main() {\n")
	if hasPosition {
		vs.WriteString("    gl_Position = mvp * vec4(in_position, 1.0);\n")
	} else {
		vs.WriteString("    gl_Position = vec4(0.0, 0.0, 0.0, 1.0);\n")
	}
	switch {
	case hasUV:
		vs.WriteString("    v_uv = in_uv;\n")
	case hasPosition:
		vs.WriteString("    v_uv = in_position.xy;\n")
	default:
		vs.WriteString("    v_uv = vec2(0.0);\n")
	}
	if hasNormal {
		vs.WriteString("    v_normal = in_normal;\n")
	}
	vs.WriteString("}\n")

	var fs strings.Builder
	fs.WriteString("#version 460 core\n")
	fs.WriteString("in vec2 v_uv;\n")
	if hasNormal {
		fs.WriteString("in vec3 v_normal;\n")
	}
	fs.WriteString("uniform sampler2D tex;\n")
	fs.WriteString("out vec4 out_color;\n")
	fs.WriteString("void main() {\n")
	fs.WriteString("    vec4 base = texture(tex, v_uv);\n")
	if hasNormal {
		fs.WriteString("    vec3 light_dir = normalize(vec3(0.4, -1.0, 0.2));\n")
		fs.WriteString("    float lit = max(dot(normalize(v_normal), -light_dir), 0.2);\n")
		fs.WriteString("    out_color = vec4(base.rgb * lit, base.a);\n")
	} else {
		fs.WriteString("    out_color = base;\n")
	}
	fs.WriteString("}\n")

	return vs.String(), fs.String()
}
