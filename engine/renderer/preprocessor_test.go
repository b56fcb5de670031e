package renderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fileLoader(files map[string]string) IncludeLoader {
	return func(path string) (string, bool) {
		text, ok := files[path]
		return text, ok
	}
}

func TestPreprocessPassthrough(t *testing.T) {
	src := "#version 460 core\n#extension GL_ARB_gpu_shader_int64 : enable\nvoid main() {}"
	out := Preprocess(src, fileLoader(nil), nil)
	assert.Equal(t, src, out)
}

func TestPreprocessSingleInclude(t *testing.T) {
	files := map[string]string{
		"simple.glsl": "float a = 1.0;",
	}
	src := "#version 460 core\n#include \"simple.glsl\"\nvoid main() {}"

	out := Preprocess(src, fileLoader(files), nil)

	expected := strings.Join([]string{
		"#version 460 core",
		"#line 1 1",
		"float a = 1.0;",
		"#line 3 0",
		"void main() {}",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestPreprocessAngleBracketInclude(t *testing.T) {
	files := map[string]string{
		"lib/common.glsl": "int b;",
	}
	out := Preprocess("#include <lib/common.glsl>", fileLoader(files), nil)

	expected := strings.Join([]string{
		"#line 1 1",
		"int b;",
		"#line 2 0",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestPreprocessPragmaOnce(t *testing.T) {
	files := map[string]string{
		"test_include.glsl": "#pragma once\nconst int foo = 1;",
	}
	src := "#include \"test_include.glsl\"\n#include \"test_include.glsl\""

	out := Preprocess(src, fileLoader(files), nil)

	expected := strings.Join([]string{
		"#line 2 1",
		"const int foo = 1;",
		"#line 2 0",
		"#line 3 0",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestPreprocessRecursiveInclude(t *testing.T) {
	files := map[string]string{
		"a.glsl": "#include \"b.glsl\"\nfloat a;",
		"b.glsl": "#pragma once\nfloat b;",
	}
	src := "#include \"a.glsl\"\n#include \"b.glsl\""

	out := Preprocess(src, fileLoader(files), nil)

	expected := strings.Join([]string{
		"#line 1 1",
		"#line 2 2",
		"float b;",
		"#line 3 1",
		"float a;",
		"#line 2 0",
		"#line 3 0",
	}, "\n")
	assert.Equal(t, expected, out)

	// The one-shot file appears exactly once in the final text.
	assert.Equal(t, 1, strings.Count(out, "float b;"))
}

func TestPreprocessMissingIncludeLeavesMarker(t *testing.T) {
	out := Preprocess("#include \"nowhere.glsl\"\nint x;", fileLoader(nil), nil)
	expected := "#line 2 0\nint x;"
	assert.Equal(t, expected, out)
}

func TestPreprocessInject(t *testing.T) {
	injections := map[string]string{
		"ENTRY": "void main() { run(); }",
	}
	src := "#inject \"ENTRY\"\n#inject \"MISSING\"\nint y;"

	out := Preprocess(src, fileLoader(nil), injections)

	expected := "void main() { run(); }\n\nint y;"
	assert.Equal(t, expected, out)
}

func TestPreprocessNonDirectiveTextPreserved(t *testing.T) {
	src := "// mentioning #include mid-line is not a directive\nfloat s = 1.0; // #inject \"X\"\n   indented;"
	out := Preprocess(src, fileLoader(nil), nil)
	assert.Equal(t, src, out)
}

func TestPreprocessCommentedPragmaDoesNotSuppressReinclude(t *testing.T) {
	files := map[string]string{
		"c.glsl": "// #pragma once\nfloat c;",
	}
	src := "#include \"c.glsl\"\n#include \"c.glsl\""

	out := Preprocess(src, fileLoader(files), nil)

	// The commented directive neither strips the line nor makes the file
	// one-shot.
	assert.Equal(t, 2, strings.Count(out, "float c;"))
	assert.Equal(t, 2, strings.Count(out, "// #pragma once"))
}

func TestPreprocessSelfIncludeCappedAtMaxDepth(t *testing.T) {
	files := map[string]string{
		"loop.glsl": "#include \"loop.glsl\"\nfloat loop;",
	}

	out := Preprocess("#include \"loop.glsl\"", fileLoader(files), nil)

	assert.Equal(t, maxIncludeDepth, strings.Count(out, "float loop;"))
}
