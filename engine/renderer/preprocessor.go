package renderer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/raoe/engine/engine/core"
)

// IncludeLoader resolves an include path to the file's text.
type IncludeLoader func(path string) (string, bool)

var (
	includePattern = regexp.MustCompile(`^\s*#\s*include\s+(?:"([^"]+)"|<([^>]+)>)\s*$`)
	injectPattern  = regexp.MustCompile(`^\s*#\s*inject\s+"([^"]+)"\s*$`)
)

// maxIncludeDepth bounds include nesting so a cycle through files without
// #pragma once cannot recurse forever.
const maxIncludeDepth = 64

// Preprocess expands #include and #inject directives in a GLSL source.
// Included files are numbered in first-include order (the root source is
// file 0) and #line directives are emitted so that compiler errors map
// back to the originating file and line. A file declaring #pragma once is
// expanded at most once. All other #-directives pass through untouched.
func Preprocess(source string, load IncludeLoader, injections map[string]string) string {
	p := &preprocessor{
		load:       load,
		injections: injections,
		indices:    make(map[string]int),
		pragmaOnce: make(map[string]bool),
	}
	return p.expand(source, 0, 0)
}

type preprocessor struct {
	load       IncludeLoader
	injections map[string]string
	indices    map[string]int
	pragmaOnce map[string]bool
	counter    int
}

func (p *preprocessor) expand(source string, fileIndex, depth int) string {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		callerLine := i + 1

		if m := includePattern.FindStringSubmatch(line); m != nil {
			path := m[1]
			if path == "" {
				path = m[2]
			}
			out = append(out, p.expandInclude(path, callerLine, fileIndex, depth))
			continue
		}

		if m := injectPattern.FindStringSubmatch(line); m != nil {
			// A missing injection key deletes the line.
			out = append(out, p.injections[m[1]])
			continue
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

func (p *preprocessor) expandInclude(path string, callerLine, callerIndex, depth int) string {
	resume := fmt.Sprintf("#line %d %d", callerLine+1, callerIndex)

	if depth >= maxIncludeDepth {
		core.LogError("glsl include %q exceeds max include depth %d", path, maxIncludeDepth)
		return resume
	}

	text, ok := p.load(path)
	if !ok {
		core.LogError("glsl include %q could not be loaded", path)
		return resume
	}

	once := hasPragmaOnce(text)
	if _, seen := p.indices[path]; seen && once {
		// One-shot file already expanded; only the resume marker remains.
		return resume
	}

	index, seen := p.indices[path]
	if !seen {
		p.counter++
		index = p.counter
		p.indices[path] = index
		p.pragmaOnce[path] = once
	}

	expanded := p.expand(p.numberFile(text, index), index, depth+1)
	return expanded + "\n" + resume
}

// hasPragmaOnce reports whether the file carries the directive on a line of
// its own; "#pragma once" inside a comment or mid-line does not count.
func hasPragmaOnce(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "#pragma once" {
			return true
		}
	}
	return false
}

// numberFile strips #pragma once lines and inserts the #line directive
// that binds the file's text to its index. The directive goes after a
// leading #version line when there is one, and names the original line
// number of the first line that follows it.
func (p *preprocessor) numberFile(text string, index int) string {
	type srcLine struct {
		text string
		num  int
	}

	var kept []srcLine
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "#pragma once" {
			continue
		}
		kept = append(kept, srcLine{text: line, num: i + 1})
	}

	insertAt := 0
	if len(kept) > 0 && strings.HasPrefix(strings.TrimSpace(kept[0].text), "#version") {
		insertAt = 1
	}
	lineNum := 1
	if insertAt < len(kept) {
		lineNum = kept[insertAt].num
	}

	out := make([]string, 0, len(kept)+1)
	for _, l := range kept[:insertAt] {
		out = append(out, l.text)
	}
	out = append(out, fmt.Sprintf("#line %d %d", lineNum, index))
	for _, l := range kept[insertAt:] {
		out = append(out, l.text)
	}
	return strings.Join(out, "\n")
}
