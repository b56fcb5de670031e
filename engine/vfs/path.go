package vfs

import "strings"

// Virtual paths are UTF-8 and '/'-separated. Internally they are stored
// without a leading slash; "" is the namespace root.

// Normalize collapses separators and strips any leading slash so that
// "a//b", "/a/b" and "a/b" address the same node.
func Normalize(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	segments := strings.Split(path, "/")
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		switch s {
		case "", ".":
			continue
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, s)
		}
	}
	return strings.Join(out, "/")
}

// Filename returns the final path segment.
func Filename(path string) string {
	path = Normalize(path)
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// Stem returns the filename without its last extension.
func Stem(path string) string {
	name := Filename(path)
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[:idx]
	}
	return name
}

// Extension returns the last extension without the dot, or "".
func Extension(path string) string {
	name := Filename(path)
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[idx+1:]
	}
	return ""
}

// ParentPath returns the path with the final segment removed.
func ParentPath(path string) string {
	path = Normalize(path)
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[:idx]
	}
	return ""
}

// Segments splits the path into its components.
func Segments(path string) []string {
	path = Normalize(path)
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
