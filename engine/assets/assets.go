// Package assets turns files in the virtual filesystem into typed,
// reference-counted asset entities. Every loaded asset is an entity named
// by its path, carrying the domain component (string, texture data, shader
// source, ...) next to a Meta component with its load state.
package assets

import (
	"io"
	"reflect"

	"github.com/raoe/engine/engine/core"
	"github.com/raoe/engine/engine/ecs"
	"github.com/raoe/engine/engine/vfs"
)

type LoadState uint8

const (
	StateNotLoaded LoadState = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateNotLoaded:
		return "not_loaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Meta is attached to every asset entity alongside its domain component.
type Meta struct {
	Name      string
	Path      string
	LoadState LoadState
}

// LoadContext is handed to a loader; the stream is positioned at the start
// of the file and closed by the caller.
type LoadContext struct {
	Reader io.Reader
	Path   string
	Meta   *Meta
}

// Loader produces the domain component for one asset type.
type Loader[T any] func(ctx *LoadContext) (T, error)

// System resolves asset paths against the VFS and owns the loader registry.
type System struct {
	world   *ecs.World
	fs      *vfs.VFS
	loaders map[reflect.Type]any
}

func NewSystem(world *ecs.World, fs *vfs.VFS) *System {
	return &System{
		world:   world,
		fs:      fs,
		loaders: make(map[reflect.Type]any),
	}
}

// RegisterLoader binds the loader used for assets of type T. Registering a
// second loader for the same type replaces the first.
func RegisterLoader[T any](s *System, loader Loader[T]) {
	var zero T
	t := reflect.TypeOf(zero)
	if _, ok := s.loaders[t]; ok {
		core.LogWarn("asset loader for %v replaced", t)
	}
	s.loaders[t] = loader
}

// LoadAsset reads path through the VFS, runs the registered loader for T
// and wraps the result in a new asset entity named by the path. The
// returned strong handle is the caller's unit of ownership.
func LoadAsset[T any](s *System, path string) (Handle[T], bool) {
	path = vfs.Normalize(path)

	st := s.fs.Stat(path)
	if !core.Ensure(s.fs.Exists(path) && st.Type == vfs.FileTypeRegular,
		"asset %s is not a regular file", path) {
		return Handle[T]{}, false
	}

	var zero T
	entry, ok := s.loaders[reflect.TypeOf(zero)]
	if !core.Ensure(ok, "no asset loader registered for %T", zero) {
		return Handle[T]{}, false
	}
	loader := entry.(Loader[T])

	r, err := s.fs.Open(path)
	if err != nil {
		core.LogError("asset %s: %v", path, err)
		return Handle[T]{}, false
	}
	defer r.Close()

	meta := Meta{Name: vfs.Filename(path), Path: path, LoadState: StateLoading}
	value, err := loader(&LoadContext{Reader: r, Path: path, Meta: &meta})
	if err != nil {
		core.LogError("asset %s: load failed: %v", path, err)
		return Handle[T]{}, false
	}
	meta.LoadState = StateLoaded

	e := s.world.CreateNamedEntity(path)
	ecs.Set(s.world, e, value)
	ecs.Set(s.world, e, meta)
	core.LogDebug("asset %s loaded (%T)", path, value)

	return newHandle[T](s.world, e), true
}
