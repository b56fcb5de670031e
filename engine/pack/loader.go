package pack

import (
	"fmt"
	"io"

	"github.com/raoe/engine/engine/core"
	"github.com/raoe/engine/engine/ecs"
	"github.com/raoe/engine/engine/vfs"
)

// System loads content packs, mounts them on the VFS search path and keeps
// pack entity lifetime and mount lifetime paired.
type System struct {
	world *ecs.World
	fs    *vfs.VFS
}

func NewSystem(world *ecs.World, fs *vfs.VFS) *System {
	s := &System{world: world, fs: fs}

	// Packs flagged always-mounted mount in the same tick they are set;
	// everything else just announces its state.
	ecs.OnSet(world, func(w *ecs.World, e ecs.Entity, p *Pack) {
		if p.State == StateUnmounted && p.Flags.AlwaysMounted() {
			if !s.MountPack(e) {
				core.Panicf("always-mounted pack %q could not be mounted", p.Name)
			}
			return
		}
		core.EventPost(core.EventContext{
			Type: core.EVENT_CODE_PACK_STATE_CHANGE,
			Data: &StateChange{Entity: e, Name: p.Name, State: p.State},
		})
	})

	// Destroying a pack entity unmounts its content.
	ecs.OnRemove(world, func(w *ecs.World, e ecs.Entity, p *Pack) {
		if p.State == StateMounted && p.HostSource != "" {
			s.fs.Unmount(p.HostSource)
			p.State = StateUnmounted
			core.EventPost(core.EventContext{
				Type: core.EVENT_CODE_PACK_STATE_CHANGE,
				Data: &StateChange{Entity: e, Name: p.Name, State: StateUnmounted},
			})
		}
	})

	return s
}

// LoadPack parses the manifest at path (a virtual directory, or an
// extensionless base probed against the supported archive extensions) and
// stores the Pack component on the entity. The pack stays unmounted unless
// its flags force a mount. Returns nil on failure.
func (s *System) LoadPack(e ecs.Entity, path string, flags Flags) *Pack {
	path = vfs.Normalize(path)
	manifestName := vfs.Stem(path) + ".toml"

	var hostSource string
	var manifestData []byte

	st := s.fs.Stat(path)
	switch {
	case s.fs.Exists(path) && st.Type == vfs.FileTypeDirectory:
		host, ok := s.fs.HostPath(path)
		if !core.Ensure(ok, "pack %s: directory has no host path", path) {
			return nil
		}
		hostSource = host

		data, err := s.fs.ReadFile(path + "/" + manifestName)
		if err != nil {
			core.LogError("pack %s: manifest %s: %v", path, manifestName, err)
			return nil
		}
		manifestData = data

	default:
		// Probe path.<ext> for each supported archive extension; mount
		// the first hit just long enough to read its manifest.
		found := false
		for _, ext := range s.fs.ArchiveExtensions() {
			candidate := path + "." + ext
			if !s.fs.Exists(candidate) {
				continue
			}
			host, ok := s.fs.HostPath(candidate)
			if !ok {
				continue
			}
			hostSource = host
			found = true
			break
		}
		if !found {
			core.LogError("pack %s: no directory or supported archive found", path)
			return nil
		}

		probePoint := "__pack_probe"
		if err := s.fs.Mount(hostSource, probePoint, false); err != nil {
			core.LogError("pack %s: probe mount: %v", path, err)
			return nil
		}
		data, err := s.fs.ReadFile(probePoint + "/" + manifestName)
		s.fs.Unmount(hostSource)
		if err != nil {
			core.LogError("pack %s: manifest %s: %v", path, manifestName, err)
			return nil
		}
		manifestData = data
	}

	manifest, err := ParseManifest(manifestData)
	if err != nil {
		core.LogError("pack %s: manifest parse: %v", path, err)
		return nil
	}
	for dep, version := range manifest.Dependencies {
		core.LogDebug("pack %s depends on %s v%d", manifest.Name, dep, version)
	}

	return ecs.Set(s.world, e, Pack{
		Path:       path,
		Name:       manifest.Name,
		HostSource: hostSource,
		State:      StateUnmounted,
		Flags:      flags,
		Manifest:   manifest,
	})
}

// MountPack pushes the pack's content onto the VFS search path (highest
// read priority) and marks it mounted. Mounting twice is rejected.
func (s *System) MountPack(e ecs.Entity) bool {
	p, ok := ecs.Get[Pack](s.world, e)
	if !core.Ensure(ok, "MountPack: entity has no pack component") {
		return false
	}
	if p.State == StateMounted {
		core.LogWarn("pack %q already mounted", p.Name)
		return false
	}
	if p.HostSource == "" {
		core.LogError("pack %q has no host source to mount", p.Name)
		return false
	}
	if err := s.fs.Mount(p.HostSource, "", false); err != nil {
		core.LogError("pack %q mount: %v", p.Name, err)
		return false
	}
	p.State = StateMounted
	core.EventPost(core.EventContext{
		Type: core.EVENT_CODE_PACK_STATE_CHANGE,
		Data: &StateChange{Entity: e, Name: p.Name, State: StateMounted},
	})
	core.LogInfo("pack %q mounted (%s)", p.Name, p.Flags)
	return true
}

// LoadStringFromPack reads a file from the mounted namespace into a string.
// Returns "" when the path is missing; callers must treat empty as
// possibly-missing.
func (s *System) LoadStringFromPack(path string) string {
	if !s.fs.Exists(path) {
		return ""
	}
	r, err := s.fs.Open(path)
	if err != nil {
		core.LogError("LoadStringFromPack %s: %v", path, err)
		return ""
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		core.LogError("LoadStringFromPack %s: %v", path, err)
		return ""
	}
	return string(data)
}

// Validate checks that a loaded pack's backing content still exists on the
// host filesystem.
func (s *System) Validate(p *Pack) error {
	if p == nil {
		return fmt.Errorf("nil pack")
	}
	if p.HostSource == "" {
		return fmt.Errorf("pack %q has no host source", p.Name)
	}
	return nil
}
