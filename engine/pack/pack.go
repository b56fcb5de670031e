package pack

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/raoe/engine/engine/ecs"
)

// State tracks whether a pack's content is on the VFS search path.
type State int

const (
	StateUnmounted State = iota
	StateMounted
)

func (s State) String() string {
	if s == StateMounted {
		return "mounted"
	}
	return "unmounted"
}

// Flags classify a pack. System and game packs are mounted as soon as they
// are loaded.
type Flags uint8

const (
	FlagSystem Flags = 1 << iota
	FlagGame
	FlagDLC
	FlagMod
	FlagLocal
	FlagDownloaded
)

// AlwaysMounted reports whether the flag set forces an immediate mount.
func (f Flags) AlwaysMounted() bool {
	return f&(FlagSystem|FlagGame) != 0
}

func (f Flags) String() string {
	names := []struct {
		flag Flags
		name string
	}{
		{FlagSystem, "system"},
		{FlagGame, "game"},
		{FlagDLC, "dlc"},
		{FlagMod, "mod"},
		{FlagLocal, "local"},
		{FlagDownloaded, "downloaded"},
	}
	var out []string
	for _, n := range names {
		if f&n.flag != 0 {
			out = append(out, n.name)
		}
	}
	return strings.Join(out, "|")
}

// ScriptSet lists the script entry points a pack contributes per context.
type ScriptSet struct {
	Init   []string `toml:"init"`
	Game   []string `toml:"game"`
	Editor []string `toml:"editor"`
}

// Manifest is the parsed <name>.toml at a pack's root.
type Manifest struct {
	Name         string           `toml:"name"`
	Version      int64            `toml:"version"`
	Author       string           `toml:"author"`
	Description  string           `toml:"description"`
	Dependencies map[string]int64 `toml:"dependencies"`
	Scripts      ScriptSet        `toml:"scripts"`
}

// ParseManifest decodes TOML manifest bytes.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Pack is the component stored on a pack entity.
type Pack struct {
	// Path is the virtual path the pack was loaded from (directory or
	// extensionless archive base).
	Path string
	Name string
	// HostSource is the host path actually mounted (directory or archive
	// file); used to pair unmounts.
	HostSource string
	State      State
	Flags      Flags
	Manifest   Manifest
}

// StateChange is the payload of pack state-change events.
type StateChange struct {
	Entity ecs.Entity
	Name   string
	State  State
}
