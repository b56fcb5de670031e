// Package vfs layers a virtual, '/'-separated namespace over an ordered
// stack of mounted host directories and archives. Reads resolve against the
// first mount that contains the path; writes are confined to the single
// writable directory configured at init.
package vfs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/raoe/engine/engine/core"
)

type FileType int

const (
	FileTypeRegular FileType = iota
	FileTypeDirectory
	FileTypeSymlink
	FileTypeOther
)

// Stats describes a virtual path. A missing path yields the zero value.
type Stats struct {
	Size       int64
	ModifyTime time.Time
	CreateTime time.Time
	AccessTime time.Time
	Type       FileType
	ReadOnly   bool
}

// VFS is the mounted search path plus the write-directory policy. It is
// driven from the scheduler goroutine only.
type VFS struct {
	mounts         []mount
	writeDir       string
	permitSymlinks bool
	initialized    bool
}

func New() *VFS {
	return &VFS{}
}

// archiveExtensions lists the archive formats the backend can mount, probed
// in order by LoadPack when a pack path has no extension.
var archiveExtensions = []string{"zip"}

// ArchiveExtensions returns the supported archive extensions, without dots.
func (v *VFS) ArchiveExtensions() []string {
	return archiveExtensions
}

// Init anchors the filesystem: arg0 locates the executable directory,
// basePath (usually arg0's directory) becomes the first read mount, and the
// per-user preference directory derived from (orgName, appName) becomes the
// sole writable mount. Fatal on any host filesystem error.
func (v *VFS) Init(arg0, basePath, appName, orgName string) error {
	if v.initialized {
		return fmt.Errorf("vfs already initialized")
	}

	if basePath == "" {
		basePath = filepath.Dir(arg0)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return fmt.Errorf("vfs init: %w", err)
	}
	if err := v.Mount(abs, "", true); err != nil {
		return fmt.Errorf("vfs init: %w", err)
	}

	cfgRoot, err := os.UserConfigDir()
	if err != nil {
		return fmt.Errorf("vfs init: %w", err)
	}
	prefDir := filepath.Join(cfgRoot, orgName, appName)
	if err := os.MkdirAll(prefDir, 0o755); err != nil {
		return fmt.Errorf("vfs init: %w", err)
	}
	v.writeDir = prefDir
	if err := v.Mount(prefDir, "", false); err != nil {
		return fmt.Errorf("vfs init: %w", err)
	}

	v.initialized = true
	core.LogInfo("vfs initialized: base=%s prefs=%s", abs, prefDir)
	return nil
}

// SetWriteDir overrides the writable directory. Intended for tests and
// tools; the engine sets it from Init.
func (v *VFS) SetWriteDir(dir string) {
	v.writeDir = dir
}

// PermitSymlinks toggles traversal of host symlinks on read.
func (v *VFS) PermitSymlinks(permit bool) {
	v.permitSymlinks = permit
}

// Mount attaches a host directory or archive file at the virtual prefix
// mountPoint. append=true gives the mount the lowest read priority,
// append=false the highest.
func (v *VFS) Mount(hostPath, mountPoint string, appendMount bool) error {
	info, err := os.Stat(hostPath)
	if err != nil {
		return fmt.Errorf("mount %s: %w", hostPath, err)
	}

	var m mount
	point := Normalize(mountPoint)
	if info.IsDir() {
		m = newDirMount(hostPath, point)
	} else {
		ext := Extension(hostPath)
		supported := false
		for _, e := range archiveExtensions {
			if e == ext {
				supported = true
				break
			}
		}
		if !supported {
			return fmt.Errorf("mount %s: unsupported archive extension %q", hostPath, ext)
		}
		m, err = newZipMount(hostPath, point)
		if err != nil {
			return fmt.Errorf("mount %s: %w", hostPath, err)
		}
	}

	if appendMount {
		v.mounts = append(v.mounts, m)
	} else {
		v.mounts = append([]mount{m}, v.mounts...)
	}
	return nil
}

// Unmount detaches the mount created from hostPath. Returns false when no
// such mount exists.
func (v *VFS) Unmount(hostPath string) bool {
	for i, m := range v.mounts {
		if m.Source() == hostPath {
			if err := m.Close(); err != nil {
				core.LogError("unmount %s: %v", hostPath, err)
			}
			v.mounts = append(v.mounts[:i], v.mounts[i+1:]...)
			return true
		}
	}
	core.Ensure(false, "unmount: %s is not mounted", hostPath)
	return false
}

// IsMounted reports whether hostPath is currently on the search path.
func (v *VFS) IsMounted(hostPath string) bool {
	for _, m := range v.mounts {
		if m.Source() == hostPath {
			return true
		}
	}
	return false
}

// resolve finds the first mount containing the path.
func (v *VFS) resolve(vpath string) (mount, string, bool) {
	vpath = Normalize(vpath)
	for _, m := range v.mounts {
		rel, inside := stripPoint(m, vpath)
		if !inside {
			continue
		}
		if m.Contains(rel, v.permitSymlinks) {
			return m, rel, true
		}
	}
	return nil, "", false
}

// HostPath resolves a virtual path to the backing host path, when the
// owning mount is a plain directory. Paths inside archives have no host
// path of their own.
func (v *VFS) HostPath(vpath string) (string, bool) {
	m, rel, ok := v.resolve(vpath)
	if !ok {
		return "", false
	}
	dm, isDir := m.(*dirMount)
	if !isDir {
		return "", false
	}
	return dm.hostPath(rel), true
}

// Exists reports whether any mount contains the path.
func (v *VFS) Exists(vpath string) bool {
	_, _, ok := v.resolve(vpath)
	return ok
}

// Stat describes the path. A missing path returns the zero Stats record.
func (v *VFS) Stat(vpath string) Stats {
	m, rel, ok := v.resolve(vpath)
	if !ok {
		return Stats{}
	}
	s, _ := m.Stat(rel, v.permitSymlinks)
	return s
}

// Open returns a read stream for the path from the highest-priority mount
// containing it.
func (v *VFS) Open(vpath string) (io.ReadCloser, error) {
	m, rel, ok := v.resolve(vpath)
	if !ok {
		return nil, fmt.Errorf("open %s: %w", vpath, os.ErrNotExist)
	}
	return m.Open(rel)
}

// ReadFile reads the whole file into memory.
func (v *VFS) ReadFile(vpath string) ([]byte, error) {
	r, err := v.Open(vpath)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// writeHostPath maps a virtual path into the write directory, rejecting
// escapes.
func (v *VFS) writeHostPath(vpath string) (string, error) {
	if v.writeDir == "" {
		return "", fmt.Errorf("vfs: no write directory configured")
	}
	rel := Normalize(vpath)
	host := filepath.Join(v.writeDir, filepath.FromSlash(rel))
	return host, nil
}

// OpenWrite opens a write stream inside the write directory, truncating or
// appending per appendMode. Parent directories are created.
func (v *VFS) OpenWrite(vpath string, appendMode bool) (io.WriteCloser, error) {
	host, err := v.writeHostPath(vpath)
	if err != nil {
		core.Ensure(false, "OpenWrite %s: %v", vpath, err)
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(host), 0o755); err != nil {
		return nil, err
	}
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(host, flags, 0o644)
}

// MkDir creates a directory (and parents) in the write directory.
func (v *VFS) MkDir(vpath string) bool {
	host, err := v.writeHostPath(vpath)
	if err != nil {
		return false
	}
	if err := os.MkdirAll(host, 0o755); err != nil {
		core.Ensure(false, "MkDir %s: %v", vpath, err)
		return false
	}
	return true
}

// Delete removes a file or empty directory from the write directory.
func (v *VFS) Delete(vpath string) bool {
	host, err := v.writeHostPath(vpath)
	if err != nil {
		return false
	}
	if err := os.Remove(host); err != nil {
		core.Ensure(false, "Delete %s: %v", vpath, err)
		return false
	}
	return true
}

// Shutdown closes every mount.
func (v *VFS) Shutdown() {
	for _, m := range v.mounts {
		if err := m.Close(); err != nil {
			core.LogError("vfs shutdown: %v", err)
		}
	}
	v.mounts = nil
	v.initialized = false
}
