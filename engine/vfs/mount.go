package vfs

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// mount maps a host directory or archive onto a virtual prefix.
type mount interface {
	// Source is the host path identity the mount was created from.
	Source() string
	// Point is the virtual prefix the mount is attached to ("" = root).
	Point() string
	// Contains reports whether the mount's namespace holds the path,
	// already stripped of the mount point.
	Contains(rel string, permitSymlinks bool) bool
	// Open returns a read stream for the contained path.
	Open(rel string) (io.ReadCloser, error)
	// Stat describes the contained path; ok=false when missing.
	Stat(rel string, permitSymlinks bool) (Stats, bool)
	// Close releases any host resources held by the mount.
	Close() error
}

// stripPoint rewrites a virtual path into a mount-relative one.
// ok=false when the path lies outside the mount point.
func stripPoint(m mount, vpath string) (string, bool) {
	point := m.Point()
	if point == "" {
		return vpath, true
	}
	if vpath == point {
		return "", true
	}
	if strings.HasPrefix(vpath, point+"/") {
		return vpath[len(point)+1:], true
	}
	return "", false
}

// dirMount serves a host directory.
type dirMount struct {
	source string
	point  string
}

func newDirMount(hostPath, point string) *dirMount {
	return &dirMount{source: hostPath, point: point}
}

func (d *dirMount) Source() string { return d.source }
func (d *dirMount) Point() string  { return d.point }
func (d *dirMount) Close() error   { return nil }

func (d *dirMount) hostPath(rel string) string {
	return filepath.Join(d.source, filepath.FromSlash(rel))
}

func (d *dirMount) Contains(rel string, permitSymlinks bool) bool {
	_, ok := d.Stat(rel, permitSymlinks)
	return ok
}

func (d *dirMount) Open(rel string) (io.ReadCloser, error) {
	return os.Open(d.hostPath(rel))
}

func (d *dirMount) Stat(rel string, permitSymlinks bool) (Stats, bool) {
	host := d.hostPath(rel)
	info, err := os.Lstat(host)
	if err != nil {
		return Stats{}, false
	}
	if info.Mode()&os.ModeSymlink != 0 {
		if !permitSymlinks {
			return Stats{}, false
		}
		target, err := os.Stat(host)
		if err != nil {
			return Stats{}, false
		}
		s := statsFromInfo(target)
		s.Type = FileTypeSymlink
		return s, true
	}
	return statsFromInfo(info), true
}

func statsFromInfo(info os.FileInfo) Stats {
	s := Stats{
		Size:       info.Size(),
		ModifyTime: info.ModTime(),
		// Creation and access times are not portably exposed by the Go
		// runtime; mirror the modify time.
		CreateTime: info.ModTime(),
		AccessTime: info.ModTime(),
		ReadOnly:   info.Mode().Perm()&0200 == 0,
	}
	switch {
	case info.IsDir():
		s.Type = FileTypeDirectory
	case info.Mode().IsRegular():
		s.Type = FileTypeRegular
	default:
		s.Type = FileTypeOther
	}
	return s
}

// zipMount serves the contents of a zip archive.
type zipMount struct {
	source string
	point  string
	reader *zip.ReadCloser
	files  map[string]*zip.File
	dirs   map[string]bool
}

func newZipMount(hostPath, point string) (*zipMount, error) {
	r, err := zip.OpenReader(hostPath)
	if err != nil {
		return nil, err
	}
	zm := &zipMount{
		source: hostPath,
		point:  point,
		reader: r,
		files:  make(map[string]*zip.File),
		dirs:   make(map[string]bool),
	}
	for _, f := range r.File {
		name := Normalize(f.Name)
		if name == "" {
			continue
		}
		if f.FileInfo().IsDir() {
			zm.dirs[name] = true
			continue
		}
		zm.files[name] = f
		for parent := ParentPath(name); parent != ""; parent = ParentPath(parent) {
			zm.dirs[parent] = true
		}
	}
	return zm, nil
}

func (z *zipMount) Source() string { return z.source }
func (z *zipMount) Point() string  { return z.point }
func (z *zipMount) Close() error   { return z.reader.Close() }

func (z *zipMount) Contains(rel string, _ bool) bool {
	if rel == "" {
		return true
	}
	_, ok := z.files[rel]
	return ok || z.dirs[rel]
}

func (z *zipMount) Open(rel string) (io.ReadCloser, error) {
	f, ok := z.files[rel]
	if !ok {
		return nil, os.ErrNotExist
	}
	return f.Open()
}

func (z *zipMount) Stat(rel string, _ bool) (Stats, bool) {
	if f, ok := z.files[rel]; ok {
		return Stats{
			Size:       int64(f.UncompressedSize64),
			ModifyTime: f.Modified,
			CreateTime: f.Modified,
			AccessTime: f.Modified,
			Type:       FileTypeRegular,
			ReadOnly:   true,
		}, true
	}
	if rel == "" || z.dirs[rel] {
		return Stats{Type: FileTypeDirectory, ReadOnly: true, ModifyTime: time.Time{}}, true
	}
	return Stats{}, false
}
