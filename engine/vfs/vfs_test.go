package vfs

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHostFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/a/b", "a/b"},
		{"a//b", "a/b"},
		{"a/./b", "a/b"},
		{"a/x/../b", "a/b"},
		{"", ""},
		{"a\\b", "a/b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}

func TestPathDecomposition(t *testing.T) {
	assert.Equal(t, "core.toml", Filename("packs/core/core.toml"))
	assert.Equal(t, "core", Stem("packs/core/core.toml"))
	assert.Equal(t, "toml", Extension("packs/core/core.toml"))
	assert.Equal(t, "packs/core", ParentPath("packs/core/core.toml"))
	assert.Equal(t, []string{"packs", "core"}, Segments("packs/core"))
	assert.Equal(t, "", Extension("noext"))
}

func TestDirMountReadAndStat(t *testing.T) {
	dir := t.TempDir()
	writeHostFile(t, dir, "data/hello.txt", "hello world")

	v := New()
	require.NoError(t, v.Mount(dir, "", true))

	assert.True(t, v.Exists("data/hello.txt"))
	assert.False(t, v.Exists("data/missing.txt"))

	data, err := v.ReadFile("data/hello.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	s := v.Stat("data/hello.txt")
	assert.Equal(t, int64(11), s.Size)
	assert.Equal(t, FileTypeRegular, s.Type)

	assert.Equal(t, FileTypeDirectory, v.Stat("data").Type)
}

func TestStatMissingIsZero(t *testing.T) {
	v := New()
	require.NoError(t, v.Mount(t.TempDir(), "", true))
	assert.Equal(t, Stats{}, v.Stat("nope/missing.bin"))
}

func TestZipMount(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pack.zip")
	writeZip(t, archive, map[string]string{
		"core.toml":        "name = \"core\"",
		"shaders/main.vls": "void main() {}",
	})

	v := New()
	require.NoError(t, v.Mount(archive, "", true))

	assert.True(t, v.Exists("core.toml"))
	assert.True(t, v.Exists("shaders/main.vls"))
	assert.Equal(t, FileTypeDirectory, v.Stat("shaders").Type)

	data, err := v.ReadFile("shaders/main.vls")
	require.NoError(t, err)
	assert.Equal(t, "void main() {}", string(data))

	assert.True(t, v.Unmount(archive))
	assert.False(t, v.Exists("core.toml"))
}

func TestMountPriority(t *testing.T) {
	older := t.TempDir()
	newer := t.TempDir()
	writeHostFile(t, older, "cfg.txt", "old")
	writeHostFile(t, newer, "cfg.txt", "new")

	v := New()
	require.NoError(t, v.Mount(older, "", true))
	// append=false puts the mount first, overriding for read.
	require.NoError(t, v.Mount(newer, "", false))

	data, err := v.ReadFile("cfg.txt")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	v.Unmount(newer)
	data, err = v.ReadFile("cfg.txt")
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestMountPoint(t *testing.T) {
	dir := t.TempDir()
	writeHostFile(t, dir, "a.txt", "x")

	v := New()
	require.NoError(t, v.Mount(dir, "packs/core", true))

	assert.True(t, v.Exists("packs/core/a.txt"))
	assert.False(t, v.Exists("a.txt"))
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	v := New()
	v.SetWriteDir(dir)
	require.NoError(t, v.Mount(dir, "", true))

	payload := []byte{0x00, 0x01, 0xFE, 0xFF, 'r', 'a', 'o', 'e'}

	w, err := v.OpenWrite("save/state.bin", false)
	require.NoError(t, err)
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := v.Open("save/state.bin")
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.Equal(t, payload, got)
}

func TestOpenWriteAppend(t *testing.T) {
	dir := t.TempDir()
	v := New()
	v.SetWriteDir(dir)
	require.NoError(t, v.Mount(dir, "", true))

	for _, chunk := range []string{"one", "two"} {
		w, err := v.OpenWrite("log.txt", true)
		require.NoError(t, err)
		_, err = io.WriteString(w, chunk)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}

	data, err := v.ReadFile("log.txt")
	require.NoError(t, err)
	assert.Equal(t, "onetwo", string(data))
}

func TestWriteWithoutWriteDirFails(t *testing.T) {
	v := New()
	_, err := v.OpenWrite("x.txt", false)
	assert.Error(t, err)
	assert.False(t, v.MkDir("d"))
	assert.False(t, v.Delete("x.txt"))
}

func TestMkDirDelete(t *testing.T) {
	dir := t.TempDir()
	v := New()
	v.SetWriteDir(dir)
	require.NoError(t, v.Mount(dir, "", true))

	assert.True(t, v.MkDir("saves/slot0"))
	assert.Equal(t, FileTypeDirectory, v.Stat("saves/slot0").Type)

	writeHostFile(t, dir, "saves/slot0/a.bin", "x")
	assert.True(t, v.Delete("saves/slot0/a.bin"))
	assert.False(t, v.Exists("saves/slot0/a.bin"))
}

func TestSymlinkPolicy(t *testing.T) {
	dir := t.TempDir()
	target := writeHostFile(t, dir, "real.txt", "data")
	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	v := New()
	require.NoError(t, v.Mount(dir, "", true))

	assert.False(t, v.Exists("link.txt"))

	v.PermitSymlinks(true)
	assert.True(t, v.Exists("link.txt"))
	assert.Equal(t, FileTypeSymlink, v.Stat("link.txt").Type)
}

func TestArchiveExtensions(t *testing.T) {
	assert.Equal(t, []string{"zip"}, New().ArchiveExtensions())
}
