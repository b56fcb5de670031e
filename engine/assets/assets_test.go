package assets

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/raoe/engine/engine/ecs"
	"github.com/raoe/engine/engine/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSystem(t *testing.T) (*ecs.World, *System, string) {
	t.Helper()
	base := t.TempDir()
	fs := vfs.New()
	require.NoError(t, fs.Mount(base, "", true))

	world := ecs.NewWorld()
	sys := NewSystem(world, fs)
	RegisterLoader(sys, func(ctx *LoadContext) (string, error) {
		data, err := io.ReadAll(ctx.Reader)
		return string(data), err
	})
	return world, sys, base
}

func writeFile(t *testing.T, base, name, contents string) {
	t.Helper()
	full := filepath.Join(base, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(contents), 0o644))
}

func TestLoadAssetCreatesNamedEntity(t *testing.T) {
	world, sys, base := newTestSystem(t)
	writeFile(t, base, "greeting.txt", "hello")

	h, ok := LoadAsset[string](sys, "greeting.txt")
	require.True(t, ok)
	defer h.Release()

	assert.True(t, h.Valid())
	assert.Equal(t, "hello", *h.Get())

	e := world.Lookup("greeting.txt")
	assert.Equal(t, h.Entity(), e)

	meta := h.Meta()
	require.NotNil(t, meta)
	assert.Equal(t, StateLoaded, meta.LoadState)
	assert.Equal(t, "greeting.txt", meta.Name)
}

func TestLoadAssetMissingFileFails(t *testing.T) {
	_, sys, _ := newTestSystem(t)
	h, ok := LoadAsset[string](sys, "missing.txt")
	assert.False(t, ok)
	assert.False(t, h.Valid())
}

func TestLoadAssetDirectoryRejected(t *testing.T) {
	_, sys, base := newTestSystem(t)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "subdir"), 0o755))

	_, ok := LoadAsset[string](sys, "subdir")
	assert.False(t, ok)
}

func TestLoadAssetUnregisteredTypeFails(t *testing.T) {
	_, sys, base := newTestSystem(t)
	writeFile(t, base, "data.bin", "xx")

	_, ok := LoadAsset[int64](sys, "data.bin")
	assert.False(t, ok)
}

func TestStrongHandleLifetime(t *testing.T) {
	world, sys, base := newTestSystem(t)
	writeFile(t, base, "a.txt", "a")

	h1, ok := LoadAsset[string](sys, "a.txt")
	require.True(t, ok)
	e := h1.Entity()

	// Copying and dropping the copy leaves the original alive.
	h2 := h1.Clone()
	h2.Release()
	assert.True(t, world.Alive(e))
	assert.True(t, h1.Valid())

	// Dropping the last strong handle destroys the entity exactly once.
	h1.Release()
	assert.False(t, world.Alive(e))
	assert.Equal(t, ecs.Nil, world.Lookup("a.txt"))

	// Double release is a no-op.
	h1.Release()
}

func TestWeakHandleUpgrade(t *testing.T) {
	world, sys, base := newTestSystem(t)
	writeFile(t, base, "b.txt", "b")

	h, ok := LoadAsset[string](sys, "b.txt")
	require.True(t, ok)

	w := h.Weak()
	assert.True(t, w.Valid())

	up, ok := w.Upgrade()
	require.True(t, ok)
	assert.Equal(t, "b", *up.Get())

	h.Release()
	// One strong remains via the upgrade.
	assert.True(t, world.Alive(up.Entity()))
	assert.True(t, w.Valid())

	up.Release()
	assert.False(t, w.Valid())

	_, ok = w.Upgrade()
	assert.False(t, ok)
	w.Release()
}

func TestWeakHandleOutlivesEntity(t *testing.T) {
	world, sys, base := newTestSystem(t)
	writeFile(t, base, "c.txt", "c")

	h, ok := LoadAsset[string](sys, "c.txt")
	require.True(t, ok)
	e := h.Entity()
	w := h.Weak()

	h.Release()
	require.False(t, world.Alive(e))

	// The weak handle sees the death and never dereferences.
	assert.False(t, w.Valid())
	_, ok = w.Upgrade()
	assert.False(t, ok)
	w.Release()
}
