package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/raoe/engine/engine/ecs"
	"github.com/raoe/engine/engine/pack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headlessConfig() *ApplicationConfig {
	return &ApplicationConfig{Name: "testapp", OrgName: "testorg"}
}

func TestNewRequiresGameAndConfig(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&Game{})
	assert.Error(t, err)
}

func TestNewValidatesConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  ApplicationConfig
	}{
		{"missing name", ApplicationConfig{OrgName: "testorg"}},
		{"missing org", ApplicationConfig{Name: "testapp"}},
		{"rendering without window size", ApplicationConfig{Name: "testapp", OrgName: "testorg", Flags: FlagRendering}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			_, err := New(&Game{ApplicationConfig: &cfg})
			assert.Error(t, err)
		})
	}
}

func TestNewHeadless(t *testing.T) {
	e, err := New(&Game{ApplicationConfig: headlessConfig()})
	require.NoError(t, err)
	require.NotNil(t, e)

	// Modules come up in Initialize, not New.
	assert.Nil(t, e.World())
	assert.Nil(t, e.Renderer())
	assert.Equal(t, EngineStageUninitialized, e.currentStage)
}

func writeCorePack(t *testing.T, base string) {
	t.Helper()
	dir := filepath.Join(base, "packs", "core")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	manifest := "name = \"core\"\nversion = 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "core.toml"), []byte(manifest), 0o644))
}

func TestProgressRunsStartupOnceThenTicks(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	base := t.TempDir()
	writeCorePack(t, base)

	initCalls := 0
	updateCalls := 0
	cfg := headlessConfig()
	cfg.BasePath = base
	e, err := New(&Game{
		ApplicationConfig: cfg,
		FnInitialize:      func() error { initCalls++; return nil },
		FnUpdate:          func(float64) error { updateCalls++; return nil },
	})
	require.NoError(t, err)
	require.NoError(t, e.Initialize())

	// The first call runs the one-shot startup pipeline: the core pack
	// mounts and the game's initialize hook fires exactly once.
	require.True(t, e.Progress())
	assert.Equal(t, 1, initCalls)
	assert.Equal(t, 0, updateCalls)

	pe := e.World().Lookup("packs/core")
	require.NotEqual(t, ecs.Nil, pe)
	p, ok := ecs.Get[pack.Pack](e.World(), pe)
	require.True(t, ok)
	assert.Equal(t, pack.StateMounted, p.State)

	// Later calls run the per-tick chain; startup never repeats.
	require.True(t, e.Progress())
	require.True(t, e.Progress())
	assert.Equal(t, 1, initCalls)
	assert.Equal(t, 2, updateCalls)

	e.World().Quit()
	assert.False(t, e.Progress())
	require.NoError(t, e.Shutdown())
}
