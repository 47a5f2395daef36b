package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tarski/config"
)

func TestBuiltinScenesBuildCleanly(t *testing.T) {
	names := SceneNames()
	assert.Equal(t, []string{"classic", "geometry", "tabletop"}, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			e, ok := GetScene(name)
			require.True(t, ok)
			assert.NotEmpty(t, e.Description)

			w, err := e.Factory().Build()
			require.NoError(t, err)
			assert.Empty(t, w.Warnings)
			assert.Empty(t, w.Levels.Validate(w.Catalog))
			assert.Len(t, w.Levels.Tiers(), 3)
		})
	}
}

func TestFactoriesReturnFreshScenes(t *testing.T) {
	e, _ := GetScene("classic")
	a := e.Factory()
	a.Figures[0].Color = "red"
	assert.Equal(t, "yellow", e.Factory().Figures[0].Color)
}

func TestOpen(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	assert.Equal(t, "tabletop", s.Name)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: custom\n"), 0o644))
	s, err = Open(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", s.Name)

	_, err = Open("no-such-scene")
	assert.Error(t, err)
}

func TestRegisterSceneReplaces(t *testing.T) {
	RegisterScene("test-only", "first", func() *config.Scene { return &config.Scene{Name: "one"} })
	RegisterScene("test-only", "second", func() *config.Scene { return &config.Scene{Name: "two"} })
	t.Cleanup(func() {
		scenesMu.Lock()
		delete(scenes, "test-only")
		scenesMu.Unlock()
	})

	e, ok := GetScene("test-only")
	require.True(t, ok)
	assert.Equal(t, "second", e.Description)
	assert.Equal(t, "two", e.Factory().Name)
}
