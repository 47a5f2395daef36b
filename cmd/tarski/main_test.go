package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-file", filepath.Join(t.TempDir(), "test.log")))
	err := root.Execute()
	return out.String(), err
}

func TestEvalDefaultScene(t *testing.T) {
	out, err := run(t, "eval", "--tier", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `level "Colors"`)
	assert.Contains(t, out, "false    PyramidCubeNear")
	assert.Contains(t, out, "(false)  CubePrismNear")
}

func TestEvalUnknownTier(t *testing.T) {
	_, err := run(t, "eval", "--tier", "legendary")
	assert.Error(t, err)
}

func TestCheckBuiltinScenes(t *testing.T) {
	for _, scene := range []string{"tabletop", "classic", "geometry"} {
		out, err := run(t, "check", "--scene", scene)
		require.NoError(t, err, scene)
		assert.NotContains(t, out, "Errors", scene)
	}
}

func TestCheckReportsBrokenScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	scene := `
figures:
  - id: a
    position: [0, 0, 0]
predicates:
  - name: Lost
    family: near
    figures: [a, "7"]
levels:
  - tier: easy
    predicates: [Lost, Nowhere]
`
	require.NoError(t, os.WriteFile(path, []byte(scene), 0o644))

	out, err := run(t, "check", "--scene", path)
	require.ErrorIs(t, err, errSetup)
	assert.Contains(t, out, "figure 7 is out of range")
	assert.Contains(t, out, `unknown predicate "Nowhere"`)
	assert.Contains(t, out, "tier medium is not configured")
}

func TestLevelsAndScenes(t *testing.T) {
	out, err := run(t, "levels", "--scene", "classic")
	require.NoError(t, err)
	assert.Contains(t, out, "3 hard    Order")
	assert.Contains(t, out, "Between  between[0 1 2]")

	out, err = run(t, "scenes")
	require.NoError(t, err)
	assert.Contains(t, out, "geometry")
}
