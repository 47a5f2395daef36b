package diagnose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tarski/figure"
	"github.com/lixenwraith/tarski/level"
	"github.com/lixenwraith/tarski/predicate"
	"github.com/lixenwraith/tarski/vmath"
)

func scene() Input {
	store := figure.NewStore(
		&figure.Figure{ID: "pyramid", Position: vmath.V3F(0, 0, 0), Forward: vmath.V3F(0, 0, 1), Color: 0xff0000, HasColor: true, Present: true},
		&figure.Figure{ID: "cube", Position: vmath.V3F(0.2, 0, 0), Forward: vmath.V3F(0, 0, 1), Color: 0xff0000, HasColor: true, Present: true},
	)
	cat := predicate.NewCatalog(predicate.DefaultThresholds())
	cat.MustRegister("PyramidCubeNear", predicate.Near, 0, 1)
	cat.MustRegister("PyramidCubeSameColor", predicate.SameColor, 0, 1)
	levels := level.NewConfig(
		level.Level{Tier: level.Easy, Predicates: []string{"PyramidCubeNear"}},
		level.Level{Tier: level.Medium, Predicates: []string{"PyramidCubeNear", "PyramidCubeSameColor"}},
		level.Level{Tier: level.Hard, Predicates: []string{"PyramidCubeSameColor"}},
	)
	return Input{View: store, Catalog: cat, Levels: levels, Expected: []string{"PyramidCubeNear"}}
}

func TestCleanSetup(t *testing.T) {
	r := Run(scene())
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
	assert.Empty(t, r.Suggestions)
	assert.Contains(t, r.String(), "Setup OK")
}

func TestMissingEverything(t *testing.T) {
	r := Run(Input{})
	assert.True(t, r.HasErrors())
	assert.Contains(t, r.Errors, "no figures registered")
	assert.Contains(t, r.Errors, "no predicate catalog")
	assert.Contains(t, r.Errors, "no level configuration")
}

func TestBrokenReferences(t *testing.T) {
	in := scene()
	in.Catalog.MustRegister("CubeGhostNear", predicate.Near, 1, 4)
	in.Levels.Set(level.Level{Tier: level.Hard, Predicates: []string{"PyramidCubeSameColr", "CubeGhostNear"}})
	in.Expected = append(in.Expected, "CubePrismNear")
	in.View.(*figure.Store).Get(1).HasColor = false

	r := Run(in)
	require.True(t, r.HasErrors())
	assert.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0], "CubeGhostNear")
	assert.Contains(t, r.Errors[0], "figure 4 is out of range")

	joined := strings.Join(r.Warnings, "\n")
	assert.Contains(t, joined, "figure 1 has no renderable color")
	assert.Contains(t, joined, `expected predicate "CubePrismNear" not found`)
	assert.Contains(t, joined, `unknown predicate "PyramidCubeSameColr"`)

	assert.Contains(t, r.Suggestions, `did you mean "PyramidCubeSameColor" instead of "PyramidCubeSameColr"?`)
}

func TestUnconfiguredTierAndUnusedPredicate(t *testing.T) {
	in := scene()
	in.Levels = level.NewConfig(level.Level{Tier: level.Easy, Predicates: []string{"PyramidCubeNear"}})

	r := Run(in)
	assert.False(t, r.HasErrors())
	assert.Contains(t, r.Warnings, "tier medium is not configured")
	assert.Contains(t, r.Warnings, "tier hard is not configured")
	assert.Contains(t, r.Suggestions, `predicate "PyramidCubeSameColor" is not used by any level`)

	out := r.String()
	assert.Contains(t, out, "Warnings (2)")
	assert.NotContains(t, out, "Errors")
}
