package predicate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tarski/figure"
	"github.com/lixenwraith/tarski/vmath"
)

func fig(id string, x, y, z float64) *figure.Figure {
	return &figure.Figure{
		ID:       id,
		Position: vmath.V3F(x, y, z),
		Forward:  vmath.V3F(0, 0, 1),
		Color:    0x00ff00,
		HasColor: true,
		Present:  true,
	}
}

func scenarioThresholds() Thresholds {
	th := DefaultThresholds()
	th.MinDistance = 0.05
	th.CloseDistance = 0.3
	th.FarDistance = 0.5
	return th
}

func eval(t *testing.T, th Thresholds, view figure.View, family Family, idx ...int) Outcome {
	t.Helper()
	p := &Predicate{Name: family.String(), Family: family, Indices: idx}
	return p.Evaluate(view, th)
}

func TestFamilyTableComplete(t *testing.T) {
	for f := SameColor; f < familyCount; f++ {
		fs := families[f]
		assert.NotEmpty(t, fs.name, "family %d has no name", f)
		assert.NotNil(t, fs.eval, "family %s has no evaluator", fs.name)
		parsed, ok := ParseFamily(fs.name)
		assert.True(t, ok)
		assert.Equal(t, f, parsed)
	}
	assert.Len(t, Families(), int(familyCount)-1)

	_, ok := ParseFamily("touching")
	assert.False(t, ok)
	f, ok := ParseFamily(" In-Front-Of ")
	assert.True(t, ok)
	assert.Equal(t, InFrontOf, f)
}

// A=(0,0,0), B=(0,0,0.2), C=(0,0,0.6)
func TestDistanceScenario(t *testing.T) {
	view := figure.NewStore(fig("A", 0, 0, 0), fig("B", 0, 0, 0.2), fig("C", 0, 0, 0.6))
	th := scenarioThresholds()

	assert.True(t, eval(t, th, view, Near, 0, 1).Holds, "Near(A,B), dist 0.2")
	assert.True(t, eval(t, th, view, Far, 0, 2).Holds, "Far(A,C), dist 0.6")
	assert.False(t, eval(t, th, view, Near, 0, 2).Holds, "Near(A,C), dist 0.6")
	assert.False(t, eval(t, th, view, Far, 0, 1).Holds, "Far(A,B)")
}

func TestNearBoundsAndSymmetry(t *testing.T) {
	th := scenarioThresholds()
	for _, z := range []float64{0, 0.01, 0.0499, 0.051, 0.2, 0.2999, 0.3001, 1} {
		view := figure.NewStore(fig("a", 0, 0, 0), fig("b", 0, 0, z))
		ab := eval(t, th, view, Near, 0, 1)
		ba := eval(t, th, view, Near, 1, 0)
		require.True(t, ab.OK())
		assert.Equal(t, ab.Holds, ba.Holds, "asymmetric at z=%g", z)

		want := z > th.MinDistance && z <= th.CloseDistance
		assert.Equal(t, want, ab.Holds, "z=%g", z)
	}
}

func TestInvalidIndexIsFalseNotPanic(t *testing.T) {
	view := figure.NewStore(fig("a", 0, 0, 0), fig("b", 0, 0, 0.2), fig("c", 0, 0, 0.6))
	th := scenarioThresholds()

	for _, f := range Families() {
		idx := []int{0, 5}
		if families[f].minArity == 3 {
			idx = []int{0, 1, 5}
		}
		out := eval(t, th, view, f, idx...)
		assert.False(t, out.Holds, "%s", f)
		require.Error(t, out.Fault, "%s", f)

		var cfg *ConfigError
		require.ErrorAs(t, out.Fault, &cfg, "%s", f)
		assert.Equal(t, 5, cfg.Index)
		assert.Equal(t, f, cfg.Family)
	}

	// unrelated predicate still works
	assert.True(t, eval(t, th, view, Near, 0, 1).Holds)
}

// TestHandBuiltArityFaults verifies predicates built outside the catalog cannot index past their figures
func TestHandBuiltArityFaults(t *testing.T) {
	view := figure.NewStore(fig("a", 0, 0, 0), fig("b", 0, 0, 0.2), fig("c", 0, 0, 0.6))
	th := scenarioThresholds()

	cases := []struct {
		family Family
		idx    []int
	}{
		{Near, []int{0}},
		{SameColor, nil},
		{Between, []int{0, 1}},
		{Collinear, []int{0, 1}},
		{Perpendicular, []int{0, 1, 2, 0}},
	}
	for _, tc := range cases {
		var out Outcome
		require.NotPanics(t, func() { out = eval(t, th, view, tc.family, tc.idx...) }, "%s", tc.family)
		assert.False(t, out.Holds, "%s", tc.family)
		assert.ErrorIs(t, out.Fault, ErrArity, "%s", tc.family)
	}
}

func TestAbsentFigureFaults(t *testing.T) {
	s := figure.NewStore(fig("a", 0, 0, 0), fig("b", 0, 0, 0.2))
	s.SetPresent(1, false)
	out := eval(t, scenarioThresholds(), s, Near, 0, 1)
	assert.False(t, out.Holds)
	assert.ErrorContains(t, out.Fault, "not present")
}

func TestSameColor(t *testing.T) {
	s := figure.NewStore(fig("a", 0, 0, 0), fig("b", 1, 0, 0), fig("c", 2, 0, 0))
	s.Paint(2, 0xff0000)
	th := DefaultThresholds()

	assert.True(t, eval(t, th, s, SameColor, 0, 1).Holds)
	assert.False(t, eval(t, th, s, SameColor, 0, 2).Holds)

	s.Get(1).HasColor = false
	out := eval(t, th, s, SameColor, 0, 1)
	assert.False(t, out.Holds)
	assert.ErrorContains(t, out.Fault, "no renderable color")
}

func TestInFrontOf(t *testing.T) {
	th := DefaultThresholds()
	s := figure.NewStore(fig("a", 0, 0, 0), fig("b", 0, 0, 0.2))

	assert.True(t, eval(t, th, s, InFrontOf, 0, 1).Holds, "b straight ahead")

	s.Rotate(0, math.Pi)
	assert.False(t, eval(t, th, s, InFrontOf, 0, 1).Holds, "a turned away")

	s.Rotate(0, math.Pi)
	s.Move(1, vmath.V3F(0, 0, 1))
	assert.False(t, eval(t, th, s, InFrontOf, 0, 1).Holds, "ahead but not near")

	s.Move(1, vmath.V3F(0.2, 0, 0.05))
	assert.False(t, eval(t, th, s, InFrontOf, 0, 1).Holds, "outside forward cone")
}

func TestBesideAtSameHeight(t *testing.T) {
	th := DefaultThresholds()
	s := figure.NewStore(fig("a", 0, 0, 0), fig("b", 0.2, 0.01, 0))
	assert.True(t, eval(t, th, s, BesideAtSameHeight, 0, 1).Holds)

	s.Move(1, vmath.V3F(0.2, 0.2, 0))
	assert.False(t, eval(t, th, s, BesideAtSameHeight, 0, 1).Holds, "height differs")

	s.Move(1, vmath.V3F(0.01, 0, 0))
	assert.False(t, eval(t, th, s, BesideAtSameHeight, 0, 1).Holds, "too close")

	s.Move(1, vmath.V3F(0.31, 0, 0))
	assert.False(t, eval(t, th, s, BesideAtSameHeight, 0, 1).Holds, "beyond close distance")
}

func TestBetween(t *testing.T) {
	th := DefaultThresholds()
	s := figure.NewStore(fig("a", 0.5, 0, 0), fig("b", 0, 0, 0), fig("c", 1, 0, 0))
	assert.True(t, eval(t, th, s, Between, 0, 1, 2).Holds, "midpoint")

	s.Move(0, vmath.V3F(0.5, 0, 0.3))
	assert.True(t, eval(t, th, s, Between, 0, 1, 2).Holds, "proxy accepts off-axis points over the segment")

	s.Move(0, vmath.V3F(1.5, 0, 0))
	assert.False(t, eval(t, th, s, Between, 0, 1, 2).Holds, "beyond c")

	s.Move(0, vmath.V3F(0, 0, 0))
	assert.False(t, eval(t, th, s, Between, 0, 1, 2).Holds, "coincident with endpoint")
}

func TestCollinear(t *testing.T) {
	th := DefaultThresholds()
	s := figure.NewStore(fig("a", 0, 0, 0), fig("b", 0.2, 0, 0), fig("c", 0.5, 0, 0), fig("d", 0.9, 0, 0.01))
	assert.True(t, eval(t, th, s, Collinear, 0, 1, 2, 3).Holds)

	s.Move(3, vmath.V3F(0.5, 0, 0.5))
	assert.False(t, eval(t, th, s, Collinear, 0, 1, 2, 3).Holds)

	s.Move(3, vmath.V3F(0, 0, 0))
	assert.False(t, eval(t, th, s, Collinear, 0, 1, 2, 3).Holds, "coincident with origin")
}

func TestFormsTriangle(t *testing.T) {
	th := DefaultThresholds()
	s := figure.NewStore(fig("a", 0, 0, 0), fig("b", 0.3, 0, 0), fig("c", 0, 0, 0.4))
	assert.True(t, eval(t, th, s, FormsTriangle, 0, 1, 2).Holds)

	s.Move(2, vmath.V3F(0.6, 0, 0))
	assert.False(t, eval(t, th, s, FormsTriangle, 0, 1, 2).Holds, "degenerate line")

	s.Move(2, vmath.V3F(0, 0, 3))
	assert.False(t, eval(t, th, s, FormsTriangle, 0, 1, 2).Holds, "side beyond max distance")
}

func TestIsCentroidOf(t *testing.T) {
	th := DefaultThresholds()
	s := figure.NewStore(fig("c", 0.5, 0, 0.05), fig("a", 0, 0, 0), fig("b", 1, 0, 0))
	assert.True(t, eval(t, th, s, IsCentroidOf, 0, 1, 2).Holds)

	s.Move(0, vmath.V3F(0.5, 0, 0.2))
	assert.False(t, eval(t, th, s, IsCentroidOf, 0, 1, 2).Holds)
}

func TestPerpendicular(t *testing.T) {
	th := DefaultThresholds()
	s := figure.NewStore(fig("a", 0.2, 0, 0), fig("b", 0, 0, 0), fig("c", 0, 0, 0.2))
	assert.True(t, eval(t, th, s, Perpendicular, 0, 1, 2).Holds)

	s.Move(2, vmath.V3F(0.15, 0, 0.15))
	assert.False(t, eval(t, th, s, Perpendicular, 0, 1, 2).Holds, "45 degrees")

	s.Move(2, vmath.V3F(0, 0, 1))
	assert.False(t, eval(t, th, s, Perpendicular, 0, 1, 2).Holds, "right angle but not near")
}

func TestEvaluationIsDeterministic(t *testing.T) {
	s := figure.NewStore(fig("a", 0.1, 0, 0), fig("b", 0, 0, 0.13), fig("c", 0.27, 0.02, 0.31))
	th := DefaultThresholds()
	for _, f := range Families() {
		idx := []int{0, 1}
		if families[f].minArity == 3 {
			idx = []int{0, 1, 2}
		}
		first := eval(t, th, s, f, idx...)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, eval(t, th, s, f, idx...), "%s drifted on run %d", f, i)
		}
	}
}
