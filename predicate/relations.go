package predicate

import (
	"math"

	"github.com/lixenwraith/tarski/figure"
	"github.com/lixenwraith/tarski/vmath"
)

// evalFunc implements one family over resolved indices
// Must not reference the families table (package init order)
type evalFunc func(e env, idx []int) (bool, error)

// env carries the live view and thresholds for one evaluation
type env struct {
	view figure.View
	th   Thresholds
}

func (e env) pos(i int) (vmath.Vec3F, error) {
	if i < 0 || i >= e.view.Len() {
		return vmath.Vec3F{}, &indexFault{index: i, reason: "is out of range"}
	}
	p, ok := e.view.Position(i)
	if !ok {
		return vmath.Vec3F{}, &indexFault{index: i, reason: "is not present"}
	}
	return p, nil
}

// positions resolves every index, failing on the first invalid one
func (e env) positions(idx []int) ([]vmath.Vec3F, error) {
	out := make([]vmath.Vec3F, len(idx))
	for n, i := range idx {
		p, err := e.pos(i)
		if err != nil {
			return nil, err
		}
		out[n] = p
	}
	return out, nil
}

// near is the shared proximity band: (Min, Close]
func (e env) near(a, b vmath.Vec3F) bool {
	d := vmath.V3FDist(a, b)
	return d > e.th.MinDistance && d <= e.th.CloseDistance
}

func evalSameColor(e env, idx []int) (bool, error) {
	// Presence first so a missing figure reports as such rather than colorless
	if _, err := e.positions(idx); err != nil {
		return false, err
	}
	ca, ok := e.view.Color(idx[0])
	if !ok {
		return false, &indexFault{index: idx[0], reason: "has no renderable color"}
	}
	cb, ok := e.view.Color(idx[1])
	if !ok {
		return false, &indexFault{index: idx[1], reason: "has no renderable color"}
	}
	return ca == cb, nil
}

func evalNear(e env, idx []int) (bool, error) {
	p, err := e.positions(idx)
	if err != nil {
		return false, err
	}
	return e.near(p[0], p[1]), nil
}

func evalFar(e env, idx []int) (bool, error) {
	p, err := e.positions(idx)
	if err != nil {
		return false, err
	}
	return vmath.V3FDist(p[0], p[1]) > e.th.FarDistance, nil
}

func evalInFrontOf(e env, idx []int) (bool, error) {
	p, err := e.positions(idx)
	if err != nil {
		return false, err
	}
	if !e.near(p[0], p[1]) {
		return false, nil
	}
	fwd, _ := e.view.Forward(idx[0])
	dir := vmath.V3FDir(p[0], p[1])
	return vmath.V3FDot(vmath.V3FNormalize(fwd), dir) > e.th.FrontThreshold, nil
}

func evalBeside(e env, idx []int) (bool, error) {
	p, err := e.positions(idx)
	if err != nil {
		return false, err
	}
	h := vmath.V3FHorizontalDist(p[0], p[1])
	if h <= e.th.MinDistance || h >= e.th.CloseDistance {
		return false, nil
	}
	return math.Abs(p[0].Y-p[1].Y) < e.th.HeightTolerance, nil
}

// evalBetween checks a against both endpoints; coincident points normalize to zero and fail
func evalBetween(e env, idx []int) (bool, error) {
	p, err := e.positions(idx)
	if err != nil {
		return false, err
	}
	a, b, c := p[0], p[1], p[2]
	atB := vmath.V3FDot(vmath.V3FDir(b, a), vmath.V3FDir(b, c))
	atC := vmath.V3FDot(vmath.V3FDir(c, a), vmath.V3FDir(c, b))
	return atB > 0 && atC > 0, nil
}

func evalCollinear(e env, idx []int) (bool, error) {
	p, err := e.positions(idx)
	if err != nil {
		return false, err
	}
	origin := p[0]
	for _, q := range p[1:] {
		if vmath.V3FDist(origin, q) <= e.th.MinDistance {
			return false, nil
		}
	}
	axis := vmath.V3FDir(origin, p[1])
	for _, q := range p[2:] {
		if vmath.V3FMag(vmath.V3FCross(axis, vmath.V3FDir(origin, q))) >= e.th.AngularTolerance {
			return false, nil
		}
	}
	return true, nil
}

func evalFormsTriangle(e env, idx []int) (bool, error) {
	p, err := e.positions(idx)
	if err != nil {
		return false, err
	}
	ab := vmath.V3FDist(p[0], p[1])
	bc := vmath.V3FDist(p[1], p[2])
	ca := vmath.V3FDist(p[2], p[0])
	for _, d := range [3]float64{ab, bc, ca} {
		if d < e.th.MinDistance || d > e.th.MaxDistance {
			return false, nil
		}
	}
	return ab+bc > ca && bc+ca > ab && ca+ab > bc, nil
}

func evalIsCentroidOf(e env, idx []int) (bool, error) {
	p, err := e.positions(idx)
	if err != nil {
		return false, err
	}
	mid := vmath.V3FMidpoint(p[1], p[2])
	return vmath.V3FDist(p[0], mid) < e.th.CloseDistance/2, nil
}

func evalPerpendicular(e env, idx []int) (bool, error) {
	p, err := e.positions(idx)
	if err != nil {
		return false, err
	}
	a, b, c := p[0], p[1], p[2]
	if !e.near(a, b) || !e.near(b, c) {
		return false, nil
	}
	cos := vmath.V3FDot(vmath.V3FDir(b, a), vmath.V3FDir(b, c))
	return math.Abs(cos) < e.th.PerpendicularTolerance, nil
}
