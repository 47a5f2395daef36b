package predicate

import (
	"strings"
)

// Family identifies a geometric relation
type Family int

const (
	// FamilyInvalid is the zero value, never registered
	FamilyInvalid Family = iota

	// SameColor(a,b): both colors present and equal
	SameColor
	// Near(a,b): MinDistance < d <= CloseDistance
	Near
	// Far(a,b): d > FarDistance
	Far
	// InFrontOf(a,b): Near and b lies within the forward cone of a
	InFrontOf
	// BesideAtSameHeight(a,b): horizontal band (Min, Close) and level heights
	BesideAtSameHeight
	// Between(a,b,c): a projects inside segment b-c (proxy, not exact)
	Between
	// Collinear(i1..ik): every point on the line through i1,i2
	Collinear
	// FormsTriangle(a,b,c): strict triangle inequality, sides in [Min, Max]
	FormsTriangle
	// IsCentroidOf(c,a,b): c sits at the midpoint of a,b
	IsCentroidOf
	// Perpendicular(a,b,c): angle a-b-c is right and both arms are Near
	Perpendicular

	familyCount
)

// arityVariadic marks a family accepting any arity >= minArity
const arityVariadic = -1

type familySpec struct {
	name     string
	minArity int
	maxArity int
	eval     evalFunc
}

// families is the static dispatch table, indexed by Family
// A missing entry is caught by TestFamilyTableComplete
var families = [familyCount]familySpec{
	SameColor:          {"same_color", 2, 2, evalSameColor},
	Near:               {"near", 2, 2, evalNear},
	Far:                {"far", 2, 2, evalFar},
	InFrontOf:          {"in_front_of", 2, 2, evalInFrontOf},
	BesideAtSameHeight: {"beside_at_same_height", 2, 2, evalBeside},
	Between:            {"between", 3, 3, evalBetween},
	Collinear:          {"collinear", 3, arityVariadic, evalCollinear},
	FormsTriangle:      {"forms_triangle", 3, 3, evalFormsTriangle},
	IsCentroidOf:       {"is_centroid_of", 3, 3, evalIsCentroidOf},
	Perpendicular:      {"perpendicular", 3, 3, evalPerpendicular},
}

// String returns the snake_case config name
func (f Family) String() string {
	if !f.Valid() {
		return "invalid"
	}
	return families[f].name
}

// Valid reports whether f names a registered relation
func (f Family) Valid() bool {
	return f > FamilyInvalid && f < familyCount
}

// acceptsArity checks the index count against the family bounds
func (f Family) acceptsArity(n int) bool {
	fs := families[f]
	if n < fs.minArity {
		return false
	}
	return fs.maxArity == arityVariadic || n <= fs.maxArity
}

// ParseFamily resolves a config name; case and '-' are normalized
func ParseFamily(name string) (Family, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for f := SameColor; f < familyCount; f++ {
		if families[f].name == key {
			return f, true
		}
	}
	return FamilyInvalid, false
}

// Families lists every valid family in declaration order
func Families() []Family {
	out := make([]Family, 0, familyCount-1)
	for f := SameColor; f < familyCount; f++ {
		out = append(out, f)
	}
	return out
}
