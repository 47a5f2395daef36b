// Package figure holds the tracked physical objects of a scene
//
// The Store is owned and mutated by the motion collaborator (the host);
// evaluators only ever see the read-only View so live attributes are read
// at evaluation time and never duplicated.
package figure

import (
	"fmt"

	"github.com/lixenwraith/tarski/vmath"
)

// Color is a packed 0xRRGGBB value compared by exact match
type Color uint32

// RGB unpacks the color into components
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// NewColor packs components into a Color
func NewColor(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
}

// Figure is a single tracked object
type Figure struct {
	ID       string
	Name     string
	Position vmath.Vec3F
	Forward  vmath.Vec3F
	Color    Color

	// HasColor is false when the figure has no renderable color
	HasColor bool
	// Present is false when the backing transform is gone
	Present bool
}

// Label returns the name if set, the id otherwise
func (f *Figure) Label() string {
	if f.Name != "" {
		return f.Name
	}
	return f.ID
}

// View is the read-only capability handed to evaluators
// Every getter returns ok=false as the invalid sentinel
type View interface {
	Len() int
	Position(i int) (vmath.Vec3F, bool)
	Forward(i int) (vmath.Vec3F, bool)
	Color(i int) (Color, bool)
	IsValid(i int) bool
}
