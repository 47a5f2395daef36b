package figure

import (
	"github.com/lixenwraith/tarski/vmath"
)

// Store is the ordered, index-addressed figure list
// Not safe for concurrent use; the host mutates it from its update loop
type Store struct {
	figures []*Figure
	byKey   map[string]int
}

// NewStore creates a store from figures in index order
// nil entries are kept as empty slots so indices stay stable
func NewStore(figures ...*Figure) *Store {
	s := &Store{
		figures: make([]*Figure, 0, len(figures)),
		byKey:   make(map[string]int, len(figures)*2),
	}
	for _, f := range figures {
		s.Add(f)
	}
	return s
}

// Add appends a figure and returns its index
func (s *Store) Add(f *Figure) int {
	idx := len(s.figures)
	s.figures = append(s.figures, f)
	if f != nil {
		if f.ID != "" {
			s.byKey[f.ID] = idx
		}
		if f.Name != "" {
			if _, taken := s.byKey[f.Name]; !taken {
				s.byKey[f.Name] = idx
			}
		}
	}
	return idx
}

// Index resolves a figure id or name to its index
func (s *Store) Index(key string) (int, bool) {
	if s == nil {
		return 0, false
	}
	idx, ok := s.byKey[key]
	return idx, ok
}

// Get returns the figure at i, nil when out of range or on a nil store
func (s *Store) Get(i int) *Figure {
	if s == nil || i < 0 || i >= len(s.figures) {
		return nil
	}
	return s.figures[i]
}

// All returns the backing slice; callers must not append to it
func (s *Store) All() []*Figure {
	if s == nil {
		return nil
	}
	return s.figures
}

// === View ===

// Len is zero on a nil store, so a typed-nil view fails Validate
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.figures)
}

func (s *Store) IsValid(i int) bool {
	f := s.Get(i)
	return f != nil && f.Present
}

func (s *Store) Position(i int) (vmath.Vec3F, bool) {
	if !s.IsValid(i) {
		return vmath.Vec3F{}, false
	}
	return s.figures[i].Position, true
}

func (s *Store) Forward(i int) (vmath.Vec3F, bool) {
	if !s.IsValid(i) {
		return vmath.Vec3F{}, false
	}
	return s.figures[i].Forward, true
}

func (s *Store) Color(i int) (Color, bool) {
	if !s.IsValid(i) || !s.figures[i].HasColor {
		return 0, false
	}
	return s.figures[i].Color, true
}

// === Mutation (motion collaborator only) ===

// Move sets an absolute position; false if i is not a valid figure
func (s *Store) Move(i int, pos vmath.Vec3F) bool {
	if !s.IsValid(i) {
		return false
	}
	s.figures[i].Position = pos
	return true
}

// Translate offsets the position by delta
func (s *Store) Translate(i int, delta vmath.Vec3F) bool {
	if !s.IsValid(i) {
		return false
	}
	f := s.figures[i]
	f.Position = vmath.V3FAdd(f.Position, delta)
	return true
}

// Rotate turns the forward vector around the vertical axis
func (s *Store) Rotate(i int, angle float64) bool {
	if !s.IsValid(i) {
		return false
	}
	f := s.figures[i]
	f.Forward = vmath.V3FRotateY(f.Forward, angle)
	return true
}

// Paint assigns a renderable color
func (s *Store) Paint(i int, c Color) bool {
	if !s.IsValid(i) {
		return false
	}
	s.figures[i].Color = c
	s.figures[i].HasColor = true
	return true
}

// SetPresent toggles whether the figure's backing transform exists
func (s *Store) SetPresent(i int, present bool) bool {
	f := s.Get(i)
	if f == nil {
		return false
	}
	f.Present = present
	return true
}

var _ View = (*Store)(nil)
