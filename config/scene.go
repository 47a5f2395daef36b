// Package config loads scene files: figures, thresholds, predicates and levels
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tarski/figure"
	"github.com/lixenwraith/tarski/level"
	"github.com/lixenwraith/tarski/predicate"
	"github.com/lixenwraith/tarski/vmath"
)

//go:embed default.yaml
var defaultScene []byte

var ErrInvalidScene = errors.New("invalid scene")

// Scene is the on-disk scene description
type Scene struct {
	Name       string               `yaml:"name"`
	Thresholds predicate.Thresholds `yaml:"thresholds"`
	Figures    []FigureSpec         `yaml:"figures"`
	Predicates []PredicateSpec      `yaml:"predicates"`
	Levels     []LevelSpec          `yaml:"levels"`
	// Expected names are checked by diagnosis only
	Expected []string `yaml:"expected,omitempty"`
}

// FigureSpec describes one figure; position and forward are [x, y, z]
type FigureSpec struct {
	ID       string    `yaml:"id,omitempty"`
	Name     string    `yaml:"name"`
	Position []float64 `yaml:"position"`
	Forward  []float64 `yaml:"forward,omitempty"`
	// Color is a color name or #rrggbb; empty means not renderable
	Color  string `yaml:"color,omitempty"`
	Absent bool   `yaml:"absent,omitempty"`
}

// PredicateSpec binds a family to figures by id, name or index
type PredicateSpec struct {
	Name    string   `yaml:"name"`
	Family  string   `yaml:"family"`
	Figures []string `yaml:"figures"`
}

// LevelSpec lists a tier's active predicates; tier is 1..3 or easy/medium/hard
type LevelSpec struct {
	Tier       string   `yaml:"tier"`
	Label      string   `yaml:"label,omitempty"`
	Predicates []string `yaml:"predicates"`
}

// World is a built scene ready for the engine
type World struct {
	Name     string
	Store    *figure.Store
	Catalog  *predicate.Catalog
	Levels   *level.Config
	Expected []string
	// Warnings are non-fatal problems found while building
	Warnings []string
}

// Parse decodes a scene; thresholds absent from the file keep their defaults
func Parse(data []byte) (*Scene, error) {
	s := &Scene{Thresholds: predicate.DefaultThresholds()}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return s, nil
}

// Load reads and parses a scene file
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Default returns the embedded three-figure scene
func Default() *Scene {
	s, err := Parse(defaultScene)
	if err != nil {
		panic(fmt.Sprintf("embedded default scene: %v", err))
	}
	return s
}

// Marshal encodes the scene back to YAML
func (s *Scene) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Build resolves the scene into engine inputs
// Malformed entries fail the build; dangling references become warnings
func (s *Scene) Build() (*World, error) {
	w := &World{
		Name:     s.Name,
		Store:    figure.NewStore(),
		Catalog:  predicate.NewCatalog(s.Thresholds),
		Levels:   level.NewConfig(),
		Expected: append([]string(nil), s.Expected...),
	}
	var errs []error

	for i, fs := range s.Figures {
		f, err := fs.build()
		if err != nil {
			errs = append(errs, fmt.Errorf("figure %d: %w", i, err))
			continue
		}
		if _, dup := w.Store.Index(f.ID); dup {
			errs = append(errs, fmt.Errorf("figure %d: duplicate id %q: %w", i, f.ID, ErrInvalidScene))
			continue
		}
		w.Store.Add(f)
	}

	for _, ps := range s.Predicates {
		family, ok := predicate.ParseFamily(ps.Family)
		if !ok {
			errs = append(errs, fmt.Errorf("predicate %q: family %q: %w", ps.Name, ps.Family, predicate.ErrUnknownFamily))
			continue
		}
		indices, missing := resolveFigures(w.Store, ps.Figures)
		if len(missing) > 0 {
			w.Warnings = append(w.Warnings, fmt.Sprintf("predicate %q references unknown figures %q", ps.Name, missing))
		}
		if err := w.Catalog.Register(ps.Name, family, indices...); err != nil {
			errs = append(errs, fmt.Errorf("predicate: %w", err))
		}
	}

	for _, ls := range s.Levels {
		tier, ok := level.ParseTier(ls.Tier)
		if !ok {
			w.Warnings = append(w.Warnings, fmt.Sprintf("level %q has unknown tier %q", ls.Label, ls.Tier))
			continue
		}
		w.Levels.Set(level.Level{Tier: tier, Label: ls.Label, Predicates: ls.Predicates})
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return w, nil
}

func (fs FigureSpec) build() (*figure.Figure, error) {
	pos, err := vec(fs.Position, vmath.Vec3F{})
	if err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}
	fwd, err := vec(fs.Forward, vmath.V3F(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("forward: %w", err)
	}

	f := &figure.Figure{
		ID:       fs.ID,
		Name:     fs.Name,
		Position: pos,
		Forward:  fwd,
		Present:  !fs.Absent,
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if fs.Color != "" {
		c, err := ParseColor(fs.Color)
		if err != nil {
			return nil, err
		}
		f.Color = c
		f.HasColor = true
	}
	return f, nil
}

func vec(v []float64, def vmath.Vec3F) (vmath.Vec3F, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return vmath.V3F(v[0], v[1], v[2]), nil
	default:
		return vmath.Vec3F{}, fmt.Errorf("want 3 components, got %d: %w", len(v), ErrInvalidScene)
	}
}

// ParseColor accepts tcell color names and #rrggbb
func ParseColor(s string) (figure.Color, error) {
	hex := tcell.GetColor(s).Hex()
	if hex < 0 {
		return 0, fmt.Errorf("color %q: %w", s, ErrInvalidScene)
	}
	return figure.Color(uint32(hex)), nil
}

// unresolvedFigure keeps an unknown reference registered; it always evaluates as a fault
const unresolvedFigure = -1

// resolveFigures maps ids or names to store indices; bare integers pass through unchecked
func resolveFigures(store *figure.Store, keys []string) (indices []int, missing []string) {
	indices = make([]int, 0, len(keys))
	for _, k := range keys {
		if idx, ok := store.Index(k); ok {
			indices = append(indices, idx)
			continue
		}
		if idx, err := strconv.Atoi(k); err == nil {
			indices = append(indices, idx)
			continue
		}
		indices = append(indices, unresolvedFigure)
		missing = append(missing, k)
	}
	return indices, missing
}
