package predicate

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/tarski/figure"
)

var (
	ErrDuplicate     = errors.New("duplicate predicate name")
	ErrEmptyName     = errors.New("empty predicate name")
	ErrArity         = errors.New("wrong number of figures")
	ErrUnknownFamily = errors.New("unknown predicate family")
	ErrNotFound      = errors.New("predicate not in catalog")
)

// Predicate binds a family to fixed figure indices
// Stateless: evaluation reads only the live view
type Predicate struct {
	Name    string
	Family  Family
	Indices []int
}

// Outcome is the tagged result of one evaluation
// Fault is non-nil when the predicate could not read its figures; Holds is then false
type Outcome struct {
	Holds bool
	Fault error
}

// OK reports a clean evaluation
func (o Outcome) OK() bool {
	return o.Fault == nil
}

// ConfigError describes a predicate that references an unusable figure
type ConfigError struct {
	Predicate string
	Family    Family
	Index     int
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("predicate %q (%s): figure %d %s", e.Predicate, e.Family, e.Index, e.Reason)
}

// indexFault is raised inside family evaluation; Evaluate wraps it into ConfigError
type indexFault struct {
	index  int
	reason string
}

func (f *indexFault) Error() string {
	return fmt.Sprintf("figure %d %s", f.index, f.reason)
}

// Evaluate runs the predicate against the view
// Never panics: invalid figures yield Outcome{false, *ConfigError},
// a hand-built predicate with the wrong arity yields ErrArity
func (p *Predicate) Evaluate(view figure.View, th Thresholds) Outcome {
	if !p.Family.Valid() {
		return Outcome{Fault: fmt.Errorf("predicate %q: %w", p.Name, ErrUnknownFamily)}
	}
	if !p.Family.acceptsArity(len(p.Indices)) {
		return Outcome{Fault: fmt.Errorf("predicate %q (%s) with %d figures: %w", p.Name, p.Family, len(p.Indices), ErrArity)}
	}
	if view == nil {
		return Outcome{Fault: &ConfigError{Predicate: p.Name, Family: p.Family, Index: -1, Reason: "has no figure view"}}
	}
	holds, err := families[p.Family].eval(env{view: view, th: th}, p.Indices)
	if err != nil {
		var f *indexFault
		if errors.As(err, &f) {
			return Outcome{Fault: &ConfigError{Predicate: p.Name, Family: p.Family, Index: f.index, Reason: f.reason}}
		}
		return Outcome{Fault: fmt.Errorf("predicate %q: %w", p.Name, err)}
	}
	return Outcome{Holds: holds}
}
