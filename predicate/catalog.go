package predicate

import (
	"fmt"
	"slices"

	"github.com/lixenwraith/tarski/figure"
)

// Catalog is the ordered set of registered predicates
// Names are unique; iteration follows registration order
type Catalog struct {
	thresholds Thresholds
	entries    []*Predicate
	byName     map[string]int
}

// NewCatalog creates an empty catalog with the given thresholds
func NewCatalog(th Thresholds) *Catalog {
	return &Catalog{
		thresholds: th,
		byName:     make(map[string]int),
	}
}

// Register adds a predicate; arity is checked against the family
// Indices are not checked against any view: the catalog stays total and
// invalid figures surface as faults at evaluation time
func (c *Catalog) Register(name string, family Family, indices ...int) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, exists := c.byName[name]; exists {
		return fmt.Errorf("%q: %w", name, ErrDuplicate)
	}
	if !family.Valid() {
		return fmt.Errorf("%q: %w", name, ErrUnknownFamily)
	}
	if !family.acceptsArity(len(indices)) {
		return fmt.Errorf("%q (%s) with %d figures: %w", name, family, len(indices), ErrArity)
	}

	c.byName[name] = len(c.entries)
	c.entries = append(c.entries, &Predicate{
		Name:    name,
		Family:  family,
		Indices: slices.Clone(indices),
	})
	return nil
}

// MustRegister panics on error; for static scene tables only
func (c *Catalog) MustRegister(name string, family Family, indices ...int) {
	if err := c.Register(name, family, indices...); err != nil {
		panic(err)
	}
}

// Lookup returns the predicate by name
func (c *Catalog) Lookup(name string) (*Predicate, bool) {
	i, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return c.entries[i], true
}

// Has reports whether name is registered
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Names returns predicate names in registration order
func (c *Catalog) Names() []string {
	out := make([]string, len(c.entries))
	for i, p := range c.entries {
		out[i] = p.Name
	}
	return out
}

// Predicates returns registered predicates in order; callers must not mutate them
func (c *Catalog) Predicates() []*Predicate {
	return c.entries
}

// Len returns the number of registered predicates
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Thresholds returns the tuning shared by every predicate
func (c *Catalog) Thresholds() Thresholds {
	return c.thresholds
}

// Evaluate looks up and evaluates name against the view
func (c *Catalog) Evaluate(name string, view figure.View) Outcome {
	p, ok := c.Lookup(name)
	if !ok {
		return Outcome{Fault: fmt.Errorf("%q: %w", name, ErrNotFound)}
	}
	return p.Evaluate(view, c.thresholds)
}
