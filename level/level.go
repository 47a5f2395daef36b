// Package level maps difficulty tiers to ordered predicate subsets
package level

import (
	"fmt"
	"slices"
	"sort"
)

// Tier is an ordered difficulty: Easy < Medium < Hard
type Tier int

const (
	TierNone Tier = iota
	Easy
	Medium
	Hard
)

// Valid reports whether t is one of the configured difficulty tiers
func (t Tier) Valid() bool {
	return t >= Easy && t <= Hard
}

func (t Tier) String() string {
	switch t {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// ParseTier accepts "1".."3" or the tier names
func ParseTier(s string) (Tier, bool) {
	switch s {
	case "1", "easy":
		return Easy, true
	case "2", "medium":
		return Medium, true
	case "3", "hard":
		return Hard, true
	}
	return TierNone, false
}

// Level is one tier's active predicate list
type Level struct {
	Tier       Tier
	Label      string
	Predicates []string
}

// Config holds at most one Level per tier
type Config struct {
	levels map[Tier]Level
}

// NewConfig creates a config from levels; later entries replace earlier ones for the same tier
func NewConfig(levels ...Level) *Config {
	c := &Config{levels: make(map[Tier]Level, len(levels))}
	for _, l := range levels {
		c.Set(l)
	}
	return c
}

// Set stores a level, de-duplicating names while keeping first-seen order
// The zero Config is ready to use
func (c *Config) Set(l Level) {
	if c.levels == nil {
		c.levels = make(map[Tier]Level)
	}
	seen := make(map[string]struct{}, len(l.Predicates))
	names := make([]string, 0, len(l.Predicates))
	for _, n := range l.Predicates {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}
	l.Predicates = names
	if l.Label == "" {
		l.Label = defaultLabel(l.Tier)
	}
	c.levels[l.Tier] = l
}

// GetActivePredicates returns the tier's ordered names; empty for unknown tiers
// An empty set means nothing to evaluate, not an error
func (c *Config) GetActivePredicates(t Tier) []string {
	if c == nil {
		return nil
	}
	l, ok := c.levels[t]
	if !ok {
		return nil
	}
	return slices.Clone(l.Predicates)
}

// Label returns the display label for the tier
func (c *Config) Label(t Tier) string {
	if c != nil {
		if l, ok := c.levels[t]; ok {
			return l.Label
		}
	}
	return defaultLabel(t)
}

// Has reports whether the tier is configured
func (c *Config) Has(t Tier) bool {
	if c == nil {
		return false
	}
	_, ok := c.levels[t]
	return ok
}

// Tiers returns configured tiers in ascending order
func (c *Config) Tiers() []Tier {
	if c == nil {
		return nil
	}
	out := make([]Tier, 0, len(c.levels))
	for t := range c.levels {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Catalog is the lookup the level config validates against
type Catalog interface {
	Has(name string) bool
}

// Validate returns one warning per level entry missing from the catalog
// Warnings are advisory: missing entries are skipped at evaluation time
func (c *Config) Validate(cat Catalog) []string {
	var out []string
	for _, t := range c.Tiers() {
		l := c.levels[t]
		if !t.Valid() {
			out = append(out, fmt.Sprintf("level %q uses unsupported tier %d", l.Label, int(t)))
		}
		if len(l.Predicates) == 0 {
			out = append(out, fmt.Sprintf("level %q (%s) has no predicates", l.Label, t))
		}
		for _, n := range l.Predicates {
			if cat == nil || !cat.Has(n) {
				out = append(out, fmt.Sprintf("level %q (%s) references unknown predicate %q", l.Label, t, n))
			}
		}
	}
	return out
}

func defaultLabel(t Tier) string {
	switch t {
	case Easy:
		return "Level 1"
	case Medium:
		return "Level 2"
	case Hard:
		return "Level 3"
	default:
		return ""
	}
}
