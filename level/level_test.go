package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type nameSet map[string]bool

func (s nameSet) Has(name string) bool { return s[name] }

func TestGetActivePredicates(t *testing.T) {
	c := NewConfig(
		Level{Tier: Easy, Predicates: []string{"a", "b", "a"}},
		Level{Tier: Hard, Label: "Finale", Predicates: []string{"c"}},
	)

	assert.Equal(t, []string{"a", "b"}, c.GetActivePredicates(Easy), "duplicates dropped, order kept")
	assert.Empty(t, c.GetActivePredicates(Medium))
	assert.Empty(t, c.GetActivePredicates(TierNone), "unconfigured tier is empty, not an error")
	assert.Empty(t, c.GetActivePredicates(Tier(7)))

	got := c.GetActivePredicates(Easy)
	got[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, c.GetActivePredicates(Easy), "result must be a copy")

	assert.Equal(t, "Level 1", c.Label(Easy))
	assert.Equal(t, "Finale", c.Label(Hard))
	assert.Equal(t, []Tier{Easy, Hard}, c.Tiers())
	assert.True(t, c.Has(Hard))
	assert.False(t, c.Has(Medium))
}

func TestNilConfigIsEmpty(t *testing.T) {
	var c *Config
	assert.Nil(t, c.GetActivePredicates(Easy))
	assert.False(t, c.Has(Easy))
	assert.Equal(t, "Level 2", c.Label(Medium))
}

func TestZeroConfigSet(t *testing.T) {
	var c Config
	assert.NotPanics(t, func() {
		c.Set(Level{Tier: Hard, Predicates: []string{"a", "b", "a"}})
	})
	assert.True(t, c.Has(Hard))
	assert.Equal(t, []string{"a", "b"}, c.GetActivePredicates(Hard))
	assert.Equal(t, []Tier{Hard}, c.Tiers())
}

func TestValidate(t *testing.T) {
	c := NewConfig(
		Level{Tier: Easy, Predicates: []string{"a", "ghost"}},
		Level{Tier: Medium},
	)
	w := c.Validate(nameSet{"a": true})
	assert.Len(t, w, 2)
	assert.Contains(t, w[0], `unknown predicate "ghost"`)
	assert.Contains(t, w[1], "has no predicates")
}

func TestParseTier(t *testing.T) {
	for in, want := range map[string]Tier{"1": Easy, "easy": Easy, "2": Medium, "hard": Hard} {
		got, ok := ParseTier(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseTier("0")
	assert.False(t, ok)
	assert.True(t, Easy < Medium && Medium < Hard)
	assert.Equal(t, "tier(0)", TierNone.String())
}
