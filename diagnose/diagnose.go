// Package diagnose inspects a scene setup and reports what would keep a level from working
package diagnose

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/lixenwraith/tarski/figure"
	"github.com/lixenwraith/tarski/level"
	"github.com/lixenwraith/tarski/predicate"
)

// Report collects diagnosis findings
type Report struct {
	Errors      []string
	Warnings    []string
	Suggestions []string
}

func (r *Report) HasErrors() bool   { return len(r.Errors) > 0 }
func (r *Report) HasWarnings() bool { return len(r.Warnings) > 0 }

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) suggestf(format string, args ...any) {
	r.Suggestions = append(r.Suggestions, fmt.Sprintf(format, args...))
}

// Input is the setup under inspection; any field may be nil
type Input struct {
	View    figure.View
	Catalog *predicate.Catalog
	Levels  *level.Config
	// Expected lists predicate names the scene is meant to provide
	Expected []string
}

// Run performs the full diagnosis
func Run(in Input) *Report {
	r := &Report{}
	diagnoseFigures(r, in.View)
	diagnoseCatalog(r, in)
	diagnoseLevels(r, in)
	return r
}

func diagnoseFigures(r *Report, view figure.View) {
	if err := figure.Validate(view); err != nil {
		if errors.Is(err, figure.ErrNoFigures) {
			r.errorf("no figures registered")
			r.suggestf("add figures to the scene file or pick a built-in scene")
			return
		}
		for i := 0; i < view.Len(); i++ {
			if !view.IsValid(i) {
				r.errorf("figure %d is missing", i)
			}
		}
	}
	r.Warnings = append(r.Warnings, figure.Warnings(view)...)
}

func diagnoseCatalog(r *Report, in Input) {
	cat := in.Catalog
	if cat == nil {
		r.errorf("no predicate catalog")
		return
	}
	if cat.Len() == 0 {
		r.warnf("predicate catalog is empty")
	}
	if err := cat.Thresholds().Validate(); err != nil {
		r.warnf("thresholds: %v", err)
	}

	if in.View != nil {
		for _, p := range cat.Predicates() {
			res := p.Evaluate(in.View, cat.Thresholds())
			var cfgErr *predicate.ConfigError
			// Colorless figures are already reported as figure warnings
			if errors.As(res.Fault, &cfgErr) && !in.View.IsValid(cfgErr.Index) {
				r.errorf("%s", cfgErr.Error())
			}
		}
	}

	for _, name := range in.Expected {
		if !cat.Has(name) {
			r.warnf("expected predicate %q not found in catalog", name)
			suggest(r, name, cat.Names())
		}
	}
}

func diagnoseLevels(r *Report, in Input) {
	if in.Levels == nil {
		r.errorf("no level configuration")
		return
	}
	for _, t := range []level.Tier{level.Easy, level.Medium, level.Hard} {
		if !in.Levels.Has(t) {
			r.warnf("tier %s is not configured", t)
		}
	}
	r.Warnings = append(r.Warnings, in.Levels.Validate(in.Catalog)...)
	if in.Catalog == nil {
		return
	}

	used := make(map[string]bool)
	for _, t := range in.Levels.Tiers() {
		for _, name := range in.Levels.GetActivePredicates(t) {
			used[name] = true
			if !in.Catalog.Has(name) {
				suggest(r, name, in.Catalog.Names())
			}
		}
	}
	for _, name := range in.Catalog.Names() {
		if !used[name] {
			r.suggestf("predicate %q is not used by any level", name)
		}
	}
}

// suggest adds the closest catalog names for an unknown one
func suggest(r *Report, name string, candidates []string) {
	if len(candidates) == 0 {
		return
	}
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		// Try the other direction: a candidate abbreviating the missing name
		for _, c := range candidates {
			if len(fuzzy.Find(c, []string{name})) > 0 {
				r.suggestf("did you mean %q instead of %q?", c, name)
				return
			}
		}
		return
	}
	r.suggestf("did you mean %q instead of %q?", matches[0].Str, name)
}

// Write prints the report in the check command's format
func (r *Report) Write(w io.Writer) {
	section := func(title, mark string, lines []string) {
		if len(lines) == 0 {
			return
		}
		fmt.Fprintf(w, "%s (%d)\n", title, len(lines))
		for _, l := range lines {
			fmt.Fprintf(w, "  %s %s\n", mark, l)
		}
	}
	section("Errors", "✗", r.Errors)
	section("Warnings", "!", r.Warnings)
	section("Suggestions", "→", r.Suggestions)
	if !r.HasErrors() && !r.HasWarnings() {
		fmt.Fprintln(w, "Setup OK")
	}
}

// String returns the written report
func (r *Report) String() string {
	var b strings.Builder
	r.Write(&b)
	return b.String()
}
