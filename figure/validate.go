package figure

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFigures means the registry is nil or empty
	ErrNoFigures = errors.New("no figures registered")
	// ErrFigureMissing means a slot has no usable transform
	ErrFigureMissing = errors.New("figure missing")
)

// Validate performs the fatal initialization check
// Fails when the view is nil, empty, or any slot is not present
func Validate(v View) error {
	if v == nil || v.Len() == 0 {
		return ErrNoFigures
	}
	var errs []error
	for i := 0; i < v.Len(); i++ {
		if !v.IsValid(i) {
			errs = append(errs, fmt.Errorf("index %d: %w", i, ErrFigureMissing))
		}
	}
	return errors.Join(errs...)
}

// Warnings lists non-fatal figure problems (e.g. no renderable color)
func Warnings(v View) []string {
	if v == nil {
		return nil
	}
	var out []string
	for i := 0; i < v.Len(); i++ {
		if !v.IsValid(i) {
			continue
		}
		if _, ok := v.Color(i); !ok {
			out = append(out, fmt.Sprintf("figure %d has no renderable color", i))
		}
		if fwd, _ := v.Forward(i); fwd.X == 0 && fwd.Y == 0 && fwd.Z == 0 {
			out = append(out, fmt.Sprintf("figure %d has a zero forward vector", i))
		}
	}
	return out
}
