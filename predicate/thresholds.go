package predicate

import (
	"errors"
	"fmt"
)

// Thresholds are the tunable constants shared by all families
// Distances are in the same unit as figure positions
type Thresholds struct {
	MinDistance            float64 `yaml:"min_distance"`
	CloseDistance          float64 `yaml:"close_distance"`
	FarDistance            float64 `yaml:"far_distance"`
	MaxDistance            float64 `yaml:"max_distance"`
	FrontThreshold         float64 `yaml:"front_threshold"`
	HeightTolerance        float64 `yaml:"height_tolerance"`
	AngularTolerance       float64 `yaml:"angular_tolerance"`
	PerpendicularTolerance float64 `yaml:"perpendicular_tolerance"`
}

// DefaultThresholds returns a tabletop-scale tuning
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinDistance:            0.05,
		CloseDistance:          0.3,
		FarDistance:            0.5,
		MaxDistance:            1.5,
		FrontThreshold:         0.7,
		HeightTolerance:        0.05,
		AngularTolerance:       0.1,
		PerpendicularTolerance: 0.15,
	}
}

// Validate rejects negative values and an empty proximity band
func (t Thresholds) Validate() error {
	var errs []error
	check := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s is negative (%g)", name, v))
		}
	}
	check("min_distance", t.MinDistance)
	check("close_distance", t.CloseDistance)
	check("far_distance", t.FarDistance)
	check("max_distance", t.MaxDistance)
	check("height_tolerance", t.HeightTolerance)
	check("angular_tolerance", t.AngularTolerance)
	check("perpendicular_tolerance", t.PerpendicularTolerance)

	if t.MinDistance >= t.CloseDistance {
		errs = append(errs, fmt.Errorf("min_distance (%g) must be below close_distance (%g)", t.MinDistance, t.CloseDistance))
	}
	if t.MaxDistance < t.MinDistance {
		errs = append(errs, fmt.Errorf("max_distance (%g) must not be below min_distance (%g)", t.MaxDistance, t.MinDistance))
	}
	return errors.Join(errs...)
}
