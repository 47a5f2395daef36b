package registry

import (
	"github.com/lixenwraith/tarski/config"
	"github.com/lixenwraith/tarski/predicate"
)

// DefaultScene is used when no scene is given
const DefaultScene = "tabletop"

func init() {
	RegisterScene("tabletop", "pyramid, cube and prism; colour, proximity and arrangement levels", config.Default)
	RegisterScene("classic", "three figures; same colour, in front of, between", classicScene)
	RegisterScene("geometry", "four points; collinear, centroid, triangle, perpendicular", geometryScene)
}

func classicScene() *config.Scene {
	return &config.Scene{
		Name:       "classic",
		Thresholds: predicate.DefaultThresholds(),
		Figures: []config.FigureSpec{
			{ID: "first", Name: "First", Position: []float64{0, 0, 0}, Forward: []float64{1, 0, 0}, Color: "yellow"},
			{ID: "second", Name: "Second", Position: []float64{0.5, 0, 0.5}, Forward: []float64{0, 0, 1}, Color: "teal"},
			{ID: "third", Name: "Third", Position: []float64{-0.5, 0, 0.3}, Forward: []float64{0, 0, 1}, Color: "yellow"},
		},
		Predicates: []config.PredicateSpec{
			{Name: "SameColor", Family: "same_color", Figures: []string{"first", "second"}},
			{Name: "InFrontOf", Family: "in_front_of", Figures: []string{"first", "second"}},
			{Name: "Between", Family: "between", Figures: []string{"first", "second", "third"}},
		},
		Levels: []config.LevelSpec{
			{Tier: "easy", Label: "Colour", Predicates: []string{"SameColor"}},
			{Tier: "medium", Label: "Facing", Predicates: []string{"SameColor", "InFrontOf"}},
			{Tier: "hard", Label: "Order", Predicates: []string{"SameColor", "InFrontOf", "Between"}},
		},
		Expected: []string{"SameColor", "InFrontOf", "Between"},
	}
}

func geometryScene() *config.Scene {
	return &config.Scene{
		Name:       "geometry",
		Thresholds: predicate.DefaultThresholds(),
		Figures: []config.FigureSpec{
			{ID: "p1", Name: "P1", Position: []float64{0, 0, 0}, Color: "white"},
			{ID: "p2", Name: "P2", Position: []float64{0.25, 0, 0.1}, Color: "white"},
			{ID: "p3", Name: "P3", Position: []float64{0.4, 0, 0}, Color: "white"},
			{ID: "apex", Name: "Apex", Position: []float64{0.6, 0, 0.5}, Color: "orange"},
		},
		Predicates: []config.PredicateSpec{
			{Name: "PointsCollinear", Family: "collinear", Figures: []string{"p1", "p2", "p3"}},
			{Name: "P2IsCentroid", Family: "is_centroid_of", Figures: []string{"p2", "p1", "p3"}},
			{Name: "ApexTriangle", Family: "forms_triangle", Figures: []string{"p1", "p3", "apex"}},
			{Name: "ApexPerpendicular", Family: "perpendicular", Figures: []string{"p1", "p2", "apex"}},
		},
		Levels: []config.LevelSpec{
			{Tier: "easy", Label: "Line", Predicates: []string{"PointsCollinear"}},
			{Tier: "medium", Label: "Midpoint", Predicates: []string{"PointsCollinear", "P2IsCentroid"}},
			{Tier: "hard", Label: "Right angle", Predicates: []string{"ApexTriangle", "ApexPerpendicular", "P2IsCentroid"}},
		},
	}
}
