package events

// LevelChangedPayload carries the newly active tier
type LevelChangedPayload struct {
	Tier  int
	Label string
	// Total is the number of resolved active predicates
	Total int
}

// PredicateChangedPayload carries one predicate flip
type PredicateChangedPayload struct {
	Name   string
	Active bool
}

// LevelCompletedPayload identifies the completed level
type LevelCompletedPayload struct {
	Tier  int
	Label string
	Total int
}
