package engine

import (
	"github.com/lixenwraith/tarski/level"
)

// State is the engine lifecycle
//
//	Uninitialized -> Ready -> (Evaluating)* -> LevelComplete
//
// LevelComplete drops back to Ready when an active predicate turns false
// or a level is set; a failed Initialize leaves the engine Uninitialized
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateEvaluating
	StateLevelComplete
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateEvaluating:
		return "evaluating"
	case StateLevelComplete:
		return "level_complete"
	default:
		return "unknown"
	}
}

// Latch is the one-shot completion signal guard
// Transitions happen only inside NotifyChanged and SetLevel
type Latch int

const (
	// NotYetMet: armed, the next all-true evaluation fires
	NotYetMet Latch = iota
	// JustMet: the completion event is being dispatched
	JustMet
	// AlreadyReported: fired for the current all-true span
	AlreadyReported
)

func (l Latch) String() string {
	switch l {
	case NotYetMet:
		return "not_yet_met"
	case JustMet:
		return "just_met"
	case AlreadyReported:
		return "already_reported"
	default:
		return "unknown"
	}
}

// PredicateStatus is one active predicate's last value
type PredicateStatus struct {
	Name   string
	Active bool
	// Fault is set when the predicate could not read its figures
	Fault error
}

// Snapshot is the wholesale result of the latest evaluation
type Snapshot struct {
	Tier     level.Tier
	Label    string
	Statuses []PredicateStatus // active set, level-list order
	// Completed counts true statuses; zero while Pending
	Completed int
	Total     int
	// Pending is true between SetLevel and the next NotifyChanged
	Pending bool
}

// Percentage returns Completed/Total in [0,1], 0 when empty or pending
func (s Snapshot) Percentage() float64 {
	if s.Total == 0 || s.Pending {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}

// Complete reports a settled, non-empty, all-true snapshot
func (s Snapshot) Complete() bool {
	return !s.Pending && s.Total > 0 && s.Completed == s.Total
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Statuses = append([]PredicateStatus(nil), s.Statuses...)
	return out
}
