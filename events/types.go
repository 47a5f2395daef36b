package events

import "fmt"

// EventType represents the type of engine event
type EventType int

const (
	// EventLevelChanged signals that a tier was (re)selected
	// Trigger: Engine.SetLevel, Engine.Initialize
	// Consumer: board (banner reset) | Payload: *LevelChangedPayload
	EventLevelChanged EventType = iota + 1

	// EventPredicateChanged signals that an active predicate flipped value
	// Trigger: Engine.NotifyChanged, compared against the previous evaluation
	// Consumer: audio (toggle tone) | Payload: *PredicateChangedPayload
	EventPredicateChanged

	// EventLevelCompleted signals the first evaluation of an all-true span
	// Fired once per span; re-armed when any active predicate turns false or
	// the level is set again
	// Consumer: audio (chime), board (banner) | Payload: *LevelCompletedPayload
	EventLevelCompleted

	eventTypeCount
)

var eventNames = [eventTypeCount]string{
	EventLevelChanged:     "LevelChanged",
	EventPredicateChanged: "PredicateChanged",
	EventLevelCompleted:   "LevelCompleted",
}

func (t EventType) String() string {
	if t > 0 && t < eventTypeCount {
		return eventNames[t]
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is a dispatched engine event
type Event struct {
	Type    EventType
	Payload any
	// Seq is the engine's notification count when the event was raised
	Seq int
}
