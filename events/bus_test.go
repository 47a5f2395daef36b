package events

import (
	"testing"
)

// TestBusDispatchOrder verifies handlers run in registration order and only for their types
func TestBusDispatchOrder(t *testing.T) {
	b := NewBus()
	var got []string

	b.Subscribe(func(ev Event) { got = append(got, "first:"+ev.Type.String()) }, EventLevelCompleted, EventLevelChanged)
	b.Subscribe(func(ev Event) { got = append(got, "second:"+ev.Type.String()) }, EventLevelCompleted)

	b.Emit(Event{Type: EventLevelCompleted, Payload: &LevelCompletedPayload{Tier: 1}})
	b.Emit(Event{Type: EventLevelChanged})
	b.Emit(Event{Type: EventPredicateChanged})

	want := []string{"first:LevelCompleted", "second:LevelCompleted", "first:LevelChanged"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d deliveries, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Delivery %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	if b.HandlerCount(EventLevelCompleted) != 2 {
		t.Errorf("Expected 2 handlers for LevelCompleted, got %d", b.HandlerCount(EventLevelCompleted))
	}
	if b.HasHandlers(EventPredicateChanged) {
		t.Error("Expected no handlers for PredicateChanged")
	}
}

// TestNilBusDrops verifies a nil bus is safe to emit on
func TestNilBusDrops(t *testing.T) {
	var b *Bus
	b.Emit(Event{Type: EventLevelCompleted})
	if b.HasHandlers(EventLevelCompleted) || b.HandlerCount(EventLevelCompleted) != 0 {
		t.Error("Nil bus should report no handlers")
	}
}

func TestEventTypeString(t *testing.T) {
	if EventPredicateChanged.String() != "PredicateChanged" {
		t.Errorf("Unexpected name %q", EventPredicateChanged.String())
	}
	if EventType(99).String() != "EventType(99)" {
		t.Errorf("Unexpected fallback %q", EventType(99).String())
	}
}
