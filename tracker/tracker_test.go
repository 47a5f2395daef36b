package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/tarski/figure"
	"github.com/lixenwraith/tarski/vmath"
)

type countingNotifier struct{ calls int }

func (c *countingNotifier) NotifyChanged() { c.calls++ }

func newClock() *ManualClock {
	return NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestTrackerMovementAndCooldown(t *testing.T) {
	clock := newClock()
	tr := New(vmath.V3F(0, 0, 0), Options{Clock: clock})

	assert.Equal(t, ReasonNone, tr.Observe(vmath.V3F(0.005, 0, 0), false), "below threshold")
	assert.Equal(t, ReasonMoved, tr.Observe(vmath.V3F(0.02, 0, 0), false))

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, ReasonNone, tr.Observe(vmath.V3F(0.1, 0, 0), false), "inside cooldown")

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, ReasonMoved, tr.Observe(vmath.V3F(0.1, 0, 0), false))
	assert.Equal(t, 2, tr.Count())
}

func TestTrackerSuppressedWhileGrabbed(t *testing.T) {
	clock := newClock()
	tr := New(vmath.V3F(0, 0, 0), Options{Clock: clock})

	assert.Equal(t, ReasonNone, tr.Observe(vmath.V3F(0.5, 0, 0), true))
	clock.Advance(time.Second)
	assert.Equal(t, ReasonNone, tr.Observe(vmath.V3F(0.7, 0, 0), true))

	// Release fires immediately, ignoring cooldown
	assert.Equal(t, ReasonReleased, tr.Observe(vmath.V3F(0.7, 0, 0), false))
	assert.Equal(t, ReasonNone, tr.Observe(vmath.V3F(0.7, 0, 0), false))
}

func TestTrackerReleaseIgnoresCooldown(t *testing.T) {
	clock := newClock()
	tr := New(vmath.V3F(0, 0, 0), Options{Clock: clock})

	assert.Equal(t, ReasonMoved, tr.Observe(vmath.V3F(0.1, 0, 0), false))
	tr.Observe(vmath.V3F(0.1, 0, 0), true)
	assert.Equal(t, ReasonReleased, tr.Observe(vmath.V3F(0.2, 0, 0), false))
}

func TestGroupCoalescesNotifications(t *testing.T) {
	clock := newClock()
	store := figure.NewStore(
		&figure.Figure{ID: "a", Present: true},
		&figure.Figure{ID: "b", Present: true},
		&figure.Figure{ID: "c", Present: false},
	)
	n := &countingNotifier{}
	g := NewGroup(n, Options{Clock: clock}, nil)

	assert.Zero(t, g.Update(store, nil), "first frame anchors positions")
	assert.Zero(t, n.calls)

	store.Move(0, vmath.V3F(1, 0, 0))
	store.Move(1, vmath.V3F(0, 0, 1))
	assert.Equal(t, 2, g.Update(store, nil))
	assert.Equal(t, 1, n.calls)

	clock.Advance(time.Second)
	store.Move(0, vmath.V3F(2, 0, 0))
	grabbed := func(i int) bool { return i == 0 }
	assert.Zero(t, g.Update(store, grabbed))
	assert.Equal(t, 1, g.Update(store, nil), "release")
	assert.Equal(t, 2, n.calls)

	g.Reset()
	assert.Zero(t, g.Update(store, nil))
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, DefaultMovementThreshold, o.MovementThreshold)
	assert.Equal(t, DefaultCooldown, o.Cooldown)
	assert.IsType(t, RealClock{}, o.Clock)
}
