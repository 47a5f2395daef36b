// Package tracker turns figure motion into engine change notifications
package tracker

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/tarski/figure"
	"github.com/lixenwraith/tarski/vmath"
)

const (
	DefaultMovementThreshold = 0.01
	DefaultCooldown          = 500 * time.Millisecond
)

// Notifier receives "figures may have changed" signals
type Notifier interface {
	NotifyChanged()
}

// Reason identifies why a tracker fired
type Reason int

const (
	ReasonNone Reason = iota
	ReasonReleased
	ReasonMoved
)

func (r Reason) String() string {
	switch r {
	case ReasonReleased:
		return "released"
	case ReasonMoved:
		return "moved"
	default:
		return "none"
	}
}

// Options tunes a Tracker; zero fields take defaults
type Options struct {
	MovementThreshold float64
	Cooldown          time.Duration
	Clock             Clock
}

func (o Options) withDefaults() Options {
	if o.MovementThreshold <= 0 {
		o.MovementThreshold = DefaultMovementThreshold
	}
	if o.Cooldown <= 0 {
		o.Cooldown = DefaultCooldown
	}
	if o.Clock == nil {
		o.Clock = RealClock{}
	}
	return o
}

// Tracker watches one figure's position and grab state
//
// Fires when:
//   - a grab is released, regardless of cooldown
//   - the figure moved more than MovementThreshold since the last fire,
//     is not grabbed, and Cooldown elapsed since the last fire
type Tracker struct {
	opts Options

	lastPos     vmath.Vec3F
	lastNotify  time.Time
	wasGrabbed  bool
	initialized bool
	count       int
}

// New creates a tracker anchored at start
func New(start vmath.Vec3F, opts Options) *Tracker {
	return &Tracker{
		opts:        opts.withDefaults(),
		lastPos:     start,
		initialized: true,
	}
}

// Observe feeds one frame of state and reports whether a notification is due
func (t *Tracker) Observe(pos vmath.Vec3F, grabbed bool) Reason {
	if !t.initialized {
		t.lastPos = pos
		t.initialized = true
	}

	now := t.opts.Clock.Now()
	reason := ReasonNone
	switch {
	case t.wasGrabbed && !grabbed:
		reason = ReasonReleased
	case !grabbed &&
		vmath.V3FDist(pos, t.lastPos) > t.opts.MovementThreshold &&
		now.Sub(t.lastNotify) > t.opts.Cooldown:
		reason = ReasonMoved
	}

	if reason != ReasonNone {
		t.lastPos = pos
		t.lastNotify = now
		t.count++
	}
	t.wasGrabbed = grabbed
	return reason
}

// Count returns the number of fires so far
func (t *Tracker) Count() int {
	return t.count
}

// Group tracks every figure of a store and forwards to a Notifier
type Group struct {
	notifier Notifier
	opts     Options
	log      *zap.Logger
	trackers []*Tracker
}

// NewGroup creates a group; trackers are created lazily per index
func NewGroup(n Notifier, opts Options, log *zap.Logger) *Group {
	if log == nil {
		log = zap.NewNop()
	}
	return &Group{
		notifier: n,
		opts:     opts.withDefaults(),
		log:      log,
	}
}

// Update observes every present figure; grabbed may be nil
// At most one NotifyChanged is sent per call, since evaluation is stateless
// over the current figures. Returns the number of trackers that fired
func (g *Group) Update(store *figure.Store, grabbed func(i int) bool) int {
	for len(g.trackers) < store.Len() {
		g.trackers = append(g.trackers, &Tracker{opts: g.opts})
	}

	fired := 0
	for i := 0; i < store.Len(); i++ {
		pos, ok := store.Position(i)
		if !ok {
			continue
		}
		held := grabbed != nil && grabbed(i)
		if r := g.trackers[i].Observe(pos, held); r != ReasonNone {
			fired++
			g.log.Debug("Figure change",
				zap.Int("figure", i),
				zap.Stringer("reason", r),
				zap.Int("count", g.trackers[i].Count()))
		}
	}
	if fired > 0 && g.notifier != nil {
		g.notifier.NotifyChanged()
	}
	return fired
}

// Reset drops all per-figure state; used after a scene reload
func (g *Group) Reset() {
	g.trackers = nil
}
