// Package engine evaluates the active level's predicates over live figures
//
// The engine is driven from a single logic thread: NotifyChanged and
// SetLevel are the only entry points that mutate its snapshot. It never
// polls; hosts call NotifyChanged whenever figures may have moved.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lixenwraith/tarski/events"
	"github.com/lixenwraith/tarski/figure"
	"github.com/lixenwraith/tarski/level"
	"github.com/lixenwraith/tarski/predicate"
	"github.com/lixenwraith/tarski/status"
)

var (
	ErrNoCatalog = errors.New("no predicate catalog")
	ErrNoLevels  = errors.New("no level configuration")
)

// Option configures an Engine
type Option func(*Engine)

// WithLogger routes configuration warnings to log
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithSink sets the status sink; use status.Multi for several
func WithSink(s status.Sink) Option {
	return func(e *Engine) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithBus sets the bus completion/change events are emitted on
func WithBus(b *events.Bus) Option {
	return func(e *Engine) {
		e.bus = b
	}
}

// Engine owns the active level and its evaluation snapshot
// Not safe for concurrent use
type Engine struct {
	log  *zap.Logger
	sink status.Sink
	bus  *events.Bus

	state   State
	initErr error

	view    figure.View
	catalog *predicate.Catalog
	levels  *level.Config

	tier    level.Tier
	active  []*predicate.Predicate
	inLevel map[string]bool
	snap    Snapshot
	latch   Latch

	// faults already logged since the last SetLevel
	reported      map[string]struct{}
	notifications int
	// activation is bumped by SetLevel; handlers may switch levels mid-dispatch
	activation uint64
}

// New creates an uninitialized engine
func New(opts ...Option) *Engine {
	e := &Engine{
		log:  zap.NewNop(),
		sink: status.Nop{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize binds the engine to its figures, catalog and levels, then selects tier
// On error the engine stays Uninitialized and every later call is a no-op
// Calling Initialize again rebinds (used for scene reloads)
func (e *Engine) Initialize(view figure.View, cat *predicate.Catalog, levels *level.Config, tier level.Tier) error {
	e.reset()

	var err error
	switch {
	case cat == nil:
		err = ErrNoCatalog
	case levels == nil:
		err = ErrNoLevels
	default:
		err = figure.Validate(view)
	}
	if err != nil {
		e.initErr = fmt.Errorf("initialize: %w", err)
		e.log.Error("Engine disabled", zap.Error(err))
		return e.initErr
	}

	e.view = view
	e.catalog = cat
	e.levels = levels

	for _, w := range figure.Warnings(view) {
		e.log.Warn("Figure configuration", zap.String("detail", w))
	}
	if cat.Len() == 0 {
		e.log.Warn("Predicate catalog is empty")
	}
	if err := cat.Thresholds().Validate(); err != nil {
		e.log.Warn("Threshold configuration", zap.Error(err))
	}
	for _, w := range levels.Validate(cat) {
		e.log.Warn("Level configuration", zap.String("detail", w))
	}

	e.state = StateReady
	e.log.Info("Engine ready",
		zap.Int("figures", view.Len()),
		zap.Int("predicates", cat.Len()),
		zap.Int("levels", len(levels.Tiers())))

	e.SetLevel(tier)
	return nil
}

func (e *Engine) reset() {
	e.state = StateUninitialized
	e.initErr = nil
	e.view = nil
	e.catalog = nil
	e.levels = nil
	e.tier = level.TierNone
	e.active = nil
	e.inLevel = nil
	e.snap = Snapshot{}
	e.latch = NotYetMet
	e.reported = nil
	e.notifications = 0
}

// SetLevel swaps the active predicate set and re-arms the completion latch
// Statuses are pushed from a fresh evaluation, but completion stays withheld
// (0%, not completed) until the next NotifyChanged
func (e *Engine) SetLevel(tier level.Tier) {
	if !e.IsReady() {
		return
	}

	e.activation++
	e.tier = tier
	e.active = nil
	e.inLevel = make(map[string]bool)
	e.reported = make(map[string]struct{})
	e.latch = NotYetMet
	e.state = StateReady

	names := e.levels.GetActivePredicates(tier)
	if len(names) == 0 {
		e.log.Warn("Level has no active predicates", zap.Stringer("tier", tier))
	}
	for _, name := range names {
		p, ok := e.catalog.Lookup(name)
		if !ok {
			e.log.Warn("Level references unknown predicate",
				zap.Stringer("tier", tier),
				zap.String("predicate", name))
			continue
		}
		e.active = append(e.active, p)
		e.inLevel[name] = true
	}

	statuses := e.evaluate()
	e.snap = Snapshot{
		Tier:     tier,
		Label:    e.levels.Label(tier),
		Statuses: statuses,
		Total:    len(statuses),
		Pending:  true,
	}
	e.push()

	e.bus.Emit(events.Event{
		Type: events.EventLevelChanged,
		Seq:  e.notifications,
		Payload: &events.LevelChangedPayload{
			Tier:  int(tier),
			Label: e.snap.Label,
			Total: e.snap.Total,
		},
	})
}

// NotifyChanged recomputes every active predicate and reports the results
// Safe to call arbitrarily often; results depend only on current figure state
func (e *Engine) NotifyChanged() {
	if !e.IsReady() {
		return
	}
	e.notifications++
	e.state = StateEvaluating
	gen := e.activation

	prev := make(map[string]bool, len(e.snap.Statuses))
	for _, s := range e.snap.Statuses {
		prev[s.Name] = s.Active
	}

	statuses := e.evaluate()
	completed := 0
	for _, s := range statuses {
		if s.Active {
			completed++
		}
	}
	e.snap = Snapshot{
		Tier:      e.tier,
		Label:     e.snap.Label,
		Statuses:  statuses,
		Completed: completed,
		Total:     len(statuses),
	}
	e.push()

	for _, s := range statuses {
		if was, ok := prev[s.Name]; ok && was != s.Active {
			e.bus.Emit(events.Event{
				Type:    events.EventPredicateChanged,
				Seq:     e.notifications,
				Payload: &events.PredicateChangedPayload{Name: s.Name, Active: s.Active},
			})
		}
	}
	if e.activation != gen {
		return
	}

	if !e.snap.Complete() {
		e.latch = NotYetMet
		e.state = StateReady
		return
	}

	e.state = StateLevelComplete
	if e.latch != NotYetMet {
		return
	}
	e.latch = JustMet
	e.log.Info("Level completed",
		zap.Stringer("tier", e.tier),
		zap.String("label", e.snap.Label),
		zap.Int("notification", e.notifications))
	e.bus.Emit(events.Event{
		Type: events.EventLevelCompleted,
		Seq:  e.notifications,
		Payload: &events.LevelCompletedPayload{
			Tier:  int(e.tier),
			Label: e.snap.Label,
			Total: e.snap.Total,
		},
	})
	// A handler that called SetLevel owns the latch of the new activation
	if e.activation == gen && e.latch == JustMet {
		e.latch = AlreadyReported
	}
}

// evaluate runs the active set in level order; faults are logged once per activation
func (e *Engine) evaluate() []PredicateStatus {
	th := e.catalog.Thresholds()
	out := make([]PredicateStatus, 0, len(e.active))
	for _, p := range e.active {
		res := p.Evaluate(e.view, th)
		if res.Fault != nil {
			if _, seen := e.reported[p.Name]; !seen {
				e.reported[p.Name] = struct{}{}
				e.log.Warn("Predicate evaluation fault",
					zap.String("predicate", p.Name),
					zap.Stringer("family", p.Family),
					zap.Error(res.Fault))
			}
		}
		out = append(out, PredicateStatus{Name: p.Name, Active: res.Holds, Fault: res.Fault})
	}
	return out
}

// push reports every catalog predicate in registration order, then the aggregate
func (e *Engine) push() {
	values := make(map[string]bool, len(e.snap.Statuses))
	for _, s := range e.snap.Statuses {
		values[s.Name] = s.Active
	}
	for _, p := range e.catalog.Predicates() {
		in := e.inLevel[p.Name]
		e.sink.PredicateStatus(p.Name, in && values[p.Name], in)
	}
	e.sink.Progress(status.Progress{
		Fraction:  e.snap.Percentage(),
		Completed: e.snap.Completed,
		Total:     e.snap.Total,
		Label:     e.snap.Label,
	})
}

// GetCompletionPercentage returns the settled completion in [0,1]
func (e *Engine) GetCompletionPercentage() float64 {
	if !e.IsReady() {
		return 0
	}
	return e.snap.Percentage()
}

// IsLevelCompleted reports percentage >= 1
func (e *Engine) IsLevelCompleted() bool {
	return e.GetCompletionPercentage() >= 1.0
}

// IsReady reports a successful Initialize
func (e *Engine) IsReady() bool {
	return e.state != StateUninitialized
}

// InitError returns the error of the last failed Initialize
func (e *Engine) InitError() error {
	return e.initErr
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Latch() Latch {
	return e.latch
}

func (e *Engine) Tier() level.Tier {
	return e.tier
}

// Notifications returns the NotifyChanged count since Initialize
func (e *Engine) Notifications() int {
	return e.notifications
}

// Snapshot returns a copy of the latest evaluation
func (e *Engine) Snapshot() Snapshot {
	return e.snap.clone()
}

// DebugState renders the engine state for logs and the eval command
func (e *Engine) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "state=%s latch=%s tier=%s notifications=%d\n", e.state, e.latch, e.tier, e.notifications)
	if !e.IsReady() {
		if e.initErr != nil {
			fmt.Fprintf(&b, "disabled: %v\n", e.initErr)
		}
		return b.String()
	}
	fmt.Fprintf(&b, "level %q: %d/%d (%.0f%%)", e.snap.Label, e.snap.Completed, e.snap.Total, e.snap.Percentage()*100)
	if e.snap.Pending {
		b.WriteString(" pending")
	}
	b.WriteByte('\n')
	for _, s := range e.snap.Statuses {
		mark := "✗"
		if s.Active {
			mark = "✓"
		}
		fmt.Fprintf(&b, "  %s %s", mark, s.Name)
		if s.Fault != nil {
			fmt.Fprintf(&b, " (%v)", s.Fault)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
