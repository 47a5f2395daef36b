package status

import (
	"sync"
	"sync/atomic"
)

// Row is a read-out of one predicate cell
type Row struct {
	Name    string
	Active  bool
	InLevel bool
}

type cell struct {
	active  atomic.Bool
	inLevel atomic.Bool
}

// Registry is a Sink that stores the latest values for concurrent readers
// Cell registration uses the mutex; value writes/reads are atomic
// Rows keep first-push order, which matches the engine's stable push order
type Registry struct {
	mu    sync.RWMutex
	order []string
	cells map[string]*cell

	fraction  AtomicFloat
	completed atomic.Int64
	total     atomic.Int64
	label     AtomicString
	batches   atomic.Int64
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		cells: make(map[string]*cell),
	}
}

// cellFor returns the cell for name, creating it if absent
func (r *Registry) cellFor(name string) *cell {
	// Fast path: RLock check
	r.mu.RLock()
	if c, ok := r.cells[name]; ok {
		r.mu.RUnlock()
		return c
	}
	r.mu.RUnlock()

	// Slow path: Lock and create
	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if c, ok := r.cells[name]; ok {
		return c
	}
	c := &cell{}
	r.cells[name] = c
	r.order = append(r.order, name)
	return c
}

// PredicateStatus implements Sink
func (r *Registry) PredicateStatus(name string, active, inLevel bool) {
	c := r.cellFor(name)
	c.active.Store(active)
	c.inLevel.Store(inLevel)
}

// Progress implements Sink
func (r *Registry) Progress(p Progress) {
	r.fraction.Set(p.Fraction)
	r.completed.Store(int64(p.Completed))
	r.total.Store(int64(p.Total))
	r.label.Store(p.Label)
	r.batches.Add(1)
}

// Rows returns every known predicate in first-push order
func (r *Registry) Rows() []Row {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]Row, 0, len(r.order))
	for _, name := range r.order {
		c := r.cells[name]
		rows = append(rows, Row{Name: name, Active: c.active.Load(), InLevel: c.inLevel.Load()})
	}
	return rows
}

// Status returns one predicate's latest values
func (r *Registry) Status(name string) (Row, bool) {
	r.mu.RLock()
	c, ok := r.cells[name]
	r.mu.RUnlock()
	if !ok {
		return Row{}, false
	}
	return Row{Name: name, Active: c.active.Load(), InLevel: c.inLevel.Load()}, true
}

// Snapshot returns the latest aggregate
func (r *Registry) Snapshot() Progress {
	return Progress{
		Fraction:  r.fraction.Get(),
		Completed: int(r.completed.Load()),
		Total:     int(r.total.Load()),
		Label:     r.label.Load(),
	}
}

// Batches returns how many aggregate pushes have been received
func (r *Registry) Batches() int64 {
	return r.batches.Load()
}

// Reset forgets all predicate cells; used when the scene is reloaded
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = nil
	r.cells = make(map[string]*cell)
}

var _ Sink = (*Registry)(nil)
