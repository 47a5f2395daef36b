// Package status defines the presentation-facing receiver of engine results
package status

// Progress is the aggregate pushed once per evaluation
type Progress struct {
	Fraction  float64
	Completed int
	Total     int
	Label     string
}

// Sink receives per-predicate statuses and one aggregate per evaluation
// Calls are synchronous, from the engine's thread, in a stable order
type Sink interface {
	// PredicateStatus reports one predicate; inLevel is false for predicates
	// outside the active set (active is then always false)
	PredicateStatus(name string, active, inLevel bool)

	// Progress reports the aggregate after all predicate statuses of the batch
	Progress(p Progress)
}

// Nop discards everything
type Nop struct{}

func (Nop) PredicateStatus(string, bool, bool) {}
func (Nop) Progress(Progress)                  {}

// Multi fans out to sinks in order
type Multi []Sink

func (m Multi) PredicateStatus(name string, active, inLevel bool) {
	for _, s := range m {
		s.PredicateStatus(name, active, inLevel)
	}
}

func (m Multi) Progress(p Progress) {
	for _, s := range m {
		s.Progress(p)
	}
}

var (
	_ Sink = Nop{}
	_ Sink = Multi(nil)
)
