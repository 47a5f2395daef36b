package status

// Entry is one recorded predicate push
type Entry struct {
	Name    string
	Active  bool
	InLevel bool
}

// Batch groups the predicate pushes preceding one Progress push
type Batch struct {
	Statuses []Entry
	Progress Progress
}

// Recorder keeps the full push history; used by tests and the eval command
type Recorder struct {
	Batches []Batch
	pending []Entry
}

func (r *Recorder) PredicateStatus(name string, active, inLevel bool) {
	r.pending = append(r.pending, Entry{Name: name, Active: active, InLevel: inLevel})
}

func (r *Recorder) Progress(p Progress) {
	r.Batches = append(r.Batches, Batch{Statuses: r.pending, Progress: p})
	r.pending = nil
}

// Last returns the latest completed batch, zero when none
func (r *Recorder) Last() Batch {
	if len(r.Batches) == 0 {
		return Batch{}
	}
	return r.Batches[len(r.Batches)-1]
}

// Reset drops the history
func (r *Recorder) Reset() {
	r.Batches = nil
	r.pending = nil
}

var _ Sink = (*Recorder)(nil)
