package status

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PromSink exports engine results as prometheus metrics
type PromSink struct {
	holds       *prometheus.GaugeVec
	inLevel     *prometheus.GaugeVec
	progress    prometheus.Gauge
	completed   prometheus.Gauge
	total       prometheus.Gauge
	evaluations prometheus.Counter
	completions *prometheus.CounterVec

	wasComplete bool
}

// NewPromSink registers the metrics on reg
func NewPromSink(reg prometheus.Registerer) *PromSink {
	f := promauto.With(reg)
	return &PromSink{
		holds: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "tarski",
			Name:      "predicate_holds",
			Help:      "1 when the predicate currently holds, 0 otherwise.",
		}, []string{"predicate"}),
		inLevel: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "tarski",
			Name:      "predicate_in_level",
			Help:      "1 when the predicate belongs to the active level.",
		}, []string{"predicate"}),
		progress: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "tarski",
			Name:      "level_progress_ratio",
			Help:      "Fraction of active predicates that hold.",
		}),
		completed: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "tarski",
			Name:      "level_predicates_holding",
			Help:      "Number of active predicates that hold.",
		}),
		total: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "tarski",
			Name:      "level_predicates",
			Help:      "Number of active predicates in the level.",
		}),
		evaluations: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tarski",
			Name:      "evaluations_total",
			Help:      "Aggregate progress pushes received.",
		}),
		completions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tarski",
			Name:      "level_completions_total",
			Help:      "Transitions into a fully satisfied level.",
		}, []string{"level"}),
	}
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// PredicateStatus implements Sink
func (s *PromSink) PredicateStatus(name string, active, inLevel bool) {
	s.holds.WithLabelValues(name).Set(boolGauge(active))
	s.inLevel.WithLabelValues(name).Set(boolGauge(inLevel))
}

// Progress implements Sink
func (s *PromSink) Progress(p Progress) {
	s.progress.Set(p.Fraction)
	s.completed.Set(float64(p.Completed))
	s.total.Set(float64(p.Total))
	s.evaluations.Inc()

	complete := p.Total > 0 && p.Completed == p.Total
	if complete && !s.wasComplete {
		s.completions.WithLabelValues(p.Label).Inc()
	}
	s.wasComplete = complete
}

var _ Sink = (*PromSink)(nil)
