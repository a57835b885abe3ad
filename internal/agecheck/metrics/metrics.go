package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeEligible   = "eligible"
	OutcomeIneligible = "ineligible"
	OutcomeError      = "error"
)

type Metrics struct {
	AgeEvaluationsTotal       *prometheus.CounterVec
	AgeEvaluationDuration     *prometheus.HistogramVec
	AgeBatchSize              prometheus.Histogram
	AgeBracketBoundsLookups   *prometheus.CounterVec
	AgeReferenceDateDefaulted prometheus.Counter
}

// New registers the metrics with the default registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics with reg. Tests pass a fresh registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AgeEvaluationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ageutil_age_evaluations_total",
			Help: "Total number of age evaluations by bracket and outcome",
		}, []string{"bracket", "outcome"}),
		AgeEvaluationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ageutil_age_evaluation_duration_seconds",
			Help:    "Duration of age evaluation operations in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"operation"}),
		AgeBatchSize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ageutil_age_batch_size",
			Help:    "Number of dates of birth per batch evaluation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 7),
		}),
		AgeBracketBoundsLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ageutil_bracket_bounds_lookups_total",
			Help: "Total number of bracket birth-date bound lookups",
		}, []string{"bracket"}),
		AgeReferenceDateDefaulted: f.NewCounter(prometheus.CounterOpts{
			Name: "ageutil_reference_date_defaulted_total",
			Help: "Total number of requests evaluated against the request date because none was given",
		}),
	}
}

func (m *Metrics) IncrementEvaluation(bracket, outcome string) {
	m.AgeEvaluationsTotal.WithLabelValues(bracket, outcome).Inc()
}

func (m *Metrics) ObserveDuration(operation string, d time.Duration) {
	m.AgeEvaluationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Metrics) ObserveBatchSize(n int) {
	m.AgeBatchSize.Observe(float64(n))
}

func (m *Metrics) IncrementBoundsLookup(bracket string) {
	m.AgeBracketBoundsLookups.WithLabelValues(bracket).Inc()
}

func (m *Metrics) IncrementReferenceDateDefaulted() {
	m.AgeReferenceDateDefaulted.Inc()
}
