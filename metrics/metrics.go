// Package metrics exposes Prometheus instrumentation for schema generation runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "caseschema"

type Metrics struct {
	// Compilation metrics
	CompilationsTotal  *prometheus.CounterVec
	GenerationDuration prometheus.Histogram

	// Validation metrics
	ValidationsTotal *prometheus.CounterVec

	// Output metrics
	DocumentsWritten *prometheus.CounterVec
	TriplesPublished prometheus.Counter
}

// New registers the metrics on reg. A nil reg creates unregistered collectors.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		CompilationsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "compilations_total",
				Help:      "Total number of schema compilations",
			},
			[]string{"investigation_type", "status"}, // status: success/error
		),
		GenerationDuration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Duration of complete generation runs in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		ValidationsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validations_total",
				Help:      "Total number of instance validations",
			},
			[]string{"result"}, // valid/invalid/error
		),
		DocumentsWritten: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_written_total",
				Help:      "Total number of files written",
			},
			[]string{"kind"}, // schema/combined/examples/export
		),
		TriplesPublished: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "triples_published_total",
				Help:      "Total number of triples published to the graph",
			},
		),
	}
}

// Nop returns metrics that are not registered anywhere.
func Nop() *Metrics { return New(nil) }

// ObserveCompilation counts one compilation attempt.
func (m *Metrics) ObserveCompilation(investigationType string, err error) {
	m.CompilationsTotal.WithLabelValues(investigationType, status(err)).Inc()
}

// ObserveValidation counts one instance validation. invalid distinguishes a
// failed validation from an error that prevented validation.
func (m *Metrics) ObserveValidation(err error, invalid bool) {
	result := "valid"
	switch {
	case invalid:
		result = "invalid"
	case err != nil:
		result = "error"
	}
	m.ValidationsTotal.WithLabelValues(result).Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
