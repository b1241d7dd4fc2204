package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	loadRecords  *prometheus.GaugeVec
	loadWarnings *prometheus.CounterVec
	predictions  *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

// New creates a recorder registered with the default Prometheus registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registered with reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		loadRecords: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "finsignal_load_records",
				Help: "Number of records loaded per data source",
			},
			[]string{"source"},
		),
		loadWarnings: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsignal_load_warnings_total",
				Help: "Total number of warnings raised while loading data sources",
			},
			[]string{"source"},
		),
		predictions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsignal_predictions_total",
				Help: "Total number of predictions served by regime",
			},
			[]string{"regime"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsignal_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finsignal_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordLoad records how many records a source produced.
func (r *Recorder) RecordLoad(source string, records int) {
	r.loadRecords.WithLabelValues(source).Set(float64(records))
}

// RecordLoadWarning records a load-time warning for a source.
func (r *Recorder) RecordLoadWarning(source string) {
	r.loadWarnings.WithLabelValues(source).Inc()
}

// RecordPrediction records a served prediction.
func (r *Recorder) RecordPrediction(regime string) {
	r.predictions.WithLabelValues(regime).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
