package decode

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// recordsDecoded tracks decoded records by kind and outcome.
	recordsDecoded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_decode_records_total",
		Help: "Total number of decoded records by kind and outcome",
	}, []string{"kind", "outcome"}) // outcome: ok, missing_field, malformed

	// warningsRecorded tracks values replaced by their default.
	warningsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_decode_warnings_total",
		Help: "Total number of decode warnings by kind and field",
	}, []string{"kind", "field"})

	// batchDuration tracks the time taken to decode a batch.
	batchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_decode_batch_duration_seconds",
		Help:    "Time taken to decode a batch by kind",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"kind"})

	// batchSize tracks the distribution of batch sizes.
	batchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_decode_batch_records_count",
		Help:    "Number of records in decode batches",
		Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
	}, []string{"kind"})
)

// MetricsRecorder provides methods to record decode metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordRecord records the outcome of decoding one record.
func (m *MetricsRecorder) RecordRecord(kind, outcome string) {
	recordsDecoded.WithLabelValues(kind, outcome).Inc()
}

// RecordWarning records a value that fell back to its default.
func (m *MetricsRecorder) RecordWarning(kind, field string) {
	warningsRecorded.WithLabelValues(kind, field).Inc()
}

// RecordBatch records the size and duration of a batch.
func (m *MetricsRecorder) RecordBatch(kind string, records int, duration time.Duration) {
	batchSize.WithLabelValues(kind).Observe(float64(records))
	batchDuration.WithLabelValues(kind).Observe(duration.Seconds())
}
