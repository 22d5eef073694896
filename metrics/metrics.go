// Package metrics provides Prometheus metrics for the connector
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Enumeration outcomes
const (
	OutcomeYielded   = "yielded"
	OutcomeSkipped   = "skipped"
	OutcomeDuplicate = "duplicate"
	OutcomeAborted   = "aborted"
)

// Operation statuses
const (
	StatusOK       = "ok"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// Metrics holds all Prometheus metrics of the connector. A nil *Metrics
// records nothing.
type Metrics struct {
	OperationsTotal      *prometheus.CounterVec
	OperationDuration    *prometheus.HistogramVec
	EnumeratedDocuments  *prometheus.CounterVec
	WritesInFlight       prometheus.Gauge
	WrittenBytesTotal    prometheus.Counter
	ConnectionsOpenTotal *prometheus.CounterVec
}

// New creates the metrics and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{}

	m.OperationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongoagent_operations_total",
			Help: "Total number of connector operations",
		},
		[]string{"operation", "status"},
	)

	m.OperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mongoagent_operation_duration_seconds",
			Help:    "Duration of connector operations in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	m.EnumeratedDocuments = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongoagent_enumerated_documents_total",
			Help: "Native results seen during enumeration by outcome",
		},
		[]string{"outcome"},
	)

	m.WritesInFlight = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "mongoagent_writes_in_flight",
			Help: "Number of document writes currently being processed",
		},
	)

	m.WrittenBytesTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "mongoagent_written_bytes_total",
			Help: "Total payload bytes handed to the store",
		},
	)

	m.ConnectionsOpenTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongoagent_connections_opened_total",
			Help: "Repository connections opened by path and status",
		},
		[]string{"path", "status"},
	)

	return m
}

// RecordOperation records a connector operation
func (m *Metrics) RecordOperation(operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.OperationsTotal.WithLabelValues(operation, status).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordEnumerated records the outcome of one native result
func (m *Metrics) RecordEnumerated(outcome string) {
	if m == nil {
		return
	}
	m.EnumeratedDocuments.WithLabelValues(outcome).Inc()
}

// RecordConnection records a connection attempt on the read or write path
func (m *Metrics) RecordConnection(path string, err error) {
	if m == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.ConnectionsOpenTotal.WithLabelValues(path, status).Inc()
}

// WriteStarted marks a write as in flight
func (m *Metrics) WriteStarted() {
	if m == nil {
		return
	}
	m.WritesInFlight.Inc()
}

// WriteFinished marks a write as done and adds the bytes handed to the store
func (m *Metrics) WriteFinished(bytes int64) {
	if m == nil {
		return
	}
	m.WritesInFlight.Dec()
	if bytes > 0 {
		m.WrittenBytesTotal.Add(float64(bytes))
	}
}

// Status maps an operation result to a status label
func Status(err error, found bool) string {
	switch {
	case err != nil:
		return StatusError
	case !found:
		return StatusNotFound
	default:
		return StatusOK
	}
}
