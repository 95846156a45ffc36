// Package metrics provides Prometheus metrics collection and exposition for
// chainsaw, following the teacher's pkg/metrics: package-level metric vars,
// registered once in init(), a Handler() for promhttp, and a Timer helper
// for recording operation latency.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Namespace-level gauges, set by pkg/httpapi: NamespacesTotal when it
	// lists namespaces, ObjectsTotal/LabelsTotal after namespace and blob
	// mutations.
	NamespacesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainsaw_namespaces_total",
			Help: "Total number of open namespaces",
		},
	)

	ObjectsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chainsaw_objects_total",
			Help: "Total number of stored objects by namespace",
		},
		[]string{"namespace"},
	)

	LabelsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chainsaw_labels_total",
			Help: "Total number of distinct labels by namespace",
		},
		[]string{"namespace"},
	)

	// Operation counters and latency, recorded inline by pkg/namespace's
	// own recordOp around each operation rather than via a polling
	// collector — chainsaw's operations are request-driven, not a
	// reconciliation loop with something to poll between cycles.
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainsaw_operations_total",
			Help: "Total number of namespace operations by kind and outcome",
		},
		[]string{"op", "outcome"},
	)

	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chainsaw_operation_duration_seconds",
			Help:    "Namespace operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	// API metrics, recorded by pkg/httpapi/middleware.go.
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainsaw_api_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"route", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chainsaw_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// PruneFindingsTotal counts consistency diagnostics surfaced by the
	// last fsck run, by kind (orphaned_object, orphaned_label).
	PruneFindingsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chainsaw_prune_findings_total",
			Help: "Findings from the last fsck/Prune run by kind",
		},
		[]string{"namespace", "kind"},
	)
)

func init() {
	prometheus.MustRegister(NamespacesTotal)
	prometheus.MustRegister(ObjectsTotal)
	prometheus.MustRegister(LabelsTotal)
	prometheus.MustRegister(OperationsTotal)
	prometheus.MustRegister(OperationDuration)
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
	prometheus.MustRegister(PruneFindingsTotal)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}

// ObserveDurationVec records the duration to a histogram vec with labels
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since timer started
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
