package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SyncMetrics records outcomes of catalog synchronization runs.
type SyncMetrics struct {
	duration *prometheus.HistogramVec
	products *prometheus.CounterVec
	runs     *prometheus.CounterVec
}

// NewSyncMetrics registers the sync metrics on the provided registerer.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	if reg == nil {
		return &SyncMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_sync_duration_seconds",
		Help:    "Duration of catalog sync runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"trigger"})
	products := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_sync_products_total",
		Help: "Products processed by catalog sync, by outcome.",
	}, []string{"outcome"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_sync_runs_total",
		Help: "Catalog sync runs, by result.",
	}, []string{"result"})
	reg.MustRegister(duration, products, runs)
	return &SyncMetrics{
		duration: duration,
		products: products,
		runs:     runs,
	}
}

// ObserveDuration records how long a run triggered by the given source took.
func (m *SyncMetrics) ObserveDuration(trigger string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(trigger)).Observe(duration.Seconds())
}

// AddProducts adds to the per-outcome product counter.
func (m *SyncMetrics) AddProducts(outcome string, count int) {
	if m == nil || m.products == nil || count <= 0 {
		return
	}
	m.products.WithLabelValues(normalizeLabel(outcome)).Add(float64(count))
}

// IncRun increments the run counter for the given result.
func (m *SyncMetrics) IncRun(result string) {
	if m == nil || m.runs == nil {
		return
	}
	m.runs.WithLabelValues(normalizeLabel(result)).Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return strings.ReplaceAll(value, " ", "_")
}
