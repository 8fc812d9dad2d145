package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all service-level metrics for LexiGraph
type Metrics struct {
	// Query pipeline metrics
	QueriesTotal      *prometheus.CounterVec
	QueryFailures     prometheus.Counter
	QueryDuration     *prometheus.HistogramVec
	QueryResultRows   prometheus.Histogram
	EventsEmitted     *prometheus.CounterVec
	ActiveStreams     prometheus.Gauge
	HealthCheckStatus *prometheus.GaugeVec

	// Graph database metrics
	DatabaseConnected prometheus.Gauge

	// NATS mirror metrics
	NATSConnected   prometheus.Gauge
	EventsMirrored  prometheus.Counter
	MirrorFailures  prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all service metrics
func NewMetrics() *Metrics {
	return &Metrics{
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lexigraph",
				Subsystem: "query",
				Name:      "total",
				Help:      "Total number of knowledge graph queries handled",
			},
			[]string{"query_type"},
		),

		QueryFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "lexigraph",
				Subsystem: "query",
				Name:      "failures_total",
				Help:      "Total number of query executions that failed and returned empty results",
			},
		),

		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "lexigraph",
				Subsystem: "query",
				Name:      "duration_seconds",
				Help:      "Graph query execution duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"query_type"},
		),

		QueryResultRows: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "lexigraph",
				Subsystem: "query",
				Name:      "result_rows",
				Help:      "Number of rows returned per query",
				Buckets:   []float64{0, 1, 2, 5, 10, 25, 50},
			},
		),

		EventsEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lexigraph",
				Subsystem: "stream",
				Name:      "events_emitted_total",
				Help:      "Total number of stream events emitted to clients",
			},
			[]string{"status"},
		),

		ActiveStreams: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "lexigraph",
				Subsystem: "stream",
				Name:      "active",
				Help:      "Number of response streams currently open",
			},
		),

		HealthCheckStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "lexigraph",
				Subsystem: "health",
				Name:      "status",
				Help:      "Health check status (0=unhealthy, 1=healthy)",
			},
			[]string{"component"},
		),

		DatabaseConnected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "lexigraph",
				Subsystem: "graph",
				Name:      "database_connected",
				Help:      "Graph database connection status (0=disconnected/mock, 1=connected)",
			},
		),

		NATSConnected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "lexigraph",
				Subsystem: "nats",
				Name:      "connected",
				Help:      "NATS connection status (0=disconnected, 1=connected)",
			},
		),

		EventsMirrored: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "lexigraph",
				Subsystem: "nats",
				Name:      "events_mirrored_total",
				Help:      "Total number of stream events mirrored to NATS",
			},
		),

		MirrorFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "lexigraph",
				Subsystem: "nats",
				Name:      "mirror_failures_total",
				Help:      "Total number of failed NATS mirror publishes",
			},
		),
	}
}

// collectors returns all core metrics for bulk registration
func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.QueriesTotal,
		m.QueryFailures,
		m.QueryDuration,
		m.QueryResultRows,
		m.EventsEmitted,
		m.ActiveStreams,
		m.HealthCheckStatus,
		m.DatabaseConnected,
		m.NATSConnected,
		m.EventsMirrored,
		m.MirrorFailures,
	}
}
