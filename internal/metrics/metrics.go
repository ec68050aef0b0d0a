package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the fleet coordinator
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Record store Metrics
	StoreWritesTotal   *prometheus.CounterVec
	StoreWriteFailures *prometheus.CounterVec
	TableRows          *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	ConflictSweepsTotal prometheus.Counter
	ActiveConflicts     prometheus.Gauge
	StatusUpdatesTotal  *prometheus.CounterVec
	SyncJobDuration     *prometheus.HistogramVec
	SyncFailuresTotal   *prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all
// metrics registered on reg.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetops_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fleetops_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fleetops_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method"},
		),

		// Record store Metrics
		StoreWritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetops_store_writes_total",
				Help: "Whole-table writes accepted by the record store",
			},
			[]string{"table"},
		),
		StoreWriteFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetops_store_write_failures_total",
				Help: "Whole-table writes that failed to persist",
			},
			[]string{"table", "backend"},
		),
		TableRows: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fleetops_table_rows",
				Help: "Rows currently held per record table",
			},
			[]string{"table"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetops_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetops_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		ConflictSweepsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fleetops_conflict_sweeps_total",
				Help: "Fleet-wide conflict sweeps executed",
			},
		),
		ActiveConflicts: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "fleetops_active_conflicts",
				Help: "Issues reported by the most recent conflict sweep",
			},
		),
		StatusUpdatesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetops_status_updates_total",
				Help: "Pilot and drone status updates by entity and outcome",
			},
			[]string{"entity", "outcome"},
		),
		SyncJobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fleetops_sync_job_duration_seconds",
				Help:    "Remote sync execution time in seconds",
				Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600},
			},
			[]string{"direction"},
		),
		SyncFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetops_sync_failures_total",
				Help: "Remote sync failures per table and direction",
			},
			[]string{"table", "direction"},
		),
	}
}
