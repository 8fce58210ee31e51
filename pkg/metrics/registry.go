package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry manages the Prometheus metrics of the data-access layer.
type Registry struct {
	config   Config
	registry *prometheus.Registry

	dbQueriesTotal      *prometheus.CounterVec
	dbQueryDuration     *prometheus.HistogramVec
	dbConnectionsActive prometheus.Gauge
	dbConnectionsIdle   prometheus.Gauge
	dbConnectionsMax    prometheus.Gauge
}

// Global registry instance
var (
	globalRegistry *Registry
	once           sync.Once
)

// NewRegistry creates a new metrics registry with the given configuration.
func NewRegistry(config Config) *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		config:   config,
		registry: reg,
	}

	r.dbQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   "db",
			Name:        "queries_total",
			Help:        "Total number of database queries by operation, table, and status.",
			ConstLabels: config.DefaultLabels,
		},
		[]string{"operation", "table", "status"},
	)
	r.dbQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   "db",
			Name:        "query_duration_seconds",
			Help:        "Database query duration in seconds by operation and table.",
			Buckets:     config.DBDurationBuckets,
			ConstLabels: config.DefaultLabels,
		},
		[]string{"operation", "table"},
	)
	r.dbConnectionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   config.Namespace,
		Subsystem:   "db",
		Name:        "connections_active",
		Help:        "Number of database connections currently in use.",
		ConstLabels: config.DefaultLabels,
	})
	r.dbConnectionsIdle = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   config.Namespace,
		Subsystem:   "db",
		Name:        "connections_idle",
		Help:        "Number of idle database connections.",
		ConstLabels: config.DefaultLabels,
	})
	r.dbConnectionsMax = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   config.Namespace,
		Subsystem:   "db",
		Name:        "connections_max",
		Help:        "Maximum number of open database connections.",
		ConstLabels: config.DefaultLabels,
	})

	reg.MustRegister(
		r.dbQueriesTotal,
		r.dbQueryDuration,
		r.dbConnectionsActive,
		r.dbConnectionsIdle,
		r.dbConnectionsMax,
	)

	if config.EnableProcessMetrics {
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	if config.EnableRuntimeMetrics {
		reg.MustRegister(collectors.NewGoCollector())
	}

	return r
}

// Global returns the global registry instance, initializing it with default
// config if needed.
func Global() *Registry {
	once.Do(func() {
		if globalRegistry == nil {
			globalRegistry = NewRegistry(DefaultConfig())
		}
	})
	return globalRegistry
}

// SetGlobal sets the global registry instance.
func SetGlobal(r *Registry) {
	globalRegistry = r
}

// PrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler returns an http.Handler exposing the registry for scraping, for
// applications that embed this layer and serve a /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
