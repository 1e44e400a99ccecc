// Package metrics owns the Prometheus registry of one service process.
//
// Exposed series:
//   - http_requests_total{method,route,status_code}
//   - http_request_duration_seconds{method,route,status_code}
//   - http_errors_total{method,route,status_code} (status >= 400)
//   - db_connections_active
//   - <entity>_operations_total{operation}, entity is "user" or "product"
//   - cache_hits_total{cache_type}, cache_misses_total{cache_type}
//   - cache_invalidation_failures_total{cache_type}
//   - products_count, products_total_stock (products service only)
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// Metrics is created once per process and passed to every component that records.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ErrorsTotal     *prometheus.CounterVec
	DBConnections   prometheus.Gauge

	operations           *prometheus.CounterVec
	cacheHits            *prometheus.CounterVec
	cacheMisses          *prometheus.CounterVec
	cacheInvalidationErr *prometheus.CounterVec

	productsCount prometheus.Gauge
	productsStock prometheus.Gauge
}

// New builds and registers every collector. entity names the operations counter
// ("user" → user_operations_total); "product" also registers inventory gauges.
func New(entity string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	labels := []string{"method", "route", "status_code"}
	m := &Metrics{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		}, labels),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: durationBuckets,
		}, labels),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total HTTP responses with status >= 400",
		}, labels),
		DBConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Open connections in the database pool",
		}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: entity + "_operations_total",
			Help: "Total " + entity + " operations",
		}, []string{"operation"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total cache hits",
		}, []string{"cache_type"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total cache misses",
		}, []string{"cache_type"}),
		cacheInvalidationErr: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_invalidation_failures_total",
			Help: "Cache invalidations that failed after a committed write",
		}, []string{"cache_type"}),
	}
	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.ErrorsTotal, m.DBConnections,
		m.operations, m.cacheHits, m.cacheMisses, m.cacheInvalidationErr)

	if entity == "product" {
		m.productsCount = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "products_count",
			Help: "Number of products stored",
		})
		m.productsStock = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "products_total_stock",
			Help: "Sum of stock over all products",
		})
		reg.MustRegister(m.productsCount, m.productsStock)
	}
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the text exposition format for this registry only.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveOperation(operation string) {
	m.operations.WithLabelValues(operation).Inc()
}

func (m *Metrics) CacheHit(cacheType string) {
	m.cacheHits.WithLabelValues(cacheType).Inc()
}

func (m *Metrics) CacheMiss(cacheType string) {
	m.cacheMisses.WithLabelValues(cacheType).Inc()
}

func (m *Metrics) CacheInvalidationFailed(cacheType string) {
	m.cacheInvalidationErr.WithLabelValues(cacheType).Inc()
}

// SetInventory updates the product gauges; it is a no-op for other entities.
func (m *Metrics) SetInventory(count, totalStock int64) {
	if m.productsCount == nil {
		return
	}
	m.productsCount.Set(float64(count))
	m.productsStock.Set(float64(totalStock))
}
