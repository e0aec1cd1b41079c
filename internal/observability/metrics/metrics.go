// Package metrics exposes Prometheus instruments for the HTTP surface.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics tracks request counts and latency per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	quotaDenied prometheus.Counter
}

// NewHTTPMetrics registers the HTTP instruments on the default registry.
func NewHTTPMetrics() *HTTPMetrics {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "travelplanner_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "travelplanner_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "travelplanner_http_inflight_requests",
			Help: "In-flight HTTP requests.",
		}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "travelplanner_cache_hits_total",
			Help: "Cache-aside hits by domain.",
		}, []string{"domain"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "travelplanner_cache_misses_total",
			Help: "Cache-aside misses by domain.",
		}, []string{"domain"}),
		quotaDenied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "travelplanner_quota_denied_total",
			Help: "Requests rejected by the usage paywall.",
		}),
	}
	prometheus.MustRegister(
		m.requests,
		m.duration,
		m.inflight,
		m.cacheHits,
		m.cacheMisses,
		m.quotaDenied,
	)
	return m
}

// RecordCacheHit counts a freshness-window hit for the given domain.
func (m *HTTPMetrics) RecordCacheHit(domain string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(domain).Inc()
}

// RecordCacheMiss counts a miss that triggered an external call.
func (m *HTTPMetrics) RecordCacheMiss(domain string) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(domain).Inc()
}

// RecordQuotaDenied counts a paywall rejection.
func (m *HTTPMetrics) RecordQuotaDenied() {
	if m == nil {
		return
	}
	m.quotaDenied.Inc()
}

// GinMiddleware records per-request metrics.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		m.inflight.Inc()
		c.Next()
		m.inflight.Dec()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
