package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Lifecycle metrics
	TransitionsTotal        *prometheus.CounterVec
	TransitionRejections    *prometheus.CounterVec
	ScoreOutcomes           *prometheus.CounterVec
	AuditWriteFailuresTotal prometheus.Counter

	// Cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered on reg.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		TransitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opportunity_transitions_total",
				Help: "Accepted opportunity status transitions",
			},
			[]string{"from", "to"},
		),
		TransitionRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opportunity_transition_rejections_total",
				Help: "Status or qualification changes rejected by the transition policy",
			},
			[]string{"kind"}, // missing_reason, unknown_status, qualification_locked
		),
		ScoreOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opportunity_score_outcomes_total",
				Help: "Scores computed, by outcome band",
			},
			[]string{"outcome"}, // green, yellow, red
		),
		AuditWriteFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "audit_write_failures_total",
			Help: "Changes that were saved but whose history entries could not be written",
		}),
		CacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"cache_type"},
		),
		CacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"cache_type"},
		),
	}
}

// Middleware creates a gin middleware for Prometheus metrics
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath() // Route pattern, e.g. /api/v1/organizations/:organizationID/opportunities
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// The recorders below are safe to call on a nil *Metrics so services can run without metrics.

// RecordTransition counts an accepted status change.
func (m *Metrics) RecordTransition(from, to string) {
	if m == nil {
		return
	}
	m.TransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordTransitionRejection counts a change refused by the transition policy.
func (m *Metrics) RecordTransitionRejection(kind string) {
	if m == nil {
		return
	}
	m.TransitionRejections.WithLabelValues(kind).Inc()
}

// RecordScore counts a computed outcome band.
func (m *Metrics) RecordScore(outcome string) {
	if m == nil {
		return
	}
	m.ScoreOutcomes.WithLabelValues(outcome).Inc()
}

// RecordAuditWriteFailure counts a saved change with missing history.
func (m *Metrics) RecordAuditWriteFailure() {
	if m == nil {
		return
	}
	m.AuditWriteFailuresTotal.Inc()
}

// RecordCacheHit records a cache hit
func (m *Metrics) RecordCacheHit(cacheType string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss
func (m *Metrics) RecordCacheMiss(cacheType string) {
	if m == nil {
		return
	}
	m.CacheMisses.WithLabelValues(cacheType).Inc()
}
