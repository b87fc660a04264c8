package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics exposes Prometheus observability primitives for the API.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	aiCalls      *prometheus.CounterVec
	queueDepth   prometheus.Gauge
	embeddingJob *prometheus.CounterVec
}

// NewHTTPMetrics registers and returns Prometheus metrics.
func NewHTTPMetrics() *HTTPMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "atlas_api_requests_total",
		Help: "Counts API requests by method, route, and status.",
	}, []string{"method", "route", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "atlas_api_duration_seconds",
		Help:    "API request latency per method/route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	aiCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "atlas_ai_provider_calls_total",
		Help: "AI provider call outcomes by operation.",
	}, []string{"operation", "status"})

	queueDepth := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "atlas_embedding_queue_depth",
		Help: "Number of pending embedding jobs.",
	})

	embeddingJob := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "atlas_embedding_jobs_total",
		Help: "Embedding job outcomes.",
	}, []string{"status"})

	prometheus.MustRegister(requests, duration, aiCalls, queueDepth, embeddingJob)

	return &HTTPMetrics{
		requests:     requests,
		duration:     duration,
		aiCalls:      aiCalls,
		queueDepth:   queueDepth,
		embeddingJob: embeddingJob,
	}
}

// RecordAICall increments provider call counts.
func (m *HTTPMetrics) RecordAICall(operation string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.aiCalls.WithLabelValues(strings.TrimSpace(operation), status).Inc()
}

// SetQueueDepth records the embedding queue backlog.
func (m *HTTPMetrics) SetQueueDepth(depth int64) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(depth))
}

// RecordEmbeddingJob increments embedding job outcomes.
func (m *HTTPMetrics) RecordEmbeddingJob(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.embeddingJob.WithLabelValues(status).Inc()
}

// GinMiddleware records request counts and durations.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
