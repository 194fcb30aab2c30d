// Package metrics provides Prometheus metrics collection for the bakery
// operations service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// CostingsTotal tracks costing runs by mode and outcome.
	CostingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "costings_total",
			Help: "Total number of costing calculations",
		},
		[]string{"mode", "status"},
	)

	// CostingDuration tracks costing calculation duration.
	CostingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "costing_duration_seconds",
			Help:    "Costing calculation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// CostingEstimatesTotal counts costings that carried degraded-match flags.
	CostingEstimatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "costing_estimates_total",
			Help: "Total number of costings flagged as estimates",
		},
	)

	// DistanceFallbacksTotal counts distance provider failures answered by the
	// straight-line fallback.
	DistanceFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "distance_fallbacks_total",
			Help: "Total number of distance provider fallbacks",
		},
	)

	// TasksGeneratedTotal counts production tasks created by the scheduler.
	TasksGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "production_tasks_generated_total",
			Help: "Total number of production tasks generated",
		},
	)

	// SignoffsTotal tracks task signoffs by type and outcome.
	SignoffsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_signoffs_total",
			Help: "Total number of task signoffs",
		},
		[]string{"type", "status"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordCosting records metrics for one costing run.
func RecordCosting(mode string, duration time.Duration, isEstimate bool, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	CostingsTotal.WithLabelValues(mode, status).Inc()
	CostingDuration.Observe(duration.Seconds())
	if isEstimate {
		CostingEstimatesTotal.Inc()
	}
}

// RecordDistanceFallback records one provider fallback.
func RecordDistanceFallback() {
	DistanceFallbacksTotal.Inc()
}

// RecordTasksGenerated records newly created production tasks.
func RecordTasksGenerated(count int) {
	TasksGeneratedTotal.Add(float64(count))
}

// RecordSignoff records a signoff attempt.
func RecordSignoff(signoffType string, err error) {
	status := "ok"
	if err != nil {
		status = "rejected"
	}
	SignoffsTotal.WithLabelValues(signoffType, status).Inc()
}
