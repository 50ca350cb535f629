// Package metrics holds the Prometheus collectors of the notes API and
// the fiber middleware that records request metrics.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestsTotal counts HTTP requests by method, route and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration records HTTP request duration in seconds.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notes_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// GateRejectionsTotal counts requests turned away by the auth gate.
	GateRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_gate_rejections_total",
			Help: "Auth gate rejections",
		},
		[]string{"reason"},
	)

	// RateLimitTrackedClients is the number of client windows held in memory.
	RateLimitTrackedClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "notes_ratelimit_tracked_clients",
			Help: "Client windows tracked by the rate limiter",
		},
	)

	// RateLimitEvictionsTotal counts client windows dropped by sweeps or the size cap.
	RateLimitEvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_ratelimit_evictions_total",
			Help: "Rate limiter client window evictions",
		},
		[]string{"cause"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		GateRejectionsTotal,
		RateLimitTrackedClients,
		RateLimitEvictionsTotal,
	)
}

// Middleware records request count and latency. The route label is the
// matched route pattern so note ids do not explode cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		route := c.Route().Path
		method := c.Method()
		RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status/100)+"xx").Inc()
		RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

		return err
	}
}
