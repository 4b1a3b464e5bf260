package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "todo_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "todo_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.3, 1, 3},
		},
		[]string{"method", "route"},
	)

	inFlightRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "todo_http_in_flight_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)
)

// NewMetricsMiddleware records request counts and latencies labelled by
// the matched route pattern, so ids never become label values.
func NewMetricsMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		inFlightRequests.Inc()
		defer inFlightRequests.Dec()

		start := time.Now()
		err := ctx.Next()

		route := ctx.Path()
		if r := ctx.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		method := ctx.Method()

		requestsTotal.WithLabelValues(method, route, strconv.Itoa(ctx.Response().StatusCode())).Inc()
		requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

		return err
	}
}

// MetricsHandler serves the default prometheus registry.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
