package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	UsersRegistered   prometheus.Counter
	JobsOpened        prometheus.Counter
	ApplicationsMade  prometheus.Counter
	NotificationsSent prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gigboard_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gigboard_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gigboard_users_registered_total",
			Help: "Total number of accounts registered",
		}),
		JobsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gigboard_jobs_opened_total",
			Help: "Total number of jobs that entered the open status",
		}),
		ApplicationsMade: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gigboard_applications_total",
			Help: "Total number of job applications submitted",
		}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gigboard_notifications_sent_total",
			Help: "Total number of notifications persisted and pushed",
		}),
	}
}

// Middleware records request counts and latency per route pattern.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		if route == "" {
			route = c.Path()
		}
		method := c.Method()
		// an error returned here has not been written out yet, so the
		// response still says 200; take the status off the error instead
		status := statusForError(err, c.Response().StatusCode())

		m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

		return err
	}
}

func statusForError(err error, fallback int) int {
	if err == nil {
		return fallback
	}
	var se interface{ HTTPStatus() int }
	if errors.As(err, &se) {
		return se.HTTPStatus()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
