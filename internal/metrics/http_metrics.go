package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	noteQuotaRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "note_quota_rejections_total",
			Help: "Total number of note creations rejected by the plan quota",
		},
	)
)

// HTTPMetrics collects per-route request metrics.
type HTTPMetrics struct{}

func NewHTTPMetrics() *HTTPMetrics {
	prometheus.MustRegister(requestCounter, requestDuration, noteQuotaRejections)
	return &HTTPMetrics{}
}

// Middleware records request count and latency. Paths use the route pattern
// (e.g. /notes/:id), not the raw URL, to keep cardinality bounded.
func (m *HTTPMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			start := time.Now()

			// Commit errors here so the recorded status is the one the
			// client receives, not the pre-error default.
			if err = next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			method := c.Request().Method
			path := c.Path()
			statusStr := strconv.Itoa(status)

			requestCounter.WithLabelValues(method, path, statusStr).Inc()
			requestDuration.WithLabelValues(method, path, statusStr).Observe(time.Since(start).Seconds())

			if method == http.MethodPost && path == "/notes" && status == http.StatusForbidden {
				noteQuotaRejections.Inc()
			}

			return err
		}
	}
}

// Handler returns the Prometheus exposition endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
