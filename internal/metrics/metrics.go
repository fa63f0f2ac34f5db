// Package metrics provides Prometheus instrumentation for the SmartLend portal.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smartlend_portal"

var (
	// HTTPRequestsTotal counts portal requests by method, route, and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route pattern, and status class.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// UpstreamRequestsTotal counts calls to the loan service by operation and outcome.
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total loan service calls by operation and status code.",
		},
		[]string{"operation", "code"},
	)

	// UpstreamRequestDuration observes loan service latency by operation.
	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Loan service call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// DocumentsRenderedTotal counts generated PDFs by kind.
	DocumentsRenderedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_rendered_total",
			Help:      "Total PDF documents rendered by kind.",
		},
		[]string{"kind"},
	)

	// DocumentArchiveFailuresTotal counts documents that could not be archived.
	DocumentArchiveFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_archive_failures_total",
		Help:      "Documents rendered but not archived.",
	})

	// EmiPaymentsTotal counts payment attempts by outcome.
	EmiPaymentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emi_payments_total",
			Help:      "EMI payment attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// ChatPollErrorsTotal counts failed chat polls.
	ChatPollErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chat",
		Name:      "poll_errors_total",
		Help:      "Chat polls that failed.",
	})

	// ChatMessagesPushedTotal counts chat messages pushed to websocket clients.
	ChatMessagesPushedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chat",
		Name:      "messages_pushed_total",
		Help:      "New chat messages pushed to connected clients.",
	})

	// ActiveWebSocketClients tracks connected WebSocket clients.
	ActiveWebSocketClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_websocket_clients",
		Help:      "Number of currently connected WebSocket clients.",
	})

	// WebSocketSlowClientsTotal counts clients evicted for a full send buffer.
	WebSocketSlowClientsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "websocket_slow_clients_total",
		Help:      "WebSocket clients closed because they could not keep up.",
	})
)

// EMI payment outcomes
const (
	PaymentAccepted   = "accepted"
	PaymentOutOfOrder = "out_of_order"
	PaymentRejected   = "rejected"
	PaymentFailed     = "failed"
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		UpstreamRequestsTotal,
		UpstreamRequestDuration,
		DocumentsRenderedTotal,
		DocumentArchiveFailuresTotal,
		EmiPaymentsTotal,
		ChatPollErrorsTotal,
		ChatMessagesPushedTotal,
		ActiveWebSocketClients,
		WebSocketSlowClientsTotal,
	)
}

// ObserveUpstream records one loan service call. code is 0 for transport failures.
func ObserveUpstream(operation string, code int, elapsed time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(operation, strconv.Itoa(code)).Inc()
	UpstreamRequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Middleware returns an Echo middleware that records request metrics.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Route pattern, not the raw path, keeps label cardinality bounded
			path := c.Path()
			timer := prometheus.NewTimer(HTTPRequestDuration.WithLabelValues(c.Request().Method, path))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			timer.ObserveDuration()
			HTTPRequestsTotal.WithLabelValues(
				c.Request().Method,
				path,
				statusBucket(c.Response().Status),
			).Inc()
			return nil
		}
	}
}

// Handler returns the Prometheus metrics handler for the /metrics endpoint.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

// statusBucket groups HTTP status codes into classes (2xx, 3xx, 4xx, 5xx).
func statusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
