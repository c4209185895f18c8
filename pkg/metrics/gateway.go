package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GatewayMetrics records calls made to the commerce backend.
type GatewayMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewGatewayMetrics registers the backend call metrics on the provided registerer.
func NewGatewayMetrics(reg prometheus.Registerer) *GatewayMetrics {
	if reg == nil {
		return &GatewayMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_backend_request_duration_seconds",
		Help:    "Latency of commerce backend calls in seconds.",
		Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"operation"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_backend_requests_total",
		Help: "Commerce backend calls by operation and status class.",
	}, []string{"operation", "status_class"})
	reg.MustRegister(duration, requests)
	return &GatewayMetrics{duration: duration, requests: requests}
}

// Observe records one backend call. A zero status means the call never got a response.
func (g *GatewayMetrics) Observe(operation string, status int, elapsed time.Duration) {
	if g == nil || g.duration == nil {
		return
	}
	op := normalizeLabel(operation)
	g.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	g.requests.WithLabelValues(op, StatusClass(status)).Inc()
}

// StatusClass buckets an HTTP status as "2xx", "4xx" and so on; zero becomes "error".
func StatusClass(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}
