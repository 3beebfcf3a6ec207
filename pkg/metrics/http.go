package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counts and latency for the gateway's routes
// plus calls made against the marketplace backend.
type HTTPMetrics struct {
	requests         *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the gateway metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_requests_total",
		Help: "HTTP requests handled by the gateway.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_request_duration_seconds",
		Help:    "HTTP request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	upstreamCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_upstream_calls_total",
		Help: "Calls made against the marketplace backend.",
	}, []string{"endpoint", "outcome"})
	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_upstream_duration_seconds",
		Help:    "Marketplace backend call duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	reg.MustRegister(requests, duration, upstreamCalls, upstreamDuration)
	return &HTTPMetrics{
		requests:         requests,
		duration:         duration,
		upstreamCalls:    upstreamCalls,
		upstreamDuration: upstreamDuration,
	}
}

// ObserveRequest records one handled request.
func (m *HTTPMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, normalizeLabel(route)).Observe(elapsed.Seconds())
}

// ObserveUpstreamCall records one backend call and its outcome.
func (m *HTTPMetrics) ObserveUpstreamCall(endpoint string, err error, elapsed time.Duration) {
	if m == nil || m.upstreamCalls == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.upstreamCalls.WithLabelValues(normalizeLabel(endpoint), outcome).Inc()
	m.upstreamDuration.WithLabelValues(normalizeLabel(endpoint)).Observe(elapsed.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
