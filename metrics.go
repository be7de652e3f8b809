package qrng

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records per-request counters for a Client. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	requests *prometheus.CounterVec
	bytes    *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics creates the client collectors and registers them with reg.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "qrng_requests_total",
		Help: "Appliance requests by kind and outcome.",
	}, []string{"kind", "outcome"})
	bytes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "qrng_response_bytes_total",
		Help: "Response body bytes received from the appliance.",
	}, []string{"kind"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "qrng_request_duration_seconds",
		Help:    "Time from request start to fully received response.",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"kind"})

	reg.MustRegister(requests, bytes, latency)

	return &Metrics{requests: requests, bytes: bytes, latency: latency}
}

func (m *Metrics) observe(kind RequestKind, n int64, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	k := kind.String()
	m.requests.WithLabelValues(k, outcome).Inc()
	if n > 0 {
		m.bytes.WithLabelValues(k).Add(float64(n))
	}
	m.latency.WithLabelValues(k).Observe(elapsed.Seconds())
}
