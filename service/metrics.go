package service

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK                 = "ok"
	OutcomeBadRequest         = "bad_request"
	OutcomeDestinationInvalid = "destination_invalid"
	OutcomeError              = "error"
)

type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crosspostfields_hook_requests_total",
			Help: "Payloads received per hook, by outcome.",
		}, []string{"hook", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crosspostfields_hook_duration_seconds",
			Help:    "Time spent transcoding a payload, including uploads to the destination.",
			Buckets: prometheus.DefBuckets,
		}, []string{"hook"}),
	}
	m.registry.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) Observe(hook string, outcome string, elapsed time.Duration) {
	m.requests.WithLabelValues(hook, outcome).Inc()
	m.duration.WithLabelValues(hook).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
