package server

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-formsync/pkg/field"
)

type metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	clamped  prometheus.Counter
	rejected *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formsync_http_requests_total",
				Help: "Number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "formsync_http_latency_seconds",
				Help:    "HTTP latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		clamped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "formsync_clamped_fields_total",
				Help: "Field values clipped to their bounds",
			},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formsync_rejected_params_total",
				Help: "Query parameters not applied to a form",
			},
			[]string{"reason"},
		),
	}
	reg.MustRegister(m.requests, m.latency, m.clamped, m.rejected)
	return m
}

func (m *metrics) observeRejections(rejected []field.Rejection) {
	for _, r := range rejected {
		m.rejected.WithLabelValues(rejectionReason(r.Reason)).Inc()
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, field.ErrUnknownField):
		return "unknown_field"
	case errors.Is(err, field.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, field.ErrUnbounded):
		return "unbounded"
	case errors.Is(err, field.ErrInvalidBound):
		return "invalid_bound"
	case errors.Is(err, field.ErrInvalidValue), errors.Is(err, field.ErrEmptyValue):
		return "invalid_value"
	default:
		return "other"
	}
}
