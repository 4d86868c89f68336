package webui

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Values of the outcome label.
const (
	outcomeOk            = "ok"
	outcomeSyntaxError   = "syntax_error"
	outcomeMetainfoError = "metainfo_error"
	outcomeTooLarge      = "too_large"
	outcomeBadRequest    = "bad_request"
	outcomeRateLimited   = "rate_limited"
	outcomeInternalError = "internal_error"
)

type metrics struct {
	requests    *prometheus.CounterVec
	uploadBytes prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "identify_requests_total",
			Help: "Identification requests by outcome.",
		}, []string{"outcome"}),
		uploadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "identify_upload_bytes",
			Help:    "Size of metainfo uploads that were read in full.",
			Buckets: prometheus.ExponentialBuckets(1<<10, 4, 8),
		}),
	}
	reg.MustRegister(m.requests, m.uploadBytes)
	return m
}
