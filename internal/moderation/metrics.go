package moderation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK        = "ok"
	outcomeClient    = "client_error"
	outcomeServer    = "server_error"
	outcomeTransport = "external_error"
)

var (
	// calls counts moderation requests by outcome.
	calls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moderation_requests_total",
			Help: "Total number of moderation API calls by outcome.",
		},
		[]string{"outcome"},
	)

	// callLat records the round-trip time of moderation requests.
	callLat = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moderation_request_duration_seconds",
			Help:    "Duration of moderation API calls in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(calls, callLat)
}

func observe(outcome string, start time.Time) {
	calls.WithLabelValues(outcome).Inc()
	callLat.Observe(time.Since(start).Seconds())
}
