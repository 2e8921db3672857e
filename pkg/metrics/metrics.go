package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// SubmissionsTotal counts completed submission cycles by outcome:
	// success, missing_input, platform_mismatch, network_error, service_error, stale.
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_total",
			Help: "Total number of submission cycles by outcome.",
		},
		[]string{"platform", "outcome"},
	)

	ScrapeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrape_requests_total",
			Help: "Total number of requests sent to the scrape service.",
		},
		[]string{"platform", "outcome"},
	)

	ScrapeRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scrape_request_duration_seconds",
			Help:    "Duration of scrape service requests.",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"platform"},
	)

	ScrapeRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scrape_requests_in_flight",
			Help: "Current number of scrape service requests awaiting a response.",
		},
	)
)

// platformLabel keeps the label set bounded when the platform is unset.
func platformLabel(p string) string {
	if p == "" {
		return "unset"
	}
	return p
}

func ObserveSubmission(platform, outcome string) {
	SubmissionsTotal.WithLabelValues(platformLabel(platform), outcome).Inc()
}

func ObserveScrape(platform, outcome string, seconds float64) {
	ScrapeRequestsTotal.WithLabelValues(platformLabel(platform), outcome).Inc()
	ScrapeRequestDuration.WithLabelValues(platformLabel(platform)).Observe(seconds)
}
