// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ResultsSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "league_results_submitted_total",
			Help: "Total number of race result rows written",
		},
		[]string{"series", "track"},
	)

	RemindersSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "league_reminders_sent_total",
			Help: "Total number of race reminders delivered",
		},
		[]string{"series"},
	)

	RecomputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "league_standings_recompute_seconds",
			Help:    "Standings recompute duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"series"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
