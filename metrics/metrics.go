package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_analyses_total",
			Help: "Total number of property analyses computed",
		},
		[]string{"endpoint"},
	)

	NarrativesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_narratives_total",
			Help: "Total number of narrative requests by outcome",
		},
		[]string{"outcome"},
	)

	NarrativeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rental_narrative_duration_seconds",
			Help:    "Duration of remote narrative generation in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"provider"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"route"},
	)
)

// Narrative outcomes
const (
	OutcomeGenerated   = "generated"
	OutcomeCached      = "cached"
	OutcomeQuota       = "quota"
	OutcomeNetwork     = "network"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)
