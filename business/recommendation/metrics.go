package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendationsServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Count of recommendation lists served, by mode (personalized, cold_start, degraded).",
		},
		[]string{"mode"},
	)

	RecommendationPaddedItemsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_padded_items_total",
			Help: "Items appended to recommendation lists by the popularity fallback.",
		},
	)

	RecommendationScoringDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_scoring_duration_seconds",
			Help:    "Duration of a single in-memory scoring pass.",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
	)

	RecommendationCatalogSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_catalog_size",
			Help:    "Number of catalog items fed into a scoring pass.",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10),
		},
	)
)

func init() {
	prometheus.MustRegister(
		RecommendationsServedTotal,
		RecommendationPaddedItemsTotal,
		RecommendationScoringDuration,
		RecommendationCatalogSize,
	)
}

func modeLabel(res Result) string {
	switch {
	case res.Degraded:
		return "degraded"
	case res.ColdStart:
		return "cold_start"
	default:
		return "personalized"
	}
}
