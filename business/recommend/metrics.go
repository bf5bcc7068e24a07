package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendationsServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Count of recommendations served, by reason label.",
		},
		[]string{"reason"},
	)

	RecommendationCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_hits_total",
			Help: "Count of recommendation requests answered from cache.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RecommendationsServedTotal,
		RecommendationCacheHitsTotal,
	)
}
