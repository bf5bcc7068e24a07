package subscription

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DeliveriesSimulatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deliveries_simulated_total",
			Help: "Count of simulated deliveries by package type.",
		},
		[]string{"package_type"},
	)

	ReturnsProcessedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "returns_processed_total",
			Help: "Count of subscription items returned and relisted.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		DeliveriesSimulatedTotal,
		ReturnsProcessedTotal,
	)
}
