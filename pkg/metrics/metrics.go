package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PurchasesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taquilla_purchases_total",
			Help: "Number of ticket purchase attempts by outcome",
		},
		[]string{"status"},
	)

	RedemptionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taquilla_redemptions_total",
			Help: "Number of QR redemption attempts by outcome",
		},
		[]string{"status"},
	)

	SchedulingConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "taquilla_scheduling_conflicts_total",
			Help: "Number of showings rejected because of sala overlaps",
		},
	)
)

func Register() {
	prometheus.MustRegister(PurchasesTotal, RedemptionsTotal, SchedulingConflictsTotal)
}
