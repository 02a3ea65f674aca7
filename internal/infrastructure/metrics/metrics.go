package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Application metrics. Registered once at init via promauto on the default
// registry; the /metrics endpoint exposes them.
var (
	TripsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripsplit_trips_created_total",
		Help: "Total number of trips created",
	})

	ExpensesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripsplit_expenses_created_total",
		Help: "Total number of expenses created",
	})

	ExpensesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripsplit_expenses_deleted_total",
		Help: "Total number of expenses deleted",
	})

	SettlementsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripsplit_settlements_computed_total",
		Help: "Total number of settlements computed (cache misses)",
	})

	SettlementDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tripsplit_settlement_duration_seconds",
		Help:    "Duration of settlement computations",
		Buckets: prometheus.DefBuckets,
	})

	SettlementCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripsplit_settlement_cache_hits_total",
		Help: "Settlement responses served from cache",
	})

	ValidationFindings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripsplit_validation_findings_total",
			Help: "Settlement validation findings by code",
		},
		[]string{"code"},
	)
)
