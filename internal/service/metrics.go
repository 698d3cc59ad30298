package service

import "github.com/prometheus/client_golang/prometheus"

var (
	cartMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shop_service",
			Subsystem: "cart",
			Name:      "mutations_total",
			Help:      "Total number of persisted cart mutations by operation",
		},
		[]string{"op"},
	)

	ordersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shop_service",
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Total number of created orders",
		},
	)

	orderStatusUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shop_service",
			Subsystem: "orders",
			Name:      "status_updates_total",
			Help:      "Total number of order status updates by target status",
		},
		[]string{"status"},
	)

	ordersDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shop_service",
			Subsystem: "orders",
			Name:      "deleted_total",
			Help:      "Total number of deleted orders",
		},
	)

	catalogLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shop_service",
			Subsystem: "catalog",
			Name:      "cache_lookups_total",
			Help:      "Catalog cache lookups by result",
		},
		[]string{"result"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		cartMutations,
		ordersCreated,
		orderStatusUpdates,
		ordersDeleted,
		catalogLookups,
	)
}
