// Package metrics holds the process-wide Prometheus collectors. They are
// registered on the default registry and served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_orders_created_total",
		Help: "Total number of orders placed.",
	})

	DriversRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_drivers_registered_total",
		Help: "Total number of drivers registered.",
	})

	// OrderTransitionsTotal counts committed status changes by target status.
	OrderTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_order_transitions_total",
		Help: "Total number of committed order status transitions.",
	},
		[]string{"status"},
	)

	// TransfersTotal counts transfer offers by outcome: proposed, accepted,
	// rejected or stale.
	TransfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_transfers_total",
		Help: "Total number of transfer offers by outcome.",
	},
		[]string{"outcome"},
	)

	ReaperSweptTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_reaper_swept_total",
		Help: "Total number of rows moved by the expiry reaper.",
	},
		[]string{"kind"},
	)

	OutboxDispatchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_outbox_dispatched_total",
		Help: "Total number of outbox messages dispatched by kind and result.",
	},
		[]string{"kind", "result"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_operation_errors_total",
		Help: "Total number of failed operations by operation name.",
	},
		[]string{"operation"},
	)
)
