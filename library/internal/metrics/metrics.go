// Package metrics exposes Prometheus counters for rentals, imports and overdue
// notices. They are served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "library"

var (
	RentalOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rental_operations_total",
			Help:      "Rental operations, admin resets and email migrations by result",
		},
		[]string{"operation", "result"},
	)

	ImportItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_items_total",
			Help:      "Reconciliation items applied by action and status",
		},
		[]string{"action", "status"},
	)

	NoticesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overdue_notices_total",
			Help:      "Overdue notices handed to the sink by status",
		},
		[]string{"sink", "status"},
	)

	OverdueBooks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overdue_books",
			Help:      "Overdue books seen by the last overdue check",
		},
	)
)

// Result labels an outcome from an error.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
