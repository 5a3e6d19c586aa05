package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records order lifecycle activity.
type OrderMetrics struct {
	created     prometheus.Counter
	items       prometheus.Histogram
	transitions *prometheus.CounterVec
	deleted     prometheus.Counter
	failures    *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders persisted by the order creator.",
	})
	items := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_items_per_order",
		Help:    "Number of items stored per created order.",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
	})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Order status changes by source and target status.",
	}, []string{"from", "to"})
	deleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_deleted_total",
		Help: "Shipped orders removed.",
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_operation_failures_total",
		Help: "Failed order operations by operation and error code.",
	}, []string{"operation", "code"})
	reg.MustRegister(created, items, transitions, deleted, failures)
	return &OrderMetrics{
		created:     created,
		items:       items,
		transitions: transitions,
		deleted:     deleted,
		failures:    failures,
	}
}

// ObserveCreated counts a created order and its item count.
func (m *OrderMetrics) ObserveCreated(itemCount int) {
	if m == nil || m.created == nil {
		return
	}
	m.created.Inc()
	m.items.Observe(float64(itemCount))
}

// IncTransition counts a status change.
func (m *OrderMetrics) IncTransition(from, to string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

// IncDeleted counts a removed order.
func (m *OrderMetrics) IncDeleted() {
	if m == nil || m.deleted == nil {
		return
	}
	m.deleted.Inc()
}

// IncFailure counts a failed operation.
func (m *OrderMetrics) IncFailure(operation, code string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(operation), normalizeLabel(code)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
