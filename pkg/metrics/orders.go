package metrics

import (
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ordena-app/ordena-backend/pkg/enums"
)

// OrderMetrics counts order lifecycle events. A nil registerer yields a
// no-op recorder, which keeps service wiring simple in tests.
type OrderMetrics struct {
	created     *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

// NewOrderMetrics registers the order counters on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders created, labeled by store.",
	}, []string{"store"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transitions_total",
		Help: "Order status transitions.",
	}, []string{"from", "to"})
	reg.MustRegister(created, transitions)
	return &OrderMetrics{
		created:     created,
		transitions: transitions,
	}
}

// OrderCreated increments the creation counter for the store.
func (m *OrderMetrics) OrderCreated(storeID uuid.UUID) {
	if m == nil || m.created == nil {
		return
	}
	m.created.WithLabelValues(storeID.String()).Inc()
}

// OrderTransition increments the transition counter for the edge.
func (m *OrderMetrics) OrderTransition(from, to enums.OrderStatus) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(string(from)), normalizeLabel(string(to))).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
