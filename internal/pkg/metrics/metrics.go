// Package metrics holds the Prometheus instruments for the fulfillment service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// WebSocket channel
	ConnectedClients prometheus.Gauge
	BroadcastsTotal  *prometheus.CounterVec // labels: event
	DroppedSends     prometheus.Counter

	// Progress aggregation
	ProgressBatchesTotal *prometheus.CounterVec // labels: result
	OrdersCreatedTotal   prometheus.Counter
	OrdersCompletedTotal prometheus.Counter
}

// New creates the metric set and registers it on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ConnectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fulfillment_ws_connected_clients",
			Help: "Number of currently connected WebSocket clients.",
		}),
		BroadcastsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fulfillment_ws_broadcasts_total",
			Help: "Events fanned out on the WebSocket channel.",
		}, []string{"event"}),
		DroppedSends: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fulfillment_ws_dropped_sends_total",
			Help: "Messages dropped because a client send buffer was full.",
		}),
		ProgressBatchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fulfillment_progress_batches_total",
			Help: "Progress update batches by outcome.",
		}, []string{"result"}),
		OrdersCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fulfillment_orders_created_total",
			Help: "Orders created.",
		}),
		OrdersCompletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fulfillment_orders_completed_total",
			Help: "Orders that reached Completed status.",
		}),
	}

	reg.MustRegister(
		m.ConnectedClients,
		m.BroadcastsTotal,
		m.DroppedSends,
		m.ProgressBatchesTotal,
		m.OrdersCreatedTotal,
		m.OrdersCompletedTotal,
	)
	return m
}
