package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initTraversalMetrics() {
	r.NodesVisitedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphsum_nodes_visited_total",
			Help: "Nodes claimed and processed by a visit task",
		},
	)

	r.DuplicateSchedulesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphsum_duplicate_schedules_total",
			Help: "Visit tasks that found their node already claimed",
		},
	)

	r.TraversalsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphsum_traversals_total",
			Help: "Completed traversal runs, by outcome",
		},
		[]string{"status"},
	)

	r.TraversalDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphsum_traversal_duration_seconds",
			Help:    "Wall time from seeding the root to quiescence",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
	)

	r.TraversalAggregate = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphsum_traversal_aggregate",
			Help: "Sum of weights produced by the last traversal",
		},
	)

	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphsum_graph_nodes",
			Help: "Number of nodes in the loaded graph",
		},
	)
}
