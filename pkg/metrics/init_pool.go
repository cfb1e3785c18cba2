package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPoolMetrics() {
	r.TasksSubmittedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphsum_pool_tasks_submitted_total",
			Help: "Total number of tasks accepted by the worker pool",
		},
	)

	r.TasksCompletedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphsum_pool_tasks_completed_total",
			Help: "Total number of tasks that finished executing, by outcome",
		},
		[]string{"status"},
	)

	r.TasksInlineTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphsum_pool_tasks_inline_total",
			Help: "Tasks run on the submitting worker because the queue was full",
		},
	)

	r.TasksOutstanding = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphsum_pool_tasks_outstanding",
			Help: "Tasks queued or executing",
		},
	)

	r.QueueDepth = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphsum_pool_queue_depth",
			Help: "Tasks waiting in the queue",
		},
	)

	r.WorkersBusy = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphsum_pool_workers_busy",
			Help: "Workers currently executing a task",
		},
	)

	r.TaskDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphsum_pool_task_duration_seconds",
			Help:    "Task execution duration in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1.0},
		},
	)
}
