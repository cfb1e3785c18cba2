package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// All Record* helpers accept a nil receiver so instrumented code can run
// without a registry.

// RecordSubmit records a task accepted by the pool
func (r *Registry) RecordSubmit() {
	if r == nil {
		return
	}
	r.TasksSubmittedTotal.Inc()
	r.TasksOutstanding.Inc()
}

// RecordSubmitRejected releases the outstanding slot of a task the queue
// refused. The submission itself stays counted.
func (r *Registry) RecordSubmitRejected() {
	if r == nil {
		return
	}
	r.TasksOutstanding.Dec()
}

// RecordInline records a task executed on the submitting worker
func (r *Registry) RecordInline() {
	if r == nil {
		return
	}
	r.TasksInlineTotal.Inc()
}

// RecordTaskStart marks a worker as busy
func (r *Registry) RecordTaskStart(queueDepth int) {
	if r == nil {
		return
	}
	r.WorkersBusy.Inc()
	r.QueueDepth.Set(float64(queueDepth))
}

// RecordTaskDone records a finished task with its outcome. onWorker is
// false for tasks run inline, which never marked a worker busy.
func (r *Registry) RecordTaskDone(status string, duration time.Duration, onWorker bool) {
	if r == nil {
		return
	}
	if onWorker {
		r.WorkersBusy.Dec()
	}
	r.TasksCompletedTotal.WithLabelValues(status).Inc()
	r.TaskDuration.Observe(duration.Seconds())
	r.TasksOutstanding.Dec()
}

// RecordVisit records a node processed by the traversal
func (r *Registry) RecordVisit() {
	if r == nil {
		return
	}
	r.NodesVisitedTotal.Inc()
}

// RecordDuplicate records a visit task that found its node already claimed
func (r *Registry) RecordDuplicate() {
	if r == nil {
		return
	}
	r.DuplicateSchedulesTotal.Inc()
}

// RecordTraversal records a finished traversal run
func (r *Registry) RecordTraversal(status string, duration time.Duration, nodes int, aggregate int64) {
	if r == nil {
		return
	}
	r.TraversalsTotal.WithLabelValues(status).Inc()
	r.TraversalDuration.Observe(duration.Seconds())
	r.GraphNodes.Set(float64(nodes))
	r.TraversalAggregate.Set(float64(aggregate))
}

// UpdateSystemMetrics samples goroutine and heap gauges
func (r *Registry) UpdateSystemMetrics() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
}

// WriteTextfile writes every metric in the text exposition format to path
func (r *Registry) WriteTextfile(path string) error {
	r.UpdateSystemMetrics()
	return prometheus.WriteToTextfile(path, r.registry)
}
