package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Worker pool metrics
	TasksSubmittedTotal prometheus.Counter
	TasksCompletedTotal *prometheus.CounterVec
	TasksInlineTotal    prometheus.Counter
	TasksOutstanding    prometheus.Gauge
	QueueDepth          prometheus.Gauge
	WorkersBusy         prometheus.Gauge
	TaskDuration        prometheus.Histogram

	// Traversal metrics
	NodesVisitedTotal       prometheus.Counter
	DuplicateSchedulesTotal prometheus.Counter
	TraversalsTotal         *prometheus.CounterVec
	TraversalDuration       prometheus.Histogram
	TraversalAggregate      prometheus.Gauge
	GraphNodes              prometheus.Gauge

	// System metrics
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.Mutex
}

// Task completion status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusPanic   = "panic"
)

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initPoolMetrics()
	r.initTraversalMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
