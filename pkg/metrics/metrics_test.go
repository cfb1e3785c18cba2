package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.TasksSubmittedTotal == nil {
		t.Error("TasksSubmittedTotal not initialized")
	}
	if r.TasksCompletedTotal == nil {
		t.Error("TasksCompletedTotal not initialized")
	}
	if r.NodesVisitedTotal == nil {
		t.Error("NodesVisitedTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordTaskLifecycle(t *testing.T) {
	r := NewRegistry()

	r.RecordSubmit()
	r.RecordSubmit()
	r.RecordSubmit()
	r.RecordSubmitRejected()
	r.RecordTaskStart(1)
	r.RecordTaskDone(StatusSuccess, time.Millisecond, true)
	r.RecordInline()
	r.RecordTaskDone(StatusError, time.Millisecond, false)

	if got := counterValue(t, r.TasksSubmittedTotal); got != 3 {
		t.Errorf("submitted = %v, want 3", got)
	}
	if got := counterValue(t, r.TasksInlineTotal); got != 1 {
		t.Errorf("inline = %v, want 1", got)
	}
	if got := counterValue(t, r.TasksCompletedTotal.WithLabelValues(StatusSuccess)); got != 1 {
		t.Errorf("success = %v, want 1", got)
	}
	if got := counterValue(t, r.TasksCompletedTotal.WithLabelValues(StatusError)); got != 1 {
		t.Errorf("error = %v, want 1", got)
	}
	if got := gaugeValue(t, r.TasksOutstanding); got != 0 {
		t.Errorf("outstanding = %v, want 0", got)
	}
	if got := gaugeValue(t, r.WorkersBusy); got != 0 {
		t.Errorf("busy = %v, want 0", got)
	}
}

func TestRecordTraversal(t *testing.T) {
	r := NewRegistry()

	r.RecordVisit()
	r.RecordVisit()
	r.RecordDuplicate()
	r.RecordTraversal(StatusSuccess, 10*time.Millisecond, 4, 42)

	if got := counterValue(t, r.NodesVisitedTotal); got != 2 {
		t.Errorf("visited = %v, want 2", got)
	}
	if got := counterValue(t, r.DuplicateSchedulesTotal); got != 1 {
		t.Errorf("duplicates = %v, want 1", got)
	}
	if got := gaugeValue(t, r.TraversalAggregate); got != 42 {
		t.Errorf("aggregate = %v, want 42", got)
	}
	if got := gaugeValue(t, r.GraphNodes); got != 4 {
		t.Errorf("graph nodes = %v, want 4", got)
	}
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry
	r.RecordSubmit()
	r.RecordSubmitRejected()
	r.RecordInline()
	r.RecordTaskStart(0)
	r.RecordTaskDone(StatusPanic, time.Second, true)
	r.RecordVisit()
	r.RecordDuplicate()
	r.RecordTraversal(StatusError, time.Second, 0, 0)
	r.UpdateSystemMetrics()
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.RecordSubmit()

	path := filepath.Join(t.TempDir(), "graphsum.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	output := string(data)
	for _, name := range []string{
		"graphsum_pool_tasks_submitted_total 1",
		"graphsum_goroutines",
	} {
		if !strings.Contains(output, name) {
			t.Errorf("textfile missing %q", name)
		}
	}
}
