package parallel

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dd0wney/cluso-graphsum/pkg/logging"
	"github.com/dd0wney/cluso-graphsum/pkg/metrics"
)

// MaxWorkers is the maximum number of workers allowed in a pool.
const MaxWorkers = math.MaxInt32

// State is the lifecycle stage of a WorkerPool
type State int32

const (
	// StateCreated means workers are running but nothing was submitted yet
	StateCreated State = iota
	// StateRunning means tasks have been submitted
	StateRunning
	// StateDraining means a caller is blocked in Wait
	StateDraining
	// StateTerminated means Shutdown was called; the pool cannot be reused
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// PoolStats is a snapshot of a pool's task counters
type PoolStats struct {
	Submitted   int64
	Completed   int64
	Failed      int64
	Panicked    int64
	Inline      int64
	Outstanding int64
}

// WorkerPool runs tasks on a fixed set of goroutines. Tasks may submit
// further tasks; Wait returns once no task is queued or executing.
type WorkerPool struct {
	workers int
	queue   *TaskQueue
	logger  logging.Logger
	metrics *metrics.Registry

	mu          sync.Mutex
	idle        *sync.Cond // signalled when outstanding drops to zero
	outstanding int64      // queued + executing, protected by mu
	state       State      // protected by mu

	wg   sync.WaitGroup
	once sync.Once

	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	panicked  atomic.Int64
	inline    atomic.Int64
}

// PoolOption configures a WorkerPool
type PoolOption func(*WorkerPool)

// WithQueueCapacity bounds the task queue. Zero, the default, is unbounded.
func WithQueueCapacity(capacity int) PoolOption {
	return func(wp *WorkerPool) {
		wp.queue = NewTaskQueue(capacity)
	}
}

// WithLogger sets the logger used for task failures
func WithLogger(logger logging.Logger) PoolOption {
	return func(wp *WorkerPool) {
		if logger != nil {
			wp.logger = logger
		}
	}
}

// WithMetrics instruments the pool with the given registry
func WithMetrics(reg *metrics.Registry) PoolOption {
	return func(wp *WorkerPool) {
		wp.metrics = reg
	}
}

// NewWorkerPool creates a pool and starts its workers.
// Returns an error if workers is below 1 or above MaxWorkers.
func NewWorkerPool(workers int, opts ...PoolOption) (*WorkerPool, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkerCount, workers)
	}
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}

	wp := &WorkerPool{
		workers: workers,
		logger:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(wp)
	}
	if wp.queue == nil {
		wp.queue = NewTaskQueue(0)
	}
	wp.idle = sync.NewCond(&wp.mu)

	wp.start()
	return wp, nil
}

type workerKey struct{}

type workerIdentity struct {
	pool *WorkerPool
	id   int
}

// WorkerFromContext returns the id of the worker executing the task that
// received ctx.
func WorkerFromContext(ctx context.Context) (int, bool) {
	w, ok := ctx.Value(workerKey{}).(workerIdentity)
	return w.id, ok
}

func (wp *WorkerPool) start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// worker processes tasks until the queue is closed and drained
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	ctx := context.WithValue(context.Background(), workerKey{}, workerIdentity{pool: wp, id: id})
	for {
		task, ok := wp.queue.Dequeue()
		if !ok {
			return
		}
		wp.metrics.RecordTaskStart(wp.queue.Len())
		wp.execute(ctx, task, true)
	}
}

// execute runs task and settles its outstanding slot. Every counter is
// updated before the slot is released so Wait callers see final values.
func (wp *WorkerPool) execute(ctx context.Context, task Task, onWorker bool) {
	start := time.Now()
	err := task.run(ctx)
	elapsed := time.Since(start)

	status := metrics.StatusSuccess
	if err != nil {
		status = wp.reportFailure(ctx, task, err)
	}

	wp.completed.Add(1)
	wp.metrics.RecordTaskDone(status, elapsed, onWorker)
	wp.release()
}

func (wp *WorkerPool) reportFailure(ctx context.Context, task Task, err error) string {
	fields := []logging.Field{logging.Error(err)}
	if id, ok := WorkerFromContext(ctx); ok {
		fields = append(fields, logging.WorkerID(id))
	}
	if task.label != "" {
		fields = append(fields, logging.TaskLabel(task.label))
	}

	var pe *PanicError
	if errors.As(err, &pe) {
		wp.panicked.Add(1)
		wp.logger.Error("Task panicked", fields...)
		wp.logger.Debug("Task panic stack", logging.String("stack", string(pe.Stack)))
		return metrics.StatusPanic
	}

	wp.failed.Add(1)
	wp.logger.Warn("Task failed", fields...)
	return metrics.StatusError
}

// release drops one outstanding slot and wakes Wait on the zero crossing
func (wp *WorkerPool) release() {
	wp.mu.Lock()
	wp.outstanding--
	if wp.outstanding == 0 {
		wp.idle.Broadcast()
	}
	wp.mu.Unlock()
}

// Submit adds a task to the pool. It may be called concurrently by any
// goroutine, including tasks running on the pool.
//
// With a bounded queue, an outside caller blocks while the queue is full.
// A task of this pool submitting into a full queue runs the new task
// itself instead, so workers never wait on each other.
func (wp *WorkerPool) Submit(ctx context.Context, task Task) error {
	if task.action == nil {
		return ErrNilTask
	}

	wp.mu.Lock()
	if wp.state == StateTerminated {
		wp.mu.Unlock()
		return ErrPoolClosed
	}
	if wp.state == StateCreated {
		wp.state = StateRunning
	}
	// Counted before the task is visible to any worker.
	wp.outstanding++
	wp.mu.Unlock()

	wp.submitted.Add(1)
	wp.metrics.RecordSubmit()

	if ctx == nil {
		ctx = context.Background()
	}
	if w, ok := ctx.Value(workerKey{}).(workerIdentity); ok && w.pool == wp {
		queued, err := wp.queue.TryEnqueue(task)
		if err != nil {
			wp.reject()
			return ErrPoolClosed
		}
		if !queued {
			wp.inline.Add(1)
			wp.metrics.RecordInline()
			wp.execute(ctx, task, false)
		}
		return nil
	}

	if err := wp.queue.Enqueue(task); err != nil {
		wp.reject()
		return ErrPoolClosed
	}
	return nil
}

func (wp *WorkerPool) reject() {
	wp.submitted.Add(-1)
	wp.metrics.RecordSubmitRejected()
	wp.release()
}

// Wait blocks until every submitted task, including tasks submitted by
// other tasks, has finished. It must not be called from a task.
func (wp *WorkerPool) Wait() {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.state == StateCreated || wp.state == StateRunning {
		wp.state = StateDraining
	}
	for wp.outstanding > 0 {
		wp.idle.Wait()
	}
}

// Shutdown stops the workers and waits for them to exit. Tasks still
// queued are executed first; their own submissions are rejected. It is
// safe to call more than once but must not be called from a task.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		wp.mu.Lock()
		wp.state = StateTerminated
		wp.mu.Unlock()

		wp.queue.Close()
	})
	wp.wg.Wait()
}

// State returns the current lifecycle stage
func (wp *WorkerPool) State() State {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	return wp.state
}

// Outstanding returns the number of tasks queued or executing
func (wp *WorkerPool) Outstanding() int64 {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	return wp.outstanding
}

// Workers returns the number of worker goroutines
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// QueueLen returns the number of queued tasks, for diagnostics only
func (wp *WorkerPool) QueueLen() int {
	return wp.queue.Len()
}

// Stats returns a snapshot of the task counters
func (wp *WorkerPool) Stats() PoolStats {
	return PoolStats{
		Submitted:   wp.submitted.Load(),
		Completed:   wp.completed.Load(),
		Failed:      wp.failed.Load(),
		Panicked:    wp.panicked.Load(),
		Inline:      wp.inline.Load(),
		Outstanding: wp.Outstanding(),
	}
}
