package parallel

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-graphsum/pkg/graph"
	"github.com/dd0wney/cluso-graphsum/pkg/logging"
	"github.com/dd0wney/cluso-graphsum/pkg/metrics"
)

// DefaultWorkers is the pool size used when Options.Workers is zero
const DefaultWorkers = 4

// Options controls a SumReachable run
type Options struct {
	Workers       int // 0 means DefaultWorkers
	QueueCapacity int // 0 means unbounded
	Root          int
	Visitor       Visitor
	Logger        logging.Logger
	Metrics       *metrics.Registry
}

// Result describes a finished traversal
type Result struct {
	RunID      string
	Sum        int64
	Visited    int // nodes in Done
	Stuck      int // nodes left in Processing by a failed visit
	Unvisited  int // nodes never reached
	Duplicates int64
	Pool       PoolStats
	Statuses   []NodeStatus
	Duration   time.Duration
}

// SumReachable sums the weights of every node reachable from opts.Root,
// each counted once, on a fresh pool of opts.Workers goroutines. An empty
// graph yields a zero sum without submitting any task.
func SumReachable(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	workers := opts.Workers
	if workers == 0 {
		workers = DefaultWorkers
	}
	if g.NumNodes() > 0 && !g.Contains(opts.Root) {
		return nil, fmt.Errorf("%w: %d (graph has %d nodes)", ErrInvalidRoot, opts.Root, g.NumNodes())
	}

	runID := uuid.New().String()
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.With(logging.Component("traversal"), logging.RunID(runID))

	pool, err := NewWorkerPool(workers,
		WithQueueCapacity(opts.QueueCapacity),
		WithLogger(logger),
		WithMetrics(opts.Metrics),
	)
	if err != nil {
		return nil, err
	}

	session := NewSession(g, pool,
		WithVisitor(opts.Visitor),
		WithSessionLogger(logger),
		WithSessionMetrics(opts.Metrics),
	)

	logger.Info("Traversal started",
		logging.Int("nodes", g.NumNodes()),
		logging.Int("edges", g.NumEdges()),
		logging.Int("workers", workers),
		logging.Int("root", opts.Root),
	)
	start := time.Now()

	if g.NumNodes() > 0 {
		if err := session.Seed(ctx, opts.Root); err != nil {
			pool.Shutdown()
			return nil, err
		}
	}

	pool.Wait()
	pool.Shutdown()
	elapsed := time.Since(start)

	statuses := session.Visited().Snapshot()
	res := &Result{
		RunID:      runID,
		Sum:        session.Sum(),
		Duplicates: session.Duplicates(),
		Pool:       pool.Stats(),
		Statuses:   statuses,
		Duration:   elapsed,
	}
	for _, st := range statuses {
		switch st {
		case Done:
			res.Visited++
		case Processing:
			res.Stuck++
		default:
			res.Unvisited++
		}
	}

	status := metrics.StatusSuccess
	if res.Pool.Failed+res.Pool.Panicked > 0 {
		status = metrics.StatusError
	}
	opts.Metrics.RecordTraversal(status, elapsed, g.NumNodes(), res.Sum)

	logger.Info("Traversal finished",
		logging.Int64("sum", res.Sum),
		logging.Int("visited", res.Visited),
		logging.Int("stuck", res.Stuck),
		logging.Int("unvisited", res.Unvisited),
		logging.Int64("duplicates", res.Duplicates),
		logging.Int64("failed_tasks", res.Pool.Failed+res.Pool.Panicked),
		logging.Latency(elapsed),
	)

	return res, nil
}
