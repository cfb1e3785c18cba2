package parallel

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/dd0wney/cluso-graphsum/pkg/graph"
	"github.com/dd0wney/cluso-graphsum/pkg/logging"
	"github.com/dd0wney/cluso-graphsum/pkg/metrics"
)

// Visitor is called once for every node a visit task claims, after the
// node's weight is added and its neighbours are scheduled. An error leaves
// the node in Processing.
type Visitor func(ctx context.Context, node int, weight int64) error

// Session is the state of one traversal: the graph, the pool running it,
// per-node status and the running sum. A Session is used for one run.
type Session struct {
	graph   *graph.Graph
	pool    *WorkerPool
	visited *VisitedState
	sum     *Aggregate
	visitor Visitor
	logger  logging.Logger
	metrics *metrics.Registry

	duplicates atomic.Int64
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithVisitor installs a per-node callback
func WithVisitor(v Visitor) SessionOption {
	return func(s *Session) {
		s.visitor = v
	}
}

// WithSessionLogger sets the logger for per-node debug entries
func WithSessionLogger(logger logging.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSessionMetrics instruments the traversal with the given registry
func WithSessionMetrics(reg *metrics.Registry) SessionOption {
	return func(s *Session) {
		s.metrics = reg
	}
}

// NewSession prepares a traversal of g on pool with every node NotVisited
func NewSession(g *graph.Graph, pool *WorkerPool, opts ...SessionOption) *Session {
	s := &Session{
		graph:   g,
		pool:    pool,
		visited: NewVisitedState(g.NumNodes()),
		sum:     &Aggregate{},
		logger:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed submits the visit task for root
func (s *Session) Seed(ctx context.Context, root int) error {
	if !s.graph.Contains(root) {
		return fmt.Errorf("%w: %d (graph has %d nodes)", ErrInvalidRoot, root, s.graph.NumNodes())
	}
	return s.pool.Submit(ctx, s.visitTask(root))
}

// Sum returns the current aggregate
func (s *Session) Sum() int64 {
	return s.sum.Value()
}

// Visited exposes the per-node status
func (s *Session) Visited() *VisitedState {
	return s.visited
}

// Duplicates returns how many visit tasks found their node already claimed
func (s *Session) Duplicates() int64 {
	return s.duplicates.Load()
}

func (s *Session) visitTask(idx int) Task {
	return NewTask(func(ctx context.Context) error {
		return s.visit(ctx, idx)
	}, WithLabel("visit "+strconv.Itoa(idx)))
}

// visit processes one node. The status lock is never held across Submit
// or the sum update. A neighbour may be submitted twice when two workers
// see it unvisited at the same time; the second task finds it claimed.
func (s *Session) visit(ctx context.Context, idx int) error {
	if !s.visited.Claim(idx) {
		s.duplicates.Add(1)
		s.metrics.RecordDuplicate()
		return nil
	}

	weight := s.graph.Weight(idx)
	s.sum.Add(weight)
	s.metrics.RecordVisit()

	for _, n := range s.graph.Neighbours(idx) {
		if !s.visited.IsUnvisited(n) {
			continue
		}
		if err := s.pool.Submit(ctx, s.visitTask(n)); err != nil {
			return &VisitError{Node: idx, Cause: fmt.Errorf("schedule node %d: %w", n, err)}
		}
	}

	if s.visitor != nil {
		if err := s.visitor(ctx, idx, weight); err != nil {
			return &VisitError{Node: idx, Cause: err}
		}
	}

	s.visited.MarkDone(idx)
	s.logger.Debug("Node visited", logging.NodeIndex(idx), logging.Int64("weight", weight))
	return nil
}
