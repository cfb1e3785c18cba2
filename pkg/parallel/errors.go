package parallel

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyWorkers is returned when the worker count exceeds MaxWorkers.
	ErrTooManyWorkers = errors.New("worker count exceeds maximum")

	// ErrInvalidWorkerCount is returned for a worker count below one.
	ErrInvalidWorkerCount = errors.New("worker count must be at least 1")

	// ErrPoolClosed is returned by Submit after Shutdown.
	ErrPoolClosed = errors.New("worker pool is shut down")

	// ErrQueueClosed is returned by Enqueue after Close.
	ErrQueueClosed = errors.New("task queue is closed")

	// ErrNilTask is returned when submitting a task without an action.
	ErrNilTask = errors.New("task has no action")

	// ErrInvalidRoot is returned when the traversal root is not a node of the graph.
	ErrInvalidRoot = errors.New("root node out of range")
)

// PanicError wraps a value recovered from a panicking task.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// VisitError reports a visit task that failed after claiming its node.
// The node stays in Processing.
type VisitError struct {
	Node  int
	Cause error
}

func (e *VisitError) Error() string {
	return fmt.Sprintf("visit node %d: %v", e.Node, e.Cause)
}

func (e *VisitError) Unwrap() error {
	return e.Cause
}
