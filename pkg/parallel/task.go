package parallel

import (
	"context"
	"runtime/debug"
)

// TaskFunc is the body of a task. The context identifies the worker
// running it; pass it to Submit when fanning out.
type TaskFunc func(ctx context.Context) error

// Task is one unit of work. It owns everything its action needs through
// the closure and is executed at most once.
type Task struct {
	action  TaskFunc
	label   string
	cleanup func()
}

// TaskOption configures a Task
type TaskOption func(*Task)

// WithLabel names the task in log entries
func WithLabel(label string) TaskOption {
	return func(t *Task) {
		t.label = label
	}
}

// WithCleanup registers fn to run after the action returns or panics
func WithCleanup(fn func()) TaskOption {
	return func(t *Task) {
		t.cleanup = fn
	}
}

// NewTask creates a task running action
func NewTask(action TaskFunc, opts ...TaskOption) Task {
	t := Task{action: action}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Label returns the task label, empty if none was set
func (t Task) Label() string {
	return t.label
}

// run executes the action and then the cleanup, converting a panic in
// either into a *PanicError.
func (t Task) run(ctx context.Context) (err error) {
	defer func() {
		if t.cleanup == nil {
			return
		}
		defer func() {
			if r := recover(); r != nil && err == nil {
				err = &PanicError{Value: r, Stack: debug.Stack()}
			}
		}()
		t.cleanup()
	}()
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return t.action(ctx)
}
