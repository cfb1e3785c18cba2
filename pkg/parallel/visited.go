package parallel

import "sync"

// NodeStatus is the visitation state of one node
type NodeStatus uint8

const (
	NotVisited NodeStatus = iota
	Processing
	Done
)

func (s NodeStatus) String() string {
	switch s {
	case NotVisited:
		return "not_visited"
	case Processing:
		return "processing"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// VisitedState holds the status of every node behind a single lock.
// Statuses only move forward: NotVisited -> Processing -> Done.
type VisitedState struct {
	mu     sync.Mutex
	status []NodeStatus
}

// NewVisitedState creates a state with n nodes, all NotVisited
func NewVisitedState(n int) *VisitedState {
	return &VisitedState{status: make([]NodeStatus, n)}
}

// Len returns the number of tracked nodes
func (v *VisitedState) Len() int {
	return len(v.status)
}

// Claim moves idx from NotVisited to Processing. It returns false if the
// node was already claimed by someone else.
func (v *VisitedState) Claim(idx int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.status[idx] != NotVisited {
		return false
	}
	v.status[idx] = Processing
	return true
}

// IsUnvisited reports whether idx has not been claimed yet. The answer
// may be stale by the time the caller acts on it.
func (v *VisitedState) IsUnvisited(idx int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status[idx] == NotVisited
}

// MarkDone moves idx from Processing to Done and reports whether it did
func (v *VisitedState) MarkDone(idx int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.status[idx] != Processing {
		return false
	}
	v.status[idx] = Done
	return true
}

// Status returns the current status of idx
func (v *VisitedState) Status(idx int) NodeStatus {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status[idx]
}

// Snapshot returns a copy of every status
func (v *VisitedState) Snapshot() []NodeStatus {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]NodeStatus, len(v.status))
	copy(out, v.status)
	return out
}

// Count returns how many nodes currently have status s
func (v *VisitedState) Count(s NodeStatus) int {
	v.mu.Lock()
	defer v.mu.Unlock()

	n := 0
	for _, st := range v.status {
		if st == s {
			n++
		}
	}
	return n
}

// Aggregate is a shared sum with its own lock, separate from VisitedState
type Aggregate struct {
	mu  sync.Mutex
	sum int64
}

// Add adds delta to the sum
func (a *Aggregate) Add(delta int64) {
	a.mu.Lock()
	a.sum += delta
	a.mu.Unlock()
}

// Value returns the current sum
func (a *Aggregate) Value() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sum
}
