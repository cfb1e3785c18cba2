package parallel

import "sync"

// initialQueueSize is the ring size an unbounded queue starts with
const initialQueueSize = 64

// TaskQueue is a FIFO of tasks shared by the pool's workers. With a
// capacity of zero it grows without bound and Enqueue never blocks; with a
// positive capacity Enqueue blocks while the queue is full.
type TaskQueue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	ring     []Task
	head     int
	count    int
	capacity int
	closed   bool
}

// NewTaskQueue creates a queue. capacity <= 0 means unbounded.
func NewTaskQueue(capacity int) *TaskQueue {
	if capacity < 0 {
		capacity = 0
	}

	size := initialQueueSize
	if capacity > 0 && capacity < size {
		size = capacity
	}

	q := &TaskQueue{
		ring:     make([]Task, size),
		capacity: capacity,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends task at the tail. It blocks only when the queue is
// bounded and full, and fails with ErrQueueClosed once Close was called.
func (q *TaskQueue) Enqueue(task Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.closed && q.full() {
		q.notFull.Wait()
	}
	if q.closed {
		return ErrQueueClosed
	}

	q.push(task)
	return nil
}

// TryEnqueue appends task unless the queue is full. It never blocks.
func (q *TaskQueue) TryEnqueue(task Task) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false, ErrQueueClosed
	}
	if q.full() {
		return false, nil
	}

	q.push(task)
	return true, nil
}

// Dequeue removes the task at the head, blocking while the queue is empty.
// After Close the remaining tasks are still handed out; ok is false once
// the queue is closed and drained.
func (q *TaskQueue) Dequeue() (task Task, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if q.count == 0 {
		return Task{}, false
	}

	task = q.ring[q.head]
	q.ring[q.head] = Task{}
	q.head = (q.head + 1) % len(q.ring)
	q.count--

	if q.capacity > 0 {
		q.notFull.Signal()
	}
	return task, true
}

// Len returns the number of queued tasks. It is a snapshot for diagnostics
// and must not be used to decide whether work is finished.
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap returns the configured capacity, 0 for unbounded
func (q *TaskQueue) Cap() int {
	return q.capacity
}

// Close stops the queue from accepting tasks and wakes every blocked
// caller. It is safe to call more than once.
func (q *TaskQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// Closed reports whether Close was called
func (q *TaskQueue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// full must be called with mu held
func (q *TaskQueue) full() bool {
	return q.capacity > 0 && q.count >= q.capacity
}

// push must be called with mu held and room available
func (q *TaskQueue) push(task Task) {
	if q.count == len(q.ring) {
		q.grow()
	}
	q.ring[(q.head+q.count)%len(q.ring)] = task
	q.count++
	q.notEmpty.Signal()
}

func (q *TaskQueue) grow() {
	size := len(q.ring) * 2
	if q.capacity > 0 && size > q.capacity {
		size = q.capacity
	}

	ring := make([]Task, size)
	n := copy(ring, q.ring[q.head:])
	copy(ring[n:], q.ring[:q.head])
	q.ring = ring
	q.head = 0
}
