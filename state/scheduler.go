package state

import "sync"

// Scheduler decides when a listener runs. A nil Scheduler means now.
type Scheduler interface {
	Schedule(fn func())
}

// Queue holds listener calls until Flush. The app loop flushes it between
// messages, which keeps spring and scroll listeners on the loop goroutine.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Schedule appends fn. Nil calls are dropped.
func (q *Queue) Schedule(fn func()) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, fn)
}

// Len reports how many calls are waiting.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush runs the calls waiting at the time of the call, in order, and
// returns how many ran. Calls scheduled meanwhile wait for the next Flush.
func (q *Queue) Flush() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
