package runtime

import (
	"sync/atomic"

	"github.com/odvcencio/furry-motion/state"
)

// QueueFlushPolicy selects which messages flush the state queue.
type QueueFlushPolicy int

const (
	// FlushOnMessageAndTick flushes on every message.
	FlushOnMessageAndTick QueueFlushPolicy = iota
	// FlushOnMessage flushes on everything except TickMsg.
	FlushOnMessage
	// FlushOnTick flushes only on TickMsg.
	FlushOnTick
	// FlushManual flushes only on QueueFlushMsg.
	FlushManual
)

func shouldFlushQueue(policy QueueFlushPolicy, msg Message) bool {
	if _, ok := msg.(QueueFlushMsg); ok {
		return true
	}
	_, tick := msg.(TickMsg)
	switch policy {
	case FlushManual:
		return false
	case FlushOnMessage:
		return !tick
	case FlushOnTick:
		return tick
	default:
		return true
	}
}

// coalescer posts one wake-up message until the loop consumes it.
type coalescer struct {
	post    func(Message) bool
	msg     Message
	pending atomic.Bool
}

func (c *coalescer) wake() {
	if c == nil || c.post == nil {
		return
	}
	if c.pending.CompareAndSwap(false, true) && !c.post(c.msg) {
		c.pending.Store(false)
	}
}

func (c *coalescer) reset() {
	if c != nil {
		c.pending.Store(false)
	}
}

// QueueScheduler defers callbacks to a state queue and wakes the loop to
// flush it. Widgets use it to apply updates from effect goroutines on the
// loop goroutine.
type QueueScheduler struct {
	queue *state.Queue
	wake  coalescer
}

// NewQueueScheduler wires queue to post.
func NewQueueScheduler(queue *state.Queue, post func(Message) bool) *QueueScheduler {
	if queue == nil {
		queue = state.NewQueue()
	}
	return &QueueScheduler{queue: queue, wake: coalescer{post: post, msg: QueueFlushMsg{}}}
}

// Schedule enqueues fn and requests a flush.
func (s *QueueScheduler) Schedule(fn func()) {
	if s == nil || fn == nil {
		return
	}
	s.queue.Schedule(fn)
	s.wake.wake()
}

func (s *QueueScheduler) resetPending() {
	if s != nil {
		s.wake.reset()
	}
}

// Invalidator requests render passes, posting at most one InvalidateMsg
// until the loop handles it.
type Invalidator struct {
	wake coalescer
}

// NewInvalidator creates an invalidator wired to post.
func NewInvalidator(post func(Message) bool) *Invalidator {
	return &Invalidator{wake: coalescer{post: post, msg: InvalidateMsg{}}}
}

// Invalidate requests a render pass.
func (i *Invalidator) Invalidate() {
	if i != nil {
		i.wake.wake()
	}
}

// Schedule runs fn immediately and requests a render pass.
func (i *Invalidator) Schedule(fn func()) {
	if fn == nil {
		return
	}
	fn()
	i.Invalidate()
}

func (i *Invalidator) resetPending() {
	if i != nil {
		i.wake.reset()
	}
}

var (
	_ state.Scheduler = (*QueueScheduler)(nil)
	_ state.Scheduler = (*Invalidator)(nil)
)
