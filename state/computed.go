package state

import "sync"

// Computed is recalculated from fn whenever one of its dependencies
// notifies. Like Signal it notifies on every recalculation, so a dependency
// that is set to the same value still reaches Computed's listeners.
type Computed[T any] struct {
	out *Signal[T]
	fn  func() T

	mu      sync.Mutex
	release []func()
	stopped bool
}

// NewComputed evaluates fn once and subscribes to deps. Nil deps are skipped.
func NewComputed[T any](fn func() T, deps ...Subscribable) *Computed[T] {
	if fn == nil {
		fn = func() (zero T) { return zero }
	}
	c := &Computed[T]{fn: fn}
	c.out = NewSignal(fn())
	for _, dep := range deps {
		if dep == nil {
			continue
		}
		c.release = append(c.release, dep.Subscribe(c.refresh))
	}
	return c
}

func (c *Computed[T]) refresh() {
	c.mu.Lock()
	stopped := c.stopped
	c.mu.Unlock()
	if !stopped {
		c.out.Set(c.fn())
	}
}

// Get returns the last calculated value.
func (c *Computed[T]) Get() T {
	if c == nil {
		var zero T
		return zero
	}
	return c.out.Get()
}

// On registers fn to receive every recalculated value.
func (c *Computed[T]) On(fn func(T)) func() {
	return c.out.On(fn)
}

// Subscribe registers fn to run after every recalculation.
func (c *Computed[T]) Subscribe(fn func()) func() {
	return c.out.Subscribe(fn)
}

// SubscribeWithScheduler is Subscribe with delivery through scheduler.
func (c *Computed[T]) SubscribeWithScheduler(scheduler Scheduler, fn func()) func() {
	return c.out.SubscribeWithScheduler(scheduler, fn)
}

// Stop releases the dependencies and freezes the value. Safe to repeat.
func (c *Computed[T]) Stop() {
	if c == nil {
		return
	}
	c.mu.Lock()
	release := c.release
	c.release = nil
	c.stopped = true
	c.mu.Unlock()
	for _, unsub := range release {
		if unsub != nil {
			unsub()
		}
	}
}

// Stopped reports whether Stop has been called.
func (c *Computed[T]) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

var _ Readable[int] = (*Computed[int])(nil)
