// Package motion maps reactive values onto animation values.
//
// A Derived value follows one source and recomputes synchronously whenever the
// source is set; derived values chain, so a Derived may itself be the source of
// another Derived or a Spring. Springs smooth a source over frames driven by a
// Driver.
package motion

import (
	"sync"

	"github.com/odvcencio/furry-motion/state"
)

// Derived is a read-only value computed from a single source.
type Derived[U any] struct {
	signal *state.Signal[U]
	mu     sync.Mutex
	unsub  func()
}

// Transform derives a value by applying fn to every value of src.
// The initial value is computed from src.Get() immediately.
func Transform[T, U any](src state.Readable[T], fn func(T) U) *Derived[U] {
	if fn == nil {
		panic("motion: Transform requires a mapping function")
	}
	var initial T
	if src != nil {
		initial = src.Get()
	}
	d := &Derived[U]{signal: state.NewSignal(fn(initial))}
	if src != nil {
		d.unsub = src.On(func(v T) {
			d.signal.Set(fn(v))
		})
	}
	return d
}

// Get returns the current derived value.
func (d *Derived[U]) Get() U {
	if d == nil {
		var zero U
		return zero
	}
	return d.signal.Get()
}

// On registers a listener receiving each recomputed value.
func (d *Derived[U]) On(fn func(U)) func() {
	if d == nil {
		return func() {}
	}
	return d.signal.On(fn)
}

// Subscribe registers a listener for change notifications.
func (d *Derived[U]) Subscribe(fn func()) func() {
	if d == nil {
		return func() {}
	}
	return d.signal.Subscribe(fn)
}

// SubscribeWithScheduler registers a listener dispatched through scheduler.
func (d *Derived[U]) SubscribeWithScheduler(scheduler state.Scheduler, fn func()) func() {
	if d == nil {
		return func() {}
	}
	return d.signal.SubscribeWithScheduler(scheduler, fn)
}

// Stop detaches the value from its source. The last value is retained and
// further source sets no longer reach it or its listeners.
func (d *Derived[U]) Stop() {
	if d == nil {
		return
	}
	d.mu.Lock()
	unsub := d.unsub
	d.unsub = nil
	d.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

var _ state.Readable[float64] = (*Derived[float64])(nil)
