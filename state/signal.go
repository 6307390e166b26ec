// Package state provides the reactive primitives the motion engine is built on.
package state

import "sync"

// EqualFunc compares two values for equality.
type EqualFunc[T any] func(a, b T) bool

// EqualComparable compares comparable values with ==.
func EqualComparable[T comparable](a, b T) bool {
	return a == b
}

// Subscribable emits change notifications.
type Subscribable interface {
	Subscribe(fn func()) func()
}

type subscriber[T any] struct {
	onChange  func()
	onValue   func(T)
	scheduler Scheduler
}

// Signal holds a value and notifies listeners every time it is set.
//
// Listeners are kept in an unordered set: consumers must not rely on the
// order in which they are invoked. By default every Set notifies, even when
// the value is unchanged; SetEqualFunc opts into suppressing redundant sets.
type Signal[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[uint64]subscriber[T]
	next  uint64
	equal EqualFunc[T]
}

// NewSignal creates a new signal with an initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// SetEqualFunc configures the equality check used to suppress redundant updates.
// A nil fn restores always-notify.
func (s *Signal[T]) SetEqualFunc(fn EqualFunc[T]) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.equal = fn
	s.mu.Unlock()
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	if s == nil {
		var zero T
		return zero
	}
	s.mu.Lock()
	value := s.value
	s.mu.Unlock()
	return value
}

// Set replaces the value and notifies listeners.
// It reports false only when an equality func suppressed the update.
func (s *Signal[T]) Set(value T) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	if s.equal != nil && s.equal(s.value, value) {
		s.mu.Unlock()
		return false
	}
	s.value = value
	subs := s.copySubscribersLocked()
	s.mu.Unlock()

	notify(subs, value)
	return true
}

// Update replaces the value using fn.
// fn runs outside the signal lock; Update is not atomic across goroutines.
func (s *Signal[T]) Update(fn func(T) T) bool {
	if s == nil || fn == nil {
		return false
	}
	return s.Set(fn(s.Get()))
}

// On registers a listener that receives each new value.
func (s *Signal[T]) On(fn func(T)) func() {
	return s.OnWithScheduler(nil, fn)
}

// OnWithScheduler registers a value listener dispatched through scheduler.
// If scheduler is nil, the listener runs synchronously inside Set.
func (s *Signal[T]) OnWithScheduler(scheduler Scheduler, fn func(T)) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	return s.add(subscriber[T]{onValue: fn, scheduler: scheduler})
}

// Subscribe registers a listener for change notifications.
func (s *Signal[T]) Subscribe(fn func()) func() {
	return s.SubscribeWithScheduler(nil, fn)
}

// SubscribeWithScheduler registers a listener using a scheduler.
// If scheduler is nil, callbacks run synchronously.
func (s *Signal[T]) SubscribeWithScheduler(scheduler Scheduler, fn func()) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	return s.add(subscriber[T]{onChange: fn, scheduler: scheduler})
}

// Listeners returns the number of registered listeners.
func (s *Signal[T]) Listeners() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	n := len(s.subs)
	s.mu.Unlock()
	return n
}

func (s *Signal[T]) add(sub subscriber[T]) func() {
	s.mu.Lock()
	if s.subs == nil {
		s.subs = make(map[uint64]subscriber[T])
	}
	id := s.next
	s.next++
	s.subs[id] = sub
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Signal[T]) copySubscribersLocked() []subscriber[T] {
	if len(s.subs) == 0 {
		return nil
	}
	subs := make([]subscriber[T], 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	return subs
}

func notify[T any](subs []subscriber[T], value T) {
	for _, sub := range subs {
		var call func()
		switch {
		case sub.onValue != nil:
			fn := sub.onValue
			call = func() { fn(value) }
		case sub.onChange != nil:
			call = sub.onChange
		default:
			continue
		}
		if sub.scheduler == nil {
			call()
			continue
		}
		sub.scheduler.Schedule(call)
	}
}
