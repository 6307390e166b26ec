package state

import "sync"

// Subscriptions collects the cleanups a widget or animation owns so they
// can be released together. Releasing on every unbind keeps a source's
// listener count flat across repeated mounts.
type Subscriptions struct {
	mu       sync.Mutex
	cleanups []func()
	sched    Scheduler
}

// SetScheduler sets the scheduler Observe delivers through.
func (s *Subscriptions) SetScheduler(scheduler Scheduler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sched = scheduler
}

// Add tracks a cleanup. Nil is ignored.
func (s *Subscriptions) Add(cleanup func()) {
	if s == nil || cleanup == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanups = append(s.cleanups, cleanup)
}

// AddStopper tracks a derived value or spring so Clear stops it.
func (s *Subscriptions) AddStopper(stopper Stopper) {
	if stopper != nil {
		s.Add(stopper.Stop)
	}
}

// Subscribe listens to sub synchronously.
func (s *Subscriptions) Subscribe(sub Subscribable, fn func()) {
	if sub == nil || fn == nil {
		return
	}
	s.Add(sub.Subscribe(fn))
}

// Observe listens to sub through the scheduler set with SetScheduler.
// Sources that cannot schedule, or a nil scheduler, deliver synchronously.
func (s *Subscriptions) Observe(sub Subscribable, fn func()) {
	if s == nil || sub == nil || fn == nil {
		return
	}
	s.mu.Lock()
	scheduler := s.sched
	s.mu.Unlock()

	type scheduled interface {
		SubscribeWithScheduler(Scheduler, func()) func()
	}
	if src, ok := sub.(scheduled); ok && scheduler != nil {
		s.Add(src.SubscribeWithScheduler(scheduler, fn))
		return
	}
	s.Add(sub.Subscribe(fn))
}

// Len returns how many cleanups are tracked.
func (s *Subscriptions) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cleanups)
}

// Clear runs and forgets every tracked cleanup, newest first.
func (s *Subscriptions) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	cleanups := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
