package state

// Readable exposes read-only reactive state.
type Readable[T any] interface {
	Get() T
	On(fn func(T)) func()
	Subscribe(fn func()) func()
	SubscribeWithScheduler(scheduler Scheduler, fn func()) func()
}

// Writable exposes read/write reactive state.
type Writable[T any] interface {
	Readable[T]
	Set(value T) bool
	Update(fn func(T) T) bool
}

// Stopper is implemented by derived values that hold source subscriptions.
type Stopper interface {
	Stop()
}
