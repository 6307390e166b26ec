package runtime

import (
	"time"

	"github.com/odvcencio/furry-motion/motion"
	"github.com/odvcencio/furry-motion/state"
)

// Services is the handle bindable widgets get to the running app.
type Services struct {
	app *App
}

// Services returns a service handle for the app.
func (a *App) Services() Services {
	return Services{app: a}
}

func (s Services) isZero() bool {
	return s.app == nil
}

// Driver returns the frame clock springs register with.
func (s Services) Driver() *motion.Driver {
	if s.app == nil {
		return nil
	}
	return s.app.driver
}

// Scheduler returns the state queue scheduler.
func (s Services) Scheduler() state.Scheduler {
	if s.app == nil {
		return nil
	}
	return s.app.StateScheduler()
}

// InvalidateScheduler returns the render invalidation scheduler.
func (s Services) InvalidateScheduler() state.Scheduler {
	if s.app == nil {
		return nil
	}
	return s.app.InvalidateScheduler()
}

// Invalidate requests a render pass.
func (s Services) Invalidate() {
	if s.app != nil {
		s.app.Invalidate()
	}
}

// Post sends a message into the app loop.
func (s Services) Post(msg Message) bool {
	if s.app == nil {
		return false
	}
	return s.app.TryPost(msg)
}

// Spawn starts an effect on the app task context.
func (s Services) Spawn(effect Effect) {
	if s.app != nil {
		s.app.Spawn(effect)
	}
}

// SpawnScoped runs effect like Spawn and returns a func that stops it.
// Bound widgets release it on Unbind.
func (s Services) SpawnScoped(effect Effect) func() {
	effect, cancel := Scoped(effect)
	s.Spawn(effect)
	return cancel
}

// After posts msg after delay.
func (s Services) After(delay time.Duration, msg Message) {
	if s.app != nil {
		s.app.Spawn(After(delay, msg))
	}
}
