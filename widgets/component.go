package widgets

import (
	"github.com/odvcencio/furry-motion/motion"
	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/state"
)

// Component is a widget base holding app services and the subscriptions
// it made while bound. Subscriptions are dropped on Unbind.
type Component struct {
	Base
	Services runtime.Services
	Subs     state.Subscriptions
}

// Bind attaches app services.
func (c *Component) Bind(services runtime.Services) {
	c.Services = services
	c.Subs.SetScheduler(services.Scheduler())
}

// Unbind releases services and subscriptions.
func (c *Component) Unbind() {
	c.Subs.Clear()
	c.Services = runtime.Services{}
}

// Invalidate requests a render pass.
func (c *Component) Invalidate() {
	c.Services.Invalidate()
}

// Driver returns the app frame clock, or nil while unbound.
func (c *Component) Driver() *motion.Driver {
	return c.Services.Driver()
}

// Observe subscribes fn through the app scheduler.
func (c *Component) Observe(sub state.Subscribable, fn func()) {
	c.Subs.Observe(sub, fn)
}

// Redraw re-renders whenever sub changes.
func (c *Component) Redraw(sub state.Subscribable) {
	c.Subs.Observe(sub, c.Invalidate)
}
