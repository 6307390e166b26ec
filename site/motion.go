package site

import (
	"math"

	"github.com/odvcencio/furry-motion/motion"
	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/scroll"
	"github.com/odvcencio/furry-motion/state"
)

var (
	// timelineStart and timelineEnd fill the timeline while the section
	// crosses the line three quarters down the viewport.
	timelineStart = scroll.Anchor{Element: 0, View: 0.75}
	timelineEnd   = scroll.Anchor{Element: 1, View: 0.75}

	// TimelineSpring smooths the timeline bar.
	TimelineSpring = motion.SpringConfig{Stiffness: 60, Damping: 20, RestDelta: 0.001}
	// PathSpring draws the deconstruction path.
	PathSpring = motion.SpringConfig{Stiffness: 400, Damping: 90}
	// DotSpring and RingSpring chase the mouse.
	DotSpring  = motion.SpringConfig{Stiffness: 1000, Damping: 64}
	RingSpring = motion.SpringConfig{Stiffness: 400, Damping: 40}
)

// elementTracker follows w through src between start and end. The bounds
// are read on every change so relayouts are picked up.
func elementTracker(src scroll.Source, w runtime.BoundsProvider, start, end scroll.Anchor) *scroll.Tracker {
	return scroll.NewMeasuredTracker(src, scroll.ElementMeasure(func() (float64, float64) {
		b := w.Bounds()
		return float64(b.Y), float64(b.Height)
	}, start, end))
}

// Parallax shifts an element against the scroll direction while it passes
// through the viewport.
type Parallax struct {
	tracker *scroll.Tracker
	release func()
	shift   *motion.Derived[float64]
}

// NewParallax maps w's pass through src onto [offset, -offset] rows.
func NewParallax(src scroll.Source, w runtime.BoundsProvider, offset float64) *Parallax {
	tracker := elementTracker(src, w, scroll.EnterViewport, scroll.LeaveViewport)
	progress, release := tracker.Acquire()
	return &Parallax{
		tracker: tracker,
		release: release,
		shift:   motion.MustInterpolate(progress, []float64{0, 1}, []float64{offset, -offset}),
	}
}

// Update re-measures after a layout change.
func (p *Parallax) Update() {
	if p != nil {
		p.tracker.Update()
	}
}

// Offset returns the current shift in whole rows.
func (p *Parallax) Offset() int {
	if p == nil {
		return 0
	}
	return int(math.Round(p.shift.Get()))
}

// Stop releases the tracker.
func (p *Parallax) Stop() {
	if p == nil {
		return
	}
	p.shift.Stop()
	p.release()
}

// Cursor is a dot and a trailing ring that spring toward the mouse.
type Cursor struct {
	dotX, dotY   *motion.Spring
	ringX, ringY *motion.Spring
	visible      *state.Signal[bool]
}

// NewCursor creates a hidden cursor at the origin.
func NewCursor(driver *motion.Driver) (*Cursor, error) {
	c := &Cursor{visible: state.NewSignal(false)}
	var err error
	for _, s := range []struct {
		dst **motion.Spring
		cfg motion.SpringConfig
	}{
		{&c.dotX, DotSpring}, {&c.dotY, DotSpring},
		{&c.ringX, RingSpring}, {&c.ringY, RingSpring},
	} {
		if *s.dst, err = motion.NewSpringValue(driver, 0, s.cfg); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MoveTo retargets both springs. The first move places the cursor without
// animating.
func (c *Cursor) MoveTo(x, y int) {
	if c == nil {
		return
	}
	fx, fy := float64(x), float64(y)
	if !c.visible.Get() {
		c.dotX.Jump(fx)
		c.dotY.Jump(fy)
		c.ringX.Jump(fx)
		c.ringY.Jump(fy)
		c.visible.Set(true)
		return
	}
	c.dotX.SetTarget(fx)
	c.dotY.SetTarget(fy)
	c.ringX.SetTarget(fx)
	c.ringY.SetTarget(fy)
}

// Visible reports whether the mouse has been seen.
func (c *Cursor) Visible() bool {
	return c != nil && c.visible.Get()
}

// Dot returns the dot's cell.
func (c *Cursor) Dot() (x, y int) {
	return round(c.dotX.Get()), round(c.dotY.Get())
}

// Ring returns the ring's cell.
func (c *Cursor) Ring() (x, y int) {
	return round(c.ringX.Get()), round(c.ringY.Get())
}

// Render draws the ring, then the dot over it.
func (c *Cursor) Render(ctx runtime.RenderContext, theme Theme) {
	if !c.Visible() {
		return
	}
	rx, ry := c.Ring()
	dx, dy := c.Dot()
	ctx.Set(rx-ctx.Bounds.X, ry-ctx.Bounds.Y, '○', theme.Accent)
	ctx.Set(dx-ctx.Bounds.X, dy-ctx.Bounds.Y, '●', theme.Accent)
}

// Stop detaches the springs from the driver.
func (c *Cursor) Stop() {
	if c == nil {
		return
	}
	c.dotX.Stop()
	c.dotY.Stop()
	c.ringX.Stop()
	c.ringY.Stop()
}

func round(v float64) int {
	return int(math.Round(v))
}
