package site

import (
	"math"
	"time"

	"github.com/odvcencio/furry-motion/backend"
	"github.com/odvcencio/furry-motion/motion"
	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/scroll"
	"github.com/odvcencio/furry-motion/state"
	"github.com/odvcencio/furry-motion/widgets"
)

// SteamFrame is the steam animation tick.
const SteamFrame = 100 * time.Millisecond

const (
	coffeeHeight = 16
	coffeeCupTop = 5
	// steamPixels is how many path pixels one row of rise covers.
	steamPixels = 8
)

// Wisp is one looping curl of steam above the cup. Rise and Opacity are
// keyframes at the start, middle and end of a loop; Rise is in pixels.
type Wisp struct {
	Column  int
	Period  time.Duration
	Delay   time.Duration
	Rise    [3]float64
	Opacity [3]float64
}

// Wisps are the three steam curls, left to right.
var Wisps = []Wisp{
	{Column: -2, Period: 2 * time.Second, Rise: [3]float64{4, 12, 20}, Opacity: [3]float64{0, 0.6, 0}},
	{Column: 0, Period: 2200 * time.Millisecond, Delay: 400 * time.Millisecond, Rise: [3]float64{4, 16, 24}, Opacity: [3]float64{0, 0.8, 0}},
	{Column: 2, Period: 1800 * time.Millisecond, Delay: 800 * time.Millisecond, Rise: [3]float64{4, 12, 20}, Opacity: [3]float64{0, 0.6, 0}},
}

var wispKeys = []float64{0, 0.5, 1}

type steamTick struct{ At time.Time }

// easeOut decelerates into the end of a loop.
func easeOut(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// wispPhase returns the eased loop position of w, elapsed after the
// animation started. Wisps hold their first frame until their delay passes.
func wispPhase(w Wisp, elapsed time.Duration) float64 {
	t := elapsed - w.Delay
	if t < 0 || w.Period <= 0 {
		return 0
	}
	return easeOut(float64(t%w.Period) / float64(w.Period))
}

// Coffee is the studio mantra: a steaming cup on the accent band. It
// lifts into place the first time it scrolls into view.
type Coffee struct {
	widgets.Component
	theme   Theme
	src     scroll.Source
	tracker *scroll.Tracker
	start   time.Time
	phases  []*state.Signal[float64]
	rise    []*motion.Derived[float64]
	opacity []*motion.Derived[float64]
	reveal  *motion.Derived[float64]
	shown   float64
}

// NewCoffee creates the mantra section.
func NewCoffee(theme Theme, src scroll.Source) *Coffee {
	return &Coffee{theme: theme, src: src}
}

// Bind starts the steam loop and the entry reveal.
func (c *Coffee) Bind(services runtime.Services) {
	c.Component.Bind(services)
	c.start = time.Time{}
	c.phases, c.rise, c.opacity = nil, nil, nil
	for _, w := range Wisps {
		phase := state.NewSignal(0.0)
		rise := motion.MustInterpolate(phase, wispKeys, w.Rise[:])
		opacity := motion.MustInterpolate(phase, wispKeys, w.Opacity[:])
		c.Subs.AddStopper(rise)
		c.Subs.AddStopper(opacity)
		c.phases = append(c.phases, phase)
		c.rise = append(c.rise, rise)
		c.opacity = append(c.opacity, opacity)
	}
	c.Subs.Add(services.SpawnScoped(runtime.Every(SteamFrame, func(at time.Time) runtime.Message {
		return runtime.CustomMsg{Value: steamTick{At: at}}
	})))

	if c.src == nil {
		c.shown = 1
		return
	}
	c.tracker = elementTracker(c.src, c, scroll.EnterViewport, scroll.LeaveViewport)
	progress, release := c.tracker.Acquire()
	c.Subs.Add(release)
	c.reveal = motion.MustInterpolate(progress, []float64{0, 0.15}, []float64{0, 1})
	c.Subs.AddStopper(c.reveal)
	c.Subs.Add(c.reveal.On(func(v float64) { c.shown = max(c.shown, v) }))
	c.shown = max(c.shown, c.reveal.Get())
	c.Redraw(c.reveal)
}

// Unbind stops the reveal. The steam keeps its last frame.
func (c *Coffee) Unbind() {
	c.Component.Unbind()
	c.tracker = nil
	c.reveal = nil
}

// Steam returns wisp i's rise in pixels and its opacity.
func (c *Coffee) Steam(i int) (rise, opacity float64) {
	if i < 0 || i >= len(c.rise) {
		return 0, 0
	}
	return c.rise[i].Get(), c.opacity[i].Get()
}

// Revealed returns the entry progress in [0, 1]. It never falls back once
// the section has been seen.
func (c *Coffee) Revealed() float64 {
	return c.shown
}

// Measure is a fixed band.
func (c *Coffee) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: coffeeHeight})
}

// Layout re-measures the reveal.
func (c *Coffee) Layout(bounds runtime.Rect) {
	c.Component.Layout(bounds)
	if c.tracker != nil {
		c.tracker.Update()
	}
}

// ink mixes the band's dark ink over the accent at opacity.
func ink(opacity float64) backend.Color {
	return backend.FromColorful(colorBlue.BlendRgb(colorBlack, clampUnit(opacity)).Clamped())
}

// Render draws the band, the cup, its steam and the mantra.
func (c *Coffee) Render(ctx runtime.RenderContext) {
	bounds := c.Bounds()
	if bounds.Empty() {
		return
	}
	sub := ctx.Sub(bounds)
	band := backend.DefaultStyle().Background(backend.FromColorful(colorBlue))
	sub.Clear(band.Foreground(ink(1)))
	dots := band.Foreground(ink(0.1))
	for y := 2; y < bounds.Height-1; y += 2 {
		for x := 1; x < bounds.Width; x += 3 {
			sub.Set(x, y, '·', dots)
		}
	}
	rule := band.Foreground(backend.FromColorful(c.theme.Ink))
	sub.Fill(runtime.Rect{Width: bounds.Width, Height: 1}, '━', rule)
	sub.Fill(runtime.Rect{Y: bounds.Height - 1, Width: bounds.Width, Height: 1}, '━', rule)

	shown := c.Revealed()
	lift := int(math.Round(1 - shown))
	cx := bounds.Width / 2
	top := coffeeCupTop + lift
	if shown > 0 {
		cup := band.Foreground(ink(shown)).With(backend.AttrBold)
		for i, line := range []string{"┌─────┐ ", "│░░░░░│╮", "│     │╯", "╰─────╯ "} {
			sub.Text(cx-4, top+i, line, cup)
		}
		for i, w := range Wisps {
			rise, opacity := c.Steam(i)
			if g := steamGlyph(opacity * shown); g != 0 {
				sub.Set(cx+w.Column-1, top-int(math.Round(rise/steamPixels)), g, band.Foreground(ink(opacity*shown)))
			}
		}
	}

	quote := band.Foreground(ink(shown)).With(backend.AttrBold)
	centered(sub, coffeeCupTop+6, `"BETTER COFFEE`, quote)
	centered(sub, coffeeCupTop+7, `THAN NOT COFFEE"`, quote)
	if label := clampUnit((shown - 0.4) / 0.6); label > 0 {
		tag := backend.DefaultStyle().
			Foreground(backend.FromColorful(colorBlack.BlendRgb(colorBlue, label))).
			Background(backend.FromColorful(colorBlack)).
			With(backend.AttrBold)
		centered(sub, coffeeCupTop+9, " STUDIO FUEL • EST. 2025 ", tag)
	}
}

func steamGlyph(opacity float64) rune {
	switch {
	case opacity < 0.05:
		return 0
	case opacity < 0.3:
		return '░'
	case opacity < 0.6:
		return '▒'
	}
	return '▓'
}

// HandleMessage advances the steam.
func (c *Coffee) HandleMessage(msg runtime.Message) runtime.HandleResult {
	tick, ok := customValue[steamTick](msg)
	if !ok {
		return runtime.Unhandled()
	}
	if c.start.IsZero() {
		c.start = tick.At
	}
	elapsed := tick.At.Sub(c.start)
	for i, phase := range c.phases {
		phase.Set(wispPhase(Wisps[i], elapsed))
	}
	c.Invalidate()
	return runtime.Handled()
}
