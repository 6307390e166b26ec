package site

import (
	"strings"
	"testing"
	"time"

	"github.com/odvcencio/furry-motion/motion"
	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/scroll"
	"github.com/odvcencio/furry-motion/terminal"
)

type fixedBounds runtime.Rect

func (f fixedBounds) Bounds() runtime.Rect { return runtime.Rect(f) }

func document(view, content int) *scroll.Viewport {
	vp := scroll.NewViewport()
	vp.SetViewSize(runtime.Size{Width: 80, Height: view})
	vp.SetContentSize(runtime.Size{Width: 80, Height: content})
	return vp
}

func TestParallax_ShiftsAcrossViewport(t *testing.T) {
	vp := document(20, 200)
	p := NewParallax(vp, fixedBounds{Y: 100, Width: 80, Height: 10}, 3)
	defer p.Stop()

	if got := p.Offset(); got != 3 {
		t.Fatalf("expected full shift before entering, got %d", got)
	}
	vp.SetOffset(0, 95)
	if got := p.Offset(); got != 0 {
		t.Fatalf("expected no shift mid-pass, got %d", got)
	}
	vp.SetOffset(0, 150)
	if got := p.Offset(); got != -3 {
		t.Fatalf("expected opposite shift after leaving, got %d", got)
	}

	var nilParallax *Parallax
	if nilParallax.Offset() != 0 {
		t.Fatalf("expected nil parallax to report no shift")
	}
}

func TestTimeline_FillsWhileScrolling(t *testing.T) {
	app := runtime.NewApp(runtime.AppConfig{})
	vp := document(20, 200)
	tl := NewTimeline(DefaultContent().Timeline, DefaultTheme(), vp)
	tl.Bind(app.Services())
	defer tl.Unbind()

	height := tl.Measure(runtime.Constraints{MaxWidth: 80, MaxHeight: 1000}).Height
	tl.Layout(runtime.Rect{Y: 50, Width: 80, Height: height})
	if tl.Tracker().State() != scroll.Tracking {
		t.Fatalf("expected the timeline to track while bound")
	}
	if tl.Filled() != 0 {
		t.Fatalf("expected an empty bar before the section arrives")
	}

	// The section ends when its bottom crosses three quarters of the view.
	vp.SetOffset(0, 50+height-15)
	app.Driver().Settle(motion.DefaultFrame, 5000)
	if got := tl.Progress(); got != 1 {
		t.Fatalf("expected settled progress 1, got %v", got)
	}
	if got, want := tl.Filled(), height-timelineHeader; got != want {
		t.Fatalf("expected %d lit rows, got %d", want, got)
	}

	buf := runtime.NewBuffer(80, 200)
	tl.Render(runtime.RenderContext{Buffer: buf, Bounds: runtime.Rect{Width: 80, Height: 200}})
	if got := buf.Get(2, 50+tl.starts[0]).Rune; got != '●' {
		t.Fatalf("expected reached marker, got %q", got)
	}

	tl.Unbind()
	if tl.Tracker().State() != scroll.Idle || tl.Progress() != 0 {
		t.Fatalf("expected the tracker released on unbind")
	}
}

func TestAbout_RotatesRole(t *testing.T) {
	a := NewAbout(DefaultContent(), DefaultTheme())
	if a.Role() != "Visual Artist" {
		t.Fatalf("unexpected first role %q", a.Role())
	}
	if res := a.HandleMessage(runtime.CustomMsg{Value: rotateRole{}}); !res.Handled {
		t.Fatalf("expected rotation to be handled")
	}
	if a.Role() != "Designer" {
		t.Fatalf("expected second role, got %q", a.Role())
	}
	if res := a.HandleMessage(runtime.CustomMsg{Value: "other"}); res.Handled {
		t.Fatalf("expected unrelated messages to pass")
	}
	for i := 0; i < 5; i++ {
		a.HandleMessage(runtime.CustomMsg{Value: rotateRole{}})
	}
	if a.Role() != "Visual Artist" {
		t.Fatalf("expected roles to wrap, got %q", a.Role())
	}
}

func TestTestimonials_Wrap(t *testing.T) {
	ts := NewTestimonials(DefaultContent().Testimonials, DefaultTheme())
	ts.Prev()
	if ts.Index() != 3 {
		t.Fatalf("expected wrap to last quote, got %d", ts.Index())
	}
	if res := ts.HandleMessage(key(']')); !res.Handled || ts.Index() != 0 {
		t.Fatalf("expected ] to wrap to first quote, got %d", ts.Index())
	}
	if res := ts.HandleMessage(key('x')); res.Handled {
		t.Fatalf("expected other keys to pass")
	}

	height := ts.Measure(runtime.Constraints{MaxWidth: 60, MaxHeight: 100}).Height
	for i := 0; i < 4; i++ {
		ts.Next()
		if rows := len(ts.layoutRows(60)); rows > height {
			t.Fatalf("quote %d needs %d rows, measured %d", ts.Index(), rows, height)
		}
	}
}

func TestCursor_FollowsMouse(t *testing.T) {
	driver := motion.NewDriver()
	c, err := NewCursor(driver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Stop()

	if c.Visible() {
		t.Fatalf("expected hidden cursor before the first move")
	}
	c.MoveTo(10, 5)
	if x, y := c.Ring(); !c.Visible() || x != 10 || y != 5 {
		t.Fatalf("expected first move to place the cursor, ring at (%d,%d)", x, y)
	}

	c.MoveTo(30, 5)
	for i := 0; i < 3; i++ {
		driver.Step(motion.DefaultFrame)
	}
	dot, _ := c.Dot()
	ring, _ := c.Ring()
	if !(dot > ring && ring >= 10 && dot <= 30) {
		t.Fatalf("expected the dot to lead the ring, dot=%d ring=%d", dot, ring)
	}
	driver.Settle(motion.DefaultFrame, 5000)
	if x, y := c.Dot(); x != 30 || y != 5 {
		t.Fatalf("expected dot at rest on target, got (%d,%d)", x, y)
	}

	if _, err := NewCursor(nil); err == nil {
		t.Fatalf("expected an error without a driver")
	}
}

func TestNavbar_CondensesPastThreshold(t *testing.T) {
	app := runtime.NewApp(runtime.AppConfig{})
	vp := document(20, 200)
	nav := NewNavbar("SIMPSON.", DefaultTheme(), vp)
	nav.Bind(app.Services())
	defer nav.Unbind()
	nav.Layout(runtime.Rect{Width: 80, Height: 1})

	if nav.Condensed() {
		t.Fatalf("expected an expanded bar at the top")
	}
	vp.SetOffset(0, 3)
	if nav.Condensed() {
		t.Fatalf("expected %dpx to stay expanded", 3*RowPixels)
	}
	vp.SetOffset(0, 4)
	if !nav.Condensed() {
		t.Fatalf("expected %dpx to condense", 4*RowPixels)
	}

	buf := runtime.NewBuffer(80, 1)
	nav.Render(runtime.RenderContext{Buffer: buf, Bounds: runtime.Rect{Width: 80, Height: 1}})
	row := buf.Row(0)
	for _, want := range []string{"SIMPSON.", "WORKS", "ABOUT", "CHRONOLOGY", "VOICES", "☀"} {
		if !strings.Contains(row, want) {
			t.Fatalf("expected %q in the bar, got %q", want, row)
		}
	}

	vp.SetOffset(0, 0)
	if nav.Condensed() {
		t.Fatalf("expected the bar to expand again at the top")
	}
}

func TestNavbar_LinksAndToggle(t *testing.T) {
	nav := NewNavbar("SIMPSON.", DefaultTheme(), document(20, 200))
	nav.Layout(runtime.Rect{Y: 2, Width: 80, Height: 1})
	var jumps []SectionKind
	var asked []bool
	nav.OnJump(func(kind SectionKind) { jumps = append(jumps, kind) })
	nav.OnTheme(func(dark bool) { asked = append(asked, dark) })

	for _, l := range NavLinks {
		if res := nav.HandleMessage(key(l.Key)); !res.Handled {
			t.Fatalf("expected %q to jump", l.Key)
		}
	}
	for i, l := range NavLinks {
		if jumps[i] != l.Section {
			t.Fatalf("expected key %q to reach %s, got %s", l.Key, l.Section, jumps[i])
		}
	}
	if res := nav.HandleMessage(key('t')); !res.Handled || len(asked) != 1 || asked[0] {
		t.Fatalf("expected t to ask for the light theme, got %v", asked)
	}
	if res := nav.HandleMessage(key('x')); res.Handled {
		t.Fatalf("expected other keys to pass")
	}

	jumps = nil
	items, _ := nav.layout(80, false)
	click := func(x int) runtime.HandleResult {
		return nav.HandleMessage(runtime.MouseMsg{X: x, Y: 2, Button: terminal.MouseLeft, Action: terminal.MousePress})
	}
	if res := click(items[2].x + 1); !res.Handled || len(jumps) != 1 || jumps[0] != SectionAbout {
		t.Fatalf("expected a click on ABOUT to jump there, got %v", jumps)
	}
	if res := click(items[0].x); !res.Handled || jumps[1] != SectionHero {
		t.Fatalf("expected a click on the brand to return to the top, got %v", jumps)
	}
	if res := click(items[len(items)-1].x); !res.Handled || len(asked) != 2 {
		t.Fatalf("expected a click on the toggle to switch theme")
	}
	if res := click(items[1].x - 1); res.Handled {
		t.Fatalf("expected a click between labels to pass")
	}
	if res := nav.HandleMessage(runtime.MouseMsg{X: items[1].x, Y: 2, Action: terminal.MouseMove}); res.Handled {
		t.Fatalf("expected mouse moves to pass")
	}
	if res := nav.HandleMessage(runtime.MouseMsg{X: items[1].x, Y: 3, Button: terminal.MouseLeft, Action: terminal.MousePress}); res.Handled {
		t.Fatalf("expected clicks below the bar to pass")
	}
}

func steamAt(c *Coffee, at time.Time) runtime.HandleResult {
	return c.HandleMessage(runtime.CustomMsg{Value: steamTick{At: at}})
}

func TestCoffee_SteamLoops(t *testing.T) {
	app := runtime.NewApp(runtime.AppConfig{})
	c := NewCoffee(DefaultTheme(), document(20, 200))
	c.Bind(app.Services())
	defer c.Unbind()
	c.Layout(runtime.Rect{Y: 50, Width: 80, Height: coffeeHeight})

	start := fixedNow()
	if res := steamAt(c, start); !res.Handled {
		t.Fatalf("expected the steam tick to be handled")
	}
	for i := range Wisps {
		if rise, opacity := c.Steam(i); rise != 4 || opacity != 0 {
			t.Fatalf("expected wisp %d at its first frame, got rise=%v opacity=%v", i, rise, opacity)
		}
	}

	steamAt(c, start.Add(500*time.Millisecond))
	if rise, opacity := c.Steam(0); !near(rise, 11) || !near(opacity, 0.525) {
		t.Fatalf("expected the first wisp eased into its climb, got rise=%v opacity=%v", rise, opacity)
	}
	if _, opacity := c.Steam(1); !near(opacity, 0.8*easeOut(100.0/2200)/0.5) {
		t.Fatalf("expected the second wisp 100ms past its delay, got %v", opacity)
	}
	if rise, opacity := c.Steam(2); rise != 4 || opacity != 0 {
		t.Fatalf("expected the third wisp still waiting, got rise=%v opacity=%v", rise, opacity)
	}

	steamAt(c, start.Add(time.Second))
	if rise, opacity := c.Steam(0); !near(rise, 16) || !near(opacity, 0.3) {
		t.Fatalf("expected the first wisp fading past its peak, got rise=%v opacity=%v", rise, opacity)
	}
	steamAt(c, start.Add(2*time.Second))
	if rise, opacity := c.Steam(0); rise != 4 || opacity != 0 {
		t.Fatalf("expected the first wisp to loop, got rise=%v opacity=%v", rise, opacity)
	}

	if res := c.HandleMessage(runtime.CustomMsg{Value: rotateRole{}}); res.Handled {
		t.Fatalf("expected unrelated messages to pass")
	}
	if rise, opacity := NewCoffee(DefaultTheme(), nil).Steam(0); rise != 0 || opacity != 0 {
		t.Fatalf("expected no steam before binding")
	}
}

func TestCoffee_RevealsOnce(t *testing.T) {
	app := runtime.NewApp(runtime.AppConfig{})
	vp := document(20, 200)
	c := NewCoffee(DefaultTheme(), vp)
	c.Bind(app.Services())
	defer c.Unbind()
	c.Layout(runtime.Rect{Y: 50, Width: 80, Height: coffeeHeight})

	if c.Revealed() != 0 {
		t.Fatalf("expected the section hidden below the fold, got %v", c.Revealed())
	}
	// Progress runs from offset 30 (top at the view bottom) to 66.
	vp.SetOffset(0, 33)
	if got := c.Revealed(); !near(got, (3.0/36)/0.15) {
		t.Fatalf("expected a partial reveal, got %v", got)
	}
	vp.SetOffset(0, 40)
	if c.Revealed() != 1 {
		t.Fatalf("expected a full reveal, got %v", c.Revealed())
	}
	vp.SetOffset(0, 0)
	if c.Revealed() != 1 {
		t.Fatalf("expected the reveal to hold after scrolling away, got %v", c.Revealed())
	}

	buf := runtime.NewBuffer(80, 100)
	c.Render(runtime.RenderContext{Buffer: buf, Bounds: runtime.Rect{Width: 80, Height: 100}})
	if row := buf.Row(50 + coffeeCupTop); !strings.Contains(row, "┌─────┐") {
		t.Fatalf("expected the cup rim, got %q", row)
	}
	if row := buf.Row(50 + coffeeCupTop + 6); !strings.Contains(row, `"BETTER COFFEE`) {
		t.Fatalf("expected the mantra, got %q", row)
	}
	if row := buf.Row(50 + coffeeCupTop + 9); !strings.Contains(row, "STUDIO FUEL") {
		t.Fatalf("expected the label, got %q", row)
	}

	still := NewCoffee(DefaultTheme(), nil)
	still.Bind(app.Services())
	defer still.Unbind()
	if still.Revealed() != 1 {
		t.Fatalf("expected a section without scrolling to show at once")
	}
}
