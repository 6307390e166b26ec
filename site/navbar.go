package site

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-motion/backend"
	"github.com/odvcencio/furry-motion/motion"
	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/scroll"
	"github.com/odvcencio/furry-motion/state"
	"github.com/odvcencio/furry-motion/terminal"
	"github.com/odvcencio/furry-motion/widgets"
)

// CondenseAfter is the scroll distance, in pixels, past which the
// navigation bar condenses into a pill.
const CondenseAfter = 50

// NavLink jumps to a section.
type NavLink struct {
	Label   string
	Section SectionKind
	Key     rune
}

// NavLinks are the bar's jump targets, left to right.
var NavLinks = []NavLink{
	{Label: "Works", Section: SectionPortfolio, Key: '1'},
	{Label: "About", Section: SectionAbout, Key: '2'},
	{Label: "Chronology", Section: SectionTimeline, Key: '3'},
	{Label: "Voices", Section: SectionTestimonials, Key: '4'},
}

const (
	navBrand  = -1
	navToggle = -2
)

// navItem is one clickable label; link indexes NavLinks or is navBrand or
// navToggle.
type navItem struct {
	x    int
	text string
	link int
}

func (it navItem) contains(x int) bool {
	return x >= it.x && x < it.x+runewidth.StringWidth(it.text)
}

// Navbar is the one-row bar drawn over the top of the page. It condenses
// once the page has scrolled past CondenseAfter.
type Navbar struct {
	widgets.Component
	brand     string
	theme     Theme
	src       scroll.Source
	offset    *state.Signal[float64]
	condensed *motion.Derived[bool]
	onJump    func(SectionKind)
	onTheme   func(dark bool)
}

// NewNavbar creates a bar for the page scrolled by src.
func NewNavbar(brand string, theme Theme, src scroll.Source) *Navbar {
	return &Navbar{brand: brand, theme: theme, src: src}
}

// OnJump sets the handler for link presses.
func (n *Navbar) OnJump(fn func(SectionKind)) {
	n.onJump = fn
}

// OnTheme sets the handler for the theme toggle. It receives whether the
// dark theme was requested.
func (n *Navbar) OnTheme(fn func(dark bool)) {
	n.onTheme = fn
}

// SetTheme restyles the bar.
func (n *Navbar) SetTheme(theme Theme) {
	n.theme = theme
	n.Invalidate()
}

// Dark reports whether the bar shows the dark theme.
func (n *Navbar) Dark() bool {
	return n.theme.Dark
}

// Bind follows the scroll offset.
func (n *Navbar) Bind(services runtime.Services) {
	n.Component.Bind(services)
	n.offset = state.NewSignal(n.scrolled())
	if n.src != nil {
		n.Subs.Add(n.src.OnChange(func() { n.offset.Set(n.scrolled()) }))
	}
	n.condensed = motion.Transform[float64, bool](n.offset, func(y float64) bool { return y > CondenseAfter })
	n.Subs.AddStopper(n.condensed)
	n.Redraw(n.condensed)
}

// Unbind stops following the scroll offset.
func (n *Navbar) Unbind() {
	n.Component.Unbind()
	n.condensed = nil
}

func (n *Navbar) scrolled() float64 {
	if n.src == nil {
		return 0
	}
	return n.src.ScrollOffset() * RowPixels
}

// Condensed reports whether the bar is in its scrolled state.
func (n *Navbar) Condensed() bool {
	if n.condensed == nil {
		return n.scrolled() > CondenseAfter
	}
	return n.condensed.Get()
}

// Toggle asks for the other theme.
func (n *Navbar) Toggle() {
	if n.onTheme != nil {
		n.onTheme(!n.theme.Dark)
	}
}

func (n *Navbar) jump(kind SectionKind) {
	if n.onJump != nil {
		n.onJump(kind)
	}
}

// layout places the labels for width and returns the pill behind them,
// which is empty unless condensed.
func (n *Navbar) layout(width int, condensed bool) ([]navItem, runtime.Rect) {
	toggle := "☾"
	if n.theme.Dark {
		toggle = "☀"
	}
	items := []navItem{{text: n.brand, link: navBrand}}
	linksWidth := 0
	for i, l := range NavLinks {
		items = append(items, navItem{text: strings.ToUpper(l.Label), link: i})
		linksWidth += runewidth.StringWidth(l.Label)
	}
	linksWidth += 2 * (len(NavLinks) - 1)
	items = append(items, navItem{text: toggle, link: navToggle})
	brandWidth := runewidth.StringWidth(n.brand)

	if condensed {
		total := brandWidth + 3 + linksWidth + 3 + runewidth.StringWidth(toggle)
		x := max(2, (width-total)/2)
		pill := runtime.Rect{X: x - 2, Width: total + 4, Height: 1}
		for i := range items {
			items[i].x = x
			gap := 2
			if i == 0 || i == len(items)-2 {
				gap = 3
			}
			x += runewidth.StringWidth(items[i].text) + gap
		}
		return items, pill
	}

	items[0].x = 1
	x := max(brandWidth+3, (width-linksWidth)/2)
	for i := 1; i < len(items)-1; i++ {
		items[i].x = x
		x += runewidth.StringWidth(items[i].text) + 2
	}
	items[len(items)-1].x = max(x+1, width-2)
	return items, runtime.Rect{}
}

// Measure is one row.
func (n *Navbar) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: 1})
}

// Render draws the bar.
func (n *Navbar) Render(ctx runtime.RenderContext) {
	bounds := n.Bounds()
	if bounds.Empty() {
		return
	}
	sub := ctx.Sub(bounds)
	sub.Clear(n.theme.Base)
	condensed := n.Condensed()
	items, pill := n.layout(bounds.Width, condensed)
	styled := func(s backend.Style) backend.Style { return s }
	if condensed {
		bg := backend.FromColorful(n.theme.fade(n.theme.Ink, 0.12))
		styled = func(s backend.Style) backend.Style { return s.Background(bg) }
		sub.Fill(pill, ' ', styled(n.theme.Base))
	}
	for _, it := range items {
		style := n.theme.Base
		switch it.link {
		case navBrand:
			style = n.theme.Heading
		case navToggle:
			style = n.theme.Accent
		}
		sub.Text(it.x, 0, it.text, styled(style))
	}
}

// HandleMessage follows link keys and clicks, and toggles the theme.
func (n *Navbar) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch m := msg.(type) {
	case runtime.KeyMsg:
		if m.IsRune('t') {
			n.Toggle()
			return runtime.Handled()
		}
		for _, l := range NavLinks {
			if m.IsRune(l.Key) {
				n.jump(l.Section)
				return runtime.Handled()
			}
		}
	case runtime.MouseMsg:
		bounds := n.Bounds()
		if m.Action != terminal.MousePress || m.Button != terminal.MouseLeft || !bounds.Contains(m.X, m.Y) {
			return runtime.Unhandled()
		}
		items, _ := n.layout(bounds.Width, n.Condensed())
		for _, it := range items {
			if !it.contains(m.X - bounds.X) {
				continue
			}
			switch it.link {
			case navBrand:
				n.jump(SectionHero)
			case navToggle:
				n.Toggle()
			default:
				n.jump(NavLinks[it.link].Section)
			}
			return runtime.Handled()
		}
	}
	return runtime.Unhandled()
}
