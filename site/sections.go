package site

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-motion/backend"
	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/scroll"
	"github.com/odvcencio/furry-motion/widgets"
)

// SectionKind names a page section.
type SectionKind string

const (
	SectionHero         SectionKind = "hero"
	SectionAbout        SectionKind = "about"
	SectionTimeline     SectionKind = "timeline"
	SectionPortfolio    SectionKind = "portfolio"
	SectionFeatured     SectionKind = "featured"
	SectionTestimonials SectionKind = "testimonials"
	SectionCoffee       SectionKind = "coffee"
	SectionFooter       SectionKind = "footer"
)

// SectionOrder is the top to bottom page order.
var SectionOrder = []SectionKind{
	SectionHero,
	SectionAbout,
	SectionTimeline,
	SectionPortfolio,
	SectionFeatured,
	SectionTestimonials,
	SectionCoffee,
	SectionFooter,
}

// row is one styled line of a text section.
type row struct {
	X     int
	Text  string
	Style backend.Style
}

func wrapRows(text string, width, indent int, style backend.Style) []row {
	var out []row
	for _, line := range widgets.Wrap(text, max(1, width-indent)) {
		out = append(out, row{X: indent, Text: line, Style: style})
	}
	return out
}

func drawRows(ctx runtime.RenderContext, rows []row) {
	for y, r := range rows {
		if r.Text != "" {
			ctx.Text(r.X, y, r.Text, r.Style)
		}
	}
}

func centered(ctx runtime.RenderContext, y int, s string, style backend.Style) {
	x := max(0, (ctx.Bounds.Width-runewidth.StringWidth(s))/2)
	ctx.Text(x, y, s, style)
}

func sectionHeader(label, title string, theme Theme) []row {
	return []row{
		{X: 2, Text: strings.ToUpper(label), Style: theme.Accent},
		{X: 2, Text: title, Style: theme.Heading},
		{},
	}
}

// Hero is the full-height opening section. The name floats against the
// scroll direction.
type Hero struct {
	widgets.Component
	content Content
	theme   Theme
	src     scroll.Source
	float   *Parallax
}

// NewHero creates the hero section.
func NewHero(content Content, theme Theme, src scroll.Source) *Hero {
	return &Hero{content: content, theme: theme, src: src}
}

// Bind starts the parallax.
func (h *Hero) Bind(services runtime.Services) {
	h.Component.Bind(services)
	h.float = NewParallax(h.src, h, 3)
	h.Subs.AddStopper(h.float)
}

// Measure fills the viewport.
func (h *Hero) Measure(constraints runtime.Constraints) runtime.Size {
	height := 12
	if h.src != nil {
		height = max(height, int(h.src.ViewportHeight()))
	}
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: height})
}

// Layout re-measures the parallax.
func (h *Hero) Layout(bounds runtime.Rect) {
	h.Component.Layout(bounds)
	h.float.Update()
}

// Float returns the name's current parallax shift.
func (h *Hero) Float() int {
	return h.float.Offset()
}

// Render draws the hero.
func (h *Hero) Render(ctx runtime.RenderContext) {
	bounds := h.Bounds()
	if bounds.Empty() {
		return
	}
	sub := ctx.Sub(bounds)
	sub.Text(2, 1, "DESIGN PORTFOLIO", h.theme.Muted)
	sub.Text(max(0, bounds.Width-6), 1, "2025", h.theme.Muted)

	mid := bounds.Height/2 - 2
	centered(sub, mid, spaced(h.content.Title), h.theme.Heading)
	nameY := min(max(mid+2+h.Float(), mid+1), bounds.Height-3)
	centered(sub, nameY, h.content.Name, h.theme.Accent.With(backend.AttrItalic))
	centered(sub, mid+5, "── "+strings.ToUpper(h.content.Tagline)+" ──", h.theme.Muted)

	sub.Text(2, bounds.Height-2, "In.  Be.  Dr.", h.theme.Base)
	sub.Text(max(0, bounds.Width-10), bounds.Height-2, "scroll ↓", h.theme.Muted)
}

func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}

// RoleInterval is how long each role is shown.
const RoleInterval = 2500 * time.Millisecond

// About shows the biography and a rotating role.
type About struct {
	widgets.Component
	content Content
	theme   Theme
	role    int
	rows    []row
}

// NewAbout creates the about section.
func NewAbout(content Content, theme Theme) *About {
	return &About{content: content, theme: theme}
}

// Bind starts role rotation.
func (a *About) Bind(services runtime.Services) {
	a.Component.Bind(services)
	if len(a.content.Roles) > 1 {
		a.Subs.Add(services.SpawnScoped(runtime.Every(RoleInterval, func(time.Time) runtime.Message {
			return runtime.CustomMsg{Value: rotateRole{}}
		})))
	}
}

type rotateRole struct{}

func (a *About) layoutRows(width int) []row {
	rows := sectionHeader("About", "Material reality", a.theme)
	for _, p := range a.content.Bio {
		rows = append(rows, wrapRows(p, width-2, 2, a.theme.Base)...)
		rows = append(rows, row{})
	}
	rows = append(rows, row{X: 2, Text: "CURRENT ROLE", Style: a.theme.Muted})
	rows = append(rows, row{X: 2, Text: a.Role(), Style: a.theme.Accent.With(backend.AttrBold)})
	return append(rows, row{})
}

// Role returns the role on display.
func (a *About) Role() string {
	if len(a.content.Roles) == 0 {
		return ""
	}
	return a.content.Roles[a.role%len(a.content.Roles)]
}

// Measure returns the wrapped height.
func (a *About) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: len(a.layoutRows(constraints.MaxWidth))})
}

// Layout wraps the text.
func (a *About) Layout(bounds runtime.Rect) {
	a.Component.Layout(bounds)
	a.rows = a.layoutRows(bounds.Width)
}

// Render draws the section.
func (a *About) Render(ctx runtime.RenderContext) {
	drawRows(ctx.Sub(a.Bounds()), a.rows)
}

// HandleMessage rotates the role.
func (a *About) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if _, ok := customValue[rotateRole](msg); ok {
		a.role++
		a.rows = a.layoutRows(a.Bounds().Width)
		return runtime.Handled()
	}
	return runtime.Unhandled()
}

// FeaturedSection presents the featured collection.
type FeaturedSection struct {
	widgets.Component
	featured Featured
	theme    Theme
	src      scroll.Source
	float    *Parallax
	rows     []row
}

// NewFeatured creates the featured section.
func NewFeatured(featured Featured, theme Theme, src scroll.Source) *FeaturedSection {
	return &FeaturedSection{featured: featured, theme: theme, src: src}
}

// Bind starts the parallax.
func (f *FeaturedSection) Bind(services runtime.Services) {
	f.Component.Bind(services)
	f.float = NewParallax(f.src, f, 2)
	f.Subs.AddStopper(f.float)
}

func (f *FeaturedSection) layoutRows(width int) []row {
	rows := []row{{}, {X: 4, Text: f.featured.Title, Style: f.theme.Heading}, {}}
	rows = append(rows, wrapRows(f.featured.Description, width-4, 4, f.theme.Muted)...)
	rows = append(rows, row{})
	var stats []string
	for _, s := range f.featured.Stats {
		stats = append(stats, s.Value+" "+strings.ToUpper(s.Label))
	}
	rows = append(rows, row{X: 4, Text: strings.Join(stats, "   "), Style: f.theme.Accent})
	return append(rows, row{})
}

// Measure returns the boxed height.
func (f *FeaturedSection) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: len(f.layoutRows(constraints.MaxWidth)) + 3})
}

// Layout wraps the text and re-measures the parallax.
func (f *FeaturedSection) Layout(bounds runtime.Rect) {
	f.Component.Layout(bounds)
	f.rows = f.layoutRows(bounds.Width)
	f.float.Update()
}

// Render draws the boxed collection with a floating label.
func (f *FeaturedSection) Render(ctx runtime.RenderContext) {
	bounds := f.Bounds()
	if bounds.Height < 3 {
		return
	}
	box := runtime.Rect{X: bounds.X + 1, Y: bounds.Y + 1, Width: bounds.Width - 2, Height: bounds.Height - 2}
	ctx.Sub(box).Box(runtime.BoxRounded, f.theme.Border)
	drawRows(ctx.Sub(runtime.Rect{X: box.X, Y: box.Y, Width: box.Width - 1, Height: box.Height - 1}), f.rows)
	labelY := min(max(1+f.float.Offset(), 0), bounds.Height-1)
	ctx.Sub(bounds).Text(max(0, bounds.Width-14), labelY, " FEATURED ", f.theme.Select)
}

// Testimonials is a carousel of client quotes.
type Testimonials struct {
	widgets.Component
	items []Testimonial
	theme Theme
	index int
}

// NewTestimonials creates the carousel.
func NewTestimonials(items []Testimonial, theme Theme) *Testimonials {
	return &Testimonials{items: items, theme: theme}
}

// Index returns the quote on display.
func (t *Testimonials) Index() int { return t.index }

// Next and Prev move the carousel, wrapping at the ends.
func (t *Testimonials) Next() { t.move(1) }
func (t *Testimonials) Prev() { t.move(-1) }

func (t *Testimonials) move(delta int) {
	if n := len(t.items); n > 0 {
		t.index = ((t.index+delta)%n + n) % n
	}
}

func (t *Testimonials) layoutRows(width int) []row {
	rows := sectionHeader("Kind words", "Testimonials", t.theme)
	if len(t.items) == 0 {
		return rows
	}
	item := t.items[t.index]
	rows = append(rows, wrapRows("“"+item.Text+"”", width-4, 4, t.theme.Base.With(backend.AttrItalic))...)
	rows = append(rows, row{},
		row{X: 4, Text: "(" + item.Initials() + ") " + item.Author, Style: t.theme.Heading},
		row{X: 4, Text: item.Role, Style: t.theme.Muted},
		row{},
	)
	var dots strings.Builder
	for i := range t.items {
		if i == t.index {
			dots.WriteString("● ")
		} else {
			dots.WriteString("○ ")
		}
	}
	return append(rows, row{X: 4, Text: dots.String() + "  [ ]", Style: t.theme.Accent}, row{})
}

// Measure sizes the carousel for its longest quote so the page does not
// jump while cycling.
func (t *Testimonials) Measure(constraints runtime.Constraints) runtime.Size {
	height := 0
	current := t.index
	for i := range t.items {
		t.index = i
		height = max(height, len(t.layoutRows(constraints.MaxWidth)))
	}
	t.index = current
	if len(t.items) == 0 {
		height = len(t.layoutRows(constraints.MaxWidth))
	}
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: height})
}

// Render draws the current quote.
func (t *Testimonials) Render(ctx runtime.RenderContext) {
	drawRows(ctx.Sub(t.Bounds()), t.layoutRows(t.Bounds().Width))
}

// HandleMessage cycles on [ and ].
func (t *Testimonials) HandleMessage(msg runtime.Message) runtime.HandleResult {
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Unhandled()
	}
	switch {
	case key.IsRune(']'):
		t.Next()
	case key.IsRune('['):
		t.Prev()
	default:
		return runtime.Unhandled()
	}
	return runtime.Handled()
}

// NewFooter creates the closing contact block.
func NewFooter(content Content, theme Theme) runtime.Widget {
	text := widgets.NewText("Let's stitch together your next routine. · hello@simpson.studio · © 2025 "+content.Name, theme.Muted)
	text.SetAlignment(widgets.AlignCenter)
	return text
}
