package site

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/odvcencio/furry-motion/backend"
	"github.com/odvcencio/furry-motion/chat"
	"github.com/odvcencio/furry-motion/comments"
	"github.com/odvcencio/furry-motion/motion"
	"github.com/odvcencio/furry-motion/pencil"
	"github.com/odvcencio/furry-motion/registry"
	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/scroll"
	"github.com/odvcencio/furry-motion/state"
	"github.com/odvcencio/furry-motion/terminal"
	"github.com/odvcencio/furry-motion/widgets"
)

const (
	// RowPixels converts page rows into pencil path units.
	RowPixels = 16
	// gutterWidth is the pencil column, shown on terminals at least
	// gutterMinWidth wide.
	gutterWidth    = 4
	gutterMinWidth = 40
)

// Config assembles a Page.
type Config struct {
	Content  Content
	Theme    Theme
	Comments comments.Store
	Coach    *chat.Coach
	// Pencil smooths the gutter line; zero uses pencil.LineSpring.
	Pencil motion.SpringConfig
	Logger *zap.Logger
}

// Page is the scrolling portfolio: every section in one scroll view under
// the navigation bar, the pencil gutter beside it and a status bar below.
type Page struct {
	widgets.Component
	cfg      Config
	dark     Theme
	light    Theme
	stack    *widgets.VStack
	view     *widgets.ScrollView
	nav      *Navbar
	sections *registry.Memo[SectionKind, runtime.Widget]
	tracker  *scroll.Tracker
	conv     *chat.Conversation

	progress state.Readable[float64]
	line     *pencil.Line
	cursor   *Cursor
	gutter   runtime.Rect
	status   runtime.Rect
}

// NewPage builds the page and its sections.
func NewPage(cfg Config) *Page {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Pencil == (motion.SpringConfig{}) {
		cfg.Pencil = pencil.LineSpring
	}
	if cfg.Coach == nil {
		cfg.Coach = chat.NewCoach(nil, cfg.Logger)
	}
	p := &Page{cfg: cfg, stack: widgets.NewVStack(), dark: DefaultTheme(), light: LightTheme()}
	if cfg.Theme.Dark {
		p.dark = cfg.Theme
	} else {
		p.light = cfg.Theme
	}
	p.view = widgets.NewScrollView(p.stack)
	p.view.SetStyle(cfg.Theme.Base)
	p.nav = NewNavbar(brandName(cfg.Content.Name), cfg.Theme, p.view.Viewport())
	p.nav.OnJump(p.Jump)
	p.nav.OnTheme(func(dark bool) {
		if dark {
			p.SetTheme(p.dark)
		} else {
			p.SetTheme(p.light)
		}
	})
	p.tracker = scroll.NewTracker(p.view.Viewport())
	p.conv = chat.NewConversation(cfg.Coach)
	p.sections = registry.NewMemo(p.build)
	for _, kind := range SectionOrder {
		p.stack.Add(p.sections.Get(kind))
	}
	return p
}

func (p *Page) build(kind SectionKind) runtime.Widget {
	src := p.view.Viewport()
	c, theme := p.cfg.Content, p.cfg.Theme
	switch kind {
	case SectionHero:
		return NewHero(c, theme, src)
	case SectionAbout:
		return NewAbout(c, theme)
	case SectionTimeline:
		return NewTimeline(c.Timeline, theme, src)
	case SectionPortfolio:
		portfolio := NewPortfolio(c, theme, src)
		portfolio.SetViews(p.examine, p.discuss)
		portfolio.OnRelayout(p.view.Relayout)
		return portfolio
	case SectionFeatured:
		return NewFeatured(c.Featured, theme, src)
	case SectionTestimonials:
		return NewTestimonials(c.Testimonials, theme)
	case SectionCoffee:
		return NewCoffee(theme, src)
	case SectionFooter:
		return NewFooter(c, theme)
	}
	panic(fmt.Sprintf("site: unknown section %q", kind))
}

func (p *Page) examine(project Project) runtime.Widget {
	return NewDeconstruction(project, p.cfg.Content.Process, p.cfg.Theme)
}

func (p *Page) discuss(project Project) runtime.Widget {
	panel, err := OpenCommentsPanel(context.Background(), comments.BoardConfig{
		Store:  p.cfg.Comments,
		Logger: p.cfg.Logger,
	}, project, p.cfg.Theme)
	if err != nil {
		p.cfg.Logger.Warn("open comments", zap.Int("project", project.ID), zap.Error(err))
		return nil
	}
	return panel
}

// brandName is the surname in capitals with a full stop.
func brandName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[len(fields)-1]) + "."
}

// Section returns the widget of kind.
func (p *Page) Section(kind SectionKind) runtime.Widget {
	return p.sections.Get(kind)
}

// View returns the page scroll view.
func (p *Page) View() *widgets.ScrollView {
	return p.view
}

// Tracker returns the document progress tracker.
func (p *Page) Tracker() *scroll.Tracker {
	return p.tracker
}

// Navbar returns the navigation bar.
func (p *Page) Navbar() *Navbar {
	return p.nav
}

// Theme returns the theme in use.
func (p *Page) Theme() Theme {
	return p.cfg.Theme
}

// Jump scrolls kind's section to the top of the view, leaving its first
// row clear of the navigation bar.
func (p *Page) Jump(kind SectionKind) {
	section, ok := p.sections.Get(kind).(runtime.BoundsProvider)
	if !ok {
		return
	}
	p.view.ScrollTo(0, max(0, section.Bounds().Y-1))
}

// SetTheme restyles the page. Sections are rebuilt with theme and rebound;
// the scroll position is kept.
func (p *Page) SetTheme(theme Theme) {
	p.cfg.Theme = theme
	p.view.SetStyle(theme.Base)
	p.nav.SetTheme(theme)

	bound := p.progress != nil
	offset := p.view.Viewport().Offset()
	if bound {
		runtime.UnmountTree(p.stack)
		runtime.UnbindTree(p.stack)
	}
	p.sections.Reset()
	p.stack.Children = nil
	for _, kind := range SectionOrder {
		p.stack.Add(p.sections.Get(kind))
	}
	if bound {
		runtime.BindTree(p.stack, p.Services)
		runtime.MountTree(p.stack)
	}
	if !p.Bounds().Empty() {
		p.Layout(p.Bounds())
		p.view.ScrollTo(offset.X, offset.Y)
	}
	p.cfg.Logger.Debug("theme changed", zap.Bool("dark", theme.Dark))
	p.Invalidate()
}

// Conversation returns the assistant transcript.
func (p *Page) Conversation() *chat.Conversation {
	return p.conv
}

// Line returns the pencil line, or nil while unbound.
func (p *Page) Line() *pencil.Line {
	return p.line
}

// Cursor returns the mouse follower, or nil while unbound.
func (p *Page) Cursor() *Cursor {
	return p.cursor
}

// Progress returns raw document progress in [0, 1].
func (p *Page) Progress() float64 {
	if p.progress == nil {
		return 0
	}
	return p.progress.Get()
}

// Bind starts document tracking, the pencil and the cursor.
func (p *Page) Bind(services runtime.Services) {
	p.Component.Bind(services)
	progress, release := p.tracker.Acquire()
	p.progress = progress
	p.Subs.Add(release)

	driver := services.Driver()
	line, err := pencil.NewLineWithSpring(driver, progress, p.docHeight(), p.cfg.Pencil)
	if err != nil {
		p.cfg.Logger.Warn("pencil line", zap.Error(err))
	} else {
		p.line = line
		p.Subs.AddStopper(line)
	}
	cursor, err := NewCursor(driver)
	if err != nil {
		p.cfg.Logger.Warn("cursor", zap.Error(err))
	} else {
		p.cursor = cursor
		p.Subs.AddStopper(cursor)
	}
}

// Unbind stops the page animations.
func (p *Page) Unbind() {
	p.Component.Unbind()
	p.progress = nil
	p.line = nil
	p.cursor = nil
}

func (p *Page) docHeight() float64 {
	return p.view.Viewport().DocumentHeight() * RowPixels
}

// Measure fills the screen.
func (p *Page) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: constraints.MaxHeight})
}

// Layout splits the screen into gutter, view and status bar. The pencil
// is re-measured here and again at render time, after content relayouts.
func (p *Page) Layout(bounds runtime.Rect) {
	p.Component.Layout(bounds)
	body := runtime.Rect{X: bounds.X, Y: bounds.Y, Width: bounds.Width, Height: max(0, bounds.Height-1)}
	p.status = runtime.Rect{X: bounds.X, Y: bounds.Y + body.Height, Width: bounds.Width, Height: min(1, bounds.Height)}
	p.gutter = runtime.Rect{}
	if bounds.Width >= gutterMinWidth {
		p.gutter = runtime.Rect{X: body.X, Y: body.Y, Width: gutterWidth, Height: body.Height}
		body.X += gutterWidth
		body.Width -= gutterWidth
	}
	p.view.Layout(body)
	p.nav.Layout(runtime.Rect{X: body.X, Y: body.Y, Width: body.Width, Height: min(1, body.Height)})
	p.line.SetDocHeight(p.docHeight())
}

// Render draws the page, the gutter, the status bar and the cursor.
func (p *Page) Render(ctx runtime.RenderContext) {
	bounds := p.Bounds()
	ctx.Sub(bounds).Clear(p.cfg.Theme.Base)
	if h := p.docHeight(); p.line != nil && p.line.DocHeight() != h {
		p.line.SetDocHeight(h)
	}
	p.view.Render(ctx)
	p.nav.Render(ctx)
	p.renderGutter(ctx)
	p.renderStatus(ctx)
	p.cursor.Render(ctx.Sub(bounds), p.cfg.Theme)
}

// renderGutter draws the visible stretch of the pencil path. Rows above the
// tip are inked; the tip glyph leans with the path.
func (p *Page) renderGutter(ctx runtime.RenderContext) {
	if p.gutter.Empty() || p.line == nil {
		return
	}
	sub := ctx.Sub(p.gutter)
	top := p.view.Viewport().Offset().Y
	tip := p.line.Tip()
	tipRow := int(tip.Y/RowPixels) - top
	for y := 0; y < p.gutter.Height; y++ {
		docY := float64(top+y) * RowPixels
		x := gutterColumn(pencil.TipX(docY), p.gutter.Width)
		switch {
		case y == tipRow:
			sub.Set(gutterColumn(tip.X, p.gutter.Width), y, tipGlyph(p.line.Rotation().Get()), p.cfg.Theme.Accent)
		case docY <= tip.Y:
			sub.Set(x, y, '│', p.cfg.Theme.Heading)
		default:
			sub.Set(x, y, '┊', p.cfg.Theme.Border)
		}
	}
}

// gutterColumn maps a path x onto the gutter's columns.
func gutterColumn(x float64, width int) int {
	lo, hi := pencil.StartX-pencil.Amplitude, pencil.StartX+pencil.Amplitude
	t := clampUnit((x - lo) / (hi - lo))
	return round(t * float64(width-1))
}

func tipGlyph(rotation float64) rune {
	switch {
	case rotation > 5:
		return '╲'
	case rotation < -5:
		return '╱'
	}
	return '✎'
}

func (p *Page) renderStatus(ctx runtime.RenderContext) {
	if p.status.Empty() {
		return
	}
	sub := ctx.Sub(p.status)
	sub.Clear(p.cfg.Theme.Muted.With(backend.AttrReverse))
	left := fmt.Sprintf(" %s · %3.0f%%", p.cfg.Content.Name, p.Progress()*100)
	sub.Text(0, 0, left, p.cfg.Theme.Muted.With(backend.AttrReverse))
	hint := "[1-4] jump [t] theme [c] chat [f] filter [d] examine [enter] discuss [q] quit "
	sub.Text(max(0, p.status.Width-len(hint)), 0, hint, p.cfg.Theme.Muted.With(backend.AttrReverse))
}

// HandleMessage tracks the mouse, opens the assistant and quits. The
// navigation bar sees the rest before the sections.
func (p *Page) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch m := msg.(type) {
	case runtime.MouseMsg:
		p.cursor.MoveTo(m.X, m.Y)
	case runtime.KeyMsg:
		switch {
		case m.Key == terminal.KeyCtrlC || m.IsRune('q'):
			return runtime.WithCommand(runtime.Quit{})
		case m.IsRune('c'):
			return runtime.WithCommand(runtime.PushOverlay{Widget: NewChatPanel(p.conv, p.cfg.Theme), Modal: true})
		}
	}
	if res := p.nav.HandleMessage(msg); res.Handled {
		return res
	}
	return p.view.HandleMessage(msg)
}

// ChildWidgets returns the scroll view and the navigation bar.
func (p *Page) ChildWidgets() []runtime.Widget {
	return []runtime.Widget{p.view, p.nav}
}

// customValue unwraps an application message carried by runtime.CustomMsg.
func customValue[T any](msg runtime.Message) (T, bool) {
	m, ok := msg.(runtime.CustomMsg)
	if !ok {
		var zero T
		return zero, false
	}
	v, ok := m.Value.(T)
	return v, ok
}
