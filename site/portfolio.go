package site

import (
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-motion/backend"
	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/scroll"
	"github.com/odvcencio/furry-motion/terminal"
	"github.com/odvcencio/furry-motion/widgets"
)

const (
	cardHeight      = 7
	cardMinWidth    = 26
	cardGap         = 1
	portfolioHeader = 4
	portfolioFooter = 2

	// ArchiveDelay is how long "load complete archive" warms up.
	ArchiveDelay = 400 * time.Millisecond
)

// ProjectView builds an overlay for a project. A nil widget opens nothing.
type ProjectView func(Project) runtime.Widget

// Portfolio is the filterable project grid.
type Portfolio struct {
	widgets.Component
	content  Content
	theme    Theme
	viewport *scroll.Viewport
	grid     *widgets.Grid

	filter   int
	showAll  bool
	loading  bool
	selected int
	visible  []Project

	examine  ProjectView
	discuss  ProjectView
	relayout func()
}

type archiveLoaded struct{}

// NewPortfolio creates the grid. viewport is scrolled to keep the
// selection visible.
func NewPortfolio(content Content, theme Theme, viewport *scroll.Viewport) *Portfolio {
	p := &Portfolio{
		content:  content,
		theme:    theme,
		viewport: viewport,
		grid:     widgets.NewGrid(1, cardHeight),
	}
	p.grid.Gap = cardGap
	p.rebuild()
	return p
}

// SetViews sets the overlays opened with d (examine) and enter (discuss).
func (p *Portfolio) SetViews(examine, discuss ProjectView) {
	p.examine, p.discuss = examine, discuss
}

// OnRelayout is called when the grid changes height.
func (p *Portfolio) OnRelayout(fn func()) {
	p.relayout = fn
}

// Filter returns the active category filter.
func (p *Portfolio) Filter() string {
	return Filters()[p.filter]
}

// SetFilter selects a category, or FilterAll.
func (p *Portfolio) SetFilter(category string) {
	for i, f := range Filters() {
		if f == category {
			p.filter = i
			p.rebuild()
			p.changed()
			return
		}
	}
}

// Visible returns the projects passing the filter.
func (p *Portfolio) Visible() []Project {
	return p.visible
}

// Loading reports whether the archive is warming up.
func (p *Portfolio) Loading() bool {
	return p.loading
}

// Selected returns the highlighted project.
func (p *Portfolio) Selected() (Project, bool) {
	if p.selected < 0 || p.selected >= len(p.visible) {
		return Project{}, false
	}
	return p.visible[p.selected], true
}

func (p *Portfolio) rebuild() {
	all := p.content.Projects
	if p.showAll {
		all = append(append([]Project(nil), all...), p.content.Archive...)
	}
	p.visible = FilterProjects(all, p.Filter())
	p.grid.Children = p.grid.Children[:0]
	for i, project := range p.visible {
		p.grid.Add(&card{project: project, theme: p.theme, selected: i == p.selected})
	}
	p.selected = min(max(p.selected, 0), max(len(p.visible)-1, 0))
	p.markSelection()
}

func (p *Portfolio) markSelection() {
	for i, child := range p.grid.Children {
		child.(*card).selected = i == p.selected
	}
}

func (p *Portfolio) changed() {
	if p.relayout != nil {
		p.relayout()
	}
}

// Measure sizes the header, grid and footer at the offered width.
func (p *Portfolio) Measure(constraints runtime.Constraints) runtime.Size {
	width := constraints.MaxWidth
	p.grid.Cols = max(1, (width-4+cardGap)/(cardMinWidth+cardGap))
	grid := p.grid.Measure(runtime.Constraints{MaxWidth: max(0, width-4), MaxHeight: constraints.MaxHeight})
	return constraints.Constrain(runtime.Size{Width: width, Height: portfolioHeader + grid.Height + portfolioFooter})
}

// Layout places the grid under the filter bar.
func (p *Portfolio) Layout(bounds runtime.Rect) {
	p.Component.Layout(bounds)
	p.grid.Cols = max(1, (bounds.Width-4+cardGap)/(cardMinWidth+cardGap))
	height := bounds.Height - portfolioHeader - portfolioFooter
	p.grid.Layout(runtime.Rect{X: bounds.X + 2, Y: bounds.Y + portfolioHeader, Width: max(0, bounds.Width-4), Height: max(0, height)})
}

// Render draws the filter bar, the cards and the archive button.
func (p *Portfolio) Render(ctx runtime.RenderContext) {
	bounds := p.Bounds()
	sub := ctx.Sub(bounds)
	drawRows(sub, sectionHeader("Selected work", "Portfolio", p.theme))
	x := 2
	for i, f := range Filters() {
		style := p.theme.Muted
		if i == p.filter {
			style = p.theme.Select
		}
		x += sub.Text(x, 2, " "+f+" ", style) + 1
	}
	p.grid.Render(ctx)

	footer := bounds.Height - 1
	switch {
	case p.loading:
		centered(sub, footer, "Warming Up...", p.theme.Muted)
	case !p.showAll:
		centered(sub, footer, "[m] Load Complete Archive", p.theme.Accent)
	}
}

// HandleMessage moves the selection, cycles filters, loads the archive and
// opens project overlays.
func (p *Portfolio) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch m := msg.(type) {
	case runtime.CustomMsg:
		if _, ok := m.Value.(archiveLoaded); ok {
			p.showAll, p.loading = true, false
			p.rebuild()
			p.changed()
			return runtime.Handled()
		}
	case runtime.KeyMsg:
		return p.handleKey(m)
	case runtime.MouseMsg:
		if m.Button != terminal.MouseLeft || m.Action != terminal.MousePress {
			return runtime.Unhandled()
		}
		idx := p.grid.CellAt(m.X, m.Y)
		if idx < 0 {
			return runtime.Unhandled()
		}
		if idx == p.selected {
			return p.open(p.examine)
		}
		p.selected = idx
		p.markSelection()
		return runtime.Handled()
	}
	return runtime.Unhandled()
}

func (p *Portfolio) handleKey(key runtime.KeyMsg) runtime.HandleResult {
	switch {
	case key.Key == terminal.KeyLeft || key.IsRune('h'):
		p.Select(p.selected - 1)
	case key.Key == terminal.KeyRight || key.IsRune('l'):
		p.Select(p.selected + 1)
	case key.IsRune('f'):
		p.filter = (p.filter + 1) % len(Filters())
		p.selected = 0
		p.rebuild()
		p.changed()
	case key.IsRune('m'):
		if p.showAll || p.loading {
			return runtime.Handled()
		}
		p.loading = true
		return runtime.WithCommand(runtime.After(ArchiveDelay, runtime.CustomMsg{Value: archiveLoaded{}}))
	case key.IsRune('d'):
		return p.open(p.examine)
	case key.Key == terminal.KeyEnter:
		return p.open(p.discuss)
	default:
		return runtime.Unhandled()
	}
	return runtime.Handled()
}

func (p *Portfolio) open(view ProjectView) runtime.HandleResult {
	project, ok := p.Selected()
	if !ok || view == nil {
		return runtime.Handled()
	}
	w := view(project)
	if w == nil {
		return runtime.Handled()
	}
	return runtime.WithCommand(runtime.PushOverlay{Widget: w, Modal: true})
}

// Select highlights project i and scrolls it into view.
func (p *Portfolio) Select(i int) {
	if len(p.visible) == 0 {
		return
	}
	p.selected = min(max(i, 0), len(p.visible)-1)
	p.markSelection()
	p.reveal(p.grid.Children[p.selected].(*card).Bounds())
}

func (p *Portfolio) reveal(r runtime.Rect) {
	if p.viewport == nil || r.Empty() {
		return
	}
	top := p.viewport.Offset().Y
	view := p.viewport.ViewSize().Height
	switch {
	case r.Y < top:
		p.viewport.ScrollTo(0, r.Y)
	case r.Y+r.Height > top+view:
		p.viewport.ScrollTo(0, r.Y+r.Height-view)
	}
}

// card is one project tile.
type card struct {
	widgets.Base
	project  Project
	theme    Theme
	selected bool
}

func (c *card) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: cardHeight})
}

func (c *card) Render(ctx runtime.RenderContext) {
	bounds := c.Bounds()
	if bounds.Width < 4 || bounds.Height < 3 {
		return
	}
	sub := ctx.Sub(bounds)
	border := c.theme.Border
	if c.selected {
		border = c.theme.Accent
	}
	sub.Box(runtime.BoxRounded, border)
	inner := bounds.Width - 4
	title := c.theme.Heading
	if c.selected {
		title = title.Foreground(backend.FromColorful(colorBlue))
	}
	sub.Text(2, 1, runewidth.Truncate(c.project.Title, inner, "…"), title)
	sub.Text(2, 2, runewidth.Truncate(c.project.Category+" · "+c.project.Year, inner, "…"), c.theme.Muted)
	for i, line := range widgets.Wrap(c.project.Description, inner) {
		if 3+i >= bounds.Height-1 {
			break
		}
		sub.Text(2, 3+i, line, c.theme.Base)
	}
	if c.selected && bounds.Width > 14 {
		sub.Text(bounds.Width-13, bounds.Height-1, " Examine ↗ ", c.theme.Select)
	}
}
