package widgets

import (
	"github.com/odvcencio/furry-motion/backend"
	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/scroll"
	"github.com/odvcencio/furry-motion/terminal"
)

// ScrollView shows a vertical window onto taller content. Its viewport is
// a scroll.Source, so progress trackers can follow it.
type ScrollView struct {
	Component
	content   runtime.Widget
	viewport  *scroll.Viewport
	wheel     int
	style     backend.Style
	track     backend.Style
	thumb     backend.Style
	scrollbar bool
	childBuf  *runtime.Buffer
}

// NewScrollView creates a scroll view for content.
func NewScrollView(content runtime.Widget) *ScrollView {
	return &ScrollView{
		content:   content,
		viewport:  scroll.NewViewport(),
		wheel:     3,
		style:     backend.DefaultStyle(),
		track:     backend.DefaultStyle().With(backend.AttrDim),
		thumb:     backend.DefaultStyle().With(backend.AttrReverse),
		scrollbar: true,
	}
}

// Viewport returns the scroll position source.
func (s *ScrollView) Viewport() *scroll.Viewport {
	return s.viewport
}

// SetScrollbar shows or hides the scrollbar column.
func (s *ScrollView) SetScrollbar(show bool) {
	s.scrollbar = show
}

// SetStyle sets the background style.
func (s *ScrollView) SetStyle(style backend.Style) {
	s.style = style
}

// Bind attaches services and redraws on every scroll.
func (s *ScrollView) Bind(services runtime.Services) {
	s.Component.Bind(services)
	s.Subs.Add(s.viewport.OnChange(s.Invalidate))
}

// Measure fills the offered space.
func (s *ScrollView) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: constraints.MaxHeight})
}

// Layout sizes the viewport and lays the content out in content space,
// starting at (0, 0).
func (s *ScrollView) Layout(bounds runtime.Rect) {
	s.Component.Layout(bounds)
	s.Relayout()
}

// Relayout re-measures the content, for example after it grew.
func (s *ScrollView) Relayout() {
	bounds := s.bounds
	width := s.contentWidth()
	s.viewport.SetViewSize(runtime.Size{Width: width, Height: bounds.Height})
	if s.content == nil {
		s.viewport.SetContentSize(runtime.Size{})
		return
	}
	size := s.content.Measure(runtime.Constraints{MinWidth: width, MaxWidth: width, MaxHeight: int(^uint(0) >> 1)})
	s.viewport.SetContentSize(size)
	s.content.Layout(runtime.Rect{Width: width, Height: size.Height})
}

func (s *ScrollView) contentWidth() int {
	if s.scrollbar {
		return max(0, s.bounds.Width-1)
	}
	return s.bounds.Width
}

// Render draws the visible part of the content.
func (s *ScrollView) Render(ctx runtime.RenderContext) {
	bounds := s.bounds
	if bounds.Empty() {
		return
	}
	ctx.Buffer.Fill(bounds, ' ', s.style)
	content := s.viewport.ContentSize()
	if s.content != nil && !(runtime.Rect{Width: content.Width, Height: content.Height}).Empty() {
		s.renderContent(ctx, content)
	}
	if s.scrollbar {
		s.drawScrollbar(ctx)
	}
}

func (s *ScrollView) renderContent(ctx runtime.RenderContext, content runtime.Size) {
	if s.childBuf == nil {
		s.childBuf = runtime.NewBuffer(content.Width, content.Height)
	} else {
		s.childBuf.Resize(content.Width, content.Height)
	}
	s.childBuf.Clear()
	s.content.Render(runtime.RenderContext{
		Buffer:  s.childBuf,
		Focused: ctx.Focused,
		Bounds:  runtime.Rect{Width: content.Width, Height: content.Height},
	})

	offset := s.viewport.Offset()
	bounds := s.bounds
	for y := 0; y < bounds.Height; y++ {
		srcY := y + offset.Y
		if srcY >= content.Height {
			break
		}
		for x := 0; x < min(content.Width, s.contentWidth()); x++ {
			cell := s.childBuf.Get(x+offset.X, srcY)
			ctx.Buffer.Set(bounds.X+x, bounds.Y+y, cell.Rune, cell.Style)
		}
	}
}

func (s *ScrollView) drawScrollbar(ctx runtime.RenderContext) {
	bounds := s.bounds
	x := bounds.X + bounds.Width - 1
	for y := bounds.Y; y < bounds.Y+bounds.Height; y++ {
		ctx.Buffer.Set(x, y, '│', s.track)
	}
	content := s.viewport.ContentSize()
	view := s.viewport.ViewSize()
	if content.Height <= view.Height || view.Height <= 0 {
		return
	}
	thumb := min(view.Height, max(1, view.Height*view.Height/content.Height))
	start := 0
	if limit := content.Height - view.Height; limit > 0 {
		start = s.viewport.Offset().Y * (view.Height - thumb) / limit
	}
	for i := 0; i < thumb; i++ {
		ctx.Buffer.Set(x, bounds.Y+start+i, '┃', s.thumb)
	}
}

// HandleMessage offers msg to the content, then scrolls on navigation keys
// and the mouse wheel.
func (s *ScrollView) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if inner := s.toContent(msg); s.content != nil && inner != nil {
		if result := s.content.HandleMessage(inner); result.Handled {
			return result
		}
	}
	switch ev := msg.(type) {
	case runtime.KeyMsg:
		switch {
		case ev.Key == terminal.KeyUp || ev.IsRune('k'):
			s.ScrollBy(0, -1)
		case ev.Key == terminal.KeyDown || ev.IsRune('j'):
			s.ScrollBy(0, 1)
		case ev.Key == terminal.KeyPageUp:
			s.PageBy(-1)
		case ev.Key == terminal.KeyPageDown || ev.IsRune(' '):
			s.PageBy(1)
		case ev.Key == terminal.KeyHome || ev.IsRune('g'):
			s.ScrollToStart()
		case ev.Key == terminal.KeyEnd || ev.IsRune('G'):
			s.ScrollToEnd()
		default:
			return runtime.Unhandled()
		}
		return runtime.Handled()
	case runtime.MouseMsg:
		if !s.bounds.Contains(ev.X, ev.Y) {
			return runtime.Unhandled()
		}
		switch ev.Button {
		case terminal.MouseWheelUp:
			s.ScrollBy(0, -s.wheel)
			return runtime.Handled()
		case terminal.MouseWheelDown:
			s.ScrollBy(0, s.wheel)
			return runtime.Handled()
		}
	}
	return runtime.Unhandled()
}

// toContent translates mouse positions inside the view into content
// coordinates. Mouse events outside the view are not offered to the
// content at all.
func (s *ScrollView) toContent(msg runtime.Message) runtime.Message {
	ev, ok := msg.(runtime.MouseMsg)
	if !ok {
		return msg
	}
	if !s.bounds.Contains(ev.X, ev.Y) {
		return nil
	}
	offset := s.viewport.Offset()
	ev.X += offset.X - s.bounds.X
	ev.Y += offset.Y - s.bounds.Y
	return ev
}

// ChildWidgets returns the content widget.
func (s *ScrollView) ChildWidgets() []runtime.Widget {
	if s.content == nil {
		return nil
	}
	return []runtime.Widget{s.content}
}

func (s *ScrollView) ScrollBy(dx, dy int) { s.viewport.ScrollBy(dx, dy) }
func (s *ScrollView) ScrollTo(x, y int)   { s.viewport.ScrollTo(x, y) }
func (s *ScrollView) PageBy(pages int)    { s.viewport.PageBy(pages) }
func (s *ScrollView) ScrollToStart()      { s.viewport.ScrollToStart() }
func (s *ScrollView) ScrollToEnd()        { s.viewport.ScrollToEnd() }

var _ scroll.Controller = (*ScrollView)(nil)
