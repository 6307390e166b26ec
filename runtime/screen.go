package runtime

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-motion/backend"
)

// Layer is one entry in the overlay stack.
type Layer struct {
	Root  Widget
	Modal bool // blocks input to layers below
}

// Screen owns the layer stack and the buffer they render into.
type Screen struct {
	width, height int
	layers        []*Layer
	buffer        *Buffer
	services      Services
}

// NewScreen creates a screen with the given dimensions.
func NewScreen(w, h int) *Screen {
	return &Screen{
		width:  w,
		height: h,
		buffer: NewBuffer(w, h),
	}
}

// SetServices configures app services handed to bindable widgets.
func (s *Screen) SetServices(services Services) {
	s.services = services
}

// Size returns the screen dimensions.
func (s *Screen) Size() (w, h int) {
	return s.width, s.height
}

// Bounds returns the full-screen rectangle.
func (s *Screen) Bounds() Rect {
	return Rect{Width: s.width, Height: s.height}
}

// Resize changes the dimensions and re-lays out every layer.
func (s *Screen) Resize(w, h int) {
	s.width, s.height = w, h
	s.buffer.Resize(w, h)
	for _, layer := range s.layers {
		if layer.Root != nil {
			layer.Root.Layout(s.Bounds())
		}
	}
}

// Buffer returns the render buffer.
func (s *Screen) Buffer() *Buffer {
	return s.buffer
}

// SetRoot replaces the base layer's root, detaching the previous one.
func (s *Screen) SetRoot(root Widget) {
	if len(s.layers) == 0 {
		s.layers = append(s.layers, &Layer{})
	}
	if old := s.layers[0].Root; old != nil {
		detach(old)
	}
	s.layers[0].Root = root
	s.attach(root)
}

// Root returns the base layer's root widget.
func (s *Screen) Root() Widget {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[0].Root
}

// PushLayer adds an overlay. A modal overlay swallows all input.
func (s *Screen) PushLayer(root Widget, modal bool) {
	s.layers = append(s.layers, &Layer{Root: root, Modal: modal})
	s.attach(root)
}

// PopLayer removes the top overlay. The base layer cannot be popped.
func (s *Screen) PopLayer() bool {
	if len(s.layers) <= 1 {
		return false
	}
	top := s.layers[len(s.layers)-1]
	s.layers = s.layers[:len(s.layers)-1]
	if top.Root != nil {
		detach(top.Root)
	}
	return true
}

// TopLayer returns the topmost layer.
func (s *Screen) TopLayer() *Layer {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[len(s.layers)-1]
}

// LayerCount returns the number of layers.
func (s *Screen) LayerCount() int {
	return len(s.layers)
}

func (s *Screen) attach(root Widget) {
	if root == nil {
		return
	}
	BindTree(root, s.services)
	root.Layout(s.Bounds())
	MountTree(root)
}

func detach(root Widget) {
	UnmountTree(root)
	UnbindTree(root)
}

// Render clears the buffer and draws the layers bottom to top. Cells that
// end up unchanged are not marked dirty.
func (s *Screen) Render() {
	s.buffer.Clear()
	for i, layer := range s.layers {
		if layer.Root == nil {
			continue
		}
		layer.Root.Render(RenderContext{
			Buffer:  s.buffer,
			Focused: i == len(s.layers)-1,
			Bounds:  s.Bounds(),
		})
	}
}

// HandleMessage offers msg to the layers from the top down, stopping at
// the first that handles it or at a modal layer.
func (s *Screen) HandleMessage(msg Message) HandleResult {
	for i := len(s.layers) - 1; i >= 0; i-- {
		layer := s.layers[i]
		if layer.Root == nil {
			continue
		}
		result := layer.Root.HandleMessage(msg)
		result.Commands = s.handleCommands(result.Commands)
		if result.Handled || layer.Modal {
			return result
		}
	}
	return Unhandled()
}

// handleCommands applies overlay commands and returns the rest for the app.
func (s *Screen) handleCommands(cmds []Command) []Command {
	rest := cmds[:0:0]
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case PushOverlay:
			s.PushLayer(c.Widget, c.Modal)
		case PopOverlay:
			s.PopLayer()
		default:
			rest = append(rest, cmd)
		}
	}
	return rest
}

// RenderContext is what a widget draws with.
type RenderContext struct {
	Buffer  *Buffer
	Focused bool // the widget's layer is on top
	Bounds  Rect
}

// Sub returns a context for a child drawn inside bounds.
func (ctx RenderContext) Sub(bounds Rect) RenderContext {
	ctx.Bounds = bounds
	return ctx
}

// Clear fills the bounds with spaces.
func (ctx RenderContext) Clear(style backend.Style) {
	ctx.Fill(Rect{Width: ctx.Bounds.Width, Height: ctx.Bounds.Height}, ' ', style)
}

// Fill fills r, given relative to the bounds and clipped to them.
func (ctx RenderContext) Fill(r Rect, ch rune, style backend.Style) {
	if ctx.Buffer == nil {
		return
	}
	r.X += ctx.Bounds.X
	r.Y += ctx.Bounds.Y
	ctx.Buffer.Fill(r.Intersect(ctx.Bounds), ch, style)
}

// Set writes one cell relative to the bounds.
func (ctx RenderContext) Set(x, y int, r rune, style backend.Style) {
	if ctx.Buffer == nil || x < 0 || y < 0 || x >= ctx.Bounds.Width || y >= ctx.Bounds.Height {
		return
	}
	ctx.Buffer.Set(ctx.Bounds.X+x, ctx.Bounds.Y+y, r, style)
}

// Text writes s relative to the bounds, truncated at the right edge, and
// returns the columns written.
func (ctx RenderContext) Text(x, y int, s string, style backend.Style) int {
	if ctx.Buffer == nil || x < 0 || y < 0 || x >= ctx.Bounds.Width || y >= ctx.Bounds.Height {
		return 0
	}
	s = runewidth.Truncate(s, ctx.Bounds.Width-x, "")
	return ctx.Buffer.SetString(ctx.Bounds.X+x, ctx.Bounds.Y+y, s, style)
}

// Box outlines the bounds.
func (ctx RenderContext) Box(chars BoxChars, style backend.Style) {
	if ctx.Buffer == nil {
		return
	}
	ctx.Buffer.DrawBox(ctx.Bounds, chars, style)
}
