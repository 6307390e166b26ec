// Package scroll tracks document scroll position and derives normalised
// progress values from it.
package scroll

import (
	"image"
	"sync"

	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/state"
)

// Source exposes the scroll geometry of a document.
type Source interface {
	ScrollOffset() float64
	DocumentHeight() float64
	ViewportHeight() float64
	// OnChange registers fn for scroll and resize events. The returned func
	// removes the listener and is safe to call more than once.
	OnChange(fn func()) func()
}

// Controller provides scroll control for widgets.
type Controller interface {
	ScrollBy(dx, dy int)
	ScrollTo(x, y int)
	PageBy(pages int)
	ScrollToStart()
	ScrollToEnd()
}

// Viewport tracks the visible region of scrollable content.
type Viewport struct {
	mu          sync.Mutex
	offset      image.Point
	contentSize runtime.Size
	viewSize    runtime.Size
	changes     *state.Signal[image.Point]
}

// NewViewport creates an empty viewport.
func NewViewport() *Viewport {
	return &Viewport{changes: state.NewSignal(image.Point{})}
}

// SetContentSize updates the content size and clamps the offset.
func (v *Viewport) SetContentSize(size runtime.Size) {
	if v == nil {
		return
	}
	v.mu.Lock()
	changed := v.contentSize != size
	v.contentSize = size
	v.mu.Unlock()
	v.reclamp(changed)
}

// ContentSize returns the content size.
func (v *Viewport) ContentSize() runtime.Size {
	if v == nil {
		return runtime.Size{}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.contentSize
}

// SetViewSize updates the view size and clamps the offset.
func (v *Viewport) SetViewSize(size runtime.Size) {
	if v == nil {
		return
	}
	v.mu.Lock()
	changed := v.viewSize != size
	v.viewSize = size
	v.mu.Unlock()
	v.reclamp(changed)
}

// ViewSize returns the view size.
func (v *Viewport) ViewSize() runtime.Size {
	if v == nil {
		return runtime.Size{}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewSize
}

// Offset returns the current offset.
func (v *Viewport) Offset() image.Point {
	if v == nil {
		return image.Point{}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.offset
}

// SetOffset sets the scroll offset, clamped to the scrollable area.
func (v *Viewport) SetOffset(x, y int) {
	if v == nil {
		return
	}
	v.mu.Lock()
	next := clampOffset(image.Point{X: x, Y: y}, v.contentSize, v.viewSize)
	if next == v.offset {
		v.mu.Unlock()
		return
	}
	v.offset = next
	v.mu.Unlock()
	v.changes.Set(next)
}

func (v *Viewport) reclamp(resized bool) {
	v.mu.Lock()
	next := clampOffset(v.offset, v.contentSize, v.viewSize)
	moved := next != v.offset
	v.offset = next
	v.mu.Unlock()
	if moved || resized {
		v.changes.Set(next)
	}
}

// ScrollBy adjusts the offset.
func (v *Viewport) ScrollBy(dx, dy int) {
	if v == nil {
		return
	}
	off := v.Offset()
	v.SetOffset(off.X+dx, off.Y+dy)
}

// ScrollTo scrolls to absolute coordinates.
func (v *Viewport) ScrollTo(x, y int) {
	v.SetOffset(x, y)
}

// PageBy scrolls by whole view heights.
func (v *Viewport) PageBy(pages int) {
	if v == nil {
		return
	}
	page := v.ViewSize().Height
	if page < 1 {
		page = 1
	}
	v.ScrollBy(0, pages*page)
}

// ScrollToStart jumps to the top of the content.
func (v *Viewport) ScrollToStart() {
	if v == nil {
		return
	}
	v.SetOffset(v.Offset().X, 0)
}

// ScrollToEnd jumps to the bottom of the content.
func (v *Viewport) ScrollToEnd() {
	if v == nil {
		return
	}
	v.SetOffset(v.Offset().X, v.MaxOffset().Y)
}

// MaxOffset returns the maximum scrollable offset.
func (v *Viewport) MaxOffset() image.Point {
	if v == nil {
		return image.Point{}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return clampOffset(image.Point{X: 1 << 30, Y: 1 << 30}, v.contentSize, v.viewSize)
}

// VisibleRect returns the visible rectangle within content.
func (v *Viewport) VisibleRect() runtime.Rect {
	if v == nil {
		return runtime.Rect{}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return runtime.Rect{
		X:      v.offset.X,
		Y:      v.offset.Y,
		Width:  v.viewSize.Width,
		Height: v.viewSize.Height,
	}
}

// ScrollOffset implements Source.
func (v *Viewport) ScrollOffset() float64 {
	return float64(v.Offset().Y)
}

// DocumentHeight implements Source.
func (v *Viewport) DocumentHeight() float64 {
	return float64(v.ContentSize().Height)
}

// ViewportHeight implements Source.
func (v *Viewport) ViewportHeight() float64 {
	return float64(v.ViewSize().Height)
}

// OnChange implements Source.
func (v *Viewport) OnChange(fn func()) func() {
	if v == nil || fn == nil {
		return func() {}
	}
	return v.changes.Subscribe(fn)
}

func clampOffset(offset image.Point, content runtime.Size, view runtime.Size) image.Point {
	maxX := content.Width - view.Width
	maxY := content.Height - view.Height
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	if offset.X < 0 {
		offset.X = 0
	}
	if offset.Y < 0 {
		offset.Y = 0
	}
	if offset.X > maxX {
		offset.X = maxX
	}
	if offset.Y > maxY {
		offset.Y = maxY
	}
	return offset
}

var _ Source = (*Viewport)(nil)
var _ Controller = (*Viewport)(nil)
