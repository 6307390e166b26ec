// Package widgets provides the building blocks the studio page is made of.
package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-motion/runtime"
)

// Base provides bounds bookkeeping. Embed it in widget structs.
type Base struct {
	bounds  runtime.Rect
	focused bool
}

// Layout stores the assigned bounds.
func (b *Base) Layout(bounds runtime.Rect) {
	b.bounds = bounds
}

// Bounds returns the assigned bounds.
func (b *Base) Bounds() runtime.Rect {
	if b == nil {
		return runtime.Rect{}
	}
	return b.bounds
}

// HandleMessage returns Unhandled by default.
func (b *Base) HandleMessage(msg runtime.Message) runtime.HandleResult {
	return runtime.Unhandled()
}

// Focus marks the widget as receiving keys.
func (b *Base) Focus() { b.focused = true }

// Blur marks the widget as not receiving keys.
func (b *Base) Blur() { b.focused = false }

// IsFocused reports whether the widget receives keys.
func (b *Base) IsFocused() bool { return b.focused }

// Alignment positions a line within its bounds.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// alignedX returns the column a line of the given width starts at.
func alignedX(align Alignment, avail, width int) int {
	switch align {
	case AlignCenter:
		return max(0, (avail-width)/2)
	case AlignRight:
		return max(0, avail-width)
	}
	return 0
}

// truncate clips s to maxWidth columns, marking the cut with an ellipsis.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}
