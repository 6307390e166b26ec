// Package backend abstracts the terminal the runtime draws to.
package backend

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/odvcencio/furry-motion/terminal"
)

// Color is a terminal colour. The zero value is the terminal default.
type Color uint32

const rgbFlag Color = 1 << 24

// ColorDefault leaves the terminal colour unchanged.
const ColorDefault Color = 0

// RGB returns a true-colour value.
func RGB(r, g, b uint8) Color {
	return rgbFlag | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// FromColorful converts a colorful colour, clamping out-of-gamut values.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return RGB(r, g, b)
}

// IsDefault reports whether c is the terminal default.
func (c Color) IsDefault() bool {
	return c&rgbFlag == 0
}

// RGB returns the channels of a true-colour value.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// AttrMask is a set of text attributes.
type AttrMask uint8

const (
	AttrBold AttrMask = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
)

// Style describes how a cell is drawn.
type Style struct {
	FG    Color
	BG    Color
	Attrs AttrMask
}

// DefaultStyle returns the terminal default style.
func DefaultStyle() Style {
	return Style{}
}

// Foreground returns s with fg as foreground.
func (s Style) Foreground(fg Color) Style {
	s.FG = fg
	return s
}

// Background returns s with bg as background.
func (s Style) Background(bg Color) Style {
	s.BG = bg
	return s
}

// With returns s with attrs added.
func (s Style) With(attrs AttrMask) Style {
	s.Attrs |= attrs
	return s
}

// Has reports whether all attrs are set.
func (s Style) Has(attrs AttrMask) bool {
	return s.Attrs&attrs == attrs
}

// Cell is one character cell.
type Cell struct {
	Rune  rune
	Style Style
}

// Backend is a terminal the runtime can draw to and read events from.
type Backend interface {
	Init() error
	Fini()
	Size() (width, height int)
	SetContent(x, y int, mainc rune, combc []rune, style Style)
	Show()
	Sync()
	HideCursor()
	// PollEvent blocks until an event arrives. It returns nil once the
	// backend is finalised.
	PollEvent() terminal.Event
	PostEvent(ev terminal.Event) error
}

// RowWriter is implemented by backends that accept a run of cells in one
// call. The app flushes dirty spans through it when available.
type RowWriter interface {
	SetRow(y, startX int, cells []Cell)
}

// RectWriter takes a full-screen redraw as one row-major block of
// width*height cells.
type RectWriter interface {
	SetRect(x, y, width, height int, cells []Cell)
}
