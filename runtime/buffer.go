package runtime

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-motion/backend"
)

// Cell is a single character cell in the buffer.
type Cell = backend.Cell

// Buffer is the cell grid widgets draw into. It records which cells
// changed since the last flush so the app only writes those to the backend.
// The cell following a double-width rune holds rune 0 and is skipped on
// flush.
type Buffer struct {
	cells  []Cell
	dirty  []bool
	width  int
	height int

	dirtyCount int
	dirtyRect  Rect
}

// NewBuffer creates a blank buffer with every cell dirty.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{}
	b.Resize(w, h)
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize changes the dimensions, keeping the overlapping content, and
// marks the whole buffer dirty.
func (b *Buffer) Resize(w, h int) {
	w, h = max(0, w), max(0, h)
	if w == b.width && h == b.height && b.cells != nil {
		return
	}
	cells := make([]Cell, w*h)
	for i := range cells {
		cells[i] = Cell{Rune: ' '}
	}
	for y := 0; y < min(h, b.height); y++ {
		n := min(w, b.width)
		copy(cells[y*w:y*w+n], b.cells[y*b.width:y*b.width+n])
	}
	b.cells = cells
	b.dirty = make([]bool, w*h)
	b.width, b.height = w, h
	b.MarkAllDirty()
}

// Get returns the cell at (x, y), or a blank cell when out of range.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{Rune: ' '}
	}
	return b.cells[y*b.width+x]
}

// Set writes one cell. Out of range writes are dropped.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.put(x, y, Cell{Rune: r, Style: s})
}

// SetString writes s from (x, y) and returns the columns it advanced.
// Double-width runes that would straddle the right edge are dropped.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) int {
	start := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > b.width {
			break
		}
		if x >= 0 && y >= 0 && y < b.height {
			b.put(x, y, Cell{Rune: r, Style: style})
			if w == 2 {
				b.put(x+1, y, Cell{Rune: 0, Style: style})
			}
		}
		x += w
	}
	return x - start
}

// Fill sets every cell of r.
func (b *Buffer) Fill(r Rect, ch rune, s backend.Style) {
	r = r.Intersect(Rect{Width: b.width, Height: b.height})
	cell := Cell{Rune: ch, Style: s}
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			b.put(x, y, cell)
		}
	}
}

// Clear blanks the whole buffer.
func (b *Buffer) Clear() {
	b.Fill(Rect{Width: b.width, Height: b.height}, ' ', backend.DefaultStyle())
}

// BoxChars are the glyphs used to outline a rectangle.
type BoxChars struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune
}

var (
	// BoxSquare draws single-line square corners.
	BoxSquare = BoxChars{'┌', '┐', '└', '┘', '─', '│'}
	// BoxRounded draws single-line rounded corners.
	BoxRounded = BoxChars{'╭', '╮', '╰', '╯', '─', '│'}
	// BoxHeavy draws thick lines.
	BoxHeavy = BoxChars{'┏', '┓', '┗', '┛', '━', '┃'}
)

// DrawBox outlines r with chars.
func (b *Buffer) DrawBox(r Rect, chars BoxChars, s backend.Style) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	right, bottom := r.X+r.Width-1, r.Y+r.Height-1
	for x := r.X + 1; x < right; x++ {
		b.Set(x, r.Y, chars.Horizontal, s)
		b.Set(x, bottom, chars.Horizontal, s)
	}
	for y := r.Y + 1; y < bottom; y++ {
		b.Set(r.X, y, chars.Vertical, s)
		b.Set(right, y, chars.Vertical, s)
	}
	b.Set(r.X, r.Y, chars.TopLeft, s)
	b.Set(right, r.Y, chars.TopRight, s)
	b.Set(r.X, bottom, chars.BottomLeft, s)
	b.Set(right, bottom, chars.BottomRight, s)
}

func (b *Buffer) put(x, y int, c Cell) {
	idx := y*b.width + x
	if b.cells[idx] == c {
		return
	}
	b.cells[idx] = c
	b.markDirty(x, y, idx)
}

func (b *Buffer) markDirty(x, y, idx int) {
	if b.dirty[idx] {
		return
	}
	b.dirty[idx] = true
	b.dirtyCount++
	b.dirtyRect = b.dirtyRect.Union(Rect{X: x, Y: y, Width: 1, Height: 1})
}

// MarkAllDirty forces the next flush to rewrite every cell.
func (b *Buffer) MarkAllDirty() {
	for i := range b.dirty {
		b.dirty[i] = true
	}
	b.dirtyCount = len(b.dirty)
	b.dirtyRect = Rect{Width: b.width, Height: b.height}
	if b.dirtyCount == 0 {
		b.dirtyRect = Rect{}
	}
}

// ClearDirty forgets pending changes after a flush.
func (b *Buffer) ClearDirty() {
	clear(b.dirty)
	b.dirtyCount = 0
	b.dirtyRect = Rect{}
}

// IsDirty reports whether any cell changed.
func (b *Buffer) IsDirty() bool {
	return b.dirtyCount > 0
}

// DirtyCount returns the number of changed cells.
func (b *Buffer) DirtyCount() int {
	return b.dirtyCount
}

// DirtyRect returns the bounding box of changed cells.
func (b *Buffer) DirtyRect() Rect {
	return b.dirtyRect
}

// ForEachDirtySpan calls fn for each run of changed cells in a row,
// with endX exclusive.
func (b *Buffer) ForEachDirtySpan(fn func(y, startX, endX int)) {
	r := b.dirtyRect
	for y := r.Y; y < r.Y+r.Height; y++ {
		row := b.dirty[y*b.width : (y+1)*b.width]
		for x := r.X; x < r.X+r.Width; x++ {
			if !row[x] {
				continue
			}
			start := x
			for x < r.X+r.Width && row[x] {
				x++
			}
			fn(y, start, x)
		}
	}
}

// Cells returns the row-major cell slice. Callers must not retain it
// across frames.
func (b *Buffer) Cells() []Cell {
	return b.cells
}

// Row returns the cells of row y as a string, with continuation cells
// omitted. It is meant for tests and snapshots.
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	out := make([]rune, 0, b.width)
	for _, c := range b.cells[y*b.width : (y+1)*b.width] {
		if c.Rune != 0 {
			out = append(out, c.Rune)
		}
	}
	return string(out)
}
