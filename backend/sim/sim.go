// Package sim provides an in-memory backend for tests and headless runs.
package sim

import (
	"errors"
	"strings"
	"sync"

	"github.com/odvcencio/furry-motion/backend"
	"github.com/odvcencio/furry-motion/terminal"
)

// ErrClosed is returned by PostEvent after Fini.
var ErrClosed = errors.New("sim backend closed")

// Backend records drawn cells and replays injected events.
type Backend struct {
	mu     sync.Mutex
	width  int
	height int
	cells  []backend.Cell
	shows  int
	events chan terminal.Event
	done   chan struct{}
	once   sync.Once
}

// New creates a backend of the given size.
func New(width, height int) *Backend {
	b := &Backend{
		width:  width,
		height: height,
		events: make(chan terminal.Event, 64),
		done:   make(chan struct{}),
	}
	b.cells = blank(width * height)
	return b
}

func blank(n int) []backend.Cell {
	cells := make([]backend.Cell, n)
	for i := range cells {
		cells[i].Rune = ' '
	}
	return cells
}

func (b *Backend) Init() error { return nil }

// Fini unblocks PollEvent, which returns nil from then on.
func (b *Backend) Fini() {
	b.once.Do(func() { close(b.done) })
}

func (b *Backend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// Resize changes the size and queues the matching resize event.
func (b *Backend) Resize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	b.cells = blank(width * height)
	b.mu.Unlock()
	_ = b.PostEvent(terminal.ResizeEvent{Width: width, Height: height})
}

func (b *Backend) SetContent(x, y int, mainc rune, _ []rune, style backend.Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setLocked(x, y, backend.Cell{Rune: mainc, Style: style})
}

func (b *Backend) setLocked(x, y int, cell backend.Cell) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = cell
}

// SetRow implements backend.RowWriter.
func (b *Backend) SetRow(y, startX int, cells []backend.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, cell := range cells {
		b.setLocked(startX+i, y, cell)
	}
}

// SetRect implements backend.RectWriter.
func (b *Backend) SetRect(x, y, width, height int, cells []backend.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			b.setLocked(x+col, y+row, cells[row*width+col])
		}
	}
}

func (b *Backend) Show() {
	b.mu.Lock()
	b.shows++
	b.mu.Unlock()
}

func (b *Backend) Sync()       {}
func (b *Backend) HideCursor() {}

// Shows returns how many frames were presented.
func (b *Backend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

func (b *Backend) PollEvent() terminal.Event {
	select {
	case <-b.done:
		return nil
	case ev := <-b.events:
		return ev
	}
}

func (b *Backend) PostEvent(ev terminal.Event) error {
	select {
	case <-b.done:
		return ErrClosed
	default:
	}
	select {
	case b.events <- ev:
		return nil
	case <-b.done:
		return ErrClosed
	}
}

// Cell returns the cell at (x, y).
func (b *Backend) Cell(x, y int) backend.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return backend.Cell{}
	}
	return b.cells[y*b.width+x]
}

// Row returns row y as text, with wide-rune continuation cells omitted.
func (b *Backend) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y*b.width : (y+1)*b.width] {
		if c.Rune != 0 {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}

// Text returns every row joined by newlines with trailing spaces removed.
func (b *Backend) Text() string {
	_, h := b.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = strings.TrimRight(b.Row(y), " ")
	}
	return strings.Join(rows, "\n")
}

var (
	_ backend.Backend    = (*Backend)(nil)
	_ backend.RowWriter  = (*Backend)(nil)
	_ backend.RectWriter = (*Backend)(nil)
)
