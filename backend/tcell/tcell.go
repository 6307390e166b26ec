// Package tcell adapts a tcell screen to backend.Backend.
package tcell

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-motion/backend"
	"github.com/odvcencio/furry-motion/terminal"
)

// Backend draws to the controlling terminal.
type Backend struct {
	screen tcell.Screen
}

// New creates a backend for the controlling terminal.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return &Backend{screen: screen}, nil
}

// NewWithScreen wraps an existing screen, such as a simulation screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	b.screen.EnableMouse()
	b.screen.EnablePaste()
	b.screen.Clear()
	return nil
}

func (b *Backend) Fini() {
	b.screen.Fini()
}

func (b *Backend) Size() (int, int) {
	return b.screen.Size()
}

func (b *Backend) SetContent(x, y int, mainc rune, combc []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, combc, convertStyle(style))
}

// SetRow writes a run of cells, skipping wide-rune continuation cells.
func (b *Backend) SetRow(y, startX int, cells []backend.Cell) {
	for i, cell := range cells {
		if cell.Rune == 0 {
			continue
		}
		b.screen.SetContent(startX+i, y, cell.Rune, nil, convertStyle(cell.Style))
	}
}

func (b *Backend) Show() {
	b.screen.Show()
}

func (b *Backend) Sync() {
	b.screen.Sync()
}

func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if out := convertEvent(ev); out != nil {
			return out
		}
	}
}

func (b *Backend) PostEvent(ev terminal.Event) error {
	return b.screen.PostEvent(tcell.NewEventInterrupt(ev))
}

func convertStyle(s backend.Style) tcell.Style {
	out := tcell.StyleDefault.
		Foreground(convertColor(s.FG)).
		Background(convertColor(s.BG))
	if s.Attrs != 0 {
		out = out.
			Bold(s.Has(backend.AttrBold)).
			Dim(s.Has(backend.AttrDim)).
			Italic(s.Has(backend.AttrItalic)).
			Underline(s.Has(backend.AttrUnderline)).
			Reverse(s.Has(backend.AttrReverse))
	}
	return out
}

func convertColor(c backend.Color) tcell.Color {
	if c.IsDefault() {
		return tcell.ColorDefault
	}
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

var keyMap = map[tcell.Key]terminal.Key{
	tcell.KeyEnter:      terminal.KeyEnter,
	tcell.KeyEscape:     terminal.KeyEscape,
	tcell.KeyBackspace:  terminal.KeyBackspace,
	tcell.KeyBackspace2: terminal.KeyBackspace,
	tcell.KeyDelete:     terminal.KeyDelete,
	tcell.KeyTab:        terminal.KeyTab,
	tcell.KeyUp:         terminal.KeyUp,
	tcell.KeyDown:       terminal.KeyDown,
	tcell.KeyLeft:       terminal.KeyLeft,
	tcell.KeyRight:      terminal.KeyRight,
	tcell.KeyPgUp:       terminal.KeyPageUp,
	tcell.KeyPgDn:       terminal.KeyPageDown,
	tcell.KeyHome:       terminal.KeyHome,
	tcell.KeyEnd:        terminal.KeyEnd,
	tcell.KeyCtrlC:      terminal.KeyCtrlC,
}

func convertEvent(ev tcell.Event) terminal.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		mods := e.Modifiers()
		out := terminal.KeyEvent{
			Alt:   mods&tcell.ModAlt != 0,
			Ctrl:  mods&tcell.ModCtrl != 0,
			Shift: mods&tcell.ModShift != 0,
		}
		if e.Key() == tcell.KeyRune {
			out.Key = terminal.KeyRune
			out.Rune = e.Rune()
			return out
		}
		key, ok := keyMap[e.Key()]
		if !ok {
			return nil
		}
		out.Key = key
		return out
	case *tcell.EventResize:
		w, h := e.Size()
		return terminal.ResizeEvent{Width: w, Height: h}
	case *tcell.EventMouse:
		x, y := e.Position()
		mods := e.Modifiers()
		out := terminal.MouseEvent{
			X:      x,
			Y:      y,
			Action: terminal.MouseMove,
			Alt:    mods&tcell.ModAlt != 0,
			Ctrl:   mods&tcell.ModCtrl != 0,
			Shift:  mods&tcell.ModShift != 0,
		}
		switch buttons := e.Buttons(); {
		case buttons&tcell.WheelUp != 0:
			out.Button, out.Action = terminal.MouseWheelUp, terminal.MousePress
		case buttons&tcell.WheelDown != 0:
			out.Button, out.Action = terminal.MouseWheelDown, terminal.MousePress
		case buttons&tcell.Button1 != 0:
			out.Button, out.Action = terminal.MouseLeft, terminal.MousePress
		case buttons&tcell.Button3 != 0:
			out.Button, out.Action = terminal.MouseMiddle, terminal.MousePress
		case buttons&tcell.Button2 != 0:
			out.Button, out.Action = terminal.MouseRight, terminal.MousePress
		}
		return out
	case *tcell.EventInterrupt:
		if inner, ok := e.Data().(terminal.Event); ok {
			return inner
		}
		return terminal.InterruptEvent{}
	}
	return nil
}

var (
	_ backend.Backend   = (*Backend)(nil)
	_ backend.RowWriter = (*Backend)(nil)
)
