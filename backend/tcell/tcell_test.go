package tcell

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-motion/backend"
	"github.com/odvcencio/furry-motion/terminal"
)

func TestBackend_SimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	b := NewWithScreen(screen)
	if err := b.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer b.Fini()
	screen.SetSize(20, 4)

	style := backend.DefaultStyle().Foreground(backend.RGB(255, 0, 0)).With(backend.AttrBold)
	b.SetRow(1, 2, []backend.Cell{{Rune: 'h', Style: style}, {Rune: 'i', Style: style}})
	b.Show()

	cells, width, _ := screen.GetContents()
	got := cells[1*width+2]
	if len(got.Runes) == 0 || got.Runes[0] != 'h' {
		t.Fatalf("expected 'h' at (2,1), got %v", got.Runes)
	}
	fg, _, attrs := got.Style.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Fatalf("unexpected foreground %v", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Fatalf("expected bold attribute")
	}
}

func TestConvertEvent_Keys(t *testing.T) {
	ev := convertEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))
	key, ok := ev.(terminal.KeyEvent)
	if !ok || key.Key != terminal.KeyRune || key.Rune != 'c' {
		t.Fatalf("unexpected rune event %#v", ev)
	}
	ev = convertEvent(tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone))
	if key, ok := ev.(terminal.KeyEvent); !ok || key.Key != terminal.KeyPageDown {
		t.Fatalf("unexpected page down event %#v", ev)
	}
	if ev := convertEvent(tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone)); ev != nil {
		t.Fatalf("expected unmapped key to be dropped, got %#v", ev)
	}
}

func TestConvertEvent_Interrupt(t *testing.T) {
	ev := convertEvent(tcell.NewEventInterrupt(terminal.ResizeEvent{Width: 3, Height: 4}))
	if ev != (terminal.ResizeEvent{Width: 3, Height: 4}) {
		t.Fatalf("expected wrapped event to pass through, got %#v", ev)
	}
	if ev := convertEvent(tcell.NewEventInterrupt(nil)); ev != (terminal.InterruptEvent{}) {
		t.Fatalf("expected bare interrupt, got %#v", ev)
	}
}
