package sim

import (
	"errors"
	"testing"

	"github.com/odvcencio/furry-motion/backend"
	"github.com/odvcencio/furry-motion/terminal"
)

func TestBackend_Writers(t *testing.T) {
	b := New(4, 2)
	b.SetRow(0, 1, []backend.Cell{{Rune: 'a'}, {Rune: 'b'}})
	b.SetRect(0, 1, 2, 1, []backend.Cell{{Rune: 'x'}, {Rune: 'y'}})
	b.SetContent(9, 9, 'z', nil, backend.DefaultStyle())
	if got := b.Text(); got != " ab\nxy" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestBackend_EventsAndFini(t *testing.T) {
	b := New(1, 1)
	if err := b.PostEvent(terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'q'}); err != nil {
		t.Fatalf("post: %v", err)
	}
	if ev := b.PollEvent(); ev != (terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'q'}) {
		t.Fatalf("unexpected event %#v", ev)
	}
	b.Fini()
	b.Fini()
	if ev := b.PollEvent(); ev != nil {
		t.Fatalf("expected nil after fini, got %#v", ev)
	}
	if err := b.PostEvent(terminal.InterruptEvent{}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
