package runtime

import (
	"time"

	"github.com/odvcencio/furry-motion/terminal"
)

// Message is an event flowing through the update loop. Messages come from
// terminal input, the frame ticker, or background effects.
type Message interface {
	isMessage()
}

// KeyMsg is a key press.
type KeyMsg struct {
	Key   terminal.Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyMsg) isMessage() {}

// IsRune reports whether m is the printable rune r.
func (m KeyMsg) IsRune(r rune) bool {
	return m.Key == terminal.KeyRune && m.Rune == r
}

// ResizeMsg reports a new terminal size.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// MouseMsg is a mouse event in screen cells.
type MouseMsg struct {
	X, Y   int
	Button terminal.MouseButton
	Action terminal.MouseAction
	Alt    bool
	Ctrl   bool
	Shift  bool
}

func (MouseMsg) isMessage() {}

// PasteMsg carries bracketed paste text.
type PasteMsg struct {
	Text string
}

func (PasteMsg) isMessage() {}

// CustomMsg carries an application-defined value, for example the result
// of a Task.
type CustomMsg struct {
	Value any
}

func (CustomMsg) isMessage() {}

// TickMsg is sent on every frame tick. The app steps its driver before
// dispatching it.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// QueueFlushMsg triggers a state queue flush.
type QueueFlushMsg struct{}

func (QueueFlushMsg) isMessage() {}

// InvalidateMsg requests a render pass.
type InvalidateMsg struct{}

func (InvalidateMsg) isMessage() {}

func messageFromEvent(ev terminal.Event) Message {
	switch e := ev.(type) {
	case terminal.KeyEvent:
		return KeyMsg{Key: e.Key, Rune: e.Rune, Alt: e.Alt, Ctrl: e.Ctrl, Shift: e.Shift}
	case terminal.ResizeEvent:
		return ResizeMsg{Width: e.Width, Height: e.Height}
	case terminal.MouseEvent:
		return MouseMsg{X: e.X, Y: e.Y, Button: e.Button, Action: e.Action, Alt: e.Alt, Ctrl: e.Ctrl, Shift: e.Shift}
	case terminal.PasteEvent:
		return PasteMsg{Text: e.Text}
	}
	return nil
}
