package runtime

import "context"

// Command is an intent a widget hands back to the app.
type Command interface {
	Command()
}

// PostFunc sends a message into the app. It returns false when the
// message queue is full.
type PostFunc func(Message) bool

// Quit stops the app.
type Quit struct{}

func (Quit) Command() {}

// Refresh forces a full redraw.
type Refresh struct{}

func (Refresh) Command() {}

// SendMsg posts a message into the app loop.
type SendMsg struct {
	Message Message
}

func (SendMsg) Command() {}

// Send wraps msg in a SendMsg command.
func Send(msg Message) Command {
	return SendMsg{Message: msg}
}

// Submit carries text entered into a prompt.
type Submit struct {
	Text string
}

func (Submit) Command() {}

// Cancel reports a dismissed prompt.
type Cancel struct{}

func (Cancel) Command() {}

// Effect runs work on its own goroutine. Run must return once ctx is done.
type Effect struct {
	Run func(ctx context.Context, post PostFunc)
}

func (Effect) Command() {}

// PushOverlay pushes a layer on top of the screen.
type PushOverlay struct {
	Widget Widget
	Modal  bool
}

func (PushOverlay) Command() {}

// PopOverlay dismisses the top layer.
type PopOverlay struct{}

func (PopOverlay) Command() {}
