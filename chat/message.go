// Package chat implements the studio assistant conversation.
package chat

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Role tags a turn in the model history.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one entry in the visible transcript.
type Message struct {
	ID        string
	Sender    Sender
	Text      string
	Timestamp time.Time
}

// NewMessage stamps a message with a fresh ID.
func NewMessage(sender Sender, text string, at time.Time) Message {
	return Message{
		ID:        ulid.Make().String(),
		Sender:    sender,
		Text:      text,
		Timestamp: at,
	}
}

// Turn is one role-tagged entry of model history.
type Turn struct {
	Role Role
	Text string
}

// History converts transcript messages into model turns.
func History(messages []Message) []Turn {
	turns := make([]Turn, 0, len(messages))
	for _, m := range messages {
		role := RoleModel
		if m.Sender == SenderUser {
			role = RoleUser
		}
		turns = append(turns, Turn{Role: role, Text: m.Text})
	}
	return turns
}

// Backend sends a message with prior history and returns the reply text.
type Backend interface {
	Send(ctx context.Context, history []Turn, message string) (string, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, history []Turn, message string) (string, error)

// Send implements Backend.
func (f BackendFunc) Send(ctx context.Context, history []Turn, message string) (string, error) {
	return f(ctx, history, message)
}
