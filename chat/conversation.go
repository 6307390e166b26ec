package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/odvcencio/furry-motion/state"
)

// Welcome is the first message of every conversation.
const Welcome = "Hello. I'm your studio assistant. Need help with fabric choices, color palettes, or design concepts?"

// Conversation holds the transcript and loading state of a chat panel.
type Conversation struct {
	coach    *Coach
	now      func() time.Time
	messages *state.Signal[[]Message]
	loading  *state.Signal[bool]

	mu       sync.Mutex
	inFlight bool
}

// NewConversation starts a conversation seeded with the welcome message.
func NewConversation(coach *Coach) *Conversation {
	return NewConversationAt(coach, time.Now)
}

// NewConversationAt is NewConversation with an injected clock.
func NewConversationAt(coach *Coach, now func() time.Time) *Conversation {
	if coach == nil {
		coach = NewCoach(nil, nil)
	}
	if now == nil {
		now = time.Now
	}
	welcome := Message{ID: "welcome", Sender: SenderBot, Text: Welcome, Timestamp: now()}
	return &Conversation{
		coach:    coach,
		now:      now,
		messages: state.NewSignal([]Message{welcome}),
		loading:  state.NewSignal(false),
	}
}

// Messages is the transcript. Each update publishes a new slice.
func (c *Conversation) Messages() state.Readable[[]Message] {
	return c.messages
}

// Loading reports whether a reply is pending.
func (c *Conversation) Loading() state.Readable[bool] {
	return c.loading
}

// Send appends text as a user message, waits for the reply and appends it.
// Blank input and sends made while a reply is pending are ignored and
// report false.
func (c *Conversation) Send(ctx context.Context, text string) (Message, bool) {
	if strings.TrimSpace(text) == "" {
		return Message{}, false
	}
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return Message{}, false
	}
	c.inFlight = true
	c.mu.Unlock()

	prior := c.messages.Get()
	user := NewMessage(SenderUser, text, c.now())
	c.append(user)
	c.loading.Set(true)

	reply := NewMessage(SenderBot, c.coach.Reply(ctx, History(prior), user.Text), c.now())
	c.append(reply)

	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
	c.loading.Set(false)
	return reply, true
}

func (c *Conversation) append(m Message) {
	c.messages.Update(func(prev []Message) []Message {
		next := make([]Message, len(prev), len(prev)+1)
		copy(next, prev)
		return append(next, m)
	})
}
