package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	// FallbackError is shown when the backend fails.
	FallbackError = "I had a bit of a tumble. Let's try that routine again in a moment."
	// FallbackEmpty is shown when the backend returns no text.
	FallbackEmpty = "I lost my footing. Can you repeat that?"
)

// Observer receives chat request outcomes.
type Observer interface {
	ObserveChat(fallback bool)
}

// Coach wraps a Backend so that callers always receive displayable text.
type Coach struct {
	backend  Backend
	logger   *zap.Logger
	observer Observer
}

// NewCoach creates a coach. A nil backend always answers with FallbackError.
func NewCoach(backend Backend, logger *zap.Logger) *Coach {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coach{backend: backend, logger: logger}
}

// SetObserver installs an outcome observer.
func (c *Coach) SetObserver(observer Observer) {
	if c == nil {
		return
	}
	c.observer = observer
}

// Reply sends message with history and returns the reply or a fallback.
// Backend errors and panics never escape.
func (c *Coach) Reply(ctx context.Context, history []Turn, message string) (reply string) {
	fallback := false
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("chat backend panicked", zap.Any("panic", r))
			reply, fallback = FallbackError, true
		}
		if c.observer != nil {
			c.observer.ObserveChat(fallback)
		}
	}()

	if c.backend == nil {
		c.logger.Warn("chat backend not configured")
		fallback = true
		return FallbackError
	}
	text, err := c.backend.Send(ctx, history, message)
	if err != nil {
		c.logger.Error("chat request failed", zap.Error(err), zap.Int("history", len(history)))
		fallback = true
		return FallbackError
	}
	if strings.TrimSpace(text) == "" {
		c.logger.Warn("chat reply empty")
		fallback = true
		return FallbackEmpty
	}
	return text
}

// Describe returns a short summary of the configured backend.
func (c *Coach) Describe() string {
	switch b := c.backend.(type) {
	case nil:
		return "offline"
	case *Gemini:
		return fmt.Sprintf("gemini (%s)", b.Model())
	default:
		return fmt.Sprintf("%T", b)
	}
}
