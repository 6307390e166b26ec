package site

import (
	"context"

	"github.com/odvcencio/furry-motion/backend"
	"github.com/odvcencio/furry-motion/chat"
	"github.com/odvcencio/furry-motion/motion"
	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/terminal"
	"github.com/odvcencio/furry-motion/widgets"
)

const (
	chatWidth  = 56
	chatHeight = 22
)

type chatReplied struct{}

// ChatPanel is the studio assistant overlay. Replies are fetched on a
// task so the page keeps animating while the coach thinks.
type ChatPanel struct {
	widgets.Component
	conv  *chat.Conversation
	theme Theme
	input  *widgets.Input
	status *widgets.SignalLabel
	panel  runtime.Rect
	back  int
}

// NewChatPanel creates a panel over conv.
func NewChatPanel(conv *chat.Conversation, theme Theme) *ChatPanel {
	input := widgets.NewInput()
	input.SetPlaceholder("Ask about fabrics, palettes, concepts…")
	input.SetStyle(theme.Base, theme.Base)
	status := widgets.NewSignalLabel(nil)
	status.SetStyle(theme.Muted)
	status.SetAlignment(widgets.AlignRight)
	return &ChatPanel{conv: conv, theme: theme, input: input, status: status}
}

// Bind redraws on transcript and loading changes.
func (c *ChatPanel) Bind(services runtime.Services) {
	c.Component.Bind(services)
	c.Redraw(c.conv.Messages())
	c.Redraw(c.conv.Loading())
	activity := motion.Transform(c.conv.Loading(), func(loading bool) string {
		if loading {
			return "thinking"
		}
		return "ready"
	})
	c.Subs.AddStopper(activity)
	c.status.SetSource(activity)
}

// Status returns the label showing whether a reply is pending.
func (c *ChatPanel) Status() *widgets.SignalLabel {
	return c.status
}

// Input returns the prompt.
func (c *ChatPanel) Input() *widgets.Input {
	return c.input
}

// Measure fills the screen; the panel sits in the bottom right corner.
func (c *ChatPanel) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: constraints.MaxHeight})
}

// Layout anchors the panel.
func (c *ChatPanel) Layout(bounds runtime.Rect) {
	c.Component.Layout(bounds)
	w := min(chatWidth, max(0, bounds.Width-2))
	h := min(chatHeight, max(0, bounds.Height-2))
	c.panel = runtime.Rect{X: bounds.X + bounds.Width - w - 1, Y: bounds.Y + bounds.Height - h - 1, Width: w, Height: h}
	c.input.Layout(runtime.Rect{X: c.panel.X + 2, Y: c.panel.Y + h - 2, Width: max(0, w-4), Height: 1})
	c.status.Layout(runtime.Rect{X: c.panel.X + w - 20, Y: c.panel.Y, Width: max(0, min(10, w-30)), Height: 1})
}

// Transcript renders the conversation as styled lines at width.
func (c *ChatPanel) Transcript(width int) []chat.Line {
	var lines []chat.Line
	for _, m := range c.conv.Messages().Get() {
		label := chat.Span{Text: "coach › ", Kind: chat.SpanHeading}
		if m.Sender == chat.SenderUser {
			label = chat.Span{Text: "you › ", Kind: chat.SpanStrong}
		}
		lines = append(lines, chat.Line{label})
		lines = append(lines, chat.Render(m.Text, width)...)
		lines = append(lines, chat.Line{})
	}
	if c.conv.Loading().Get() {
		lines = append(lines, chat.Line{{Text: "… warming up", Kind: chat.SpanQuote}})
	}
	return lines
}

// Render draws the panel over the page.
func (c *ChatPanel) Render(ctx runtime.RenderContext) {
	p := c.panel
	if p.Width < 8 || p.Height < 6 {
		return
	}
	sub := ctx.Sub(p)
	sub.Clear(c.theme.Base)
	sub.Box(runtime.BoxRounded, c.theme.Accent)
	sub.Text(2, 0, " STUDIO ASSISTANT ", c.theme.Select)
	sub.Text(max(0, p.Width-9), 0, " esc ", c.theme.Muted)

	area := p.Height - 4
	lines := c.Transcript(p.Width - 4)
	end := max(0, len(lines)-c.back)
	start := max(0, end-area)
	for y, line := range lines[start:end] {
		x := 2
		for _, span := range line {
			x += sub.Text(x, 1+y, span.Text, spanStyle(span.Kind, c.theme))
		}
	}
	sub.Fill(runtime.Rect{X: 1, Y: p.Height - 3, Width: p.Width - 2, Height: 1}, '─', c.theme.Border)
	c.status.Render(ctx)
	c.input.Render(ctx)
}

// HandleMessage edits the prompt, sends on enter and closes on escape.
func (c *ChatPanel) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch m := msg.(type) {
	case runtime.CustomMsg:
		if _, ok := m.Value.(chatReplied); ok {
			c.back = 0
			return runtime.Handled()
		}
	case runtime.KeyMsg:
		switch m.Key {
		case terminal.KeyPageUp:
			c.back += max(1, c.panel.Height/2)
			return runtime.Handled()
		case terminal.KeyPageDown:
			c.back = max(0, c.back-max(1, c.panel.Height/2))
			return runtime.Handled()
		}
	}
	result := c.input.HandleMessage(msg)
	for _, cmd := range result.Commands {
		switch cmd := cmd.(type) {
		case runtime.Submit:
			return c.submit(cmd.Text)
		case runtime.Cancel:
			return runtime.WithCommand(runtime.PopOverlay{})
		}
	}
	return result
}

func (c *ChatPanel) submit(text string) runtime.HandleResult {
	if c.conv.Loading().Get() {
		return runtime.Handled()
	}
	c.input.Clear()
	c.back = 0
	conv := c.conv
	return runtime.WithCommand(runtime.Task(func(ctx context.Context) runtime.Message {
		if _, ok := conv.Send(ctx, text); !ok {
			return nil
		}
		return runtime.CustomMsg{Value: chatReplied{}}
	}))
}

// ChildWidgets returns the prompt and the status label.
func (c *ChatPanel) ChildWidgets() []runtime.Widget {
	return []runtime.Widget{c.input, c.status}
}

func spanStyle(kind chat.SpanKind, theme Theme) backend.Style {
	switch kind {
	case chat.SpanStrong, chat.SpanHeading:
		return theme.Heading
	case chat.SpanEmphasis:
		return theme.Base.With(backend.AttrItalic)
	case chat.SpanCode, chat.SpanKeyword:
		return theme.Accent
	case chat.SpanQuote, chat.SpanComment:
		return theme.Muted.With(backend.AttrItalic)
	case chat.SpanString, chat.SpanNumber:
		return theme.Accent.With(backend.AttrDim)
	case chat.SpanBullet:
		return theme.Accent
	}
	return theme.Base
}
