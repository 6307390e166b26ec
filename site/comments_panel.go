package site

import (
	"context"
	"errors"

	"github.com/odvcencio/furry-motion/backend"
	"github.com/odvcencio/furry-motion/comments"
	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/terminal"
	"github.com/odvcencio/furry-motion/widgets"
)

const commentsWidth = 64

// CommentsPanel shows a project's critique thread with a two-field form.
// Tab switches fields; enter on the text field posts.
type CommentsPanel struct {
	widgets.Component
	project Project
	board   *comments.Board
	theme   Theme
	author  *widgets.Input
	text    *widgets.Input
	panel   runtime.Rect
	notice  string
}

// OpenCommentsPanel loads the project's thread from store.
func OpenCommentsPanel(ctx context.Context, cfg comments.BoardConfig, project Project, theme Theme) (*CommentsPanel, error) {
	cfg.ProjectID = project.ID
	board, err := comments.OpenBoard(ctx, cfg)
	if err != nil {
		return nil, err
	}
	author := widgets.NewInput()
	author.SetPlaceholder("Your name")
	text := widgets.NewInput()
	text.SetPlaceholder("Leave a critique…")
	text.Blur()
	author.SetStyle(theme.Base, theme.Base)
	text.SetStyle(theme.Base, theme.Base)
	return &CommentsPanel{project: project, board: board, theme: theme, author: author, text: text}, nil
}

// Board returns the thread.
func (c *CommentsPanel) Board() *comments.Board {
	return c.board
}

// Notice returns the last validation or save message.
func (c *CommentsPanel) Notice() string {
	return c.notice
}

// Bind redraws when the thread changes.
func (c *CommentsPanel) Bind(services runtime.Services) {
	c.Component.Bind(services)
	c.Redraw(c.board.Comments())
}

// Measure fills the screen; the panel is centred.
func (c *CommentsPanel) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: constraints.MaxHeight})
}

// Layout centres the panel and places the form at its foot.
func (c *CommentsPanel) Layout(bounds runtime.Rect) {
	c.Component.Layout(bounds)
	w := min(commentsWidth, max(0, bounds.Width-4))
	h := max(0, bounds.Height-4)
	c.panel = runtime.Rect{X: bounds.X + (bounds.Width-w)/2, Y: bounds.Y + 2, Width: w, Height: h}
	c.author.Layout(runtime.Rect{X: c.panel.X + 10, Y: c.panel.Y + h - 4, Width: max(0, w-12), Height: 1})
	c.text.Layout(runtime.Rect{X: c.panel.X + 10, Y: c.panel.Y + h - 3, Width: max(0, w-12), Height: 1})
}

// Render draws the thread, newest first, above the form.
func (c *CommentsPanel) Render(ctx runtime.RenderContext) {
	p := c.panel
	if p.Width < 16 || p.Height < 8 {
		return
	}
	sub := ctx.Sub(p)
	sub.Clear(c.theme.Base)
	sub.Box(runtime.BoxRounded, c.theme.Accent)
	sub.Text(2, 0, " CRITIQUE · "+c.project.Title+" ", c.theme.Select)
	sub.Text(max(0, p.Width-9), 0, " esc ", c.theme.Muted)

	y, limit := 1, p.Height-6
	for _, cm := range c.board.Comments().Get() {
		if y >= limit {
			break
		}
		sub.Text(2, y, cm.Author, c.theme.Heading)
		sub.Text(max(2, p.Width-16), y, cm.Timestamp.Format("Jan 2 15:04"), c.theme.Muted)
		y++
		for _, line := range widgets.Wrap(cm.Text, p.Width-6) {
			if y >= limit {
				break
			}
			sub.Text(4, y, line, c.theme.Base)
			y++
		}
		y++
	}

	sub.Fill(runtime.Rect{X: 1, Y: p.Height - 5, Width: p.Width - 2, Height: 1}, '─', c.theme.Border)
	sub.Text(2, p.Height-4, "Name", c.labelStyle(c.author))
	sub.Text(2, p.Height-3, "Comment", c.labelStyle(c.text))
	c.author.Render(ctx)
	c.text.Render(ctx)
	if c.notice != "" {
		sub.Text(2, p.Height-2, c.notice, c.theme.Accent)
	}
}

func (c *CommentsPanel) labelStyle(input *widgets.Input) backend.Style {
	if input.IsFocused() {
		return c.theme.Accent
	}
	return c.theme.Muted
}

// HandleMessage drives the form.
func (c *CommentsPanel) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if key, ok := msg.(runtime.KeyMsg); ok && key.Key == terminal.KeyTab {
		c.swap()
		return runtime.Handled()
	}
	focused := c.author
	if c.text.IsFocused() {
		focused = c.text
	}
	result := focused.HandleMessage(msg)
	for _, cmd := range result.Commands {
		switch cmd.(type) {
		case runtime.Cancel:
			return runtime.WithCommand(runtime.PopOverlay{})
		case runtime.Submit:
			if focused == c.author {
				c.swap()
				return runtime.Handled()
			}
			c.post()
			return runtime.Handled()
		}
	}
	return result
}

func (c *CommentsPanel) swap() {
	if c.author.IsFocused() {
		c.author.Blur()
		c.text.Focus()
		return
	}
	c.text.Blur()
	c.author.Focus()
}

func (c *CommentsPanel) post() {
	_, err := c.board.Add(context.Background(), c.author.Text(), c.text.Text())
	switch {
	case errors.Is(err, comments.ErrEmptyAuthor):
		c.notice = "Add your name first."
		c.text.Blur()
		c.author.Focus()
	case errors.Is(err, comments.ErrEmptyText):
		c.notice = "Write something to post."
	case err != nil:
		c.notice = "Posted, but saving failed."
		c.text.Clear()
	default:
		c.notice = ""
		c.text.Clear()
	}
}

// ChildWidgets returns the form fields.
func (c *CommentsPanel) ChildWidgets() []runtime.Widget {
	return []runtime.Widget{c.author, c.text}
}
