package widgets

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-motion/backend"
	"github.com/odvcencio/furry-motion/runtime"
)

// Wrap breaks text into lines of at most width columns at spaces. Words
// wider than a line are split. Explicit newlines are kept.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		start := len(lines)
		line, lineW := "", 0
		for _, word := range strings.Fields(para) {
			w := runewidth.StringWidth(word)
			for w > width {
				if lineW > 0 {
					lines = append(lines, line)
					line, lineW = "", 0
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					_, size := utf8.DecodeRuneInString(word)
					head = word[:size]
				}
				lines = append(lines, head)
				word = word[len(head):]
				w = runewidth.StringWidth(word)
			}
			if word == "" {
				continue
			}
			switch {
			case lineW == 0:
				line, lineW = word, w
			case lineW+1+w <= width:
				line += " " + word
				lineW += 1 + w
			default:
				lines = append(lines, line)
				line, lineW = word, w
			}
		}
		if lineW > 0 || len(lines) == start {
			lines = append(lines, line)
		}
	}
	return lines
}

// Text is a block of wrapped text.
type Text struct {
	Base
	text  string
	style backend.Style
	align Alignment
	lines []string
}

// NewText creates a text block.
func NewText(text string, style backend.Style) *Text {
	return &Text{text: text, style: style}
}

// SetText replaces the text.
func (t *Text) SetText(text string) {
	t.text = text
	t.lines = Wrap(text, t.bounds.Width)
}

// SetAlignment sets line alignment.
func (t *Text) SetAlignment(align Alignment) {
	t.align = align
}

// Measure returns the wrapped height at the offered width.
func (t *Text) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: len(Wrap(t.text, constraints.MaxWidth))})
}

// Layout wraps the text to the new width.
func (t *Text) Layout(bounds runtime.Rect) {
	t.Base.Layout(bounds)
	t.lines = Wrap(t.text, bounds.Width)
}

// Render draws the wrapped lines.
func (t *Text) Render(ctx runtime.RenderContext) {
	sub := ctx.Sub(t.bounds)
	for y, line := range t.lines {
		sub.Text(alignedX(t.align, t.bounds.Width, runewidth.StringWidth(line)), y, line, t.style)
	}
}
