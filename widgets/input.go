package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-motion/backend"
	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/terminal"
)

// Input is a one-line text field. Enter emits runtime.Submit and Escape
// emits runtime.Cancel.
type Input struct {
	Base
	text        []rune
	cursor      int
	style       backend.Style
	focusStyle  backend.Style
	placeholder string
	onSubmit    func(text string)
	onChange    func(text string)
}

// NewInput creates an empty, focused input.
func NewInput() *Input {
	in := &Input{
		style:      backend.DefaultStyle(),
		focusStyle: backend.DefaultStyle().With(backend.AttrBold),
	}
	in.Focus()
	return in
}

// SetPlaceholder sets the hint shown while empty.
func (i *Input) SetPlaceholder(text string) { i.placeholder = text }

// SetStyle sets the unfocused and focused styles.
func (i *Input) SetStyle(style, focused backend.Style) {
	i.style, i.focusStyle = style, focused
}

// OnSubmit registers the Enter callback.
func (i *Input) OnSubmit(fn func(text string)) { i.onSubmit = fn }

// OnChange registers the edit callback.
func (i *Input) OnChange(fn func(text string)) { i.onChange = fn }

// Text returns the current text.
func (i *Input) Text() string { return string(i.text) }

// SetText replaces the text and moves the cursor to the end.
func (i *Input) SetText(text string) {
	i.text = []rune(text)
	i.cursor = len(i.text)
}

// Clear empties the field.
func (i *Input) Clear() { i.SetText("") }

// Cursor returns the cursor position in runes.
func (i *Input) Cursor() int { return i.cursor }

// Measure asks for one full-width line.
func (i *Input) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: 1})
}

// Render draws the text scrolled so the cursor stays visible.
func (i *Input) Render(ctx runtime.RenderContext) {
	if i.bounds.Empty() {
		return
	}
	style := i.style
	if i.focused {
		style = i.focusStyle
	}
	sub := ctx.Sub(runtime.Rect{X: i.bounds.X, Y: i.bounds.Y, Width: i.bounds.Width, Height: 1})
	sub.Clear(style)
	if len(i.text) == 0 && i.placeholder != "" {
		sub.Text(0, 0, i.placeholder, style.With(backend.AttrDim))
	}

	start := 0
	for runewidth.StringWidth(string(i.text[start:i.cursor])) >= i.bounds.Width {
		start++
	}
	sub.Text(0, 0, string(i.text[start:]), style)
	if !i.focused {
		return
	}
	cursorX := runewidth.StringWidth(string(i.text[start:i.cursor]))
	ch := ' '
	if i.cursor < len(i.text) {
		ch = i.text[i.cursor]
	}
	sub.Set(cursorX, 0, ch, style.With(backend.AttrReverse))
}

// HandleMessage edits the text while focused.
func (i *Input) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if !i.focused {
		return runtime.Unhandled()
	}
	switch m := msg.(type) {
	case runtime.PasteMsg:
		i.insert([]rune(strings.ReplaceAll(m.Text, "\n", " ")))
		return runtime.Handled()
	case runtime.KeyMsg:
		return i.handleKey(m)
	}
	return runtime.Unhandled()
}

func (i *Input) handleKey(key runtime.KeyMsg) runtime.HandleResult {
	switch key.Key {
	case terminal.KeyEnter:
		text := i.Text()
		if i.onSubmit != nil {
			i.onSubmit(text)
		}
		return runtime.WithCommand(runtime.Submit{Text: text})
	case terminal.KeyEscape:
		return runtime.WithCommand(runtime.Cancel{})
	case terminal.KeyBackspace:
		if i.cursor > 0 {
			i.text = append(i.text[:i.cursor-1], i.text[i.cursor:]...)
			i.cursor--
			i.changed()
		}
	case terminal.KeyDelete:
		if i.cursor < len(i.text) {
			i.text = append(i.text[:i.cursor], i.text[i.cursor+1:]...)
			i.changed()
		}
	case terminal.KeyLeft:
		if key.Ctrl {
			i.cursor = i.wordLeft()
		} else if i.cursor > 0 {
			i.cursor--
		}
	case terminal.KeyRight:
		if key.Ctrl {
			i.cursor = i.wordRight()
		} else if i.cursor < len(i.text) {
			i.cursor++
		}
	case terminal.KeyHome:
		i.cursor = 0
	case terminal.KeyEnd:
		i.cursor = len(i.text)
	case terminal.KeyRune:
		i.insert([]rune{key.Rune})
	default:
		return runtime.Unhandled()
	}
	return runtime.Handled()
}

func (i *Input) insert(rs []rune) {
	if len(rs) == 0 {
		return
	}
	text := make([]rune, 0, len(i.text)+len(rs))
	text = append(text, i.text[:i.cursor]...)
	text = append(text, rs...)
	text = append(text, i.text[i.cursor:]...)
	i.text = text
	i.cursor += len(rs)
	i.changed()
}

func (i *Input) changed() {
	if i.onChange != nil {
		i.onChange(i.Text())
	}
}

func (i *Input) wordLeft() int {
	pos := i.cursor
	for pos > 0 && i.text[pos-1] == ' ' {
		pos--
	}
	for pos > 0 && i.text[pos-1] != ' ' {
		pos--
	}
	return pos
}

func (i *Input) wordRight() int {
	pos := i.cursor
	for pos < len(i.text) && i.text[pos] != ' ' {
		pos++
	}
	for pos < len(i.text) && i.text[pos] == ' ' {
		pos++
	}
	return pos
}
