package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/furry-motion/backend"
	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/state"
)

// SignalLabel shows the current value of a string source on one line.
// It follows the source only while bound.
type SignalLabel struct {
	Component
	source    state.Readable[string]
	text      string
	style     backend.Style
	alignment Alignment
}

// NewSignalLabel creates a label over source, which may be set later.
func NewSignalLabel(source state.Readable[string]) *SignalLabel {
	return &SignalLabel{source: source, text: readText(source), style: backend.DefaultStyle()}
}

func readText(source state.Readable[string]) string {
	if source == nil {
		return ""
	}
	return source.Get()
}

// SetSource swaps the source. Call it before the label is bound.
func (s *SignalLabel) SetSource(source state.Readable[string]) {
	s.source = source
	s.text = readText(source)
}

// Text returns the text last read from the source.
func (s *SignalLabel) Text() string {
	return s.text
}

// SetStyle sets the label style.
func (s *SignalLabel) SetStyle(style backend.Style) {
	s.style = style
}

// SetAlignment sets text alignment.
func (s *SignalLabel) SetAlignment(align Alignment) {
	s.alignment = align
}

// Bind starts following the source.
func (s *SignalLabel) Bind(services runtime.Services) {
	s.Component.Bind(services)
	s.text = readText(s.source)
	if s.source != nil {
		s.Observe(s.source, s.refresh)
	}
}

func (s *SignalLabel) refresh() {
	s.text = readText(s.source)
	s.Invalidate()
}

// Measure returns the text width on one line.
func (s *SignalLabel) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: runewidth.StringWidth(s.text), Height: 1})
}

// Render draws the label.
func (s *SignalLabel) Render(ctx runtime.RenderContext) {
	if s.bounds.Empty() {
		return
	}
	text := truncate(s.text, s.bounds.Width)
	x := alignedX(s.alignment, s.bounds.Width, runewidth.StringWidth(text))
	ctx.Sub(s.bounds).Text(x, 0, text, s.style)
}
