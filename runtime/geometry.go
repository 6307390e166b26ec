// Package runtime runs a widget tree against a terminal backend: it owns the
// event loop, the frame clock for springs, and the cell buffer widgets draw
// into.
package runtime

// Rect is a cell rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.Width, o.X+o.Width), min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Union returns the smallest rectangle covering r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.Width, o.X+o.Width), max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Inset shrinks r by n cells on every side.
func (r Rect) Inset(n int) Rect {
	r.X += n
	r.Y += n
	r.Width = max(0, r.Width-2*n)
	r.Height = max(0, r.Height-2*n)
	return r
}

// Size is a width and height in cells.
type Size struct {
	Width  int
	Height int
}

// Constraints bound a widget's measured size.
type Constraints struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
}

// Tight returns constraints that only admit s.
func Tight(s Size) Constraints {
	return Constraints{MinWidth: s.Width, MaxWidth: s.Width, MinHeight: s.Height, MaxHeight: s.Height}
}

// Unbounded returns constraints with no upper limit.
func Unbounded() Constraints {
	return Constraints{MaxWidth: maxInt, MaxHeight: maxInt}
}

const maxInt = int(^uint(0) >> 1)

// Constrain clamps s into c.
func (c Constraints) Constrain(s Size) Size {
	s.Width = min(max(s.Width, c.MinWidth), c.MaxWidth)
	s.Height = min(max(s.Height, c.MinHeight), c.MaxHeight)
	return s
}

// Widget is a node in the render tree.
type Widget interface {
	Measure(constraints Constraints) Size
	Layout(bounds Rect)
	Render(ctx RenderContext)
	HandleMessage(msg Message) HandleResult
}

// ChildProvider exposes a widget's children for tree walks.
type ChildProvider interface {
	ChildWidgets() []Widget
}

// BoundsProvider exposes a widget's laid-out bounds.
type BoundsProvider interface {
	Bounds() Rect
}

// HandleResult reports whether a message was consumed and which commands
// it produced.
type HandleResult struct {
	Handled  bool
	Commands []Command
}

// Handled returns a consumed result.
func Handled() HandleResult {
	return HandleResult{Handled: true}
}

// Unhandled returns a result that lets the message continue.
func Unhandled() HandleResult {
	return HandleResult{}
}

// WithCommand returns a consumed result carrying cmd.
func WithCommand(cmd Command) HandleResult {
	return HandleResult{Handled: true, Commands: []Command{cmd}}
}

// WithCommands returns a consumed result carrying cmds.
func WithCommands(cmds ...Command) HandleResult {
	return HandleResult{Handled: true, Commands: cmds}
}
