package widgets

import "github.com/odvcencio/furry-motion/runtime"

// Grid flows children into equal columns of fixed-height rows.
type Grid struct {
	Base
	Cols      int
	RowHeight int
	Gap       int
	Children  []runtime.Widget
}

// NewGrid creates a grid with cols columns of rowHeight-tall cells.
func NewGrid(cols, rowHeight int) *Grid {
	return &Grid{Cols: max(1, cols), RowHeight: max(1, rowHeight)}
}

// Add appends a child in the next free cell.
func (g *Grid) Add(child runtime.Widget) {
	if child != nil {
		g.Children = append(g.Children, child)
	}
}

// Rows returns the number of rows in use.
func (g *Grid) Rows() int {
	return (len(g.Children) + g.cols() - 1) / g.cols()
}

func (g *Grid) cols() int {
	return max(1, g.Cols)
}

// Measure returns the height needed for every row.
func (g *Grid) Measure(constraints runtime.Constraints) runtime.Size {
	rows := g.Rows()
	height := rows*g.RowHeight + g.Gap*max(0, rows-1)
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: height})
}

// Layout positions children row by row.
func (g *Grid) Layout(bounds runtime.Rect) {
	g.Base.Layout(bounds)
	cols := g.cols()
	cellW := max(0, (bounds.Width-g.Gap*(cols-1))/cols)
	for i, child := range g.Children {
		row, col := i/cols, i%cols
		child.Layout(runtime.Rect{
			X:      bounds.X + col*(cellW+g.Gap),
			Y:      bounds.Y + row*(g.RowHeight+g.Gap),
			Width:  cellW,
			Height: g.RowHeight,
		})
	}
}

// CellAt returns the index of the child at (x, y), or -1.
func (g *Grid) CellAt(x, y int) int {
	for i, child := range g.Children {
		if b, ok := child.(runtime.BoundsProvider); ok && b.Bounds().Contains(x, y) {
			return i
		}
	}
	return -1
}

// Render draws all children.
func (g *Grid) Render(ctx runtime.RenderContext) {
	for _, child := range g.Children {
		child.Render(ctx)
	}
}

// HandleMessage forwards messages to children.
func (g *Grid) HandleMessage(msg runtime.Message) runtime.HandleResult {
	for _, child := range g.Children {
		if result := child.HandleMessage(msg); result.Handled {
			return result
		}
	}
	return runtime.Unhandled()
}

// ChildWidgets returns grid children.
func (g *Grid) ChildWidgets() []runtime.Widget {
	return g.Children
}
