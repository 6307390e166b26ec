package widgets

import "github.com/odvcencio/furry-motion/runtime"

// VStack lays children out top to bottom at their measured heights.
type VStack struct {
	Base
	Children []runtime.Widget
	Gap      int
	rects    []runtime.Rect
}

// NewVStack creates a stack of children.
func NewVStack(children ...runtime.Widget) *VStack {
	return &VStack{Children: children}
}

// Add appends a child.
func (v *VStack) Add(child runtime.Widget) {
	if child != nil {
		v.Children = append(v.Children, child)
	}
}

// Measure sums the children's heights at the offered width.
func (v *VStack) Measure(constraints runtime.Constraints) runtime.Size {
	width := constraints.MaxWidth
	height := 0
	for i, child := range v.Children {
		if i > 0 {
			height += v.Gap
		}
		height += child.Measure(childConstraints(width)).Height
	}
	return constraints.Constrain(runtime.Size{Width: width, Height: height})
}

func childConstraints(width int) runtime.Constraints {
	return runtime.Constraints{MinWidth: width, MaxWidth: width, MaxHeight: int(^uint(0) >> 1)}
}

// Layout stacks the children inside bounds.
func (v *VStack) Layout(bounds runtime.Rect) {
	v.Base.Layout(bounds)
	v.rects = v.rects[:0]
	y := bounds.Y
	for i, child := range v.Children {
		if i > 0 {
			y += v.Gap
		}
		h := child.Measure(childConstraints(bounds.Width)).Height
		rect := runtime.Rect{X: bounds.X, Y: y, Width: bounds.Width, Height: h}
		v.rects = append(v.rects, rect)
		child.Layout(rect)
		y += h
	}
}

// ChildRect returns the laid-out rectangle of child i.
func (v *VStack) ChildRect(i int) runtime.Rect {
	if i < 0 || i >= len(v.rects) {
		return runtime.Rect{}
	}
	return v.rects[i]
}

// Render draws the children that intersect the render bounds.
func (v *VStack) Render(ctx runtime.RenderContext) {
	for i, child := range v.Children {
		if i < len(v.rects) && v.rects[i].Intersect(ctx.Bounds).Empty() {
			continue
		}
		child.Render(ctx)
	}
}

// HandleMessage offers msg to each child in order.
func (v *VStack) HandleMessage(msg runtime.Message) runtime.HandleResult {
	for _, child := range v.Children {
		if result := child.HandleMessage(msg); result.Handled {
			return result
		}
	}
	return runtime.Unhandled()
}

// ChildWidgets returns the children.
func (v *VStack) ChildWidgets() []runtime.Widget {
	return v.Children
}
