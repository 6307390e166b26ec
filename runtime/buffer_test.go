package runtime

import (
	"testing"

	"github.com/odvcencio/furry-motion/backend"
)

func TestBuffer_DirtyTracking(t *testing.T) {
	buf := NewBuffer(4, 3)
	if buf.DirtyCount() != 12 {
		t.Fatalf("expected new buffer fully dirty, got %d", buf.DirtyCount())
	}
	buf.ClearDirty()

	buf.Set(1, 1, ' ', backend.DefaultStyle())
	if buf.IsDirty() {
		t.Fatalf("expected identical write to stay clean")
	}
	buf.Set(1, 1, 'a', backend.DefaultStyle())
	buf.Set(2, 1, 'b', backend.DefaultStyle())
	buf.Set(1, 1, 'c', backend.DefaultStyle())
	if buf.DirtyCount() != 2 {
		t.Fatalf("expected 2 dirty cells, got %d", buf.DirtyCount())
	}
	if got := buf.DirtyRect(); got != (Rect{X: 1, Y: 1, Width: 2, Height: 1}) {
		t.Fatalf("unexpected dirty rect %+v", got)
	}

	var spans [][3]int
	buf.ForEachDirtySpan(func(y, startX, endX int) {
		spans = append(spans, [3]int{y, startX, endX})
	})
	if len(spans) != 1 || spans[0] != [3]int{1, 1, 3} {
		t.Fatalf("unexpected spans %v", spans)
	}
}

func TestBuffer_SetStringClipsAndHandlesWide(t *testing.T) {
	buf := NewBuffer(5, 1)
	if n := buf.SetString(0, 0, "日本x", backend.DefaultStyle()); n != 5 {
		t.Fatalf("expected 5 columns, got %d", n)
	}
	if got := buf.Row(0); got != "日本x" {
		t.Fatalf("unexpected row %q", got)
	}
	if buf.Get(1, 0).Rune != 0 {
		t.Fatalf("expected continuation cell after wide rune")
	}

	buf.Clear()
	if n := buf.SetString(3, 0, "日本", backend.DefaultStyle()); n != 2 {
		t.Fatalf("expected one wide rune to fit, got %d columns", n)
	}
	if got := buf.Row(0); got != "   日" {
		t.Fatalf("unexpected clipped row %q", got)
	}
	buf.SetString(-2, 0, "abcd", backend.DefaultStyle())
	if got := buf.Row(0); got[:2] != "cd" {
		t.Fatalf("expected negative x to clip the left edge, got %q", got)
	}
}

func TestBuffer_ResizeKeepsOverlap(t *testing.T) {
	buf := NewBuffer(3, 2)
	buf.SetString(0, 0, "abc", backend.DefaultStyle())
	buf.ClearDirty()
	buf.Resize(2, 3)
	if got := buf.Row(0); got != "ab" {
		t.Fatalf("unexpected row after resize %q", got)
	}
	if buf.DirtyCount() != 6 {
		t.Fatalf("expected resize to dirty everything, got %d", buf.DirtyCount())
	}
}

func TestBuffer_DrawBox(t *testing.T) {
	buf := NewBuffer(4, 3)
	buf.DrawBox(Rect{Width: 4, Height: 3}, BoxRounded, backend.DefaultStyle())
	want := []string{"╭──╮", "│  │", "╰──╯"}
	for y, row := range want {
		if got := buf.Row(y); got != row {
			t.Fatalf("row %d: expected %q, got %q", y, row, got)
		}
	}
}

func TestRect_Ops(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 4, Height: 4}
	b := Rect{X: 2, Y: 3, Width: 4, Height: 4}
	if got := a.Intersect(b); got != (Rect{X: 2, Y: 3, Width: 2, Height: 1}) {
		t.Fatalf("unexpected intersection %+v", got)
	}
	if got := a.Union(b); got != (Rect{Width: 6, Height: 7}) {
		t.Fatalf("unexpected union %+v", got)
	}
	if !a.Intersect(Rect{X: 10, Width: 1, Height: 1}).Empty() {
		t.Fatalf("expected disjoint rects to have empty intersection")
	}
	if got := a.Inset(1); got != (Rect{X: 1, Y: 1, Width: 2, Height: 2}) {
		t.Fatalf("unexpected inset %+v", got)
	}
	c := Constraints{MinWidth: 2, MaxWidth: 5, MinHeight: 1, MaxHeight: 1}
	if got := c.Constrain(Size{Width: 9, Height: 0}); got != (Size{Width: 5, Height: 1}) {
		t.Fatalf("unexpected constrained size %+v", got)
	}
}
