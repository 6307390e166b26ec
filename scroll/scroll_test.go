package scroll

import (
	"image"
	"math"
	"testing"

	"github.com/odvcencio/furry-motion/runtime"
)

func TestViewportClampOffset(t *testing.T) {
	v := NewViewport()
	v.SetViewSize(runtime.Size{Width: 10, Height: 5})
	v.SetContentSize(runtime.Size{Width: 30, Height: 20})

	v.SetOffset(100, 100)
	if got := v.Offset(); got != (image.Point{X: 20, Y: 15}) {
		t.Fatalf("offset clamp = %+v, want %+v", got, image.Point{X: 20, Y: 15})
	}

	v.SetOffset(-5, -7)
	if got := v.Offset(); got != (image.Point{}) {
		t.Fatalf("offset clamp negative = %+v, want %+v", got, image.Point{})
	}
}

func TestViewportMaxOffsetAndVisibleRect(t *testing.T) {
	v := NewViewport()
	v.SetViewSize(runtime.Size{Width: 10, Height: 5})
	v.SetContentSize(runtime.Size{Width: 8, Height: 4})
	if got := v.MaxOffset(); got != (image.Point{}) {
		t.Fatalf("max offset = %+v, want %+v", got, image.Point{})
	}

	v.SetContentSize(runtime.Size{Width: 30, Height: 20})
	v.SetOffset(4, 3)
	if got := v.VisibleRect(); got != (runtime.Rect{X: 4, Y: 3, Width: 10, Height: 5}) {
		t.Fatalf("visible rect = %+v, want %+v", got, runtime.Rect{X: 4, Y: 3, Width: 10, Height: 5})
	}
}

func TestViewportNotifiesOnScrollAndResize(t *testing.T) {
	v := NewViewport()
	calls := 0
	unsub := v.OnChange(func() { calls++ })

	v.SetViewSize(runtime.Size{Width: 10, Height: 10})
	v.SetContentSize(runtime.Size{Width: 10, Height: 110})
	v.ScrollBy(0, 25)
	v.ScrollBy(0, 0)
	if calls != 3 {
		t.Fatalf("expected 3 notifications, got %d", calls)
	}

	v.PageBy(1)
	if got := v.Offset().Y; got != 35 {
		t.Fatalf("expected page to move one view height, got %d", got)
	}
	v.ScrollToEnd()
	if got := v.ScrollOffset(); got != 100 {
		t.Fatalf("expected end offset 100, got %v", got)
	}

	unsub()
	unsub()
	v.ScrollToStart()
	if calls != 5 {
		t.Fatalf("expected no notifications after unsubscribe, got %d", calls)
	}
}

func TestProgress(t *testing.T) {
	cases := []struct {
		offset, doc, view, want float64
	}{
		{0, 1000, 200, 0},
		{400, 1000, 200, 0.5},
		{800, 1000, 200, 1},
		{900, 1000, 200, 1},
		{-10, 1000, 200, 0},
		{50, 200, 200, 0},
		{50, 100, 200, 0},
	}
	for _, tc := range cases {
		if got := Progress(tc.offset, tc.doc, tc.view); got != tc.want {
			t.Fatalf("Progress(%v, %v, %v) = %v, want %v", tc.offset, tc.doc, tc.view, got, tc.want)
		}
	}
}

func TestElementProgress(t *testing.T) {
	// Element at [1000, 1400], viewport 400: enters at offset 600, leaves at 1400.
	cases := map[float64]float64{
		0:    0,
		600:  0,
		1000: 0.5,
		1400: 1,
		2000: 1,
	}
	for offset, want := range cases {
		got := ElementProgress(offset, 400, 1000, 400, EnterViewport, LeaveViewport)
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("ElementProgress(%v) = %v, want %v", offset, got, want)
		}
	}

	line := Anchor{View: 0.75}
	endLine := Anchor{Element: 1, View: 0.75}
	if got := ElementProgress(700, 400, 1000, 400, line, endLine); got != 0 {
		t.Fatalf("expected start at 75%% line, got %v", got)
	}
	if got := ElementProgress(900, 400, 1000, 400, line, endLine); got != 0.5 {
		t.Fatalf("expected midpoint, got %v", got)
	}
}

func TestTrackerLifecycle(t *testing.T) {
	v := NewViewport()
	v.SetViewSize(runtime.Size{Width: 10, Height: 200})
	v.SetContentSize(runtime.Size{Width: 10, Height: 1000})
	v.SetOffset(0, 400)

	tracker := NewTracker(v)
	if tracker.State() != Idle {
		t.Fatalf("expected new tracker to be idle")
	}

	progress, release := tracker.Acquire()
	if tracker.State() != Tracking {
		t.Fatalf("expected first acquire to start tracking")
	}
	if got := progress.Get(); got != 0.5 {
		t.Fatalf("expected immediate progress 0.5, got %v", got)
	}

	second, releaseSecond := tracker.Acquire()
	if second != progress {
		t.Fatalf("expected consumers to share one progress value")
	}
	var seen []float64
	stop := second.On(func(p float64) { seen = append(seen, p) })
	v.SetOffset(0, 800)
	if len(seen) != 1 || seen[0] != 1 {
		t.Fatalf("expected synchronous notification with 1, got %v", seen)
	}
	stop()

	release()
	release()
	if tracker.State() != Tracking || tracker.Refs() != 1 {
		t.Fatalf("expected double release to drop one reference, refs=%d", tracker.Refs())
	}
	releaseSecond()
	if tracker.State() != Idle {
		t.Fatalf("expected last release to stop tracking")
	}

	v.SetOffset(0, 0)
	if got := progress.Get(); got != 1 {
		t.Fatalf("expected idle tracker to ignore scrolls, got %v", got)
	}

	// Repeated mount and unmount must not grow the source's listener set.
	for i := 0; i < 50; i++ {
		_, r := tracker.Acquire()
		r()
	}
	if got := v.changes.Listeners(); got != 0 {
		t.Fatalf("expected no leaked source listeners, got %d", got)
	}
}

func TestElementTracker(t *testing.T) {
	v := NewViewport()
	v.SetViewSize(runtime.Size{Width: 10, Height: 400})
	v.SetContentSize(runtime.Size{Width: 10, Height: 3000})

	top := 1000.0
	tracker := NewMeasuredTracker(v, ElementMeasure(func() (float64, float64) { return top, 400 }, EnterViewport, LeaveViewport))
	progress, release := tracker.Acquire()
	defer release()

	v.SetOffset(0, 1000)
	if got := progress.Get(); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
	top = 1400
	tracker.Update()
	if got := progress.Get(); got != 0 {
		t.Fatalf("expected relayout to move progress to 0, got %v", got)
	}
}

func TestFixedHeightIndex(t *testing.T) {
	index := FixedHeightIndex{
		Height: 2,
		Count: func() int {
			return 5
		},
	}
	if got := index.TotalHeight(); got != 10 {
		t.Fatalf("total height = %d, want 10", got)
	}
	if got := index.IndexForOffset(0); got != 0 {
		t.Fatalf("index for offset 0 = %d, want 0", got)
	}
	if got := index.IndexForOffset(9); got != 4 {
		t.Fatalf("index for offset 9 = %d, want 4", got)
	}
	if got := index.IndexForOffset(100); got != 4 {
		t.Fatalf("index for offset 100 = %d, want 4", got)
	}
	if got := index.OffsetForIndex(0); got != 0 {
		t.Fatalf("offset for index 0 = %d, want 0", got)
	}
	if got := index.OffsetForIndex(10); got != 8 {
		t.Fatalf("offset for index 10 = %d, want 8", got)
	}
}

func TestFixedHeightIndexTriggerPoint(t *testing.T) {
	index := FixedHeightIndex{Height: 1, Count: func() int { return 4 }}
	cases := map[int]float64{0: 0.1, 1: 0.35, 3: 0.85, 9: 0.85}
	for i, want := range cases {
		if got := index.TriggerPoint(i, 0.4); math.Abs(got-want) > 1e-12 {
			t.Fatalf("TriggerPoint(%d) = %v, want %v", i, got, want)
		}
	}
	if got := (FixedHeightIndex{}).TriggerPoint(1, 0.4); got != 0 {
		t.Fatalf("expected empty index trigger 0, got %v", got)
	}
}
