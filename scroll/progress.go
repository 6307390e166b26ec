package scroll

import (
	"sync"

	"github.com/odvcencio/furry-motion/state"
)

// TrackerState describes whether a tracker is listening to its source.
type TrackerState int

const (
	// Idle trackers hold no source subscription.
	Idle TrackerState = iota
	// Tracking trackers recompute progress on every source change.
	Tracking
)

func (s TrackerState) String() string {
	switch s {
	case Tracking:
		return "tracking"
	default:
		return "idle"
	}
}

// Progress returns how far a document of height doc has been scrolled
// through a viewport of height view, in [0, 1]. Documents that fit in the
// viewport report 0.
func Progress(offset, doc, view float64) float64 {
	limit := doc - view
	if !(limit > 0) {
		return 0
	}
	return clampUnit(offset / limit)
}

// Anchor places the start or end of an element range relative to the
// viewport: Element is a fraction of the element height, View a fraction of
// the viewport height.
type Anchor struct {
	Element float64
	View    float64
}

var (
	// EnterViewport starts when the element's top reaches the viewport bottom.
	EnterViewport = Anchor{Element: 0, View: 1}
	// LeaveViewport ends when the element's bottom reaches the viewport top.
	LeaveViewport = Anchor{Element: 1, View: 0}
)

// ElementProgress returns the progress of an element spanning
// [top, top+height] in document coordinates between the scroll offsets at
// which start and end line up.
func ElementProgress(offset, view, top, height float64, start, end Anchor) float64 {
	from := top + start.Element*height - start.View*view
	to := top + end.Element*height - end.View*view
	if !(to > from) {
		if offset >= to {
			return 1
		}
		return 0
	}
	return clampUnit((offset - from) / (to - from))
}

func clampUnit(v float64) float64 {
	switch {
	case v != v, v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Measure computes a progress value from a source.
type Measure func(Source) float64

// DocumentMeasure measures whole-document progress.
func DocumentMeasure(src Source) float64 {
	return Progress(src.ScrollOffset(), src.DocumentHeight(), src.ViewportHeight())
}

// ElementMeasure measures the progress of an element whose bounds are read
// on every change, so layout updates are picked up.
func ElementMeasure(bounds func() (top, height float64), start, end Anchor) Measure {
	return func(src Source) float64 {
		top, height := bounds()
		return ElementProgress(src.ScrollOffset(), src.ViewportHeight(), top, height, start, end)
	}
}

// Tracker owns a progress value derived from a Source. It subscribes to the
// source only while at least one consumer holds the value.
type Tracker struct {
	source   Source
	measure  Measure
	progress *state.Signal[float64]

	mu    sync.Mutex
	refs  int
	unsub func()
}

// NewTracker creates an idle tracker of whole-document progress.
func NewTracker(src Source) *Tracker {
	return NewMeasuredTracker(src, DocumentMeasure)
}

// NewMeasuredTracker creates an idle tracker using a custom measure.
func NewMeasuredTracker(src Source, measure Measure) *Tracker {
	if measure == nil {
		measure = DocumentMeasure
	}
	return &Tracker{
		source:   src,
		measure:  measure,
		progress: state.NewSignal(0.0),
	}
}

// Acquire returns the shared progress value and a release func. The first
// acquire starts tracking and computes the current progress immediately; the
// last release stops tracking. Release is idempotent.
func (t *Tracker) Acquire() (state.Readable[float64], func()) {
	t.mu.Lock()
	t.refs++
	start := t.refs == 1 && t.source != nil
	t.mu.Unlock()

	if start {
		unsub := t.source.OnChange(t.Update)
		t.mu.Lock()
		if t.refs > 0 && t.unsub == nil {
			t.unsub = unsub
			unsub = nil
		}
		t.mu.Unlock()
		if unsub != nil {
			unsub()
		}
		t.Update()
	}

	var once sync.Once
	return t.progress, func() {
		once.Do(t.release)
	}
}

func (t *Tracker) release() {
	t.mu.Lock()
	if t.refs == 0 {
		t.mu.Unlock()
		return
	}
	t.refs--
	var unsub func()
	if t.refs == 0 {
		unsub = t.unsub
		t.unsub = nil
	}
	t.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// Update recomputes progress from the source and notifies consumers.
func (t *Tracker) Update() {
	if t == nil || t.source == nil {
		return
	}
	t.progress.Set(t.measure(t.source))
}

// State reports whether the tracker is listening to its source.
func (t *Tracker) State() TrackerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.unsub != nil {
		return Tracking
	}
	return Idle
}

// Refs returns the number of consumers holding the progress value.
func (t *Tracker) Refs() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refs
}
