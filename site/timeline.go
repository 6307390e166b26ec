package site

import (
	"math"

	"github.com/odvcencio/furry-motion/motion"
	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/scroll"
	"github.com/odvcencio/furry-motion/state"
	"github.com/odvcencio/furry-motion/widgets"
)

// Timeline lists milestones beside a bar that fills as the section
// scrolls past three quarters of the viewport.
type Timeline struct {
	widgets.Component
	events  []TimelineEvent
	theme   Theme
	src     scroll.Source
	tracker *scroll.Tracker
	bar     *motion.Spring
	raw     state.Readable[float64]
	placed  bool

	rows   []row
	starts []int
}

const timelineHeader = 3

// NewTimeline creates the timeline section.
func NewTimeline(events []TimelineEvent, theme Theme, src scroll.Source) *Timeline {
	t := &Timeline{events: events, theme: theme, src: src}
	t.tracker = elementTracker(src, t, timelineStart, timelineEnd)
	return t
}

// Bind smooths the section progress on the app driver.
func (t *Timeline) Bind(services runtime.Services) {
	t.Component.Bind(services)
	progress, release := t.tracker.Acquire()
	t.Subs.Add(release)
	t.raw = progress
	bar, err := motion.NewSpring(services.Driver(), progress, TimelineSpring)
	if err != nil {
		return
	}
	t.bar = bar
	t.Subs.AddStopper(bar)
}

// Unbind stops the bar.
func (t *Timeline) Unbind() {
	t.Component.Unbind()
	t.bar, t.raw, t.placed = nil, nil, false
}

// Tracker returns the section progress tracker.
func (t *Timeline) Tracker() *scroll.Tracker {
	return t.tracker
}

// Progress returns the smoothed fill in [0, 1].
func (t *Timeline) Progress() float64 {
	if t.bar == nil {
		return 0
	}
	return t.bar.Get()
}

func (t *Timeline) layoutRows(width int) ([]row, []int) {
	rows := sectionHeader("Journey", "Milestones", t.theme)
	starts := make([]int, 0, len(t.events))
	for _, ev := range t.events {
		starts = append(starts, len(rows))
		rows = append(rows, row{X: 5, Text: ev.Year + "  " + ev.Title, Style: t.theme.Heading})
		rows = append(rows, wrapRows(ev.Desc, width-2, 11, t.theme.Muted)...)
		rows = append(rows, row{})
	}
	return rows, starts
}

// Measure returns the wrapped height.
func (t *Timeline) Measure(constraints runtime.Constraints) runtime.Size {
	rows, _ := t.layoutRows(constraints.MaxWidth)
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: len(rows)})
}

// Layout wraps the events and re-measures progress. The first layout
// places the bar without animating, since progress measured before the
// section had bounds is meaningless.
func (t *Timeline) Layout(bounds runtime.Rect) {
	t.Component.Layout(bounds)
	t.rows, t.starts = t.layoutRows(bounds.Width)
	t.tracker.Update()
	if t.bar != nil && !t.placed {
		t.bar.Jump(t.raw.Get())
		t.placed = true
	}
}

// Filled returns the number of bar rows lit.
func (t *Timeline) Filled() int {
	length := len(t.rows) - timelineHeader
	if length <= 0 {
		return 0
	}
	return int(math.Round(t.Progress() * float64(length)))
}

// Render draws the bar, then the events; reached events are highlighted.
func (t *Timeline) Render(ctx runtime.RenderContext) {
	sub := ctx.Sub(t.Bounds())
	filled := t.Filled()
	for y := timelineHeader; y < len(t.rows); y++ {
		if y-timelineHeader < filled {
			sub.Set(2, y, '┃', t.theme.Accent)
		} else {
			sub.Set(2, y, '│', t.theme.Border)
		}
	}
	drawRows(sub, t.rows)
	for i, start := range t.starts {
		reached := start-timelineHeader < filled
		marker, style := '○', t.theme.Muted
		if reached {
			marker, style = '●', t.theme.Accent
		}
		sub.Set(2, start, marker, style)
		sub.Text(5, start, t.events[i].Year, style)
	}
}
