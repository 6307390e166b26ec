package site

import (
	"fmt"
	"math"
	"strings"

	"github.com/odvcencio/furry-motion/backend"
	"github.com/odvcencio/furry-motion/motion"
	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/scroll"
	"github.com/odvcencio/furry-motion/state"
	"github.com/odvcencio/furry-motion/terminal"
	"github.com/odvcencio/furry-motion/widgets"
)

const (
	stepHeight = 10
	// stepLead places each trigger this far into the step's sector.
	stepLead = 0.4
	// stepRamp is the progress span over which a step activates.
	stepRamp = 0.1

	deconstructHeader = 3
	deconstructFooter = 2
)

var (
	idleBorder   = "rgba(255,255,255,0.1)"
	activeBorder = "rgba(162, 210, 255, 0.8)"
)

// StepState is a snapshot of one process step's animated values.
type StepState struct {
	Trigger     float64
	Active      float64
	Opacity     float64
	Scale       float64
	Grayscale   float64
	BorderWidth float64
	Border      motion.RGBA
}

// stepMotion derives a step's styling from the view's scroll progress.
type stepMotion struct {
	trigger     float64
	active      *motion.Derived[float64]
	opacity     *motion.Derived[float64]
	scale       *motion.Derived[float64]
	grayscale   *motion.Derived[float64]
	borderWidth *motion.Derived[float64]
	border      *motion.Derived[motion.RGBA]
}

func newStepMotion(progress state.Readable[float64], trigger float64) (*stepMotion, error) {
	active, err := motion.Interpolate(progress, []float64{trigger, trigger + stepRamp}, []float64{0, 1})
	if err != nil {
		return nil, fmt.Errorf("step at %g: %w", trigger, err)
	}
	border, err := motion.InterpolateColor(active, []float64{0, 1}, []string{idleBorder, activeBorder})
	if err != nil {
		active.Stop()
		return nil, err
	}
	unit := []float64{0, 1}
	return &stepMotion{
		trigger:     trigger,
		active:      active,
		opacity:     motion.MustInterpolate(active, unit, []float64{0.3, 1}),
		scale:       motion.MustInterpolate(active, unit, []float64{1, 1.05}),
		grayscale:   motion.MustInterpolate(active, unit, []float64{1, 0}),
		borderWidth: motion.MustInterpolate(active, unit, []float64{1, 2}),
		border:      border,
	}, nil
}

func (s *stepMotion) snapshot() StepState {
	return StepState{
		Trigger:     s.trigger,
		Active:      s.active.Get(),
		Opacity:     s.opacity.Get(),
		Scale:       s.scale.Get(),
		Grayscale:   s.grayscale.Get(),
		BorderWidth: s.borderWidth.Get(),
		Border:      s.border.Get(),
	}
}

func (s *stepMotion) Stop() {
	s.border.Stop()
	s.borderWidth.Stop()
	s.grayscale.Stop()
	s.scale.Stop()
	s.opacity.Stop()
	s.active.Stop()
}

// Deconstruction is the full-screen process view of a project. It scrolls
// independently of the page and draws a path that follows its progress.
type Deconstruction struct {
	widgets.Component
	project Project
	process []ProcessStep
	theme   Theme
	view    *widgets.ScrollView
	tracker *scroll.Tracker
	index   scroll.FixedHeightIndex

	path  *motion.Spring
	steps []*stepMotion
}

// NewDeconstruction creates the view for project.
func NewDeconstruction(project Project, steps []ProcessStep, theme Theme) *Deconstruction {
	d := &Deconstruction{project: project, process: steps, theme: theme}
	d.view = widgets.NewScrollView(&stepList{d: d})
	d.view.SetStyle(theme.Base)
	d.tracker = scroll.NewTracker(d.view.Viewport())
	d.index = scroll.FixedHeightIndex{Height: stepHeight, Count: func() int { return len(d.process) }}
	return d
}

// Bind builds the step animations on the app driver.
func (d *Deconstruction) Bind(services runtime.Services) {
	d.Component.Bind(services)
	progress, release := d.tracker.Acquire()
	d.Subs.Add(release)
	if path, err := motion.NewSpring(services.Driver(), progress, PathSpring); err == nil {
		d.path = path
		d.Subs.AddStopper(path)
	}
	d.steps = d.steps[:0]
	for i := range d.process {
		m, err := newStepMotion(progress, d.index.TriggerPoint(i, stepLead))
		if err != nil {
			continue
		}
		d.steps = append(d.steps, m)
		d.Subs.AddStopper(m)
	}
}

// Unbind stops the animations.
func (d *Deconstruction) Unbind() {
	d.Component.Unbind()
	d.path = nil
	d.steps = nil
}

// Project returns the project under examination.
func (d *Deconstruction) Project() Project {
	return d.project
}

// View returns the scrolling step list.
func (d *Deconstruction) View() *widgets.ScrollView {
	return d.view
}

// Tracker returns the view's progress tracker.
func (d *Deconstruction) Tracker() *scroll.Tracker {
	return d.tracker
}

// PathLength returns the drawn fraction of the path.
func (d *Deconstruction) PathLength() float64 {
	if d.path == nil {
		return 0
	}
	return d.path.Get()
}

// Step returns the animated state of step i.
func (d *Deconstruction) Step(i int) (StepState, bool) {
	if i < 0 || i >= len(d.steps) {
		return StepState{}, false
	}
	return d.steps[i].snapshot(), true
}

// Measure fills the screen.
func (d *Deconstruction) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: constraints.MaxHeight})
}

// Layout places the step list between the header and footer.
func (d *Deconstruction) Layout(bounds runtime.Rect) {
	d.Component.Layout(bounds)
	d.view.Layout(runtime.Rect{
		X:      bounds.X,
		Y:      bounds.Y + deconstructHeader,
		Width:  bounds.Width,
		Height: max(0, bounds.Height-deconstructHeader-deconstructFooter),
	})
}

// Render draws the header, the step list and the footer.
func (d *Deconstruction) Render(ctx runtime.RenderContext) {
	bounds := d.Bounds()
	sub := ctx.Sub(bounds)
	sub.Clear(d.theme.Base)
	sub.Text(2, 0, "ANALYTICAL VIEW", d.theme.Accent)
	sub.Text(2, 1, "PROCESS DECONSTRUCTION · "+d.project.Title, d.theme.Heading)
	details := d.project.Details()
	w, h := details.Dimensions()
	sub.Text(20, 0, fmt.Sprintf("%s · %s · %s × %s", details.Concept, details.Media, w, h), d.theme.Muted)
	sub.Text(max(0, bounds.Width-13), 0, "[esc] close", d.theme.Muted)
	sub.Fill(runtime.Rect{Y: 2, Width: bounds.Width, Height: 1}, '─', d.theme.Border)

	d.view.Render(ctx)

	sub.Fill(runtime.Rect{Y: bounds.Height - 2, Width: bounds.Width, Height: 1}, '─', d.theme.Border)
	centered(sub, bounds.Height-1, "SIMPSON STRUCTURAL ANALYSIS © 2025", d.theme.Muted)
}

// HandleMessage closes on escape or q and scrolls otherwise.
func (d *Deconstruction) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if key, ok := msg.(runtime.KeyMsg); ok && (key.Key == terminal.KeyEscape || key.IsRune('q')) {
		return runtime.WithCommand(runtime.PopOverlay{})
	}
	return d.view.HandleMessage(msg)
}

// ChildWidgets returns the scroll view.
func (d *Deconstruction) ChildWidgets() []runtime.Widget {
	return []runtime.Widget{d.view}
}

// stepList renders the steps and the S-curve path in content space.
type stepList struct {
	widgets.Base
	d *Deconstruction
}

func (l *stepList) Measure(constraints runtime.Constraints) runtime.Size {
	height := (len(l.d.process) + 1) * stepHeight
	return constraints.Constrain(runtime.Size{Width: constraints.MaxWidth, Height: height})
}

func (l *stepList) Render(ctx runtime.RenderContext) {
	bounds := l.Bounds()
	if bounds.Empty() {
		return
	}
	sub := ctx.Sub(bounds)
	l.renderPath(sub)
	for i, step := range l.d.process {
		st, ok := l.d.Step(i)
		if !ok {
			st = StepState{Opacity: 0.3, Scale: 1, Grayscale: 1, BorderWidth: 1, Border: motion.MustParseColor(idleBorder)}
		}
		l.renderStep(sub, i, step, st)
	}
}

// renderPath draws two S periods down the centre; the part above the
// drawn length is highlighted.
func (l *stepList) renderPath(ctx runtime.RenderContext) {
	w, h := ctx.Bounds.Width, ctx.Bounds.Height
	if h == 0 {
		return
	}
	amp := float64(min(w/6, 12))
	drawn := l.d.PathLength()
	for y := 0; y < h; y++ {
		t := float64(y) / float64(h)
		x := w/2 + int(math.Round(math.Sin(4*math.Pi*t)*amp))
		if t <= drawn {
			ctx.Set(x, y, '┃', l.d.theme.Accent)
		} else {
			ctx.Set(x, y, '┊', l.d.theme.Border)
		}
	}
}

func (l *stepList) renderStep(ctx runtime.RenderContext, i int, step ProcessStep, st StepState) {
	w := ctx.Bounds.Width
	half := max(8, w/2-4)
	top := i*stepHeight + 1

	textX, boxX := 2, w/2+2
	if i%2 == 1 {
		textX, boxX = w/2+2, 2
	}
	textStyle := l.d.theme.Base.Foreground(backend.FromColorful(l.d.theme.fade(l.d.theme.Ink, st.Opacity)))
	ctx.Text(textX, top, fmt.Sprintf("0%d", i+1), l.d.theme.Accent)
	ctx.Text(textX, top+1, strings.ToUpper(step.Title), textStyle.With(backend.AttrBold))
	for j, line := range widgets.Wrap(step.Desc, half-2) {
		if j >= stepHeight-4 {
			break
		}
		ctx.Text(textX, top+2+j, line, l.d.theme.Muted)
	}

	boxW := min(int(math.Round(float64(half)*st.Scale)), w-boxX)
	boxH := stepHeight - 3
	box := runtime.Rect{X: ctx.Bounds.X + boxX, Y: ctx.Bounds.Y + top, Width: boxW, Height: boxH}
	chars := runtime.BoxRounded
	if st.BorderWidth >= 1.5 {
		chars = runtime.BoxHeavy
	}
	borderStyle := l.d.theme.Base.Foreground(backend.FromColorful(st.Border.Over(l.d.theme.Canvas)))
	image := ctx.Sub(box)
	image.Fill(runtime.Rect{X: 1, Y: 1, Width: boxW - 2, Height: boxH - 2}, '▒',
		l.d.theme.Base.Foreground(backend.FromColorful(l.d.theme.fade(desaturate(colorBlue, st.Grayscale), st.Opacity))))
	image.Box(chars, borderStyle)
	image.Text(2, boxH-1, fmt.Sprintf(" PHASE_0%d ", i+1), l.d.theme.Muted)
}
