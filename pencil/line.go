package pencil

import (
	"sync"

	"github.com/odvcencio/furry-motion/motion"
	"github.com/odvcencio/furry-motion/state"
)

// LineSpring is the smoothing applied to scroll progress before it moves
// the pencil.
var LineSpring = motion.SpringConfig{Stiffness: 60, Damping: 20, RestDelta: 0.001}

// Line follows document scroll progress with a pencil tip.
type Line struct {
	smooth *motion.Spring
	height *state.Signal[float64]
	y      *state.Computed[float64]
	x      *motion.Derived[float64]
	rot    *motion.Derived[float64]

	mu     sync.Mutex
	travel motion.Range[float64]
	points []Point
}

// NewLine smooths progress on driver with LineSpring and maps it onto a
// document of docHeight.
func NewLine(driver *motion.Driver, progress state.Readable[float64], docHeight float64) (*Line, error) {
	return NewLineWithSpring(driver, progress, docHeight, LineSpring)
}

// NewLineWithSpring is NewLine with custom smoothing.
func NewLineWithSpring(driver *motion.Driver, progress state.Readable[float64], docHeight float64, cfg motion.SpringConfig) (*Line, error) {
	smooth, err := motion.NewSpring(driver, progress, cfg)
	if err != nil {
		return nil, err
	}
	l := &Line{
		smooth: smooth,
		height: state.NewSignal(docHeight),
	}
	if err := l.setTravel(docHeight); err != nil {
		smooth.Stop()
		return nil, err
	}
	l.y = state.NewComputed(l.tipY, smooth, l.height)
	l.x = motion.Transform[float64, float64](l.y, TipX)
	l.rot = motion.Transform[float64, float64](l.y, Rotation)
	return l, nil
}

func (l *Line) setTravel(docHeight float64) error {
	if docHeight < 0 {
		docHeight = 0
	}
	travel, err := motion.NewRange([]float64{0, 1}, []float64{0, docHeight}, motion.Lerp[float64])
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.travel = travel
	l.points = Path(docHeight)
	l.mu.Unlock()
	return nil
}

func (l *Line) tipY() float64 {
	l.mu.Lock()
	travel := l.travel
	l.mu.Unlock()
	return travel.At(l.smooth.Get())
}

// SetDocHeight re-measures the document; the path and every height
// dependent value follow.
func (l *Line) SetDocHeight(docHeight float64) {
	if l == nil {
		return
	}
	if err := l.setTravel(docHeight); err != nil {
		return
	}
	l.height.Set(docHeight)
}

// DocHeight returns the measured document height.
func (l *Line) DocHeight() float64 {
	return l.height.Get()
}

// Points returns the sampled guide path.
func (l *Line) Points() []Point {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.points
}

// Drawn returns the portion of the path drawn so far.
func (l *Line) Drawn() []Point {
	return Visible(l.Points(), l.smooth.Get())
}

// Progress is the smoothed scroll progress, also the drawn path length.
func (l *Line) Progress() state.Readable[float64] { return l.smooth }

// Y is the tip's vertical position.
func (l *Line) Y() state.Readable[float64] { return l.y }

// X is the tip's horizontal position.
func (l *Line) X() state.Readable[float64] { return l.x }

// Rotation is the tip's angle in degrees.
func (l *Line) Rotation() state.Readable[float64] { return l.rot }

// Tip returns the current tip position.
func (l *Line) Tip() Point {
	return Point{X: l.x.Get(), Y: l.y.Get()}
}

// Stop detaches the line from its progress source and the driver.
func (l *Line) Stop() {
	if l == nil {
		return
	}
	l.rot.Stop()
	l.x.Stop()
	l.y.Stop()
	l.smooth.Stop()
}
