package runtime

import "time"

// RenderStats describes one render pass.
type RenderStats struct {
	Frame          int64
	Started        time.Time
	RenderDuration time.Duration
	FlushDuration  time.Duration
	TotalDuration  time.Duration
	DirtyCells     int
	FlushedCells   int
	TotalCells     int
	FullRedraw     bool
	Animating      int // springs still in motion after the frame
}

// RenderObserver receives stats after every render pass.
type RenderObserver interface {
	ObserveRender(stats RenderStats)
}

// RenderObserverFunc adapts a function to RenderObserver.
type RenderObserverFunc func(RenderStats)

// ObserveRender calls f.
func (f RenderObserverFunc) ObserveRender(stats RenderStats) {
	f(stats)
}
