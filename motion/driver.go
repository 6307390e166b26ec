package motion

import (
	"sync"
	"time"
)

// DefaultFrame is the step used for the first tick and when no clock is available.
const DefaultFrame = time.Second / 60

// Animator advances internal state by dt and reports whether it needs more frames.
type Animator interface {
	Step(dt time.Duration) bool
}

// Driver is the frame clock for animators. It holds only animators that are
// in motion; an animator returning false from Step is dropped until re-armed
// with Add. All stepping happens on the caller's goroutine.
type Driver struct {
	mu      sync.Mutex
	active  map[Animator]uint64
	seq     uint64
	last    time.Time
	maxStep time.Duration
}

// NewDriver creates an idle driver.
func NewDriver() *Driver {
	return &Driver{maxStep: 100 * time.Millisecond}
}

// SetMaxStep bounds the dt passed to animators so a stalled loop does not
// jump a spring across its whole trajectory.
func (d *Driver) SetMaxStep(max time.Duration) {
	if d == nil || max <= 0 {
		return
	}
	d.mu.Lock()
	d.maxStep = max
	d.mu.Unlock()
}

// Add arms an animator for the next frame.
func (d *Driver) Add(a Animator) {
	if d == nil || a == nil {
		return
	}
	d.mu.Lock()
	if d.active == nil {
		d.active = make(map[Animator]uint64)
	}
	d.seq++
	d.active[a] = d.seq
	d.mu.Unlock()
}

// Remove disarms an animator.
func (d *Driver) Remove(a Animator) {
	if d == nil || a == nil {
		return
	}
	d.mu.Lock()
	delete(d.active, a)
	d.mu.Unlock()
}

// Active returns the number of armed animators.
func (d *Driver) Active() int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	n := len(d.active)
	d.mu.Unlock()
	return n
}

// Idle reports whether no animator needs frames.
func (d *Driver) Idle() bool {
	return d.Active() == 0
}

// Tick steps animators by the time elapsed since the previous tick.
// It returns the number of animators still armed.
func (d *Driver) Tick(now time.Time) int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	dt := DefaultFrame
	if !d.last.IsZero() {
		dt = now.Sub(d.last)
	}
	d.last = now
	d.mu.Unlock()
	if dt <= 0 {
		return d.Active()
	}
	return d.Step(dt)
}

// Step advances every armed animator by dt.
// Animators armed while stepping run on the next frame.
func (d *Driver) Step(dt time.Duration) int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	if d.maxStep > 0 && dt > d.maxStep {
		dt = d.maxStep
	}
	type armed struct {
		a   Animator
		gen uint64
	}
	frame := make([]armed, 0, len(d.active))
	for a, gen := range d.active {
		frame = append(frame, armed{a: a, gen: gen})
	}
	d.mu.Unlock()

	for _, item := range frame {
		if item.a.Step(dt) {
			continue
		}
		d.mu.Lock()
		// Only drop it if nothing re-armed it during this frame.
		if d.active[item.a] == item.gen {
			delete(d.active, item.a)
		}
		d.mu.Unlock()
	}
	return d.Active()
}

// Settle steps with a fixed frame until every animator rests or maxFrames
// elapse, and returns the frames used.
func (d *Driver) Settle(frame time.Duration, maxFrames int) int {
	for i := 0; i < maxFrames; i++ {
		if d.Idle() {
			return i
		}
		d.Step(frame)
	}
	return maxFrames
}
