package motion

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/odvcencio/furry-motion/state"
)

var (
	// ErrNoDriver is returned when a spring is built without a frame driver.
	ErrNoDriver = errors.New("spring requires a driver")
	// ErrUnderdamped is returned for a damping ratio below 1. Such springs
	// overshoot, so the distance to a held target would not shrink
	// monotonically.
	ErrUnderdamped = errors.New("spring is underdamped")
)

// SpringConfig parameterises a damped spring.
type SpringConfig struct {
	Stiffness float64
	Damping   float64
	Mass      float64
	// RestDelta and RestSpeed bound the distance and velocity under which the
	// spring snaps onto its target and stops requesting frames.
	RestDelta float64
	RestSpeed float64
}

// DefaultSpringConfig is critically damped: it approaches its target as fast
// as possible without overshooting.
func DefaultSpringConfig() SpringConfig {
	return SpringConfig{
		Stiffness: 100,
		Damping:   20,
		Mass:      1,
		RestDelta: 0.01,
		RestSpeed: 0.01,
	}
}

// WithDefaults fills zero fields from DefaultSpringConfig.
func (c SpringConfig) WithDefaults() SpringConfig {
	def := DefaultSpringConfig()
	if c.Stiffness == 0 {
		c.Stiffness = def.Stiffness
	}
	if c.Damping == 0 {
		c.Damping = def.Damping
	}
	if c.Mass == 0 {
		c.Mass = def.Mass
	}
	if c.RestDelta == 0 {
		c.RestDelta = def.RestDelta
	}
	if c.RestSpeed == 0 {
		c.RestSpeed = def.RestSpeed
	}
	return c
}

// Validate rejects non-positive constants and underdamped springs.
func (c SpringConfig) Validate() error {
	switch {
	case !(c.Stiffness > 0):
		return fmt.Errorf("spring stiffness %g must be positive", c.Stiffness)
	case !(c.Damping > 0):
		return fmt.Errorf("spring damping %g must be positive", c.Damping)
	case !(c.Mass > 0):
		return fmt.Errorf("spring mass %g must be positive", c.Mass)
	case c.RestDelta < 0 || c.RestSpeed < 0:
		return fmt.Errorf("spring rest thresholds must not be negative")
	case c.DampingRatio() < 1-1e-9:
		return fmt.Errorf("%w: damping ratio %.3g", ErrUnderdamped, c.DampingRatio())
	}
	return nil
}

// AngularFrequency returns sqrt(k/m).
func (c SpringConfig) AngularFrequency() float64 {
	return math.Sqrt(c.Stiffness / c.Mass)
}

// DampingRatio returns c / (2 sqrt(k m)); 1 is critically damped.
func (c SpringConfig) DampingRatio() float64 {
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// Spring is a smoothed value that follows a target over animation frames.
type Spring struct {
	driver *Driver
	signal *state.Signal[float64]
	cfg    SpringConfig
	omega  float64
	zeta   float64

	mu     sync.Mutex
	pos    float64
	vel    float64
	target float64
	rest   bool
	unsub  func()
}

// NewSpring smooths src. The spring starts at src's current value and
// re-targets on every source change.
func NewSpring(driver *Driver, src state.Readable[float64], cfg SpringConfig) (*Spring, error) {
	var initial float64
	if src != nil {
		initial = src.Get()
	}
	s, err := NewSpringValue(driver, initial, cfg)
	if err != nil {
		return nil, err
	}
	if src != nil {
		s.unsub = src.On(s.SetTarget)
	}
	return s, nil
}

// NewSpringValue creates a spring whose target is set directly.
func NewSpringValue(driver *Driver, initial float64, cfg SpringConfig) (*Spring, error) {
	if driver == nil {
		return nil, ErrNoDriver
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Spring{
		driver: driver,
		signal: state.NewSignal(initial),
		cfg:    cfg,
		omega:  cfg.AngularFrequency(),
		zeta:   cfg.DampingRatio(),
		pos:    initial,
		target: initial,
		rest:   true,
	}, nil
}

// MustSpring is NewSpring that panics on error.
func MustSpring(driver *Driver, src state.Readable[float64], cfg SpringConfig) *Spring {
	s, err := NewSpring(driver, src, cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// Config returns the spring constants.
func (s *Spring) Config() SpringConfig {
	return s.cfg
}

// SetTarget moves the equilibrium and arms the spring.
func (s *Spring) SetTarget(target float64) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.target = target
	s.rest = false
	s.mu.Unlock()
	s.driver.Add(s)
}

// Jump places the spring at v without animating.
func (s *Spring) Jump(v float64) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.pos, s.vel, s.target, s.rest = v, 0, v, true
	s.mu.Unlock()
	s.driver.Remove(s)
	s.signal.Set(v)
}

// Target returns the current equilibrium.
func (s *Spring) Target() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// Velocity returns the current velocity in units per second.
func (s *Spring) Velocity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vel
}

// AtRest reports whether the spring has settled on its target.
func (s *Spring) AtRest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rest
}

// Step advances the simulation by dt. It implements Animator.
func (s *Spring) Step(dt time.Duration) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	if s.rest {
		s.mu.Unlock()
		return false
	}
	if dt <= 0 {
		s.mu.Unlock()
		return true
	}
	sim := harmonica.NewSpring(dt.Seconds(), s.omega, s.zeta)
	s.pos, s.vel = sim.Update(s.pos, s.vel, s.target)
	if math.Abs(s.target-s.pos) < s.cfg.RestDelta && math.Abs(s.vel) < s.cfg.RestSpeed {
		s.pos, s.vel, s.rest = s.target, 0, true
	}
	pos, moving := s.pos, !s.rest
	s.mu.Unlock()

	s.signal.Set(pos)
	return moving
}

// Get returns the current smoothed value.
func (s *Spring) Get() float64 {
	if s == nil {
		return 0
	}
	return s.signal.Get()
}

// On registers a listener receiving each frame's value.
func (s *Spring) On(fn func(float64)) func() {
	if s == nil {
		return func() {}
	}
	return s.signal.On(fn)
}

// Subscribe registers a listener for change notifications.
func (s *Spring) Subscribe(fn func()) func() {
	if s == nil {
		return func() {}
	}
	return s.signal.Subscribe(fn)
}

// SubscribeWithScheduler registers a listener dispatched through scheduler.
func (s *Spring) SubscribeWithScheduler(scheduler state.Scheduler, fn func()) func() {
	if s == nil {
		return func() {}
	}
	return s.signal.SubscribeWithScheduler(scheduler, fn)
}

// Stop detaches the spring from its source and the driver.
func (s *Spring) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	unsub := s.unsub
	s.unsub = nil
	s.rest = true
	s.mu.Unlock()
	if unsub != nil {
		unsub()
	}
	s.driver.Remove(s)
}

var _ Animator = (*Spring)(nil)
var _ state.Readable[float64] = (*Spring)(nil)
