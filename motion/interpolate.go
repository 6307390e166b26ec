package motion

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/odvcencio/furry-motion/state"
)

// Interpolation table errors.
var (
	ErrRangeLength   = errors.New("interpolation range needs at least two breakpoints")
	ErrRangeMismatch = errors.New("input and output ranges differ in length")
	ErrRangeOrder    = errors.New("input breakpoints must be non-decreasing")
)

// Number is the set of output types interpolated linearly.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Mixer blends a toward b by t in [0, 1].
type Mixer[U any] func(a, b U, t float64) U

// Lerp mixes numbers linearly.
func Lerp[N Number](a, b N, t float64) N {
	return N(float64(a) + t*(float64(b)-float64(a)))
}

// Step snaps to a until t reaches 1.
func Step[U any](a, b U, t float64) U {
	if t >= 1 {
		return b
	}
	return a
}

// Range is a validated piecewise interpolation table.
type Range[U any] struct {
	in  []float64
	out []U
	mix Mixer[U]
}

// NewRange validates in/out and returns a table. A nil mix steps between outputs.
func NewRange[U any](in []float64, out []U, mix Mixer[U]) (Range[U], error) {
	if len(in) < 2 {
		return Range[U]{}, fmt.Errorf("%d breakpoints: %w", len(in), ErrRangeLength)
	}
	if len(in) != len(out) {
		return Range[U]{}, fmt.Errorf("%d inputs, %d outputs: %w", len(in), len(out), ErrRangeMismatch)
	}
	for i, x := range in {
		if math.IsNaN(x) {
			return Range[U]{}, fmt.Errorf("breakpoint %d is NaN: %w", i, ErrRangeOrder)
		}
		if i > 0 && x < in[i-1] {
			return Range[U]{}, fmt.Errorf("breakpoint %d (%g) < %g: %w", i, x, in[i-1], ErrRangeOrder)
		}
	}
	if mix == nil {
		mix = Step[U]
	}
	return Range[U]{in: slices.Clone(in), out: slices.Clone(out), mix: mix}, nil
}

// At maps v through the table, clamping outside the breakpoints.
// A segment whose endpoints coincide yields its lower output.
func (r Range[U]) At(v float64) U {
	n := len(r.in) - 1
	if n < 1 {
		var zero U
		return zero
	}
	if math.IsNaN(v) || v <= r.in[0] {
		return r.out[0]
	}
	if v >= r.in[n] {
		return r.out[n]
	}
	hi := sort.SearchFloat64s(r.in, v)
	if r.in[hi] == v {
		return r.out[hi]
	}
	lo := hi - 1
	t := 0.0
	if span := r.in[hi] - r.in[lo]; span != 0 {
		t = (v - r.in[lo]) / span
	}
	return r.mix(r.out[lo], r.out[hi], t)
}

// Interpolate derives a linearly interpolated number from src.
func Interpolate[N Number](src state.Readable[float64], in []float64, out []N) (*Derived[N], error) {
	return InterpolateWith(src, in, out, Lerp[N])
}

// InterpolateStep derives a stepped value for outputs that cannot be blended.
func InterpolateStep[U any](src state.Readable[float64], in []float64, out []U) (*Derived[U], error) {
	return InterpolateWith(src, in, out, Step[U])
}

// InterpolateWith derives a value blended by mix between breakpoints.
func InterpolateWith[U any](src state.Readable[float64], in []float64, out []U, mix Mixer[U]) (*Derived[U], error) {
	table, err := NewRange(in, out, mix)
	if err != nil {
		return nil, fmt.Errorf("interpolate: %w", err)
	}
	return Transform(src, table.At), nil
}

// MustInterpolate is Interpolate that panics on a malformed table.
func MustInterpolate[N Number](src state.Readable[float64], in []float64, out []N) *Derived[N] {
	d, err := Interpolate(src, in, out)
	if err != nil {
		panic(err)
	}
	return d
}

// MustInterpolateWith is InterpolateWith that panics on a malformed table.
func MustInterpolateWith[U any](src state.Readable[float64], in []float64, out []U, mix Mixer[U]) *Derived[U] {
	d, err := InterpolateWith(src, in, out, mix)
	if err != nil {
		panic(err)
	}
	return d
}
