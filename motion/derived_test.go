package motion

import (
	"strconv"
	"testing"

	"github.com/odvcencio/furry-motion/state"
)

func TestTransform_DoubledThenStopped(t *testing.T) {
	source := state.NewSignal(10.0)
	doubled := Transform[float64, float64](source, func(v float64) float64 { return v * 2 })

	if got := doubled.Get(); got != 20 {
		t.Fatalf("expected initial 20, got %v", got)
	}
	source.Set(5)
	if got := doubled.Get(); got != 10 {
		t.Fatalf("expected 10 after set, got %v", got)
	}

	doubled.Stop()
	source.Set(100)
	if got := doubled.Get(); got != 10 {
		t.Fatalf("expected 10 after stop, got %v", got)
	}
	if got := source.Listeners(); got != 0 {
		t.Fatalf("expected source to have no listeners after stop, got %d", got)
	}
}

func TestTransform_ChainMatchesComposition(t *testing.T) {
	f := func(v float64) float64 { return v*3 + 1 }
	g := func(v float64) string { return strconv.FormatFloat(v/2, 'f', 3, 64) }

	source := state.NewSignal(0.0)
	first := Transform[float64, float64](source, f)
	second := Transform[float64, string](first, g)

	for _, v := range []float64{1, -4, 0.25, 1e6} {
		source.Set(v)
		if got, want := second.Get(), g(f(v)); got != want {
			t.Fatalf("chain(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestTransform_PropagatesDepthFirst(t *testing.T) {
	source := state.NewSignal(1)
	a := Transform[int, int](source, func(v int) int { return v + 1 })
	b := Transform[int, int](a, func(v int) int { return v * 10 })

	var observed []int
	b.On(func(v int) {
		// a must already hold its new value when b notifies.
		observed = append(observed, a.Get()*10, v)
	})
	source.Set(4)
	if len(observed) != 2 || observed[0] != 50 || observed[1] != 50 {
		t.Fatalf("expected [50 50], got %v", observed)
	}
}

func TestTransform_NilSource(t *testing.T) {
	d := Transform[int, string](nil, func(v int) string { return strconv.Itoa(v) })
	if got := d.Get(); got != "0" {
		t.Fatalf("expected value from zero input, got %q", got)
	}
	d.Stop()
}

func TestTransform_NotifiesEverySet(t *testing.T) {
	source := state.NewSignal(2)
	d := Transform[int, int](source, func(v int) int { return v })
	calls := 0
	d.Subscribe(func() { calls++ })
	source.Set(2)
	source.Set(2)
	if calls != 2 {
		t.Fatalf("expected 2 notifications, got %d", calls)
	}
}
