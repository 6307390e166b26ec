package state

import "testing"

func TestComputed_FollowsEveryDependency(t *testing.T) {
	offset := NewSignal(10.0)
	limit := NewSignal(40.0)
	progress := NewComputed(func() float64 { return offset.Get() / limit.Get() }, offset, nil, limit)

	if got := progress.Get(); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}
	var seen []float64
	progress.On(func(v float64) { seen = append(seen, v) })

	offset.Set(20)
	limit.Set(80)
	offset.Set(20)
	if len(seen) != 3 || seen[0] != 0.5 || seen[1] != 0.25 || seen[2] != 0.25 {
		t.Fatalf("expected a notification per dependency set, got %v", seen)
	}
}

func TestComputed_StopFreezes(t *testing.T) {
	src := NewSignal(1)
	double := NewComputed(func() int { return src.Get() * 2 }, src)
	calls := 0
	double.Subscribe(func() { calls++ })

	double.Stop()
	double.Stop()
	src.Set(5)
	if !double.Stopped() || double.Get() != 2 || calls != 0 {
		t.Fatalf("expected a frozen value after stop, got %d with %d calls", double.Get(), calls)
	}
	if got := src.Listeners(); got != 0 {
		t.Fatalf("expected stop to release the source, got %d listeners", got)
	}
}

func TestComputed_ScheduledListener(t *testing.T) {
	src := NewSignal("a")
	upper := NewComputed(func() string { return src.Get() + "!" }, src)
	queue := NewQueue()
	var got string
	upper.SubscribeWithScheduler(queue, func() { got = upper.Get() })

	src.Set("b")
	if got != "" {
		t.Fatalf("expected delivery to wait for the flush")
	}
	queue.Flush()
	if got != "b!" {
		t.Fatalf("expected b!, got %q", got)
	}

	var nilComputed *Computed[int]
	if nilComputed.Get() != 0 {
		t.Fatalf("expected zero from a nil computed")
	}
	nilComputed.Stop()
}
