package registry

import (
	"reflect"
	"testing"
)

type stopper struct{ stopped bool }

func (s *stopper) Stop() { s.stopped = true }

func TestMemo_BuildsOnce(t *testing.T) {
	builds := 0
	m := NewMemo(func(k string) int {
		builds++
		return len(k)
	})
	if got := m.Get("hero"); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	m.Get("hero")
	m.Get("timeline")
	if builds != 2 {
		t.Fatalf("expected 2 builds, got %d", builds)
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", m.Len())
	}
	if got := m.Keys(); !reflect.DeepEqual(got, []string{"hero", "timeline"}) {
		t.Fatalf("unexpected keys %v", got)
	}
	if got := SortedKeys(m, func(a, b string) bool { return a > b }); !reflect.DeepEqual(got, []string{"timeline", "hero"}) {
		t.Fatalf("unexpected sorted keys %v", got)
	}
}

func TestMemo_ResetStopsValues(t *testing.T) {
	m := NewMemo(func(int) *stopper { return &stopper{} })
	first := m.Get(1)
	m.Reset()
	if !first.stopped {
		t.Fatalf("expected reset to stop cached value")
	}
	if _, ok := m.Peek(1); ok {
		t.Fatalf("expected reset to clear entries")
	}
	if m.Get(1) == first {
		t.Fatalf("expected a fresh value after reset")
	}
}

func TestNewMemo_NilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewMemo[int, int](nil)
}
