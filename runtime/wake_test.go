package runtime

import (
	"testing"

	"github.com/odvcencio/furry-motion/state"
)

func TestShouldFlushQueue(t *testing.T) {
	cases := []struct {
		policy QueueFlushPolicy
		msg    Message
		want   bool
	}{
		{FlushManual, ResizeMsg{Width: 1, Height: 1}, false},
		{FlushManual, QueueFlushMsg{}, true},
		{FlushOnTick, TickMsg{}, true},
		{FlushOnTick, ResizeMsg{Width: 1, Height: 1}, false},
		{FlushOnTick, QueueFlushMsg{}, true},
		{FlushOnMessage, TickMsg{}, false},
		{FlushOnMessage, ResizeMsg{Width: 1, Height: 1}, true},
		{FlushOnMessageAndTick, TickMsg{}, true},
		{FlushOnMessageAndTick, ResizeMsg{Width: 1, Height: 1}, true},
	}

	for i, tc := range cases {
		if got := shouldFlushQueue(tc.policy, tc.msg); got != tc.want {
			t.Fatalf("case %d policy=%d msg=%T got %v want %v", i, tc.policy, tc.msg, got, tc.want)
		}
	}
}

func TestInvalidator_Coalesces(t *testing.T) {
	posted := 0
	invalidator := NewInvalidator(func(msg Message) bool {
		if _, ok := msg.(InvalidateMsg); ok {
			posted++
			return true
		}
		return false
	})

	invalidator.Invalidate()
	invalidator.Invalidate()
	if posted != 1 {
		t.Fatalf("expected 1 invalidate post, got %d", posted)
	}

	invalidator.resetPending()
	invalidator.Invalidate()
	if posted != 2 {
		t.Fatalf("expected 2 invalidate posts after reset, got %d", posted)
	}
}

func TestInvalidator_RetriesFailedPost(t *testing.T) {
	attempts := 0
	invalidator := NewInvalidator(func(msg Message) bool {
		attempts++
		return false
	})
	invalidator.Invalidate()
	invalidator.Invalidate()
	if attempts != 2 {
		t.Fatalf("expected 2 post attempts, got %d", attempts)
	}
}

func TestQueueScheduler_DefersUntilFlush(t *testing.T) {
	queue := state.NewQueue()
	posts := 0
	scheduler := NewQueueScheduler(queue, func(msg Message) bool {
		if _, ok := msg.(QueueFlushMsg); !ok {
			t.Fatalf("unexpected message %T", msg)
		}
		posts++
		return true
	})

	calls := 0
	signal := state.NewSignal(0)
	signal.SubscribeWithScheduler(scheduler, func() { calls++ })
	signal.Set(1)
	signal.Set(2)
	if calls != 0 {
		t.Fatalf("expected callbacks to wait for flush, got %d", calls)
	}
	if posts != 1 {
		t.Fatalf("expected one coalesced flush request, got %d", posts)
	}
	if n := queue.Flush(); n == 0 || calls == 0 {
		t.Fatalf("expected flush to run callbacks, flushed=%d calls=%d", n, calls)
	}
}
