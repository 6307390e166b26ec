package runtime

import (
	"context"
	"time"
)

// After posts msg once delay has elapsed. A non-positive delay posts
// immediately.
func After(delay time.Duration, msg Message) Effect {
	return Effect{
		Run: func(ctx context.Context, post PostFunc) {
			if msg == nil || post == nil {
				return
			}
			if delay <= 0 {
				post(msg)
				return
			}
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
			case <-timer.C:
				post(msg)
			}
		},
	}
}

// Scoped wraps effect so it also ends when the returned cancel is called.
// Cancelling before the effect starts keeps it from running at all.
func Scoped(effect Effect) (Effect, func()) {
	scope, cancel := context.WithCancel(context.Background())
	if effect.Run == nil {
		return effect, cancel
	}
	run := effect.Run
	effect.Run = func(ctx context.Context, post PostFunc) {
		if scope.Err() != nil {
			return
		}
		ctx, stop := context.WithCancel(ctx)
		defer stop()
		unhook := context.AfterFunc(scope, stop)
		defer unhook()
		run(ctx, post)
	}
	return effect, cancel
}

// Every posts fn's message on a fixed interval until the context ends.
// A nil message skips that tick.
func Every(interval time.Duration, fn func(time.Time) Message) Effect {
	return Effect{
		Run: func(ctx context.Context, post PostFunc) {
			if interval <= 0 || fn == nil || post == nil {
				return
			}
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case now := <-ticker.C:
					if msg := fn(now); msg != nil {
						post(msg)
					}
				}
			}
		},
	}
}

// Task runs fn on a goroutine and posts its result. A nil result posts
// nothing.
func Task(fn func(ctx context.Context) Message) Effect {
	return Effect{
		Run: func(ctx context.Context, post PostFunc) {
			if fn == nil || post == nil {
				return
			}
			if msg := fn(ctx); msg != nil && ctx.Err() == nil {
				post(msg)
			}
		},
	}
}
