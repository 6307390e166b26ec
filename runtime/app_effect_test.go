package runtime

import (
	"context"
	"testing"
	"time"
)

func TestApp_HandleCommand_SendMsg(t *testing.T) {
	app := NewApp(AppConfig{})
	msg := ResizeMsg{Width: 10, Height: 5}

	if app.handleCommand(SendMsg{Message: msg}) {
		t.Fatalf("expected SendMsg to not force render")
	}

	select {
	case got := <-app.messages:
		if got != msg {
			t.Fatalf("unexpected message: %#v", got)
		}
	default:
		t.Fatal("expected message to be posted")
	}
}

func TestApp_SpawnPendingEffect(t *testing.T) {
	app := NewApp(AppConfig{})
	ran := make(chan struct{}, 1)

	app.handleCommand(Effect{Run: func(ctx context.Context, post PostFunc) {
		post(ResizeMsg{Width: 1, Height: 2})
		ran <- struct{}{}
	}})

	select {
	case <-ran:
		t.Fatal("expected pending effect to wait for start")
	default:
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.startTasks(ctx, cancel)

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("expected pending effect to run")
	}
	select {
	case <-app.messages:
	case <-time.After(time.Second):
		t.Fatal("expected effect to post a message")
	}
}

func TestApp_TryPostFull(t *testing.T) {
	app := NewApp(AppConfig{MessageBuffer: 1})
	if !app.TryPost(InvalidateMsg{}) {
		t.Fatalf("expected first post to fit")
	}
	if app.TryPost(InvalidateMsg{}) {
		t.Fatalf("expected second post to be dropped")
	}
	if app.TryPost(nil) {
		t.Fatalf("expected nil message to be rejected")
	}
}
