package chat

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestConversation_WelcomeAndSend(t *testing.T) {
	var gotHistory []Turn
	var gotMessage string
	backend := BackendFunc(func(_ context.Context, history []Turn, message string) (string, error) {
		gotHistory, gotMessage = history, message
		return "Balance first, then flair.", nil
	})
	conv := NewConversationAt(NewCoach(backend, nil), fixedClock())

	msgs := conv.Messages().Get()
	if len(msgs) != 1 || msgs[0].Text != Welcome || msgs[0].Sender != SenderBot {
		t.Fatalf("expected welcome message, got %+v", msgs)
	}

	reply, ok := conv.Send(context.Background(), "  Which fabric?  ")
	if !ok {
		t.Fatalf("expected send to be accepted")
	}
	if reply.Text != "Balance first, then flair." || reply.Sender != SenderBot {
		t.Fatalf("unexpected reply %+v", reply)
	}
	if gotMessage != "  Which fabric?  " {
		t.Fatalf("expected message passed as typed, got %q", gotMessage)
	}
	if len(gotHistory) != 1 || gotHistory[0].Role != RoleModel || gotHistory[0].Text != Welcome {
		t.Fatalf("expected history to hold only the welcome turn, got %+v", gotHistory)
	}

	msgs = conv.Messages().Get()
	if len(msgs) != 3 || msgs[1].Sender != SenderUser || msgs[2].ID == msgs[1].ID {
		t.Fatalf("unexpected transcript %+v", msgs)
	}
	if conv.Loading().Get() {
		t.Fatalf("expected loading cleared")
	}

	conv.Send(context.Background(), "And colour?")
	if len(gotHistory) != 3 || gotHistory[1].Role != RoleUser || gotHistory[2].Role != RoleModel {
		t.Fatalf("expected alternating history, got %+v", gotHistory)
	}
}

func TestConversation_IgnoresBlank(t *testing.T) {
	conv := NewConversationAt(NewCoach(nil, nil), fixedClock())
	if _, ok := conv.Send(context.Background(), " \t\n"); ok {
		t.Fatalf("expected blank input to be ignored")
	}
	if got := len(conv.Messages().Get()); got != 1 {
		t.Fatalf("expected transcript unchanged, got %d messages", got)
	}
}

func TestConversation_IgnoresWhileLoading(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	backend := BackendFunc(func(context.Context, []Turn, string) (string, error) {
		close(entered)
		<-release
		return "done", nil
	})
	conv := NewConversationAt(NewCoach(backend, nil), fixedClock())

	done := make(chan struct{})
	go func() {
		defer close(done)
		conv.Send(context.Background(), "first")
	}()
	<-entered
	if !conv.Loading().Get() {
		t.Fatalf("expected loading while reply pending")
	}
	if _, ok := conv.Send(context.Background(), "second"); ok {
		t.Fatalf("expected in-flight send to be ignored")
	}
	close(release)
	<-done
	if got := len(conv.Messages().Get()); got != 3 {
		t.Fatalf("expected 3 messages, got %d", got)
	}
}

func TestConversation_UsableAfterFailure(t *testing.T) {
	fail := true
	backend := BackendFunc(func(context.Context, []Turn, string) (string, error) {
		if fail {
			return "", errors.New("network")
		}
		return "Back on the beam.", nil
	})
	conv := NewConversationAt(NewCoach(backend, nil), fixedClock())
	reply, _ := conv.Send(context.Background(), "hello")
	if reply.Text != FallbackError {
		t.Fatalf("expected fallback, got %q", reply.Text)
	}
	fail = false
	reply, ok := conv.Send(context.Background(), "again")
	if !ok || reply.Text != "Back on the beam." {
		t.Fatalf("expected retry to succeed, got %q", reply.Text)
	}
}
