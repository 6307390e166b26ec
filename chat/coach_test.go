package chat

import (
	"context"
	"errors"
	"testing"
)

type outcomes struct {
	requests  int
	fallbacks int
}

func (o *outcomes) ObserveChat(fallback bool) {
	o.requests++
	if fallback {
		o.fallbacks++
	}
}

func TestCoach_Reply(t *testing.T) {
	cases := []struct {
		name     string
		backend  Backend
		want     string
		fallback bool
	}{
		{"ok", BackendFunc(func(context.Context, []Turn, string) (string, error) { return "Stick the landing.", nil }), "Stick the landing.", false},
		{"error", BackendFunc(func(context.Context, []Turn, string) (string, error) { return "", errors.New("quota") }), FallbackError, true},
		{"empty", BackendFunc(func(context.Context, []Turn, string) (string, error) { return "  ", nil }), FallbackEmpty, true},
		{"panic", BackendFunc(func(context.Context, []Turn, string) (string, error) { panic("boom") }), FallbackError, true},
		{"offline", nil, FallbackError, true},
	}
	for _, tc := range cases {
		obs := &outcomes{}
		coach := NewCoach(tc.backend, nil)
		coach.SetObserver(obs)
		if got := coach.Reply(context.Background(), nil, "hi"); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
		if obs.requests != 1 || (obs.fallbacks == 1) != tc.fallback {
			t.Fatalf("%s: unexpected outcomes %+v", tc.name, obs)
		}
	}
}

func TestCoach_Describe(t *testing.T) {
	if got := NewCoach(nil, nil).Describe(); got != "offline" {
		t.Fatalf("expected offline, got %q", got)
	}
}

func TestContents_Roles(t *testing.T) {
	contents := Contents([]Turn{{Role: RoleModel, Text: "welcome"}, {Role: RoleUser, Text: "hi"}})
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[0].Role != "model" || contents[1].Role != "user" {
		t.Fatalf("unexpected roles %q %q", contents[0].Role, contents[1].Role)
	}
	if contents[1].Parts[0].Text != "hi" {
		t.Fatalf("unexpected text %q", contents[1].Parts[0].Text)
	}
}

func TestNewGemini_RequiresKey(t *testing.T) {
	if _, err := NewGemini(context.Background(), "", ""); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}
