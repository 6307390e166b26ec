package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/odvcencio/furry-motion/chat"
	"github.com/odvcencio/furry-motion/comments"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FURRY_CONFIG", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPathCommand(t *testing.T) {
	out, err := execute(t, "path", "--height", "80")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(out); !strings.HasPrefix(got, "M 40 0 L ") || strings.Count(got, " L ") != 3 {
		t.Fatalf("unexpected path %q", got)
	}
	if _, err := execute(t, "path", "--height", "0"); err == nil {
		t.Fatalf("expected an error for a zero height")
	}
}

func TestCommentsCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "studio.db")

	out, err := execute(t, "--db", db, "comments", "add", "4", "Ana", "Love", "the", "pleats")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "on project 4") {
		t.Fatalf("unexpected add output %q", out)
	}

	out, err = execute(t, "--db", db, "comments", "list", "4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected the seed and the new comment, got %q", out)
	}
	if !strings.Contains(lines[0], "Ana") || !strings.Contains(lines[0], "Love the pleats") {
		t.Fatalf("expected the newest comment first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], comments.DefaultAuthor) {
		t.Fatalf("expected the seeded comment last, got %q", lines[1])
	}

	if _, err := execute(t, "--db", db, "comments", "add", "4", " ", "text"); err == nil {
		t.Fatalf("expected a blank author to be rejected")
	}
	if _, err := execute(t, "--ephemeral", "comments", "list", "four"); err == nil {
		t.Fatalf("expected an invalid project id to be rejected")
	}
}

func TestChatCommandOffline(t *testing.T) {
	out, err := execute(t, "--ephemeral", "chat", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(strings.Join(strings.Fields(out), " "), strings.Join(strings.Fields(chat.FallbackError), " ")) {
		t.Fatalf("expected the offline fallback, got %q", out)
	}
}
