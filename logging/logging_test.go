package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_InteractiveWithoutFileIsSilent(t *testing.T) {
	logger, err := New(Options{Level: "info"}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.Core().Enabled(0) {
		t.Fatalf("expected a no-op logger")
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.log")
	logger, err := New(Options{Level: "warn", File: path}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("dropped")
	logger.Warn("kept")
	logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "dropped") || !strings.Contains(string(data), "kept") {
		t.Fatalf("unexpected log contents %q", data)
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}, false); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
