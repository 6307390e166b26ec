package comments

import (
	"context"
	"errors"
	"testing"
	"time"
)

type failingStore struct {
	*MemoryStore
	err error
}

func (f *failingStore) Save(context.Context, int, []Comment) error { return f.err }

func clock() func() time.Time {
	at := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		at = at.Add(time.Minute)
		return at
	}
}

func TestOpenBoard_SeedsEmptyThread(t *testing.T) {
	store := NewMemoryStore()
	board, err := OpenBoard(context.Background(), BoardConfig{Store: store, ProjectID: 7, Now: clock()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := board.Comments().Get()
	if len(got) != 1 || got[0].Author != DefaultAuthor || got[0].Text != DefaultText || got[0].ProjectID != 7 {
		t.Fatalf("expected seeded comment, got %+v", got)
	}
	saved, ok, _ := store.Load(context.Background(), 7)
	if !ok || len(saved) != 1 {
		t.Fatalf("expected seed to be saved, got %+v", saved)
	}
}

func TestOpenBoard_LoadsSavedThread(t *testing.T) {
	store := NewMemoryStore()
	thread := []Comment{{ID: "a", ProjectID: 2, Author: "Coach", Text: "Clean lines."}}
	store.Save(context.Background(), 2, thread)

	board, err := OpenBoard(context.Background(), BoardConfig{Store: store, ProjectID: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := board.Comments().Get(); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected saved thread, got %+v", got)
	}
	if store.Saves() != 1 {
		t.Fatalf("expected loading not to write, got %d saves", store.Saves())
	}
}

func TestBoard_AddPrependsAndSaves(t *testing.T) {
	store := NewMemoryStore()
	board, _ := OpenBoard(context.Background(), BoardConfig{Store: store, ProjectID: 1, Now: clock()})

	notified := 0
	board.Comments().Subscribe(func() { notified++ })

	c, err := board.Add(context.Background(), "  Mia ", " Love the drape.\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Author != "Mia" || c.Text != "Love the drape." || c.ID == "" {
		t.Fatalf("expected trimmed comment, got %+v", c)
	}
	got := board.Comments().Get()
	if len(got) != 2 || got[0].ID != c.ID || got[1].Author != DefaultAuthor {
		t.Fatalf("expected newest first, got %+v", got)
	}
	if notified != 1 {
		t.Fatalf("expected one notification, got %d", notified)
	}
	saved, _, _ := store.Load(context.Background(), 1)
	if len(saved) != 2 || saved[0].ID != c.ID {
		t.Fatalf("expected thread saved after add, got %+v", saved)
	}
}

func TestBoard_AddRejectsBlank(t *testing.T) {
	store := NewMemoryStore()
	board, _ := OpenBoard(context.Background(), BoardConfig{Store: store, ProjectID: 1})
	before := store.Saves()

	if _, err := board.Add(context.Background(), " ", "text"); !errors.Is(err, ErrEmptyAuthor) {
		t.Fatalf("expected ErrEmptyAuthor, got %v", err)
	}
	if _, err := board.Add(context.Background(), "Ana", "\t"); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if board.Len() != 1 || store.Saves() != before {
		t.Fatalf("expected rejected input to leave the board untouched")
	}
}

func TestBoard_SaveFailureKeepsComment(t *testing.T) {
	boom := errors.New("disk full")
	store := &failingStore{MemoryStore: NewMemoryStore(), err: boom}
	store.MemoryStore.Save(context.Background(), 4, []Comment{{ID: "x"}})

	board, err := OpenBoard(context.Background(), BoardConfig{Store: store, ProjectID: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := board.Add(context.Background(), "Ana", "Bold."); !errors.Is(err, boom) {
		t.Fatalf("expected save error, got %v", err)
	}
	if board.Len() != 2 {
		t.Fatalf("expected comment kept after failed save, got %d", board.Len())
	}
}
