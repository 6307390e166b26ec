package comments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/odvcencio/furry-motion/state"
)

const (
	// DefaultAuthor signs the comment seeded into empty threads.
	DefaultAuthor = "Studio Lead"
	// DefaultText is the body of the seeded comment.
	DefaultText = "Outstanding attention to detail on the hem construction."
)

// BoardConfig configures a Board.
type BoardConfig struct {
	Store     Store
	ProjectID int
	Logger    *zap.Logger
	Now       func() time.Time
}

// Board is the live comment thread of one project.
type Board struct {
	store     Store
	projectID int
	logger    *zap.Logger
	now       func() time.Time
	comments  *state.Signal[[]Comment]
}

// OpenBoard loads a project's thread. Projects without a saved thread start
// with a seeded comment, which is saved immediately.
func OpenBoard(ctx context.Context, cfg BoardConfig) (*Board, error) {
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	b := &Board{
		store:     cfg.Store,
		projectID: cfg.ProjectID,
		logger:    cfg.Logger,
		now:       cfg.Now,
	}
	saved, ok, err := b.store.Load(ctx, b.projectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		saved = []Comment{{
			ID:        "init-1",
			ProjectID: b.projectID,
			Author:    DefaultAuthor,
			Text:      DefaultText,
			Timestamp: b.now(),
		}}
	}
	b.comments = state.NewSignal(saved)
	if !ok {
		if err := b.persist(ctx, saved); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// ProjectID returns the project this board belongs to.
func (b *Board) ProjectID() int {
	return b.projectID
}

// Comments is the thread, newest first.
func (b *Board) Comments() state.Readable[[]Comment] {
	return b.comments
}

// Len returns the number of comments.
func (b *Board) Len() int {
	return len(b.comments.Get())
}

// Add trims and validates input, prepends the comment and saves the thread.
// The comment stays on the board even if saving fails.
func (b *Board) Add(ctx context.Context, author, text string) (Comment, error) {
	author = strings.TrimSpace(author)
	text = strings.TrimSpace(text)
	if author == "" {
		return Comment{}, ErrEmptyAuthor
	}
	if text == "" {
		return Comment{}, ErrEmptyText
	}
	c := Comment{
		ID:        ulid.Make().String(),
		ProjectID: b.projectID,
		Author:    author,
		Text:      text,
		Timestamp: b.now(),
	}
	var next []Comment
	b.comments.Update(func(prev []Comment) []Comment {
		next = make([]Comment, 0, len(prev)+1)
		next = append(next, c)
		next = append(next, prev...)
		return next
	})
	return c, b.persist(ctx, next)
}

func (b *Board) persist(ctx context.Context, thread []Comment) error {
	if len(thread) == 0 {
		return nil
	}
	if err := b.store.Save(ctx, b.projectID, thread); err != nil {
		b.logger.Error("saving comments failed", zap.Int("project", b.projectID), zap.Error(err))
		return fmt.Errorf("project %d: %w", b.projectID, err)
	}
	return nil
}
