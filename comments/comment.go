// Package comments stores per-project critique threads.
package comments

import (
	"context"
	"errors"
	"strconv"
	"time"
)

// Comment is one piece of feedback on a project.
type Comment struct {
	ID        string    `json:"id"`
	ProjectID int       `json:"projectId"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

var (
	ErrEmptyAuthor = errors.New("comment author is required")
	ErrEmptyText   = errors.New("comment text is required")
)

// Store persists comment threads keyed by project.
type Store interface {
	// Load returns the saved thread. ok is false when nothing was saved.
	Load(ctx context.Context, projectID int) (comments []Comment, ok bool, err error)
	Save(ctx context.Context, projectID int, comments []Comment) error
}

// Key returns the storage key for a project's thread.
func Key(projectID int) string {
	return "comments_project_" + strconv.Itoa(projectID)
}
