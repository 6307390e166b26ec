package comments

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// SQLiteStore keeps each thread as a JSON payload row.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db, logger: logger, now: time.Now}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load implements Store. A payload that cannot be decoded is logged and
// reported as absent.
func (s *SQLiteStore) Load(ctx context.Context, projectID int) ([]Comment, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM threads WHERE key = ?", Key(projectID)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load comments: %w", err)
	}
	var out []Comment
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		s.logger.Warn("discarding unreadable comments", zap.Int("project", projectID), zap.Error(err))
		return nil, false, nil
	}
	return out, true, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, projectID int, comments []Comment) error {
	payload, err := json.Marshal(comments)
	if err != nil {
		return fmt.Errorf("encode comments: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO threads (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		Key(projectID), string(payload), s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save comments: %w", err)
	}
	return nil
}

var _ Store = (*SQLiteStore)(nil)
