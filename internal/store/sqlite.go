package store

import (
	"context"
	"database/sql"
	"fmt"

	// registers the "sqlite3" driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/bank-statementer/statementer/internal/logging"
	"github.com/bank-statementer/statementer/internal/models"
	"github.com/bank-statementer/statementer/internal/normalizer"
)

// DefaultSQLiteFile is the database location when none is configured.
const DefaultSQLiteFile = "tags.db"

const schema = `
CREATE TABLE IF NOT EXISTS tags (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	description TEXT NOT NULL,
	category    TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLTagStore keeps tags in a SQL table ordered by insertion id.
type SQLTagStore struct {
	db         *sql.DB
	normalizer *normalizer.Normalizer
	logger     logging.Logger
}

// OpenSQLite opens (or creates) a SQLite database at path and ensures the
// tags table exists.
func OpenSQLite(path string, n *normalizer.Normalizer, logger logging.Logger) (*SQLTagStore, error) {
	if path == "" {
		path = DefaultSQLiteFile
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	s := NewSQLTagStore(db, n, logger)
	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLTagStore wraps an open database. The caller owns migration when
// using this constructor directly.
func NewSQLTagStore(db *sql.DB, n *normalizer.Normalizer, logger logging.Logger) *SQLTagStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &SQLTagStore{db: db, normalizer: normalizerOrDefault(n), logger: logger}
}

// Migrate creates the schema if needed.
func (s *SQLTagStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLTagStore) Close() error {
	return s.db.Close()
}

func (s *SQLTagStore) LoadTags(ctx context.Context) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT description, category FROM tags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.Description, &t.Category); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}

func (s *SQLTagStore) AppendIfNew(ctx context.Context, tag models.Tag) (bool, error) {
	tags, err := s.LoadTags(ctx)
	if err != nil {
		return false, err
	}
	if containsEquivalent(s.normalizer, tags, tag) {
		return false, nil
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO tags (description, category) VALUES (?, ?)`,
		tag.Description, tag.Category,
	); err != nil {
		return false, fmt.Errorf("insert tag: %w", err)
	}

	s.logger.Info("Tag added",
		logging.F(logging.FieldDescription, tag.Description),
		logging.F(logging.FieldCategory, tag.Category))
	return true, nil
}
