package comment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wishlist/internal/adapters/storage"
	domain "wishlist/internal/domain/comment"
)

const commentColumns = "id, author_name, body, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Comment by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Comment, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+commentColumns+" FROM comment WHERE id = ?", id)

	entity, err := scanComment(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Comment{}, fmt.Errorf("comment not found: %w", err)
	}
	return entity, err
}

// Save persists a Comment to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Comment) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO comment (`+commentColumns+`) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   author_name=excluded.author_name, body=excluded.body`,
		entity.ID,
		entity.AuthorName,
		entity.Body,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// Delete removes a Comment from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM comment WHERE id = ?", id)
	return err
}

// List retrieves comments newest first.
// PRE: limit > 0, offset >= 0
// POST: Returns up to limit entities
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]domain.Comment, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+commentColumns+" FROM comment ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Comment
	for rows.Next() {
		entity, err := scanComment(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the total number of comments.
// PRE: none
// POST: Returns count >= 0
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comment").Scan(&count)
	return count, err
}

// scanComment extracts a Comment from a row scanner function.
func scanComment(scan func(dest ...any) error) (domain.Comment, error) {
	var entity domain.Comment
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.AuthorName,
		&entity.Body,
		&createdAt,
	)
	if err != nil {
		return domain.Comment{}, err
	}
	entity.CreatedAt, _ = parseTime(createdAt)
	return entity, nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}
