package settings

import (
	"context"
	"database/sql"
	"fmt"

	"wishlist/internal/adapters/storage"
	domain "wishlist/internal/domain/settings"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves a Setting by key.
// PRE: key is non-empty
// POST: Returns the setting or an error wrapping sql.ErrNoRows if unset
func (s *SQLiteStore) Get(ctx context.Context, key string) (domain.Setting, error) {
	entity := domain.Setting{Key: key}
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM setting WHERE key = ?", key).Scan(&entity.Value)
	if err == sql.ErrNoRows {
		return domain.Setting{}, fmt.Errorf("setting not found: %w", err)
	}
	if err != nil {
		return domain.Setting{}, err
	}
	return entity, nil
}

// Set persists a Setting.
// PRE: value has been validated
// POST: Setting is persisted (insert or update)
func (s *SQLiteStore) Set(ctx context.Context, value domain.Setting) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO setting (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		value.Key, value.Value)
	return err
}

// Delete removes a Setting.
// PRE: key is non-empty
// POST: No setting row with the key remains
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM setting WHERE key = ?", key)
	return err
}
