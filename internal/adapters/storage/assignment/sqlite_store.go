package assignment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wishlist/internal/adapters/storage"
	domain "wishlist/internal/domain/assignment"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ReplaceAll swaps the stored draw for the given one in a single transaction.
// PRE: edges form a valid draw (unique givers, unique receivers)
// POST: Either the new edges are all stored and old ones gone, or on error
// the previous draw is untouched
func (s *SQLiteStore) ReplaceAll(ctx context.Context, edges []domain.Edge, createdAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM assignment"); err != nil {
		return err
	}

	stamp := createdAt.Format(time.RFC3339Nano)
	for _, edge := range edges {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO assignment (giver_id, receiver_id, created_at) VALUES (?, ?, ?)",
			edge.GiverID, edge.ReceiverID, stamp)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// List retrieves all edges of the stored draw.
// PRE: none
// POST: Returns every edge, or an empty slice when no draw exists
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Edge, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT giver_id, receiver_id FROM assignment ORDER BY giver_id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Edge
	for rows.Next() {
		var edge domain.Edge
		if err := rows.Scan(&edge.GiverID, &edge.ReceiverID); err != nil {
			return nil, err
		}
		results = append(results, edge)
	}
	return results, rows.Err()
}

// GetReceiverFor retrieves the receiver drawn by the given giver.
// PRE: giverID is non-empty
// POST: Returns the receiver's member ID or an error if no draw covers the giver
func (s *SQLiteStore) GetReceiverFor(ctx context.Context, giverID string) (string, error) {
	var receiverID string
	err := s.db.QueryRowContext(ctx,
		"SELECT receiver_id FROM assignment WHERE giver_id = ?", giverID).Scan(&receiverID)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("assignment not found: %w", err)
	}
	return receiverID, err
}

// DeleteInvolving removes every edge that touches the given member.
// PRE: memberID is non-empty
// POST: No edge has the member as giver or receiver
func (s *SQLiteStore) DeleteInvolving(ctx context.Context, memberID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM assignment WHERE giver_id = ? OR receiver_id = ?", memberID, memberID)
	return err
}

// GeneratedAt reports when the stored draw was created.
// PRE: none
// POST: Returns the draw timestamp, or the zero time when no draw exists
func (s *SQLiteStore) GeneratedAt(ctx context.Context) (time.Time, error) {
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT created_at FROM assignment LIMIT 1").Scan(&createdAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return parseTime(createdAt)
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
