package wish

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wishlist/internal/adapters/storage"
	domain "wishlist/internal/domain/wish"
)

const wishColumns = "id, member_id, text, product_link, reserved, reserved_by, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Wish by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Wish, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+wishColumns+" FROM wish WHERE id = ?", id)

	entity, err := scanWish(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Wish{}, fmt.Errorf("wish not found: %w", err)
	}
	return entity, err
}

// Save persists a Wish to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Wish) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wish (`+wishColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   text=excluded.text, product_link=excluded.product_link,
		   reserved=excluded.reserved, reserved_by=excluded.reserved_by`,
		entity.ID,
		entity.MemberID,
		entity.Text,
		entity.ProductLink,
		boolToInt(entity.Reserved),
		entity.ReservedBy,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// Delete removes a Wish from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM wish WHERE id = ?", id)
	return err
}

// DeleteByMember removes every Wish owned by the given member.
// PRE: memberID is non-empty
// POST: No wish rows with member_id = memberID remain
func (s *SQLiteStore) DeleteByMember(ctx context.Context, memberID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM wish WHERE member_id = ?", memberID)
	return err
}

// ListByMember retrieves all wishes owned by one member, oldest first.
// PRE: memberID is non-empty
// POST: Returns matching entities ordered by creation time
func (s *SQLiteStore) ListByMember(ctx context.Context, memberID string) ([]domain.Wish, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+wishColumns+" FROM wish WHERE member_id = ? ORDER BY created_at ASC, id ASC",
		memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWishes(rows)
}

// List retrieves wishes across all members, newest first.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Wish, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 1000
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+wishColumns+" FROM wish ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWishes(rows)
}

// CountByMember returns the number of wishes per member ID.
// PRE: none
// POST: Returns a map keyed by member_id; members without wishes are absent
func (s *SQLiteStore) CountByMember(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id, COUNT(*) FROM wish GROUP BY member_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var memberID string
		var count int
		if err := rows.Scan(&memberID, &count); err != nil {
			return nil, err
		}
		counts[memberID] = count
	}
	return counts, rows.Err()
}

// ReleaseReservationsBy clears every reservation held by the given member.
// PRE: memberID is non-empty
// POST: No wish rows with reserved_by = memberID remain reserved
func (s *SQLiteStore) ReleaseReservationsBy(ctx context.Context, memberID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE wish SET reserved = 0, reserved_by = '' WHERE reserved_by = ?", memberID)
	return err
}

func collectWishes(rows *sql.Rows) ([]domain.Wish, error) {
	var results []domain.Wish
	for rows.Next() {
		entity, err := scanWish(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanWish extracts a Wish from a row scanner function.
func scanWish(scan func(dest ...any) error) (domain.Wish, error) {
	var entity domain.Wish
	var reserved int
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.MemberID,
		&entity.Text,
		&entity.ProductLink,
		&reserved,
		&entity.ReservedBy,
		&createdAt,
	)
	if err != nil {
		return domain.Wish{}, err
	}
	entity.Reserved = reserved != 0
	entity.CreatedAt, _ = parseTime(createdAt)
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
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
