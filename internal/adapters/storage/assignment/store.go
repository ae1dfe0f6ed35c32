package assignment

import (
	"context"
	"time"

	domain "wishlist/internal/domain/assignment"
)

// Store persists gift assignment edges. A row maps one giver to the
// receiver they draw; the full table always holds either zero edges or
// one complete draw.
type Store interface {
	ReplaceAll(ctx context.Context, edges []domain.Edge, createdAt time.Time) error
	List(ctx context.Context) ([]domain.Edge, error)
	GetReceiverFor(ctx context.Context, giverID string) (string, error)
	DeleteInvolving(ctx context.Context, memberID string) error
	GeneratedAt(ctx context.Context) (time.Time, error)
}
