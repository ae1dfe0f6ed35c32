package wish

import (
	"context"

	domain "wishlist/internal/domain/wish"
)

// Store persists Wish state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Wish, error)
	Save(ctx context.Context, value domain.Wish) error
	Delete(ctx context.Context, id string) error
	DeleteByMember(ctx context.Context, memberID string) error
	ListByMember(ctx context.Context, memberID string) ([]domain.Wish, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Wish, error)
	CountByMember(ctx context.Context) (map[string]int, error)
	ReleaseReservationsBy(ctx context.Context, memberID string) error
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
}
