package comment

import (
	"context"

	domain "wishlist/internal/domain/comment"
)

// Store persists Comment state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Comment, error)
	Save(ctx context.Context, value domain.Comment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]domain.Comment, error)
	Count(ctx context.Context) (int, error)
}
