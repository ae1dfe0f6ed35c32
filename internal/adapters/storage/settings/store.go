package settings

import (
	"context"

	domain "wishlist/internal/domain/settings"
)

// Store persists key/value settings.
type Store interface {
	Get(ctx context.Context, key string) (domain.Setting, error)
	Set(ctx context.Context, value domain.Setting) error
	Delete(ctx context.Context, key string) error
}
