package projections

import (
	"context"
	"time"

	domainAssignment "wishlist/internal/domain/assignment"
	domainComment "wishlist/internal/domain/comment"
	domainMember "wishlist/internal/domain/member"
	domainOutbox "wishlist/internal/domain/outbox"
	domainSettings "wishlist/internal/domain/settings"
	domainWish "wishlist/internal/domain/wish"
)

// MemberStore interface for member queries.
type MemberStore interface {
	GetByID(ctx context.Context, id string) (domainMember.Member, error)
	List(ctx context.Context) ([]domainMember.Member, error)
}

// WishStore interface for wish queries.
type WishStore interface {
	ListByMember(ctx context.Context, memberID string) ([]domainWish.Wish, error)
	CountByMember(ctx context.Context) (map[string]int, error)
}

// AssignmentStore interface for draw queries.
type AssignmentStore interface {
	List(ctx context.Context) ([]domainAssignment.Edge, error)
	GetReceiverFor(ctx context.Context, giverID string) (string, error)
	// GeneratedAt returns the zero time, not an error, when no draw exists.
	GeneratedAt(ctx context.Context) (time.Time, error)
}

// SettingsStore interface for settings queries.
type SettingsStore interface {
	Get(ctx context.Context, key string) (domainSettings.Setting, error)
}

// CommentStore interface for board queries.
type CommentStore interface {
	List(ctx context.Context, limit, offset int) ([]domainComment.Comment, error)
	Count(ctx context.Context) (int, error)
}

// OutboxStore interface for delivery queue queries.
type OutboxStore interface {
	ListRecent(ctx context.Context, limit int) ([]domainOutbox.Entry, error)
	ListFailed(ctx context.Context, limit int) ([]domainOutbox.Entry, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// WishView is a wish as a particular viewer may see it. Reservation
// flags are stripped whenever the viewer owns the list, so the surprise
// holds even on a shared family screen.
type WishView struct {
	ID           string
	Text         string
	ProductLink  string
	Reserved     bool
	ReservedByMe bool
	CanReserve   bool
}
