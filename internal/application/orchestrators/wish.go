package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"wishlist/internal/domain/settings"
	"wishlist/internal/domain/wish"
)

// WishStoreForWishes defines the store interface needed by wish management.
type WishStoreForWishes interface {
	GetByID(ctx context.Context, id string) (wish.Wish, error)
	Save(ctx context.Context, w wish.Wish) error
	Delete(ctx context.Context, id string) error
}

// SettingsStoreForWishes reads the wish deadline.
type SettingsStoreForWishes interface {
	Get(ctx context.Context, key string) (settings.Setting, error)
}

var (
	ErrWishesLocked = errors.New("the wish deadline has passed")
	ErrNotWishOwner = errors.New("only the wish owner can do that")
)

// wishesLockedNow reports whether the deadline gate is closed at the given
// moment. A missing deadline setting never locks.
func wishesLockedNow(ctx context.Context, store SettingsStoreForWishes, now time.Time) (bool, error) {
	setting, err := store.Get(ctx, settings.KeyWishDeadline)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return settings.WishesLocked(now, setting.Value), nil
}

// --- Add Wish ---

// AddWishInput carries input for adding a wish to a member's list.
type AddWishInput struct {
	MemberID    string
	Text        string
	ProductLink string
	ActingAdmin bool // the admin may edit lists after the deadline
}

// AddWishDeps holds dependencies for AddWish.
type AddWishDeps struct {
	WishStore     WishStoreForWishes
	SettingsStore SettingsStoreForWishes
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteAddWish adds a wish to a member's list.
// PRE: Caller has verified the actor may edit this member's list
// POST: Wish persisted, or ErrWishesLocked after the deadline for non-admins
func ExecuteAddWish(ctx context.Context, input AddWishInput, deps AddWishDeps) (wish.Wish, error) {
	if !input.ActingAdmin {
		locked, err := wishesLockedNow(ctx, deps.SettingsStore, deps.Now())
		if err != nil {
			return wish.Wish{}, err
		}
		if locked {
			return wish.Wish{}, ErrWishesLocked
		}
	}

	w := wish.Wish{
		ID:          deps.GenerateID(),
		MemberID:    input.MemberID,
		Text:        input.Text,
		ProductLink: input.ProductLink,
		CreatedAt:   deps.Now(),
	}
	if err := w.Validate(); err != nil {
		return wish.Wish{}, err
	}

	if err := deps.WishStore.Save(ctx, w); err != nil {
		return wish.Wish{}, err
	}

	slog.Info("wish_event", "event", "wish_added", "wish_id", w.ID, "member_id", w.MemberID, "admin", input.ActingAdmin)
	return w, nil
}

// --- Delete Wish ---

// DeleteWishInput carries input for deleting a wish.
type DeleteWishInput struct {
	WishID         string
	ActorMemberIDs []string // members the current session speaks for
	ActingAdmin    bool
}

// DeleteWishDeps holds dependencies for DeleteWish.
type DeleteWishDeps struct {
	WishStore WishStoreForWishes
}

// ExecuteDeleteWish removes a wish from its owner's list. The deadline gates
// adding only, so owners can prune their list at any time.
// PRE: WishID exists
// POST: Wish removed, or ErrNotWishOwner
func ExecuteDeleteWish(ctx context.Context, input DeleteWishInput, deps DeleteWishDeps) error {
	w, err := deps.WishStore.GetByID(ctx, input.WishID)
	if err != nil {
		return err
	}

	if !input.ActingAdmin {
		owned := false
		for _, id := range input.ActorMemberIDs {
			if w.IsOwnedBy(id) {
				owned = true
				break
			}
		}
		if !owned {
			return ErrNotWishOwner
		}
	}

	if err := deps.WishStore.Delete(ctx, w.ID); err != nil {
		return err
	}

	slog.Info("wish_event", "event", "wish_deleted", "wish_id", w.ID, "member_id", w.MemberID, "admin", input.ActingAdmin)
	return nil
}
