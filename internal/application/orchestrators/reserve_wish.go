package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"wishlist/internal/domain/wish"
)

// WishStoreForReserve defines the store interface needed by reservations.
type WishStoreForReserve interface {
	GetByID(ctx context.Context, id string) (wish.Wish, error)
	Save(ctx context.Context, w wish.Wish) error
}

var ErrNotReservationHolder = errors.New("only the member who reserved this wish can release it")

// ReserveWishInput carries input for reserving a wish.
type ReserveWishInput struct {
	WishID         string
	ReserverID     string   // member doing the reserving
	ActorMemberIDs []string // everyone the session speaks for; none may own the wish
}

// ReserveWishDeps holds dependencies for ReserveWish.
type ReserveWishDeps struct {
	WishStore WishStoreForReserve
}

// ExecuteReserveWish marks a wish as claimed by the reserver. The wish owner
// never reserves their own wish, and a session speaking for several members
// cannot claim a wish any of them owns.
// PRE: WishID exists, ReserverID is one of ActorMemberIDs
// POST: Wish reserved, or wish.ErrAlreadyReserved / wish.ErrReserveOwnWish
func ExecuteReserveWish(ctx context.Context, input ReserveWishInput, deps ReserveWishDeps) error {
	w, err := deps.WishStore.GetByID(ctx, input.WishID)
	if err != nil {
		return err
	}

	for _, id := range input.ActorMemberIDs {
		if w.IsOwnedBy(id) {
			return wish.ErrReserveOwnWish
		}
	}

	if err := w.Reserve(input.ReserverID); err != nil {
		return err
	}
	if err := deps.WishStore.Save(ctx, w); err != nil {
		return err
	}

	slog.Info("wish_event", "event", "wish_reserved", "wish_id", w.ID, "member_id", w.MemberID)
	return nil
}

// ReleaseWishInput carries input for releasing a reservation.
type ReleaseWishInput struct {
	WishID         string
	ActorMemberIDs []string
	ActingAdmin    bool
}

// ReleaseWishDeps holds dependencies for ReleaseWish.
type ReleaseWishDeps struct {
	WishStore WishStoreForReserve
}

// ExecuteReleaseWish releases a reservation. Only the member who reserved the
// wish (or the admin) can put it back.
// PRE: WishID exists and is reserved
// POST: Wish released, or wish.ErrNotReserved / ErrNotReservationHolder
func ExecuteReleaseWish(ctx context.Context, input ReleaseWishInput, deps ReleaseWishDeps) error {
	w, err := deps.WishStore.GetByID(ctx, input.WishID)
	if err != nil {
		return err
	}

	if !input.ActingAdmin {
		// Checked before the reserved state so the owner cannot tell a
		// reserved wish from an unreserved one by the error they get.
		holder := false
		for _, id := range input.ActorMemberIDs {
			if w.ReservedBy == id {
				holder = true
				break
			}
		}
		if !holder {
			return ErrNotReservationHolder
		}
	}

	if err := w.Release(); err != nil {
		return err
	}
	if err := deps.WishStore.Save(ctx, w); err != nil {
		return err
	}

	slog.Info("wish_event", "event", "wish_released", "wish_id", w.ID, "member_id", w.MemberID, "admin", input.ActingAdmin)
	return nil
}
