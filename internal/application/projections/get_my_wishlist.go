package projections

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domainMember "wishlist/internal/domain/member"
	domainWish "wishlist/internal/domain/wish"
)

// GetMyWishlistQuery carries the session's selected members.
type GetMyWishlistQuery struct {
	MemberIDs []string
	Now       time.Time
}

// OwnListSection is one selected member's own list. Reservation state is
// deliberately absent here.
type OwnListSection struct {
	Member domainMember.Member
	Wishes []WishView
}

// ReceiverSection shows a selected member who they drew and that
// receiver's list with reservation state visible.
type ReceiverSection struct {
	GiverID      string
	GiverName    string
	Receiver     domainMember.Member
	Wishes       []WishView
	HiddenViewer bool // receiver shares this session; flags are stripped
}

// GetMyWishlistResult carries the query result.
type GetMyWishlistResult struct {
	Sections     []OwnListSection
	Receivers    []ReceiverSection
	HasDraw      bool
	Deadline     string
	WishesLocked bool
}

// GetMyWishlistDeps holds dependencies for GetMyWishlist.
type GetMyWishlistDeps struct {
	MemberStore     MemberStore
	WishStore       WishStore
	AssignmentStore AssignmentStore
	SettingsStore   SettingsStore
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ownWishViews renders a member's own wishes with reservation state hidden.
func ownWishViews(wishes []domainWish.Wish) []WishView {
	var views []WishView
	for _, w := range wishes {
		views = append(views, WishView{
			ID:          w.ID,
			Text:        w.Text,
			ProductLink: w.ProductLink,
		})
	}
	return views
}

// visibleWishViews renders another member's wishes for a viewer session.
func visibleWishViews(wishes []domainWish.Wish, viewerIDs []string) []WishView {
	var views []WishView
	for _, w := range wishes {
		views = append(views, WishView{
			ID:           w.ID,
			Text:         w.Text,
			ProductLink:  w.ProductLink,
			Reserved:     w.Reserved,
			ReservedByMe: w.Reserved && contains(viewerIDs, w.ReservedBy),
			CanReserve:   !w.Reserved,
		})
	}
	return views
}

// QueryGetMyWishlist builds the personal page: one section per selected
// member with their own wishes, and one section per draw edge showing the
// receiver's list.
// PRE: MemberIDs came from identity selection; an ID whose member has
// since been removed yields no section rather than an error
// POST: Own sections never carry reservation state; a receiver who shares
// the session gets their flags stripped too
func QueryGetMyWishlist(ctx context.Context, query GetMyWishlistQuery, deps GetMyWishlistDeps) (GetMyWishlistResult, error) {
	result := GetMyWishlistResult{}

	for _, id := range query.MemberIDs {
		m, err := deps.MemberStore.GetByID(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			continue // removed from the pool since this session picked them
		}
		if err != nil {
			return GetMyWishlistResult{}, err
		}

		wishes, err := deps.WishStore.ListByMember(ctx, m.ID)
		if err != nil {
			return GetMyWishlistResult{}, err
		}
		result.Sections = append(result.Sections, OwnListSection{
			Member: m,
			Wishes: ownWishViews(wishes),
		})

		receiverID, err := deps.AssignmentStore.GetReceiverFor(ctx, m.ID)
		if errors.Is(err, sql.ErrNoRows) {
			continue // no draw covers this giver yet
		}
		if err != nil {
			return GetMyWishlistResult{}, err
		}
		result.HasDraw = true

		receiver, err := deps.MemberStore.GetByID(ctx, receiverID)
		if err != nil {
			return GetMyWishlistResult{}, err
		}
		receiverWishes, err := deps.WishStore.ListByMember(ctx, receiver.ID)
		if err != nil {
			return GetMyWishlistResult{}, err
		}

		section := ReceiverSection{
			GiverID:   m.ID,
			GiverName: m.Name,
			Receiver:  receiver,
		}
		if contains(query.MemberIDs, receiver.ID) {
			// The receiver is sitting at this screen; keep their list
			// as surprise-free as their own page.
			section.HiddenViewer = true
			section.Wishes = ownWishViews(receiverWishes)
		} else {
			section.Wishes = visibleWishViews(receiverWishes, query.MemberIDs)
		}
		result.Receivers = append(result.Receivers, section)
	}

	var err error
	result.Deadline, result.WishesLocked, err = deadlineInfo(ctx, deps.SettingsStore, query.Now)
	if err != nil {
		return GetMyWishlistResult{}, err
	}

	return result, nil
}
