package projections

import (
	"context"
	"time"

	domainMember "wishlist/internal/domain/member"
)

// GetMemberWishesQuery identifies the list owner and the viewing session.
type GetMemberWishesQuery struct {
	MemberID        string
	ViewerMemberIDs []string
	Now             time.Time
}

// GetMemberWishesResult carries the query result.
type GetMemberWishesResult struct {
	Member       domainMember.Member
	Wishes       []WishView
	IsOwn        bool
	Deadline     string
	WishesLocked bool
}

// GetMemberWishesDeps holds dependencies for GetMemberWishes.
type GetMemberWishesDeps struct {
	MemberStore   MemberStore
	WishStore     WishStore
	SettingsStore SettingsStore
}

// QueryGetMemberWishes builds one member's list for a viewer. When the
// viewer session includes the owner the reservation flags are stripped,
// same as on the personal page.
func QueryGetMemberWishes(ctx context.Context, query GetMemberWishesQuery, deps GetMemberWishesDeps) (GetMemberWishesResult, error) {
	m, err := deps.MemberStore.GetByID(ctx, query.MemberID)
	if err != nil {
		return GetMemberWishesResult{}, err
	}

	wishes, err := deps.WishStore.ListByMember(ctx, m.ID)
	if err != nil {
		return GetMemberWishesResult{}, err
	}

	result := GetMemberWishesResult{
		Member: m,
		IsOwn:  contains(query.ViewerMemberIDs, m.ID),
	}
	if result.IsOwn {
		result.Wishes = ownWishViews(wishes)
	} else {
		result.Wishes = visibleWishViews(wishes, query.ViewerMemberIDs)
	}

	result.Deadline, result.WishesLocked, err = deadlineInfo(ctx, deps.SettingsStore, query.Now)
	if err != nil {
		return GetMemberWishesResult{}, err
	}

	return result, nil
}
