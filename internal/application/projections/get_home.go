package projections

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"wishlist/internal/domain/settings"
)

// GetHomeQuery carries query parameters.
type GetHomeQuery struct {
	Now time.Time
}

// HomeMember is one member card on the landing page.
type HomeMember struct {
	ID        string
	Name      string
	Team      string
	WishCount int
}

// GetHomeResult carries the query result.
type GetHomeResult struct {
	Members      []HomeMember
	HasDraw      bool
	Deadline     string // YYYY-MM-DD, empty when unset
	WishesLocked bool
}

// GetHomeDeps holds dependencies for GetHome.
type GetHomeDeps struct {
	MemberStore     MemberStore
	WishStore       WishStore
	AssignmentStore AssignmentStore
	SettingsStore   SettingsStore
}

// deadlineInfo loads the wish deadline and whether it has passed.
// A missing setting means no deadline and never locks.
func deadlineInfo(ctx context.Context, store SettingsStore, now time.Time) (string, bool, error) {
	setting, err := store.Get(ctx, settings.KeyWishDeadline)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return setting.Value, settings.WishesLocked(now, setting.Value), nil
}

// QueryGetHome builds the landing page: every member with their wish
// count, plus draw and deadline state.
// PRE: none
// POST: Members sorted by name as the store returns them
func QueryGetHome(ctx context.Context, query GetHomeQuery, deps GetHomeDeps) (GetHomeResult, error) {
	members, err := deps.MemberStore.List(ctx)
	if err != nil {
		return GetHomeResult{}, err
	}

	counts, err := deps.WishStore.CountByMember(ctx)
	if err != nil {
		return GetHomeResult{}, err
	}

	result := GetHomeResult{}
	for _, m := range members {
		result.Members = append(result.Members, HomeMember{
			ID:        m.ID,
			Name:      m.Name,
			Team:      m.Team,
			WishCount: counts[m.ID],
		})
	}

	edges, err := deps.AssignmentStore.List(ctx)
	if err != nil {
		return GetHomeResult{}, err
	}
	result.HasDraw = len(edges) > 0

	result.Deadline, result.WishesLocked, err = deadlineInfo(ctx, deps.SettingsStore, query.Now)
	if err != nil {
		return GetHomeResult{}, err
	}

	return result, nil
}
