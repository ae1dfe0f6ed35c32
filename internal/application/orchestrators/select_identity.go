package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"wishlist/internal/domain/member"
)

// MemberStoreForIdentity defines the store interface needed by SelectIdentity.
type MemberStoreForIdentity interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
}

// SelectIdentityInput carries the member IDs a visitor claims to be. A parent
// filling in for themselves and their kids selects several at once.
type SelectIdentityInput struct {
	MemberIDs []string
}

// SelectIdentityResult carries the verified members for session creation.
type SelectIdentityResult struct {
	Members []member.Member
}

// SelectIdentityDeps holds dependencies for SelectIdentity.
type SelectIdentityDeps struct {
	MemberStore MemberStoreForIdentity
}

var (
	ErrNoIdentitySelected = errors.New("select at least one family member")
	ErrUnknownMember      = errors.New("selected member does not exist")
)

// ExecuteSelectIdentity verifies the claimed identities against the member list.
// PRE: At least one member ID provided
// POST: Every returned member exists; duplicates in the input are collapsed
func ExecuteSelectIdentity(ctx context.Context, input SelectIdentityInput, deps SelectIdentityDeps) (SelectIdentityResult, error) {
	if len(input.MemberIDs) == 0 {
		return SelectIdentityResult{}, ErrNoIdentitySelected
	}

	seen := make(map[string]bool, len(input.MemberIDs))
	var members []member.Member
	for _, id := range input.MemberIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		m, err := deps.MemberStore.GetByID(ctx, id)
		if err != nil {
			slog.Info("identity_event", "event", "identity_rejected", "member_id", id)
			return SelectIdentityResult{}, ErrUnknownMember
		}
		members = append(members, m)
	}

	if len(members) == 0 {
		return SelectIdentityResult{}, ErrNoIdentitySelected
	}

	slog.Info("identity_event", "event", "identity_selected", "member_count", len(members))
	return SelectIdentityResult{Members: members}, nil
}
