package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"wishlist/internal/domain/member"
)

// MemberStoreForManage defines the store interface needed by member management.
type MemberStoreForManage interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
	GetByName(ctx context.Context, name string) (member.Member, error)
	Save(ctx context.Context, m member.Member) error
	Delete(ctx context.Context, id string) error
}

// WishStoreForManage covers the wish cleanup a member removal needs.
type WishStoreForManage interface {
	DeleteByMember(ctx context.Context, memberID string) error
	ReleaseReservationsBy(ctx context.Context, memberID string) error
}

// AssignmentStoreForManage covers the draw cleanup a member removal needs.
type AssignmentStoreForManage interface {
	DeleteInvolving(ctx context.Context, memberID string) error
}

var ErrDuplicateName = errors.New("a member with that name already exists")

// --- Add Member ---

// AddMemberInput carries input for adding a family member.
type AddMemberInput struct {
	Name  string
	Team  string
	Email string
}

// AddMemberDeps holds dependencies for AddMember.
type AddMemberDeps struct {
	MemberStore MemberStoreForManage
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteAddMember creates a new family member.
// PRE: Name is unique ignoring case
// POST: Member persisted with generated ID
func ExecuteAddMember(ctx context.Context, input AddMemberInput, deps AddMemberDeps) (member.Member, error) {
	m := member.Member{
		ID:        deps.GenerateID(),
		Name:      member.NormalizeName(input.Name),
		Team:      member.NormalizeName(input.Team),
		Email:     input.Email,
		CreatedAt: deps.Now(),
	}
	if err := m.Validate(); err != nil {
		return member.Member{}, err
	}

	if _, err := deps.MemberStore.GetByName(ctx, m.Name); err == nil {
		return member.Member{}, ErrDuplicateName
	}

	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return member.Member{}, err
	}

	slog.Info("member_event", "event", "member_added", "member_id", m.ID, "team", m.Team)
	return m, nil
}

// --- Update Member ---

// UpdateMemberInput carries input for editing a family member.
type UpdateMemberInput struct {
	MemberID string
	Name     string
	Team     string
	Email    string
}

// UpdateMemberDeps holds dependencies for UpdateMember.
type UpdateMemberDeps struct {
	MemberStore MemberStoreForManage
}

// ExecuteUpdateMember edits a member's name, team, or email. Renames keep the
// member's wishes and any stored draw edges because both key on the member ID.
// PRE: MemberID exists; new name is unique ignoring case
// POST: Member persisted with updated fields
func ExecuteUpdateMember(ctx context.Context, input UpdateMemberInput, deps UpdateMemberDeps) (member.Member, error) {
	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return member.Member{}, err
	}

	m.Name = member.NormalizeName(input.Name)
	m.Team = member.NormalizeName(input.Team)
	m.Email = input.Email
	if err := m.Validate(); err != nil {
		return member.Member{}, err
	}

	if existing, err := deps.MemberStore.GetByName(ctx, m.Name); err == nil && existing.ID != m.ID {
		return member.Member{}, ErrDuplicateName
	}

	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return member.Member{}, err
	}

	slog.Info("member_event", "event", "member_updated", "member_id", m.ID)
	return m, nil
}

// --- Remove Member ---

// RemoveMemberInput carries input for removing a family member.
type RemoveMemberInput struct {
	MemberID string
}

// RemoveMemberDeps holds dependencies for RemoveMember.
type RemoveMemberDeps struct {
	MemberStore     MemberStoreForManage
	WishStore       WishStoreForManage
	AssignmentStore AssignmentStoreForManage
}

// ExecuteRemoveMember deletes a member together with their wishes, any
// reservations they hold on other members' wishes, and any draw edges that
// touch them. The remaining draw may be partial; the admin panel flags that
// and the admin re-runs the draw.
// PRE: MemberID exists
// POST: No wish, reservation, or draw edge references the member
func ExecuteRemoveMember(ctx context.Context, input RemoveMemberInput, deps RemoveMemberDeps) error {
	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return err
	}

	if err := deps.AssignmentStore.DeleteInvolving(ctx, m.ID); err != nil {
		return err
	}
	if err := deps.WishStore.ReleaseReservationsBy(ctx, m.ID); err != nil {
		return err
	}
	if err := deps.WishStore.DeleteByMember(ctx, m.ID); err != nil {
		return err
	}
	if err := deps.MemberStore.Delete(ctx, m.ID); err != nil {
		return err
	}

	slog.Info("member_event", "event", "member_removed", "member_id", m.ID)
	return nil
}
