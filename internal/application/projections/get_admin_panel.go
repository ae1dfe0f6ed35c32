package projections

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	domainAssignment "wishlist/internal/domain/assignment"
	domainMember "wishlist/internal/domain/member"
)

// GetAdminPanelQuery carries the query parameters.
type GetAdminPanelQuery struct {
	Now time.Time
}

// AdminMember is one roster row on the panel.
type AdminMember struct {
	ID        string
	Name      string
	Team      string
	Email     string
	WishCount int
}

// DrawEdge is one stored pairing with names resolved for display.
type DrawEdge struct {
	GiverID      string
	GiverName    string
	ReceiverID   string
	ReceiverName string
}

// GetAdminPanelResult carries the query result.
type GetAdminPanelResult struct {
	Members      []AdminMember
	Edges        []DrawEdge
	HasDraw      bool
	DrawPartial  bool // members were added or removed after the draw
	GeneratedAt  time.Time
	Deadline     string
	WishesLocked bool
	OutboxCounts map[string]int
	CommentCount int
}

// GetAdminPanelDeps holds dependencies for GetAdminPanel.
type GetAdminPanelDeps struct {
	MemberStore     MemberStore
	WishStore       WishStore
	AssignmentStore AssignmentStore
	SettingsStore   SettingsStore
	CommentStore    CommentStore
	OutboxStore     OutboxStore
}

// QueryGetAdminPanel assembles the admin overview. The independent reads
// fan out concurrently; the first failure cancels the rest.
func QueryGetAdminPanel(ctx context.Context, query GetAdminPanelQuery, deps GetAdminPanelDeps) (GetAdminPanelResult, error) {
	var (
		members      []domainMember.Member
		wishCounts   map[string]int
		edges        []domainAssignment.Edge
		generatedAt  time.Time
		deadline     string
		wishesLocked bool
		outboxCounts map[string]int
		commentCount int
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		members, err = deps.MemberStore.List(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		wishCounts, err = deps.WishStore.CountByMember(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		edges, err = deps.AssignmentStore.List(gCtx)
		if err != nil {
			return err
		}
		generatedAt, err = deps.AssignmentStore.GeneratedAt(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		deadline, wishesLocked, err = deadlineInfo(gCtx, deps.SettingsStore, query.Now)
		return err
	})

	g.Go(func() error {
		var err error
		outboxCounts, err = deps.OutboxStore.CountByStatus(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		commentCount, err = deps.CommentStore.Count(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return GetAdminPanelResult{}, err
	}

	result := GetAdminPanelResult{
		HasDraw:      len(edges) > 0,
		GeneratedAt:  generatedAt,
		Deadline:     deadline,
		WishesLocked: wishesLocked,
		OutboxCounts: outboxCounts,
		CommentCount: commentCount,
	}

	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
		result.Members = append(result.Members, AdminMember{
			ID:        m.ID,
			Name:      m.Name,
			Team:      m.Team,
			Email:     m.Email,
			WishCount: wishCounts[m.ID],
		})
	}

	for _, e := range edges {
		result.Edges = append(result.Edges, DrawEdge{
			GiverID:      e.GiverID,
			GiverName:    names[e.GiverID],
			ReceiverID:   e.ReceiverID,
			ReceiverName: names[e.ReceiverID],
		})
	}

	// A draw stays valid after roster edits only if it still covers
	// everyone. Flag the mismatch so the admin knows to redraw.
	result.DrawPartial = result.HasDraw && len(edges) != len(members)

	return result, nil
}
