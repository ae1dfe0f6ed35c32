package orchestrators

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"wishlist/internal/domain/assignment"
	"wishlist/internal/domain/member"
)

// MemberStoreForRun defines the store interface needed by the draw.
type MemberStoreForRun interface {
	List(ctx context.Context) ([]member.Member, error)
}

// AssignmentStoreForRun persists the finished draw.
type AssignmentStoreForRun interface {
	ReplaceAll(ctx context.Context, edges []assignment.Edge, createdAt time.Time) error
}

// RunAssignmentInput carries input for running the gift draw.
type RunAssignmentInput struct {
	MaxAttempts int  // 0 uses the generator default
	Notify      bool // queue an email for every member with an address
}

// RunAssignmentResult carries the outcome of a successful draw.
type RunAssignmentResult struct {
	Edges        []assignment.Edge
	Participants int
	Notified     int
}

// RunAssignmentDeps holds dependencies for RunAssignment.
type RunAssignmentDeps struct {
	MemberStore     MemberStoreForRun
	AssignmentStore AssignmentStoreForRun
	OutboxStore     OutboxStoreForEnqueue
	GenerateID      func() string
	Now             func() time.Time
	BaseURL         string // public URL used in notification emails
}

// ExecuteRunAssignment draws a fresh gift cycle over all members and swaps it
// in atomically. A failed draw leaves the previous one untouched and
// authoritative. Notification emails only say a draw happened; the receiver
// stays hidden until the giver opens their own page.
// PRE: At least two members exist
// POST: On success the stored draw is replaced as one unit; on
// assignment.ErrInsufficientParticipants or assignment.ErrNoFeasibleAssignment
// nothing is written
func ExecuteRunAssignment(ctx context.Context, input RunAssignmentInput, deps RunAssignmentDeps) (RunAssignmentResult, error) {
	members, err := deps.MemberStore.List(ctx)
	if err != nil {
		return RunAssignmentResult{}, fmt.Errorf("list members: %w", err)
	}

	participants := make([]assignment.Participant, 0, len(members))
	for _, m := range members {
		participants = append(participants, assignment.Participant{ID: m.ID, Team: m.Team})
	}

	edges, err := assignment.Generate(participants, input.MaxAttempts)
	if err != nil {
		slog.Info("draw_event", "event", "draw_failed", "participants", len(participants), "error", err)
		return RunAssignmentResult{}, err
	}

	now := deps.Now()
	if err := deps.AssignmentStore.ReplaceAll(ctx, edges, now); err != nil {
		return RunAssignmentResult{}, fmt.Errorf("store draw: %w", err)
	}

	result := RunAssignmentResult{
		Edges:        edges,
		Participants: len(participants),
	}

	if input.Notify {
		result.Notified = enqueueDrawNotifications(ctx, deps, members, now)
	}

	slog.Info("draw_event", "event", "draw_completed", "participants", len(participants), "edges", len(edges), "notified", result.Notified)
	return result, nil
}

// enqueueDrawNotifications queues one email per member with an address.
// Enqueue failures are logged and skipped; the draw itself already succeeded.
func enqueueDrawNotifications(ctx context.Context, deps RunAssignmentDeps, members []member.Member, now time.Time) int {
	notified := 0
	for _, m := range members {
		if m.Email == "" {
			continue
		}

		payload := emailPayload{
			To:      []string{m.Email},
			Subject: "The Secret Santa draw is ready",
			HTML:    drawNotificationHTML(m.Name, deps.BaseURL),
		}
		if err := enqueueEmail(ctx, deps.OutboxStore, deps.GenerateID(), now, payload); err != nil {
			slog.Error("draw_event", "event", "notify_enqueue_failed", "member_id", m.ID, "error", err)
			continue
		}
		notified++
	}
	return notified
}

// drawNotificationHTML renders the notification body. The receiver is
// deliberately absent; family inboxes get shared.
func drawNotificationHTML(name, baseURL string) string {
	link := baseURL
	if link == "" {
		link = "/"
	}
	return fmt.Sprintf(
		`<p>Hi %s,</p>
<p>The Secret Santa draw has been made. Open the wishlist to see whose gift you are making special this year.</p>
<p><a href="%s">Open the family wishlist</a></p>`,
		html.EscapeString(name), link)
}
