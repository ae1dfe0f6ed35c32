package projections

import (
	"context"
	"encoding/json"
	"time"

	domainOutbox "wishlist/internal/domain/outbox"
)

// GetOutboxAdminQuery carries the query parameters.
type GetOutboxAdminQuery struct {
	RecentLimit int
}

// OutboxEntryView is one log row with the email payload unpacked so the
// page can show who the mail was for without dumping the body.
type OutboxEntryView struct {
	domainOutbox.Entry
	Recipients    []string
	Subject       string
	Terminal      bool
	NextAttemptAt time.Time // zero when terminal or never attempted
}

// GetOutboxAdminResult carries the query result.
type GetOutboxAdminResult struct {
	Recent        []OutboxEntryView
	Failed        []OutboxEntryView
	CountByStatus map[string]int
	Total         int
}

// GetOutboxAdminDeps holds dependencies for GetOutboxAdmin.
type GetOutboxAdminDeps struct {
	OutboxStore OutboxStore
}

func newOutboxEntryView(e domainOutbox.Entry) OutboxEntryView {
	view := OutboxEntryView{Entry: e}
	if e.ActionType == domainOutbox.ActionTypeEmail {
		var p struct {
			To      []string `json:"to"`
			Subject string   `json:"subject"`
		}
		if json.Unmarshal([]byte(e.Payload), &p) == nil {
			view.Recipients = p.To
			view.Subject = p.Subject
		}
	}
	view.Terminal = e.IsTerminal()
	if !view.Terminal && !e.LastAttemptedAt.IsZero() {
		view.NextAttemptAt = e.LastAttemptedAt.Add(
			e.NextRetryDelay(domainOutbox.DefaultBaseRetryDelay, domainOutbox.DefaultMaxRetryDelay))
	}
	return view
}

func outboxEntryViews(entries []domainOutbox.Entry) []OutboxEntryView {
	var views []OutboxEntryView
	for _, e := range entries {
		views = append(views, newOutboxEntryView(e))
	}
	return views
}

// QueryGetOutboxAdmin builds the delivery log page: recent traffic,
// entries stuck in failed, and the per-status totals.
func QueryGetOutboxAdmin(ctx context.Context, query GetOutboxAdminQuery, deps GetOutboxAdminDeps) (GetOutboxAdminResult, error) {
	limit := query.RecentLimit
	if limit <= 0 {
		limit = 50
	}

	recent, err := deps.OutboxStore.ListRecent(ctx, limit)
	if err != nil {
		return GetOutboxAdminResult{}, err
	}

	failed, err := deps.OutboxStore.ListFailed(ctx, limit)
	if err != nil {
		return GetOutboxAdminResult{}, err
	}

	counts, err := deps.OutboxStore.CountByStatus(ctx)
	if err != nil {
		return GetOutboxAdminResult{}, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return GetOutboxAdminResult{
		Recent:        outboxEntryViews(recent),
		Failed:        outboxEntryViews(failed),
		CountByStatus: counts,
		Total:         total,
	}, nil
}
