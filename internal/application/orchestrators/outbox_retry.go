package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"wishlist/internal/adapters/email"
	"wishlist/internal/adapters/storage/outbox"
	domainOutbox "wishlist/internal/domain/outbox"
)

// emailPayload is the JSON shape stored in an email outbox entry.
type emailPayload struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// OutboxStoreForEnqueue covers the write side of queueing a notification.
type OutboxStoreForEnqueue interface {
	Save(ctx context.Context, e domainOutbox.Entry) error
}

// enqueueEmail stores an email for the retry scheduler to deliver.
func enqueueEmail(ctx context.Context, store OutboxStoreForEnqueue, id string, now time.Time, p emailPayload) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	entry := domainOutbox.Entry{
		ID:          id,
		ActionType:  domainOutbox.ActionTypeEmail,
		Payload:     string(payload),
		Status:      domainOutbox.StatusPending,
		MaxAttempts: domainOutbox.DefaultMaxAttempts,
		CreatedAt:   now,
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	return store.Save(ctx, entry)
}

// OutboxRetryDeps provides the dependencies for delivering outbox entries.
type OutboxRetryDeps struct {
	OutboxStore outbox.Store
	EmailSender email.Sender
}

// ExecuteOutboxRetry processes pending and retryable outbox entries.
// It implements exponential backoff and respects max attempts.
// PRE: Deps are valid and store is connected
// POST: All eligible entries are processed, results logged
func ExecuteOutboxRetry(ctx context.Context, deps OutboxRetryDeps) error {
	entries, err := deps.OutboxStore.ListPending(ctx, 100)
	if err != nil {
		return fmt.Errorf("failed to list retryable outbox entries: %w", err)
	}

	if len(entries) == 0 {
		return nil
	}

	slog.Info("outbox_retry_start", "count", len(entries))

	var processed, succeeded, failed int

	for _, entry := range entries {
		processed++

		// Check if enough time has passed since last attempt
		if !entry.LastAttemptedAt.IsZero() {
			nextRetry := entry.LastAttemptedAt.Add(entry.NextRetryDelay(domainOutbox.DefaultBaseRetryDelay, domainOutbox.DefaultMaxRetryDelay))
			if time.Now().Before(nextRetry) {
				slog.Debug("outbox_retry_skipped_backoff", "entry_id", entry.ID, "next_retry", nextRetry)
				continue
			}
		}

		entry.MarkAttempt()

		externalID, err := dispatchEntry(ctx, deps, entry)
		if err != nil {
			entry.MarkFailed(err)
			failed++
			slog.Error("outbox_retry_failed", "entry_id", entry.ID, "action", entry.ActionType, "attempt", entry.Attempts, "error", err)
		} else {
			entry.MarkSuccess(externalID)
			succeeded++
			slog.Info("outbox_retry_succeeded", "entry_id", entry.ID, "action", entry.ActionType, "attempt", entry.Attempts)
		}

		if saveErr := deps.OutboxStore.Save(ctx, entry); saveErr != nil {
			slog.Error("outbox_retry_save_failed", "entry_id", entry.ID, "error", saveErr)
		}
	}

	slog.Info("outbox_retry_complete", "processed", processed, "succeeded", succeeded, "failed", failed)
	return nil
}

// dispatchEntry executes the external action an entry describes and returns
// the provider's ID for it.
func dispatchEntry(ctx context.Context, deps OutboxRetryDeps, entry domainOutbox.Entry) (string, error) {
	switch entry.ActionType {
	case domainOutbox.ActionTypeEmail:
		return dispatchEmail(ctx, deps.EmailSender, entry)
	default:
		return "", fmt.Errorf("unknown action type: %s", entry.ActionType)
	}
}

// dispatchEmail sends an email from the outbox payload.
// PRE: Entry payload contains valid email data
// POST: Email handed to the provider or error returned
func dispatchEmail(ctx context.Context, sender email.Sender, entry domainOutbox.Entry) (string, error) {
	if sender == nil {
		return "", fmt.Errorf("no email sender configured")
	}

	var payload emailPayload
	if err := json.Unmarshal([]byte(entry.Payload), &payload); err != nil {
		return "", fmt.Errorf("failed to unmarshal email payload: %w", err)
	}

	result, err := sender.Send(ctx, email.SendRequest{
		To:      payload.To,
		Subject: payload.Subject,
		HTML:    payload.HTML,
	})
	if err != nil {
		return "", err
	}
	return result.MessageID, nil
}

// --- Manual retry (admin) ---

// RetryOutboxEntryInput identifies the entry the admin wants retried now.
type RetryOutboxEntryInput struct {
	EntryID string
}

// ExecuteRetryOutboxEntry processes a single outbox entry immediately,
// skipping the backoff gate.
// PRE: EntryID is non-empty
// POST: Entry is processed, status updated
func ExecuteRetryOutboxEntry(ctx context.Context, input RetryOutboxEntryInput, deps OutboxRetryDeps) error {
	entry, err := deps.OutboxStore.GetByID(ctx, input.EntryID)
	if err != nil {
		return fmt.Errorf("get outbox entry: %w", err)
	}

	if entry.IsTerminal() {
		return fmt.Errorf("entry %s is in terminal state and cannot be retried", input.EntryID)
	}

	entry.MarkAttempt()

	externalID, err := dispatchEntry(ctx, deps, entry)
	if err != nil {
		entry.MarkFailed(err)
		slog.Warn("outbox_manual_retry_failed", "entry_id", entry.ID, "attempt", entry.Attempts, "error", err)
	} else {
		entry.MarkSuccess(externalID)
		slog.Info("outbox_manual_retry_succeeded", "entry_id", entry.ID, "external_id", externalID)
	}

	return deps.OutboxStore.Save(ctx, entry)
}

// AbandonOutboxEntryInput identifies the entry the admin gives up on.
type AbandonOutboxEntryInput struct {
	EntryID string
}

// ExecuteAbandonOutboxEntry parks an undeliverable entry so it stops
// occupying the retry queue.
// PRE: EntryID is non-empty
// POST: Entry is in the abandoned state
func ExecuteAbandonOutboxEntry(ctx context.Context, input AbandonOutboxEntryInput, deps OutboxRetryDeps) error {
	entry, err := deps.OutboxStore.GetByID(ctx, input.EntryID)
	if err != nil {
		return fmt.Errorf("get outbox entry: %w", err)
	}

	if entry.Status == domainOutbox.StatusDone {
		return fmt.Errorf("entry %s was already delivered", input.EntryID)
	}

	entry.MarkAbandoned()
	if err := deps.OutboxStore.Save(ctx, entry); err != nil {
		return err
	}
	slog.Info("outbox_entry_abandoned", "entry_id", entry.ID, "attempts", entry.Attempts)
	return nil
}

// DeleteOutboxEntryInput identifies the entry the admin wants removed.
type DeleteOutboxEntryInput struct {
	EntryID string
}

// ExecuteDeleteOutboxEntry removes a terminal outbox entry.
// PRE: EntryID is non-empty
// POST: Entry removed, or an error if it could still be delivered
func ExecuteDeleteOutboxEntry(ctx context.Context, input DeleteOutboxEntryInput, deps OutboxRetryDeps) error {
	entry, err := deps.OutboxStore.GetByID(ctx, input.EntryID)
	if err != nil {
		return fmt.Errorf("get outbox entry: %w", err)
	}

	if !entry.IsTerminal() {
		return fmt.Errorf("entry %s is still deliverable; retry or abandon it first", input.EntryID)
	}

	if err := deps.OutboxStore.Delete(ctx, entry.ID); err != nil {
		return err
	}
	slog.Info("outbox_entry_deleted", "entry_id", entry.ID, "status", entry.Status)
	return nil
}

// --- Scheduler ---

// OutboxRetryConfig holds configuration for the retry scheduler.
type OutboxRetryConfig struct {
	Interval time.Duration // How often to run retries
	Enabled  bool
}

// DefaultOutboxRetryConfig returns sensible defaults.
func DefaultOutboxRetryConfig() OutboxRetryConfig {
	return OutboxRetryConfig{
		Interval: 5 * time.Minute,
		Enabled:  true,
	}
}

// StartOutboxRetryScheduler starts a background goroutine that periodically retries outbox entries.
// PRE: Context is valid, deps are initialized
// POST: Goroutine started, returns cancel function
func StartOutboxRetryScheduler(ctx context.Context, deps OutboxRetryDeps, cfg OutboxRetryConfig) func() {
	if !cfg.Enabled {
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)

	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := ExecuteOutboxRetry(ctx, deps); err != nil {
					slog.Error("outbox_retry_scheduler_error", "error", err)
				}
			}
		}
	}()

	return cancel
}
