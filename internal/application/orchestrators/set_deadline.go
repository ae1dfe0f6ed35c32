package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"wishlist/internal/domain/settings"
)

// SettingsStoreForDeadline defines the store interface needed by deadline management.
type SettingsStoreForDeadline interface {
	Set(ctx context.Context, value settings.Setting) error
	Delete(ctx context.Context, key string) error
}

// SetDeadlineInput carries the new wish deadline. An empty value clears it.
type SetDeadlineInput struct {
	Deadline string // YYYY-MM-DD
}

// SetDeadlineDeps holds dependencies for SetDeadline.
type SetDeadlineDeps struct {
	SettingsStore SettingsStoreForDeadline
}

// ExecuteSetDeadline stores or clears the wish deadline.
// PRE: Deadline is empty or a valid YYYY-MM-DD date
// POST: Setting stored or removed; wishes lock the day after the deadline
func ExecuteSetDeadline(ctx context.Context, input SetDeadlineInput, deps SetDeadlineDeps) error {
	if input.Deadline == "" {
		if err := deps.SettingsStore.Delete(ctx, settings.KeyWishDeadline); err != nil {
			return err
		}
		slog.Info("settings_event", "event", "deadline_cleared")
		return nil
	}

	if _, err := settings.ParseDeadline(input.Deadline, time.UTC); err != nil {
		return err
	}

	setting := settings.Setting{Key: settings.KeyWishDeadline, Value: input.Deadline}
	if err := setting.Validate(); err != nil {
		return err
	}
	if err := deps.SettingsStore.Set(ctx, setting); err != nil {
		return err
	}

	slog.Info("settings_event", "event", "deadline_set", "deadline", input.Deadline)
	return nil
}
