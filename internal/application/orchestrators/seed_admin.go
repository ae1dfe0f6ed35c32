package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"wishlist/internal/domain/account"

	"github.com/google/uuid"
)

type seedAdminAccountStore interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// SeedAdminInput carries the configured admin credentials.
type SeedAdminInput struct {
	Email    string
	Password string
}

// SeedAdminDeps holds stores needed for admin seeding.
type SeedAdminDeps struct {
	AccountStore seedAdminAccountStore
}

// ExecuteSeedAdmin creates the admin account from configuration if it does not
// already exist. It is idempotent and safe to run on every startup.
// PRE: Database is migrated
// POST: An admin account with the configured email exists
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) error {
	if input.Email == "" || input.Password == "" {
		slog.Info("seed_event", "event", "admin_seed_skipped", "reason", "no_credentials_configured")
		return nil
	}

	if _, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil {
		return nil // already exists
	}

	acct := account.Account{
		ID:        uuid.NewString(),
		Email:     input.Email,
		Role:      account.RoleAdmin,
		CreatedAt: time.Now(),
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return fmt.Errorf("admin password rejected: %w", err)
	}
	if err := acct.Validate(); err != nil {
		return fmt.Errorf("admin account invalid: %w", err)
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return fmt.Errorf("save admin account: %w", err)
	}

	slog.Info("seed_event", "event", "admin_seeded", "email", input.Email)
	return nil
}
