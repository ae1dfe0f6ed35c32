package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"wishlist/internal/adapters/email"
	web "wishlist/internal/adapters/http"
	"wishlist/internal/adapters/http/perf"
	"wishlist/internal/adapters/storage"
	accountStore "wishlist/internal/adapters/storage/account"
	assignmentStore "wishlist/internal/adapters/storage/assignment"
	commentStore "wishlist/internal/adapters/storage/comment"
	memberStore "wishlist/internal/adapters/storage/member"
	outboxStore "wishlist/internal/adapters/storage/outbox"
	settingsStore "wishlist/internal/adapters/storage/settings"
	wishStore "wishlist/internal/adapters/storage/wish"
	"wishlist/internal/application/orchestrators"
	"wishlist/internal/config"
	"wishlist/pkg/logging"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	logging.Setup(cfg.LogLevel)

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	// Run database migrations
	if err := storage.MigrateDB(db, cfg.DBPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	slog.Info("database ready", "path", cfg.DBPath, "schema", storage.LatestSchemaVersion())

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:    acctStore,
		MemberStore:     memberStore.NewSQLiteStore(timedDB),
		WishStore:       wishStore.NewSQLiteStore(timedDB),
		AssignmentStore: assignmentStore.NewSQLiteStore(timedDB),
		CommentStore:    commentStore.NewSQLiteStore(timedDB),
		SettingsStore:   settingsStore.NewSQLiteStore(timedDB),
		OutboxStore:     outboxStore.NewSQLiteStore(timedDB),
	}

	// Create the admin account from configuration if it does not exist yet
	seedInput := orchestrators.SeedAdminInput{Email: cfg.AdminEmail, Password: cfg.AdminPassword}
	seedDeps := orchestrators.SeedAdminDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedInput, seedDeps); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}

	// Configure email sender
	var sender email.Sender
	if cfg.ResendKey != "" {
		sender = email.NewResendSender(cfg.ResendKey, cfg.EmailFrom, cfg.EmailReplyTo)
		slog.Info("email sender configured", "provider", "resend", "from", cfg.EmailFrom)
	} else {
		sender = email.NewNoopSender()
		if cfg.IsProduction() {
			slog.Warn("WISHLIST_RESEND_API_KEY is not set, email delivery is disabled in production")
		} else {
			slog.Info("email sender configured", "provider", "noop")
		}
	}
	web.SetEmailSender(sender)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background delivery of queued notification emails
	retryCfg := orchestrators.DefaultOutboxRetryConfig()
	retryCfg.Interval = cfg.OutboxInterval
	retryDeps := orchestrators.OutboxRetryDeps{
		OutboxStore: stores.OutboxStore,
		EmailSender: sender,
	}
	stopRetries := orchestrators.StartOutboxRetryScheduler(ctx, retryDeps, retryCfg)
	defer stopRetries()

	web.BaseURL = cfg.BaseURL
	web.RateLimitPerSecond = cfg.RateLimitPerSec
	mux := web.NewMux(cfg.StaticDir, stores, collector)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "version", version, "addr", srv.Addr, "env", cfg.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		log.Fatalf("server failed: %v", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown interrupted", "error", err)
	}
}
