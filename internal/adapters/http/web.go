package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"wishlist/internal/adapters/email"
	"wishlist/internal/adapters/http/middleware"
	"wishlist/internal/adapters/http/perf"
	accountStore "wishlist/internal/adapters/storage/account"
	assignmentStore "wishlist/internal/adapters/storage/assignment"
	commentStore "wishlist/internal/adapters/storage/comment"
	memberStore "wishlist/internal/adapters/storage/member"
	outboxStore "wishlist/internal/adapters/storage/outbox"
	settingsStore "wishlist/internal/adapters/storage/settings"
	wishStore "wishlist/internal/adapters/storage/wish"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore    accountStore.Store
	MemberStore     memberStore.Store
	WishStore       wishStore.Store
	AssignmentStore assignmentStore.Store
	CommentStore    commentStore.Store
	SettingsStore   settingsStore.Store
	OutboxStore     outboxStore.Store
}

// loadCSRFKey reads the CSRF secret from WISHLIST_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("WISHLIST_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("WISHLIST_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("WISHLIST_ENV") == "production" {
		log.Fatal("WISHLIST_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set WISHLIST_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// BaseURL is the public address used in notification email links.
var BaseURL = "http://localhost:8080"

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// SetEmailSender sets the email sender used for manual outbox retries. The
// sender carries its own from and reply-to defaults.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("WISHLIST_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
