package web

import (
	"net/http"

	"wishlist/internal/adapters/http/middleware"
	"wishlist/internal/adapters/metrics"
)

// registerRoutes wires every route onto the mux. The Auth middleware has
// already placed the session in context by the time these run;
// RequireIdentity sends strangers to the who-are-you page and
// RequireAdmin guards the admin surface.
func registerRoutes(mux *http.ServeMux) {
	// Public
	mux.HandleFunc("/", handleRoot)
	mux.HandleFunc("/who-are-you", handleWhoAreYou)
	mux.HandleFunc("/language", handleLanguage)
	mux.HandleFunc("/healthz", handleHealthz)
	mux.Handle("/metrics", metrics.Handler())

	// Family pages
	mux.Handle("/family", middleware.RequireIdentity(http.HandlerFunc(handleFamily)))
	mux.Handle("/my-wishlist", middleware.RequireIdentity(http.HandlerFunc(handleMyWishlist)))
	mux.Handle("/members/wishes", middleware.RequireIdentity(http.HandlerFunc(handleMemberWishes)))
	mux.Handle("/comments", middleware.RequireIdentity(http.HandlerFunc(handleComments)))

	// Wish actions
	mux.Handle("/wishes", middleware.RequireIdentity(http.HandlerFunc(handlePostWishesAddWish)))
	mux.Handle("/wishes/delete", middleware.RequireIdentity(http.HandlerFunc(handleWishDelete)))
	mux.Handle("/wishes/reserve", middleware.RequireIdentity(http.HandlerFunc(handleWishReserve)))
	mux.Handle("/wishes/release", middleware.RequireIdentity(http.HandlerFunc(handleWishRelease)))

	// Admin
	mux.HandleFunc("/admin/login", handleAdminLogin)
	mux.HandleFunc("/admin/logout", handleAdminLogout)
	mux.Handle("/admin", middleware.RequireAdmin(http.HandlerFunc(handleAdminPanel)))
	mux.Handle("/admin/members", middleware.RequireAdmin(http.HandlerFunc(handleAdminMembers)))
	mux.Handle("/admin/members/update", middleware.RequireAdmin(http.HandlerFunc(handleAdminMemberUpdate)))
	mux.Handle("/admin/members/delete", middleware.RequireAdmin(http.HandlerFunc(handleAdminMemberDelete)))
	mux.Handle("/admin/deadline", middleware.RequireAdmin(http.HandlerFunc(handleAdminDeadline)))
	mux.Handle("/admin/assignments/run", middleware.RequireAdmin(http.HandlerFunc(handleAdminRunDraw)))
	mux.Handle("/admin/comments/delete", middleware.RequireAdmin(http.HandlerFunc(handleAdminCommentDelete)))
	mux.Handle("/admin/outbox", middleware.RequireAdmin(http.HandlerFunc(handleAdminOutbox)))
	mux.Handle("/admin/outbox/retry", middleware.RequireAdmin(http.HandlerFunc(handleAdminOutboxRetry)))
	mux.Handle("/admin/outbox/abandon", middleware.RequireAdmin(http.HandlerFunc(handleAdminOutboxAbandon)))
	mux.Handle("/admin/outbox/delete", middleware.RequireAdmin(http.HandlerFunc(handleAdminOutboxDelete)))
	mux.Handle("/admin/perf", middleware.RequireAdmin(http.HandlerFunc(handleAdminPerf)))
}
