package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"wishlist/internal/application/orchestrators"
	"wishlist/internal/application/projections"
)

// handleAdminOutbox handles GET /admin/outbox: the delivery log with
// recent traffic, stuck entries, and per-status totals.
func handleAdminOutbox(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	result, err := projections.QueryGetOutboxAdmin(ctx, projections.GetOutboxAdminQuery{RecentLimit: limit}, projections.GetOutboxAdminDeps{
		OutboxStore: stores.OutboxStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTML {
		renderTemplate(w, r, "admin_outbox.html", map[string]any{
			"Recent":        result.Recent,
			"Failed":        result.Failed,
			"CountByStatus": result.CountByStatus,
			"Total":         result.Total,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// outboxEntryID pulls the entry ID out of a form or JSON body.
func outboxEntryID(w http.ResponseWriter, r *http.Request) (string, bool) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return "", false
		}
		return r.FormValue("EntryID"), true
	}
	var payload struct {
		EntryID string
	}
	if err := strictDecode(r, &payload); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return "", false
	}
	return payload.EntryID, true
}

// handleAdminOutboxRetry handles POST /admin/outbox/retry: deliver one
// entry right now, skipping the backoff gate.
func handleAdminOutboxRetry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	entryID, ok := outboxEntryID(w, r)
	if !ok {
		return
	}

	deps := orchestrators.OutboxRetryDeps{
		OutboxStore: stores.OutboxStore,
		EmailSender: emailSender,
	}
	if err := orchestrators.ExecuteRetryOutboxEntry(ctx, orchestrators.RetryOutboxEntryInput{EntryID: entryID}, deps); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		if isHTML {
			// The log page shows why the entry cannot be retried.
			http.Redirect(w, r, "/admin/outbox", http.StatusSeeOther)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTML {
		setFlash(w, "flash.outbox_retry")
		http.Redirect(w, r, "/admin/outbox", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleAdminOutboxAbandon handles POST /admin/outbox/abandon: park an
// undeliverable entry so it stops occupying the retry queue.
func handleAdminOutboxAbandon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	entryID, ok := outboxEntryID(w, r)
	if !ok {
		return
	}

	deps := orchestrators.OutboxRetryDeps{
		OutboxStore: stores.OutboxStore,
		EmailSender: emailSender,
	}
	if err := orchestrators.ExecuteAbandonOutboxEntry(ctx, orchestrators.AbandonOutboxEntryInput{EntryID: entryID}, deps); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		if isHTML {
			http.Redirect(w, r, "/admin/outbox", http.StatusSeeOther)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTML {
		setFlash(w, "flash.outbox_abandoned")
		http.Redirect(w, r, "/admin/outbox", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleAdminOutboxDelete handles POST /admin/outbox/delete: drop a
// terminal entry from the log.
func handleAdminOutboxDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	entryID, ok := outboxEntryID(w, r)
	if !ok {
		return
	}

	deps := orchestrators.OutboxRetryDeps{
		OutboxStore: stores.OutboxStore,
		EmailSender: emailSender,
	}
	if err := orchestrators.ExecuteDeleteOutboxEntry(ctx, orchestrators.DeleteOutboxEntryInput{EntryID: entryID}, deps); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		if isHTML {
			http.Redirect(w, r, "/admin/outbox", http.StatusSeeOther)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTML {
		setFlash(w, "flash.outbox_deleted")
		http.Redirect(w, r, "/admin/outbox", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleAdminPerf handles GET /admin/perf: an in-memory latency snapshot
// of the last hour, JSON only.
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	minutes := 60
	if s := r.URL.Query().Get("minutes"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 1440 {
			minutes = n
		}
	}

	snapshot := perfCollector.Snapshot(timeNow().Add(-time.Duration(minutes)*time.Minute), 10)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}
