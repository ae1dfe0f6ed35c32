package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"wishlist/internal/adapters/http/middleware"
	"wishlist/internal/adapters/metrics"
	"wishlist/internal/application/orchestrators"
	"wishlist/internal/application/projections"
	"wishlist/internal/domain/assignment"
	domainMember "wishlist/internal/domain/member"
	"wishlist/internal/domain/settings"
)

// isMemberValidationError reports whether err is one of the member field checks.
func isMemberValidationError(err error) bool {
	return errors.Is(err, domainMember.ErrEmptyName) ||
		errors.Is(err, domainMember.ErrNameTooLong) ||
		errors.Is(err, domainMember.ErrTeamTooLong) ||
		errors.Is(err, domainMember.ErrBadEmail)
}

// handleAdminLogin handles both GET (form) and POST (credentials) for
// /admin/login. A failed attempt re-renders the form with an inline
// error instead of bouncing through a flash.
func handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method == "GET" {
		if middleware.IsAdmin(ctx) {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "admin_login.html", map[string]any{})
		return
	}

	if r.Method == "POST" {
		input := orchestrators.LoginInput{}

		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.Email = r.FormValue("Email")
			input.Password = r.FormValue("Password")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
		}

		deps := orchestrators.LoginDeps{
			AccountStore: stores.AccountStore,
		}
		result, err := orchestrators.ExecuteLogin(ctx, input, deps)
		if err != nil {
			errorKey := ""
			switch {
			case errors.Is(err, orchestrators.ErrAccountLocked):
				errorKey = "flash.login_locked"
			case errors.Is(err, orchestrators.ErrInvalidCredentials):
				errorKey = "flash.login_failed"
			}
			if errorKey == "" {
				internalError(w, err)
				return
			}
			if isHTML {
				renderTemplate(w, r, "admin_login.html", map[string]any{
					"ErrorKey": errorKey,
					"Email":    input.Email,
				})
				return
			}
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		// Attach the admin role to the live session so the family
		// identity picked earlier stays in place.
		updated := false
		if token, ok := middleware.SessionToken(r); ok {
			if existing, live := sessions.Get(token); live {
				existing.AccountID = result.AccountID
				existing.Email = result.Email
				existing.Role = result.Role
				updated = sessions.Update(token, existing)
			}
		}
		if !updated {
			token, err := sessions.Create(middleware.Session{
				AccountID: result.AccountID,
				Email:     result.Email,
				Role:      result.Role,
			})
			if err != nil {
				internalError(w, err)
				return
			}
			middleware.SetSessionCookie(w, token)
		}

		if isHTML {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
		} else {
			w.WriteHeader(http.StatusNoContent)
		}
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleAdminLogout handles POST /admin/logout. It drops the admin role
// but keeps the family identity, so the admin lands back on the site as
// a regular member.
func handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	isHTML := isHTMLRequest(r)

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if token, ok := middleware.SessionToken(r); ok {
		if sess, live := sessions.Get(token); live {
			sess.AccountID = ""
			sess.Email = ""
			sess.Role = ""
			if sess.HasIdentity() {
				sessions.Update(token, sess)
			} else {
				sessions.Delete(token)
				middleware.ClearSessionCookie(w)
			}
		}
	}

	if isHTML {
		setFlash(w, "flash.signed_out")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleAdminPanel handles GET /admin: roster, draw, deadline, outbox
// and board counters on one page.
func handleAdminPanel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetAdminPanel(ctx, projections.GetAdminPanelQuery{Now: timeNow()}, projections.GetAdminPanelDeps{
		MemberStore:     stores.MemberStore,
		WishStore:       stores.WishStore,
		AssignmentStore: stores.AssignmentStore,
		SettingsStore:   stores.SettingsStore,
		CommentStore:    stores.CommentStore,
		OutboxStore:     stores.OutboxStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTML {
		renderTemplate(w, r, "admin.html", map[string]any{
			"Members":      result.Members,
			"Edges":        result.Edges,
			"HasDraw":      result.HasDraw,
			"DrawPartial":  result.DrawPartial,
			"GeneratedAt":  result.GeneratedAt,
			"Deadline":     result.Deadline,
			"WishesLocked": result.WishesLocked,
			"OutboxCounts": result.OutboxCounts,
			"CommentCount": result.CommentCount,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleAdminMembers handles POST /admin/members (add a member).
func handleAdminMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.AddMemberInput{}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Name = r.FormValue("Name")
		input.Team = r.FormValue("Team")
		input.Email = r.FormValue("Email")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	deps := orchestrators.AddMemberDeps{
		MemberStore: stores.MemberStore,
		GenerateID:  generateID,
		Now:         timeNow,
	}
	added, err := orchestrators.ExecuteAddMember(ctx, input, deps)
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrDuplicateName):
			if isHTML {
				setFlash(w, "flash.member_duplicate")
				http.Redirect(w, r, "/admin", http.StatusSeeOther)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
		case isMemberValidationError(err):
			if isHTML {
				setFlash(w, "flash.member_invalid")
				http.Redirect(w, r, "/admin", http.StatusSeeOther)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			internalError(w, err)
		}
		return
	}

	if isHTML {
		setFlash(w, "flash.member_added", added.Name)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleAdminMemberUpdate handles POST /admin/members/update
func handleAdminMemberUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.UpdateMemberInput{}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.MemberID = r.FormValue("MemberID")
		input.Name = r.FormValue("Name")
		input.Team = r.FormValue("Team")
		input.Email = r.FormValue("Email")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	deps := orchestrators.UpdateMemberDeps{
		MemberStore: stores.MemberStore,
	}
	updated, err := orchestrators.ExecuteUpdateMember(ctx, input, deps)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			http.NotFound(w, r)
		case errors.Is(err, orchestrators.ErrDuplicateName):
			if isHTML {
				setFlash(w, "flash.member_duplicate")
				http.Redirect(w, r, "/admin", http.StatusSeeOther)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
		case isMemberValidationError(err):
			if isHTML {
				setFlash(w, "flash.member_invalid")
				http.Redirect(w, r, "/admin", http.StatusSeeOther)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			internalError(w, err)
		}
		return
	}

	if isHTML {
		setFlash(w, "flash.member_updated", updated.Name)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleAdminMemberDelete handles POST /admin/members/delete
func handleAdminMemberDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.RemoveMemberInput{}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.MemberID = r.FormValue("MemberID")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	// Fetch the name first; the flash wants it and the row is gone after.
	removed, err := stores.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	deps := orchestrators.RemoveMemberDeps{
		MemberStore:     stores.MemberStore,
		WishStore:       stores.WishStore,
		AssignmentStore: stores.AssignmentStore,
	}
	if err := orchestrators.ExecuteRemoveMember(ctx, input, deps); err != nil {
		internalError(w, err)
		return
	}

	if isHTML {
		setFlash(w, "flash.member_removed", removed.Name)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleAdminDeadline handles POST /admin/deadline. An empty date clears
// the deadline.
func handleAdminDeadline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.SetDeadlineInput{}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Deadline = r.FormValue("Deadline")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	deps := orchestrators.SetDeadlineDeps{
		SettingsStore: stores.SettingsStore,
	}
	if err := orchestrators.ExecuteSetDeadline(ctx, input, deps); err != nil {
		if errors.Is(err, settings.ErrBadDeadline) {
			if isHTML {
				setFlash(w, "flash.deadline_invalid")
				http.Redirect(w, r, "/admin", http.StatusSeeOther)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		internalError(w, err)
		return
	}

	if isHTML {
		if input.Deadline == "" {
			setFlash(w, "flash.deadline_cleared")
		} else {
			setFlash(w, "flash.deadline_set")
		}
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleAdminRunDraw handles POST /admin/assignments/run
func handleAdminRunDraw(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.RunAssignmentInput{}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Notify = r.FormValue("Notify") == "on"
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	deps := orchestrators.RunAssignmentDeps{
		MemberStore:     stores.MemberStore,
		AssignmentStore: stores.AssignmentStore,
		OutboxStore:     stores.OutboxStore,
		GenerateID:      generateID,
		Now:             timeNow,
		BaseURL:         BaseURL,
	}
	result, err := orchestrators.ExecuteRunAssignment(ctx, input, deps)
	if err != nil {
		errorKey := ""
		switch {
		case errors.Is(err, assignment.ErrInsufficientParticipants):
			errorKey = "flash.draw_too_few"
		case errors.Is(err, assignment.ErrNoFeasibleAssignment):
			errorKey = "flash.draw_failed"
		}
		if errorKey == "" {
			metrics.AssignmentRuns.WithLabelValues("error").Inc()
			internalError(w, err)
			return
		}
		metrics.AssignmentRuns.WithLabelValues("infeasible").Inc()
		if isHTML {
			setFlash(w, errorKey)
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	metrics.AssignmentRuns.WithLabelValues("ok").Inc()

	if isHTML {
		setFlash(w, "flash.draw_done")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{
		"Participants": result.Participants,
		"Notified":     result.Notified,
	})
}

// handleAdminCommentDelete handles POST /admin/comments/delete
func handleAdminCommentDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.DeleteCommentInput{}
	returnTo := "/comments"

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.CommentID = r.FormValue("CommentID")
		if ret := r.FormValue("Return"); ret != "" {
			returnTo = safeReturn(ret)
		}
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	deps := orchestrators.DeleteCommentDeps{
		CommentStore: stores.CommentStore,
	}
	if err := orchestrators.ExecuteDeleteComment(ctx, input, deps); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	if isHTML {
		setFlash(w, "flash.comment_deleted")
		http.Redirect(w, r, returnTo, http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}
