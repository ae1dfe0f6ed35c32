package web

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/message"

	"wishlist/internal/adapters/http/i18n"
	"wishlist/internal/adapters/http/middleware"
	"wishlist/internal/application/listutil"
	"wishlist/internal/application/orchestrators"
	"wishlist/internal/application/projections"
	domainComment "wishlist/internal/domain/comment"
	domainWish "wishlist/internal/domain/wish"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

// safeReturn keeps post-action redirects on this site. Anything absolute
// or protocol-relative falls back to the personal wishlist page.
func safeReturn(path string) string {
	if strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//") {
		return path
	}
	return "/my-wishlist"
}

// isWishValidationError reports whether err is one of the wish field checks.
func isWishValidationError(err error) bool {
	return errors.Is(err, domainWish.ErrEmptyText) ||
		errors.Is(err, domainWish.ErrTextTooLong) ||
		errors.Is(err, domainWish.ErrLinkTooLong) ||
		errors.Is(err, domainWish.ErrBadLink)
}

// isCommentValidationError reports whether err is one of the comment field checks.
func isCommentValidationError(err error) bool {
	return errors.Is(err, domainComment.ErrEmptyAuthor) ||
		errors.Is(err, domainComment.ErrEmptyBody) ||
		errors.Is(err, domainComment.ErrAuthorTooLong) ||
		errors.Is(err, domainComment.ErrBodyTooLong)
}

const flashCookieName = "wishlist_flash"

// setFlash stores a one-shot confirmation as a catalog key plus string
// arguments, pipe-joined. The message is localized on the next page
// render, so it follows the visitor's language even if they switch in
// between.
func setFlash(w http.ResponseWriter, key string, args ...string) {
	value := url.QueryEscape(strings.Join(append([]string{key}, args...), "|"))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		Secure:   middleware.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the flash cookie and returns the localized
// message, or "" when there is none.
func popFlash(w http.ResponseWriter, r *http.Request, printer *message.Printer) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   middleware.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	parts := strings.Split(raw, "|")
	args := make([]any, 0, len(parts)-1)
	for _, p := range parts[1:] {
		args = append(args, p)
	}
	return printer.Sprintf(parts[0], args...)
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	tag, persist := i18n.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	printer := i18n.Printer(tag)

	sess, hasSession := middleware.GetSessionFromContext(r.Context())
	admin := hasSession && sess.IsAdmin()
	identity := hasSession && sess.HasIdentity()

	flash := popFlash(w, r, printer)

	funcMap := template.FuncMap{
		"t": func(key string, args ...any) string {
			return printer.Sprintf(key, args...)
		},
		"csrfToken":   func() string { return csrf.Token(r) },
		"isAdmin":     func() bool { return admin },
		"hasIdentity": func() bool { return identity },
		"flash":       func() string { return flash },
		"lang":        func() string { return tag.String() },
		"languages": func() []string {
			var codes []string
			for _, t := range i18n.Supported() {
				codes = append(codes, t.String())
			}
			return codes
		},
		"langURL": func(code string) template.URL {
			return template.URL("/language?lang=" + code + "&next=" + url.QueryEscape(r.URL.RequestURI()))
		},
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleRoot sends a visitor to their wishlist, or to identity selection
// when the session has not picked anyone yet.
func handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if ok && sess.HasIdentity() {
		http.Redirect(w, r, "/my-wishlist", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/who-are-you", http.StatusSeeOther)
}

// handleHealthz is a liveness probe.
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleLanguage handles GET /language?lang=xx&next=/path
// It pins the visitor's language in a cookie and bounces back.
func handleLanguage(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	tag, ok := i18n.ParseTag(r.URL.Query().Get("lang"))
	if !ok {
		http.Error(w, "unsupported language", http.StatusBadRequest)
		return
	}
	i18n.SetLanguageCookie(w, tag)
	http.Redirect(w, r, safeReturn(r.URL.Query().Get("next")), http.StatusSeeOther)
}

// handleWhoAreYou handles both GET (selection form) and POST (save) for
// /who-are-you. A household shares one screen, so the form is a
// multi-select: me, plus anyone I type for.
func handleWhoAreYou(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method == "GET" {
		members, err := stores.MemberStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		selected := make(map[string]bool)
		for _, id := range middleware.SelectedMembers(ctx) {
			selected[id] = true
		}
		if isHTML {
			renderTemplate(w, r, "who_are_you.html", map[string]any{
				"Members":  members,
				"Selected": selected,
			})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"Members": members})
		return
	}

	if r.Method == "POST" {
		input := orchestrators.SelectIdentityInput{}

		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.MemberIDs = r.Form["MemberIDs"]
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
		}

		deps := orchestrators.SelectIdentityDeps{
			MemberStore: stores.MemberStore,
		}
		result, err := orchestrators.ExecuteSelectIdentity(ctx, input, deps)
		if err != nil {
			if errors.Is(err, orchestrators.ErrNoIdentitySelected) || errors.Is(err, orchestrators.ErrUnknownMember) {
				if isHTML {
					members, listErr := stores.MemberStore.List(ctx)
					if listErr != nil {
						internalError(w, listErr)
						return
					}
					renderTemplate(w, r, "who_are_you.html", map[string]any{
						"Members":  members,
						"Selected": map[string]bool{},
						"ErrorKey": "identity.error_none",
					})
					return
				}
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			internalError(w, err)
			return
		}

		ids := make([]string, 0, len(result.Members))
		for _, m := range result.Members {
			ids = append(ids, m.ID)
		}

		// Reuse the live session when there is one so an admin login
		// survives re-picking the family identity.
		updated := false
		if token, ok := middleware.SessionToken(r); ok {
			if existing, live := sessions.Get(token); live {
				existing.SelectedMemberIDs = ids
				updated = sessions.Update(token, existing)
			}
		}
		if !updated {
			token, err := sessions.Create(middleware.Session{SelectedMemberIDs: ids})
			if err != nil {
				internalError(w, err)
				return
			}
			middleware.SetSessionCookie(w, token)
		}

		if isHTML {
			setFlash(w, "flash.identity_saved")
			http.Redirect(w, r, "/my-wishlist", http.StatusSeeOther)
		} else {
			w.WriteHeader(http.StatusNoContent)
		}
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleFamily handles GET /family, the member directory with wish counts.
func handleFamily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetHome(ctx, projections.GetHomeQuery{Now: timeNow()}, projections.GetHomeDeps{
		MemberStore:     stores.MemberStore,
		WishStore:       stores.WishStore,
		AssignmentStore: stores.AssignmentStore,
		SettingsStore:   stores.SettingsStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTML {
		renderTemplate(w, r, "family.html", map[string]any{
			"Members":      result.Members,
			"HasDraw":      result.HasDraw,
			"Deadline":     result.Deadline,
			"WishesLocked": result.WishesLocked,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleMyWishlist handles GET /my-wishlist: the selected members' own
// lists plus, after a draw, the lists of the people they are gifting to.
func handleMyWishlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := projections.GetMyWishlistQuery{
		MemberIDs: middleware.SelectedMembers(ctx),
		Now:       timeNow(),
	}
	deps := projections.GetMyWishlistDeps{
		MemberStore:     stores.MemberStore,
		WishStore:       stores.WishStore,
		AssignmentStore: stores.AssignmentStore,
		SettingsStore:   stores.SettingsStore,
	}
	result, err := projections.QueryGetMyWishlist(ctx, query, deps)
	if err != nil {
		internalError(w, err)
		return
	}
	if isHTML && len(result.Sections) == 0 && len(query.MemberIDs) > 0 {
		// Every selected member has been removed from the pool.
		setFlash(w, "flash.identity_gone")
		http.Redirect(w, r, "/who-are-you", http.StatusSeeOther)
		return
	}

	if isHTML {
		renderTemplate(w, r, "my_wishlist.html", map[string]any{
			"Sections":     result.Sections,
			"Receivers":    result.Receivers,
			"HasDraw":      result.HasDraw,
			"Deadline":     result.Deadline,
			"WishesLocked": result.WishesLocked,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleMemberWishes handles GET /members/wishes?id=<member-id>: one
// member's list as the current viewer may see it.
func handleMemberWishes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	memberID := r.URL.Query().Get("id")
	if memberID == "" {
		http.Error(w, "missing member id", http.StatusBadRequest)
		return
	}

	query := projections.GetMemberWishesQuery{
		MemberID:        memberID,
		ViewerMemberIDs: middleware.SelectedMembers(ctx),
		Now:             timeNow(),
	}
	deps := projections.GetMemberWishesDeps{
		MemberStore:   stores.MemberStore,
		WishStore:     stores.WishStore,
		SettingsStore: stores.SettingsStore,
	}
	result, err := projections.QueryGetMemberWishes(ctx, query, deps)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	if isHTML {
		renderTemplate(w, r, "member_wishes.html", map[string]any{
			"Member":       result.Member,
			"Wishes":       result.Wishes,
			"IsOwn":        result.IsOwn,
			"Deadline":     result.Deadline,
			"WishesLocked": result.WishesLocked,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handlePostWishesAddWish handles POST /wishes
func handlePostWishesAddWish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.AddWishInput{}
	returnTo := "/my-wishlist"

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.MemberID = r.FormValue("MemberID")
		input.Text = r.FormValue("Text")
		input.ProductLink = r.FormValue("ProductLink")
		returnTo = safeReturn(r.FormValue("Return"))
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	selected := middleware.SelectedMembers(ctx)
	if input.MemberID == "" && len(selected) > 0 {
		input.MemberID = selected[0]
	}
	input.ActingAdmin = middleware.IsAdmin(ctx)

	// The target list must still belong to someone in the pool. A stale
	// session ID or a removed impersonation target sends the visitor back
	// to pick a name instead of tripping the store's foreign key.
	owner, err := stores.MemberStore.GetByID(ctx, input.MemberID)
	if errors.Is(err, sql.ErrNoRows) {
		if isHTML {
			setFlash(w, "flash.identity_gone")
			http.Redirect(w, r, "/who-are-you", http.StatusSeeOther)
			return
		}
		http.Error(w, "member not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	deps := orchestrators.AddWishDeps{
		WishStore:     stores.WishStore,
		SettingsStore: stores.SettingsStore,
		GenerateID:    generateID,
		Now:           timeNow,
	}
	added, err := orchestrators.ExecuteAddWish(ctx, input, deps)
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrWishesLocked):
			if isHTML {
				setFlash(w, "flash.wishes_locked")
				http.Redirect(w, r, returnTo, http.StatusSeeOther)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
		case isWishValidationError(err):
			if isHTML {
				setFlash(w, "flash.wish_invalid")
				http.Redirect(w, r, returnTo, http.StatusSeeOther)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			internalError(w, err)
		}
		return
	}

	if isHTML {
		// Wishing on someone else's behalf is allowed; the confirmation
		// names whose list the wish landed on.
		own := false
		for _, id := range selected {
			if id == added.MemberID {
				own = true
				break
			}
		}
		if own {
			setFlash(w, "flash.wish_added")
		} else {
			setFlash(w, "flash.wish_added_for", owner.Name)
		}
		http.Redirect(w, r, returnTo, http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleWishDelete handles POST /wishes/delete
func handleWishDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.DeleteWishInput{}
	returnTo := "/my-wishlist"

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.WishID = r.FormValue("WishID")
		returnTo = safeReturn(r.FormValue("Return"))
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	input.ActorMemberIDs = middleware.SelectedMembers(ctx)
	input.ActingAdmin = middleware.IsAdmin(ctx)

	deps := orchestrators.DeleteWishDeps{
		WishStore: stores.WishStore,
	}
	if err := orchestrators.ExecuteDeleteWish(ctx, input, deps); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			http.NotFound(w, r)
		case errors.Is(err, orchestrators.ErrNotWishOwner):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			internalError(w, err)
		}
		return
	}

	if isHTML {
		setFlash(w, "flash.wish_deleted")
		http.Redirect(w, r, returnTo, http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleWishReserve handles POST /wishes/reserve
func handleWishReserve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.ReserveWishInput{}
	returnTo := "/my-wishlist"

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.WishID = r.FormValue("WishID")
		input.ReserverID = r.FormValue("ReserverID")
		returnTo = safeReturn(r.FormValue("Return"))
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	sess, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	if input.ReserverID == "" {
		input.ReserverID = sess.SelectedMemberIDs[0]
	}
	if !sess.ActsFor(input.ReserverID) {
		http.Error(w, "cannot reserve for that member", http.StatusForbidden)
		return
	}
	input.ActorMemberIDs = sess.SelectedMemberIDs

	deps := orchestrators.ReserveWishDeps{
		WishStore: stores.WishStore,
	}
	if err := orchestrators.ExecuteReserveWish(ctx, input, deps); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			http.NotFound(w, r)
		case errors.Is(err, domainWish.ErrReserveOwnWish):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, domainWish.ErrAlreadyReserved):
			// Someone beat them to it. The refreshed page shows the
			// claimed state, no flash needed.
			if isHTML {
				http.Redirect(w, r, returnTo, http.StatusSeeOther)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			internalError(w, err)
		}
		return
	}

	if isHTML {
		setFlash(w, "flash.wish_reserved")
		http.Redirect(w, r, returnTo, http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleWishRelease handles POST /wishes/release
func handleWishRelease(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.ReleaseWishInput{}
	returnTo := "/my-wishlist"

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.WishID = r.FormValue("WishID")
		returnTo = safeReturn(r.FormValue("Return"))
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	input.ActorMemberIDs = middleware.SelectedMembers(ctx)
	input.ActingAdmin = middleware.IsAdmin(ctx)

	deps := orchestrators.ReleaseWishDeps{
		WishStore: stores.WishStore,
	}
	if err := orchestrators.ExecuteReleaseWish(ctx, input, deps); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			http.NotFound(w, r)
		case errors.Is(err, orchestrators.ErrNotReservationHolder):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, domainWish.ErrNotReserved):
			if isHTML {
				http.Redirect(w, r, returnTo, http.StatusSeeOther)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			internalError(w, err)
		}
		return
	}

	if isHTML {
		setFlash(w, "flash.wish_released")
		http.Redirect(w, r, returnTo, http.StatusSeeOther)
	} else {
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleComments handles both GET (board) and POST (new comment) for
// /comments. Comments are signed with the first selected member's name.
func handleComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isHTML := isHTMLRequest(r)

	if r.Method == "GET" {
		query := projections.GetCommentBoardQuery{
			Page: listutil.ParsePageParams(r.URL.Query()),
		}
		deps := projections.GetCommentBoardDeps{
			CommentStore: stores.CommentStore,
		}
		result, err := projections.QueryGetCommentBoard(ctx, query, deps)
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTML {
			renderTemplate(w, r, "comments.html", map[string]any{
				"Comments": result.Comments,
				"PageInfo": result.PageInfo,
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
		return
	}

	if r.Method == "POST" {
		body := ""
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			body = r.FormValue("Body")
		} else {
			var payload struct {
				Body string
			}
			if err := strictDecode(r, &payload); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			body = payload.Body
		}

		selected := middleware.SelectedMembers(ctx)
		if len(selected) == 0 {
			http.Error(w, "no identity selected", http.StatusForbidden)
			return
		}
		author, err := stores.MemberStore.GetByID(ctx, selected[0])
		if errors.Is(err, sql.ErrNoRows) {
			// The signing member left the pool after this session picked them.
			if isHTML {
				setFlash(w, "flash.identity_gone")
				http.Redirect(w, r, "/who-are-you", http.StatusSeeOther)
				return
			}
			http.Error(w, "selected member no longer exists", http.StatusForbidden)
			return
		}
		if err != nil {
			internalError(w, err)
			return
		}

		input := orchestrators.PostCommentInput{
			AuthorName: author.Name,
			Body:       body,
		}
		deps := orchestrators.PostCommentDeps{
			CommentStore: stores.CommentStore,
			GenerateID:   generateID,
			Now:          timeNow,
		}
		if _, err := orchestrators.ExecutePostComment(ctx, input, deps); err != nil {
			if isCommentValidationError(err) {
				if isHTML {
					setFlash(w, "flash.comment_invalid")
					http.Redirect(w, r, "/comments", http.StatusSeeOther)
					return
				}
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			internalError(w, err)
			return
		}

		if isHTML {
			setFlash(w, "flash.comment_posted")
			http.Redirect(w, r, "/comments", http.StatusSeeOther)
		} else {
			w.WriteHeader(http.StatusNoContent)
		}
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}
