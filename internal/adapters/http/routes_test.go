package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	accountDomain "wishlist/internal/domain/account"
	assignmentDomain "wishlist/internal/domain/assignment"
	commentDomain "wishlist/internal/domain/comment"
	memberDomain "wishlist/internal/domain/member"
	outboxDomain "wishlist/internal/domain/outbox"
	settingsDomain "wishlist/internal/domain/settings"
	wishDomain "wishlist/internal/domain/wish"

	"wishlist/internal/adapters/email"
	"wishlist/internal/adapters/http/middleware"
	wishStore "wishlist/internal/adapters/storage/wish"
)

// Mock implementations for testing
type mockMemberStore struct {
	members map[string]memberDomain.Member
}

// GetByID implements the member store interface for testing.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (m *mockMemberStore) GetByID(ctx context.Context, id string) (memberDomain.Member, error) {
	if mem, ok := m.members[id]; ok {
		return mem, nil
	}
	return memberDomain.Member{}, sql.ErrNoRows
}

// GetByName implements the member store interface for testing.
// PRE: name is non-empty
// POST: Returns the entity matching the name ignoring case
func (m *mockMemberStore) GetByName(ctx context.Context, name string) (memberDomain.Member, error) {
	for _, mem := range m.members {
		if strings.EqualFold(mem.Name, name) {
			return mem, nil
		}
	}
	return memberDomain.Member{}, sql.ErrNoRows
}

// Save implements the member store interface for testing.
// PRE: entity has been validated
// POST: Entity is persisted
func (m *mockMemberStore) Save(ctx context.Context, mem memberDomain.Member) error {
	if m.members == nil {
		m.members = make(map[string]memberDomain.Member)
	}
	m.members[mem.ID] = mem
	return nil
}

// Delete implements the member store interface for testing.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (m *mockMemberStore) Delete(ctx context.Context, id string) error {
	delete(m.members, id)
	return nil
}

// List implements the member store interface for testing.
// PRE: none
// POST: Returns members sorted by name
func (m *mockMemberStore) List(ctx context.Context) ([]memberDomain.Member, error) {
	var list []memberDomain.Member
	for _, mem := range m.members {
		list = append(list, mem)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// Count implements the member store interface for testing.
// PRE: none
// POST: Returns count of members
func (m *mockMemberStore) Count(ctx context.Context) (int, error) {
	return len(m.members), nil
}

type mockWishStore struct {
	wishes map[string]wishDomain.Wish
}

// GetByID implements the wish store interface for testing.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (m *mockWishStore) GetByID(ctx context.Context, id string) (wishDomain.Wish, error) {
	if w, ok := m.wishes[id]; ok {
		return w, nil
	}
	return wishDomain.Wish{}, sql.ErrNoRows
}

// Save implements the wish store interface for testing.
// PRE: entity has been validated
// POST: Entity is persisted
func (m *mockWishStore) Save(ctx context.Context, w wishDomain.Wish) error {
	if m.wishes == nil {
		m.wishes = make(map[string]wishDomain.Wish)
	}
	m.wishes[w.ID] = w
	return nil
}

// Delete implements the wish store interface for testing.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (m *mockWishStore) Delete(ctx context.Context, id string) error {
	delete(m.wishes, id)
	return nil
}

// DeleteByMember implements the wish store interface for testing.
// PRE: memberID is non-empty
// POST: All wishes owned by the member are removed
func (m *mockWishStore) DeleteByMember(ctx context.Context, memberID string) error {
	for id, w := range m.wishes {
		if w.MemberID == memberID {
			delete(m.wishes, id)
		}
	}
	return nil
}

// ListByMember implements the wish store interface for testing.
// PRE: memberID is non-empty
// POST: Returns the member's wishes oldest first
func (m *mockWishStore) ListByMember(ctx context.Context, memberID string) ([]wishDomain.Wish, error) {
	var list []wishDomain.Wish
	for _, w := range m.wishes {
		if w.MemberID == memberID {
			list = append(list, w)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

// List implements the wish store interface for testing.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (m *mockWishStore) List(ctx context.Context, filter wishStore.ListFilter) ([]wishDomain.Wish, error) {
	var list []wishDomain.Wish
	for _, w := range m.wishes {
		if filter.Limit > 0 && len(list) >= filter.Limit {
			break
		}
		list = append(list, w)
	}
	return list, nil
}

// CountByMember implements the wish store interface for testing.
// PRE: none
// POST: Returns wish counts keyed by member ID
func (m *mockWishStore) CountByMember(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, w := range m.wishes {
		counts[w.MemberID]++
	}
	return counts, nil
}

// ReleaseReservationsBy implements the wish store interface for testing.
// PRE: memberID is non-empty
// POST: Reservations held by the member are cleared
func (m *mockWishStore) ReleaseReservationsBy(ctx context.Context, memberID string) error {
	for id, w := range m.wishes {
		if w.ReservedBy == memberID {
			w.Reserved = false
			w.ReservedBy = ""
			m.wishes[id] = w
		}
	}
	return nil
}

type mockAssignmentStore struct {
	edges       []assignmentDomain.Edge
	generatedAt time.Time
}

// ReplaceAll implements the assignment store interface for testing.
// PRE: edges form a valid cycle
// POST: Previous draw replaced as one unit
func (m *mockAssignmentStore) ReplaceAll(ctx context.Context, edges []assignmentDomain.Edge, createdAt time.Time) error {
	m.edges = append([]assignmentDomain.Edge(nil), edges...)
	m.generatedAt = createdAt
	return nil
}

// List implements the assignment store interface for testing.
// PRE: none
// POST: Returns the stored edges
func (m *mockAssignmentStore) List(ctx context.Context) ([]assignmentDomain.Edge, error) {
	return append([]assignmentDomain.Edge(nil), m.edges...), nil
}

// GetReceiverFor implements the assignment store interface for testing.
// PRE: giverID is non-empty
// POST: Returns the receiver or an error if the giver has no edge
func (m *mockAssignmentStore) GetReceiverFor(ctx context.Context, giverID string) (string, error) {
	for _, e := range m.edges {
		if e.GiverID == giverID {
			return e.ReceiverID, nil
		}
	}
	return "", sql.ErrNoRows
}

// DeleteInvolving implements the assignment store interface for testing.
// PRE: memberID is non-empty
// POST: Edges where the member gives or receives are removed
func (m *mockAssignmentStore) DeleteInvolving(ctx context.Context, memberID string) error {
	var kept []assignmentDomain.Edge
	for _, e := range m.edges {
		if e.GiverID != memberID && e.ReceiverID != memberID {
			kept = append(kept, e)
		}
	}
	m.edges = kept
	return nil
}

// GeneratedAt implements the assignment store interface for testing.
// PRE: none
// POST: Returns the draw timestamp or an error when no draw exists
func (m *mockAssignmentStore) GeneratedAt(ctx context.Context) (time.Time, error) {
	if m.generatedAt.IsZero() {
		return time.Time{}, sql.ErrNoRows
	}
	return m.generatedAt, nil
}

type mockCommentStore struct {
	comments map[string]commentDomain.Comment
}

// GetByID implements the comment store interface for testing.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (m *mockCommentStore) GetByID(ctx context.Context, id string) (commentDomain.Comment, error) {
	if c, ok := m.comments[id]; ok {
		return c, nil
	}
	return commentDomain.Comment{}, sql.ErrNoRows
}

// Save implements the comment store interface for testing.
// PRE: entity has been validated
// POST: Entity is persisted
func (m *mockCommentStore) Save(ctx context.Context, c commentDomain.Comment) error {
	if m.comments == nil {
		m.comments = make(map[string]commentDomain.Comment)
	}
	m.comments[c.ID] = c
	return nil
}

// Delete implements the comment store interface for testing.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (m *mockCommentStore) Delete(ctx context.Context, id string) error {
	delete(m.comments, id)
	return nil
}

// List implements the comment store interface for testing.
// PRE: limit > 0
// POST: Returns comments newest first
func (m *mockCommentStore) List(ctx context.Context, limit, offset int) ([]commentDomain.Comment, error) {
	var list []commentDomain.Comment
	for _, c := range m.comments {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// Count implements the comment store interface for testing.
// PRE: none
// POST: Returns count of comments
func (m *mockCommentStore) Count(ctx context.Context) (int, error) {
	return len(m.comments), nil
}

type mockSettingsStore struct {
	settings map[string]settingsDomain.Setting
}

// Get implements the settings store interface for testing.
// PRE: key is non-empty
// POST: Returns the setting or an error if not found
func (m *mockSettingsStore) Get(ctx context.Context, key string) (settingsDomain.Setting, error) {
	if s, ok := m.settings[key]; ok {
		return s, nil
	}
	return settingsDomain.Setting{}, sql.ErrNoRows
}

// Set implements the settings store interface for testing.
// PRE: setting has been validated
// POST: Setting is persisted
func (m *mockSettingsStore) Set(ctx context.Context, s settingsDomain.Setting) error {
	if m.settings == nil {
		m.settings = make(map[string]settingsDomain.Setting)
	}
	m.settings[s.Key] = s
	return nil
}

// Delete implements the settings store interface for testing.
// PRE: key is non-empty
// POST: Setting with given key is removed
func (m *mockSettingsStore) Delete(ctx context.Context, key string) error {
	delete(m.settings, key)
	return nil
}

type mockOutboxStore struct {
	entries map[string]outboxDomain.Entry
}

// GetByID implements the outbox store interface for testing.
// PRE: id is non-empty
// POST: Returns the entry or an error if not found
func (m *mockOutboxStore) GetByID(ctx context.Context, id string) (outboxDomain.Entry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return outboxDomain.Entry{}, sql.ErrNoRows
}

// Save implements the outbox store interface for testing.
// PRE: entity has been validated
// POST: Entity is persisted
func (m *mockOutboxStore) Save(ctx context.Context, e outboxDomain.Entry) error {
	if m.entries == nil {
		m.entries = make(map[string]outboxDomain.Entry)
	}
	m.entries[e.ID] = e
	return nil
}

// ListPending implements the outbox store interface for testing.
// PRE: limit > 0
// POST: Returns pending and retrying entries oldest first
func (m *mockOutboxStore) ListPending(ctx context.Context, limit int) ([]outboxDomain.Entry, error) {
	var list []outboxDomain.Entry
	for _, e := range m.entries {
		if e.Status == outboxDomain.StatusPending || e.Status == outboxDomain.StatusRetrying {
			list = append(list, e)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// ListFailed implements the outbox store interface for testing.
// PRE: limit > 0
// POST: Returns failed entries
func (m *mockOutboxStore) ListFailed(ctx context.Context, limit int) ([]outboxDomain.Entry, error) {
	var list []outboxDomain.Entry
	for _, e := range m.entries {
		if e.Status == outboxDomain.StatusFailed {
			list = append(list, e)
		}
	}
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// ListRecent implements the outbox store interface for testing.
// PRE: limit > 0
// POST: Returns the newest entries regardless of status
func (m *mockOutboxStore) ListRecent(ctx context.Context, limit int) ([]outboxDomain.Entry, error) {
	var list []outboxDomain.Entry
	for _, e := range m.entries {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// CountByStatus implements the outbox store interface for testing.
// PRE: none
// POST: Returns entry counts keyed by status
func (m *mockOutboxStore) CountByStatus(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, e := range m.entries {
		counts[e.Status]++
	}
	return counts, nil
}

// Delete implements the outbox store interface for testing.
// PRE: id is non-empty
// POST: Entry with given id is removed
func (m *mockOutboxStore) Delete(ctx context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

type mockAccountStore struct {
	accounts map[string]accountDomain.Account
}

// GetByID implements the account store interface for testing.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (m *mockAccountStore) GetByID(ctx context.Context, id string) (accountDomain.Account, error) {
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return accountDomain.Account{}, sql.ErrNoRows
}

// GetByEmail implements the account store interface for testing.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (m *mockAccountStore) GetByEmail(ctx context.Context, email string) (accountDomain.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return accountDomain.Account{}, sql.ErrNoRows
}

// Save implements the account store interface for testing.
// PRE: entity has been validated
// POST: Entity is persisted
func (m *mockAccountStore) Save(ctx context.Context, a accountDomain.Account) error {
	if m.accounts == nil {
		m.accounts = make(map[string]accountDomain.Account)
	}
	m.accounts[a.ID] = a
	return nil
}

// Count implements the account store interface for testing.
// PRE: none
// POST: Returns count of accounts
func (m *mockAccountStore) Count(ctx context.Context) (int, error) {
	return len(m.accounts), nil
}

// testMocks bundles the mock stores behind the package globals so tests
// can seed and inspect them.
type testMocks struct {
	members  *mockMemberStore
	wishes   *mockWishStore
	draws    *mockAssignmentStore
	comments *mockCommentStore
	settings *mockSettingsStore
	outbox   *mockOutboxStore
	accounts *mockAccountStore
}

// setupTestStores points the package globals at fresh mocks.
func setupTestStores(t *testing.T) *testMocks {
	t.Helper()

	m := &testMocks{
		members:  &mockMemberStore{members: make(map[string]memberDomain.Member)},
		wishes:   &mockWishStore{wishes: make(map[string]wishDomain.Wish)},
		draws:    &mockAssignmentStore{},
		comments: &mockCommentStore{comments: make(map[string]commentDomain.Comment)},
		settings: &mockSettingsStore{settings: make(map[string]settingsDomain.Setting)},
		outbox:   &mockOutboxStore{entries: make(map[string]outboxDomain.Entry)},
		accounts: &mockAccountStore{accounts: make(map[string]accountDomain.Account)},
	}
	stores = &Stores{
		AccountStore:    m.accounts,
		MemberStore:     m.members,
		WishStore:       m.wishes,
		AssignmentStore: m.draws,
		CommentStore:    m.comments,
		SettingsStore:   m.settings,
		OutboxStore:     m.outbox,
	}
	sessions = middleware.NewSessionStore()
	emailSender = email.NewNoopSender()
	return m
}

// postForm builds a browser-style form POST.
func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	return req
}

// withIdentity attaches a family session to the request context, the way
// the Auth middleware would after identity selection.
func withIdentity(r *http.Request, memberIDs ...string) *http.Request {
	sess := middleware.Session{SelectedMemberIDs: memberIDs}
	return r.WithContext(middleware.ContextWithSession(r.Context(), sess))
}

// withAdmin attaches an admin session to the request context.
func withAdmin(r *http.Request, memberIDs ...string) *http.Request {
	sess := middleware.Session{
		SelectedMemberIDs: memberIDs,
		AccountID:         "acct-1",
		Email:             "admin@example.com",
		Role:              accountDomain.RoleAdmin,
	}
	return r.WithContext(middleware.ContextWithSession(r.Context(), sess))
}

func seedMember(t *testing.T, m *testMocks, id, name, team string) {
	t.Helper()
	err := m.members.Save(context.Background(), memberDomain.Member{
		ID:        id,
		Name:      name,
		Team:      team,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}
}

func seedWish(t *testing.T, m *testMocks, id, memberID, text string) {
	t.Helper()
	err := m.wishes.Save(context.Background(), wishDomain.Wish{
		ID:        id,
		MemberID:  memberID,
		Text:      text,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to seed wish: %v", err)
	}
}

// TestPostWishes tests the POST add wish endpoint.
func TestPostWishes(t *testing.T) {
	tests := []struct {
		name         string
		memberIDs    []string
		deadline     string
		formData     url.Values
		wantStatus   int
		wantRedirect string
		wantWishes   int
		wantOwner    string
	}{
		{
			name:      "valid wish on own list",
			memberIDs: []string{"m1"},
			formData: url.Values{
				"Text": []string{"Wool socks"},
			},
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/my-wishlist",
			wantWishes:   1,
			wantOwner:    "m1",
		},
		{
			name:      "wish with product link",
			memberIDs: []string{"m1"},
			formData: url.Values{
				"Text":        []string{"Lego set"},
				"ProductLink": []string{"https://shop.example/lego"},
			},
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/my-wishlist",
			wantWishes:   1,
			wantOwner:    "m1",
		},
		{
			name:      "wish on another member's list",
			memberIDs: []string{"m1"},
			formData: url.Values{
				"MemberID": []string{"m2"},
				"Text":     []string{"A good book"},
			},
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/my-wishlist",
			wantWishes:   1,
			wantOwner:    "m2",
		},
		{
			name:      "custom return path",
			memberIDs: []string{"m1"},
			formData: url.Values{
				"Text":   []string{"Board game"},
				"Return": []string{"/members/wishes?id=m1"},
			},
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/members/wishes?id=m1",
			wantWishes:   1,
			wantOwner:    "m1",
		},
		{
			name:         "missing text",
			memberIDs:    []string{"m1"},
			formData:     url.Values{},
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/my-wishlist",
			wantWishes:   0,
		},
		{
			name:      "product link must be absolute",
			memberIDs: []string{"m1"},
			formData: url.Values{
				"Text":        []string{"Mystery thing"},
				"ProductLink": []string{"shop.example/thing"},
			},
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/my-wishlist",
			wantWishes:   0,
		},
		{
			name:      "locked after deadline",
			memberIDs: []string{"m1"},
			deadline:  "2000-01-01",
			formData: url.Values{
				"Text": []string{"Too late"},
			},
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/my-wishlist",
			wantWishes:   0,
		},
		{
			name:      "stale identity returns to selection",
			memberIDs: []string{"ghost"},
			formData: url.Values{
				"Text": []string{"From nobody"},
			},
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/who-are-you",
			wantWishes:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupTestStores(t)
			seedMember(t, m, "m1", "Mari", "")
			seedMember(t, m, "m2", "Jaan", "")
			if tt.deadline != "" {
				m.settings.settings[settingsDomain.KeyWishDeadline] = settingsDomain.Setting{
					Key:   settingsDomain.KeyWishDeadline,
					Value: tt.deadline,
				}
			}

			req := withIdentity(postForm("/wishes", tt.formData), tt.memberIDs...)
			rec := httptest.NewRecorder()

			handlePostWishesAddWish(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d. Body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantRedirect != "" {
				if location := rec.Header().Get("Location"); location != tt.wantRedirect {
					t.Errorf("got redirect %q, want %q", location, tt.wantRedirect)
				}
			}

			total := len(m.wishes.wishes)
			if total != tt.wantWishes {
				t.Errorf("got %d wishes, want %d", total, tt.wantWishes)
			}
			if tt.wantOwner != "" && total > 0 {
				for _, w := range m.wishes.wishes {
					if w.MemberID != tt.wantOwner {
						t.Errorf("got wish owner %q, want %q", w.MemberID, tt.wantOwner)
					}
				}
			}
		})
	}
}

// TestPostWishesJSON tests the JSON branch of the add wish endpoint.
func TestPostWishesJSON(t *testing.T) {
	m := setupTestStores(t)
	seedMember(t, m, "m1", "Mari", "")

	body := `{"MemberID":"m1","Text":"Headphones","ProductLink":""}`
	req := httptest.NewRequest("POST", "/wishes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withIdentity(req, "m1")
	rec := httptest.NewRecorder()

	handlePostWishesAddWish(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("got status %d, want %d. Body: %s", rec.Code, http.StatusNoContent, rec.Body.String())
	}
	if len(m.wishes.wishes) != 1 {
		t.Errorf("got %d wishes, want 1", len(m.wishes.wishes))
	}
}

// TestPostWishesDelete tests the POST delete wish endpoint.
func TestPostWishesDelete(t *testing.T) {
	tests := []struct {
		name       string
		memberIDs  []string
		admin      bool
		wishID     string
		wantStatus int
		wantGone   bool
	}{
		{
			name:       "owner deletes own wish",
			memberIDs:  []string{"m1"},
			wishID:     "w1",
			wantStatus: http.StatusSeeOther,
			wantGone:   true,
		},
		{
			name:       "stranger cannot delete",
			memberIDs:  []string{"m2"},
			wishID:     "w1",
			wantStatus: http.StatusForbidden,
			wantGone:   false,
		},
		{
			name:       "admin deletes any wish",
			memberIDs:  []string{"m2"},
			admin:      true,
			wishID:     "w1",
			wantStatus: http.StatusSeeOther,
			wantGone:   true,
		},
		{
			name:       "unknown wish",
			memberIDs:  []string{"m1"},
			wishID:     "missing",
			wantStatus: http.StatusNotFound,
			wantGone:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupTestStores(t)
			seedMember(t, m, "m1", "Mari", "")
			seedMember(t, m, "m2", "Jaan", "")
			seedWish(t, m, "w1", "m1", "Wool socks")

			req := postForm("/wishes/delete", url.Values{"WishID": []string{tt.wishID}})
			if tt.admin {
				req = withAdmin(req, tt.memberIDs...)
			} else {
				req = withIdentity(req, tt.memberIDs...)
			}
			rec := httptest.NewRecorder()

			handleWishDelete(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d. Body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			_, exists := m.wishes.wishes["w1"]
			if tt.wantGone && exists {
				t.Error("wish should have been deleted")
			}
			if !tt.wantGone && !exists {
				t.Error("wish should still exist")
			}
		})
	}
}

// TestPostWishesReserve tests the POST reserve wish endpoint.
func TestPostWishesReserve(t *testing.T) {
	tests := []struct {
		name           string
		memberIDs      []string
		formData       url.Values
		preReservedBy  string
		wantStatus     int
		wantReservedBy string
	}{
		{
			name:      "reserve another member's wish",
			memberIDs: []string{"m2"},
			formData: url.Values{
				"WishID": []string{"w1"},
			},
			wantStatus:     http.StatusSeeOther,
			wantReservedBy: "m2",
		},
		{
			name:      "cannot reserve own wish",
			memberIDs: []string{"m1"},
			formData: url.Values{
				"WishID": []string{"w1"},
			},
			wantStatus:     http.StatusForbidden,
			wantReservedBy: "",
		},
		{
			name:      "session including the owner cannot reserve",
			memberIDs: []string{"m1", "m2"},
			formData: url.Values{
				"WishID":     []string{"w1"},
				"ReserverID": []string{"m2"},
			},
			wantStatus:     http.StatusForbidden,
			wantReservedBy: "",
		},
		{
			name:      "cannot reserve for a member outside the session",
			memberIDs: []string{"m2"},
			formData: url.Values{
				"WishID":     []string{"w1"},
				"ReserverID": []string{"m3"},
			},
			wantStatus:     http.StatusForbidden,
			wantReservedBy: "",
		},
		{
			name:      "already reserved redirects quietly",
			memberIDs: []string{"m3"},
			formData: url.Values{
				"WishID": []string{"w1"},
			},
			preReservedBy:  "m2",
			wantStatus:     http.StatusSeeOther,
			wantReservedBy: "m2",
		},
		{
			name:      "unknown wish",
			memberIDs: []string{"m2"},
			formData: url.Values{
				"WishID": []string{"missing"},
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupTestStores(t)
			seedMember(t, m, "m1", "Mari", "")
			seedMember(t, m, "m2", "Jaan", "")
			seedMember(t, m, "m3", "Liis", "")
			seedWish(t, m, "w1", "m1", "Wool socks")
			if tt.preReservedBy != "" {
				w := m.wishes.wishes["w1"]
				w.Reserved = true
				w.ReservedBy = tt.preReservedBy
				m.wishes.wishes["w1"] = w
			}

			req := withIdentity(postForm("/wishes/reserve", tt.formData), tt.memberIDs...)
			rec := httptest.NewRecorder()

			handleWishReserve(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d. Body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if w, ok := m.wishes.wishes["w1"]; ok {
				if w.ReservedBy != tt.wantReservedBy {
					t.Errorf("got reserved by %q, want %q", w.ReservedBy, tt.wantReservedBy)
				}
			}
		})
	}
}

// TestPostWishesRelease tests the POST release reservation endpoint.
func TestPostWishesRelease(t *testing.T) {
	tests := []struct {
		name         string
		memberIDs    []string
		admin        bool
		reservedBy   string
		wantStatus   int
		wantReleased bool
	}{
		{
			name:         "holder releases their reservation",
			memberIDs:    []string{"m2"},
			reservedBy:   "m2",
			wantStatus:   http.StatusSeeOther,
			wantReleased: true,
		},
		{
			name:         "non-holder cannot release",
			memberIDs:    []string{"m3"},
			reservedBy:   "m2",
			wantStatus:   http.StatusForbidden,
			wantReleased: false,
		},
		{
			name:         "admin can release any reservation",
			memberIDs:    []string{"m3"},
			admin:        true,
			reservedBy:   "m2",
			wantStatus:   http.StatusSeeOther,
			wantReleased: true,
		},
		{
			name:         "not reserved redirects quietly",
			memberIDs:    []string{"m2"},
			reservedBy:   "",
			wantStatus:   http.StatusSeeOther,
			wantReleased: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupTestStores(t)
			seedMember(t, m, "m1", "Mari", "")
			seedMember(t, m, "m2", "Jaan", "")
			seedMember(t, m, "m3", "Liis", "")
			seedWish(t, m, "w1", "m1", "Wool socks")
			if tt.reservedBy != "" {
				w := m.wishes.wishes["w1"]
				w.Reserved = true
				w.ReservedBy = tt.reservedBy
				m.wishes.wishes["w1"] = w
			}

			req := postForm("/wishes/release", url.Values{"WishID": []string{"w1"}})
			if tt.admin {
				req = withAdmin(req, tt.memberIDs...)
			} else {
				req = withIdentity(req, tt.memberIDs...)
			}
			rec := httptest.NewRecorder()

			handleWishRelease(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d. Body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			w := m.wishes.wishes["w1"]
			if tt.wantReleased && w.Reserved {
				t.Error("wish should no longer be reserved")
			}
			if !tt.wantReleased && !w.Reserved {
				t.Error("wish should still be reserved")
			}
		})
	}
}

// TestGetFamily tests the GET family directory endpoint.
func TestGetFamily(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, m *testMocks)
		wantStatus  int
		wantCount   int
		wantLocked  bool
		wantHasDraw bool
	}{
		{
			name:       "empty directory",
			setup:      func(t *testing.T, m *testMocks) {},
			wantStatus: http.StatusOK,
			wantCount:  0,
		},
		{
			name: "members with wish counts",
			setup: func(t *testing.T, m *testMocks) {
				seedMember(t, m, "m1", "Mari", "tigers")
				seedMember(t, m, "m2", "Jaan", "bears")
				seedWish(t, m, "w1", "m1", "Wool socks")
				seedWish(t, m, "w2", "m1", "Lego set")
			},
			wantStatus: http.StatusOK,
			wantCount:  2,
		},
		{
			name: "locked deadline and existing draw",
			setup: func(t *testing.T, m *testMocks) {
				seedMember(t, m, "m1", "Mari", "")
				seedMember(t, m, "m2", "Jaan", "")
				m.settings.settings[settingsDomain.KeyWishDeadline] = settingsDomain.Setting{
					Key:   settingsDomain.KeyWishDeadline,
					Value: "2000-01-01",
				}
				m.draws.edges = []assignmentDomain.Edge{
					{GiverID: "m1", ReceiverID: "m2"},
					{GiverID: "m2", ReceiverID: "m1"},
				}
				m.draws.generatedAt = time.Now()
			},
			wantStatus:  http.StatusOK,
			wantCount:   2,
			wantLocked:  true,
			wantHasDraw: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupTestStores(t)
			tt.setup(t, m)

			req := httptest.NewRequest("GET", "/family", nil)
			req.Header.Set("Accept", "application/json")
			req = withIdentity(req, "m1")
			rec := httptest.NewRecorder()

			handleFamily(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", rec.Code, tt.wantStatus)
			}
			var result struct {
				Members []struct {
					ID        string
					Name      string
					WishCount int
				}
				HasDraw      bool
				WishesLocked bool
			}
			if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(result.Members) != tt.wantCount {
				t.Errorf("got %d members, want %d", len(result.Members), tt.wantCount)
			}
			if result.WishesLocked != tt.wantLocked {
				t.Errorf("got locked %v, want %v", result.WishesLocked, tt.wantLocked)
			}
			if result.HasDraw != tt.wantHasDraw {
				t.Errorf("got has draw %v, want %v", result.HasDraw, tt.wantHasDraw)
			}
			for _, mem := range result.Members {
				if mem.ID == "m1" && tt.name == "members with wish counts" && mem.WishCount != 2 {
					t.Errorf("got wish count %d for m1, want 2", mem.WishCount)
				}
			}
		})
	}
}

// TestGetMyWishlist tests the GET personal page endpoint.
func TestGetMyWishlist(t *testing.T) {
	t.Run("sections without a draw", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "")
		seedMember(t, m, "m2", "Jaan", "")
		seedWish(t, m, "w1", "m1", "Wool socks")

		req := httptest.NewRequest("GET", "/my-wishlist", nil)
		req.Header.Set("Accept", "application/json")
		req = withIdentity(req, "m1", "m2")
		rec := httptest.NewRecorder()

		handleMyWishlist(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
		}
		var result struct {
			Sections []struct {
				Member struct{ ID string }
				Wishes []struct{ Reserved bool }
			}
			Receivers []json.RawMessage
			HasDraw   bool
		}
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(result.Sections) != 2 {
			t.Errorf("got %d sections, want 2", len(result.Sections))
		}
		if len(result.Receivers) != 0 {
			t.Errorf("got %d receivers, want 0", len(result.Receivers))
		}
		if result.HasDraw {
			t.Error("expected no draw")
		}
	})

	t.Run("own wishes never show reservation state", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "")
		seedMember(t, m, "m2", "Jaan", "")
		seedWish(t, m, "w1", "m1", "Wool socks")
		w := m.wishes.wishes["w1"]
		w.Reserved = true
		w.ReservedBy = "m2"
		m.wishes.wishes["w1"] = w

		req := httptest.NewRequest("GET", "/my-wishlist", nil)
		req.Header.Set("Accept", "application/json")
		req = withIdentity(req, "m1")
		rec := httptest.NewRecorder()

		handleMyWishlist(rec, req)

		var result struct {
			Sections []struct {
				Wishes []struct{ Reserved bool }
			}
		}
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(result.Sections) != 1 || len(result.Sections[0].Wishes) != 1 {
			t.Fatalf("unexpected sections shape: %+v", result.Sections)
		}
		if result.Sections[0].Wishes[0].Reserved {
			t.Error("own wish must not reveal the reservation")
		}
	})

	t.Run("draw adds a receiver section", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "")
		seedMember(t, m, "m2", "Jaan", "")
		seedWish(t, m, "w2", "m2", "A good book")
		w := m.wishes.wishes["w2"]
		w.Reserved = true
		w.ReservedBy = "m3"
		m.wishes.wishes["w2"] = w
		m.draws.edges = []assignmentDomain.Edge{
			{GiverID: "m1", ReceiverID: "m2"},
			{GiverID: "m2", ReceiverID: "m1"},
		}
		m.draws.generatedAt = time.Now()

		req := httptest.NewRequest("GET", "/my-wishlist", nil)
		req.Header.Set("Accept", "application/json")
		req = withIdentity(req, "m1")
		rec := httptest.NewRecorder()

		handleMyWishlist(rec, req)

		var result struct {
			Receivers []struct {
				GiverID  string
				Receiver struct{ ID string }
				Wishes   []struct{ Reserved bool }
			}
			HasDraw bool
		}
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if !result.HasDraw {
			t.Error("expected draw to be visible")
		}
		if len(result.Receivers) != 1 {
			t.Fatalf("got %d receivers, want 1", len(result.Receivers))
		}
		r := result.Receivers[0]
		if r.GiverID != "m1" || r.Receiver.ID != "m2" {
			t.Errorf("got edge %s->%s, want m1->m2", r.GiverID, r.Receiver.ID)
		}
		if len(r.Wishes) != 1 || !r.Wishes[0].Reserved {
			t.Error("receiver wishes should show reservation state to the giver")
		}
	})
}

// TestStaleIdentityAfterRemoval tests endpoints hit with a session whose
// selected member has been removed from the pool.
func TestStaleIdentityAfterRemoval(t *testing.T) {
	t.Run("my-wishlist sends the visitor back to selection", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "")

		req := httptest.NewRequest("GET", "/my-wishlist", nil)
		req.Header.Set("Accept", "text/html")
		req = withIdentity(req, "ghost")
		rec := httptest.NewRecorder()

		handleMyWishlist(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if location := rec.Header().Get("Location"); location != "/who-are-you" {
			t.Errorf("got redirect %q, want %q", location, "/who-are-you")
		}
	})

	t.Run("surviving member keeps the page", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "")

		req := httptest.NewRequest("GET", "/my-wishlist", nil)
		req.Header.Set("Accept", "application/json")
		req = withIdentity(req, "ghost", "m1")
		rec := httptest.NewRecorder()

		handleMyWishlist(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
		}
		var result struct {
			Sections []struct {
				Member struct{ ID string }
			}
		}
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(result.Sections) != 1 || result.Sections[0].Member.ID != "m1" {
			t.Errorf("got sections %+v, want only m1", result.Sections)
		}
	})

	t.Run("comment signed by a removed member", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "")

		req := withIdentity(postForm("/comments", url.Values{"Body": []string{"Hello all"}}), "ghost")
		rec := httptest.NewRecorder()

		handleComments(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d. Body: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
		}
		if location := rec.Header().Get("Location"); location != "/who-are-you" {
			t.Errorf("got redirect %q, want %q", location, "/who-are-you")
		}
		if len(m.comments.comments) != 0 {
			t.Error("no comment should have been stored")
		}
	})

	t.Run("json wish add for a removed member", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "")

		body := `{"MemberID":"ghost","Text":"Nothing","ProductLink":""}`
		req := httptest.NewRequest("POST", "/wishes", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = withIdentity(req, "m1")
		rec := httptest.NewRecorder()

		handlePostWishesAddWish(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusNotFound)
		}
		if len(m.wishes.wishes) != 0 {
			t.Error("no wish should have been stored")
		}
	})
}

// TestGetMemberWishes tests the GET single member list endpoint.
func TestGetMemberWishes(t *testing.T) {
	tests := []struct {
		name         string
		viewerIDs    []string
		memberID     string
		wantStatus   int
		wantIsOwn    bool
		wantReserved bool
	}{
		{
			name:         "viewer sees reservation state",
			viewerIDs:    []string{"m2"},
			memberID:     "m1",
			wantStatus:   http.StatusOK,
			wantIsOwn:    false,
			wantReserved: true,
		},
		{
			name:         "owner gets flags stripped",
			viewerIDs:    []string{"m1"},
			memberID:     "m1",
			wantStatus:   http.StatusOK,
			wantIsOwn:    true,
			wantReserved: false,
		},
		{
			name:       "unknown member",
			viewerIDs:  []string{"m1"},
			memberID:   "missing",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupTestStores(t)
			seedMember(t, m, "m1", "Mari", "")
			seedMember(t, m, "m2", "Jaan", "")
			seedWish(t, m, "w1", "m1", "Wool socks")
			w := m.wishes.wishes["w1"]
			w.Reserved = true
			w.ReservedBy = "m2"
			m.wishes.wishes["w1"] = w

			req := httptest.NewRequest("GET", "/members/wishes?id="+tt.memberID, nil)
			req.Header.Set("Accept", "application/json")
			req = withIdentity(req, tt.viewerIDs...)
			rec := httptest.NewRecorder()

			handleMemberWishes(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var result struct {
				IsOwn  bool
				Wishes []struct {
					Reserved     bool
					ReservedByMe bool
				}
			}
			if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if result.IsOwn != tt.wantIsOwn {
				t.Errorf("got IsOwn %v, want %v", result.IsOwn, tt.wantIsOwn)
			}
			if len(result.Wishes) != 1 {
				t.Fatalf("got %d wishes, want 1", len(result.Wishes))
			}
			if result.Wishes[0].Reserved != tt.wantReserved {
				t.Errorf("got Reserved %v, want %v", result.Wishes[0].Reserved, tt.wantReserved)
			}
			if tt.name == "viewer sees reservation state" && !result.Wishes[0].ReservedByMe {
				t.Error("reserver should see their own reservation flagged")
			}
		})
	}
}

// TestPostWhoAreYou tests the POST identity selection endpoint.
func TestPostWhoAreYou(t *testing.T) {
	t.Run("valid selection creates a session", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "")
		seedMember(t, m, "m2", "Jaan", "")

		form := url.Values{"MemberIDs": []string{"m1", "m2"}}
		req := postForm("/who-are-you", form)
		rec := httptest.NewRecorder()

		handleWhoAreYou(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d. Body: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
		}
		if location := rec.Header().Get("Location"); location != "/my-wishlist" {
			t.Errorf("got redirect %q, want %q", location, "/my-wishlist")
		}
		sessionCookie := ""
		for _, c := range rec.Result().Cookies() {
			if c.Name == "wishlist_session" {
				sessionCookie = c.Value
			}
		}
		if sessionCookie == "" {
			t.Fatal("expected a session cookie to be set")
		}
		sess, ok := sessions.Get(sessionCookie)
		if !ok {
			t.Fatal("session token should resolve")
		}
		if len(sess.SelectedMemberIDs) != 2 {
			t.Errorf("got %d selected members, want 2", len(sess.SelectedMemberIDs))
		}
	})

	t.Run("admin login survives re-selection", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "")

		token, err := sessions.Create(middleware.Session{
			AccountID: "acct-1",
			Email:     "admin@example.com",
			Role:      accountDomain.RoleAdmin,
		})
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		req := postForm("/who-are-you", url.Values{"MemberIDs": []string{"m1"}})
		req.AddCookie(&http.Cookie{Name: "wishlist_session", Value: token})
		rec := httptest.NewRecorder()

		handleWhoAreYou(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d", rec.Code, http.StatusSeeOther)
		}
		sess, ok := sessions.Get(token)
		if !ok {
			t.Fatal("session should still exist")
		}
		if !sess.IsAdmin() {
			t.Error("admin role should survive identity selection")
		}
		if len(sess.SelectedMemberIDs) != 1 || sess.SelectedMemberIDs[0] != "m1" {
			t.Errorf("got selected members %v, want [m1]", sess.SelectedMemberIDs)
		}
	})

	t.Run("empty selection rejected", func(t *testing.T) {
		setupTestStores(t)

		req := httptest.NewRequest("POST", "/who-are-you", strings.NewReader(`{"MemberIDs":[]}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handleWhoAreYou(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("unknown member rejected", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "")

		req := httptest.NewRequest("POST", "/who-are-you", strings.NewReader(`{"MemberIDs":["ghost"]}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handleWhoAreYou(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

// TestGetLanguage tests the GET language switch endpoint.
func TestGetLanguage(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantStatus   int
		wantRedirect string
		wantCookie   string
	}{
		{
			name:         "switch to estonian",
			query:        "?lang=et&next=/family",
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/family",
			wantCookie:   "et",
		},
		{
			name:         "missing next falls back",
			query:        "?lang=ru",
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/my-wishlist",
			wantCookie:   "ru",
		},
		{
			name:       "unsupported language",
			query:      "?lang=xx",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:         "absolute next rejected",
			query:        "?lang=en&next=https://evil.example",
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/my-wishlist",
			wantCookie:   "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestStores(t)

			req := httptest.NewRequest("GET", "/language"+tt.query, nil)
			rec := httptest.NewRecorder()

			handleLanguage(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantRedirect != "" {
				if location := rec.Header().Get("Location"); location != tt.wantRedirect {
					t.Errorf("got redirect %q, want %q", location, tt.wantRedirect)
				}
			}
			if tt.wantCookie != "" {
				got := ""
				for _, c := range rec.Result().Cookies() {
					if c.Name == "wishlist_lang" {
						got = c.Value
					}
				}
				if got != tt.wantCookie {
					t.Errorf("got language cookie %q, want %q", got, tt.wantCookie)
				}
			}
		})
	}
}

// TestPostAdminLogin tests the POST admin login endpoint.
func TestPostAdminLogin(t *testing.T) {
	seedAdmin := func(t *testing.T, m *testMocks, locked bool) {
		t.Helper()
		acct := accountDomain.Account{
			ID:        "acct-1",
			Email:     "admin@example.com",
			Role:      accountDomain.RoleAdmin,
			CreatedAt: time.Now(),
		}
		if err := acct.SetPassword("correct-horse-battery"); err != nil {
			t.Fatalf("failed to set password: %v", err)
		}
		if locked {
			acct.FailedLogins = 5
			acct.LockedUntil = time.Now().Add(10 * time.Minute)
		}
		if err := m.accounts.Save(context.Background(), acct); err != nil {
			t.Fatalf("failed to seed account: %v", err)
		}
	}

	t.Run("valid credentials create an admin session", func(t *testing.T) {
		m := setupTestStores(t)
		seedAdmin(t, m, false)

		form := url.Values{
			"Email":    []string{"admin@example.com"},
			"Password": []string{"correct-horse-battery"},
		}
		req := postForm("/admin/login", form)
		rec := httptest.NewRecorder()

		handleAdminLogin(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d. Body: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
		}
		if location := rec.Header().Get("Location"); location != "/admin" {
			t.Errorf("got redirect %q, want %q", location, "/admin")
		}
		token := ""
		for _, c := range rec.Result().Cookies() {
			if c.Name == "wishlist_session" {
				token = c.Value
			}
		}
		if token == "" {
			t.Fatal("expected a session cookie")
		}
		sess, ok := sessions.Get(token)
		if !ok || !sess.IsAdmin() {
			t.Error("session should carry the admin role")
		}
	})

	t.Run("login keeps the selected identity", func(t *testing.T) {
		m := setupTestStores(t)
		seedAdmin(t, m, false)

		token, err := sessions.Create(middleware.Session{SelectedMemberIDs: []string{"m1"}})
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		form := url.Values{
			"Email":    []string{"admin@example.com"},
			"Password": []string{"correct-horse-battery"},
		}
		req := postForm("/admin/login", form)
		req.AddCookie(&http.Cookie{Name: "wishlist_session", Value: token})
		rec := httptest.NewRecorder()

		handleAdminLogin(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d", rec.Code, http.StatusSeeOther)
		}
		sess, ok := sessions.Get(token)
		if !ok {
			t.Fatal("session should still exist")
		}
		if !sess.IsAdmin() {
			t.Error("session should carry the admin role")
		}
		if len(sess.SelectedMemberIDs) != 1 {
			t.Error("identity selection should survive the login")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		m := setupTestStores(t)
		seedAdmin(t, m, false)

		body := `{"Email":"admin@example.com","Password":"not-the-password"}`
		req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handleAdminLogin(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		setupTestStores(t)

		body := `{"Email":"ghost@example.com","Password":"whatever-it-is"}`
		req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handleAdminLogin(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("locked account", func(t *testing.T) {
		m := setupTestStores(t)
		seedAdmin(t, m, true)

		body := `{"Email":"admin@example.com","Password":"correct-horse-battery"}`
		req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		handleAdminLogin(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}

// TestPostAdminLogout tests the POST admin logout endpoint.
func TestPostAdminLogout(t *testing.T) {
	t.Run("logout keeps the family identity", func(t *testing.T) {
		setupTestStores(t)

		token, err := sessions.Create(middleware.Session{
			SelectedMemberIDs: []string{"m1"},
			AccountID:         "acct-1",
			Email:             "admin@example.com",
			Role:              accountDomain.RoleAdmin,
		})
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		req := postForm("/admin/logout", url.Values{})
		req.AddCookie(&http.Cookie{Name: "wishlist_session", Value: token})
		rec := httptest.NewRecorder()

		handleAdminLogout(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if location := rec.Header().Get("Location"); location != "/" {
			t.Errorf("got redirect %q, want %q", location, "/")
		}
		sess, ok := sessions.Get(token)
		if !ok {
			t.Fatal("session with an identity should survive logout")
		}
		if sess.IsAdmin() {
			t.Error("admin role should be gone")
		}
		if !sess.HasIdentity() {
			t.Error("family identity should remain")
		}
	})

	t.Run("logout without identity drops the session", func(t *testing.T) {
		setupTestStores(t)

		token, err := sessions.Create(middleware.Session{
			AccountID: "acct-1",
			Email:     "admin@example.com",
			Role:      accountDomain.RoleAdmin,
		})
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		req := postForm("/admin/logout", url.Values{})
		req.AddCookie(&http.Cookie{Name: "wishlist_session", Value: token})
		rec := httptest.NewRecorder()

		handleAdminLogout(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if _, ok := sessions.Get(token); ok {
			t.Error("session without an identity should be deleted")
		}
	})
}

// TestPostAdminMembers tests the POST add member endpoint.
func TestPostAdminMembers(t *testing.T) {
	tests := []struct {
		name         string
		existing     []memberDomain.Member
		formData     url.Values
		wantStatus   int
		wantRedirect string
		wantCount    int
	}{
		{
			name: "valid member",
			formData: url.Values{
				"Name":  []string{"Mari"},
				"Team":  []string{"tigers"},
				"Email": []string{"mari@example.com"},
			},
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/admin",
			wantCount:    1,
		},
		{
			name: "name only is enough",
			formData: url.Values{
				"Name": []string{"Jaan"},
			},
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/admin",
			wantCount:    1,
		},
		{
			name: "duplicate name flashes and keeps one",
			existing: []memberDomain.Member{
				{ID: "m1", Name: "Mari", CreatedAt: time.Now()},
			},
			formData: url.Values{
				"Name": []string{"mari"},
			},
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/admin",
			wantCount:    1,
		},
		{
			name:         "missing name",
			formData:     url.Values{},
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/admin",
			wantCount:    0,
		},
		{
			name: "email without at sign",
			formData: url.Values{
				"Name":  []string{"Mari"},
				"Email": []string{"mari.example.com"},
			},
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/admin",
			wantCount:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupTestStores(t)
			for _, mem := range tt.existing {
				if err := m.members.Save(context.Background(), mem); err != nil {
					t.Fatalf("failed to seed member: %v", err)
				}
			}

			req := withAdmin(postForm("/admin/members", tt.formData))
			rec := httptest.NewRecorder()

			handleAdminMembers(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d. Body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantRedirect != "" {
				if location := rec.Header().Get("Location"); location != tt.wantRedirect {
					t.Errorf("got redirect %q, want %q", location, tt.wantRedirect)
				}
			}
			if len(m.members.members) != tt.wantCount {
				t.Errorf("got %d members, want %d", len(m.members.members), tt.wantCount)
			}
		})
	}
}

// TestPostAdminMemberUpdate tests the POST edit member endpoint.
func TestPostAdminMemberUpdate(t *testing.T) {
	t.Run("rename keeps the id", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "tigers")

		form := url.Values{
			"MemberID": []string{"m1"},
			"Name":     []string{"Maarja"},
			"Team":     []string{"bears"},
			"Email":    []string{"maarja@example.com"},
		}
		req := withAdmin(postForm("/admin/members/update", form))
		rec := httptest.NewRecorder()

		handleAdminMemberUpdate(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d. Body: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
		}
		got := m.members.members["m1"]
		if got.Name != "Maarja" || got.Team != "bears" || got.Email != "maarja@example.com" {
			t.Errorf("member not updated: %+v", got)
		}
	})

	t.Run("unknown member", func(t *testing.T) {
		setupTestStores(t)

		form := url.Values{
			"MemberID": []string{"missing"},
			"Name":     []string{"Nobody"},
		}
		req := withAdmin(postForm("/admin/members/update", form))
		rec := httptest.NewRecorder()

		handleAdminMemberUpdate(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("rename onto an existing name rejected", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "")
		seedMember(t, m, "m2", "Jaan", "")

		body := `{"MemberID":"m2","Name":"Mari"}`
		req := httptest.NewRequest("POST", "/admin/members/update", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = withAdmin(req)
		rec := httptest.NewRecorder()

		handleAdminMemberUpdate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if m.members.members["m2"].Name != "Jaan" {
			t.Error("member should keep its old name")
		}
	})
}

// TestPostAdminMemberDelete tests the POST remove member endpoint.
func TestPostAdminMemberDelete(t *testing.T) {
	t.Run("removal cleans wishes, reservations and edges", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "")
		seedMember(t, m, "m2", "Jaan", "")
		seedWish(t, m, "w1", "m1", "Wool socks")
		seedWish(t, m, "w2", "m2", "A good book")
		w := m.wishes.wishes["w2"]
		w.Reserved = true
		w.ReservedBy = "m1"
		m.wishes.wishes["w2"] = w
		m.draws.edges = []assignmentDomain.Edge{
			{GiverID: "m1", ReceiverID: "m2"},
			{GiverID: "m2", ReceiverID: "m1"},
		}
		m.draws.generatedAt = time.Now()

		req := withAdmin(postForm("/admin/members/delete", url.Values{"MemberID": []string{"m1"}}))
		rec := httptest.NewRecorder()

		handleAdminMemberDelete(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d. Body: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
		}
		if _, ok := m.members.members["m1"]; ok {
			t.Error("member should be gone")
		}
		if _, ok := m.wishes.wishes["w1"]; ok {
			t.Error("member's wishes should be gone")
		}
		if m.wishes.wishes["w2"].Reserved {
			t.Error("reservation held by the removed member should be released")
		}
		if len(m.draws.edges) != 0 {
			t.Errorf("got %d edges, want 0", len(m.draws.edges))
		}
	})

	t.Run("unknown member", func(t *testing.T) {
		setupTestStores(t)

		req := withAdmin(postForm("/admin/members/delete", url.Values{"MemberID": []string{"missing"}}))
		rec := httptest.NewRecorder()

		handleAdminMemberDelete(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

// TestPostAdminDeadline tests the POST wish deadline endpoint.
func TestPostAdminDeadline(t *testing.T) {
	t.Run("set a date", func(t *testing.T) {
		m := setupTestStores(t)

		req := withAdmin(postForm("/admin/deadline", url.Values{"Deadline": []string{"2026-12-20"}}))
		rec := httptest.NewRecorder()

		handleAdminDeadline(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d. Body: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
		}
		if got := m.settings.settings[settingsDomain.KeyWishDeadline].Value; got != "2026-12-20" {
			t.Errorf("got stored deadline %q, want %q", got, "2026-12-20")
		}
	})

	t.Run("empty clears the deadline", func(t *testing.T) {
		m := setupTestStores(t)
		m.settings.settings[settingsDomain.KeyWishDeadline] = settingsDomain.Setting{
			Key:   settingsDomain.KeyWishDeadline,
			Value: "2026-12-20",
		}

		req := withAdmin(postForm("/admin/deadline", url.Values{"Deadline": []string{""}}))
		rec := httptest.NewRecorder()

		handleAdminDeadline(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if _, ok := m.settings.settings[settingsDomain.KeyWishDeadline]; ok {
			t.Error("deadline setting should be deleted")
		}
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		m := setupTestStores(t)

		body := `{"Deadline":"20.12.2026"}`
		req := httptest.NewRequest("POST", "/admin/deadline", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = withAdmin(req)
		rec := httptest.NewRecorder()

		handleAdminDeadline(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if len(m.settings.settings) != 0 {
			t.Error("nothing should be stored for a malformed date")
		}
	})
}

// TestPostAdminRunDraw tests the POST run draw endpoint.
func TestPostAdminRunDraw(t *testing.T) {
	t.Run("draw over three members stores a full cycle", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "")
		seedMember(t, m, "m2", "Jaan", "")
		seedMember(t, m, "m3", "Liis", "")

		req := withAdmin(postForm("/admin/assignments/run", url.Values{}))
		rec := httptest.NewRecorder()

		handleAdminRunDraw(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d. Body: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
		}
		if len(m.draws.edges) != 3 {
			t.Fatalf("got %d edges, want 3", len(m.draws.edges))
		}
		givers := make(map[string]bool)
		receivers := make(map[string]bool)
		for _, e := range m.draws.edges {
			if e.GiverID == e.ReceiverID {
				t.Errorf("self edge %s", e.GiverID)
			}
			if givers[e.GiverID] {
				t.Errorf("giver %s appears twice", e.GiverID)
			}
			if receivers[e.ReceiverID] {
				t.Errorf("receiver %s appears twice", e.ReceiverID)
			}
			givers[e.GiverID] = true
			receivers[e.ReceiverID] = true
		}
	})

	t.Run("notify queues one email per addressed member", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "")
		seedMember(t, m, "m2", "Jaan", "")
		mem := m.members.members["m1"]
		mem.Email = "mari@example.com"
		m.members.members["m1"] = mem

		req := withAdmin(postForm("/admin/assignments/run", url.Values{"Notify": []string{"on"}}))
		rec := httptest.NewRecorder()

		handleAdminRunDraw(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if len(m.outbox.entries) != 1 {
			t.Fatalf("got %d outbox entries, want 1", len(m.outbox.entries))
		}
		for _, e := range m.outbox.entries {
			if e.Status != outboxDomain.StatusPending {
				t.Errorf("got status %q, want %q", e.Status, outboxDomain.StatusPending)
			}
			if !strings.Contains(e.Payload, "mari@example.com") {
				t.Error("payload should address the member")
			}
			if strings.Contains(e.Payload, "Jaan") {
				t.Error("notification must not leak the receiver")
			}
		}
	})

	t.Run("one member is too few", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "")

		body := `{}`
		req := httptest.NewRequest("POST", "/admin/assignments/run", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = withAdmin(req)
		rec := httptest.NewRecorder()

		handleAdminRunDraw(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if len(m.draws.edges) != 0 {
			t.Error("no draw should be stored")
		}
	})

	t.Run("single team has no feasible cycle", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "tigers")
		seedMember(t, m, "m2", "Jaan", "tigers")

		body := `{}`
		req := httptest.NewRequest("POST", "/admin/assignments/run", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = withAdmin(req)
		rec := httptest.NewRecorder()

		handleAdminRunDraw(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if len(m.draws.edges) != 0 {
			t.Error("no draw should be stored")
		}
	})

	t.Run("failed draw keeps the previous one", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "tigers")
		seedMember(t, m, "m2", "Jaan", "tigers")
		m.draws.edges = []assignmentDomain.Edge{
			{GiverID: "m1", ReceiverID: "m2"},
			{GiverID: "m2", ReceiverID: "m1"},
		}
		m.draws.generatedAt = time.Now().Add(-24 * time.Hour)

		req := withAdmin(postForm("/admin/assignments/run", url.Values{}))
		rec := httptest.NewRecorder()

		handleAdminRunDraw(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if len(m.draws.edges) != 2 {
			t.Error("the stored draw should be untouched")
		}
	})
}

// TestComments tests the comment board endpoints.
func TestComments(t *testing.T) {
	t.Run("post a comment signed with the member name", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "")

		form := url.Values{"Body": []string{"Who is wrapping presents on the 23rd?"}}
		req := withIdentity(postForm("/comments", form), "m1")
		rec := httptest.NewRecorder()

		handleComments(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d. Body: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
		}
		if location := rec.Header().Get("Location"); location != "/comments" {
			t.Errorf("got redirect %q, want %q", location, "/comments")
		}
		if len(m.comments.comments) != 1 {
			t.Fatalf("got %d comments, want 1", len(m.comments.comments))
		}
		for _, c := range m.comments.comments {
			if c.AuthorName != "Mari" {
				t.Errorf("got author %q, want %q", c.AuthorName, "Mari")
			}
		}
	})

	t.Run("empty body rejected", func(t *testing.T) {
		m := setupTestStores(t)
		seedMember(t, m, "m1", "Mari", "")

		req := withIdentity(postForm("/comments", url.Values{"Body": []string{""}}), "m1")
		rec := httptest.NewRecorder()

		handleComments(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if location := rec.Header().Get("Location"); location != "/comments" {
			t.Errorf("got redirect %q, want %q", location, "/comments")
		}
		if len(m.comments.comments) != 0 {
			t.Error("no comment should be stored")
		}
	})

	t.Run("board pages newest first", func(t *testing.T) {
		m := setupTestStores(t)
		base := time.Now()
		for i := 0; i < 25; i++ {
			c := commentDomain.Comment{
				ID:         fmt.Sprintf("c%02d", i),
				AuthorName: "Mari",
				Body:       "note",
				CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			}
			if err := m.comments.Save(context.Background(), c); err != nil {
				t.Fatalf("failed to seed comment: %v", err)
			}
		}

		req := httptest.NewRequest("GET", "/comments?page=2", nil)
		req.Header.Set("Accept", "application/json")
		req = withIdentity(req, "m1")
		rec := httptest.NewRecorder()

		handleComments(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
		}
		var result struct {
			Comments []json.RawMessage
			PageInfo struct {
				Page       int
				Total      int
				TotalPages int
			}
		}
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if result.PageInfo.Total != 25 || result.PageInfo.TotalPages != 2 {
			t.Errorf("got page info %+v, want 25 total over 2 pages", result.PageInfo)
		}
		if len(result.Comments) != 5 {
			t.Errorf("got %d comments on page 2, want 5", len(result.Comments))
		}
	})
}

// TestPostAdminCommentDelete tests the POST comment moderation endpoint.
func TestPostAdminCommentDelete(t *testing.T) {
	t.Run("delete removes the comment", func(t *testing.T) {
		m := setupTestStores(t)
		if err := m.comments.Save(context.Background(), commentDomain.Comment{
			ID:         "c1",
			AuthorName: "Mari",
			Body:       "old note",
			CreatedAt:  time.Now(),
		}); err != nil {
			t.Fatalf("failed to seed comment: %v", err)
		}

		req := withAdmin(postForm("/admin/comments/delete", url.Values{"CommentID": []string{"c1"}}))
		rec := httptest.NewRecorder()

		handleAdminCommentDelete(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d. Body: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
		}
		if len(m.comments.comments) != 0 {
			t.Error("comment should be gone")
		}
	})

	t.Run("unknown comment", func(t *testing.T) {
		setupTestStores(t)

		req := withAdmin(postForm("/admin/comments/delete", url.Values{"CommentID": []string{"missing"}}))
		rec := httptest.NewRecorder()

		handleAdminCommentDelete(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

// TestGetAdminPanel tests the GET admin overview endpoint.
func TestGetAdminPanel(t *testing.T) {
	m := setupTestStores(t)
	seedMember(t, m, "m1", "Mari", "")
	seedMember(t, m, "m2", "Jaan", "")
	seedWish(t, m, "w1", "m1", "Wool socks")
	if err := m.comments.Save(context.Background(), commentDomain.Comment{
		ID:         "c1",
		AuthorName: "Mari",
		Body:       "note",
		CreatedAt:  time.Now(),
	}); err != nil {
		t.Fatalf("failed to seed comment: %v", err)
	}
	m.draws.edges = []assignmentDomain.Edge{
		{GiverID: "m1", ReceiverID: "m2"},
		{GiverID: "m2", ReceiverID: "m1"},
	}
	m.draws.generatedAt = time.Now()

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Accept", "application/json")
	req = withAdmin(req)
	rec := httptest.NewRecorder()

	handleAdminPanel(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d. Body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var result struct {
		Members []struct {
			ID        string
			WishCount int
		}
		Edges        []struct{ GiverName, ReceiverName string }
		HasDraw      bool
		DrawPartial  bool
		CommentCount int
	}
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result.Members) != 2 {
		t.Errorf("got %d members, want 2", len(result.Members))
	}
	if !result.HasDraw || len(result.Edges) != 2 {
		t.Errorf("expected a visible draw with 2 edges, got %+v", result)
	}
	if result.DrawPartial {
		t.Error("draw covers everyone, should not be partial")
	}
	if result.CommentCount != 1 {
		t.Errorf("got %d comments, want 1", result.CommentCount)
	}
	for _, e := range result.Edges {
		if e.GiverName == "" || e.ReceiverName == "" {
			t.Error("edges should resolve member names")
		}
	}
}

// TestAdminOutbox tests the outbox admin endpoints.
func TestAdminOutbox(t *testing.T) {
	seedEntry := func(t *testing.T, m *testMocks, id, status string, attempts int) {
		t.Helper()
		err := m.outbox.Save(context.Background(), outboxDomain.Entry{
			ID:          id,
			ActionType:  outboxDomain.ActionTypeEmail,
			Payload:     `{"to":["mari@example.com"],"subject":"The Secret Santa draw is ready","html":"<p>hi</p>"}`,
			Status:      status,
			Attempts:    attempts,
			MaxAttempts: outboxDomain.DefaultMaxAttempts,
			CreatedAt:   time.Now(),
		})
		if err != nil {
			t.Fatalf("failed to seed outbox entry: %v", err)
		}
	}

	t.Run("log lists entries and counts", func(t *testing.T) {
		m := setupTestStores(t)
		seedEntry(t, m, "e1", outboxDomain.StatusPending, 0)
		seedEntry(t, m, "e2", outboxDomain.StatusFailed, 5)

		req := httptest.NewRequest("GET", "/admin/outbox", nil)
		req.Header.Set("Accept", "application/json")
		req = withAdmin(req)
		rec := httptest.NewRecorder()

		handleAdminOutbox(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
		}
		var result struct {
			Recent        []json.RawMessage
			Failed        []json.RawMessage
			CountByStatus map[string]int
			Total         int
		}
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(result.Recent) != 2 || len(result.Failed) != 1 {
			t.Errorf("got %d recent and %d failed, want 2 and 1", len(result.Recent), len(result.Failed))
		}
		if result.CountByStatus[outboxDomain.StatusPending] != 1 {
			t.Errorf("got pending count %d, want 1", result.CountByStatus[outboxDomain.StatusPending])
		}
	})

	t.Run("manual retry delivers through the sender", func(t *testing.T) {
		m := setupTestStores(t)
		seedEntry(t, m, "e1", outboxDomain.StatusPending, 0)

		req := withAdmin(postForm("/admin/outbox/retry", url.Values{"EntryID": []string{"e1"}}))
		rec := httptest.NewRecorder()

		handleAdminOutboxRetry(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d. Body: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
		}
		e := m.outbox.entries["e1"]
		if e.Status != outboxDomain.StatusDone {
			t.Errorf("got status %q, want %q", e.Status, outboxDomain.StatusDone)
		}
		if e.ExternalID == "" {
			t.Error("delivered entry should record the provider id")
		}
	})

	t.Run("abandon parks the entry", func(t *testing.T) {
		m := setupTestStores(t)
		seedEntry(t, m, "e1", outboxDomain.StatusFailed, 5)

		req := withAdmin(postForm("/admin/outbox/abandon", url.Values{"EntryID": []string{"e1"}}))
		rec := httptest.NewRecorder()

		handleAdminOutboxAbandon(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if got := m.outbox.entries["e1"].Status; got != outboxDomain.StatusAbandoned {
			t.Errorf("got status %q, want %q", got, outboxDomain.StatusAbandoned)
		}
	})

	t.Run("delete removes a terminal entry", func(t *testing.T) {
		m := setupTestStores(t)
		seedEntry(t, m, "e1", outboxDomain.StatusAbandoned, 5)

		req := withAdmin(postForm("/admin/outbox/delete", url.Values{"EntryID": []string{"e1"}}))
		rec := httptest.NewRecorder()

		handleAdminOutboxDelete(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("got status %d, want %d", rec.Code, http.StatusSeeOther)
		}
		if len(m.outbox.entries) != 0 {
			t.Error("entry should be gone")
		}
	})

	t.Run("delete refuses a deliverable entry", func(t *testing.T) {
		m := setupTestStores(t)
		seedEntry(t, m, "e1", outboxDomain.StatusPending, 0)

		body := `{"EntryID":"e1"}`
		req := httptest.NewRequest("POST", "/admin/outbox/delete", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = withAdmin(req)
		rec := httptest.NewRecorder()

		handleAdminOutboxDelete(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if len(m.outbox.entries) != 1 {
			t.Error("entry should still exist")
		}
	})
}

// TestHandleRoot tests the landing redirect.
func TestHandleRoot(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		identity     bool
		wantStatus   int
		wantRedirect string
	}{
		{
			name:         "identity goes to the personal page",
			path:         "/",
			identity:     true,
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/my-wishlist",
		},
		{
			name:         "no identity goes to selection",
			path:         "/",
			identity:     false,
			wantStatus:   http.StatusSeeOther,
			wantRedirect: "/who-are-you",
		},
		{
			name:       "unknown path is 404",
			path:       "/nope",
			identity:   true,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestStores(t)

			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.identity {
				req = withIdentity(req, "m1")
			}
			rec := httptest.NewRecorder()

			handleRoot(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantRedirect != "" {
				if location := rec.Header().Get("Location"); location != tt.wantRedirect {
					t.Errorf("got redirect %q, want %q", location, tt.wantRedirect)
				}
			}
		})
	}
}
