package wish

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxTextLength = 500
	MaxLinkLength = 500
)

// Domain errors.
var (
	ErrEmptyText       = errors.New("wish text cannot be empty")
	ErrTextTooLong     = errors.New("wish text cannot exceed 500 characters")
	ErrLinkTooLong     = errors.New("product link cannot exceed 500 characters")
	ErrBadLink         = errors.New("product link must be an absolute http(s) URL")
	ErrAlreadyReserved = errors.New("wish is already reserved")
	ErrNotReserved     = errors.New("wish is not reserved")
	ErrReserveOwnWish  = errors.New("cannot reserve your own wish")
)

// Wish is one gift idea on a member's list.
// Reserved marks that somebody committed to buying it; ReservedBy is the
// reserving member's ID. The owner is never shown reservation state so
// the surprise survives.
type Wish struct {
	ID          string
	MemberID    string
	Text        string
	ProductLink string
	Reserved    bool
	ReservedBy  string
	CreatedAt   time.Time
}

// Validate checks the wish's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (w *Wish) Validate() error {
	if strings.TrimSpace(w.Text) == "" {
		return ErrEmptyText
	}
	if len(w.Text) > MaxTextLength {
		return ErrTextTooLong
	}
	if w.ProductLink != "" {
		if len(w.ProductLink) > MaxLinkLength {
			return ErrLinkTooLong
		}
		u, err := url.Parse(w.ProductLink)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrBadLink
		}
	}
	return nil
}

// Reserve marks the wish as taken by the given member.
// PRE: wish is unreserved, memberID is not the owner
// POST: Reserved is set and ReservedBy records who took it
func (w *Wish) Reserve(memberID string) error {
	if w.Reserved {
		return ErrAlreadyReserved
	}
	if memberID == w.MemberID {
		return ErrReserveOwnWish
	}
	w.Reserved = true
	w.ReservedBy = memberID
	return nil
}

// Release clears a reservation.
// PRE: wish is reserved
// POST: Reserved and ReservedBy are cleared
func (w *Wish) Release() error {
	if !w.Reserved {
		return ErrNotReserved
	}
	w.Reserved = false
	w.ReservedBy = ""
	return nil
}

// IsOwnedBy reports whether the wish belongs to the given member.
func (w *Wish) IsOwnedBy(memberID string) bool {
	return w.MemberID == memberID
}
