package member

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
	MaxTeamLength = 100
)

// Domain errors.
var (
	ErrEmptyName   = errors.New("member name cannot be empty")
	ErrNameTooLong = errors.New("member name cannot exceed 100 characters")
	ErrTeamTooLong = errors.New("team name cannot exceed 100 characters")
	ErrBadEmail    = errors.New("member email must be valid")
)

// Member is one person in the gift-exchange pool.
// Name is unique across the pool (case-insensitive); Team groups members
// who must not draw each other; Email is optional and only used for
// assignment notifications.
type Member struct {
	ID        string
	Name      string
	Team      string
	Email     string
	CreatedAt time.Time
}

// Validate checks the member's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if len(m.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(m.Team) > MaxTeamLength {
		return ErrTeamTooLong
	}
	if m.Email != "" && !strings.Contains(m.Email, "@") {
		return ErrBadEmail
	}
	return nil
}

// HasTeam returns true if the member carries a team tag.
func (m *Member) HasTeam() bool {
	return m.Team != ""
}

// NormalizeName trims whitespace. Uniqueness comparisons additionally
// fold case, so "Anna" and "anna" are the same person.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// SameName reports whether two names identify the same member.
func SameName(a, b string) bool {
	return strings.EqualFold(NormalizeName(a), NormalizeName(b))
}
