package settings

import (
	"errors"
	"time"
)

// Setting keys referenced by code.
const (
	KeyWishDeadline = "wish_deadline"
)

// DeadlineLayout is the stored date format for the wish deadline.
const DeadlineLayout = "2006-01-02"

var (
	ErrMissingKey  = errors.New("setting key is required")
	ErrBadDeadline = errors.New("deadline must be a YYYY-MM-DD date")
)

// Setting is one key/value configuration row.
type Setting struct {
	Key   string
	Value string
}

// Validate checks required fields for a Setting.
// PRE: Setting struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (s *Setting) Validate() error {
	if s.Key == "" {
		return ErrMissingKey
	}
	return nil
}

// ParseDeadline parses a stored deadline value in the given location.
// PRE: value is non-empty
// POST: returns the deadline date at midnight local time, or ErrBadDeadline
func ParseDeadline(value string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DeadlineLayout, value, loc)
	if err != nil {
		return time.Time{}, ErrBadDeadline
	}
	return d, nil
}

// WishesLocked reports whether wish submission is closed at the given
// moment. The deadline day itself stays open; the lock starts the next
// day. An empty or malformed value never locks.
// PRE: now carries the timezone the comparison should use
// INVARIANT: the deadline day is inclusive
func WishesLocked(now time.Time, deadline string) bool {
	if deadline == "" {
		return false
	}
	d, err := ParseDeadline(deadline, now.Location())
	if err != nil {
		return false
	}
	y, m, day := now.Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, now.Location())
	return today.After(d)
}
