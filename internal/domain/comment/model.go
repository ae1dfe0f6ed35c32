package comment

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxAuthorLength = 100
	MaxBodyLength   = 2000
)

// Domain errors.
var (
	ErrEmptyAuthor   = errors.New("comment author is required")
	ErrEmptyBody     = errors.New("comment body cannot be empty")
	ErrAuthorTooLong = errors.New("comment author cannot exceed 100 characters")
	ErrBodyTooLong   = errors.New("comment body cannot exceed 2000 characters")
)

// Comment is one entry on the family comment board. Body is markdown;
// rendering escapes raw HTML so a comment can never inject script.
type Comment struct {
	ID         string
	AuthorName string
	Body       string
	CreatedAt  time.Time
}

// Validate checks that the required fields are present.
// PRE: none
// POST: returns error if AuthorName or Body is empty or over limit
func (c *Comment) Validate() error {
	if strings.TrimSpace(c.AuthorName) == "" {
		return ErrEmptyAuthor
	}
	if len(c.AuthorName) > MaxAuthorLength {
		return ErrAuthorTooLong
	}
	if strings.TrimSpace(c.Body) == "" {
		return ErrEmptyBody
	}
	if len(c.Body) > MaxBodyLength {
		return ErrBodyTooLong
	}
	return nil
}
