package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"wishlist/internal/domain/comment"
)

// CommentStoreForBoard defines the store interface needed by the comment board.
type CommentStoreForBoard interface {
	GetByID(ctx context.Context, id string) (comment.Comment, error)
	Save(ctx context.Context, c comment.Comment) error
	Delete(ctx context.Context, id string) error
}

// PostCommentInput carries input for posting to the family board.
type PostCommentInput struct {
	AuthorName string
	Body       string
}

// PostCommentDeps holds dependencies for PostComment.
type PostCommentDeps struct {
	CommentStore CommentStoreForBoard
	GenerateID   func() string
	Now          func() time.Time
}

// ExecutePostComment adds a comment to the board.
// PRE: AuthorName and Body are non-empty
// POST: Comment persisted with generated ID
func ExecutePostComment(ctx context.Context, input PostCommentInput, deps PostCommentDeps) (comment.Comment, error) {
	c := comment.Comment{
		ID:         deps.GenerateID(),
		AuthorName: input.AuthorName,
		Body:       input.Body,
		CreatedAt:  deps.Now(),
	}
	if err := c.Validate(); err != nil {
		return comment.Comment{}, err
	}

	if err := deps.CommentStore.Save(ctx, c); err != nil {
		return comment.Comment{}, err
	}

	slog.Info("board_event", "event", "comment_posted", "comment_id", c.ID)
	return c, nil
}

// DeleteCommentInput carries input for removing a comment.
type DeleteCommentInput struct {
	CommentID string
}

// DeleteCommentDeps holds dependencies for DeleteComment.
type DeleteCommentDeps struct {
	CommentStore CommentStoreForBoard
}

// ExecuteDeleteComment removes a comment from the board. Moderation is the
// admin's job; the handler enforces that.
// PRE: CommentID exists
// POST: Comment removed
func ExecuteDeleteComment(ctx context.Context, input DeleteCommentInput, deps DeleteCommentDeps) error {
	c, err := deps.CommentStore.GetByID(ctx, input.CommentID)
	if err != nil {
		return err
	}

	if err := deps.CommentStore.Delete(ctx, c.ID); err != nil {
		return err
	}

	slog.Info("board_event", "event", "comment_deleted", "comment_id", c.ID)
	return nil
}
