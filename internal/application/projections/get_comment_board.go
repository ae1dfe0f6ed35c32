package projections

import (
	"context"

	"wishlist/internal/application/listutil"
	domainComment "wishlist/internal/domain/comment"
)

// GetCommentBoardQuery carries the query parameters.
type GetCommentBoardQuery struct {
	Page listutil.PageParams
}

// GetCommentBoardResult carries the query result. Bodies are raw
// markdown; the handler renders them.
type GetCommentBoardResult struct {
	Comments []domainComment.Comment
	PageInfo listutil.PageInfo
}

// GetCommentBoardDeps holds dependencies for GetCommentBoard.
type GetCommentBoardDeps struct {
	CommentStore CommentStore
}

// QueryGetCommentBoard lists the board newest first, one page at a time.
func QueryGetCommentBoard(ctx context.Context, query GetCommentBoardQuery, deps GetCommentBoardDeps) (GetCommentBoardResult, error) {
	total, err := deps.CommentStore.Count(ctx)
	if err != nil {
		return GetCommentBoardResult{}, err
	}

	info := listutil.NewPageInfo(query.Page.Page, query.Page.PerPage, total)

	comments, err := deps.CommentStore.List(ctx, info.PerPage, info.Offset())
	if err != nil {
		return GetCommentBoardResult{}, err
	}

	return GetCommentBoardResult{
		Comments: comments,
		PageInfo: info,
	}, nil
}
