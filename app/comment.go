package app

import (
	"context"

	"github.com/CrestNiraj12/creddit/domain"
)

// CommentService adds and removes comments on posts.
type CommentService interface {
	// AddComment attaches a comment to the given post.
	AddComment(ctx context.Context, postID string, in domain.NewComment) (domain.Comment, error)

	// DeleteComment removes a comment by its own ID.
	DeleteComment(ctx context.Context, commentID string) error
}
