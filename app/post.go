package app

import (
	"context"

	"github.com/CrestNiraj12/creddit/domain"
)

// PostService reads and writes posts on the remote feed.
type PostService interface {
	// ListPosts returns every post in server order. Comments may be absent.
	ListPosts(ctx context.Context) ([]domain.Post, error)

	// GetPost returns a single post including its comments.
	GetPost(ctx context.Context, id string) (domain.Post, error)

	// CreatePost publishes a new post and returns it with its server-assigned ID.
	CreatePost(ctx context.Context, in domain.NewPost) (domain.Post, error)

	// DeletePost removes a post by ID.
	DeletePost(ctx context.Context, id string) error
}
