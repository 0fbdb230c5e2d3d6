package query

import (
	"context"
	"slices"

	"github.com/CrestNiraj12/creddit/app"
	"github.com/CrestNiraj12/creddit/domain"
)

// InvalidatedMsg tells mounted screens which keys a mutation made stale.
type InvalidatedMsg struct {
	Keys []Key
}

// Has reports whether key is among the invalidated keys.
func (m InvalidatedMsg) Has(key Key) bool {
	return slices.Contains(m.Keys, key)
}

// MutationInvalidates lists the keys every successful mutation marks stale.
// Only the list read is invalidated; detail reads refetch explicitly.
func MutationInvalidates() []Key {
	return []Key{PostsKey()}
}

// Client binds the cache to the post and comment services.
type Client struct {
	cache    *Cache
	posts    app.PostService
	comments app.CommentService
}

// NewClient creates a query client over the given services.
func NewClient(cache *Cache, posts app.PostService, comments app.CommentService) *Client {
	return &Client{cache: cache, posts: posts, comments: comments}
}

// Cache exposes the underlying cache for status inspection.
func (q *Client) Cache() *Cache { return q.cache }

// Posts reads all posts, from cache when fresh.
func (q *Client) Posts(ctx context.Context) ([]domain.Post, error) {
	return Fetch(ctx, q.cache, PostsKey(), q.posts.ListPosts)
}

// RefetchPosts reads all posts from the server.
func (q *Client) RefetchPosts(ctx context.Context) ([]domain.Post, error) {
	return Refetch(ctx, q.cache, PostsKey(), q.posts.ListPosts)
}

// Post reads one post, from cache when fresh.
func (q *Client) Post(ctx context.Context, id string) (domain.Post, error) {
	return Fetch(ctx, q.cache, PostKey(id), q.getPost(id))
}

// RefetchPost reads one post from the server.
func (q *Client) RefetchPost(ctx context.Context, id string) (domain.Post, error) {
	return Refetch(ctx, q.cache, PostKey(id), q.getPost(id))
}

func (q *Client) getPost(id string) func(context.Context) (domain.Post, error) {
	return func(ctx context.Context) (domain.Post, error) {
		return q.posts.GetPost(ctx, id)
	}
}

// CreatePost publishes a post.
func (q *Client) CreatePost(ctx context.Context, in domain.NewPost) (domain.Post, error) {
	return Mutate(ctx, q.cache, func(ctx context.Context) (domain.Post, error) {
		return q.posts.CreatePost(ctx, in)
	}, MutationInvalidates()...)
}

// DeletePost removes a post.
func (q *Client) DeletePost(ctx context.Context, id string) error {
	_, err := Mutate(ctx, q.cache, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, q.posts.DeletePost(ctx, id)
	}, MutationInvalidates()...)
	return err
}

// AddComment attaches a comment to a post.
func (q *Client) AddComment(ctx context.Context, postID string, in domain.NewComment) (domain.Comment, error) {
	return Mutate(ctx, q.cache, func(ctx context.Context) (domain.Comment, error) {
		return q.comments.AddComment(ctx, postID, in)
	}, MutationInvalidates()...)
}

// DeleteComment removes a comment.
func (q *Client) DeleteComment(ctx context.Context, commentID string) error {
	_, err := Mutate(ctx, q.cache, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, q.comments.DeleteComment(ctx, commentID)
	}, MutationInvalidates()...)
	return err
}
