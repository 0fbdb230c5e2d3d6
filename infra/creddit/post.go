package creddit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/CrestNiraj12/creddit/domain"
)

// postService implements app.PostService using the creddit API.
type postService struct {
	client *Client
}

// NewPostService creates a PostService backed by the creddit API.
func NewPostService(client *Client) *postService {
	return &postService{client: client}
}

func (s *postService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	data, err := s.client.Get(ctx, "/posts")
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	var posts []apiPost
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("parsing posts: %w", err)
	}
	return mapPosts(posts), nil
}

func (s *postService) GetPost(ctx context.Context, id string) (domain.Post, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Post{}, domain.ErrMissingID
	}

	data, err := s.client.Get(ctx, postPath(id))
	if err != nil {
		return domain.Post{}, fmt.Errorf("getting post: %w", err)
	}

	var p apiPost
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Post{}, fmt.Errorf("parsing post: %w", err)
	}
	return mapPost(p), nil
}

func (s *postService) CreatePost(ctx context.Context, in domain.NewPost) (domain.Post, error) {
	if err := in.Validate(); err != nil {
		return domain.Post{}, err
	}

	data, err := s.client.Post(ctx, "/posts", createPostRequest{
		Title:       in.Title,
		Description: in.Description,
	})
	if err != nil {
		return domain.Post{}, fmt.Errorf("creating post: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.Post{Title: in.Title, Description: in.Description}, nil
	}

	var p apiPost
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Post{}, fmt.Errorf("parsing created post: %w", err)
	}
	return mapPost(p), nil
}

// DeletePost ignores the response body; the server's confirmation shape is not part of the contract.
func (s *postService) DeletePost(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrMissingID
	}
	if _, err := s.client.Delete(ctx, postPath(id)); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

func postPath(id string) string {
	return "/posts/" + url.PathEscape(id)
}
