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

// commentService implements app.CommentService using the creddit API.
type commentService struct {
	client *Client
}

// NewCommentService creates a CommentService backed by the creddit API.
func NewCommentService(client *Client) *commentService {
	return &commentService{client: client}
}

func (s *commentService) AddComment(ctx context.Context, postID string, in domain.NewComment) (domain.Comment, error) {
	if strings.TrimSpace(postID) == "" {
		return domain.Comment{}, domain.ErrMissingID
	}
	if err := in.Validate(); err != nil {
		return domain.Comment{}, err
	}

	data, err := s.client.Post(ctx, postPath(postID)+"/comments", addCommentRequest{
		Username: in.Username,
		Comment:  in.Comment,
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("adding comment: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.Comment{Username: in.Username, Comment: in.Comment}, nil
	}

	var c apiComment
	if err := json.Unmarshal(data, &c); err != nil {
		return domain.Comment{}, fmt.Errorf("parsing created comment: %w", err)
	}
	return mapComment(c), nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID string) error {
	if strings.TrimSpace(commentID) == "" {
		return domain.ErrMissingID
	}
	path := "/posts/comments/" + url.PathEscape(commentID)
	if _, err := s.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}
