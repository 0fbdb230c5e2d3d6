package creddit

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/CrestNiraj12/creddit/domain"
)

// apiPost is the post entity as the server sends it.
type apiPost struct {
	ID          flexID       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Comments    []apiComment `json:"comments"`
}

type apiComment struct {
	ID       flexID `json:"id"`
	Username string `json:"username"`
	Comment  string `json:"comment"`
}

type createPostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type addCommentRequest struct {
	Username string `json:"username"`
	Comment  string `json:"comment"`
}

// flexID accepts an identifier encoded as a JSON string or number.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

func mapPost(p apiPost) domain.Post {
	return domain.Post{
		ID:          string(p.ID),
		Title:       p.Title,
		Description: p.Description,
		Comments:    mapComments(p.Comments),
	}
}

func mapPosts(in []apiPost) []domain.Post {
	out := make([]domain.Post, 0, len(in))
	for _, p := range in {
		out = append(out, mapPost(p))
	}
	return out
}

func mapComments(in []apiComment) []domain.Comment {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.Comment, 0, len(in))
	for _, c := range in {
		out = append(out, mapComment(c))
	}
	return out
}

func mapComment(c apiComment) domain.Comment {
	return domain.Comment{
		ID:       string(c.ID),
		Username: c.Username,
		Comment:  c.Comment,
	}
}
