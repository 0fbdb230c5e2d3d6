package domain

import "strings"

// Post is a top-level feed item. Comments keep the order the server returned.
type Post struct {
	ID          string
	Title       string
	Description string
	Comments    []Comment
}

// Comment is a reply attached to a post.
type Comment struct {
	ID       string
	Username string
	Comment  string
}

// NewPost is the payload for creating a post. The server assigns the ID.
type NewPost struct {
	Title       string
	Description string
}

// Validate rejects a post with an empty title or description.
func (p NewPost) Validate() error {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Description) == "" {
		return ErrPostFieldsRequired
	}
	return nil
}

// NewComment is the payload for adding a comment to a post.
type NewComment struct {
	Username string
	Comment  string
}

// Validate rejects a comment with an empty username or body.
func (c NewComment) Validate() error {
	if strings.TrimSpace(c.Username) == "" || strings.TrimSpace(c.Comment) == "" {
		return ErrCommentFieldsRequired
	}
	return nil
}
