package fakeapi

import "github.com/CrestNiraj12/creddit/domain"

type jsonComment struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Comment  string `json:"comment"`
}

type jsonPost struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Comments    []jsonComment `json:"comments"`
}

func toJSONComment(c domain.Comment) jsonComment {
	return jsonComment{ID: c.ID, Username: c.Username, Comment: c.Comment}
}

func toJSONPost(p domain.Post) jsonPost {
	out := jsonPost{ID: p.ID, Title: p.Title, Description: p.Description, Comments: []jsonComment{}}
	for _, c := range p.Comments {
		out.Comments = append(out.Comments, toJSONComment(c))
	}
	return out
}

func toJSONPosts(in []domain.Post) []jsonPost {
	out := make([]jsonPost, 0, len(in))
	for _, p := range in {
		out = append(out, toJSONPost(p))
	}
	return out
}
