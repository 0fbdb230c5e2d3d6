package postlist

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/CrestNiraj12/creddit/domain"
)

// visiblePosts returns the posts whose title contains query, ignoring case,
// newest first (reverse of server order). posts is never modified.
func visiblePosts(posts []domain.Post, query string) []domain.Post {
	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]domain.Post, 0, len(posts))
	for i := len(posts) - 1; i >= 0; i-- {
		p := posts[i]
		if needle != "" && !strings.Contains(fold.String(p.Title), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}
