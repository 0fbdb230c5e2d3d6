package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/creddit/domain"
)

// memoryBackend implements app.PostService and app.CommentService.
type memoryBackend struct {
	mu        sync.Mutex
	posts     []domain.Post
	nextID    int
	listCalls int
	getCalls  int
	fail      error
}

func (b *memoryBackend) ListPosts(context.Context) ([]domain.Post, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listCalls++
	return append([]domain.Post(nil), b.posts...), nil
}

func (b *memoryBackend) GetPost(_ context.Context, id string) (domain.Post, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.getCalls++
	for _, p := range b.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Post{}, &domain.HTTPError{StatusCode: 404}
}

func (b *memoryBackend) CreatePost(_ context.Context, in domain.NewPost) (domain.Post, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail != nil {
		return domain.Post{}, b.fail
	}
	b.nextID++
	p := domain.Post{ID: fmt.Sprint(b.nextID), Title: in.Title, Description: in.Description}
	b.posts = append(b.posts, p)
	return p, nil
}

func (b *memoryBackend) DeletePost(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail != nil {
		return b.fail
	}
	for i, p := range b.posts {
		if p.ID == id {
			b.posts = append(b.posts[:i], b.posts[i+1:]...)
			return nil
		}
	}
	return &domain.HTTPError{StatusCode: 404}
}

func (b *memoryBackend) AddComment(_ context.Context, postID string, in domain.NewComment) (domain.Comment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail != nil {
		return domain.Comment{}, b.fail
	}
	b.nextID++
	c := domain.Comment{ID: fmt.Sprint(b.nextID), Username: in.Username, Comment: in.Comment}
	for i := range b.posts {
		if b.posts[i].ID == postID {
			b.posts[i].Comments = append(b.posts[i].Comments, c)
		}
	}
	return c, nil
}

func (b *memoryBackend) DeleteComment(context.Context, string) error {
	return b.fail
}

func TestClient_CreatePost_NextListReadReflectsIt(t *testing.T) {
	backend := &memoryBackend{}
	q := NewClient(NewCache(zerolog.Nop()), backend, backend)

	posts, err := q.Posts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)

	_, err = q.CreatePost(context.Background(), domain.NewPost{Title: "t", Description: "d"})
	require.NoError(t, err)
	assert.True(t, q.Cache().Peek(PostsKey()).Stale)

	posts, err = q.Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 2, backend.listCalls)
}

func TestClient_DeletePost_NextListReadOmitsIt(t *testing.T) {
	backend := &memoryBackend{posts: []domain.Post{{ID: "1"}, {ID: "2"}}}
	q := NewClient(NewCache(zerolog.Nop()), backend, backend)

	_, _ = q.Posts(context.Background())
	require.NoError(t, q.DeletePost(context.Background(), "1"))

	posts, err := q.Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "2", posts[0].ID)
}

func TestClient_AddComment_DetailNeedsExplicitRefetch(t *testing.T) {
	backend := &memoryBackend{posts: []domain.Post{{ID: "1"}}}
	q := NewClient(NewCache(zerolog.Nop()), backend, backend)

	_, _ = q.Post(context.Background(), "1")
	_, err := q.AddComment(context.Background(), "1", domain.NewComment{Username: "u", Comment: "c"})
	require.NoError(t, err)

	cached, err := q.Post(context.Background(), "1")
	require.NoError(t, err)
	assert.Empty(t, cached.Comments, "detail cache is not invalidated by mutations")
	assert.Equal(t, 1, backend.getCalls)

	fresh, err := q.RefetchPost(context.Background(), "1")
	require.NoError(t, err)
	assert.Len(t, fresh.Comments, 1)
}

func TestClient_FailedMutation_LeavesCacheFresh(t *testing.T) {
	backend := &memoryBackend{fail: errors.New("offline")}
	q := NewClient(NewCache(zerolog.Nop()), backend, backend)

	_, _ = q.Posts(context.Background())
	require.Error(t, q.DeleteComment(context.Background(), "c1"))
	_, err := q.AddComment(context.Background(), "1", domain.NewComment{Username: "u", Comment: "c"})
	require.Error(t, err)
	assert.False(t, q.Cache().Peek(PostsKey()).Stale)
}

func TestInvalidatedMsg_Has(t *testing.T) {
	msg := InvalidatedMsg{Keys: MutationInvalidates()}
	assert.True(t, msg.Has(PostsKey()))
	assert.False(t, msg.Has(PostKey("1")))
}
