package postlist

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/creddit/domain"
	"github.com/CrestNiraj12/creddit/infra/creddit"
	"github.com/CrestNiraj12/creddit/internal/fakeapi"
	"github.com/CrestNiraj12/creddit/query"
)

// stubBackend implements app.PostService and app.CommentService in memory.
type stubBackend struct {
	mu          sync.Mutex
	posts       []domain.Post
	next        int
	listCalls   int
	createCalls int
	listErr     error
	createErr   error
}

func (s *stubBackend) ListPosts(context.Context) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]domain.Post(nil), s.posts...), nil
}

func (s *stubBackend) GetPost(context.Context, string) (domain.Post, error) {
	return domain.Post{}, errors.New("not used")
}

func (s *stubBackend) CreatePost(_ context.Context, in domain.NewPost) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	if s.createErr != nil {
		return domain.Post{}, s.createErr
	}
	s.next++
	p := domain.Post{ID: fmt.Sprintf("new-%d", s.next), Title: in.Title, Description: in.Description}
	s.posts = append(s.posts, p)
	return p, nil
}

func (s *stubBackend) DeletePost(context.Context, string) error { return nil }

func (s *stubBackend) AddComment(context.Context, string, domain.NewComment) (domain.Comment, error) {
	return domain.Comment{}, nil
}

func (s *stubBackend) DeleteComment(context.Context, string) error { return nil }

func newTestModel(backend *stubBackend) Model {
	q := query.NewClient(query.NewCache(zerolog.Nop()), backend, backend)
	return New(q, nil, zerolog.Nop())
}

// loaded returns a model that has completed its first fetch.
func loaded(backend *stubBackend) Model {
	m := newTestModel(backend)
	m, cmd := m.startFetch(false)
	m, _ = m.Update(cmd())
	return m
}

// newServerModel returns an unloaded model backed by a fake API over HTTP. The
// caller may close srv to make later calls fail at the transport.
func newServerModel(t *testing.T) (*fakeapi.Server, *httptest.Server, Model) {
	t.Helper()
	fake := fakeapi.New()
	srv := fake.Serve()
	t.Cleanup(srv.Close)

	client := creddit.NewClient(srv.URL, zerolog.Nop())
	q := query.NewClient(query.NewCache(zerolog.Nop()),
		creddit.NewPostService(client), creddit.NewCommentService(client))
	return fake, srv, New(q, nil, zerolog.Nop())
}

// drain runs cmd and flattens batches. Only use on commands that return
// immediately (no blink or tick timers).
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, drain(c)...)
	}
	return out
}

func find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if t, ok := m.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func seedPosts() []domain.Post {
	return []domain.Post{
		{ID: "1", Title: "First", Description: "one"},
		{ID: "2", Title: "Second", Description: "two"},
		{ID: "3", Title: "Third", Description: "three"},
	}
}
