package postdetail

import (
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/creddit/infra/creddit"
	"github.com/CrestNiraj12/creddit/internal/fakeapi"
	"github.com/CrestNiraj12/creddit/query"
)

func newFixture(t *testing.T) (*fakeapi.Server, *query.Client) {
	t.Helper()
	fake, _, q := newServerFixture(t)
	return fake, q
}

// newServerFixture also returns the HTTP server so a test can close it
// and make later calls fail at the transport.
func newServerFixture(t *testing.T) (*fakeapi.Server, *httptest.Server, *query.Client) {
	t.Helper()
	fake := fakeapi.New()
	srv := fake.Serve()
	t.Cleanup(srv.Close)

	client := creddit.NewClient(srv.URL, zerolog.Nop())
	q := query.NewClient(query.NewCache(zerolog.Nop()),
		creddit.NewPostService(client), creddit.NewCommentService(client))
	return fake, srv, q
}

// loaded returns a detail screen that has completed its first fetch.
func loaded(t *testing.T, q *query.Client, id string) Model {
	t.Helper()
	m := New(id, 1, q, nil, zerolog.Nop())
	m, cmd := m.startFetch(false)
	m, _ = m.Update(cmd())
	return m
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

func count(reqs []string, want string) int {
	n := 0
	for _, r := range reqs {
		if r == want {
			n++
		}
	}
	return n
}
