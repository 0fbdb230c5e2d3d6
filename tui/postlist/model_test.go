package postlist

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/creddit/domain"
	"github.com/CrestNiraj12/creddit/query"
	"github.com/CrestNiraj12/creddit/tui/alert"
	"github.com/CrestNiraj12/creddit/tui/common"
	"github.com/CrestNiraj12/creddit/tui/form"
)

func TestLoad_ReadyShowsNewestFirst(t *testing.T) {
	m := loaded(&stubBackend{posts: seedPosts()})

	if m.state != common.StateReady {
		t.Fatalf("expected ready state, got %v", m.state)
	}
	visible := m.Visible()
	if len(visible) != 3 || visible[0].ID != "3" || visible[2].ID != "1" {
		t.Fatalf("expected reverse server order, got %v", ids(visible))
	}
	view := ansi.Strip(m.View())
	if strings.Index(view, "Third") > strings.Index(view, "First") {
		t.Fatalf("newest post must render first: %q", view)
	}
}

func TestLoad_StaleResponseIgnored(t *testing.T) {
	m := newTestModel(&stubBackend{})
	m.reqSeq = 5

	updated, _ := m.Update(PostsLoadedMsg{Posts: seedPosts(), ReqSeq: 4})
	if updated.state != common.StateLoading || len(updated.posts) != 0 {
		t.Fatalf("stale response should not mutate the list")
	}
}

func TestLoad_ErrorPersistsUntilRefresh(t *testing.T) {
	backend := &stubBackend{listErr: &domain.NetworkError{Op: "GET /posts", Err: errors.New("dial tcp: refused")}}
	m := loaded(backend)

	if m.state != common.StateError {
		t.Fatalf("expected error state")
	}
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "network error") || !strings.Contains(view, "Press r to retry") {
		t.Fatalf("unexpected error view: %q", view)
	}

	backend.listErr = nil
	backend.posts = seedPosts()
	m, cmd := m.Update(keyRunes("r"))
	if m.state != common.StateLoading {
		t.Fatalf("refresh from error should show loading")
	}
	m, _ = m.Update(cmd())
	if m.state != common.StateReady || len(m.posts) != 3 {
		t.Fatalf("expected recovery after refresh")
	}
	if backend.listCalls != 2 {
		t.Fatalf("expected two list calls, got %d", backend.listCalls)
	}
}

func TestRefresh_KeepsDataWhileFetching(t *testing.T) {
	backend := &stubBackend{posts: seedPosts()}
	m := loaded(backend)

	m, cmd := m.Update(keyRunes("r"))
	if !m.fetching || m.state != common.StateReady {
		t.Fatalf("refresh must show a fetching indicator without blanking")
	}
	if len(m.Visible()) != 3 {
		t.Fatalf("existing data must stay visible")
	}
	if !strings.Contains(ansi.Strip(m.View()), "refreshing") {
		t.Fatalf("expected refreshing indicator")
	}
	m, _ = m.Update(cmd())
	if m.fetching || backend.listCalls != 2 {
		t.Fatalf("refresh must bypass the cache")
	}
}

func TestFilter_DoesNotMutateCachedList(t *testing.T) {
	m := loaded(&stubBackend{posts: seedPosts()})

	m, _ = m.Update(keyRunes("/"))
	if !m.searching || !m.CapturingInput() {
		t.Fatalf("expected search mode")
	}
	m, _ = m.Update(keyRunes("s"))
	m, _ = m.Update(keyRunes("E"))

	visible := m.Visible()
	if len(visible) != 1 || visible[0].ID != "2" {
		t.Fatalf("expected only Second, got %v", ids(visible))
	}
	if len(m.Posts()) != 3 || m.Posts()[0].ID != "1" {
		t.Fatalf("filter must not mutate cached posts")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.searching || len(m.Visible()) != 3 {
		t.Fatalf("esc should clear the search")
	}
}

func TestFilter_NoMatchShowsEmptyState(t *testing.T) {
	m := loaded(&stubBackend{posts: seedPosts()})
	m.search.SetValue("zzz")
	if !strings.Contains(ansi.Strip(m.View()), "No posts found") {
		t.Fatalf("expected empty state")
	}
}

func TestOpen_EmitsSelectedID(t *testing.T) {
	m := loaded(&stubBackend{posts: seedPosts()})
	m, _ = m.Update(keyRunes("j"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	open, ok := find[OpenPostMsg](drain(cmd))
	if !ok || open.ID != "2" {
		t.Fatalf("expected open of post 2, got %#v", open)
	}
}

func TestCreate_EmptyFieldAlertsWithoutCall(t *testing.T) {
	backend := &stubBackend{posts: seedPosts()}
	m := loaded(backend)
	m, _ = m.Update(keyRunes("n"))
	m, _ = m.Update(keyRunes("title only"))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	invalid, ok := find[form.InvalidMsg](drain(cmd))
	if !ok {
		t.Fatalf("expected InvalidMsg from form")
	}
	m, cmd = m.Update(invalid)
	show, ok := find[alert.ShowMsg](drain(cmd))
	if !ok || show.Message != "Both title and description are required." {
		t.Fatalf("unexpected alert: %#v", show)
	}
	if !m.showForm || backend.createCalls != 0 {
		t.Fatalf("modal must stay open with no network call")
	}
	if title, _ := m.form.Values(); title != "title only" {
		t.Fatalf("form data must be kept: %q", title)
	}
}

func TestCreate_SuccessClosesResetsAndRefetches(t *testing.T) {
	backend := &stubBackend{posts: seedPosts()}
	m := loaded(backend)
	m, _ = m.Update(keyRunes("n"))
	m.form.SetValues("Fresh", "body")

	m, cmd := m.Update(form.SubmitMsg{First: "Fresh", Second: "body"})
	if !m.form.Submitting() {
		t.Fatalf("expected submitting state")
	}
	created, ok := find[PostCreatedMsg](drain(cmd))
	if !ok || created.Err != nil {
		t.Fatalf("expected successful create, got %#v", created)
	}

	m, cmd = m.Update(created)
	if m.showForm {
		t.Fatalf("modal should close on success")
	}
	if title, desc := m.form.Values(); title != "" || desc != "" {
		t.Fatalf("form should be cleared")
	}
	inv, ok := find[query.InvalidatedMsg](drain(cmd))
	if !ok || !inv.Has(query.PostsKey()) {
		t.Fatalf("expected list invalidation")
	}

	m, cmd = m.Update(inv)
	m, _ = m.Update(cmd())
	if backend.listCalls != 2 {
		t.Fatalf("invalidation must trigger a refetch, calls=%d", backend.listCalls)
	}
	if m.Visible()[0].Title != "Fresh" {
		t.Fatalf("new post should be first, got %v", ids(m.Visible()))
	}
}

func TestCreate_FailureKeepsModalAndData(t *testing.T) {
	backend := &stubBackend{posts: seedPosts(), createErr: &domain.NetworkError{Op: "POST /posts", Err: errors.New("timeout")}}
	m := loaded(backend)
	m, _ = m.Update(keyRunes("n"))
	m.form.SetValues("Keep", "me")

	m, cmd := m.Update(form.SubmitMsg{First: "Keep", Second: "me"})
	created, _ := find[PostCreatedMsg](drain(cmd))
	m, cmd = m.Update(created)

	show, ok := find[alert.ShowMsg](drain(cmd))
	if !ok || show.Message != "Something went wrong. Please try again." {
		t.Fatalf("unexpected alert: %#v", show)
	}
	if !m.showForm || m.form.Submitting() {
		t.Fatalf("modal must stay open and idle")
	}
	if title, desc := m.form.Values(); title != "Keep" || desc != "me" {
		t.Fatalf("form data must be intact")
	}
	if len(m.Posts()) != 3 {
		t.Fatalf("list must be unchanged")
	}
}

func TestCreate_ServerUnreachableKeepsModalAndData(t *testing.T) {
	fake, srv, m := newServerModel(t)
	fake.Seed("Existing", "post")
	m, cmd := m.startFetch(false)
	m, _ = m.Update(cmd())
	if m.state != common.StateReady || len(m.Posts()) != 1 {
		t.Fatalf("expected one loaded post, got %d", len(m.Posts()))
	}

	m, _ = m.Update(keyRunes("n"))
	m.form.SetValues("Offline", "draft")
	srv.Close()

	m, cmd = m.Update(form.SubmitMsg{First: "Offline", Second: "draft"})
	created, ok := find[PostCreatedMsg](drain(cmd))
	if !ok || !domain.IsNetworkError(created.Err) {
		t.Fatalf("expected network error, got %#v", created)
	}
	m, cmd = m.Update(created)

	if _, ok := find[query.InvalidatedMsg](drain(cmd)); ok {
		t.Fatalf("failed create must not invalidate")
	}
	if !m.showForm || m.form.Submitting() {
		t.Fatalf("modal must stay open and idle")
	}
	if title, desc := m.form.Values(); title != "Offline" || desc != "draft" {
		t.Fatalf("form data must be intact, got %q %q", title, desc)
	}
	if len(m.Posts()) != 1 || m.Posts()[0].Title != "Existing" {
		t.Fatalf("list must be unchanged: %v", ids(m.Posts()))
	}
}

func TestCreate_OnlyOpensWhenReady(t *testing.T) {
	backend := &stubBackend{posts: seedPosts()}
	m := newTestModel(backend)
	m, _ = m.startFetch(false)

	m, cmd := m.Update(keyRunes("n"))
	if m.showForm || cmd != nil {
		t.Fatalf("new post must be ignored while loading")
	}

	backend.listErr = &domain.NetworkError{Op: "GET /posts", Err: errors.New("refused")}
	m = loaded(backend)
	m, _ = m.Update(keyRunes("n"))
	if m.showForm {
		t.Fatalf("new post must be ignored in the error state")
	}

	backend.listErr = nil
	m = loaded(backend)
	m, _ = m.Update(keyRunes("n"))
	if !m.showForm {
		t.Fatalf("new post should open once the list is ready")
	}
}

func TestCreate_SecondSubmitIgnoredWhileSubmitting(t *testing.T) {
	backend := &stubBackend{}
	m := loaded(backend)
	m, _ = m.Update(keyRunes("n"))
	m, _ = m.Update(form.SubmitMsg{First: "a", Second: "b"})

	_, cmd := m.Update(form.SubmitMsg{First: "a", Second: "b"})
	if cmd != nil {
		t.Fatalf("second submit must be ignored")
	}
}

func TestInvalidation_IgnoresOtherKeys(t *testing.T) {
	backend := &stubBackend{posts: seedPosts()}
	m := loaded(backend)
	_, cmd := m.Update(query.InvalidatedMsg{Keys: []query.Key{query.PostKey("1")}})
	if cmd != nil {
		t.Fatalf("detail invalidation must not refetch the list")
	}
}
