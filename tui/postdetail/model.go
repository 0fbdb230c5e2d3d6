// Package postdetail shows one post with its comments and runs the
// delete-post, add-comment and delete-comment mutations.
package postdetail

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/creddit/domain"
	"github.com/CrestNiraj12/creddit/infra/editor"
	"github.com/CrestNiraj12/creddit/query"
	"github.com/CrestNiraj12/creddit/tui/common"
	"github.com/CrestNiraj12/creddit/tui/form"
)

// --- Messages ---
//
// Every async result carries the instance number of the screen that
// started it. The root drops results whose screen is no longer mounted.

// PostLoadedMsg is sent when the detail fetch completes successfully.
type PostLoadedMsg struct {
	Screen int
	ReqSeq int
	Post   domain.Post
}

// PostErrorMsg is sent when the detail fetch fails.
type PostErrorMsg struct {
	Screen int
	ReqSeq int
	Err    error
}

// PostDeletedMsg is the outcome of deleting the open post.
type PostDeletedMsg struct {
	Screen int
	Err    error
}

// CommentAddedMsg is the outcome of adding a comment.
type CommentAddedMsg struct {
	Screen  int
	Comment domain.Comment
	Err     error
}

// CommentDeletedMsg is the outcome of deleting a comment.
type CommentDeletedMsg struct {
	Screen int
	ID     string
	Err    error
}

// BackMsg asks the root to pop this screen.
type BackMsg struct {
	Screen int
}

func (m PostLoadedMsg) Target() int     { return m.Screen }
func (m PostErrorMsg) Target() int      { return m.Screen }
func (m PostDeletedMsg) Target() int    { return m.Screen }
func (m CommentAddedMsg) Target() int   { return m.Screen }
func (m CommentDeletedMsg) Target() int { return m.Screen }
func (m BackMsg) Target() int           { return m.Screen }

const (
	msgCommentFieldsRequired = "Please fill in both fields"
	msgPostDeleted           = "Post has been deleted"
	msgCommentAdded          = "Comment added"
	msgCommentDeleted        = "Comment has been deleted"
)

// --- Model ---

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmPost
	confirmComment
)

// Model holds the state for one post detail screen.
type Model struct {
	queries   *query.Client
	log       zerolog.Logger
	keys      common.KeyMap
	id        string
	screen    int
	state     common.ScreenState
	post      domain.Post
	err       error
	fetching  bool
	reqSeq    int
	cursor    int // selected comment
	confirm   confirmKind
	commentID string // comment awaiting delete confirmation
	deleting  bool
	form      form.Model
	showForm  bool
	spinner   spinner.Model
	width     int
	height    int
}

// New creates a detail screen for post id. screen must be unique per
// mounted instance.
func New(id string, screen int, queries *query.Client, ed *editor.EnvEditor, logger zerolog.Logger) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	return Model{
		queries: queries,
		log:     logger.With().Str("screen", "postdetail").Str("post_id", id).Int("instance", screen).Logger(),
		keys:    common.DefaultKeyMap(),
		id:      id,
		screen:  screen,
		state:   common.StateLoading,
		form: form.New(form.Config{
			Title:             "Add comment",
			FirstLabel:        "Username",
			FirstPlaceholder:  "Your name",
			SecondLabel:       "Comment",
			SecondPlaceholder: "Say something",
		}, ed),
		spinner: s,
	}
}

// Init starts the detail fetch under the current request sequence.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(false, m.reqSeq), m.spinner.Tick)
}

// ID returns the post id this screen shows.
func (m Model) ID() string { return m.id }

// Screen returns the instance number.
func (m Model) Screen() int { return m.screen }

// Post returns the last loaded post.
func (m Model) Post() domain.Post { return m.post }

// CapturingInput reports whether keys are going to the comment form.
func (m Model) CapturingInput() bool { return m.showForm }

// startFetch bumps the request sequence so older responses are dropped.
// force bypasses the cache.
func (m Model) startFetch(force bool) (Model, tea.Cmd) {
	m.reqSeq++
	if m.state == common.StateReady {
		m.fetching = true
	} else {
		m.state = common.StateLoading
	}
	return m, m.fetch(force, m.reqSeq)
}

func (m Model) fetch(force bool, seq int) tea.Cmd {
	queries, screen, id := m.queries, m.screen, m.id
	return func() tea.Msg {
		var (
			p   domain.Post
			err error
		)
		if force {
			p, err = queries.RefetchPost(context.Background(), id)
		} else {
			p, err = queries.Post(context.Background(), id)
		}
		if err != nil {
			return PostErrorMsg{Screen: screen, ReqSeq: seq, Err: err}
		}
		return PostLoadedMsg{Screen: screen, ReqSeq: seq, Post: p}
	}
}

func (m Model) deletePost() tea.Cmd {
	queries, screen, id := m.queries, m.screen, m.id
	return func() tea.Msg {
		err := queries.DeletePost(context.Background(), id)
		return PostDeletedMsg{Screen: screen, Err: err}
	}
}

func (m Model) addComment(in domain.NewComment) tea.Cmd {
	queries, screen, id := m.queries, m.screen, m.id
	return func() tea.Msg {
		c, err := queries.AddComment(context.Background(), id, in)
		return CommentAddedMsg{Screen: screen, Comment: c, Err: err}
	}
}

func (m Model) deleteComment(commentID string) tea.Cmd {
	queries, screen := m.queries, m.screen
	return func() tea.Msg {
		err := queries.DeleteComment(context.Background(), commentID)
		return CommentDeletedMsg{Screen: screen, ID: commentID, Err: err}
	}
}
