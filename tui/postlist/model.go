// Package postlist is the home screen: all posts, a title filter and the
// new-post modal.
package postlist

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
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

// PostsLoadedMsg is sent when the list fetch completes successfully.
type PostsLoadedMsg struct {
	Posts  []domain.Post
	ReqSeq int
}

// PostsErrorMsg is sent when the list fetch fails.
type PostsErrorMsg struct {
	Err    error
	ReqSeq int
}

// PostCreatedMsg is the outcome of the create-post mutation.
type PostCreatedMsg struct {
	Post domain.Post
	Err  error
}

// OpenPostMsg asks the root to push the detail screen for ID.
type OpenPostMsg struct {
	ID string
}

const (
	msgPostFieldsRequired = "Both title and description are required."
	msgCreateFailed       = "Something went wrong. Please try again."
)

// --- Model ---

// Model holds the state for the post list screen.
type Model struct {
	queries   *query.Client
	log       zerolog.Logger
	keys      common.KeyMap
	state     common.ScreenState
	posts     []domain.Post // server order, never filtered in place
	err       error
	fetching  bool
	reqSeq    int
	cursor    int
	search    textinput.Model
	searching bool
	form      form.Model
	showForm  bool
	spinner   spinner.Model
	width     int
	height    int
}

// New creates a post list model. ed may be nil.
func New(queries *query.Client, ed *editor.EnvEditor, logger zerolog.Logger) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search posts"
	ti.CharLimit = 100

	return Model{
		queries: queries,
		log:     logger.With().Str("screen", "postlist").Logger(),
		keys:    common.DefaultKeyMap(),
		state:   common.StateLoading,
		search:  ti,
		form: form.New(form.Config{
			Title:             "New post",
			FirstLabel:        "Title",
			FirstPlaceholder:  "Title",
			SecondLabel:       "Description",
			SecondPlaceholder: "What's on your mind?",
		}, ed),
		spinner: s,
	}
}

// Init starts the initial list fetch under the current request sequence.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(false, m.reqSeq), m.spinner.Tick)
}

// CapturingInput reports whether keys are going to a text field, so the
// root must not treat "q" as quit.
func (m Model) CapturingInput() bool {
	return m.showForm || m.searching
}

// Posts returns the cached posts in server order.
func (m Model) Posts() []domain.Post { return m.posts }

// Visible returns what the list currently renders, in display order.
func (m Model) Visible() []domain.Post {
	return visiblePosts(m.posts, m.search.Value())
}

// startFetch bumps the request sequence and returns the fetch command.
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
	queries := m.queries
	return func() tea.Msg {
		var (
			posts []domain.Post
			err   error
		)
		if force {
			posts, err = queries.RefetchPosts(context.Background())
		} else {
			posts, err = queries.Posts(context.Background())
		}
		if err != nil {
			return PostsErrorMsg{Err: err, ReqSeq: seq}
		}
		return PostsLoadedMsg{Posts: posts, ReqSeq: seq}
	}
}

func (m Model) createPost(in domain.NewPost) tea.Cmd {
	queries := m.queries
	return func() tea.Msg {
		p, err := queries.CreatePost(context.Background(), in)
		return PostCreatedMsg{Post: p, Err: err}
	}
}
