package postlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/creddit/domain"
	"github.com/CrestNiraj12/creddit/query"
	"github.com/CrestNiraj12/creddit/tui/alert"
	"github.com/CrestNiraj12/creddit/tui/common"
	"github.com/CrestNiraj12/creddit/tui/form"
)

// Update handles messages for the post list screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd, formCmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.form, formCmd = m.form.Update(msg)
		return m, tea.Batch(cmd, formCmd)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.form.SetWidth(msg.Width)
		m.search.Width = min(max(msg.Width-8, 10), 60)
		return m, nil

	case PostsLoadedMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.posts = msg.Posts
		m.state = common.StateReady
		m.err = nil
		m.fetching = false
		m.cursor = common.Clamp(m.cursor, len(m.Visible()))
		return m, nil

	case PostsErrorMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.log.Warn().Err(msg.Err).Msg("loading posts failed")
		m.err = msg.Err
		m.state = common.StateError
		m.fetching = false
		return m, nil

	case query.InvalidatedMsg:
		if !msg.Has(query.PostsKey()) {
			return m, nil
		}
		return m.startFetch(false)

	case PostCreatedMsg:
		var cmd tea.Cmd
		m.form, cmd = m.form.SetSubmitting(false)
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("creating post failed")
			return m, tea.Batch(cmd, alert.Show(alert.Failure, "Error", msgCreateFailed))
		}
		m.form = m.form.Reset()
		m.showForm = false
		return m, tea.Batch(cmd, invalidated())

	case form.SubmitMsg:
		if !m.showForm || m.form.Submitting() {
			return m, nil
		}
		in := domain.NewPost{Title: msg.First, Description: msg.Second}
		if err := in.Validate(); err != nil {
			return m, alert.Show(alert.Failure, "Validation", msgPostFieldsRequired)
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.SetSubmitting(true)
		return m, tea.Batch(cmd, m.createPost(in))

	case form.InvalidMsg:
		return m, alert.Show(alert.Failure, "Validation", msgPostFieldsRequired)

	case form.CancelMsg:
		m.showForm = false
		return m, nil

	case form.EditorErrorMsg:
		return m, alert.Show(alert.Failure, "Editor", msg.Err.Error())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.showForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.search.Reset()
			m.search.Blur()
			m.cursor = 0
			return m, nil
		case "enter", "down", "up":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.cursor = 0
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.NewPost):
		if m.state != common.StateReady {
			return m, nil
		}
		m.showForm = true
		var cmd tea.Cmd
		m.form, cmd = m.form.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Refresh):
		if m.fetching {
			return m, nil
		}
		return m.startFetch(true)

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.Visible())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if m.state != common.StateReady {
			return m, nil
		}
		visible := m.Visible()
		if len(visible) == 0 {
			return m, nil
		}
		id := visible[common.Clamp(m.cursor, len(visible))].ID
		return m, func() tea.Msg { return OpenPostMsg{ID: id} }

	case msg.String() == "esc":
		if m.search.Value() != "" {
			m.search.Reset()
			m.cursor = 0
		}
		return m, nil
	}

	return m, nil
}

func invalidated() tea.Cmd {
	return func() tea.Msg {
		return query.InvalidatedMsg{Keys: query.MutationInvalidates()}
	}
}
