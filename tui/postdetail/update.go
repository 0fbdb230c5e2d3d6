package postdetail

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

// Update handles messages for the detail screen.
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
		return m, nil

	case PostLoadedMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.post = msg.Post
		m.state = common.StateReady
		m.err = nil
		m.fetching = false
		m.cursor = common.Clamp(m.cursor, len(m.post.Comments))
		return m, nil

	case PostErrorMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.log.Warn().Err(msg.Err).Msg("loading post failed")
		m.err = msg.Err
		m.state = common.StateError
		m.fetching = false
		return m, nil

	case query.InvalidatedMsg:
		// Mutations only invalidate the list; this screen refetches itself.
		if !msg.Has(query.PostKey(m.id)) {
			return m, nil
		}
		return m.startFetch(false)

	case PostDeletedMsg:
		m.deleting = false
		show, _, _ := outcome(msg)
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("deleting post failed")
			return m, show
		}
		return m, tea.Batch(show, m.back(), invalidated())

	case CommentAddedMsg:
		var cmd tea.Cmd
		m.form, cmd = m.form.SetSubmitting(false)
		show, _, _ := outcome(msg)
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("adding comment failed")
			return m, tea.Batch(cmd, show)
		}
		m.form = m.form.Reset()
		m.showForm = false
		var fetch tea.Cmd
		m, fetch = m.startFetch(true)
		return m, tea.Batch(cmd, show, fetch, invalidated())

	case CommentDeletedMsg:
		m.deleting = false
		show, _, _ := outcome(msg)
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Str("comment_id", msg.ID).Msg("deleting comment failed")
			return m, show
		}
		var fetch tea.Cmd
		m, fetch = m.startFetch(true)
		return m, tea.Batch(show, fetch, invalidated())

	case form.SubmitMsg:
		if !m.showForm || m.form.Submitting() {
			return m, nil
		}
		in := domain.NewComment{Username: msg.First, Comment: msg.Second}
		if err := in.Validate(); err != nil {
			return m, alert.Show(alert.Failure, "Validation", msgCommentFieldsRequired)
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.SetSubmitting(true)
		return m, tea.Batch(cmd, m.addComment(in))

	case form.InvalidMsg:
		return m, alert.Show(alert.Failure, "Validation", msgCommentFieldsRequired)

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
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	if m.confirm != confirmNone {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			kind := m.confirm
			m.confirm = confirmNone
			m.deleting = true
			if kind == confirmPost {
				return m, m.deletePost()
			}
			return m, m.deleteComment(m.commentID)
		case key.Matches(msg, m.keys.Cancel):
			m.confirm = confirmNone
			m.commentID = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		return m, m.back()

	case key.Matches(msg, m.keys.Refresh):
		if m.fetching {
			return m, nil
		}
		return m.startFetch(true)
	}

	if m.state != common.StateReady || m.deleting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.DeletePost):
		m.confirm = confirmPost
		return m, nil

	case key.Matches(msg, m.keys.DeleteComment):
		if len(m.post.Comments) == 0 {
			return m, nil
		}
		m.commentID = m.post.Comments[common.Clamp(m.cursor, len(m.post.Comments))].ID
		m.confirm = confirmComment
		return m, nil

	case key.Matches(msg, m.keys.AddComment):
		m.showForm = true
		var cmd tea.Cmd
		m.form, cmd = m.form.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.post.Comments)-1 {
			m.cursor++
		}
	}
	return m, nil
}

func (m Model) back() tea.Cmd {
	screen := m.screen
	return func() tea.Msg { return BackMsg{Screen: screen} }
}
