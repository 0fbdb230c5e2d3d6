package postdetail

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/creddit/query"
	"github.com/CrestNiraj12/creddit/tui/alert"
)

// outcome maps a mutation result to the alert it raises and whether it
// succeeded. ok is false for anything that is not a mutation result.
func outcome(msg tea.Msg) (show tea.Cmd, succeeded, ok bool) {
	switch msg := msg.(type) {
	case PostDeletedMsg:
		if msg.Err != nil {
			return alert.Show(alert.Failure, "Error", "Failed to delete post: "+msg.Err.Error()), false, true
		}
		return alert.Show(alert.Success, "Success", msgPostDeleted), true, true
	case CommentAddedMsg:
		if msg.Err != nil {
			return alert.Show(alert.Failure, "Error", "Failed to add comment: "+msg.Err.Error()), false, true
		}
		return alert.Show(alert.Success, "Success", msgCommentAdded), true, true
	case CommentDeletedMsg:
		if msg.Err != nil {
			return alert.Show(alert.Failure, "Error", "Failed to delete comment: "+msg.Err.Error()), false, true
		}
		return alert.Show(alert.Success, "Success", msgCommentDeleted), true, true
	}
	return nil, false, false
}

// Settle handles a mutation result whose screen has been popped. The
// alert still shows and a successful write still invalidates, so other
// mounted screens refetch. It returns nil for any other message.
func Settle(msg tea.Msg) tea.Cmd {
	show, succeeded, ok := outcome(msg)
	if !ok {
		return nil
	}
	if !succeeded {
		return show
	}
	return tea.Batch(show, invalidated())
}

func invalidated() tea.Cmd {
	return func() tea.Msg {
		return query.InvalidatedMsg{Keys: query.MutationInvalidates()}
	}
}
