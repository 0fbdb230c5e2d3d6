package postdetail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/creddit/tui/common"
)

// View renders the post and its comments.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(common.AppTitleStyle.Render("creddit") + common.TaglineStyle.Render("post"))
	if m.fetching || m.deleting {
		b.WriteString("  " + m.spinner.View())
	}
	b.WriteString("\n\n")

	if m.showForm {
		b.WriteString(m.form.View())
		return b.String()
	}

	switch m.state {
	case common.StateLoading:
		b.WriteString(fmt.Sprintf("  %s Loading post...\n", m.spinner.View()))
	case common.StateError:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n  Press r to retry, esc to go back.\n")
	default:
		b.WriteString(m.renderPost())
	}

	switch m.confirm {
	case confirmPost:
		b.WriteString("\n" + common.ConfirmStyle.Render("Delete this post? (y/n)") + "\n")
	case confirmComment:
		b.WriteString("\n" + common.ConfirmStyle.Render("Delete this comment? (y/n)") + "\n")
	}

	b.WriteString(common.StatusBarStyle.Render("  " + common.HelpLine(
		m.keys.Up, m.keys.Down, m.keys.AddComment, m.keys.DeleteComment,
		m.keys.DeletePost, m.keys.Refresh, m.keys.Back,
	)))
	return b.String()
}

func (m Model) renderPost() string {
	width := m.width - 4
	if width < 20 {
		width = 76
	}
	text := common.ContentStyle.Width(width)

	var b strings.Builder
	b.WriteString("  " + common.PostTitleStyle.Render(m.post.Title) + "\n\n")
	b.WriteString(text.PaddingLeft(2).Render(m.post.Description) + "\n\n")
	b.WriteString(common.LabelStyle.Render(fmt.Sprintf("  Comments (%d)", len(m.post.Comments))) + "\n")

	if len(m.post.Comments) == 0 {
		b.WriteString(common.DimStyle.Render("  No comments yet.") + "\n")
		return b.String()
	}

	cursor := common.Clamp(m.cursor, len(m.post.Comments))
	for i, c := range m.post.Comments {
		marker := "  "
		if i == cursor {
			marker = common.ConfirmStyle.UnsetPadding().Render("▶ ")
		}
		line := common.AuthorStyle.Render(c.Username) + ": " +
			common.ContentStyle.Render(common.Truncate(c.Comment, max(width-ansi.StringWidth(c.Username)-4, 10)))
		b.WriteString(marker + line + "\n")
	}
	return b.String()
}
