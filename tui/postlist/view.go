package postlist

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/creddit/tui/common"
)

// View renders the post list screen.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("creddit")
	tagline := common.TaglineStyle.Render("posts and comments")
	b.WriteString(title + tagline)
	if m.fetching {
		b.WriteString("  " + m.spinner.View() + common.DimStyle.Render(" refreshing..."))
	}
	b.WriteString("\n\n")

	if m.showForm {
		b.WriteString(m.form.View())
		return b.String()
	}

	if m.searching || m.search.Value() != "" {
		b.WriteString("  " + m.search.View() + "\n\n")
	}

	switch m.state {
	case common.StateLoading:
		b.WriteString(fmt.Sprintf("  %s Loading posts...\n", m.spinner.View()))
	case common.StateError:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n  Press r to retry.\n")
	default:
		b.WriteString(m.renderRows())
	}

	b.WriteString(common.StatusBarStyle.Render("  " + common.HelpLine(
		m.keys.Up, m.keys.Down, m.keys.Open, m.keys.Search,
		m.keys.NewPost, m.keys.Refresh, m.keys.Quit,
	)))
	return b.String()
}

func (m Model) renderRows() string {
	visible := m.Visible()
	if len(visible) == 0 {
		return common.DimStyle.Render("  No posts found") + "\n"
	}

	width := m.width - 6
	if width < 20 {
		width = 70
	}

	// Each row is 4 lines (2 content + 2 border); header and help take ~8.
	perPage := max((m.height-8)/4, 1)
	if m.height == 0 {
		perPage = len(visible)
	}
	cursor := common.Clamp(m.cursor, len(visible))
	start := 0
	if cursor >= perPage {
		start = cursor - perPage + 1
	}
	end := min(start+perPage, len(visible))

	var b strings.Builder
	for i := start; i < end; i++ {
		p := visible[i]
		body := common.PostTitleStyle.Render(common.Truncate(p.Title, width)) + "\n" +
			common.ContentStyle.Render(common.Truncate(p.Description, width))
		style := common.UnselectedStyle
		if i == cursor {
			style = common.SelectedStyle
		}
		b.WriteString(style.Width(width + 2).Render(body))
		b.WriteString("\n")
	}
	if end < len(visible) || start > 0 {
		b.WriteString(common.DimStyle.Render(fmt.Sprintf("  %d/%d", cursor+1, len(visible))) + "\n")
	}
	return b.String()
}
