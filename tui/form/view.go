package form

import (
	"strings"

	"github.com/CrestNiraj12/creddit/tui/common"
)

// View renders the form inside a modal frame.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(common.PostTitleStyle.Render(m.cfg.Title))
	b.WriteString("\n\n")
	b.WriteString(common.LabelStyle.Render(m.cfg.FirstLabel))
	b.WriteString("\n")
	b.WriteString(m.first.View())
	b.WriteString("\n\n")
	b.WriteString(common.LabelStyle.Render(m.cfg.SecondLabel))
	b.WriteString("\n")
	b.WriteString(m.second.View())
	b.WriteString("\n\n")

	if m.submitting {
		b.WriteString(m.spinner.View() + " Submitting...")
	} else {
		help := "tab: switch field • ctrl+s: submit • esc: cancel"
		if m.editor != nil {
			help += " • ctrl+e: $EDITOR"
		}
		b.WriteString(common.DimStyle.Render(help))
	}

	return common.ModalStyle.Render(b.String())
}
