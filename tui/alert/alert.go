// Package alert renders blocking notifications. While an alert is visible
// it swallows every key until dismissed.
package alert

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/creddit/tui/common"
)

// Kind selects the alert's accent.
type Kind int

const (
	Info Kind = iota
	Success
	Failure
)

// ShowMsg queues an alert.
type ShowMsg struct {
	Title   string
	Message string
	Kind    Kind
}

// DismissedMsg is sent when the last queued alert is closed.
type DismissedMsg struct{}

// Show returns a command delivering a ShowMsg.
func Show(kind Kind, title, message string) tea.Cmd {
	return func() tea.Msg {
		return ShowMsg{Title: title, Message: message, Kind: kind}
	}
}

// Model is a FIFO of pending alerts; only the head is shown.
type Model struct {
	queue []ShowMsg
	width int
}

// New creates an empty alert model.
func New() Model { return Model{} }

// Visible reports whether an alert is on screen.
func (m Model) Visible() bool { return len(m.queue) > 0 }

// Current returns the alert on screen.
func (m Model) Current() (ShowMsg, bool) {
	if len(m.queue) == 0 {
		return ShowMsg{}, false
	}
	return m.queue[0], true
}

// SetWidth limits the alert box width.
func (m *Model) SetWidth(w int) { m.width = w }

// Update queues ShowMsg and dismisses on enter/esc.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowMsg:
		m.queue = append(m.queue, msg)
	case tea.KeyMsg:
		if len(m.queue) == 0 {
			return m, nil
		}
		switch msg.String() {
		case "enter", "esc", " ":
			m.queue = m.queue[1:]
			if len(m.queue) == 0 {
				return m, func() tea.Msg { return DismissedMsg{} }
			}
		}
	}
	return m, nil
}

// View renders the current alert or nothing.
func (m Model) View() string {
	cur, ok := m.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	title := cur.Title
	switch cur.Kind {
	case Success:
		b.WriteString(common.SuccessStyle.Render(title))
	case Failure:
		b.WriteString(common.ErrorStyle.Render(title))
	default:
		b.WriteString(common.PostTitleStyle.Render(title))
	}
	if cur.Message != "" {
		b.WriteString("\n\n")
		b.WriteString(common.ContentStyle.Render(cur.Message))
	}
	b.WriteString("\n\n")
	b.WriteString(common.DimStyle.Render("enter: OK"))

	style := common.AlertStyle
	if m.width > 8 {
		style = style.MaxWidth(m.width - 2).Width(min(m.width-4, 60))
	}
	return style.Render(b.String())
}
