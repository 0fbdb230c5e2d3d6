// Package form is the two-field modal used to create posts and comments.
package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/creddit/infra/editor"
)

// --- Messages ---

// SubmitMsg carries the trimmed field values.
type SubmitMsg struct {
	First  string
	Second string
}

// InvalidMsg is sent on submit when either field is empty.
type InvalidMsg struct{}

// CancelMsg is sent when the user dismisses the form.
type CancelMsg struct{}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// EditorErrorMsg reports a failure to run $EDITOR. Field data is untouched.
type EditorErrorMsg struct {
	Err error
}

// --- Model ---

// Config labels the form.
type Config struct {
	Title             string
	FirstLabel        string
	FirstPlaceholder  string
	SecondLabel       string
	SecondPlaceholder string
}

type field int

const (
	firstField field = iota
	secondField
)

// Model holds both fields and the submitting flag.
type Model struct {
	cfg        Config
	editor     *editor.EnvEditor
	first      textinput.Model
	second     textarea.Model
	focus      field
	submitting bool
	spinner    spinner.Model
	width      int
}

// New creates a form. ed may be nil, which disables ctrl+e.
func New(cfg Config, ed *editor.EnvEditor) Model {
	ti := textinput.New()
	ti.Placeholder = cfg.FirstPlaceholder
	ti.CharLimit = 200
	ti.Width = 56

	ta := textarea.New()
	ta.Placeholder = cfg.SecondPlaceholder
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(5)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	return Model{
		cfg:     cfg,
		editor:  ed,
		first:   ti,
		second:  ta,
		spinner: s,
	}
}

// Focus puts the cursor in the first field.
func (m Model) Focus() (Model, tea.Cmd) {
	m.focus = firstField
	m.second.Blur()
	return m, m.first.Focus()
}

// Reset clears both fields and the submitting flag.
func (m Model) Reset() Model {
	m.first.Reset()
	m.second.Reset()
	m.submitting = false
	m.focus = firstField
	m.second.Blur()
	m.first.Blur()
	return m
}

// SetValues fills both fields.
func (m *Model) SetValues(first, second string) {
	m.first.SetValue(first)
	m.second.SetValue(second)
}

// Values returns the raw field contents.
func (m Model) Values() (string, string) {
	return m.first.Value(), m.second.Value()
}

// Submitting reports whether a submit is in flight.
func (m Model) Submitting() bool { return m.submitting }

// SetSubmitting toggles the in-flight state and starts the spinner.
func (m Model) SetSubmitting(on bool) (Model, tea.Cmd) {
	m.submitting = on
	if on {
		return m, m.spinner.Tick
	}
	return m, nil
}

// SetWidth fits both fields to the available width.
func (m *Model) SetWidth(w int) {
	m.width = w
	inner := min(max(w-10, 20), 72)
	m.first.Width = inner - 4
	m.second.SetWidth(inner)
}

// Update handles typing, field switching, submit and cancel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case editorFinishedMsg:
		if msg.err != nil {
			return m, emit(EditorErrorMsg{Err: fmt.Errorf("editor: %w", msg.err)})
		}
		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, emit(EditorErrorMsg{Err: err})
		}
		m.second.SetValue(content)
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m.Reset(), emit(CancelMsg{})

		case "ctrl+s":
			first := strings.TrimSpace(m.first.Value())
			second := strings.TrimSpace(m.second.Value())
			if first == "" || second == "" {
				return m, emit(InvalidMsg{})
			}
			return m, emit(SubmitMsg{First: first, Second: second})

		case "tab", "shift+tab":
			return m.toggleFocus()

		case "ctrl+e":
			if m.editor == nil {
				return m, nil
			}
			return m, m.launchEditor()
		}
	}

	var cmd tea.Cmd
	if m.focus == firstField {
		m.first, cmd = m.first.Update(msg)
	} else {
		m.second, cmd = m.second.Update(msg)
	}
	return m, cmd
}

func (m Model) toggleFocus() (Model, tea.Cmd) {
	if m.focus == firstField {
		m.focus = secondField
		m.first.Blur()
		return m, m.second.Focus()
	}
	m.focus = firstField
	m.second.Blur()
	return m, m.first.Focus()
}

// launchEditor opens the multi-line field in $EDITOR via tea.ExecProcess
// so Bubble Tea releases the terminal while it runs.
func (m Model) launchEditor() tea.Cmd {
	cmd, tmpPath, err := m.editor.Cmd(m.second.Value(), m.cfg.SecondLabel)
	if err != nil {
		return emit(EditorErrorMsg{Err: fmt.Errorf("preparing editor: %w", err)})
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// emit wraps a message into a tea.Cmd for immediate delivery.
func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
