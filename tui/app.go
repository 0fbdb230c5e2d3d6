package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/creddit/infra/editor"
	"github.com/CrestNiraj12/creddit/query"
	"github.com/CrestNiraj12/creddit/tui/alert"
	"github.com/CrestNiraj12/creddit/tui/common"
	"github.com/CrestNiraj12/creddit/tui/postdetail"
	"github.com/CrestNiraj12/creddit/tui/postlist"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Queries *query.Client
	Editor  *editor.EnvEditor // nil disables $EDITOR in forms
	Logger  zerolog.Logger
}

// targeted is implemented by results addressed to one detail screen.
type targeted interface {
	Target() int
}

// App is the root Bubble Tea model. The list screen is always mounted at
// the bottom; detail screens stack on top of it.
type App struct {
	deps       Deps
	log        zerolog.Logger
	keys       common.KeyMap
	list       postlist.Model
	stack      []postdetail.Model
	nextScreen int
	alert      alert.Model
	width      int
	height     int
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps:  deps,
		log:   deps.Logger.With().Str("component", "tui").Logger(),
		keys:  common.DefaultKeyMap(),
		list:  postlist.New(deps.Queries, deps.Editor, deps.Logger),
		alert: alert.New(),
	}
}

// Init starts the list fetch.
func (a App) Init() tea.Cmd {
	return a.list.Init()
}

// Update routes messages to the list, the detail stack and the alert.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.alert.SetWidth(msg.Width)
		cmds := make([]tea.Cmd, 0, len(a.stack)+1)
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		cmds = append(cmds, cmd)
		for i := range a.stack {
			a.stack[i], cmd = a.stack[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case alert.ShowMsg:
		a.log.Debug().Str("title", msg.Title).Str("message", msg.Message).Msg("alert")
		a.alert, _ = a.alert.Update(msg)
		return a, nil

	case alert.DismissedMsg:
		return a, nil

	case postlist.OpenPostMsg:
		a.nextScreen++
		d := postdetail.New(msg.ID, a.nextScreen, a.deps.Queries, a.deps.Editor, a.deps.Logger)
		if a.width > 0 {
			d, _ = d.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		}
		a.stack = append(a.stack, d)
		a.log.Debug().Str("post_id", msg.ID).Int("screen", a.nextScreen).Msg("open post")
		return a, d.Init()

	case postlist.PostsLoadedMsg, postlist.PostsErrorMsg, postlist.PostCreatedMsg:
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return a, cmd

	case query.InvalidatedMsg, spinner.TickMsg:
		return a.broadcast(msg)

	case targeted:
		return a.routeTargeted(msg)
	}

	return a.updateTop(msg)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		return a, tea.Quit
	}
	if a.alert.Visible() {
		var cmd tea.Cmd
		a.alert, cmd = a.alert.Update(msg)
		return a, cmd
	}
	if len(a.stack) == 0 && key.Matches(msg, a.keys.Quit) && !a.list.CapturingInput() {
		return a, tea.Quit
	}
	return a.updateTop(msg)
}

func (a App) updateTop(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if n := len(a.stack); n > 0 {
		a.stack[n-1], cmd = a.stack[n-1].Update(msg)
		return a, cmd
	}
	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

// broadcast delivers msg to every mounted screen.
func (a App) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, len(a.stack)+1)
	var cmd tea.Cmd
	a.list, cmd = a.list.Update(msg)
	cmds = append(cmds, cmd)
	for i := range a.stack {
		a.stack[i], cmd = a.stack[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

// routeTargeted delivers a detail-screen result to its screen. Once that
// screen has been popped, reads are dropped and writes are settled here.
func (a App) routeTargeted(msg targeted) (tea.Model, tea.Cmd) {
	idx := -1
	for i, d := range a.stack {
		if d.Screen() == msg.Target() {
			idx = i
			break
		}
	}
	if idx < 0 {
		// The screen is gone but a finished write still has to be announced
		// and still invalidates what the remaining screens show.
		if cmd := postdetail.Settle(msg); cmd != nil {
			a.log.Debug().Int("screen", msg.Target()).Msgf("settling %T for unmounted screen", msg)
			return a, cmd
		}
		a.log.Debug().Int("screen", msg.Target()).Msgf("dropping %T for unmounted screen", msg)
		return a, nil
	}

	if _, ok := msg.(postdetail.BackMsg); ok {
		a.stack = append(a.stack[:idx:idx], a.stack[idx+1:]...)
		return a, nil
	}

	var cmd tea.Cmd
	a.stack[idx], cmd = a.stack[idx].Update(msg)
	return a, cmd
}

// View renders the top screen, or the alert over it.
func (a App) View() string {
	var s string
	if n := len(a.stack); n > 0 {
		s = a.stack[n-1].View()
	} else {
		s = a.list.View()
	}

	if !a.alert.Visible() {
		return s
	}
	if a.width > 0 && a.height > 0 {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.alert.View())
	}
	return s + "\n\n" + a.alert.View()
}
