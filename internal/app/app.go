package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/listenup/internal/question"
	"github.com/abhisek/listenup/internal/quiz"
	"github.com/abhisek/listenup/internal/router"
	"github.com/abhisek/listenup/internal/screen"
	"github.com/abhisek/listenup/internal/screens/history"
	"github.com/abhisek/listenup/internal/screens/play"
	"github.com/abhisek/listenup/internal/screens/result"
	"github.com/abhisek/listenup/internal/screens/start"
	"github.com/abhisek/listenup/internal/screens/welcome"
	"github.com/abhisek/listenup/internal/session"
	"github.com/abhisek/listenup/internal/store"
	"github.com/abhisek/listenup/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Bank   *question.Bank
	Repo   store.EventRepo
	Logger zerolog.Logger

	// Player pre-fills the name prompt. With QuickStart set the session
	// starts right away and the splash and name prompt are skipped.
	Player     string
	QuickStart bool

	HistoryEnabled bool
	HistoryLimit   int
}

// navigator builds screens on demand so they can refer to each other
// without import cycles.
type navigator struct {
	opts     Options
	machine  *quiz.Machine
	recorder *session.Recorder
}

func newNavigator(opts Options) *navigator {
	if opts.Repo == nil || !opts.HistoryEnabled {
		opts.Repo = store.NopEventRepo{}
	}
	return &navigator{
		opts:     opts,
		machine:  quiz.New(opts.Bank),
		recorder: session.NewRecorder(opts.Repo, opts.Logger),
	}
}

func (n *navigator) initial() screen.Screen {
	if n.opts.QuickStart {
		if err := n.machine.Start(n.opts.Player); err == nil {
			return n.play()
		}
	}
	return welcome.New(n.start)
}

func (n *navigator) start() screen.Screen {
	return start.New(n.machine, n.opts.Player, n.play, n.historyFactory())
}

func (n *navigator) play() screen.Screen {
	return play.New(n.machine, n.recorder, n.result)
}

func (n *navigator) result() screen.Screen {
	return result.New(n.machine, n.play, n.historyFactory())
}

func (n *navigator) history() screen.Screen {
	return history.New(n.opts.Repo, n.machine.Bank(), n.opts.HistoryLimit)
}

func (n *navigator) historyFactory() func() screen.Screen {
	if !n.opts.HistoryEnabled {
		return nil
	}
	return n.history
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	log    zerolog.Logger
	width  int
	height int
}

// newAppModel creates a new AppModel with the first screen for opts.
func newAppModel(opts Options) AppModel {
	nav := newNavigator(opts)
	return AppModel{
		router: router.New(nav.initial()),
		log:    opts.Logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.log.Debug().Msg("quit requested")
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			// A root screen may use Esc itself, e.g. to close a modal.
		}

	case router.PushScreenMsg:
		m.log.Debug().Str("screen", msg.Screen.Title()).Msg("push screen")
	case router.ReplaceScreenMsg:
		m.log.Debug().Str("screen", msg.Screen.Title()).Msg("replace screen")
	case router.ResetScreenMsg:
		m.log.Debug().Str("screen", msg.Screen.Title()).Msg("reset screen")
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	active := m.router.Active()

	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if hints := kp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	ev := opts.Logger.Info().Bool("history", opts.HistoryEnabled)
	if opts.Bank != nil {
		ev = ev.Int("questions", opts.Bank.Len())
	}
	ev.Msg("starting tui")

	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
