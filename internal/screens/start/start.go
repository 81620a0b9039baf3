package start

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/listenup/internal/quiz"
	"github.com/abhisek/listenup/internal/router"
	"github.com/abhisek/listenup/internal/screen"
	"github.com/abhisek/listenup/internal/ui/components"
	"github.com/abhisek/listenup/internal/ui/layout"
	"github.com/abhisek/listenup/internal/ui/theme"
)

const nameLimit = 32

// StartScreen asks for the player's name and starts the quiz.
type StartScreen struct {
	machine *quiz.Machine
	play    func() screen.Screen
	history func() screen.Screen
	input   components.TextInput
	errMsg  string
}

var _ screen.Screen = (*StartScreen)(nil)
var _ screen.KeyHintProvider = (*StartScreen)(nil)

// New creates a StartScreen. name pre-fills the input; history may be nil
// when history is disabled.
func New(m *quiz.Machine, name string, play, history func() screen.Screen) *StartScreen {
	input := components.NewTextInput("Your name", nameLimit)
	input.SetValue(name)
	return &StartScreen{
		machine: m,
		play:    play,
		history: history,
		input:   input,
	}
}

func (s *StartScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *StartScreen) Title() string {
	return "Welcome"
}

func (s *StartScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Start"}}
	if s.history != nil {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "History"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *StartScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter":
			return s.start()
		case "tab":
			if s.history == nil {
				return s, nil
			}
			next := s.history()
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
		s.errMsg = ""
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *StartScreen) start() (screen.Screen, tea.Cmd) {
	if err := s.machine.Start(s.input.Value()); err != nil {
		if errors.Is(err, quiz.ErrEmptyName) {
			s.errMsg = "Please enter your name to begin."
		} else {
			s.errMsg = err.Error()
		}
		return s, nil
	}
	next := s.play()
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *StartScreen) View(width, height int) string {
	bank := s.machine.Bank()

	title := bank.Title()
	if title == "" {
		title = "Listening Quiz"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("🎧  " + title))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d questions · %d points each", bank.Len(), quiz.PointsPerCorrect)))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("What's your name?"))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	card := theme.Card.Width(min(width-4, 56)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
