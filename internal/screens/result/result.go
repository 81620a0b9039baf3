package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/listenup/internal/quiz"
	"github.com/abhisek/listenup/internal/router"
	"github.com/abhisek/listenup/internal/screen"
	"github.com/abhisek/listenup/internal/session"
	"github.com/abhisek/listenup/internal/ui/components"
	"github.com/abhisek/listenup/internal/ui/layout"
	"github.com/abhisek/listenup/internal/ui/theme"
)

// maxReviewItems bounds the review list so the buttons stay on screen.
const maxReviewItems = 5

// ResultScreen shows the outcome of a finished session and offers retries.
type ResultScreen struct {
	machine *quiz.Machine
	play    func() screen.Screen
	history func() screen.Screen
	summary session.Summary
	buttons []components.Button
	focus   int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)
var _ screen.StatusProvider = (*ResultScreen)(nil)

// New creates a ResultScreen for the finished session in m. play builds the
// screen for a retry; history may be nil when history is disabled.
func New(m *quiz.Machine, play, history func() screen.Screen) *ResultScreen {
	r := &ResultScreen{
		machine: m,
		play:    play,
		history: history,
		summary: session.BuildSummary(m.Snapshot()),
	}
	r.buttons = r.buildButtons()
	r.setFocus(0)
	return r
}

func (r *ResultScreen) buildButtons() []components.Button {
	buttons := []components.Button{
		components.NewButton("Retry all", false, r.retryAll),
	}
	if r.summary.Wrong > 0 {
		buttons = append(buttons, components.NewButton("Retry wrong", false, r.retryWrong))
	}
	if r.history != nil {
		buttons = append(buttons, components.NewButton("History", false, r.openHistory))
	}
	quit := components.NewButton("Quit", false, func() tea.Cmd { return tea.Quit })
	quit.Variant = components.ButtonDanger
	return append(buttons, quit)
}

func (r *ResultScreen) setFocus(i int) {
	r.focus = i
	for j := range r.buttons {
		r.buttons[j].Active = j == i
	}
}

func (r *ResultScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultScreen) Title() string {
	return "Results"
}

func (r *ResultScreen) Status() string {
	return fmt.Sprintf("%s · %d pts", r.summary.Player, r.summary.Score)
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Select"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "r", Description: "Retry all"},
	}
	if r.summary.Wrong > 0 {
		hints = append(hints, layout.KeyHint{Key: "w", Description: "Retry wrong"})
	}
	if r.history != nil {
		hints = append(hints, layout.KeyHint{Key: "h", Description: "History"})
	}
	return append(hints, layout.KeyHint{Key: "q", Description: "Quit"})
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return r, nil
	}

	switch kmsg.String() {
	case "left", "shift+tab":
		if r.focus > 0 {
			r.setFocus(r.focus - 1)
		}
		return r, nil
	case "right", "tab":
		if r.focus < len(r.buttons)-1 {
			r.setFocus(r.focus + 1)
		}
		return r, nil
	case "enter":
		var cmd tea.Cmd
		r.buttons[r.focus], cmd = r.buttons[r.focus].Update(msg)
		return r, cmd
	case "r":
		return r, r.retryAll()
	case "w":
		return r, r.retryWrong()
	case "h":
		return r, r.openHistory()
	case "q":
		return r, tea.Quit
	}
	return r, nil
}

func (r *ResultScreen) retryAll() tea.Cmd {
	r.machine.RetryAll()
	return r.restart()
}

func (r *ResultScreen) retryWrong() tea.Cmd {
	if !r.machine.RetryWrong() {
		return nil
	}
	return r.restart()
}

// restart makes a new play screen the only screen on the stack, so Esc
// never leads back to a finished session.
func (r *ResultScreen) restart() tea.Cmd {
	next := r.play()
	return func() tea.Msg {
		return router.ResetScreenMsg{Screen: next}
	}
}

func (r *ResultScreen) openHistory() tea.Cmd {
	if r.history == nil {
		return nil
	}
	next := r.history()
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (r *ResultScreen) View(width, height int) string {
	s := r.summary
	var b strings.Builder

	b.WriteString(percentStyle(s.Percent).Bold(true).Render(fmt.Sprintf("%d%%", s.Percent)))
	b.WriteString("\n")
	b.WriteString(theme.Title.Render(session.Verdict(s.Percent)))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Well done, %s", s.Player)))
	b.WriteString("\n\n")

	b.WriteString(renderStats(s))
	b.WriteString("\n\n")

	if len(s.Review) > 0 {
		b.WriteString(r.renderReview(min(width-8, 70)))
		b.WriteString("\n\n")
	}

	views := make([]string, 0, len(r.buttons)*2)
	for i, btn := range r.buttons {
		if i > 0 {
			views = append(views, "  ")
		}
		views = append(views, btn.View())
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, views...))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String()))
}

func renderStats(s session.Summary) string {
	stat := func(label string, value string, color lipgloss.Style) string {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(label+" ") + color.Render(value)
	}
	return strings.Join([]string{
		stat("Score", fmt.Sprintf("%d", s.Score), lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)),
		stat("Correct", fmt.Sprintf("%d", s.Correct), theme.Correct),
		stat("Wrong", fmt.Sprintf("%d", s.Wrong), theme.Incorrect),
		stat("Answered", fmt.Sprintf("%d/%d", s.Answered, s.Total), theme.Body),
	}, "   ")
}

func (r *ResultScreen) renderReview(width int) string {
	items := r.summary.Review
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render("Review"))
	b.WriteString("\n")

	shown := items
	if len(shown) > maxReviewItems {
		shown = shown[:maxReviewItems]
	}
	for _, item := range shown {
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.Text).
			Render(fmt.Sprintf("#%d  %s", item.QuestionID, item.Text)))
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render("    ✗ " + item.Response))
		b.WriteString("  ")
		b.WriteString(theme.Correct.Render("✓ " + item.CorrectAnswer))
		b.WriteString("\n")
	}
	if more := len(items) - len(shown); more > 0 {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("… and %d more", more)))
		b.WriteString("\n")
	}

	return theme.Card.Width(width).Align(lipgloss.Left).Render(strings.TrimRight(b.String(), "\n"))
}

func percentStyle(p int) lipgloss.Style {
	switch {
	case p >= 80:
		return lipgloss.NewStyle().Foreground(theme.Success)
	case p >= 50:
		return lipgloss.NewStyle().Foreground(theme.Warning)
	default:
		return lipgloss.NewStyle().Foreground(theme.Error)
	}
}
