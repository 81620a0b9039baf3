package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/listenup/internal/answer"
	"github.com/abhisek/listenup/internal/ui/theme"
)

// Shortcut ranges: digits reach nine options, letters only five so they
// never shadow screen keys such as f, g or ?.
const (
	MaxDigitOptions  = 9
	MaxLetterOptions = 5
)

// MultiChoice is a multiple-choice selector. Options can be picked with
// the arrows and Enter, a digit (1-9) or a letter (a-e).
type MultiChoice struct {
	Options     []string
	Correct     string
	Selected    int
	Submitted   bool
	ChosenIndex int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []string, correct string) MultiChoice {
	return MultiChoice{
		Options:     options,
		Correct:     correct,
		ChosenIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, nil
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, nil
	case "enter":
		if len(m.Options) > 0 {
			m.choose(m.Selected)
		}
		return m, nil
	}

	if i, ok := shortcutIndex(key); ok && i < len(m.Options) {
		m.Selected = i
		m.choose(i)
	}
	return m, nil
}

func (m *MultiChoice) choose(i int) {
	m.Submitted = true
	m.ChosenIndex = i
}

// shortcutIndex maps "1".."9" and "a".."e" to an option index.
func shortcutIndex(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	switch {
	case c >= '1' && c < '1'+MaxDigitOptions:
		return int(c - '1'), true
	case c >= 'a' && c < 'a'+MaxLetterOptions:
		return int(c - 'a'), true
	}
	return 0, false
}

// Lock shows the component as already answered with response.
func (m *MultiChoice) Lock(response string) {
	m.Submitted = true
	m.ChosenIndex = -1
	for i, opt := range m.Options {
		if opt == response {
			m.ChosenIndex = i
			m.Selected = i
			break
		}
	}
}

// Chosen returns the picked option text.
func (m MultiChoice) Chosen() (string, bool) {
	if !m.Submitted || m.ChosenIndex < 0 || m.ChosenIndex >= len(m.Options) {
		return "", false
	}
	return m.Options[m.ChosenIndex], true
}

// Label returns the letter shown next to option i.
func Label(i int) string {
	return string(rune('A' + i))
}

// View renders the options, colored by result once submitted.
func (m MultiChoice) View() string {
	var b strings.Builder

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, Label(i), opt)

		var style lipgloss.Style
		switch {
		case m.Submitted && answer.Match(opt, m.Correct):
			style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
			line += "  ✓"
		case m.Submitted && i == m.ChosenIndex:
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
			line += "  ✗"
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		default:
			style = lipgloss.NewStyle().Foreground(theme.Text)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect returns true if the chosen option matches the correct answer.
func (m MultiChoice) IsCorrect() bool {
	chosen, ok := m.Chosen()
	return ok && answer.Match(chosen, m.Correct)
}
