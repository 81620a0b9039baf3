package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/listenup/internal/question"
	"github.com/abhisek/listenup/internal/ui/components"
	"github.com/abhisek/listenup/internal/ui/theme"
)

const maxCardWidth = 72

func (p *PlayScreen) View(width, height int) string {
	if p.overview != nil {
		return p.renderOverview(width, height)
	}

	q, ok := p.machine.Current()
	if !ok {
		return p.renderEmpty(width, height)
	}

	cardWidth := min(width-4, maxCardWidth)

	sections := []string{
		p.renderTopBar(cardWidth),
		p.renderProgress(cardWidth),
		"",
		p.renderCard(q, cardWidth),
		"",
		p.renderActions(q),
	}
	if p.notice != "" {
		sections = append(sections, "", lipgloss.NewStyle().Foreground(theme.Warning).Render(p.notice))
	}

	rendered := make([]string, len(sections))
	for i, s := range sections {
		rendered[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
	}
	return strings.Join(rendered, "\n")
}

func (p *PlayScreen) renderEmpty(width, height int) string {
	msg := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("No questions in this session.\n\nPress Enter to see your results.")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

// renderTopBar shows the player avatar and name on the left and the score
// on the right.
func (p *PlayScreen) renderTopBar(width int) string {
	name := p.machine.Name()
	initial := "?"
	if name != "" {
		initial = strings.ToUpper(string([]rune(name)[0]))
	}

	avatar := lipgloss.NewStyle().
		Background(theme.Primary).
		Foreground(theme.Text).
		Bold(true).
		Padding(0, 1).
		Render(initial)

	left := avatar + " " + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(name)
	right := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Render(fmt.Sprintf("★ %d", p.machine.Score()))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (p *PlayScreen) renderProgress(width int) string {
	label := fmt.Sprintf("%d/%d answered", len(p.machine.Answers()), len(p.machine.Questions()))
	return components.NewProgressBar(label, p.machine.Progress(), true, width).View()
}

func (p *PlayScreen) renderCard(q question.Question, width int) string {
	inner := width - 6
	answered := p.machine.IsAnswered(q.ID)

	var b strings.Builder

	b.WriteString(theme.Badge.Render(strings.ToUpper(q.Type.DisplayName())))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  #%d", q.ID)))
	b.WriteString("\n")

	if q.AudioURL != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("♪ " + q.AudioURL))
		b.WriteString("\n")
	}
	if q.ImageURL != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("▣ " + q.ImageURL))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().Width(inner).Foreground(theme.Text).Bold(true).Render(q.Text))
	b.WriteString("\n")

	if len(q.RearrangeParts) > 0 {
		b.WriteString(theme.Hint.Render("Parts: " + strings.Join(q.RearrangeParts, " / ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if q.IsMultipleChoice() {
		b.WriteString(p.mc.View())
	} else {
		b.WriteString("Answer: " + p.input.View())
		b.WriteString("\n")
	}

	if p.showHint && !answered {
		b.WriteString("\n")
		b.WriteString(theme.HintBox.Width(inner).Render("Hint: " + question.Hint(q)))
		b.WriteString("\n")
	}

	if ua, ok := p.machine.AnswerFor(q.ID); ok {
		b.WriteString("\n")
		b.WriteString(renderFeedback(q, ua.Correct, inner))
	}

	return theme.Card.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func renderFeedback(q question.Question, correct bool, width int) string {
	var b strings.Builder
	if correct {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("Correct answer: " + q.CorrectAnswer))
	}
	if q.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Foreground(theme.Text).Render(q.Explanation))
	}
	return b.String()
}

// renderActions draws the footer buttons for the current question. The
// finish button turns into a warning while questions remain unanswered.
func (p *PlayScreen) renderActions(q question.Question) string {
	answered := p.machine.IsAnswered(q.ID)

	prev := components.NewButton("◂ Prev", p.machine.Index() > 0, nil)

	var primary components.Button
	switch {
	case !answered && p.machine.IsLast():
		primary = components.NewButton("Submit", true, nil)
	case !answered:
		primary = components.NewButton("Skip ▸", true, nil)
	case p.machine.IsLast():
		primary = components.NewButton("See results", p.machine.AllAnswered(), nil)
	default:
		primary = components.NewButton("Next ▸", true, nil)
	}

	finish := components.NewButton("Finish", true, nil)
	if !p.machine.AllAnswered() {
		finish.Variant = components.ButtonDanger
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		prev.View(), "  ", primary.View(), "  ", finish.View())
}
