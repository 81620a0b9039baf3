package play

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/listenup/internal/screen"
	"github.com/abhisek/listenup/internal/ui/theme"
)

// overviewCols is the number of cells per grid row.
const overviewCols = 6

type cellStatus int

const (
	cellUnanswered cellStatus = iota
	cellCurrent
	cellCorrect
	cellWrong
)

// overview is the question grid modal. cursor is the cell Enter jumps to.
type overview struct {
	cursor int
}

func (o *overview) move(delta, n int) {
	next := o.cursor + delta
	if next >= 0 && next < n {
		o.cursor = next
	}
}

func (p *PlayScreen) openOverview() (screen.Screen, tea.Cmd) {
	p.overview = &overview{cursor: p.machine.Index()}
	p.showHint = false
	return p, nil
}

func (p *PlayScreen) handleOverviewKey(key string) (screen.Screen, tea.Cmd) {
	n := len(p.machine.Questions())
	o := p.overview

	switch key {
	case "esc", "g", "ctrl+g":
		p.overview = nil
	case "left", "h":
		o.move(-1, n)
	case "right", "l":
		o.move(1, n)
	case "up", "k":
		o.move(-overviewCols, n)
	case "down", "j":
		o.move(overviewCols, n)
	case "enter":
		p.machine.Jump(o.cursor)
		p.overview = nil
		p.notice = ""
		p.sync()
	}
	return p, nil
}

func (p *PlayScreen) cellStatus(i int) cellStatus {
	qs := p.machine.Questions()
	if i == p.machine.Index() {
		return cellCurrent
	}
	if ua, ok := p.machine.AnswerFor(qs[i].ID); ok {
		if ua.Correct {
			return cellCorrect
		}
		return cellWrong
	}
	return cellUnanswered
}

func cellStyle(s cellStatus) lipgloss.Style {
	switch s {
	case cellCurrent:
		return theme.CellCurrent
	case cellCorrect:
		return theme.CellCorrect
	case cellWrong:
		return theme.CellWrong
	default:
		return theme.CellEmpty
	}
}

func (p *PlayScreen) renderOverview(width, height int) string {
	qs := p.machine.Questions()

	var rows []string
	var row []string
	for i := range qs {
		style := cellStyle(p.cellStatus(i)).Width(4).Align(lipgloss.Center)
		if i == p.overview.cursor {
			style = style.BorderForeground(theme.Warning)
		}
		row = append(row, style.Render(fmt.Sprintf("%d", i+1)))
		if len(row) == overviewCols || i == len(qs)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}

	title := theme.Title.Render("Question overview")
	counter := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Answered %d / %d", len(p.machine.Answers()), len(qs)))

	body := strings.Join([]string{
		title,
		counter,
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		renderLegend(),
	}, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Modal.Render(body))
}

func renderLegend() string {
	item := func(color, label string, c lipgloss.Style) string {
		return c.Render(color) + " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
	}
	return strings.Join([]string{
		item("■", "current", lipgloss.NewStyle().Foreground(theme.Primary)),
		item("■", "correct", lipgloss.NewStyle().Foreground(theme.Success)),
		item("■", "wrong", lipgloss.NewStyle().Foreground(theme.Error)),
		item("□", "unanswered", lipgloss.NewStyle().Foreground(theme.TextDim)),
	}, "   ")
}
