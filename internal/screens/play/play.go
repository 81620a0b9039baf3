package play

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/listenup/internal/question"
	"github.com/abhisek/listenup/internal/quiz"
	"github.com/abhisek/listenup/internal/router"
	"github.com/abhisek/listenup/internal/screen"
	"github.com/abhisek/listenup/internal/session"
	"github.com/abhisek/listenup/internal/ui/components"
	"github.com/abhisek/listenup/internal/ui/layout"
)

// inputLimit caps fill-in answers.
const inputLimit = 60

const unansweredNotice = "Some questions are still unanswered. Press f to finish anyway."

// PlayScreen runs one quiz session. All state lives in the machine; the
// screen only keeps the widgets for the current question.
type PlayScreen struct {
	machine  *quiz.Machine
	recorder *session.Recorder
	results  func() screen.Screen

	boundID int
	bound   bool
	mc      components.MultiChoice
	input   components.TextInput

	showHint bool
	notice   string
	overview *overview
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.StatusProvider = (*PlayScreen)(nil)

// New creates a PlayScreen over a machine that is already playing. results
// builds the screen shown once the session finishes.
func New(m *quiz.Machine, rec *session.Recorder, results func() screen.Screen) *PlayScreen {
	p := &PlayScreen{
		machine:  m,
		recorder: rec,
		results:  results,
	}
	p.sync()
	return p
}

// Init records the session start.
func (p *PlayScreen) Init() tea.Cmd {
	p.sync()
	if p.machine.State() != quiz.StatePlaying {
		return nil
	}
	return persist(p.recorder.Begin(p.machine.Snapshot()))
}

func (p *PlayScreen) Title() string {
	n := len(p.machine.Questions())
	if n == 0 {
		return "Listening Quiz"
	}
	return fmt.Sprintf("Question %d/%d", p.machine.Index()+1, n)
}

func (p *PlayScreen) Status() string {
	return fmt.Sprintf("%s · %d pts", p.machine.Name(), p.machine.Score())
}

func (p *PlayScreen) KeyHints() []layout.KeyHint {
	if p.overview != nil {
		return []layout.KeyHint{
			{Key: "←→↑↓", Description: "Move"},
			{Key: "Enter", Description: "Go to question"},
			{Key: "Esc", Description: "Close"},
		}
	}
	if p.typing() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Tab", Description: "Skip"},
			{Key: "Ctrl+T", Description: "Hint"},
			{Key: "Ctrl+G", Description: "Overview"},
			{Key: "Ctrl+F", Description: "Finish"},
		}
	}

	q, ok := p.machine.Current()
	if ok && !p.machine.IsAnswered(q.ID) {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
			{Key: "←→", Description: "Prev/Skip"},
			{Key: "?", Description: "Hint"},
			{Key: "g", Description: "Overview"},
			{Key: "f", Description: "Finish"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "g", Description: "Overview"},
		{Key: "f", Description: "Finish"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (p *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case persistedMsg:
		return p, nil

	case tea.KeyPressMsg:
		return p.handleKey(msg)
	}

	if p.typing() {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

// typing reports whether key presses go to the fill-in input.
func (p *PlayScreen) typing() bool {
	if p.overview != nil {
		return false
	}
	q, ok := p.machine.Current()
	return ok && !q.IsMultipleChoice() && !p.machine.IsAnswered(q.ID)
}

func (p *PlayScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if p.overview != nil {
		return p.handleOverviewKey(key)
	}
	if p.machine.State() != quiz.StatePlaying {
		return p, nil
	}

	switch key {
	case "enter":
		return p.enter(msg)
	case "tab":
		return p.next()
	case "shift+tab":
		return p.prev()
	case "ctrl+g":
		return p.openOverview()
	case "ctrl+f":
		return p.finish()
	case "ctrl+t":
		return p.toggleHint()
	case "esc":
		p.showHint = false
		return p, nil
	}

	if !p.typing() {
		switch key {
		case "left":
			return p.prev()
		case "right":
			return p.next()
		case "g":
			return p.openOverview()
		case "f":
			return p.finish()
		case "?":
			return p.toggleHint()
		}
	}

	q, ok := p.machine.Current()
	if !ok || p.machine.IsAnswered(q.ID) {
		return p, nil
	}

	if q.IsMultipleChoice() {
		p.mc, _ = p.mc.Update(msg)
		if chosen, ok := p.mc.Chosen(); ok {
			return p.submit(q, chosen)
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *PlayScreen) enter(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	q, ok := p.machine.Current()
	if !ok {
		// Nothing to answer in an empty session.
		return p.finish()
	}

	if p.machine.IsAnswered(q.ID) {
		if !p.machine.Advance() {
			p.notice = unansweredNotice
			return p, nil
		}
		if p.machine.State() == quiz.StateFinished {
			return p, p.finished()
		}
		p.sync()
		return p, nil
	}

	if q.IsMultipleChoice() {
		p.mc, _ = p.mc.Update(msg)
		if chosen, ok := p.mc.Chosen(); ok {
			return p.submit(q, chosen)
		}
		return p, nil
	}
	return p.submit(q, strings.TrimSpace(p.input.Value()))
}

func (p *PlayScreen) submit(q question.Question, response string) (screen.Screen, tea.Cmd) {
	ua, ok := p.machine.Answer(response)
	if !ok {
		return p, nil
	}
	p.lock(ua)
	p.showHint = false
	return p, persist(p.recorder.Answer(q, ua))
}

func (p *PlayScreen) prev() (screen.Screen, tea.Cmd) {
	p.machine.Prev()
	p.notice = ""
	p.sync()
	return p, nil
}

func (p *PlayScreen) next() (screen.Screen, tea.Cmd) {
	p.machine.Next()
	p.notice = ""
	p.sync()
	return p, nil
}

func (p *PlayScreen) toggleHint() (screen.Screen, tea.Cmd) {
	q, ok := p.machine.Current()
	if !ok || p.machine.IsAnswered(q.ID) {
		return p, nil
	}
	p.showHint = !p.showHint
	return p, nil
}

// finish ends the session whether or not every question is answered.
func (p *PlayScreen) finish() (screen.Screen, tea.Cmd) {
	p.machine.Finish()
	if p.machine.State() != quiz.StateFinished {
		return p, nil
	}
	return p, p.finished()
}

// finished stores the finish event before showing the results, so the
// session is already in history if the player opens it from there.
func (p *PlayScreen) finished() tea.Cmd {
	snap := p.machine.Snapshot()
	next := p.results()
	return tea.Sequence(
		persist(p.recorder.Finish(snap)),
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
	)
}

// sync rebuilds the answer widgets when the current question changes.
// Answered questions get locked widgets showing the stored response.
func (p *PlayScreen) sync() {
	q, ok := p.machine.Current()
	if !ok {
		p.bound = false
		return
	}
	if p.bound && p.boundID == q.ID {
		return
	}
	p.bound, p.boundID = true, q.ID
	p.showHint = false

	if q.IsMultipleChoice() {
		p.mc = components.NewMultiChoice(q.Options, q.CorrectAnswer)
	} else {
		p.input = components.NewTextInput("Type what you hear...", inputLimit)
	}
	if ua, ok := p.machine.AnswerFor(q.ID); ok {
		p.lock(ua)
	}
}

func (p *PlayScreen) lock(ua quiz.UserAnswer) {
	q, ok := p.machine.Current()
	if !ok {
		return
	}
	if q.IsMultipleChoice() {
		p.mc.Lock(ua.Response)
		return
	}
	p.input.SetValue(ua.Response)
	p.input.Submit(ua.Correct)
}
