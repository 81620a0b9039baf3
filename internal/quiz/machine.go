package quiz

import (
	"errors"
	"math"
	"strings"

	"github.com/abhisek/listenup/internal/answer"
	"github.com/abhisek/listenup/internal/question"
)

// PointsPerCorrect is the score awarded for each correct answer.
const PointsPerCorrect = 10

var ErrEmptyName = errors.New("player name is empty")

// Machine owns one quiz session and mutates it only through its
// transitions. It is not safe for concurrent use.
type Machine struct {
	bank *question.Bank

	state     State
	mode      Mode
	name      string
	questions []question.Question
	index     int
	answers   []UserAnswer
}

// New creates a machine in StateStart over bank.
func New(bank *question.Bank) *Machine {
	if bank == nil {
		bank = question.NewBank("", nil)
	}
	return &Machine{bank: bank, state: StateStart, mode: ModeAll}
}

// Bank returns the question bank backing the machine.
func (m *Machine) Bank() *question.Bank {
	return m.bank
}

// Start records the player name and begins a session over the full bank.
func (m *Machine) Start(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	m.name = name
	m.mode = ModeAll
	m.StartSession(m.bank.All())
	return nil
}

// StartSession begins a fresh session over questions. An empty subset is
// allowed.
func (m *Machine) StartSession(questions []question.Question) {
	qs := make([]question.Question, len(questions))
	copy(qs, questions)

	m.questions = qs
	m.index = 0
	m.answers = nil
	m.state = StatePlaying
}

// Answer records response for the current question, replacing any earlier
// answer to it. Blank responses are ignored.
func (m *Machine) Answer(response string) (UserAnswer, bool) {
	if m.state != StatePlaying || answer.Blank(response) {
		return UserAnswer{}, false
	}
	q, ok := m.Current()
	if !ok {
		return UserAnswer{}, false
	}

	ua := UserAnswer{
		QuestionID: q.ID,
		Response:   response,
		Correct:    answer.Match(response, q.CorrectAnswer),
	}

	kept := m.answers[:0:0]
	for _, a := range m.answers {
		if a.QuestionID != q.ID {
			kept = append(kept, a)
		}
	}
	m.answers = append(kept, ua)
	return ua, true
}

// Next moves to the following question. No-op on the last one.
func (m *Machine) Next() {
	if m.index < len(m.questions)-1 {
		m.index++
	}
}

// Prev moves to the previous question. No-op on the first one.
func (m *Machine) Prev() {
	if m.index > 0 {
		m.index--
	}
}

// Jump moves to question i when it is in range.
func (m *Machine) Jump(i int) {
	if i >= 0 && i < len(m.questions) {
		m.index = i
	}
}

// Finish ends the session. Unanswered questions simply have no answer.
func (m *Machine) Finish() {
	if m.state == StatePlaying {
		m.state = StateFinished
	}
}

// RetryAll restarts over the full bank.
func (m *Machine) RetryAll() {
	m.mode = ModeAll
	m.StartSession(m.bank.All())
}

// RetryWrong restarts over the wrongly answered questions, in bank order.
// It returns false and changes nothing when there are none.
func (m *Machine) RetryWrong() bool {
	wrong := make(map[int]bool)
	for _, a := range m.answers {
		if !a.Correct {
			wrong[a.QuestionID] = true
		}
	}
	if len(wrong) == 0 {
		return false
	}

	m.mode = ModeWrong
	m.StartSession(m.bank.Filter(func(q question.Question) bool {
		return wrong[q.ID]
	}))
	return true
}

// Advance is the "continue" action: once the current question is answered
// it moves forward, or finishes when the last question is reached and
// everything is answered. Reports whether anything changed.
func (m *Machine) Advance() bool {
	if m.state != StatePlaying {
		return false
	}
	q, ok := m.Current()
	if !ok || !m.IsAnswered(q.ID) {
		return false
	}
	if !m.IsLast() {
		m.Next()
		return true
	}
	if m.AllAnswered() {
		m.Finish()
		return true
	}
	return false
}

func (m *Machine) State() State { return m.state }
func (m *Machine) Mode() Mode   { return m.mode }
func (m *Machine) Name() string { return m.name }
func (m *Machine) Index() int   { return m.index }

// Questions returns a copy of the active questions.
func (m *Machine) Questions() []question.Question {
	out := make([]question.Question, len(m.questions))
	copy(out, m.questions)
	return out
}

// Current returns the question at the current index.
func (m *Machine) Current() (question.Question, bool) {
	if m.index < 0 || m.index >= len(m.questions) {
		return question.Question{}, false
	}
	return m.questions[m.index], true
}

// IsLast reports whether the current question is the last one.
func (m *Machine) IsLast() bool {
	return m.index >= len(m.questions)-1
}

// Answers returns the answers in insertion order.
func (m *Machine) Answers() []UserAnswer {
	out := make([]UserAnswer, len(m.answers))
	copy(out, m.answers)
	return out
}

func (m *Machine) AnswerFor(questionID int) (UserAnswer, bool) {
	for _, a := range m.answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return UserAnswer{}, false
}

func (m *Machine) IsAnswered(questionID int) bool {
	_, ok := m.AnswerFor(questionID)
	return ok
}

// AllAnswered reports whether every active question has an answer.
func (m *Machine) AllAnswered() bool {
	return len(m.answers) == len(m.questions)
}

// Correct returns the number of correct answers.
func (m *Machine) Correct() int {
	n := 0
	for _, a := range m.answers {
		if a.Correct {
			n++
		}
	}
	return n
}

// Wrong returns the number of incorrect answers. Unanswered questions are
// not counted.
func (m *Machine) Wrong() int {
	return len(m.answers) - m.Correct()
}

// WrongAnswers returns the incorrect answers in insertion order.
func (m *Machine) WrongAnswers() []UserAnswer {
	var out []UserAnswer
	for _, a := range m.answers {
		if !a.Correct {
			out = append(out, a)
		}
	}
	return out
}

func (m *Machine) Score() int {
	return PointsPerCorrect * m.Correct()
}

// Percent is the share of submitted answers that are correct, rounded to
// the nearest integer. Unanswered questions do not count.
func (m *Machine) Percent() int {
	return Percent(m.Correct(), len(m.answers))
}

// Progress is the answered fraction of the active questions in [0, 1].
func (m *Machine) Progress() float64 {
	if len(m.questions) == 0 {
		return 0
	}
	return float64(len(m.answers)) / float64(len(m.questions))
}

// Snapshot copies the current state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		State:     m.state,
		Mode:      m.mode,
		Name:      m.name,
		Questions: m.Questions(),
		Index:     m.index,
		Answers:   m.Answers(),
		Correct:   m.Correct(),
		Score:     m.Score(),
		Percent:   m.Percent(),
	}
}

// Percent returns round(100*correct/total), or 0 when total is 0.
func Percent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}
