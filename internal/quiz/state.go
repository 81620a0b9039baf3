package quiz

import "github.com/abhisek/listenup/internal/question"

// State is the top-level phase of the quiz.
type State int

const (
	StateStart    State = iota // Waiting for a player name
	StatePlaying               // Answering questions
	StateFinished              // Showing results
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePlaying:
		return "playing"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Mode records which subset of the bank a session runs over.
type Mode string

const (
	ModeAll   Mode = "all"
	ModeWrong Mode = "wrong"
)

// UserAnswer is the learner's response to one question.
type UserAnswer struct {
	QuestionID int
	Response   string
	Correct    bool
}

// Snapshot is a value copy of the machine, safe to hand to renderers and
// background commands.
type Snapshot struct {
	State     State
	Mode      Mode
	Name      string
	Questions []question.Question
	Index     int
	Answers   []UserAnswer
	Correct   int
	Score     int
	Percent   int
}

// Answered returns the number of submitted answers.
func (s Snapshot) Answered() int {
	return len(s.Answers)
}
