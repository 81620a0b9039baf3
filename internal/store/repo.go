package store

import (
	"context"
	"time"
)

// Session actions.
const (
	ActionStart  = "start"
	ActionFinish = "finish"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Player string    // exact player name, empty for all
}

// SessionEventData captures a session start or finish.
type SessionEventData struct {
	SessionID string
	Action    string
	Player    string
	Mode      string
	Questions int

	// Set on finish only.
	Answered int
	Correct  int
	Score    int
	Percent  int
	WrongIDs []int
}

// AnswerEventData captures one submitted answer.
type AnswerEventData struct {
	SessionID    string
	QuestionID   int
	QuestionType string
	Response     string
	Correct      bool
}

// SessionSummary is a finished session as shown in the history view.
type SessionSummary struct {
	Sequence   int64
	FinishedAt time.Time
	SessionID  string
	Player     string
	Mode       string
	Questions  int
	Answered   int
	Correct    int
	Score      int
	Percent    int
	WrongIDs   []int
}

// AnswerRecord is a stored answer event.
type AnswerRecord struct {
	Sequence     int64
	Timestamp    time.Time
	SessionID    string
	QuestionID   int
	QuestionType string
	Response     string
	Correct      bool
}

// EventRepo provides append and query access to history events.
type EventRepo interface {
	// AppendSessionEvent records a session start or finish.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a submitted answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QuerySessionSummaries returns finished sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummary, error)

	// QueryAnswers returns the answers of one session in sequence order.
	QueryAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error)

	// Reset deletes all history.
	Reset(ctx context.Context) error
}

// NopEventRepo discards writes and returns empty results. It stands in
// when history is disabled.
type NopEventRepo struct{}

var _ EventRepo = NopEventRepo{}

func (NopEventRepo) AppendSessionEvent(context.Context, SessionEventData) error { return nil }
func (NopEventRepo) AppendAnswerEvent(context.Context, AnswerEventData) error   { return nil }
func (NopEventRepo) QuerySessionSummaries(context.Context, QueryOpts) ([]SessionSummary, error) {
	return nil, nil
}
func (NopEventRepo) QueryAnswers(context.Context, string) ([]AnswerRecord, error) { return nil, nil }
func (NopEventRepo) Reset(context.Context) error                                  { return nil }
