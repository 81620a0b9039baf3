package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/listenup/internal/question"
	"github.com/abhisek/listenup/internal/quiz"
	"github.com/abhisek/listenup/internal/store"
)

// ErrNoSession is returned by writes issued before Begin.
var ErrNoSession = errors.New("no session in progress")

// Write is a pending history write. It captures everything it needs when
// it is created so it can run outside the UI update loop.
type Write func(ctx context.Context) error

// Recorder turns quiz transitions into history events.
//
// Events are queued in the order the transitions happen. Running any Write
// first drains every event queued before it, so the store sees events in
// transition order however the writes are scheduled.
type Recorder struct {
	repo  store.EventRepo
	log   zerolog.Logger
	newID func() string
	id    string

	mu      sync.Mutex
	pending []*queuedEvent
}

type queuedEvent struct {
	name      string
	sessionID string
	write     Write
	err       error
}

// NewRecorder creates a Recorder. A nil repo records nothing.
func NewRecorder(repo store.EventRepo, log zerolog.Logger) *Recorder {
	if repo == nil {
		repo = store.NopEventRepo{}
	}
	return &Recorder{
		repo:  repo,
		log:   log,
		newID: uuid.NewString,
	}
}

// SessionID returns the id of the session in progress, or "" before Begin.
func (r *Recorder) SessionID() string {
	return r.id
}

// Begin opens a new session id and returns the start event write.
func (r *Recorder) Begin(snap quiz.Snapshot) Write {
	r.id = r.newID()
	data := store.SessionEventData{
		SessionID: r.id,
		Action:    store.ActionStart,
		Player:    snap.Name,
		Mode:      string(snap.Mode),
		Questions: len(snap.Questions),
	}
	return r.enqueue("start", func(ctx context.Context) error {
		return r.repo.AppendSessionEvent(ctx, data)
	})
}

// Answer returns the write for a submitted answer to q.
func (r *Recorder) Answer(q question.Question, ua quiz.UserAnswer) Write {
	if r.id == "" {
		return r.fail("answer", ErrNoSession)
	}
	data := store.AnswerEventData{
		SessionID:    r.id,
		QuestionID:   ua.QuestionID,
		QuestionType: string(q.Type),
		Response:     ua.Response,
		Correct:      ua.Correct,
	}
	return r.enqueue("answer", func(ctx context.Context) error {
		return r.repo.AppendAnswerEvent(ctx, data)
	})
}

// Finish returns the finish event write for the session in snap.
func (r *Recorder) Finish(snap quiz.Snapshot) Write {
	if r.id == "" {
		return r.fail("finish", ErrNoSession)
	}
	data := store.SessionEventData{
		SessionID: r.id,
		Action:    store.ActionFinish,
		Player:    snap.Name,
		Mode:      string(snap.Mode),
		Questions: len(snap.Questions),
		Answered:  snap.Answered(),
		Correct:   snap.Correct,
		Score:     snap.Score,
		Percent:   snap.Percent,
		WrongIDs:  wrongIDs(snap.Answers),
	}
	return r.enqueue("finish", func(ctx context.Context) error {
		return r.repo.AppendSessionEvent(ctx, data)
	})
}

// enqueue queues an event and returns the Write that flushes it.
func (r *Recorder) enqueue(name string, write Write) Write {
	ev := &queuedEvent{name: name, sessionID: r.id, write: write}
	r.mu.Lock()
	r.pending = append(r.pending, ev)
	r.mu.Unlock()

	return func(ctx context.Context) error {
		r.flush(ctx)
		r.mu.Lock()
		defer r.mu.Unlock()
		return ev.err
	}
}

// flush writes every queued event in order.
func (r *Recorder) flush(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for len(r.pending) > 0 {
		ev := r.pending[0]
		r.pending = r.pending[1:]
		ev.err = r.guard(ev.name, ev.sessionID, ev.write)(ctx)
	}
}

// guard logs a failed write. Callers may ignore the returned error.
func (r *Recorder) guard(event, sessionID string, w Write) Write {
	return func(ctx context.Context) error {
		if err := w(ctx); err != nil {
			r.log.Warn().Err(err).
				Str("event", event).
				Str("session_id", sessionID).
				Msg("history write failed")
			return fmt.Errorf("record %s: %w", event, err)
		}
		r.log.Debug().Str("event", event).Str("session_id", sessionID).Msg("history write")
		return nil
	}
}

func (r *Recorder) fail(event string, err error) Write {
	return r.guard(event, r.id, func(context.Context) error { return err })
}

func wrongIDs(answers []quiz.UserAnswer) []int {
	var ids []int
	for _, a := range answers {
		if !a.Correct {
			ids = append(ids, a.QuestionID)
		}
	}
	sort.Ints(ids)
	return ids
}
