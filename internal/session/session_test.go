package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/listenup/internal/question"
	"github.com/abhisek/listenup/internal/quiz"
	"github.com/abhisek/listenup/internal/store"
)

type fakeRepo struct {
	store.NopEventRepo
	sessions []store.SessionEventData
	answers  []store.AnswerEventData
	err      error
}

func (f *fakeRepo) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	if f.err != nil {
		return f.err
	}
	f.sessions = append(f.sessions, d)
	return nil
}

func (f *fakeRepo) AppendAnswerEvent(_ context.Context, d store.AnswerEventData) error {
	if f.err != nil {
		return f.err
	}
	f.answers = append(f.answers, d)
	return nil
}

// orderRepo records the order events reach the store.
type orderRepo struct {
	store.NopEventRepo
	mu        sync.Mutex
	events    []string
	answerIDs []int
}

func (o *orderRepo) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, d.Action)
	return nil
}

func (o *orderRepo) AppendAnswerEvent(_ context.Context, d store.AnswerEventData) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, "answer")
	o.answerIDs = append(o.answerIDs, d.QuestionID)
	return nil
}

func testMachine(t *testing.T) *quiz.Machine {
	t.Helper()
	bank := question.NewBank("test", []question.Question{
		{ID: 1, Type: question.TypeMultipleChoice, Text: "Greeting?", CorrectAnswer: "Hello", Options: []string{"Hello", "Hi"}},
		{ID: 2, Type: question.TypeFillInBlank, Text: "The ___ sat.", CorrectAnswer: "cat", Explanation: "A cat sat."},
		{ID: 3, Type: question.TypeFillInBlank, Text: "The ___ ran.", CorrectAnswer: "dog"},
	})
	m := quiz.New(bank)
	require.NoError(t, m.Start("Ann"))
	return m
}

func newTestRecorder(repo store.EventRepo, buf *bytes.Buffer) *Recorder {
	r := NewRecorder(repo, zerolog.New(buf))
	n := 0
	r.newID = func() string {
		n++
		return "session-" + string(rune('0'+n))
	}
	return r
}

func TestRecorder_FullSession(t *testing.T) {
	repo := &fakeRepo{}
	r := newTestRecorder(repo, &bytes.Buffer{})
	m := testMachine(t)
	ctx := context.Background()

	require.NoError(t, r.Begin(m.Snapshot())(ctx))
	assert.Equal(t, "session-1", r.SessionID())

	q, _ := m.Current()
	ua, ok := m.Answer("Hi")
	require.True(t, ok)
	require.NoError(t, r.Answer(q, ua)(ctx))

	m.Next()
	q, _ = m.Current()
	ua, _ = m.Answer("Cat!")
	require.NoError(t, r.Answer(q, ua)(ctx))

	m.Finish()
	require.NoError(t, r.Finish(m.Snapshot())(ctx))

	require.Len(t, repo.sessions, 2)
	start, finish := repo.sessions[0], repo.sessions[1]
	assert.Equal(t, store.ActionStart, start.Action)
	assert.Equal(t, "Ann", start.Player)
	assert.Equal(t, "all", start.Mode)
	assert.Equal(t, 3, start.Questions)

	assert.Equal(t, store.ActionFinish, finish.Action)
	assert.Equal(t, "session-1", finish.SessionID)
	assert.Equal(t, 2, finish.Answered)
	assert.Equal(t, 1, finish.Correct)
	assert.Equal(t, 10, finish.Score)
	assert.Equal(t, 50, finish.Percent)
	assert.Equal(t, []int{1}, finish.WrongIDs)

	require.Len(t, repo.answers, 2)
	assert.Equal(t, store.AnswerEventData{
		SessionID:    "session-1",
		QuestionID:   1,
		QuestionType: "MULTIPLE_CHOICE",
		Response:     "Hi",
		Correct:      false,
	}, repo.answers[0])
	assert.True(t, repo.answers[1].Correct)
	assert.Equal(t, "Cat!", repo.answers[1].Response)
}

func TestRecorder_BeginStartsNewSession(t *testing.T) {
	r := newTestRecorder(&fakeRepo{}, &bytes.Buffer{})
	m := testMachine(t)

	r.Begin(m.Snapshot())
	first := r.SessionID()
	r.Begin(m.Snapshot())
	assert.NotEqual(t, first, r.SessionID())
}

func TestRecorder_WriteBeforeBegin(t *testing.T) {
	buf := &bytes.Buffer{}
	repo := &fakeRepo{}
	r := newTestRecorder(repo, buf)
	m := testMachine(t)

	err := r.Finish(m.Snapshot())(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Empty(t, repo.sessions)
	assert.Contains(t, buf.String(), "history write failed")
}

func TestRecorder_FailureIsLogged(t *testing.T) {
	buf := &bytes.Buffer{}
	boom := errors.New("disk full")
	r := newTestRecorder(&fakeRepo{err: boom}, buf)

	err := r.Begin(testMachine(t).Snapshot())(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"event":"start"`)
	assert.Contains(t, buf.String(), "disk full")
}

func TestRecorder_WritesKeepTransitionOrder(t *testing.T) {
	repo := &orderRepo{}
	r := newTestRecorder(repo, &bytes.Buffer{})
	m := testMachine(t)
	ctx := context.Background()

	begin := r.Begin(m.Snapshot())
	q, _ := m.Current()
	ua, _ := m.Answer("Hello")
	answer := r.Answer(q, ua)
	m.Finish()
	finish := r.Finish(m.Snapshot())

	// Run in reverse; the store still sees start, answer, finish.
	require.NoError(t, finish(ctx))
	require.NoError(t, answer(ctx))
	require.NoError(t, begin(ctx))
	assert.Equal(t, []string{"start", "answer", "finish"}, repo.events)
}

func TestRecorder_ConcurrentWritesKeepOrder(t *testing.T) {
	repo := &orderRepo{}
	r := newTestRecorder(repo, &bytes.Buffer{})
	m := testMachine(t)

	writes := []Write{r.Begin(m.Snapshot())}
	for i := 0; i < 3; i++ {
		q, _ := m.Current()
		ua, _ := m.Answer(q.CorrectAnswer)
		writes = append(writes, r.Answer(q, ua))
		m.Next()
	}

	var wg sync.WaitGroup
	for i := len(writes) - 1; i >= 0; i-- {
		wg.Add(1)
		go func(w Write) {
			defer wg.Done()
			assert.NoError(t, w(context.Background()))
		}(writes[i])
	}
	wg.Wait()

	assert.Equal(t, []string{"start", "answer", "answer", "answer"}, repo.events)
	assert.Equal(t, []int{1, 2, 3}, repo.answerIDs)
}

func TestRecorder_FailedEventDoesNotBlockLaterOnes(t *testing.T) {
	buf := &bytes.Buffer{}
	repo := &fakeRepo{err: errors.New("locked")}
	r := newTestRecorder(repo, buf)
	m := testMachine(t)
	ctx := context.Background()

	begin := r.Begin(m.Snapshot())
	q, _ := m.Current()
	ua, _ := m.Answer("Hello")
	answer := r.Answer(q, ua)

	assert.Error(t, answer(ctx))
	// The start event failed during the answer's flush and keeps its error.
	assert.Error(t, begin(ctx))
	assert.Equal(t, 2, strings.Count(buf.String(), "history write failed"))
}

func TestRecorder_NilRepo(t *testing.T) {
	r := NewRecorder(nil, zerolog.Nop())
	assert.NoError(t, r.Begin(testMachine(t).Snapshot())(context.Background()))
	assert.NotEmpty(t, r.SessionID())
}

func TestBuildSummary(t *testing.T) {
	m := testMachine(t)
	m.Answer("Hi")
	m.Next()
	m.Answer("cat")
	m.Next()
	m.Answer("cow")
	m.Finish()

	s := BuildSummary(m.Snapshot())
	assert.Equal(t, "Ann", s.Player)
	assert.Equal(t, quiz.ModeAll, s.Mode)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 3, s.Answered)
	assert.Equal(t, 1, s.Correct)
	assert.Equal(t, 2, s.Wrong)
	assert.Equal(t, 10, s.Score)
	assert.Equal(t, 33, s.Percent)

	require.Len(t, s.Review, 2)
	assert.Equal(t, 1, s.Review[0].QuestionID)
	assert.Equal(t, "Hi", s.Review[0].Response)
	assert.Equal(t, "Hello", s.Review[0].CorrectAnswer)
	assert.Equal(t, 3, s.Review[1].QuestionID)
	assert.Equal(t, "dog", s.Review[1].CorrectAnswer)
}

func TestBuildSummary_NoAnswers(t *testing.T) {
	m := testMachine(t)
	m.Finish()

	s := BuildSummary(m.Snapshot())
	assert.Zero(t, s.Answered)
	assert.Zero(t, s.Wrong)
	assert.Zero(t, s.Percent)
	assert.Empty(t, s.Review)
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		percent int
		want    string
	}{
		{100, "Excellent listening!"},
		{80, "Excellent listening!"},
		{79, "Good effort!"},
		{50, "Good effort!"},
		{49, "Keep practicing!"},
		{0, "Keep practicing!"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Verdict(tt.percent), "percent %d", tt.percent)
	}
}
