package result

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/listenup/internal/question"
	"github.com/abhisek/listenup/internal/quiz"
	"github.com/abhisek/listenup/internal/router"
	"github.com/abhisek/listenup/internal/screen"
)

type stubScreen struct{ name string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.name }
func (s *stubScreen) Title() string                           { return s.name }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func finishedMachine(t *testing.T, responses ...string) *quiz.Machine {
	t.Helper()
	m := quiz.New(question.NewBank("test", []question.Question{
		{ID: 1, Type: question.TypeMultipleChoice, Text: "Which greeting?", CorrectAnswer: "Hello", Options: []string{"Hello", "Hi"}},
		{ID: 2, Type: question.TypeFillInBlank, Text: "The ___ sat.", CorrectAnswer: "cat"},
		{ID: 3, Type: question.TypeFillInBlank, Text: "The ___ ran.", CorrectAnswer: "dog"},
	}))
	if err := m.Start("Ann"); err != nil {
		t.Fatal(err)
	}
	for i, r := range responses {
		m.Jump(i)
		m.Answer(r)
	}
	m.Finish()
	return m
}

type counters struct{ play, history int }

func testResult(t *testing.T, withHistory bool, responses ...string) (*ResultScreen, *quiz.Machine, *counters) {
	m := finishedMachine(t, responses...)
	c := &counters{}
	var history func() screen.Screen
	if withHistory {
		history = func() screen.Screen {
			c.history++
			return &stubScreen{name: "history"}
		}
	}
	r := New(m, func() screen.Screen {
		c.play++
		return &stubScreen{name: "play"}
	}, history)
	return r, m, c
}

func TestResultScreen_View(t *testing.T) {
	r, _, _ := testResult(t, true, "Hi", "cat", "cow")

	view := r.View(100, 40)
	for _, want := range []string{"33%", "Ann", "Review", "Which greeting?", "Hello", "dog", "Retry wrong", "History"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestResultScreen_NoWrongHidesRetryWrong(t *testing.T) {
	r, m, c := testResult(t, false, "Hello", "cat", "dog")

	if strings.Contains(r.View(100, 40), "Retry wrong") {
		t.Error("retry wrong should be hidden when everything is correct")
	}
	if strings.Contains(r.View(100, 40), "History") {
		t.Error("history should be hidden when disabled")
	}

	_, cmd := r.Update(keyPress('w'))
	if cmd != nil {
		t.Error("w should do nothing without wrong answers")
	}
	if c.play != 0 || m.State() != quiz.StateFinished {
		t.Error("machine should stay finished")
	}
}

func TestResultScreen_RetryWrong(t *testing.T) {
	r, m, c := testResult(t, false, "Hi", "cat", "cow")

	_, cmd := r.Update(keyPress('w'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.ResetScreenMsg); !ok {
		t.Fatal("expected ResetScreenMsg")
	}
	if c.play != 1 {
		t.Errorf("play factory calls = %d, want 1", c.play)
	}
	if m.Mode() != quiz.ModeWrong || len(m.Questions()) != 2 {
		t.Errorf("mode=%v questions=%d, want wrong/2", m.Mode(), len(m.Questions()))
	}
}

func TestResultScreen_RetryAllViaButton(t *testing.T) {
	r, m, c := testResult(t, true, "Hi")

	// Focus starts on "Retry all".
	_, cmd := r.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.ResetScreenMsg); !ok {
		t.Fatal("expected ResetScreenMsg")
	}
	if c.play != 1 || m.Mode() != quiz.ModeAll || m.State() != quiz.StatePlaying {
		t.Error("expected a fresh session over all questions")
	}
	if len(m.Answers()) != 0 {
		t.Error("retry should clear answers")
	}
}

func TestResultScreen_FocusAndHistory(t *testing.T) {
	r, _, c := testResult(t, true, "Hi")

	// Retry all, Retry wrong, History, Quit
	if len(r.buttons) != 4 {
		t.Fatalf("buttons = %d, want 4", len(r.buttons))
	}
	r.Update(specialKey(tea.KeyLeft))
	if r.focus != 0 {
		t.Errorf("focus = %d, want 0", r.focus)
	}
	r.Update(specialKey(tea.KeyRight))
	r.Update(specialKey(tea.KeyRight))
	if r.focus != 2 || !r.buttons[2].Active || r.buttons[0].Active {
		t.Fatalf("focus = %d, want history button", r.focus)
	}

	_, cmd := r.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("history should be pushed")
	}
	if c.history != 1 {
		t.Errorf("history factory calls = %d, want 1", c.history)
	}
}

func TestResultScreen_Quit(t *testing.T) {
	r, _, _ := testResult(t, false)

	_, cmd := r.Update(keyPress('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestResultScreen_ReviewIsBounded(t *testing.T) {
	r, _, _ := testResult(t, false, "Hi", "x", "y")
	for i := 0; i < 4; i++ {
		r.summary.Review = append(r.summary.Review, r.summary.Review[0])
	}
	if !strings.Contains(r.View(100, 60), "and 2 more") {
		t.Error("expected overflow line for long review")
	}
}

func TestResultScreen_TitleStatus(t *testing.T) {
	r, _, _ := testResult(t, false, "Hello")
	if r.Title() != "Results" {
		t.Errorf("Title = %q", r.Title())
	}
	if r.Status() != "Ann · 10 pts" {
		t.Errorf("Status = %q", r.Status())
	}
	if len(r.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}
