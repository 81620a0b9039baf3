package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	mc := NewMultiChoice([]string{"Hello", "Hi", "Hey"}, "Hi")

	mc, _ = mc.Update(specialKey(tea.KeyDown))
	mc, _ = mc.Update(specialKey(tea.KeyDown))
	mc, _ = mc.Update(specialKey(tea.KeyDown)) // clamped
	mc, _ = mc.Update(specialKey(tea.KeyUp))
	if mc.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", mc.Selected)
	}

	mc, _ = mc.Update(specialKey(tea.KeyEnter))
	chosen, ok := mc.Chosen()
	if !ok || chosen != "Hi" {
		t.Errorf("Chosen = %q, %v; want Hi", chosen, ok)
	}
	if !mc.IsCorrect() {
		t.Error("expected correct choice")
	}
}

func TestMultiChoice_Shortcuts(t *testing.T) {
	tests := []struct {
		key  rune
		want string
		ok   bool
	}{
		{'1', "A1", true},
		{'3', "C1", true},
		{'b', "B1", true},
		{'e', "", false}, // only four options
		{'9', "", false},
		{'z', "", false},
	}
	for _, tt := range tests {
		mc := NewMultiChoice([]string{"A1", "B1", "C1", "D1"}, "A1")
		mc, _ = mc.Update(keyPress(tt.key))
		got, ok := mc.Chosen()
		if ok != tt.ok || got != tt.want {
			t.Errorf("key %q: Chosen = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMultiChoice_LockedIgnoresInput(t *testing.T) {
	mc := NewMultiChoice([]string{"Hello", "Hi"}, "Hello")
	mc.Lock("Hi")

	mc, _ = mc.Update(keyPress('1'))
	chosen, _ := mc.Chosen()
	if chosen != "Hi" {
		t.Errorf("Chosen = %q, want Hi", chosen)
	}
	if mc.IsCorrect() {
		t.Error("expected wrong choice")
	}

	view := mc.View()
	if !strings.Contains(view, "✓") || !strings.Contains(view, "✗") {
		t.Errorf("locked view should mark correct and chosen options: %q", view)
	}
}

func TestMultiChoice_ViewLabels(t *testing.T) {
	mc := NewMultiChoice([]string{"one", "two"}, "one")
	view := mc.View()
	if !strings.Contains(view, "A)  one") || !strings.Contains(view, "B)  two") {
		t.Errorf("view = %q", view)
	}
}

func TestTextInput_SubmitLocks(t *testing.T) {
	ti := NewTextInput("Answer...", 40)
	ti.SetValue("cat")
	ti.Submit(true)

	ti, _ = ti.Update(keyPress('s'))
	if ti.Value() != "cat" {
		t.Errorf("Value = %q, want cat", ti.Value())
	}
	if !ti.Submitted() {
		t.Error("expected submitted")
	}
	if !strings.Contains(ti.View(), "✓") {
		t.Errorf("view should show the correct mark: %q", ti.View())
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	for _, pct := range []float64{-1, 0, 0.5, 1, 2} {
		view := NewProgressBar("", pct, true, 30).View()
		if view == "" {
			t.Errorf("empty view for %v", pct)
		}
	}
	if !strings.Contains(NewProgressBar("", 2, true, 30).View(), "100%") {
		t.Error("expected 100% when over full")
	}
	if !strings.Contains(NewProgressBar("", 0.5, true, 30).View(), "50%") {
		t.Error("expected 50%")
	}
}

func TestButton_PressOnlyWhenActive(t *testing.T) {
	pressed := 0
	onPress := func() tea.Cmd {
		pressed++
		return nil
	}

	b := NewButton("Retry", false, onPress)
	b.Update(specialKey(tea.KeyEnter))
	if pressed != 0 {
		t.Errorf("inactive button pressed %d times", pressed)
	}

	b.Active = true
	b.Update(specialKey(tea.KeyEnter))
	if pressed != 1 {
		t.Errorf("active button pressed %d times, want 1", pressed)
	}
	if !strings.Contains(b.View(), "Retry") {
		t.Errorf("view = %q", b.View())
	}
}
