package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{200, 60, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	header := RenderHeader("Question 3", "Ann · 20", 80)

	if !strings.Contains(header, AppName) {
		t.Errorf("header missing app name: %q", header)
	}
	if !strings.Contains(header, "Question 3") {
		t.Errorf("header missing title: %q", header)
	}
	if !strings.Contains(header, "Ann · 20") {
		t.Errorf("header missing status: %q", header)
	}
}

func TestRenderFooter(t *testing.T) {
	footer := RenderFooter([]KeyHint{{Key: "Enter", Description: "Next"}, {Key: "g", Description: "Overview"}}, 80)
	for _, want := range []string{"Enter", "Next", "Overview"} {
		if !strings.Contains(footer, want) {
			t.Errorf("footer missing %q", want)
		}
	}
}

func TestRenderFrameHeight(t *testing.T) {
	header := RenderHeader("t", "", 80)
	footer := RenderFooter(nil, 80)
	frame := RenderFrame(header, "body", footer, 80, 24)

	if h := lipgloss.Height(frame); h != 24 {
		t.Errorf("frame height = %d, want 24", h)
	}
}
