package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "cat", "cat"},
		{"uppercase", "CAT", "cat"},
		{"trailing period", "cat.", "cat"},
		{"surrounding whitespace", "  cat \t", "cat"},
		{"inner whitespace collapsed", "big   black\n cat", "big black cat"},
		{"all punctuation", `a.b,c!d?e;f:g'h"i`, "abcdefghi"},
		{"punctuation between words", "hello , world !", "hello world"},
		{"only punctuation", ".,!?", ""},
		{"only whitespace", " \t\n ", ""},
		{"apostrophe", "It's", "its"},
		{"hyphen kept", "twenty-one", "twenty-one"},
		{"accents kept", "Café", "café"},
		{"digits kept", "At 7:30 p.m.", "at 730 pm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Hello, World!", "  a  b  ", `"Quoted"`, "Mixed CASE text."}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		response string
		correct  string
		want     bool
	}{
		{"CAT", "cat.", true},
		{"Hello", "Hello", true},
		{"  hello  ", "Hello!", true},
		{"Its", "It's", true},
		{`"by bus"`, "By bus", true},
		{"by  bus", "by bus", true},
		{"Hi", "Hello", false},
		{"cafe", "café", false},
		{"", "cat", false},
	}

	for _, tc := range tests {
		got := Match(tc.response, tc.correct)
		if got != tc.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tc.response, tc.correct, got, tc.want)
		}
	}
}

func TestBlank(t *testing.T) {
	assert.True(t, Blank(""))
	assert.True(t, Blank("   "))
	assert.True(t, Blank("\t\n"))
	assert.False(t, Blank(" a "))
	assert.False(t, Blank("."))
}
