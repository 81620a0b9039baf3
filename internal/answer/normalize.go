package answer

import (
	"strings"
	"unicode"
)

// punctuation is the set of characters stripped before comparison.
const punctuation = `.,!?;:'"`

// Normalize maps a free-text response to its canonical comparable form.
//
// Normalization rules:
//   - The characters . , ! ? ; : ' " are removed
//   - Any run of whitespace collapses to a single space
//   - Leading and trailing whitespace is trimmed
//   - The result is lowercased
//
// Accented characters are compared literally; no diacritic folding is done.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	space := false
	for _, r := range text {
		if strings.ContainsRune(punctuation, r) {
			continue
		}
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Match reports whether response and correct are equal after normalization.
func Match(response, correct string) bool {
	return Normalize(response) == Normalize(correct)
}

// Blank reports whether a response is empty or whitespace only.
func Blank(response string) bool {
	return strings.TrimSpace(response) == ""
}
