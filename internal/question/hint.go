package question

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

const listenTip = "Listen carefully for the details."

// Hint returns a short clue for an unanswered question. Fill-in questions
// reveal the answer length and its first letter; choice questions get a
// listening tip.
func Hint(q Question) string {
	if q.IsMultipleChoice() {
		return listenTip
	}

	answer := q.CorrectAnswer
	if answer == "" {
		return listenTip
	}

	first, _ := utf8.DecodeRuneInString(answer)
	return fmt.Sprintf("%d characters, starts with %q",
		utf8.RuneCountInString(answer),
		string(unicode.ToUpper(first)))
}
