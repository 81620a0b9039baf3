package session

import "github.com/abhisek/listenup/internal/quiz"

// ReviewItem is one wrongly answered question on the result screen.
type ReviewItem struct {
	QuestionID    int
	Text          string
	Response      string
	CorrectAnswer string
	Explanation   string
}

// Summary holds the data displayed on the result screen.
type Summary struct {
	Player   string
	Mode     quiz.Mode
	Total    int
	Answered int
	Correct  int
	Wrong    int
	Score    int
	Percent  int
	Review   []ReviewItem
}

// BuildSummary creates a Summary from a finished session. Review items
// follow the session's question order.
func BuildSummary(snap quiz.Snapshot) Summary {
	byID := make(map[int]quiz.UserAnswer, len(snap.Answers))
	for _, a := range snap.Answers {
		byID[a.QuestionID] = a
	}

	var review []ReviewItem
	for _, q := range snap.Questions {
		a, ok := byID[q.ID]
		if !ok || a.Correct {
			continue
		}
		review = append(review, ReviewItem{
			QuestionID:    q.ID,
			Text:          q.Text,
			Response:      a.Response,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}

	return Summary{
		Player:   snap.Name,
		Mode:     snap.Mode,
		Total:    len(snap.Questions),
		Answered: snap.Answered(),
		Correct:  snap.Correct,
		Wrong:    snap.Answered() - snap.Correct,
		Score:    snap.Score,
		Percent:  snap.Percent,
		Review:   review,
	}
}

// Verdict returns a short encouragement for a percentage.
func Verdict(percent int) string {
	switch {
	case percent >= 80:
		return "Excellent listening!"
	case percent >= 50:
		return "Good effort!"
	default:
		return "Keep practicing!"
	}
}
