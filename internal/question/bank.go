package question

// Bank is the ordered, read-only set of questions loaded at startup.
type Bank struct {
	title     string
	questions []Question
	byID      map[int]int
}

// NewBank builds a Bank from questions, preserving their order.
// When ids repeat, ByID returns the first occurrence.
func NewBank(title string, questions []Question) *Bank {
	qs := make([]Question, len(questions))
	copy(qs, questions)

	byID := make(map[int]int, len(qs))
	for i, q := range qs {
		if _, exists := byID[q.ID]; !exists {
			byID[q.ID] = i
		}
	}
	return &Bank{title: title, questions: qs, byID: byID}
}

// Title returns the bank's display title.
func (b *Bank) Title() string {
	return b.title
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// All returns a copy of every question in bank order.
func (b *Bank) All() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// ByID looks up a question by its id.
func (b *Bank) ByID(id int) (Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[i], true
}

// Filter returns the questions matching keep, in bank order.
func (b *Bank) Filter(keep func(Question) bool) []Question {
	var out []Question
	for _, q := range b.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}
