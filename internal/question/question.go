package question

// Type is the answer format of a question.
type Type string

const (
	TypeMultipleChoice Type = "MULTIPLE_CHOICE"
	TypeFillInBlank    Type = "FILL_IN_BLANK"
	TypeRearrange      Type = "REARRANGE"
)

// DisplayName returns a human-readable label for the type.
func (t Type) DisplayName() string {
	switch t {
	case TypeMultipleChoice:
		return "Multiple choice"
	case TypeFillInBlank:
		return "Fill in the blank"
	case TypeRearrange:
		return "Rearrange"
	default:
		return string(t)
	}
}

// Question is a single immutable quiz item.
type Question struct {
	ID             int      `json:"id" yaml:"id"`
	Type           Type     `json:"type" yaml:"type"`
	Text           string   `json:"questionText" yaml:"questionText"`
	CorrectAnswer  string   `json:"correctAnswer" yaml:"correctAnswer"`
	Explanation    string   `json:"explanation" yaml:"explanation"`
	Options        []string `json:"options,omitempty" yaml:"options,omitempty"`
	RearrangeParts []string `json:"rearrangeParts,omitempty" yaml:"rearrangeParts,omitempty"`
	AudioURL       string   `json:"audioUrl,omitempty" yaml:"audioUrl,omitempty"`
	ImageURL       string   `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

// IsMultipleChoice reports whether the question is answered by picking an option.
func (q Question) IsMultipleChoice() bool {
	return q.Type == TypeMultipleChoice && len(q.Options) > 0
}
