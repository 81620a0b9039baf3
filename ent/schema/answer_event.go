package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records a single submitted answer within a session.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.Int("question_id").
			Comment("Question id in the bank"),
		field.String("question_type").
			NotEmpty().
			Comment("MULTIPLE_CHOICE, FILL_IN_BLANK or REARRANGE"),
		field.String("response").
			NotEmpty().
			Comment("What the player entered, verbatim"),
		field.Bool("correct").
			Comment("Whether the normalized response matched"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("question_id"),
		index.Fields("correct"),
	}
}
