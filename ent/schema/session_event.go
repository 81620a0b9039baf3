package schema

import (
	"errors"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records quiz session lifecycle events (start/finish).
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.String("action").
			NotEmpty().
			Validate(func(s string) error {
				if s != "start" && s != "finish" {
					return errors.New("action must be start or finish")
				}
				return nil
			}).
			Comment("start or finish"),
		field.String("player").
			NotEmpty().
			Comment("Display name entered on the start screen"),
		field.String("mode").
			NotEmpty().
			Comment("all or wrong"),
		field.Int("questions").
			NonNegative().
			Default(0).
			Comment("Active questions in the session"),
		field.Int("answered").
			NonNegative().
			Default(0).
			Comment("Submitted answers (on finish only)"),
		field.Int("correct").
			NonNegative().
			Default(0).
			Comment("Correct answers (on finish only)"),
		field.Int("score").
			NonNegative().
			Default(0).
			Comment("Points scored (on finish only)"),
		field.Int("percent").
			Range(0, 100).
			Default(0).
			Comment("Correct share of submitted answers (on finish only)"),
		field.JSON("wrong_ids", []int{}).
			Optional().
			Comment("Question ids answered wrongly (on finish only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("action"),
	}
}
