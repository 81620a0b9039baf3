package store

import (
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/schema/field"
)

var ErrInvalidEvent = errors.New("invalid event")

// Validators and defaults declared on the ent schemas. A mismatch between
// a schema and the types below panics at init.
var (
	defaultTimestamp = defaultFunc[time.Time](sessionEventFields, "timestamp")

	sessionEventChecks = struct {
		sessionID, action, player, mode              func(string) error
		questions, answered, correct, score, percent func(int) error
	}{
		sessionID: validator[string](sessionEventFields, "session_id"),
		action:    validator[string](sessionEventFields, "action"),
		player:    validator[string](sessionEventFields, "player"),
		mode:      validator[string](sessionEventFields, "mode"),
		questions: validator[int](sessionEventFields, "questions"),
		answered:  validator[int](sessionEventFields, "answered"),
		correct:   validator[int](sessionEventFields, "correct"),
		score:     validator[int](sessionEventFields, "score"),
		percent:   validator[int](sessionEventFields, "percent"),
	}

	answerEventChecks = struct {
		sessionID, questionType, response func(string) error
	}{
		sessionID:    validator[string](answerEventFields, "session_id"),
		questionType: validator[string](answerEventFields, "question_type"),
		response:     validator[string](answerEventFields, "response"),
	}
)

// validator chains the validators declared on the named field.
func validator[T any](fields map[string]*field.Descriptor, name string) func(T) error {
	d, ok := fields[name]
	if !ok {
		panic(fmt.Sprintf("store: unknown field %q", name))
	}
	fns := make([]func(T) error, len(d.Validators))
	for i, v := range d.Validators {
		fns[i] = v.(func(T) error)
	}
	return func(v T) error {
		for _, fn := range fns {
			if err := fn(v); err != nil {
				return err
			}
		}
		return nil
	}
}

func defaultFunc[T any](fields map[string]*field.Descriptor, name string) func() T {
	return fields[name].Default.(func() T)
}

// check runs validators in order and reports the first failure.
type check struct {
	field string
	err   error
}

func firstInvalid(entity string, checks ...check) error {
	for _, c := range checks {
		if c.err != nil {
			return fmt.Errorf("%w: %s.%s: %w", ErrInvalidEvent, entity, c.field, c.err)
		}
	}
	return nil
}
