package store

import (
	"context"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
)

type eventRepo struct {
	store *Store
}

var _ EventRepo = (*eventRepo)(nil)

var (
	sessionSummaryColumns = []string{
		"sequence", "timestamp", "session_id", "player", "mode",
		"questions", "answered", "correct", "score", "percent", "wrong_ids",
	}
	answerColumns = []string{
		"sequence", "timestamp", "session_id", "question_id", "question_type", "response", "correct",
	}
)

func idSpec() *sqlgraph.FieldSpec {
	return sqlgraph.NewFieldSpec(columnID, field.TypeInt)
}

// create assigns the next sequence number and timestamp and inserts spec.
func (r *eventRepo) create(ctx context.Context, spec *sqlgraph.CreateSpec) error {
	seqNum, err := r.store.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	spec.SetField("sequence", field.TypeInt64, seqNum)
	spec.SetField("timestamp", field.TypeTime, defaultTimestamp().UTC())

	if err := sqlgraph.CreateNode(ctx, r.store.drv, spec); err != nil {
		return fmt.Errorf("insert %s: %w", spec.Table, err)
	}
	return nil
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	c := sessionEventChecks
	err := firstInvalid("SessionEvent",
		check{"session_id", c.sessionID(data.SessionID)},
		check{"action", c.action(data.Action)},
		check{"player", c.player(data.Player)},
		check{"mode", c.mode(data.Mode)},
		check{"questions", c.questions(data.Questions)},
		check{"answered", c.answered(data.Answered)},
		check{"correct", c.correct(data.Correct)},
		check{"score", c.score(data.Score)},
		check{"percent", c.percent(data.Percent)},
	)
	if err != nil {
		return err
	}

	spec := sqlgraph.NewCreateSpec(TableSessionEvents, idSpec())
	spec.SetField("session_id", field.TypeString, data.SessionID)
	spec.SetField("action", field.TypeString, data.Action)
	spec.SetField("player", field.TypeString, data.Player)
	spec.SetField("mode", field.TypeString, data.Mode)
	spec.SetField("questions", field.TypeInt, data.Questions)
	spec.SetField("answered", field.TypeInt, data.Answered)
	spec.SetField("correct", field.TypeInt, data.Correct)
	spec.SetField("score", field.TypeInt, data.Score)
	spec.SetField("percent", field.TypeInt, data.Percent)
	if len(data.WrongIDs) > 0 {
		spec.SetField("wrong_ids", field.TypeJSON, data.WrongIDs)
	}

	if err := r.create(ctx, spec); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	c := answerEventChecks
	err := firstInvalid("AnswerEvent",
		check{"session_id", c.sessionID(data.SessionID)},
		check{"question_type", c.questionType(data.QuestionType)},
		check{"response", c.response(data.Response)},
	)
	if err != nil {
		return err
	}

	spec := sqlgraph.NewCreateSpec(TableAnswerEvents, idSpec())
	spec.SetField("session_id", field.TypeString, data.SessionID)
	spec.SetField("question_id", field.TypeInt, data.QuestionID)
	spec.SetField("question_type", field.TypeString, data.QuestionType)
	spec.SetField("response", field.TypeString, data.Response)
	spec.SetField("correct", field.TypeBool, data.Correct)

	if err := r.create(ctx, spec); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummary, error) {
	var out []SessionSummary

	spec := sqlgraph.NewQuerySpec(TableSessionEvents, sessionSummaryColumns, idSpec())
	spec.Limit = opts.Limit
	spec.Order = func(s *entsql.Selector) {
		s.OrderBy(entsql.Desc(s.C("sequence")))
	}
	spec.Predicate = func(s *entsql.Selector) {
		s.Where(entsql.EQ(s.C("action"), ActionFinish))
		if opts.Player != "" {
			s.Where(entsql.EQ(s.C("player"), opts.Player))
		}
		if !opts.From.IsZero() {
			s.Where(entsql.GTE(s.C("timestamp"), opts.From.UTC()))
		}
		if !opts.To.IsZero() {
			s.Where(entsql.LTE(s.C("timestamp"), opts.To.UTC()))
		}
	}
	spec.ScanValues = scanValues(sessionEventFields)
	spec.Assign = func(columns []string, values []any) error {
		var s SessionSummary
		for i, col := range columns {
			switch col {
			case "sequence":
				s.Sequence = values[i].(*entsql.NullInt64).Int64
			case "timestamp":
				s.FinishedAt = values[i].(*entsql.NullTime).Time
			case "session_id":
				s.SessionID = values[i].(*entsql.NullString).String
			case "player":
				s.Player = values[i].(*entsql.NullString).String
			case "mode":
				s.Mode = values[i].(*entsql.NullString).String
			case "questions":
				s.Questions = int(values[i].(*entsql.NullInt64).Int64)
			case "answered":
				s.Answered = int(values[i].(*entsql.NullInt64).Int64)
			case "correct":
				s.Correct = int(values[i].(*entsql.NullInt64).Int64)
			case "score":
				s.Score = int(values[i].(*entsql.NullInt64).Int64)
			case "percent":
				s.Percent = int(values[i].(*entsql.NullInt64).Int64)
			case "wrong_ids":
				if raw := *values[i].(*[]byte); len(raw) > 0 {
					if err := json.Unmarshal(raw, &s.WrongIDs); err != nil {
						return fmt.Errorf("decode wrong ids: %w", err)
					}
				}
			}
		}
		out = append(out, s)
		return nil
	}

	if err := sqlgraph.QueryNodes(ctx, r.store.drv, spec); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	return out, nil
}

func (r *eventRepo) QueryAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	var out []AnswerRecord

	spec := sqlgraph.NewQuerySpec(TableAnswerEvents, answerColumns, idSpec())
	spec.Order = func(s *entsql.Selector) {
		s.OrderBy(entsql.Asc(s.C("sequence")))
	}
	spec.Predicate = func(s *entsql.Selector) {
		s.Where(entsql.EQ(s.C("session_id"), sessionID))
	}
	spec.ScanValues = scanValues(answerEventFields)
	spec.Assign = func(columns []string, values []any) error {
		var a AnswerRecord
		for i, col := range columns {
			switch col {
			case "sequence":
				a.Sequence = values[i].(*entsql.NullInt64).Int64
			case "timestamp":
				a.Timestamp = values[i].(*entsql.NullTime).Time
			case "session_id":
				a.SessionID = values[i].(*entsql.NullString).String
			case "question_id":
				a.QuestionID = int(values[i].(*entsql.NullInt64).Int64)
			case "question_type":
				a.QuestionType = values[i].(*entsql.NullString).String
			case "response":
				a.Response = values[i].(*entsql.NullString).String
			case "correct":
				a.Correct = values[i].(*entsql.NullBool).Bool
			}
		}
		out = append(out, a)
		return nil
	}

	if err := sqlgraph.QueryNodes(ctx, r.store.drv, spec); err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	return out, nil
}

func (r *eventRepo) Reset(ctx context.Context) error {
	for _, name := range []string{TableSessionEvents, TableAnswerEvents} {
		if _, err := sqlgraph.DeleteNodes(ctx, r.store.drv, sqlgraph.NewDeleteSpec(name, idSpec())); err != nil {
			return fmt.Errorf("clear %s: %w", name, err)
		}
	}
	return r.store.seq.reset(ctx)
}

// scanValues returns a ScanValues func that allocates a destination per
// column from the column's ent field type.
func scanValues(fields map[string]*field.Descriptor) func([]string) ([]any, error) {
	return func(columns []string) ([]any, error) {
		values := make([]any, len(columns))
		for i, col := range columns {
			f, ok := fields[col]
			if !ok {
				return nil, fmt.Errorf("unexpected column %q", col)
			}
			switch f.Info.Type {
			case field.TypeInt, field.TypeInt64:
				values[i] = new(entsql.NullInt64)
			case field.TypeString:
				values[i] = new(entsql.NullString)
			case field.TypeTime:
				values[i] = new(entsql.NullTime)
			case field.TypeBool:
				values[i] = new(entsql.NullBool)
			case field.TypeJSON:
				values[i] = new([]byte)
			default:
				return nil, fmt.Errorf("unexpected type %v for column %q", f.Info.Type, col)
			}
		}
		return values, nil
	}
}
