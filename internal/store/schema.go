package store

import (
	"context"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	entschema "github.com/abhisek/listenup/ent/schema"
)

// Table names for the history events.
const (
	TableSessionEvents = "session_events"
	TableAnswerEvents  = "answer_events"
)

// Column holding the auto-increment primary key of every event table.
const columnID = "id"

var (
	sessionEventFields = descriptors(entschema.SessionEvent{})
	answerEventFields  = descriptors(entschema.AnswerEvent{})

	// migrationTables are the tables ent's migration engine keeps in sync
	// with the schemas in ent/schema.
	migrationTables = []*schema.Table{
		newTable(TableSessionEvents, entschema.SessionEvent{}),
		newTable(TableAnswerEvents, entschema.AnswerEvent{}),
	}
)

// descriptors returns the field descriptors of s, mixin fields first,
// keyed by field name.
func descriptors(s ent.Interface) map[string]*field.Descriptor {
	out := make(map[string]*field.Descriptor)
	for _, f := range schemaFields(s) {
		out[f.Name] = f
	}
	return out
}

func schemaFields(s ent.Interface) []*field.Descriptor {
	var out []*field.Descriptor
	for _, m := range s.Mixin() {
		for _, f := range m.Fields() {
			out = append(out, f.Descriptor())
		}
	}
	for _, f := range s.Fields() {
		out = append(out, f.Descriptor())
	}
	return out
}

func schemaIndexes(s ent.Interface) []*index.Descriptor {
	var out []*index.Descriptor
	for _, m := range s.Mixin() {
		for _, idx := range m.Indexes() {
			out = append(out, idx.Descriptor())
		}
	}
	for _, idx := range s.Indexes() {
		out = append(out, idx.Descriptor())
	}
	return out
}

// newTable describes the table for s the way ent's generated migrate
// package does.
func newTable(name string, s ent.Interface) *schema.Table {
	t := schema.NewTable(name).
		AddPrimary(&schema.Column{Name: columnID, Type: field.TypeInt, Increment: true})
	for _, f := range schemaFields(s) {
		t.AddColumn(&schema.Column{
			Name:     f.Name,
			Type:     f.Info.Type,
			Unique:   f.Unique,
			Nullable: f.Optional || f.Nillable,
			Default:  columnDefault(f),
		})
	}
	for _, idx := range schemaIndexes(s) {
		t.AddIndex(name+"_"+strings.Join(idx.Fields, "_"), idx.Unique, idx.Fields)
	}
	return t
}

// columnDefault returns a literal default for the column. Func defaults
// such as time.Now are applied on insert instead.
func columnDefault(f *field.Descriptor) any {
	if f.Default == nil || reflect.TypeOf(f.Default).Kind() == reflect.Func {
		return nil
	}
	return f.Default
}

// migrate creates missing tables, columns and indexes.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, migrationTables...)
}
