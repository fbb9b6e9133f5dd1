package store

import (
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/schema/field"

	entschema "github.com/wifeymooc/quizkit/ent/schema"
)

// eventSchemas maps each event table to the ent schema describing it.
var eventSchemas = []struct {
	table  string
	schema ent.Interface
}{
	{"grade_events", entschema.GradeEvent{}},
	{"session_events", entschema.SessionEvent{}},
	{"llm_request_events", entschema.LLMRequestEvent{}},
}

// eventTables lists the tables cleared by Reset.
func eventTables() []string {
	out := make([]string, len(eventSchemas))
	for i, s := range eventSchemas {
		out[i] = s.table
	}
	return out
}

// migrationStatements renders CREATE TABLE and CREATE INDEX statements
// for every event schema. Mixin fields come first, after the id column.
func migrationStatements() ([]string, error) {
	var stmts []string
	for _, s := range eventSchemas {
		fields, indexes := collect(s.schema)

		b := entsql.Dialect(dialect.SQLite)
		t := b.CreateTable(s.table).IfNotExists().
			Column(b.Column("id").Type("INTEGER").Attr("PRIMARY KEY AUTOINCREMENT"))
		for _, f := range fields {
			d := f.Descriptor()
			if d.Err != nil {
				return nil, fmt.Errorf("%s.%s: %w", s.table, d.Name, d.Err)
			}
			col, err := column(d)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", s.table, d.Name, err)
			}
			t.Column(col)
		}
		query, _ := t.Query()
		stmts = append(stmts, query)

		for _, idx := range indexes {
			d := idx.Descriptor()
			name := s.table + "_" + strings.Join(d.Fields, "_")
			ib := b.CreateIndex(name).IfNotExists().Table(s.table).Columns(d.Fields...)
			if d.Unique {
				ib.Unique()
			}
			query, _ := ib.Query()
			stmts = append(stmts, query)
		}
	}
	return stmts, nil
}

func collect(s ent.Interface) ([]ent.Field, []ent.Index) {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)
	return fields, indexes
}

// column maps a field descriptor to a SQLite column. Times are stored as
// Unix milliseconds.
func column(d *field.Descriptor) (*entsql.ColumnBuilder, error) {
	var typ string
	switch d.Info.Type {
	case field.TypeString, field.TypeEnum, field.TypeJSON:
		typ = "TEXT"
	case field.TypeBool:
		typ = "BOOLEAN"
	case field.TypeInt, field.TypeInt8, field.TypeInt16, field.TypeInt32, field.TypeInt64,
		field.TypeUint, field.TypeUint8, field.TypeUint16, field.TypeUint32, field.TypeUint64,
		field.TypeTime:
		typ = "INTEGER"
	case field.TypeFloat32, field.TypeFloat64:
		typ = "REAL"
	default:
		return nil, fmt.Errorf("unsupported field type %s", d.Info.Type)
	}

	var attrs []string
	if !d.Optional {
		attrs = append(attrs, "NOT NULL")
	}
	if d.Unique {
		attrs = append(attrs, "UNIQUE")
	}
	if def, ok := literal(d.Default); ok {
		attrs = append(attrs, "DEFAULT "+def)
	}

	c := entsql.Dialect(dialect.SQLite).Column(d.Name).Type(typ)
	if len(attrs) > 0 {
		c.Attr(strings.Join(attrs, " "))
	}
	return c, nil
}

// literal renders a constant default. Function defaults are left to the
// application.
func literal(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'", true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), true
	case bool:
		if v {
			return "1", true
		}
		return "0", true
	}
	return "", false
}
