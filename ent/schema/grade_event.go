package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// GradeEvent records the verdict for one graded question. A composite
// block produces one event per inner question actually graded.
type GradeEvent struct {
	ent.Schema
}

func (GradeEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (GradeEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("bank").
			Default("").
			Comment("Bank file name"),
		field.String("block_key").
			NotEmpty().
			Comment(`Composite key, "3" or "3-1"`),
		field.String("kind").
			NotEmpty().
			Comment("Question type name"),
		field.String("prompt").
			Default("").
			Comment("Question text"),
		field.String("status").
			NotEmpty().
			Comment("correct, incorrect, incomplete or ungradable"),
		field.Bool("correct"),
		field.String("message").
			Default("").
			Comment("Feedback shown to the learner"),
		field.String("answer").
			Default("").
			Comment("Normalized learner answer as JSON"),
	}
}

func (GradeEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("kind"),
	}
}
