package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Statement is one logged xAPI statement.
type Statement struct {
	ent.Schema
}

func (Statement) Mixin() []ent.Mixin {
	return []ent.Mixin{SequenceMixin{}}
}

func (Statement) Fields() []ent.Field {
	return []ent.Field{
		field.String("content_id").
			NotEmpty().
			Comment("Identifier of the exercise content"),
		field.String("verb").
			Comment("Short verb name: progressed, completed, answered"),
		field.Bytes("data").
			Comment("Full statement as JSON"),
	}
}

func (Statement) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("content_id", "sequence"),
	}
}
