package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ExerciseState holds the latest saved state of one exercise for one
// learner. Saving again replaces the row.
type ExerciseState struct {
	ent.Schema
}

func (ExerciseState) Fields() []ent.Field {
	return []ent.Field{
		field.String("content_id").
			NotEmpty().
			Comment("Identifier of the exercise content"),
		field.String("user_id").
			Comment("Learner the state belongs to"),
		field.Bytes("data").
			Comment("Exercise state as JSON"),
		field.Int64("updated_at").
			Comment("Unix milliseconds of the last save"),
	}
}

func (ExerciseState) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("content_id", "user_id").Unique(),
	}
}
