package store

import (
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	tableStates     = "exercise_states"
	tableStatements = "statements"

	colID        = "id"
	colContentID = "content_id"
	colUserID    = "user_id"
	colData      = "data"
	colUpdatedAt = "updated_at"
	colSequence  = "sequence"
	colVerb      = "verb"
	colTimestamp = "timestamp"
)

var (
	// ExerciseStatesColumns holds the columns for the "exercise_states" table.
	ExerciseStatesColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colContentID, Type: field.TypeString},
		{Name: colUserID, Type: field.TypeString},
		{Name: colData, Type: field.TypeBytes},
		{Name: colUpdatedAt, Type: field.TypeInt64},
	}
	// ExerciseStatesTable holds the schema information for the "exercise_states" table.
	ExerciseStatesTable = &schema.Table{
		Name:       tableStates,
		Columns:    ExerciseStatesColumns,
		PrimaryKey: []*schema.Column{ExerciseStatesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "exercisestate_content_id_user_id",
				Unique:  true,
				Columns: []*schema.Column{ExerciseStatesColumns[1], ExerciseStatesColumns[2]},
			},
		},
	}

	// StatementsColumns holds the columns for the "statements" table.
	StatementsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colContentID, Type: field.TypeString},
		{Name: colVerb, Type: field.TypeString},
		{Name: colData, Type: field.TypeBytes},
		{Name: colTimestamp, Type: field.TypeInt64},
	}
	// StatementsTable holds the schema information for the "statements" table.
	StatementsTable = &schema.Table{
		Name:       tableStatements,
		Columns:    StatementsColumns,
		PrimaryKey: []*schema.Column{StatementsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "statement_content_id_sequence",
				Columns: []*schema.Column{StatementsColumns[2], StatementsColumns[1]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ExerciseStatesTable,
		StatementsTable,
	}
)

// builder returns a SQLite statement builder.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}
