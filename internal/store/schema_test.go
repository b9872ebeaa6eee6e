package store

import (
	"slices"
	"testing"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"

	entschema "github.com/abhisek/ideaboard/ent/schema"
)

// TestTablesMatchEntSchema keeps the migration tables in step with the
// ent schema definitions.
func TestTablesMatchEntSchema(t *testing.T) {
	tests := []struct {
		table *schema.Table
		def   ent.Interface
	}{
		{ExerciseStatesTable, entschema.ExerciseState{}},
		{StatementsTable, entschema.Statement{}},
	}

	for _, tt := range tests {
		t.Run(tt.table.Name, func(t *testing.T) {
			var fields []ent.Field
			for _, m := range tt.def.Mixin() {
				fields = append(fields, m.Fields()...)
			}
			fields = append(fields, tt.def.Fields()...)

			// The id column is implicit in ent.
			if got, want := len(tt.table.Columns), len(fields)+1; got != want {
				t.Fatalf("columns = %d, want %d", got, want)
			}
			for _, f := range fields {
				d := f.Descriptor()
				col, ok := tt.table.Column(d.Name)
				if !ok {
					t.Errorf("column %q missing", d.Name)
					continue
				}
				if col.Type != d.Info.Type {
					t.Errorf("column %q type = %v, want %v", d.Name, col.Type, d.Info.Type)
				}
				if col.Unique != d.Unique {
					t.Errorf("column %q unique = %v, want %v", d.Name, col.Unique, d.Unique)
				}
			}

			indexes := tt.def.Indexes()
			if len(tt.table.Indexes) != len(indexes) {
				t.Fatalf("indexes = %d, want %d", len(tt.table.Indexes), len(indexes))
			}
			for _, idx := range indexes {
				d := idx.Descriptor()
				if !hasIndex(tt.table, d.Fields, d.Unique) {
					t.Errorf("index on %v (unique=%v) missing", d.Fields, d.Unique)
				}
			}
		})
	}
}

func hasIndex(table *schema.Table, columns []string, unique bool) bool {
	for _, idx := range table.Indexes {
		var names []string
		for _, c := range idx.Columns {
			names = append(names, c.Name)
		}
		if slices.Equal(names, columns) && idx.Unique == unique {
			return true
		}
	}
	return false
}
