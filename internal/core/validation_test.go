package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTable(name string) *Table {
	return &Table{
		Name: name,
		Columns: []*Column{
			{Name: "Id", Type: TypeDescriptor{Kind: DbTypeInt32}, PrimaryKey: true},
			{Name: "Name", Type: TypeDescriptor{Kind: DbTypeString}.WithLength(100)},
		},
		Indexes: []*Index{{Name: "IX_" + name + "_Name", Columns: []string{"Name"}}},
	}
}

func TestDatabaseValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := &Database{Name: "app", Tables: []*Table{validTable("A"), validTable("B")}}
		assert.NoError(t, db.Validate())
	})

	t.Run("nil database", func(t *testing.T) {
		var db *Database
		err := db.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database is nil")
	})

	t.Run("duplicate table", func(t *testing.T) {
		db := &Database{Name: "app", Tables: []*Table{validTable("A"), {Name: "a"}}}
		err := db.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate table name "a"`)
	})

	t.Run("index name shared across tables", func(t *testing.T) {
		a, b := validTable("A"), validTable("B")
		b.Indexes[0].Name = a.Indexes[0].Name
		err := (&Database{Name: "app", Tables: []*Table{a, b}}).Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `index name "IX_A_Name" used by tables "A" and "B"`)
	})
}

func TestTableValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Table)
		errMsg string
	}{
		{"empty name", func(t *Table) { t.Name = " " }, "table name is empty"},
		{"no columns", func(t *Table) { t.Columns = nil; t.Indexes = nil }, "table has no columns"},
		{"nil column", func(t *Table) { t.Columns[1] = nil }, "column at index 1 is nil"},
		{"duplicate column", func(t *Table) { t.Columns[1].Name = "ID" }, `duplicate column name "ID"`},
		{"unknown type", func(t *Table) { t.Columns[1].Type = TypeDescriptor{} }, "column type is unknown"},
		{"negative length", func(t *Table) { t.Columns[1].Type = TypeDescriptor{Kind: DbTypeString}.WithLength(-1) }, "length must not be negative"},
		{"scale over precision", func(t *Table) {
			t.Columns[1].Type = TypeDescriptor{Kind: DbTypeDecimal, Precision: 2, Scale: 4}
		}, "scale exceeds precision"},
		{"index without columns", func(t *Table) { t.Indexes[0].Columns = nil }, "index has no columns"},
		{"index on unknown column", func(t *Table) { t.Indexes[0].Columns = []string{"Nope"} }, `unknown column "Nope"`},
		{"unnamed index", func(t *Table) { t.Indexes[0].Name = "" }, "index name is empty"},
		{"duplicate index", func(t *Table) {
			t.Indexes = append(t.Indexes, &Index{Name: t.Indexes[0].Name, Columns: []string{"Id"}})
		}, "duplicate index name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := validTable("Users")
			tt.mutate(table)
			err := table.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)

			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}

	t.Run("introspected native type is accepted", func(t *testing.T) {
		table := validTable("Docs")
		table.Columns[1].Type = TypeDescriptor{}
		table.Columns[1].NativeType = "XMLTYPE"
		assert.NoError(t, table.Validate())
	})
}
