package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseFindTable(t *testing.T) {
	db := &Database{
		Name: "testdb",
		Tables: []*Table{
			{Name: "users"},
			{Name: "orders"},
			{Name: "Products"},
		},
	}

	t.Run("find existing table", func(t *testing.T) {
		table := db.FindTable("users")
		assert.NotNil(t, table)
		assert.Equal(t, "users", table.Name)
	})

	t.Run("find existing table case insensitive", func(t *testing.T) {
		table := db.FindTable("products")
		assert.NotNil(t, table)
		assert.Equal(t, "Products", table.Name)
	})

	t.Run("table not found", func(t *testing.T) {
		assert.Nil(t, db.FindTable("nonexistent"))
	})
}

func TestTableLookups(t *testing.T) {
	table := &Table{
		Name: "Users",
		Columns: []*Column{
			{Name: "Id", PrimaryKey: true},
			{Name: "TenantId", PrimaryKey: true},
			{Name: "Email"},
		},
		Indexes: []*Index{{Name: "IX_Users_Email", Columns: []string{"Email"}}},
	}

	assert.Equal(t, "Email", table.FindColumn("EMAIL").Name)
	assert.Nil(t, table.FindColumn("missing"))
	assert.Equal(t, "IX_Users_Email", table.FindIndex("ix_users_email").Name)
	assert.Nil(t, table.FindIndex("missing"))
	assert.Equal(t, []string{"Id", "TenantId"}, table.PrimaryKeyColumns())
	assert.Equal(t, "Table: Users (3 cols, 1 indexes)", table.String())
}
