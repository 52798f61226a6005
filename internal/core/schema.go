// Package core contains the types shared by every part of oradialect: the
// engine-level type system, bindable records, live column metadata, and the
// schema model used for DDL generation.
package core

import (
	"fmt"
	"strings"
)

// Database represents a schema definition.
type Database struct {
	Name   string   `json:"name"`
	Tables []*Table `json:"tables"`
}

// Table represents a table in the schema.
type Table struct {
	Name    string    `json:"name"`
	Columns []*Column `json:"columns"`
	Indexes []*Index  `json:"indexes,omitempty"`
	Comment string    `json:"comment,omitempty"`
}

// Column represents a single column inside schema.
type Column struct {
	Name         string         `json:"name"`
	Type         TypeDescriptor `json:"type"`
	Nullable     bool           `json:"nullable"`
	PrimaryKey   bool           `json:"primaryKey"`
	DefaultValue *string        `json:"defaultValue,omitempty"`
	Comment      string         `json:"comment,omitempty"`

	// NativeType is set by introspection and holds the declared catalog type.
	NativeType string `json:"nativeType,omitempty"`
}

// Index represents a table index.
type Index struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Unique  bool     `json:"unique,omitempty"`
}

// FindTable looks for a table by name inside a database.
func (db *Database) FindTable(name string) *Table {
	for _, t := range db.Tables {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return nil
}

// FindColumn looks for a column by name inside a table.
func (t *Table) FindColumn(name string) *Column {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// FindIndex looks for an index by name inside a table.
func (t *Table) FindIndex(name string) *Index {
	for _, i := range t.Indexes {
		if strings.EqualFold(i.Name, name) {
			return i
		}
	}
	return nil
}

// PrimaryKeyColumns returns the names of the columns flagged as primary key,
// in declaration order.
func (t *Table) PrimaryKeyColumns() []string {
	var names []string
	for _, c := range t.Columns {
		if c.PrimaryKey {
			names = append(names, c.Name)
		}
	}
	return names
}

// String returns a short summary of the table.
func (t *Table) String() string {
	return fmt.Sprintf("Table: %s (%d cols, %d indexes)", t.Name, len(t.Columns), len(t.Indexes))
}
