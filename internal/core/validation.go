package core

import (
	"fmt"
	"strings"
)

// ValidationError represents an error during schema validation.
type ValidationError struct {
	Entity  string
	Name    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s %q field %q: %s", e.Entity, e.Name, e.Field, e.Message)
	}
	return fmt.Sprintf("validation error in %s %q: %s", e.Entity, e.Name, e.Message)
}

// Validate checks if the Database schema is valid and returns an error if not.
// Index names are checked across the whole schema since Oracle keeps them in
// one namespace per owner.
func (db *Database) Validate() error {
	if db == nil {
		return &ValidationError{Entity: "database", Message: "database is nil"}
	}

	seen := make(map[string]bool)
	seenIdx := make(map[string]string)
	for i, t := range db.Tables {
		if t == nil {
			return &ValidationError{Entity: "database", Name: db.Name, Message: fmt.Sprintf("table at index %d is nil", i)}
		}
		nameLower := strings.ToLower(t.Name)
		if seen[nameLower] {
			return &ValidationError{Entity: "database", Name: db.Name, Message: fmt.Sprintf("duplicate table name %q", t.Name)}
		}
		seen[nameLower] = true

		if err := t.Validate(); err != nil {
			return err
		}

		for _, idx := range t.Indexes {
			key := strings.ToLower(idx.Name)
			if owner, ok := seenIdx[key]; ok && owner != t.Name {
				return &ValidationError{Entity: "database", Name: db.Name,
					Message: fmt.Sprintf("index name %q used by tables %q and %q", idx.Name, owner, t.Name)}
			}
			seenIdx[key] = t.Name
		}
	}
	return nil
}

// Validate checks if the Table definition is valid and returns an error if not.
func (t *Table) Validate() error {
	if t == nil {
		return &ValidationError{Entity: "table", Message: "table is nil"}
	}
	if strings.TrimSpace(t.Name) == "" {
		return &ValidationError{Entity: "table", Name: "(empty)", Message: "table name is empty"}
	}
	if len(t.Columns) == 0 {
		return &ValidationError{Entity: "table", Name: t.Name, Message: "table has no columns"}
	}

	seenCols := make(map[string]bool)
	for i, c := range t.Columns {
		if c == nil {
			return &ValidationError{Entity: "table", Name: t.Name, Message: fmt.Sprintf("column at index %d is nil", i)}
		}
		if err := c.Validate(); err != nil {
			return err
		}
		nameLower := strings.ToLower(c.Name)
		if seenCols[nameLower] {
			return &ValidationError{Entity: "table", Name: t.Name, Message: fmt.Sprintf("duplicate column name %q", c.Name)}
		}
		seenCols[nameLower] = true
	}

	seenIdx := make(map[string]bool)
	for i, idx := range t.Indexes {
		if idx == nil {
			return &ValidationError{Entity: "table", Name: t.Name, Message: fmt.Sprintf("index at index %d is nil", i)}
		}
		if err := idx.Validate(t); err != nil {
			return err
		}
		nameLower := strings.ToLower(idx.Name)
		if seenIdx[nameLower] {
			return &ValidationError{Entity: "table", Name: t.Name, Message: fmt.Sprintf("duplicate index name %q", idx.Name)}
		}
		seenIdx[nameLower] = true
	}

	return nil
}

// Validate checks if the Column definition is valid and returns an error if not.
func (c *Column) Validate() error {
	if c == nil {
		return &ValidationError{Entity: "column", Message: "column is nil"}
	}
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Entity: "column", Name: "(empty)", Message: "column name is empty"}
	}
	if c.Type.Kind == DbTypeUnknown && strings.TrimSpace(c.NativeType) == "" {
		return &ValidationError{Entity: "column", Name: c.Name, Field: "Type", Message: "column type is unknown"}
	}
	if c.Type.Length != nil && *c.Type.Length < 0 {
		return &ValidationError{Entity: "column", Name: c.Name, Field: "Length", Message: "length must not be negative"}
	}
	if c.Type.Scale > c.Type.Precision && c.Type.Precision != 0 {
		return &ValidationError{Entity: "column", Name: c.Name, Field: "Scale", Message: "scale exceeds precision"}
	}
	return nil
}

// Validate checks that the index is named and only covers columns of t.
func (i *Index) Validate(t *Table) error {
	if i == nil {
		return &ValidationError{Entity: "index", Message: "index is nil"}
	}
	if strings.TrimSpace(i.Name) == "" {
		return &ValidationError{Entity: "index", Name: "(empty)", Message: "index name is empty"}
	}
	if len(i.Columns) == 0 {
		return &ValidationError{Entity: "index", Name: i.Name, Field: "Columns", Message: "index has no columns"}
	}
	for j, col := range i.Columns {
		if strings.TrimSpace(col) == "" {
			return &ValidationError{Entity: "index", Name: i.Name, Message: fmt.Sprintf("index column at position %d has empty name", j)}
		}
		if t != nil && t.FindColumn(col) == nil {
			return &ValidationError{Entity: "index", Name: i.Name, Message: fmt.Sprintf("unknown column %q", col)}
		}
	}
	return nil
}
