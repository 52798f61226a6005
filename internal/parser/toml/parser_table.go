package toml

import (
	"errors"
	"fmt"
	"strings"

	"oradialect/internal/core"
)

// tomlTable maps [[tables]].
type tomlTable struct {
	Name    string       `toml:"name"`
	Comment string       `toml:"comment"`
	Columns []tomlColumn `toml:"columns"`
	Indexes []tomlIndex  `toml:"indexes"`
}

func (c *converter) convertTable(tt *tomlTable) (*core.Table, error) {
	if err := c.validateTableName(tt.Name); err != nil {
		return nil, err
	}
	if len(tt.Columns) == 0 {
		return nil, errors.New("table has no columns")
	}

	t := &core.Table{
		Name:    tt.Name,
		Comment: tt.Comment,
		Columns: make([]*core.Column, 0, len(tt.Columns)),
	}

	seenColumns := make(map[string]bool, len(tt.Columns))
	for i := range tt.Columns {
		col, err := c.convertColumn(&tt.Columns[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", tt.Columns[i].Name, err)
		}
		key := strings.ToLower(col.Name)
		if seenColumns[key] {
			return nil, fmt.Errorf("duplicate column %q", col.Name)
		}
		seenColumns[key] = true
		t.Columns = append(t.Columns, col)
	}

	for i := range tt.Indexes {
		idx, err := c.convertIndex(&tt.Indexes[i], t)
		if err != nil {
			return nil, fmt.Errorf("index %q: %w", tt.Indexes[i].Name, err)
		}
		t.Indexes = append(t.Indexes, idx)
	}

	return t, nil
}

func (c *converter) validateTableName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("table name is empty")
	}
	key := strings.ToLower(name)
	if c.seenTables[key] {
		return fmt.Errorf("duplicate table name %q", name)
	}
	c.seenTables[key] = true

	if len(name) > c.maxTable {
		return fmt.Errorf("table name %q exceeds maximum length %d", name, c.maxTable)
	}
	if c.nameRe != nil && !c.nameRe.MatchString(name) {
		return fmt.Errorf("table name %q does not match allowed pattern %q", name, c.nameRe.String())
	}
	return nil
}
