package toml

import (
	"errors"
	"fmt"
	"strings"

	"oradialect/internal/core"
)

// tomlIndex maps [[tables.indexes]].
type tomlIndex struct {
	Name    string   `toml:"name"`
	Columns []string `toml:"columns"`
	Unique  bool     `toml:"unique"`
}

func (c *converter) convertIndex(ti *tomlIndex, t *core.Table) (*core.Index, error) {
	if strings.TrimSpace(ti.Name) == "" {
		return nil, errors.New("index name is empty")
	}
	if len(ti.Columns) == 0 {
		return nil, errors.New("index has no columns")
	}
	for _, col := range ti.Columns {
		if t.FindColumn(col) == nil {
			return nil, fmt.Errorf("unknown column %q", col)
		}
	}
	// Index names share one namespace per schema, not per table.
	key := strings.ToLower(ti.Name)
	if c.seenIndexes[key] {
		return nil, fmt.Errorf("duplicate index %q", ti.Name)
	}
	c.seenIndexes[key] = true

	return &core.Index{
		Name:    ti.Name,
		Columns: ti.Columns,
		Unique:  ti.Unique,
	}, nil
}
