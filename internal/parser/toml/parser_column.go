package toml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"oradialect/internal/core"
)

// tomlColumn maps [[tables.columns]].
type tomlColumn struct {
	Name       string `toml:"name"`
	Type       string `toml:"type"`
	Length     *int   `toml:"length"`
	Precision  uint8  `toml:"precision"`
	Scale      uint8  `toml:"scale"`
	PrimaryKey bool   `toml:"primary_key"`
	Nullable   bool   `toml:"nullable"`
	Comment    string `toml:"comment"`

	// DefaultValue accepts string, bool, or number from TOML.
	// The converter normalizes everything to a string.
	DefaultValue any `toml:"default"`
}

func (c *converter) convertColumn(tc *tomlColumn) (*core.Column, error) {
	if err := c.validateColumnName(tc.Name); err != nil {
		return nil, err
	}

	kind, err := core.ParseDbType(tc.Type)
	if err != nil {
		return nil, err
	}
	if tc.Length != nil && *tc.Length < 0 {
		return nil, fmt.Errorf("negative length %d", *tc.Length)
	}

	col := &core.Column{
		Name:       tc.Name,
		Type:       core.TypeDescriptor{Kind: kind, Length: tc.Length, Precision: tc.Precision, Scale: tc.Scale},
		Nullable:   tc.Nullable,
		PrimaryKey: tc.PrimaryKey,
		Comment:    tc.Comment,
	}

	if tc.DefaultValue != nil {
		v, err := normalizeDefault(tc.DefaultValue)
		if err != nil {
			return nil, err
		}
		col.DefaultValue = &v
	}

	return col, nil
}

func (c *converter) validateColumnName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("column name is empty")
	}
	if len(name) > c.maxColumn {
		return fmt.Errorf("column %q exceeds maximum length %d", name, c.maxColumn)
	}
	if c.nameRe != nil && !c.nameRe.MatchString(name) {
		return fmt.Errorf("column %q does not match allowed pattern %q", name, c.nameRe.String())
	}
	return nil
}

func normalizeDefault(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported default value type %T", v)
	}
}
