// Package output provides formatters for migrations and introspected column
// metadata. It provides two formats: SQL and JSON.
package output

import (
	"fmt"
	"strings"

	"oradialect/internal/core"
	"oradialect/internal/migration"
)

// Format is an enum type representing the available output formats.
type Format string

const (
	FormatSQL  Format = "sql"
	FormatJSON Format = "json"
)

// Formatter is an interface for formatting migrations and column metadata.
type Formatter interface {
	FormatMigration(*migration.Migration) (string, error)
	FormatColumns(table string, columns []core.ColumnMetadata, count int) (string, error)
}

// NewFormatter creates a new Formatter instance based on the given name.
// If no format is specified, defaults to SQL format.
func NewFormatter(name string) (Formatter, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case "", FormatSQL:
		return sqlFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s; use 'sql' or 'json'", name)
	}
}

// normalizeStatements trims statements and terminates each with ";" so the
// output runs as a SQL*Plus script.
func normalizeStatements(stmts []string) []string {
	var out []string
	for _, stmt := range stmts {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if !strings.HasSuffix(stmt, ";") {
			stmt += ";"
		}
		out = append(out, stmt)
	}
	return out
}
