package output

import (
	"fmt"
	"io"
	"strings"

	"oradialect/internal/core"
	"oradialect/internal/migration"
)

type sqlFormatter struct{}

// FormatMigration formats a migration in SQL format.
func (sqlFormatter) FormatMigration(m *migration.Migration) (string, error) {
	if m == nil {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("-- oradialect migration\n")
	sb.WriteString("-- Review before running in production.\n")

	writeCommentSection(&sb, "NOTES", m.Notes())

	stmts := normalizeStatements(m.SQLStatements())
	rb := m.RollbackStatements()

	if len(stmts) == 0 {
		sb.WriteString("\n-- No SQL statements generated.\n")
		return sb.String(), nil
	}

	sb.WriteString("\n-- SQL\n")
	for _, stmt := range stmts {
		sb.WriteString(stmt)
		sb.WriteString("\n")
	}

	if len(rb) > 0 {
		sb.WriteString("\n-- ROLLBACK SQL (run separately)\n")
		writeRollbackAsComments(&sb, rb)
	}

	return sb.String(), nil
}

// FormatColumns renders column metadata as a SQL comment block.
func (sqlFormatter) FormatColumns(table string, columns []core.ColumnMetadata, count int) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "-- table %s: %d column(s)\n", table, count)
	if len(columns) == 0 {
		sb.WriteString("-- no columns found\n")
		return sb.String(), nil
	}

	width := 0
	for _, c := range columns {
		width = max(width, len(c.ColumnName))
	}
	for _, c := range columns {
		fmt.Fprintf(&sb, "-- %-*s %s\n", width, c.ColumnName, c.DataType)
	}
	return sb.String(), nil
}

// FormatRollbackSQL formats a migration's rollback statements as SQL.
func FormatRollbackSQL(m *migration.Migration) string {
	if m == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("-- oradialect rollback\n")
	sb.WriteString("-- Run to revert the migration (review carefully).\n")

	rb := normalizeStatements(m.RollbackStatements())
	if len(rb) == 0 {
		sb.WriteString("\n-- No rollback statements generated.\n")
		return sb.String()
	}

	sb.WriteString("\n-- SQL\n")
	for _, stmt := range rb {
		sb.WriteString(stmt)
		sb.WriteString("\n")
	}

	return sb.String()
}

// WriteMigration writes a migration in the given format to w.
func WriteMigration(w io.Writer, f Formatter, m *migration.Migration) error {
	content, err := f.FormatMigration(m)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, content)
	return err
}

// WriteRollback writes formatted rollback SQL to the given writer.
func WriteRollback(w io.Writer, m *migration.Migration) error {
	_, err := io.WriteString(w, FormatRollbackSQL(m))
	return err
}

func writeCommentSection(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("\n-- " + title + "\n")
	for _, item := range items {
		for _, line := range splitCommentLines(item) {
			if line == "" {
				continue
			}
			sb.WriteString("-- - " + line + "\n")
		}
	}
}

func splitCommentLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// writeRollbackAsComments expects rollback statements already in undo order.
func writeRollbackAsComments(sb *strings.Builder, rollback []string) {
	for _, stmt := range normalizeStatements(rollback) {
		for _, line := range splitCommentLines(stmt) {
			if line == "" {
				continue
			}
			sb.WriteString("-- ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
}
