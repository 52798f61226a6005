package oracle

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"oradialect/internal/core"
	"oradialect/internal/migration"
)

// GenerateSchema builds the migration creating every table and index of db.
// Rollback statements drop what was created.
func (d *Dialect) GenerateSchema(db *core.Database) (*migration.Migration, error) {
	if err := db.Validate(); err != nil {
		return nil, err
	}
	m := &migration.Migration{}

	for _, t := range db.Tables {
		if t == nil {
			continue
		}
		create, err := d.CreateTable(t)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", t.Name, err)
		}
		m.AddStatementWithRollback(create, d.DropTable(t.Name))

		for _, stmt := range d.commentStatements(t) {
			m.AddStatement(stmt)
		}

		for _, idx := range t.Indexes {
			if idx == nil {
				continue
			}
			m.AddStatementWithRollback(d.CreateIndex(t.Name, idx), d.GetDropIndexString(idx.Name, t.Name))
		}

		if hasBooleanColumn(t) {
			m.AddNote("Boolean columns are stored as NUMBER(1,0) and bound as 0/1.")
		}
	}

	m.Dedupe()
	return m, nil
}

// CreateTable generates the CREATE TABLE statement for t.
func (d *Dialect) CreateTable(t *core.Table) (string, error) {
	var lines []string
	for _, c := range t.Columns {
		if c == nil {
			continue
		}
		def, err := d.columnDefinition(c)
		if err != nil {
			return "", fmt.Errorf("column %s: %w", c.Name, err)
		}
		lines = append(lines, "  "+def)
	}

	if pk := t.PrimaryKeyColumns(); len(pk) > 0 {
		lines = append(lines, fmt.Sprintf("  CONSTRAINT %s PRIMARY KEY %s",
			d.QuoteForColumnName("PK_"+t.Name), d.formatColumns(pk)))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n)%s", d.QuoteForTableName(t.Name), strings.Join(lines, ",\n"), d.StatementEnd()), nil
}

// DropTable generates the statement dropping tableName.
func (d *Dialect) DropTable(tableName string) string {
	return "DROP TABLE " + d.QuoteForTableName(tableName) + d.StatementEnd()
}

// CreateIndex generates the statement creating idx on tableName.
func (d *Dialect) CreateIndex(tableName string, idx *core.Index) string {
	kind := "INDEX"
	if idx.Unique {
		kind = "UNIQUE INDEX"
	}
	return fmt.Sprintf("CREATE %s %s ON %s %s%s", kind, d.QuoteForColumnName(idx.Name),
		d.QuoteForTableName(tableName), d.formatColumns(idx.Columns), d.StatementEnd())
}

// QuoteString quotes a string literal, doubling embedded single quotes.
func (d *Dialect) QuoteString(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func (d *Dialect) columnDefinition(c *core.Column) (string, error) {
	typeName, err := d.columnTypeName(c)
	if err != nil {
		return "", err
	}

	parts := []string{d.QuoteForColumnName(c.Name), typeName}
	// Oracle requires DEFAULT before the NULL constraint.
	if c.DefaultValue != nil {
		parts = append(parts, "DEFAULT "+d.formatValue(*c.DefaultValue, c.Type.Kind))
	}
	if c.Nullable && !c.PrimaryKey {
		parts = append(parts, "NULL")
	} else {
		parts = append(parts, "NOT NULL")
	}
	return strings.Join(parts, " "), nil
}

// columnTypeName falls back to the catalog type of an introspected column
// that has no engine type.
func (d *Dialect) columnTypeName(c *core.Column) (string, error) {
	if c.Type.Kind == core.DbTypeUnknown && c.NativeType != "" {
		return c.NativeType, nil
	}
	return d.GetTypeName(c.Type)
}

func (d *Dialect) commentStatements(t *core.Table) []string {
	var out []string
	if cmt := strings.TrimSpace(t.Comment); cmt != "" {
		out = append(out, fmt.Sprintf("COMMENT ON TABLE %s IS %s", d.QuoteForTableName(t.Name), d.QuoteString(cmt)))
	}
	for _, c := range t.Columns {
		if c == nil {
			continue
		}
		if cmt := strings.TrimSpace(c.Comment); cmt != "" {
			out = append(out, fmt.Sprintf("COMMENT ON COLUMN %s.%s IS %s",
				d.QuoteForTableName(t.Name), d.QuoteForColumnName(c.Name), d.QuoteString(cmt)))
		}
	}
	return out
}

func (d *Dialect) formatColumns(cols []string) string {
	var quoted []string
	for _, c := range cols {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		quoted = append(quoted, d.QuoteForColumnName(c))
	}
	return "(" + strings.Join(quoted, ", ") + ")"
}

var defaultKeywords = []string{"NULL", "SYSDATE", "SYSTIMESTAMP", "CURRENT_DATE", "CURRENT_TIMESTAMP", "SYS_GUID()"}

func (d *Dialect) formatValue(v string, kind core.DbType) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "''"
	}

	upper := strings.ToUpper(v)
	if slices.Contains(defaultKeywords, upper) {
		return upper
	}

	if kind == core.DbTypeBoolean {
		switch strings.ToLower(v) {
		case "true":
			return "1"
		case "false":
			return "0"
		}
	}

	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return v
	}

	if strings.ContainsAny(v, "()") {
		return v
	}

	// Catalog defaults arrive as literals already.
	if len(v) >= 2 && strings.HasPrefix(v, "'") && strings.HasSuffix(v, "'") {
		return v
	}

	return d.QuoteString(v)
}

func hasBooleanColumn(t *core.Table) bool {
	return slices.ContainsFunc(t.Columns, func(c *core.Column) bool {
		return c != nil && c.Type.Kind == core.DbTypeBoolean
	})
}
