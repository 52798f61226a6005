package oracle

import (
	"strings"

	"oradialect/internal/dialect"
)

// Page appends an Oracle 12c row-limiting clause. Blank offset or limit
// values are skipped; the offset clause always precedes the limit clause.
func (d *Dialect) Page(b dialect.Builder, offset, limit string) {
	if strings.TrimSpace(offset) != "" {
		b.Trail(" OFFSET ")
		b.Trail(offset)
		b.Trail(" ROWS")
	}
	if strings.TrimSpace(limit) != "" {
		b.Trail(" FETCH NEXT ")
		b.Trail(limit)
		b.Trail(" ROWS ONLY")
	}
}

// Concat writes the fragments joined by || and wrapped in parentheses.
// Calling it with no generators is a caller error; it writes "()".
func (d *Dialect) Concat(sb *strings.Builder, generators ...func(*strings.Builder)) {
	sb.WriteString("(")
	for i, gen := range generators {
		if i > 0 {
			sb.WriteString(" || ")
		}
		gen(sb)
	}
	sb.WriteString(")")
}

// QuoteForColumnName wraps a column name in double quotes. Embedded quotes
// are not escaped; names are expected to be well formed.
func (d *Dialect) QuoteForColumnName(name string) string {
	return quoteString + name + quoteString
}

// QuoteForTableName wraps a table name in double quotes.
func (d *Dialect) QuoteForTableName(name string) string {
	return quoteString + name + quoteString
}

// GetDropIndexString returns the statement dropping indexName. Oracle index
// names are unique per schema, not per table, so tableName is accepted for
// the dialect contract but not used.
func (d *Dialect) GetDropIndexString(indexName, tableName string) string {
	return "drop index " + d.QuoteForColumnName(indexName)
}
