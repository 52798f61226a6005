package oracle

import (
	"context"
	"strings"

	"oradialect/internal/core"
	"oradialect/internal/dialect"
)

// defaultValueInsertPlaceholder stands in for the value list of an insert
// where every column takes its default. Oracle has no DEFAULT VALUES
// shorthand, so RewriteDefaultInsert expands it once the live column count
// is known.
const defaultValueInsertPlaceholder = "defaultValueInsertStringForReplace"

// DefaultValuesInsert implements dialect.Dialect.
func (d *Dialect) DefaultValuesInsert() string { return defaultValueInsertPlaceholder }

// InsertDefaultValues returns the insert template for tableName, ready for
// RewriteDefaultInsert.
func (d *Dialect) InsertDefaultValues(tableName string) string {
	return "INSERT INTO " + d.QuoteForTableName(tableName) + " " + defaultValueInsertPlaceholder
}

// RewriteDefaultInsert replaces the placeholder in insertSQL with
// VALUES(DEFAULT,...), one DEFAULT per live column of tableName. The count
// comes from the dialect's cache and is trusted as is; a stale count
// surfaces as an arity error from Oracle when the statement runs.
func (d *Dialect) RewriteDefaultInsert(ctx context.Context, q dialect.Querier, insertSQL, tableName string) (string, error) {
	if tableName == "" {
		return "", core.ErrEmptyTableName
	}

	count, err := d.cache.ColumnCount(ctx, q, tableName)
	if err != nil {
		return "", err
	}

	return strings.ReplaceAll(insertSQL, defaultValueInsertPlaceholder, DefaultValuesList(count)), nil
}

// DefaultValuesList returns "VALUES(DEFAULT,...)" with count entries.
func DefaultValuesList(count int) string {
	if count < 0 {
		count = 0
	}
	var sb strings.Builder
	sb.WriteString("VALUES(")
	for i := range count {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString("DEFAULT")
	}
	sb.WriteString(")")
	return sb.String()
}
