package oracle

import (
	"context"

	"oradialect/internal/core"
	"oradialect/internal/dialect"
)

// Both lookups stay inside the session's current schema; a same-named
// table owned by another visible schema would otherwise add its columns.
const (
	columnsQuery = `SELECT column_name AS "ColumnName", data_type AS "DataType" FROM all_tab_columns WHERE table_name = :1 AND owner = SYS_CONTEXT('USERENV','CURRENT_SCHEMA') ORDER BY column_id`
	countQuery   = `SELECT COUNT(column_name) AS "ColumnName" FROM all_tab_columns WHERE table_name = :1 AND owner = SYS_CONTEXT('USERENV','CURRENT_SCHEMA')`
)

// Columns returns the live columns of tableName in catalog order. The table
// name is matched exactly as stored by Oracle.
func (i *introspecter) Columns(ctx context.Context, q dialect.Querier, tableName string) ([]core.ColumnMetadata, error) {
	rows, err := q.QueryContext(ctx, columnsQuery, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []core.ColumnMetadata
	for rows.Next() {
		var c core.ColumnMetadata
		if err := rows.Scan(&c.ColumnName, &c.DataType); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cols, nil
}

// ColumnCount returns the number of live columns of tableName.
func (i *introspecter) ColumnCount(ctx context.Context, q dialect.Querier, tableName string) (int, error) {
	rows, err := q.QueryContext(ctx, countQuery, tableName)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, err
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return count, nil
}
