package oracle

import (
	"database/sql"

	"oradialect/internal/core"
)

func introspectTables(ic *introspectCtx, db *core.Database) error {
	rows, err := ic.q.QueryContext(ic.ctx, `
		SELECT t.table_name, c.comments
		FROM user_tables t
		LEFT JOIN user_tab_comments c ON c.table_name = t.table_name
		ORDER BY t.table_name
	`)
	if err != nil {
		return err
	}

	var tables []*core.Table
	for rows.Next() {
		var name string
		var comment sql.NullString
		if err := rows.Scan(&name, &comment); err != nil {
			rows.Close()
			return err
		}
		tables = append(tables, &core.Table{Name: name, Comment: comment.String})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	// Per-table queries run after the cursor is closed so a single
	// connection (or a transaction) is enough.
	for _, t := range tables {
		if err := introspectColumns(ic, t); err != nil {
			return err
		}
		if err := introspectPrimaryKey(ic, t); err != nil {
			return err
		}
		if err := introspectIndexes(ic, t); err != nil {
			return err
		}
		db.Tables = append(db.Tables, t)
	}

	return nil
}
