package oracle

import (
	"oradialect/internal/core"
)

func introspectIndexes(ic *introspectCtx, t *core.Table) error {
	rows, err := ic.q.QueryContext(ic.ctx, `
		SELECT i.index_name, i.uniqueness, c.column_name
		FROM user_indexes i
		JOIN user_ind_columns c ON c.index_name = i.index_name
		WHERE i.table_name = :1
		AND NOT EXISTS (
			SELECT 1 FROM user_constraints k
			WHERE k.index_name = i.index_name AND k.constraint_type = 'P'
		)
		ORDER BY i.index_name, c.column_position
	`, t.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	byName := make(map[string]*core.Index)
	for rows.Next() {
		var indexName, uniqueness, column string
		if err := rows.Scan(&indexName, &uniqueness, &column); err != nil {
			return err
		}

		idx, ok := byName[indexName]
		if !ok {
			idx = &core.Index{Name: indexName, Unique: uniqueness == "UNIQUE"}
			byName[indexName] = idx
			t.Indexes = append(t.Indexes, idx)
		}
		idx.Columns = append(idx.Columns, column)
	}

	return rows.Err()
}

func introspectPrimaryKey(ic *introspectCtx, t *core.Table) error {
	rows, err := ic.q.QueryContext(ic.ctx, `
		SELECT c.column_name
		FROM user_constraints k
		JOIN user_cons_columns c ON c.constraint_name = k.constraint_name
		WHERE k.table_name = :1 AND k.constraint_type = 'P'
		ORDER BY c.position
	`, t.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var column string
		if err := rows.Scan(&column); err != nil {
			return err
		}
		if col := t.FindColumn(column); col != nil {
			col.PrimaryKey = true
		}
	}

	return rows.Err()
}
