package output

import (
	"encoding/json"

	"oradialect/internal/core"
	"oradialect/internal/migration"
)

type jsonFormatter struct{}

type migrationSummary struct {
	Notes              int `json:"notes"`
	SQLStatements      int `json:"sqlStatements"`
	RollbackStatements int `json:"rollbackStatements"`
}

type migrationPayload struct {
	Format   string           `json:"format"`
	Summary  migrationSummary `json:"summary"`
	Notes    []string         `json:"notes,omitempty"`
	SQL      []string         `json:"sql,omitempty"`
	Rollback []string         `json:"rollback,omitempty"`
}

type columnsPayload struct {
	Format  string                `json:"format"`
	Table   string                `json:"table"`
	Count   int                   `json:"count"`
	Columns []core.ColumnMetadata `json:"columns"`
}

type Payload interface {
	migrationPayload | columnsPayload
}

func (jsonFormatter) FormatMigration(m *migration.Migration) (string, error) {
	payload := migrationPayload{Format: string(FormatJSON)}
	if m != nil {
		notes := m.Notes()
		sql := normalizeStatements(m.SQLStatements())
		rollback := normalizeStatements(m.RollbackStatements())

		payload.Notes = notes
		payload.SQL = sql
		payload.Rollback = rollback
		payload.Summary = migrationSummary{
			Notes:              len(notes),
			SQLStatements:      len(sql),
			RollbackStatements: len(rollback),
		}
	}
	return marshalJSON(payload)
}

func (jsonFormatter) FormatColumns(table string, columns []core.ColumnMetadata, count int) (string, error) {
	if columns == nil {
		columns = []core.ColumnMetadata{}
	}
	return marshalJSON(columnsPayload{
		Format:  string(FormatJSON),
		Table:   table,
		Count:   count,
		Columns: columns,
	})
}

func marshalJSON[T Payload](payload T) (string, error) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
