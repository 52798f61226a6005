// Package migration holds an ordered DDL plan: statements, the statements
// that undo them, and notes for the reader.
package migration

import (
	"slices"
	"strings"

	"oradialect/internal/core"
)

// Migration struct contains all operations that need to be performed
// to bring a database to a schema.
type Migration struct {
	Operations []core.Operation
}

// Plan returns the list of operations in execution order.
func (m *Migration) Plan() []core.Operation {
	return m.Operations
}

// SQLStatements returns the statements to execute, in order.
func (m *Migration) SQLStatements() []string {
	return m.filterByKind(core.OperationSQL, func(op core.Operation) string { return op.SQL })
}

// RollbackStatements returns the statements undoing the migration. They are
// in reverse order, so the last change is undone first.
func (m *Migration) RollbackStatements() []string {
	out := m.filterByKind(core.OperationSQL, func(op core.Operation) string { return op.RollbackSQL })
	slices.Reverse(out)
	return out
}

// Notes returns the informational notes.
func (m *Migration) Notes() []string {
	return m.filterByKind(core.OperationNote, func(op core.Operation) string { return op.SQL })
}

func (m *Migration) AddStatement(stmt string) {
	if stmt = strings.TrimSpace(stmt); stmt == "" {
		return
	}
	m.Operations = append(m.Operations, core.Operation{Kind: core.OperationSQL, SQL: stmt})
}

func (m *Migration) AddStatementWithRollback(up, down string) {
	up = strings.TrimSpace(up)
	down = strings.TrimSpace(down)
	if up == "" && down == "" {
		return
	}
	m.Operations = append(m.Operations, core.Operation{Kind: core.OperationSQL, SQL: up, RollbackSQL: down})
}

func (m *Migration) AddNote(msg string) {
	if msg = strings.TrimSpace(msg); msg == "" {
		return
	}
	m.Operations = append(m.Operations, core.Operation{Kind: core.OperationNote, SQL: msg})
}

// Dedupe drops repeated notes and repeated rollback statements.
func (m *Migration) Dedupe() {
	n := len(m.Operations)
	if n == 0 {
		return
	}
	seenNote := make(map[string]struct{}, n)
	seenRollback := make(map[string]struct{}, n)
	out := make([]core.Operation, 0, n)
	for i := range m.Operations {
		op := m.Operations[i]
		op.SQL = strings.TrimSpace(op.SQL)
		op.RollbackSQL = strings.TrimSpace(op.RollbackSQL)

		switch op.Kind {
		case core.OperationSQL:
			if op.SQL == "" && op.RollbackSQL == "" {
				continue
			}
			if op.RollbackSQL != "" {
				if _, ok := seenRollback[op.RollbackSQL]; ok {
					op.RollbackSQL = ""
				} else {
					seenRollback[op.RollbackSQL] = struct{}{}
				}
			}
		case core.OperationNote:
			if op.SQL == "" {
				continue
			}
			if _, ok := seenNote[op.SQL]; ok {
				continue
			}
			seenNote[op.SQL] = struct{}{}
		}
		out = append(out, op)
	}
	m.Operations = out
}

func (m *Migration) filterByKind(kind core.OperationKind, fieldFn func(core.Operation) string) []string {
	out := make([]string, 0, len(m.Operations)/4+1)
	for i := range m.Operations {
		op := &m.Operations[i]
		if op.Kind != kind {
			continue
		}
		val := strings.TrimSpace(fieldFn(*op))
		if val == "" {
			continue
		}
		out = append(out, val)
	}
	return out
}
