// Package oracle contains the introspect implementation for Oracle. It reads
// the ALL_/USER_ catalog views through the caller's connection and never
// holds on to it.
package oracle

import (
	"context"

	"oradialect/internal/core"
	"oradialect/internal/dialect"
	"oradialect/internal/introspect"
)

func init() {
	introspect.Register(dialect.Oracle, New)
}

type introspecter struct{}

type introspectCtx struct {
	q   dialect.Querier
	ctx context.Context
}

func New() introspect.Introspecter {
	return &introspecter{}
}

// Introspect reads every table owned by the connected user.
func (i *introspecter) Introspect(ctx context.Context, q dialect.Querier) (*core.Database, error) {
	ic := &introspectCtx{q: q, ctx: ctx}

	d := new(core.Database)
	if err := introspectSchemaName(ic, d); err != nil {
		return nil, err
	}
	if err := introspectTables(ic, d); err != nil {
		return nil, err
	}
	return d, nil
}

func introspectSchemaName(ic *introspectCtx, d *core.Database) error {
	rows, err := ic.q.QueryContext(ic.ctx, "SELECT SYS_CONTEXT('USERENV','CURRENT_SCHEMA') FROM DUAL")
	if err != nil {
		return err
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&d.Name); err != nil {
			return err
		}
	}
	return rows.Err()
}
