// Package introspect reads live schema information from a database catalog.
// Each dialect registers an Introspecter that knows its catalog views; the
// metadata cache and the CLI look them up through NewIntrospecter.
package introspect

import (
	"context"
	"fmt"
	"sync"

	"oradialect/internal/core"
	"oradialect/internal/dialect"
)

// Catalog answers per-table column questions. Errors are returned exactly
// as the connection reported them.
type Catalog interface {
	Columns(ctx context.Context, q dialect.Querier, tableName string) ([]core.ColumnMetadata, error)
	ColumnCount(ctx context.Context, q dialect.Querier, tableName string) (int, error)
}

// Introspecter reads the whole current schema and also serves as a Catalog.
type Introspecter interface {
	Catalog
	Introspect(ctx context.Context, q dialect.Querier) (*core.Database, error)
}

var (
	registry = make(map[dialect.Type]func() Introspecter)
	mu       sync.RWMutex
)

func Register(d dialect.Type, fn func() Introspecter) {
	mu.Lock()
	defer mu.Unlock()
	registry[d] = fn
}

func NewIntrospecter(d dialect.Type) (Introspecter, error) {
	mu.RLock()
	fn, ok := registry[d]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unsupported dialect %v", d)
	}

	return fn(), nil
}
