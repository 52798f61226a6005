// Package dialect defines the contract a persistence engine uses to talk to a
// specific SQL backend: DDL type names, pagination, concatenation, quoting,
// index management, and parameter binding. Concrete dialects register
// themselves in a registry keyed by Type.
package dialect

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"oradialect/internal/core"
)

type Type string

const (
	Oracle Type = "oracle"
)

// Builder is the append-only statement sink the engine hands to a dialect
// while a statement is assembled.
type Builder interface {
	Trail(text string)
}

// Querier is the connection handle used for catalog lookups. *sql.DB,
// *sql.Tx and *sql.Conn all satisfy it. Dialects never keep it beyond the
// call it was passed to.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// ParameterSet is the native parameter object passed to statement execution.
type ParameterSet interface {
	Len() int
	Names() []string
	// Args returns the values as database/sql arguments.
	Args() []any
}

// Dialect is a backend-specific strategy translating abstract persistence
// operations into native SQL.
type Dialect interface {
	Name() Type

	GetTypeName(desc core.TypeDescriptor) (string, error)
	Page(b Builder, offset, limit string)
	Concat(sb *strings.Builder, generators ...func(*strings.Builder))
	QuoteForColumnName(name string) string
	QuoteForTableName(name string) string
	GetDropIndexString(indexName, tableName string) string

	// DefaultValuesInsert is the token the engine places where an
	// "all columns default" insert would carry its value list.
	DefaultValuesInsert() string
	RewriteDefaultInsert(ctx context.Context, q Querier, insertSQL, tableName string) (string, error)

	// Bind types the fields of bag by the live columns of tableName.
	// Fields without a matching column are omitted.
	Bind(ctx context.Context, q Querier, bag core.Bindable, tableName string) (ParameterSet, error)
	// BindIndex types the fields of an index record by their declared types.
	BindIndex(index core.IndexRecord) (ParameterSet, error)

	ParameterNamePrefix() string
	StatementEnd() string
	SupportsIdentityColumns() bool
	IdentitySelectString() string
	IsSpecialDistinctRequired() bool

	// Method renders a named SQL function template such as "year" with
	// the given argument expressions.
	Method(name string, args ...string) (string, bool)
}

var (
	registry = map[Type]func() Dialect{}
	mu       sync.RWMutex
)

// RegisterDialect creates a new registry entry for the specified dialect.
func RegisterDialect(d Type, ctor func() Dialect) {
	mu.Lock()
	defer mu.Unlock()
	registry[d] = ctor
}

// GetDialect returns a new instance of the dialect registered under d, or
// nil when nothing is registered.
func GetDialect(d Type) Dialect {
	mu.RLock()
	ctor, ok := registry[d]
	mu.RUnlock()
	if !ok {
		return nil
	}
	return ctor()
}

// SQLBuilder is a Builder backed by a strings.Builder.
type SQLBuilder struct {
	sb strings.Builder
}

// NewSQLBuilder returns a builder seeded with text.
func NewSQLBuilder(text string) *SQLBuilder {
	b := &SQLBuilder{}
	b.sb.WriteString(text)
	return b
}

// Trail appends text to the statement.
func (b *SQLBuilder) Trail(text string) { b.sb.WriteString(text) }

func (b *SQLBuilder) String() string { return b.sb.String() }

// Reset empties the builder.
func (b *SQLBuilder) Reset() { b.sb.Reset() }
