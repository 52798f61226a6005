// Package oracle provides the Oracle dialect: DDL type names, pagination,
// concatenation, quoting, index management, default-value inserts, and
// parameter binding typed by the live catalog.
package oracle

import (
	"strconv"
	"strings"

	"oradialect/internal/dialect"
	"oradialect/internal/introspect"
	oracleintrospect "oradialect/internal/introspect/oracle"
	"oradialect/internal/metadata"
)

const (
	quoteString         = `"`
	parameterNamePrefix = ":"
)

var _ dialect.Dialect = (*Dialect)(nil)

func init() {
	dialect.RegisterDialect(dialect.Oracle, func() dialect.Dialect {
		return New()
	})
}

// Dialect is the Oracle implementation of dialect.Dialect. It owns the
// metadata cache used for parameter binding and default-value inserts, so
// every Dialect value has its own cache unless one is shared via WithCache.
type Dialect struct {
	cache   *metadata.Cache
	methods map[string]string
}

// Option configures a Dialect.
type Option func(*Dialect)

// WithCache shares an existing metadata cache, e.g. one per process.
func WithCache(c *metadata.Cache) Option {
	return func(d *Dialect) { d.cache = c }
}

// WithCatalog builds the dialect's cache on top of the given catalog
// instead of the Oracle catalog views.
func WithCatalog(c introspect.Catalog) Option {
	return func(d *Dialect) { d.cache = metadata.New(c) }
}

// New creates an Oracle dialect.
func New(opts ...Option) *Dialect {
	d := &Dialect{
		methods: map[string]string{
			"second": "extract(second from to_timestamp(to_char({0}, 'DD-MON-YY HH:MI:SS')))",
			"minute": "extract(minute from to_timestamp(to_char({0}, 'DD-MON-YY HH:MI:SS')))",
			"hour":   "extract(hour from to_timestamp(to_char({0}, 'DD-MON-YY HH:MI:SS')))",
			"day":    "extract(day from {0})",
			"month":  "extract(month from {0})",
			"year":   "extract(year from {0})",
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.cache == nil {
		d.cache = metadata.New(oracleintrospect.New())
	}
	return d
}

// Name returns the name of the Oracle dialect.
func (d *Dialect) Name() dialect.Type { return dialect.Oracle }

// Cache returns the metadata cache owned by the dialect.
func (d *Dialect) Cache() *metadata.Cache { return d.cache }

func (d *Dialect) IsSpecialDistinctRequired() bool { return true }
func (d *Dialect) SupportsIdentityColumns() bool   { return false }
func (d *Dialect) IdentitySelectString() string    { return "" }
func (d *Dialect) ParameterNamePrefix() string     { return parameterNamePrefix }
func (d *Dialect) StatementEnd() string            { return "" }

// Method renders a registered function template, replacing {0}, {1}, ...
// with args in order.
func (d *Dialect) Method(name string, args ...string) (string, bool) {
	tmpl, ok := d.methods[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	out := tmpl
	for i, arg := range args {
		out = strings.ReplaceAll(out, "{"+strconv.Itoa(i)+"}", arg)
	}
	return out, true
}
