// Package metadata caches live column metadata per table. Entries are read
// through from the database catalog on first access and kept for the
// lifetime of the Cache; the schema is assumed stable once migrated.
//
// A Cache is safe for concurrent use by any number of sessions. Concurrent
// misses for the same table share one in-flight catalog query; a failed
// query is returned to every waiter and nothing is stored.
package metadata

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"oradialect/internal/core"
	"oradialect/internal/dialect"
	"oradialect/internal/introspect"
)

const (
	columnsKeyPrefix = "columns:"
	countKeyPrefix   = "count:"
)

// Cache maps table name to column metadata and to column count. The table
// name is used verbatim as the key, in the case the backend stores it.
type Cache struct {
	catalog introspect.Catalog

	mu      sync.RWMutex
	columns map[string][]core.ColumnMetadata
	counts  map[string]int

	group singleflight.Group
}

// New creates an empty cache backed by catalog.
func New(catalog introspect.Catalog) *Cache {
	return &Cache{
		catalog: catalog,
		columns: make(map[string][]core.ColumnMetadata),
		counts:  make(map[string]int),
	}
}

// Columns returns the live columns of tableName. On a miss the catalog is
// queried through q; on a hit q is not touched.
func (c *Cache) Columns(ctx context.Context, q dialect.Querier, tableName string) ([]core.ColumnMetadata, error) {
	if cols, ok := c.cachedColumns(tableName); ok {
		return slices.Clone(cols), nil
	}

	v, err, _ := c.group.Do(columnsKeyPrefix+tableName, func() (any, error) {
		if cols, ok := c.cachedColumns(tableName); ok {
			return cols, nil
		}
		cols, err := c.catalog.Columns(ctx, q, tableName)
		if err != nil {
			return nil, err
		}
		cols = slices.Clone(cols)

		c.mu.Lock()
		c.columns[tableName] = cols
		c.mu.Unlock()
		return cols, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]core.ColumnMetadata)), nil
}

// ColumnCount returns the number of live columns of tableName, read through
// the same way as Columns.
func (c *Cache) ColumnCount(ctx context.Context, q dialect.Querier, tableName string) (int, error) {
	c.mu.RLock()
	n, ok := c.counts[tableName]
	c.mu.RUnlock()
	if ok {
		return n, nil
	}

	v, err, _ := c.group.Do(countKeyPrefix+tableName, func() (any, error) {
		c.mu.RLock()
		n, ok := c.counts[tableName]
		c.mu.RUnlock()
		if ok {
			return n, nil
		}
		n, err := c.catalog.ColumnCount(ctx, q, tableName)
		if err != nil {
			return 0, err
		}

		c.mu.Lock()
		c.counts[tableName] = n
		c.mu.Unlock()
		return n, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// Len returns the number of tables with cached columns and cached counts.
func (c *Cache) Len() (columns, counts int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.columns), len(c.counts)
}

func (c *Cache) cachedColumns(tableName string) ([]core.ColumnMetadata, bool) {
	c.mu.RLock()
	cols, ok := c.columns[tableName]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return cols, true
}
