package metadata

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oradialect/internal/core"
	"oradialect/internal/dialect"
)

type fakeCatalog struct {
	columns map[string][]core.ColumnMetadata
	err     error
	gate    chan struct{}

	columnCalls atomic.Int32
	countCalls  atomic.Int32
}

func (f *fakeCatalog) Columns(ctx context.Context, q dialect.Querier, table string) ([]core.ColumnMetadata, error) {
	f.columnCalls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.columns[table], nil
}

func (f *fakeCatalog) ColumnCount(ctx context.Context, q dialect.Querier, table string) (int, error) {
	f.countCalls.Add(1)
	if f.err != nil {
		return 0, f.err
	}
	return len(f.columns[table]), nil
}

var documentColumns = []core.ColumnMetadata{
	{ColumnName: "Id", DataType: "NUMBER"},
	{ColumnName: "Title", DataType: "VARCHAR2"},
	{ColumnName: "Body", DataType: "CLOB"},
}

func TestCacheColumnsHit(t *testing.T) {
	cat := &fakeCatalog{columns: map[string][]core.ColumnMetadata{"Document": documentColumns}}
	c := New(cat)
	ctx := context.Background()

	first, err := c.Columns(ctx, nil, "Document")
	require.NoError(t, err)
	second, err := c.Columns(ctx, nil, "Document")
	require.NoError(t, err)

	if diff := cmp.Diff(documentColumns, first); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached columns differ (-first +second):\n%s", diff)
	}
	assert.Equal(t, int32(1), cat.columnCalls.Load())

	cols, counts := c.Len()
	assert.Equal(t, 1, cols)
	assert.Equal(t, 0, counts)
}

func TestCacheColumnsAreCopies(t *testing.T) {
	cat := &fakeCatalog{columns: map[string][]core.ColumnMetadata{"Document": documentColumns}}
	c := New(cat)
	ctx := context.Background()

	got, err := c.Columns(ctx, nil, "Document")
	require.NoError(t, err)
	got[0].ColumnName = "Mutated"

	again, err := c.Columns(ctx, nil, "Document")
	require.NoError(t, err)
	assert.Equal(t, "Id", again[0].ColumnName)
	assert.Equal(t, "Id", documentColumns[0].ColumnName)
}

func TestCacheKeysAreCaseSensitive(t *testing.T) {
	cat := &fakeCatalog{columns: map[string][]core.ColumnMetadata{"Document": documentColumns}}
	c := New(cat)

	upper, err := c.Columns(context.Background(), nil, "DOCUMENT")
	require.NoError(t, err)
	assert.Empty(t, upper)
	assert.Equal(t, int32(1), cat.columnCalls.Load())

	_, err = c.Columns(context.Background(), nil, "Document")
	require.NoError(t, err)
	assert.Equal(t, int32(2), cat.columnCalls.Load())
}

func TestCacheErrorsAreNotCached(t *testing.T) {
	boom := errors.New("ORA-12541: TNS:no listener")
	cat := &fakeCatalog{columns: map[string][]core.ColumnMetadata{"Document": documentColumns}, err: boom}
	c := New(cat)
	ctx := context.Background()

	_, err := c.Columns(ctx, nil, "Document")
	assert.ErrorIs(t, err, boom)
	_, err = c.ColumnCount(ctx, nil, "Document")
	assert.ErrorIs(t, err, boom)

	cols, counts := c.Len()
	assert.Zero(t, cols)
	assert.Zero(t, counts)

	cat.err = nil
	got, err := c.Columns(ctx, nil, "Document")
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, int32(2), cat.columnCalls.Load())

	n, err := c.ColumnCount(ctx, nil, "Document")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCacheColumnCount(t *testing.T) {
	cat := &fakeCatalog{columns: map[string][]core.ColumnMetadata{"Document": documentColumns}}
	c := New(cat)
	ctx := context.Background()

	for range 3 {
		n, err := c.ColumnCount(ctx, nil, "Document")
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	}
	assert.Equal(t, int32(1), cat.countCalls.Load())
	assert.Zero(t, cat.columnCalls.Load())

	n, err := c.ColumnCount(ctx, nil, "Empty")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCacheConcurrentMisses(t *testing.T) {
	const callers = 32
	cat := &fakeCatalog{
		columns: map[string][]core.ColumnMetadata{"Document": documentColumns},
		gate:    make(chan struct{}),
	}
	c := New(cat)

	var wg sync.WaitGroup
	results := make([][]core.ColumnMetadata, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = c.Columns(context.Background(), nil, "Document")
		}()
	}

	close(cat.gate)
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, documentColumns, results[i])
	}
	calls := cat.columnCalls.Load()
	assert.GreaterOrEqual(t, calls, int32(1))
	assert.LessOrEqual(t, calls, int32(callers))
}
