package oracle

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oradialect/internal/core"
)

func newMockDB(t *testing.T, matcher sqlmock.QueryMatcher) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestCatalogColumns(t *testing.T) {
	db, mock := newMockDB(t, sqlmock.QueryMatcherEqual)
	mock.ExpectQuery(columnsQuery).
		WithArgs("Document").
		WillReturnRows(sqlmock.NewRows([]string{"ColumnName", "DataType"}).
			AddRow("Id", "NUMBER").
			AddRow("Title", "VARCHAR2").
			AddRow("Created", "TIMESTAMP(6)"))

	cols, err := New().Columns(context.Background(), db, "Document")
	require.NoError(t, err)
	assert.Equal(t, []core.ColumnMetadata{
		{ColumnName: "Id", DataType: "NUMBER"},
		{ColumnName: "Title", DataType: "VARCHAR2"},
		{ColumnName: "Created", DataType: "TIMESTAMP(6)"},
	}, cols)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogColumnsUnknownTable(t *testing.T) {
	db, mock := newMockDB(t, sqlmock.QueryMatcherEqual)
	mock.ExpectQuery(columnsQuery).
		WithArgs("Nope").
		WillReturnRows(sqlmock.NewRows([]string{"ColumnName", "DataType"}))

	cols, err := New().Columns(context.Background(), db, "Nope")
	require.NoError(t, err)
	assert.Empty(t, cols)
}

func TestCatalogErrorsPassThrough(t *testing.T) {
	boom := errors.New("ORA-03113: end-of-file on communication channel")

	t.Run("columns", func(t *testing.T) {
		db, mock := newMockDB(t, sqlmock.QueryMatcherEqual)
		mock.ExpectQuery(columnsQuery).WithArgs("Document").WillReturnError(boom)
		_, err := New().Columns(context.Background(), db, "Document")
		assert.Same(t, boom, err)
	})

	t.Run("count", func(t *testing.T) {
		db, mock := newMockDB(t, sqlmock.QueryMatcherEqual)
		mock.ExpectQuery(countQuery).WithArgs("Document").WillReturnError(boom)
		_, err := New().ColumnCount(context.Background(), db, "Document")
		assert.Same(t, boom, err)
	})
}

func TestCatalogColumnCount(t *testing.T) {
	db, mock := newMockDB(t, sqlmock.QueryMatcherEqual)
	mock.ExpectQuery(countQuery).
		WithArgs("Document").
		WillReturnRows(sqlmock.NewRows([]string{"ColumnName"}).AddRow(int64(3)))

	n, err := New().ColumnCount(context.Background(), db, "Document")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogQueriesStayInCurrentSchema(t *testing.T) {
	const ownerFilter = `WHERE table_name = :1 AND owner = SYS_CONTEXT\('USERENV','CURRENT_SCHEMA'\)`

	db, mock := newMockDB(t, sqlmock.QueryMatcherRegexp)
	mock.ExpectQuery(`FROM all_tab_columns ` + ownerFilter + ` ORDER BY column_id`).
		WithArgs("Document").
		WillReturnRows(sqlmock.NewRows([]string{"ColumnName", "DataType"}).AddRow("Id", "NUMBER"))
	mock.ExpectQuery(`SELECT COUNT\(column_name\) .* FROM all_tab_columns ` + ownerFilter + `$`).
		WithArgs("Document").
		WillReturnRows(sqlmock.NewRows([]string{"ColumnName"}).AddRow(int64(1)))

	cols, err := New().Columns(context.Background(), db, "Document")
	require.NoError(t, err)
	assert.Len(t, cols, 1)
	n, err := New().ColumnCount(context.Background(), db, "Document")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
