package toml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oradialect/internal/core"
)

const documentSchema = `
[database]
name = "app"

[[tables]]
name = "Document"
comment = "stored documents"

[[tables.columns]]
name = "Id"
type = "int64"
primary_key = true

[[tables.columns]]
name = "Title"
type = "string"
length = 200
comment = "title"

[[tables.columns]]
name = "Price"
type = "decimal"
precision = 19
scale = 4
nullable = true
default = 0

[[tables.columns]]
name = "Published"
type = "bool"
default = false

[[tables.columns]]
name = "Status"
type = "string"
default = "draft"

[[tables.columns]]
name = "Ratio"
type = "double"
default = 0.5

[[tables.indexes]]
name = "IX_Document_Title"
columns = ["Title"]
unique = true
`

func parse(t *testing.T, src string) (*core.Database, error) {
	t.Helper()
	return NewParser().Parse(strings.NewReader(src))
}

func TestParseDocumentSchema(t *testing.T) {
	db, err := parse(t, documentSchema)
	require.NoError(t, err)

	assert.Equal(t, "app", db.Name)
	require.Len(t, db.Tables, 1)
	doc := db.Tables[0]
	assert.Equal(t, "Document", doc.Name)
	assert.Equal(t, "stored documents", doc.Comment)
	require.Len(t, doc.Columns, 6)

	id := doc.Columns[0]
	assert.Equal(t, core.DbTypeInt64, id.Type.Kind)
	assert.True(t, id.PrimaryKey)
	assert.Nil(t, id.DefaultValue)

	title := doc.Columns[1]
	require.NotNil(t, title.Type.Length)
	assert.Equal(t, 200, *title.Type.Length)
	assert.Equal(t, "title", title.Comment)

	price := doc.Columns[2]
	assert.Equal(t, core.TypeDescriptor{Kind: core.DbTypeDecimal, Precision: 19, Scale: 4}, price.Type)
	assert.True(t, price.Nullable)
	assert.Equal(t, "0", *price.DefaultValue)

	assert.Equal(t, "false", *doc.Columns[3].DefaultValue)
	assert.Equal(t, "draft", *doc.Columns[4].DefaultValue)
	assert.Equal(t, "0.5", *doc.Columns[5].DefaultValue)

	assert.Equal(t, []*core.Index{{Name: "IX_Document_Title", Columns: []string{"Title"}, Unique: true}}, doc.Indexes)
	assert.NoError(t, db.Validate())
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.toml")
	require.NoError(t, os.WriteFile(path, []byte(documentSchema), 0o600))

	db, err := NewParser().ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, db.Tables, 1)

	_, err = NewParser().ParseFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open file")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		errMsg string
	}{
		{
			name:   "invalid toml",
			src:    "[[tables]\nname = ",
			errMsg: "decode error",
		},
		{
			name:   "table without columns",
			src:    "[[tables]]\nname = \"Empty\"\n",
			errMsg: "table has no columns",
		},
		{
			name:   "empty table name",
			src:    "[[tables]]\nname = \"\"\n[[tables.columns]]\nname = \"Id\"\ntype = \"int32\"\n",
			errMsg: "table name is empty",
		},
		{
			name: "duplicate table",
			src: `
[[tables]]
name = "A"
[[tables.columns]]
name = "Id"
type = "int32"
[[tables]]
name = "a"
[[tables.columns]]
name = "Id"
type = "int32"
`,
			errMsg: `duplicate table name "a"`,
		},
		{
			name: "unknown type",
			src: `
[[tables]]
name = "A"
[[tables.columns]]
name = "Id"
type = "hstore"
`,
			errMsg: `unknown type "hstore"`,
		},
		{
			name: "negative length",
			src: `
[[tables]]
name = "A"
[[tables.columns]]
name = "Name"
type = "string"
length = -1
`,
			errMsg: "negative length",
		},
		{
			name: "duplicate column",
			src: `
[[tables]]
name = "A"
[[tables.columns]]
name = "Id"
type = "int32"
[[tables.columns]]
name = "ID"
type = "int32"
`,
			errMsg: `duplicate column "ID"`,
		},
		{
			name: "unsupported default",
			src: `
[[tables]]
name = "A"
[[tables.columns]]
name = "Id"
type = "int32"
default = [1, 2]
`,
			errMsg: "unsupported default value type",
		},
		{
			name: "index on unknown column",
			src: `
[[tables]]
name = "A"
[[tables.columns]]
name = "Id"
type = "int32"
[[tables.indexes]]
name = "IX_A"
columns = ["Nope"]
`,
			errMsg: `unknown column "Nope"`,
		},
		{
			name: "index name reused across tables",
			src: `
[[tables]]
name = "A"
[[tables.columns]]
name = "Id"
type = "int32"
[[tables.indexes]]
name = "IX_Id"
columns = ["Id"]
[[tables]]
name = "B"
[[tables.columns]]
name = "Id"
type = "int32"
[[tables.indexes]]
name = "ix_id"
columns = ["Id"]
`,
			errMsg: `duplicate index "ix_id"`,
		},
		{
			name: "index without columns",
			src: `
[[tables]]
name = "A"
[[tables.columns]]
name = "Id"
type = "int32"
[[tables.indexes]]
name = "IX_A"
`,
			errMsg: "index has no columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParseValidationRules(t *testing.T) {
	t.Run("name length", func(t *testing.T) {
		_, err := parse(t, `
[validation]
max_table_name_length = 5
[[tables]]
name = "TooLongName"
[[tables.columns]]
name = "Id"
type = "int32"
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds maximum length 5")
	})

	t.Run("limits above oracle are capped", func(t *testing.T) {
		long := strings.Repeat("C", 129)
		_, err := parse(t, `
[validation]
max_column_name_length = 500
[[tables]]
name = "A"
[[tables.columns]]
name = "`+long+`"
type = "int32"
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds maximum length 128")
	})

	t.Run("pattern", func(t *testing.T) {
		_, err := parse(t, `
[validation]
allowed_name_pattern = "^[A-Z][A-Za-z]*$"
[[tables]]
name = "A"
[[tables.columns]]
name = "bad_name"
type = "int32"
`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not match allowed pattern")
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := parse(t, "[validation]\nallowed_name_pattern = \"([\"\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid allowed_name_pattern")
	})
}
