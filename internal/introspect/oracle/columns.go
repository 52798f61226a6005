package oracle

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"oradialect/internal/core"
)

func introspectColumns(ic *introspectCtx, t *core.Table) error {
	rows, err := ic.q.QueryContext(ic.ctx, `
		SELECT
			c.column_name,
			c.data_type,
			c.data_length,
			c.char_length,
			c.data_precision,
			c.data_scale,
			c.nullable,
			c.data_default,
			m.comments
		FROM user_tab_columns c
		LEFT JOIN user_col_comments m ON m.table_name = c.table_name AND m.column_name = c.column_name
		WHERE c.table_name = :1
		ORDER BY c.column_id
	`, t.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name, nullable string
		var ct catalogType
		var defaultVal, comment sql.NullString
		if err := rows.Scan(&name, &ct.dataType, &ct.dataLength, &ct.charLength, &ct.precision, &ct.scale, &nullable, &defaultVal, &comment); err != nil {
			return err
		}

		col := &core.Column{
			Name:       name,
			NativeType: ct.native(),
			Type:       ct.descriptor(),
			Nullable:   nullable == "Y",
			Comment:    comment.String,
		}
		if defaultVal.Valid {
			v := strings.TrimSpace(defaultVal.String)
			col.DefaultValue = &v
		}

		t.Columns = append(t.Columns, col)
	}

	return rows.Err()
}

// catalogType is one user_tab_columns type description.
type catalogType struct {
	dataType   string
	dataLength sql.NullInt64
	charLength sql.NullInt64
	precision  sql.NullInt64
	scale      sql.NullInt64
}

var parenRe = regexp.MustCompile(`\([^)]*\)`)

// native renders the column type as it would be declared in DDL.
func (ct catalogType) native() string {
	dataType := strings.TrimSpace(ct.dataType)
	if strings.ContainsRune(dataType, '(') {
		return dataType
	}

	base := strings.ToUpper(dataType)
	switch base {
	case "VARCHAR2", "NVARCHAR2", "VARCHAR", "CHAR", "NCHAR":
		if n := positive(ct.charLength); n > 0 {
			return fmt.Sprintf("%s(%d)", base, n)
		}
	case "RAW":
		if n := positive(ct.dataLength); n > 0 {
			return fmt.Sprintf("RAW(%d)", n)
		}
	case "FLOAT":
		if ct.precision.Valid {
			return fmt.Sprintf("FLOAT(%d)", ct.precision.Int64)
		}
	case "NUMBER":
		switch {
		case ct.precision.Valid && positive(ct.scale) > 0:
			return fmt.Sprintf("NUMBER(%d,%d)", ct.precision.Int64, ct.scale.Int64)
		case ct.precision.Valid:
			return fmt.Sprintf("NUMBER(%d)", ct.precision.Int64)
		case ct.scale.Valid && ct.scale.Int64 == 0:
			return "NUMBER(*,0)"
		}
	}
	return dataType
}

// descriptor maps the catalog type back to the engine type whose DDL
// reproduces it exactly. Anything else comes back as DbTypeUnknown so the
// column is emitted with its native type.
func (ct catalogType) descriptor() core.TypeDescriptor {
	upper := strings.ToUpper(strings.TrimSpace(ct.dataType))
	base := strings.Join(strings.Fields(parenRe.ReplaceAllString(upper, "")), " ")

	switch base {
	case "VARCHAR2", "VARCHAR":
		if n := positive(ct.charLength); n > 0 && n <= 4000 {
			return core.TypeDescriptor{Kind: core.DbTypeString}.WithLength(int(n))
		}
	case "CLOB":
		return core.TypeDescriptor{Kind: core.DbTypeString}.WithLength(4001)
	case "BLOB":
		return core.TypeDescriptor{Kind: core.DbTypeBinary}.WithLength(4001)
	case "RAW":
		if positive(ct.dataLength) == 16 {
			return core.TypeDescriptor{Kind: core.DbTypeGuid}
		}
	case "DATE":
		return core.TypeDescriptor{Kind: core.DbTypeDate}
	case "TIMESTAMP":
		// TIMESTAMP declares six fractional digits.
		if upper == "TIMESTAMP" || upper == "TIMESTAMP(6)" {
			return core.TypeDescriptor{Kind: core.DbTypeDateTime}
		}
	case "FLOAT":
		if ct.precision.Valid && ct.precision.Int64 == 49 {
			return core.TypeDescriptor{Kind: core.DbTypeSingle}
		}
	case "NUMBER":
		return numberDescriptor(ct.precision, ct.scale)
	}
	return core.TypeDescriptor{Kind: core.DbTypeUnknown}
}

// numberKinds are the NUMBER declarations the type table emits.
var numberKinds = map[[2]int64]core.DbType{
	{1, 0}:  core.DbTypeBoolean,
	{3, 0}:  core.DbTypeByte,
	{5, 0}:  core.DbTypeInt16,
	{10, 0}: core.DbTypeInt32,
	{20, 0}: core.DbTypeInt64,
	{19, 4}: core.DbTypeCurrency,
	{25, 0}: core.DbTypeDecimal,
}

func numberDescriptor(precision, scale sql.NullInt64) core.TypeDescriptor {
	if !precision.Valid {
		return core.TypeDescriptor{Kind: core.DbTypeUnknown}
	}
	if kind, ok := numberKinds[[2]int64{precision.Int64, positive(scale)}]; ok {
		return core.TypeDescriptor{Kind: kind}
	}
	return core.TypeDescriptor{Kind: core.DbTypeUnknown}
}

func positive(n sql.NullInt64) int64 {
	if !n.Valid || n.Int64 < 0 {
		return 0
	}
	return n.Int64
}
