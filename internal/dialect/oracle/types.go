package oracle

import (
	"strconv"

	"oradialect/internal/core"
)

// largeObjectThreshold is the longest length a VARCHAR2 column can hold.
// Longer strings and binaries must use LOB types.
const largeObjectThreshold = 4000

var columnTypes = map[core.DbType]string{
	core.DbTypeGuid:                  "RAW(16)",
	core.DbTypeBinary:                "RAW",
	core.DbTypeTime:                  "DATE",
	core.DbTypeDate:                  "DATE",
	core.DbTypeDateTime:              "TIMESTAMP",
	core.DbTypeDateTime2:             "TIMESTAMP",
	core.DbTypeDateTimeOffset:        "NUMBER(25)",
	core.DbTypeBoolean:               "NUMBER(1,0)",
	core.DbTypeByte:                  "NUMBER(3,0)",
	core.DbTypeCurrency:              "NUMBER(19,4)",
	core.DbTypeDecimal:               "NUMBER(25)",
	core.DbTypeDouble:                "NUMBER(25)",
	core.DbTypeInt16:                 "NUMBER(5)",
	core.DbTypeUInt16:                "NUMBER(5)",
	core.DbTypeInt32:                 "NUMBER(10)",
	core.DbTypeUInt32:                "NUMBER(10)",
	core.DbTypeInt64:                 "NUMBER(20)",
	core.DbTypeUInt64:                "NUMBER(20)",
	core.DbTypeSingle:                "FLOAT(49)",
	core.DbTypeAnsiStringFixedLength: "VARCHAR2(255)",
	core.DbTypeAnsiString:            "VARCHAR(255)",
	core.DbTypeStringFixedLength:     "VARCHAR2(255)",
	core.DbTypeString:                "VARCHAR2(255)",
}

// GetTypeName returns the Oracle column type for desc. Strings longer than
// largeObjectThreshold become CLOB and binaries with any explicit length
// become BLOB; everything else goes through the static table. A length of
// zero or less is treated as absent.
func (d *Dialect) GetTypeName(desc core.TypeDescriptor) (string, error) {
	if desc.Length != nil && *desc.Length > 0 {
		length := *desc.Length
		switch desc.Kind {
		case core.DbTypeString, core.DbTypeAnsiString:
			if length > largeObjectThreshold {
				return "CLOB", nil
			}
			return "VARCHAR2(" + strconv.Itoa(length) + ")", nil
		case core.DbTypeBinary:
			return "BLOB", nil
		}
	}

	if name, ok := columnTypes[desc.Kind]; ok {
		return name, nil
	}

	return "", &core.UnsupportedTypeError{Kind: desc.Kind}
}
