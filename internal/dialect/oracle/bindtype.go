package oracle

import (
	"regexp"
	"strings"

	"oradialect/internal/core"
)

// BindType is the Oracle native type a parameter is bound as.
type BindType int

const (
	BindDefault BindType = iota
	BindVarchar2
	BindNVarchar2
	BindChar
	BindNChar
	BindLong
	BindNumber
	BindFloat
	BindBinaryFloat
	BindBinaryDouble
	BindDate
	BindTimestamp
	BindTimestampTZ
	BindTimestampLTZ
	BindClob
	BindNClob
	BindBlob
	BindRaw
)

var bindTypeNames = map[BindType]string{
	BindDefault:      "DEFAULT",
	BindVarchar2:     "VARCHAR2",
	BindNVarchar2:    "NVARCHAR2",
	BindChar:         "CHAR",
	BindNChar:        "NCHAR",
	BindLong:         "LONG",
	BindNumber:       "NUMBER",
	BindFloat:        "FLOAT",
	BindBinaryFloat:  "BINARY_FLOAT",
	BindBinaryDouble: "BINARY_DOUBLE",
	BindDate:         "DATE",
	BindTimestamp:    "TIMESTAMP",
	BindTimestampTZ:  "TIMESTAMP WITH TIME ZONE",
	BindTimestampLTZ: "TIMESTAMP WITH LOCAL TIME ZONE",
	BindClob:         "CLOB",
	BindNClob:        "NCLOB",
	BindBlob:         "BLOB",
	BindRaw:          "RAW",
}

var catalogBindTypes = map[string]BindType{
	"VARCHAR2":                       BindVarchar2,
	"VARCHAR":                        BindVarchar2,
	"NVARCHAR2":                      BindNVarchar2,
	"CHAR":                           BindChar,
	"NCHAR":                          BindNChar,
	"LONG":                           BindLong,
	"NUMBER":                         BindNumber,
	"INTEGER":                        BindNumber,
	"FLOAT":                          BindFloat,
	"BINARY_FLOAT":                   BindBinaryFloat,
	"BINARY_DOUBLE":                  BindBinaryDouble,
	"DATE":                           BindDate,
	"TIMESTAMP":                      BindTimestamp,
	"TIMESTAMP WITH TIME ZONE":       BindTimestampTZ,
	"TIMESTAMP WITH LOCAL TIME ZONE": BindTimestampLTZ,
	"CLOB":                           BindClob,
	"NCLOB":                          BindNClob,
	"BLOB":                           BindBlob,
	"RAW":                            BindRaw,
}

// dbBindTypes maps declared engine types to bind types for index records.
var dbBindTypes = map[core.DbType]BindType{
	core.DbTypeAnsiString:            BindVarchar2,
	core.DbTypeAnsiStringFixedLength: BindVarchar2,
	core.DbTypeString:                BindVarchar2,
	core.DbTypeStringFixedLength:     BindVarchar2,
	core.DbTypeBinary:                BindRaw,
	core.DbTypeGuid:                  BindRaw,
	core.DbTypeByte:                  BindNumber,
	core.DbTypeInt16:                 BindNumber,
	core.DbTypeUInt16:                BindNumber,
	core.DbTypeInt32:                 BindNumber,
	core.DbTypeUInt32:                BindNumber,
	core.DbTypeInt64:                 BindNumber,
	core.DbTypeUInt64:                BindNumber,
	core.DbTypeBoolean:               BindNumber,
	core.DbTypeCurrency:              BindNumber,
	core.DbTypeDecimal:               BindNumber,
	core.DbTypeSingle:                BindBinaryFloat,
	core.DbTypeDouble:                BindBinaryDouble,
	core.DbTypeDate:                  BindDate,
	core.DbTypeTime:                  BindDate,
	core.DbTypeDateTime:              BindTimestamp,
	core.DbTypeDateTime2:             BindTimestamp,
	core.DbTypeDateTimeOffset:        BindTimestampTZ,
}

// parenRe matches a parenthesized size or precision, e.g. "(6)" in
// "TIMESTAMP(6) WITH TIME ZONE".
var parenRe = regexp.MustCompile(`\([^)]*\)`)

// wsRe collapses runs of whitespace left behind by parenRe.
var wsRe = regexp.MustCompile(`\s+`)

func (t BindType) String() string {
	if name, ok := bindTypeNames[t]; ok {
		return name
	}
	return "DEFAULT"
}

// ParseBindType maps a catalog data_type such as "VARCHAR2" or
// "TIMESTAMP(6) WITH TIME ZONE" to its bind type. Unknown types bind as
// BindDefault and leave the value untouched.
func ParseBindType(dataType string) BindType {
	base := parenRe.ReplaceAllString(strings.ToUpper(dataType), "")
	base = strings.TrimSpace(wsRe.ReplaceAllString(base, " "))
	if t, ok := catalogBindTypes[base]; ok {
		return t
	}
	return BindDefault
}

func bindTypeOf(t core.DbType) BindType {
	if bt, ok := dbBindTypes[t]; ok {
		return bt
	}
	return BindDefault
}
