package core

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DbType is the engine-level semantic type of a column or a bound value.
// Dialects translate it to a native column type and a native bind type.
type DbType int

const (
	DbTypeUnknown DbType = iota
	DbTypeAnsiString
	DbTypeBinary
	DbTypeByte
	DbTypeBoolean
	DbTypeCurrency
	DbTypeDate
	DbTypeDateTime
	DbTypeDecimal
	DbTypeDouble
	DbTypeGuid
	DbTypeInt16
	DbTypeInt32
	DbTypeInt64
	DbTypeSingle
	DbTypeString
	DbTypeTime
	DbTypeUInt16
	DbTypeUInt32
	DbTypeUInt64
	DbTypeAnsiStringFixedLength
	DbTypeStringFixedLength
	DbTypeDateTime2
	DbTypeDateTimeOffset
)

var dbTypeNames = map[DbType]string{
	DbTypeUnknown:               "unknown",
	DbTypeAnsiString:            "ansistring",
	DbTypeBinary:                "binary",
	DbTypeByte:                  "byte",
	DbTypeBoolean:               "boolean",
	DbTypeCurrency:              "currency",
	DbTypeDate:                  "date",
	DbTypeDateTime:              "datetime",
	DbTypeDecimal:               "decimal",
	DbTypeDouble:                "double",
	DbTypeGuid:                  "guid",
	DbTypeInt16:                 "int16",
	DbTypeInt32:                 "int32",
	DbTypeInt64:                 "int64",
	DbTypeSingle:                "single",
	DbTypeString:                "string",
	DbTypeTime:                  "time",
	DbTypeUInt16:                "uint16",
	DbTypeUInt32:                "uint32",
	DbTypeUInt64:                "uint64",
	DbTypeAnsiStringFixedLength: "ansistringfixedlength",
	DbTypeStringFixedLength:     "stringfixedlength",
	DbTypeDateTime2:             "datetime2",
	DbTypeDateTimeOffset:        "datetimeoffset",
}

// dbTypeAliases are the extra spellings accepted by ParseDbType.
var dbTypeAliases = map[string]DbType{
	"bool":     DbTypeBoolean,
	"int":      DbTypeInt32,
	"integer":  DbTypeInt32,
	"bigint":   DbTypeInt64,
	"smallint": DbTypeInt16,
	"float":    DbTypeSingle,
	"uuid":     DbTypeGuid,
	"bytes":    DbTypeBinary,
	"text":     DbTypeString,
}

func (t DbType) String() string {
	if name, ok := dbTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DbType(%d)", int(t))
}

// ParseDbType resolves a type name such as "string" or "Int32". Matching is
// case-insensitive.
func ParseDbType(name string) (DbType, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return DbTypeUnknown, fmt.Errorf("empty type name")
	}
	for t, n := range dbTypeNames {
		if t != DbTypeUnknown && n == key {
			return t, nil
		}
	}
	if t, ok := dbTypeAliases[key]; ok {
		return t, nil
	}
	return DbTypeUnknown, fmt.Errorf("unknown type %q", name)
}

// IsString reports whether t is one of the character kinds.
func (t DbType) IsString() bool {
	switch t {
	case DbTypeString, DbTypeAnsiString, DbTypeStringFixedLength, DbTypeAnsiStringFixedLength:
		return true
	}
	return false
}

// DbTypeOf derives the declared type of a Go value. Pointers, nil ones
// included, take the type they point to. It returns DbTypeUnknown for nil
// and for types that have no natural mapping.
func DbTypeOf(v any) DbType {
	if t := reflect.TypeOf(v); t != nil && t.Kind() == reflect.Pointer {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		v = reflect.Zero(t).Interface()
	}

	switch v.(type) {
	case string:
		return DbTypeString
	case bool:
		return DbTypeBoolean
	case int8, uint8:
		return DbTypeByte
	case int16:
		return DbTypeInt16
	case uint16:
		return DbTypeUInt16
	case int32:
		return DbTypeInt32
	case uint32:
		return DbTypeUInt32
	case int, int64:
		return DbTypeInt64
	case uint, uint64:
		return DbTypeUInt64
	case float32:
		return DbTypeSingle
	case float64:
		return DbTypeDouble
	case decimal.Decimal:
		return DbTypeDecimal
	case time.Time:
		return DbTypeDateTime
	case []byte:
		return DbTypeBinary
	case uuid.UUID:
		return DbTypeGuid
	default:
		return DbTypeUnknown
	}
}

// TypeDescriptor describes the column type requested by the engine when it
// generates DDL. Length is nil when the engine did not specify one.
type TypeDescriptor struct {
	Kind      DbType `json:"kind"`
	Length    *int   `json:"length,omitempty"`
	Precision uint8  `json:"precision,omitempty"`
	Scale     uint8  `json:"scale,omitempty"`
}

// WithLength returns a copy of d with Length set to n.
func (d TypeDescriptor) WithLength(n int) TypeDescriptor {
	d.Length = &n
	return d
}

func (d TypeDescriptor) String() string {
	if d.Length != nil {
		return fmt.Sprintf("%s(%d)", d.Kind, *d.Length)
	}
	if d.Precision != 0 {
		return fmt.Sprintf("%s(%d,%d)", d.Kind, d.Precision, d.Scale)
	}
	return d.Kind.String()
}
