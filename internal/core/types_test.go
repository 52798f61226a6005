package core

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDbType(t *testing.T) {
	tests := []struct {
		in   string
		want DbType
	}{
		{"string", DbTypeString},
		{"String", DbTypeString},
		{" Int32 ", DbTypeInt32},
		{"datetimeoffset", DbTypeDateTimeOffset},
		{"AnsiStringFixedLength", DbTypeAnsiStringFixedLength},
		{"bool", DbTypeBoolean},
		{"int", DbTypeInt32},
		{"bigint", DbTypeInt64},
		{"uuid", DbTypeGuid},
		{"text", DbTypeString},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDbType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("empty", func(t *testing.T) {
		_, err := ParseDbType("  ")
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseDbType("xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"xml"`)
	})

	t.Run("unknown is not a valid name", func(t *testing.T) {
		_, err := ParseDbType("unknown")
		assert.Error(t, err)
	})
}

func TestDbTypeString(t *testing.T) {
	assert.Equal(t, "int32", DbTypeInt32.String())
	assert.Equal(t, "DbType(99)", DbType(99).String())
}

func TestDbTypeIsString(t *testing.T) {
	assert.True(t, DbTypeString.IsString())
	assert.True(t, DbTypeAnsiStringFixedLength.IsString())
	assert.False(t, DbTypeBinary.IsString())
	assert.False(t, DbTypeGuid.IsString())
}

func TestDbTypeOf(t *testing.T) {
	s := "x"
	dec := decimal.NewFromInt(4)
	id := uuid.New()
	tests := []struct {
		name string
		v    any
		want DbType
	}{
		{"nil", nil, DbTypeUnknown},
		{"string", "a", DbTypeString},
		{"string pointer", &s, DbTypeString},
		{"bool", true, DbTypeBoolean},
		{"byte", uint8(1), DbTypeByte},
		{"int16", int16(1), DbTypeInt16},
		{"int32", int32(1), DbTypeInt32},
		{"int", 1, DbTypeInt64},
		{"uint64", uint64(1), DbTypeUInt64},
		{"float32", float32(1), DbTypeSingle},
		{"float64", 1.5, DbTypeDouble},
		{"decimal", decimal.NewFromInt(3), DbTypeDecimal},
		{"time", time.Now(), DbTypeDateTime},
		{"bytes", []byte{1}, DbTypeBinary},
		{"uuid", uuid.New(), DbTypeGuid},
		{"struct", struct{}{}, DbTypeUnknown},
		{"nil int32 pointer", (*int32)(nil), DbTypeInt32},
		{"decimal pointer", &dec, DbTypeDecimal},
		{"uuid pointer", &id, DbTypeGuid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DbTypeOf(tt.v))
		})
	}
}

func TestTypeDescriptor(t *testing.T) {
	base := TypeDescriptor{Kind: DbTypeString}
	withLen := base.WithLength(50)

	assert.Nil(t, base.Length, "WithLength must not modify the receiver")
	require.NotNil(t, withLen.Length)
	assert.Equal(t, 50, *withLen.Length)

	assert.Equal(t, "string", base.String())
	assert.Equal(t, "string(50)", withLen.String())
	assert.Equal(t, "decimal(19,4)", TypeDescriptor{Kind: DbTypeDecimal, Precision: 19, Scale: 4}.String())
}

func TestUnsupportedTypeError(t *testing.T) {
	var err error = &UnsupportedTypeError{Kind: DbType(99)}
	assert.Equal(t, "DbType not found for: DbType(99)", err.Error())
	assert.True(t, errors.Is(err, ErrUnsupportedType))
	assert.False(t, errors.Is(err, ErrEmptyTableName))

	var typed *UnsupportedTypeError
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, DbType(99), typed.Kind)
}
