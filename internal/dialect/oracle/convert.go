package oracle

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/godror/godror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errIncompatibleValue = errors.New("incompatible value")

// convertValue turns v into the Go value godror binds as t. A nil value or
// a nil pointer binds as NULL.
func convertValue(v any, t BindType) (any, error) {
	v = deref(v)
	if v == nil {
		return nil, nil
	}

	switch t {
	case BindNumber, BindFloat:
		return toNumber(v)
	case BindBinaryFloat, BindBinaryDouble:
		return toFloat(v)
	case BindVarchar2, BindNVarchar2, BindChar, BindNChar, BindLong:
		return toText(v)
	case BindDate, BindTimestamp, BindTimestampTZ, BindTimestampLTZ:
		if tm, ok := v.(time.Time); ok {
			return tm, nil
		}
		return nil, fmt.Errorf("%w: %T", errIncompatibleValue, v)
	case BindClob, BindNClob:
		return toClob(v)
	case BindBlob:
		return toBlob(v)
	case BindRaw:
		return toRaw(v)
	default:
		return v, nil
	}
}

// deref follows pointers to the value they hold. A nil pointer of any type
// becomes nil.
func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

func toNumber(v any) (any, error) {
	switch n := v.(type) {
	case godror.Number:
		return n, nil
	case bool:
		if n {
			return godror.Number("1"), nil
		}
		return godror.Number("0"), nil
	case int:
		return godror.Number(strconv.FormatInt(int64(n), 10)), nil
	case int8:
		return godror.Number(strconv.FormatInt(int64(n), 10)), nil
	case int16:
		return godror.Number(strconv.FormatInt(int64(n), 10)), nil
	case int32:
		return godror.Number(strconv.FormatInt(int64(n), 10)), nil
	case int64:
		return godror.Number(strconv.FormatInt(n, 10)), nil
	case uint:
		return godror.Number(strconv.FormatUint(uint64(n), 10)), nil
	case uint8:
		return godror.Number(strconv.FormatUint(uint64(n), 10)), nil
	case uint16:
		return godror.Number(strconv.FormatUint(uint64(n), 10)), nil
	case uint32:
		return godror.Number(strconv.FormatUint(uint64(n), 10)), nil
	case uint64:
		return godror.Number(strconv.FormatUint(n, 10)), nil
	case float32:
		return godror.Number(strconv.FormatFloat(float64(n), 'f', -1, 32)), nil
	case float64:
		return godror.Number(strconv.FormatFloat(n, 'f', -1, 64)), nil
	case decimal.Decimal:
		return godror.Number(n.String()), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", errIncompatibleValue, n)
		}
		return godror.Number(d.String()), nil
	}
	return nil, fmt.Errorf("%w: %T", errIncompatibleValue, v)
}

func toFloat(v any) (any, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case godror.Number:
		return parseFloat(string(n))
	case decimal.Decimal:
		return n.InexactFloat64(), nil
	case string:
		return parseFloat(n)
	}
	return nil, fmt.Errorf("%w: %T", errIncompatibleValue, v)
}

func parseFloat(s string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a number", errIncompatibleValue, s)
	}
	return f, nil
}

func toText(v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	case time.Time:
		return s.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return s.String(), nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(s), nil
	}
	return nil, fmt.Errorf("%w: %T", errIncompatibleValue, v)
}

func toClob(v any) (any, error) {
	switch s := v.(type) {
	case godror.Lob:
		return s, nil
	case string:
		return godror.Lob{Reader: strings.NewReader(s), IsClob: true}, nil
	case []byte:
		return godror.Lob{Reader: bytes.NewReader(s), IsClob: true}, nil
	}
	return nil, fmt.Errorf("%w: %T", errIncompatibleValue, v)
}

func toBlob(v any) (any, error) {
	switch b := v.(type) {
	case godror.Lob:
		return b, nil
	case []byte:
		return godror.Lob{Reader: bytes.NewReader(b)}, nil
	case uuid.UUID:
		return godror.Lob{Reader: bytes.NewReader(b[:])}, nil
	}
	return nil, fmt.Errorf("%w: %T", errIncompatibleValue, v)
}

// toRaw accepts bytes, UUIDs, and strings holding a UUID or hex digits.
func toRaw(v any) (any, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case uuid.UUID:
		out := make([]byte, len(b))
		copy(out, b[:])
		return out, nil
	case string:
		if u, err := uuid.Parse(b); err == nil {
			return u[:], nil
		}
		raw, err := hex.DecodeString(b)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is neither a UUID nor hex", errIncompatibleValue, b)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("%w: %T", errIncompatibleValue, v)
}
