package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is matched by every UnsupportedTypeError.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrEmptyTableName is returned when an operation needs a table name and got none.
	ErrEmptyTableName = errors.New("table name is empty")
)

// UnsupportedTypeError reports a DbType the dialect has no native mapping
// for. It points at a schema definition defect and is never retryable.
type UnsupportedTypeError struct {
	Kind DbType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("DbType not found for: %s", e.Kind)
}

// Is lets errors.Is(err, ErrUnsupportedType) match.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}
