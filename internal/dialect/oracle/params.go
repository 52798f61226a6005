package oracle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"oradialect/internal/core"
	"oradialect/internal/dialect"
)

// unsafeParameters are names Oracle rejects as bind variable names.
var unsafeParameters = []string{
	"Order",
	"Date",
	"Version",
}

const safeParameterSuffix = "Safe"

// SafeParameterName returns name with safeParameterSuffix appended when it
// collides, case-insensitively, with a reserved word.
func SafeParameterName(name string) string {
	if IsUnsafeParameterName(name) {
		return name + safeParameterSuffix
	}
	return name
}

// IsUnsafeParameterName reports whether name collides with a reserved word.
func IsUnsafeParameterName(name string) bool {
	return slices.ContainsFunc(unsafeParameters, func(p string) bool {
		return strings.EqualFold(p, name)
	})
}

// ContainsSafeParameters reports whether query references a renamed
// reserved parameter, e.g. ":OrderSafe".
func ContainsSafeParameters(query string) bool {
	return slices.ContainsFunc(unsafeParameters, func(p string) bool {
		return strings.Contains(query, parameterNamePrefix+p+safeParameterSuffix)
	})
}

// Parameter is one bound value, already converted to the Go type the
// godror driver binds as Type.
type Parameter struct {
	Name   string
	Value  any
	Type   BindType
	DbType core.DbType
	// Field is the name of the bound field before reserved-word renaming.
	Field string
}

// ErrParameterCollision is returned when two different fields bind under
// the same parameter name, e.g. "Order" and "OrderSafe".
var ErrParameterCollision = errors.New("parameter name collision")

// Parameters is an ordered set of bound values with unique names.
type Parameters struct {
	params []Parameter
}

// add appends param. A repeated field replaces its earlier value in place.
func (p *Parameters) add(param Parameter) error {
	for i := range p.params {
		if p.params[i].Name != param.Name {
			continue
		}
		if p.params[i].Field != param.Field {
			return fmt.Errorf("%w: %s and %s both bind as %s", ErrParameterCollision, p.params[i].Field, param.Field, param.Name)
		}
		p.params[i] = param
		return nil
	}
	p.params = append(p.params, param)
	return nil
}

// Len returns the number of parameters.
func (p *Parameters) Len() int { return len(p.params) }

// Names returns the parameter names in bind order.
func (p *Parameters) Names() []string {
	names := make([]string, len(p.params))
	for i, param := range p.params {
		names[i] = param.Name
	}
	return names
}

// Lookup returns the parameter bound under name.
func (p *Parameters) Lookup(name string) (Parameter, bool) {
	for _, param := range p.params {
		if param.Name == name {
			return param, true
		}
	}
	return Parameter{}, false
}

// All returns a copy of every parameter.
func (p *Parameters) All() []Parameter {
	return slices.Clone(p.params)
}

// Args returns the parameters as named arguments for database/sql.
func (p *Parameters) Args() []any {
	args := make([]any, len(p.params))
	for i, param := range p.params {
		args[i] = sql.Named(param.Name, param.Value)
	}
	return args
}

// Bind implements dialect.Dialect.
func (d *Dialect) Bind(ctx context.Context, q dialect.Querier, bag core.Bindable, tableName string) (dialect.ParameterSet, error) {
	params, err := d.DynamicParameters(ctx, q, bag, tableName)
	if err != nil {
		return nil, err
	}
	return params, nil
}

// BindIndex implements dialect.Dialect.
func (d *Dialect) BindIndex(index core.IndexRecord) (dialect.ParameterSet, error) {
	params, err := d.IndexParameters(index)
	if err != nil {
		return nil, err
	}
	return params, nil
}

// DynamicParameters binds the fields of bag for a statement against
// tableName. Each field is typed by the native type of the column with the
// same name, as read from the catalog through the dialect's cache. Fields
// without a matching column are left out. Two fields binding under the
// same name fail with ErrParameterCollision. A failed catalog query is
// returned as is.
func (d *Dialect) DynamicParameters(ctx context.Context, q dialect.Querier, bag core.Bindable, tableName string) (*Parameters, error) {
	if tableName == "" {
		return nil, core.ErrEmptyTableName
	}

	columns, err := d.cache.Columns(ctx, q, tableName)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]core.ColumnMetadata, len(columns))
	for _, c := range columns {
		if _, ok := byName[c.ColumnName]; !ok {
			byName[c.ColumnName] = c
		}
	}

	result := &Parameters{}
	for _, f := range bag.Fields() {
		column, ok := byName[f.Name]
		if !ok {
			continue
		}

		name := SafeParameterName(f.Name)
		bindType := ParseBindType(column.DataType)
		value, err := convertValue(f.Value, bindType)
		if err != nil {
			return nil, fmt.Errorf("bind %s as %s: %w", name, bindType, err)
		}
		if err := result.add(Parameter{Name: name, Value: value, Type: bindType, DbType: f.DeclaredType(), Field: f.Name}); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// IndexParameters binds every field of an index record using its declared
// type. Booleans always bind as Int32 since Oracle stores them as NUMBER(1,0).
func (d *Dialect) IndexParameters(index core.IndexRecord) (*Parameters, error) {
	result := &Parameters{}
	for _, f := range index.Fields() {
		name := SafeParameterName(f.Name)

		dbType := f.DeclaredType()
		if dbType == core.DbTypeBoolean {
			dbType = core.DbTypeInt32
		}

		bindType := bindTypeOf(dbType)
		value, err := convertValue(f.Value, bindType)
		if err != nil {
			return nil, fmt.Errorf("bind %s as %s: %w", name, bindType, err)
		}
		if err := result.add(Parameter{Name: name, Value: value, Type: bindType, DbType: dbType, Field: f.Name}); err != nil {
			return nil, err
		}
	}
	return result, nil
}
