package core

// ColumnMetadata is a live column as reported by the database catalog.
type ColumnMetadata struct {
	ColumnName string `json:"columnName"`
	DataType   string `json:"dataType"`
}

// Field is one named value of a bindable record. Type is the declared type
// of the field; DbTypeUnknown means "derive it from Value".
type Field struct {
	Name  string
	Value any
	Type  DbType
}

// DeclaredType returns the field's declared type, falling back to the type
// of its value.
func (f Field) DeclaredType() DbType {
	if f.Type != DbTypeUnknown {
		return f.Type
	}
	return DbTypeOf(f.Value)
}

// Bindable is implemented by any record whose fields can be bound as
// statement parameters. Fields must return the fields in a stable order.
type Bindable interface {
	Fields() []Field
}

// IndexRecord is a bindable index row, as produced by the engine's index
// providers.
type IndexRecord interface {
	Bindable
	IndexName() string
}

// Bag is an ordered list of fields built for one statement execution.
type Bag []Field

// Fields implements Bindable.
func (b Bag) Fields() []Field { return b }

// Add appends a field whose type is derived from its value.
func (b Bag) Add(name string, value any) Bag {
	return append(b, Field{Name: name, Value: value})
}

// AddTyped appends a field with an explicit declared type.
func (b Bag) AddTyped(name string, value any, t DbType) Bag {
	return append(b, Field{Name: name, Value: value, Type: t})
}
