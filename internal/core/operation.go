package core

// OperationKind is used to identify what kind of operation is being performed by migration.
type OperationKind string

const (
	OperationSQL  OperationKind = "SQL"
	OperationNote OperationKind = "NOTE"
)

// Operation is a single step of a migration: a statement with its optional
// rollback statement, or a note for the reader.
type Operation struct {
	Kind OperationKind `json:"kind"`

	SQL         string `json:"sql,omitempty"`
	RollbackSQL string `json:"rollbackSql,omitempty"`
}
