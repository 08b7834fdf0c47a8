package remoteframe

// Schema is an ordered mapping from column names to data types.
// It allows one to look up columns by name, define new columns,
// remove columns, etc. Mutating methods modify the Schema in place
// and return it, so callers which need to preserve a Schema
// should Clone() it first.
type Schema interface {
	Equals(otherSchema Schema) error
	Clone() Schema
	NumColumns() int
	GetColumn(colName string) (col Column, err error)
	HasColumn(colName string) bool
	CreateColumn(colName string, columnType DType) (newSchema Schema, err error)
	RenameColumn(oldName string, newName string) (newSchema Schema, err error)
	RemoveColumn(colName string) (newSchema Schema, wasRemoved bool)
	ColumnNames() []string
	ColumnTypes() []DType
	ForEachColumn(fn func(name string, col Column) error) error
}
