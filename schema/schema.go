package schema

import (
	"fmt"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/errors"
)

// column describes the position and type of a field within a Schema
type column struct {
	idx     int
	colType remoteframe.DType
}

// Clone returns a copy of this Column
func (c *column) Clone() remoteframe.Column {
	return &column{c.idx, c.colType}
}

// Index returns the index of this Column within a Schema
func (c *column) Index() int {
	return c.idx
}

// SetIndex modifies the index of this Column within a Schema
func (c *column) SetIndex(newIndex int) {
	c.idx = newIndex
}

// Type returns the DType of this Column
func (c *column) Type() remoteframe.DType {
	return c.colType
}

// schema is an ordered mapping from column names to data types
type schema struct {
	schema map[string]remoteframe.Column
	names  []string
}

// CreateSchema is a factory for Schemas
func CreateSchema() remoteframe.Schema {
	return &schema{
		schema: make(map[string]remoteframe.Column),
		names:  []string{},
	}
}

// Of builds a Schema from alternating column names and types, in order
func Of(names []string, types []remoteframe.DType) (remoteframe.Schema, error) {
	if len(names) != len(types) {
		return nil, fmt.Errorf("Schema requires one type per column name, got %d names and %d types", len(names), len(types))
	}
	s := CreateSchema()
	for i, name := range names {
		if _, err := s.CreateColumn(name, types[i]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Equals returns nil iff this and another Schema have the same columns, in the same order, with the same types
func (s *schema) Equals(otherSchema remoteframe.Schema) error {
	if s.NumColumns() != otherSchema.NumColumns() {
		return fmt.Errorf("Schemas have unequal numbers of columns")
	}
	for i, name := range s.names {
		otherCol, err := otherSchema.GetColumn(name)
		if err != nil {
			return err
		}
		if otherCol.Index() != i {
			return fmt.Errorf("Column %s indices do not match", name)
		}
		if otherCol.Type() != s.schema[name].Type() {
			return errors.SchemaMismatchError{Column: name, Expected: s.schema[name].Type().String(), Actual: otherCol.Type().String()}
		}
	}
	return nil
}

// Clone returns a copy of this Schema
func (s *schema) Clone() remoteframe.Schema {
	newSchema := make(map[string]remoteframe.Column, len(s.schema))
	for k, v := range s.schema {
		newSchema[k] = v.Clone()
	}
	names := make([]string, len(s.names))
	copy(names, s.names)
	return &schema{schema: newSchema, names: names}
}

// NumColumns returns the number of columns in this Schema
func (s *schema) NumColumns() int {
	return len(s.names)
}

// GetColumn returns a particular column within this Schema
func (s *schema) GetColumn(colName string) (col remoteframe.Column, err error) {
	col, ok := s.schema[colName]
	if !ok {
		err = errors.MissingColumnError{Name: colName}
	}
	return
}

// HasColumn returns true iff this schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, ok := s.schema[colName]
	return ok
}

// CreateColumn defines a new column at the end of the Schema
func (s *schema) CreateColumn(colName string, columnType remoteframe.DType) (newSchema remoteframe.Schema, err error) {
	if _, exists := s.schema[colName]; exists {
		return nil, errors.DuplicateColumnError{Name: colName}
	}
	s.schema[colName] = &column{len(s.names), columnType}
	s.names = append(s.names, colName)
	return s, nil
}

// RenameColumn renames a column within the Schema, preserving its position
func (s *schema) RenameColumn(oldName string, newName string) (newSchema remoteframe.Schema, err error) {
	col, err := s.GetColumn(oldName)
	if err != nil {
		return nil, err
	}
	if oldName == newName {
		return s, nil
	}
	if s.HasColumn(newName) {
		return nil, errors.DuplicateColumnError{Name: newName}
	}
	s.schema[newName] = col
	delete(s.schema, oldName)
	s.names[col.Index()] = newName
	return s, nil
}

// RemoveColumn removes a column from the Schema, shifting later columns down
func (s *schema) RemoveColumn(colName string) (remoteframe.Schema, bool) {
	col, ok := s.schema[colName]
	if !ok {
		return s, false
	}
	idx := col.Index()
	delete(s.schema, colName)
	s.names = append(s.names[:idx], s.names[idx+1:]...)
	for i := idx; i < len(s.names); i++ {
		s.schema[s.names[i]].SetIndex(i)
	}
	return s, true
}

// ColumnNames returns the names in the schema, in index order
func (s *schema) ColumnNames() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// ColumnTypes returns the types in the schema, in index order
func (s *schema) ColumnTypes() []remoteframe.DType {
	types := make([]remoteframe.DType, len(s.names))
	for i, name := range s.names {
		types[i] = s.schema[name].Type()
	}
	return types
}

// ForEachColumn iterates over the columns in this Schema, in index order
func (s *schema) ForEachColumn(fn func(name string, col remoteframe.Column) error) error {
	for _, name := range s.names {
		if err := fn(name, s.schema[name]); err != nil {
			return err
		}
	}
	return nil
}
