package transform

import (
	"fmt"
	"sort"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/errors"
	"github.com/go-sif/remoteframe/lazy"
	"github.com/go-sif/remoteframe/schema"
	multierror "github.com/hashicorp/go-multierror"
)

func rebuild(names []string, types []remoteframe.DType) (remoteframe.Schema, error) {
	return schema.Of(names, types)
}

// Drop removes columns from a Frame. Every missing column is reported.
func Drop(columns ...string) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		s := f.Schema()
		var errs *multierror.Error
		for _, name := range columns {
			if _, removed := s.RemoveColumn(name); !removed {
				errs = multierror.Append(errs, errors.MissingColumnError{Name: name})
			}
		}
		if err := errs.ErrorOrNil(); err != nil {
			return nil, err
		}
		if s.NumColumns() == 0 {
			return nil, fmt.Errorf("Drop cannot remove every column of a frame")
		}
		return &lazy.OperationResult{
			Node: &mapNode{
				kind:     lazy.ProjectNodeKind,
				function: "Drop",
				fields:   []lazy.Field{lazy.ValueField("names", columns)},
			},
			Schema: s,
		}, nil
	}
}

// Rename renames columns according to mapping (old name -> new name). Renames are
// applied simultaneously, so two columns may swap names.
func Rename(mapping map[string]string) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		s := f.Schema()
		existing := make([]string, 0, len(mapping))
		for name := range mapping {
			existing = append(existing, name)
		}
		sort.Strings(existing)
		for _, name := range existing {
			if !s.HasColumn(name) {
				return nil, errors.MissingColumnError{Name: name}
			}
		}
		names := s.ColumnNames()
		seen := make(map[string]bool, len(names))
		for i, name := range names {
			if newName, ok := mapping[name]; ok {
				names[i] = newName
			}
			if seen[names[i]] {
				return nil, errors.DuplicateColumnError{Name: names[i]}
			}
			seen[names[i]] = true
		}
		newSchema, err := rebuild(names, s.ColumnTypes())
		if err != nil {
			return nil, err
		}
		renamed := make([]string, len(existing))
		for i, name := range existing {
			renamed[i] = mapping[name]
		}
		return &lazy.OperationResult{
			Node: &mapNode{
				kind:     lazy.ProjectNodeKind,
				function: "Rename",
				fields: []lazy.Field{
					lazy.ValueField("existing", existing),
					lazy.ValueField("new", renamed),
				},
			},
			Schema: newSchema,
		}, nil
	}
}

// WithRowCount prepends a UInt32 column numbering the rows of a Frame, starting at offset.
// name defaults to "row_nr".
func WithRowCount(name string, offset uint32) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		if name == "" {
			name = "row_nr"
		}
		s := f.Schema()
		if s.HasColumn(name) {
			return nil, errors.DuplicateColumnError{Name: name}
		}
		names := append([]string{name}, s.ColumnNames()...)
		types := append([]remoteframe.DType{remoteframe.UInt32}, s.ColumnTypes()...)
		newSchema, err := rebuild(names, types)
		if err != nil {
			return nil, err
		}
		return &lazy.OperationResult{
			Node: &mapNode{
				kind:     lazy.ProjectNodeKind,
				function: "RowCount",
				fields: []lazy.Field{
					lazy.ValueField("name", name),
					lazy.ValueField("offset", offset),
				},
			},
			Schema: newSchema,
		}, nil
	}
}

// Explode flattens list columns, repeating the other values of each row once per element
func Explode(columns ...string) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		if len(columns) == 0 {
			return nil, fmt.Errorf("Explode requires at least one column")
		}
		s := f.Schema()
		names := s.ColumnNames()
		types := s.ColumnTypes()
		for _, name := range columns {
			col, err := s.GetColumn(name)
			if err != nil {
				return nil, err
			}
			t := col.Type()
			switch {
			case t.IsList():
				types[col.Index()] = t.Inner()
			case t == remoteframe.Utf8:
			default:
				return nil, errors.IncompatibleTypeError{Operation: "explode", Types: []string{t.String()}}
			}
		}
		newSchema, err := rebuild(names, types)
		if err != nil {
			return nil, err
		}
		return &lazy.OperationResult{
			Node: &mapNode{
				kind:     lazy.TransformNodeKind,
				function: "Explode",
				fields:   []lazy.Field{lazy.ValueField("columns", columns)},
			},
			Schema: newSchema,
		}, nil
	}
}
