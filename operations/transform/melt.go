package transform

import (
	"fmt"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/errors"
	"github.com/go-sif/remoteframe/lazy"
	"github.com/go-sif/remoteframe/schema"
)

// MeltOptions configures Melt
type MeltOptions struct {
	IDVars       []string // columns kept as identifiers
	ValueVars    []string // columns unpivoted into rows. Defaults to every column not in IDVars.
	VariableName string   // name of the column holding the former column names. Defaults to "variable".
	ValueName    string   // name of the column holding the former values. Defaults to "value".
}

// Melt unpivots a Frame from wide to long format
func Melt(opts MeltOptions) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		if opts.VariableName == "" {
			opts.VariableName = "variable"
		}
		if opts.ValueName == "" {
			opts.ValueName = "value"
		}
		input := f.Schema()
		ids := make(map[string]bool, len(opts.IDVars))
		s := schema.CreateSchema()
		for _, name := range opts.IDVars {
			col, err := input.GetColumn(name)
			if err != nil {
				return nil, err
			}
			ids[name] = true
			if _, err := s.CreateColumn(name, col.Type()); err != nil {
				return nil, err
			}
		}
		values := opts.ValueVars
		if len(values) == 0 {
			for _, name := range input.ColumnNames() {
				if !ids[name] {
					values = append(values, name)
				}
			}
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("Melt requires at least one value column")
		}
		valueType := remoteframe.Null
		for _, name := range values {
			col, err := input.GetColumn(name)
			if err != nil {
				return nil, err
			}
			st, err := remoteframe.Supertype(valueType, col.Type())
			if err != nil {
				return nil, errors.IncompatibleTypeError{Operation: "melt", Types: []string{valueType.String(), col.Type().String()}}
			}
			valueType = st
		}
		if _, err := s.CreateColumn(opts.VariableName, remoteframe.Utf8); err != nil {
			return nil, err
		}
		if _, err := s.CreateColumn(opts.ValueName, valueType); err != nil {
			return nil, err
		}
		return &lazy.OperationResult{
			Node: &mapNode{
				kind:     lazy.ProjectNodeKind,
				function: "Melt",
				fields: []lazy.Field{
					lazy.ValueField("id_vars", opts.IDVars),
					lazy.ValueField("value_vars", values),
					lazy.ValueField("variable_name", opts.VariableName),
					lazy.ValueField("value_name", opts.ValueName),
				},
			},
			Schema: s,
		}, nil
	}
}
