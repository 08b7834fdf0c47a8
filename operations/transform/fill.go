package transform

import (
	"fmt"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/errors"
	"github.com/go-sif/remoteframe/expr"
	"github.com/go-sif/remoteframe/lazy"
)

// fillSchema computes the schema of a Frame after its nulls are filled with value.
// Columns whose type cannot hold value are left unchanged.
func fillSchema(f *lazy.Frame, value *expr.Expr) (remoteframe.Schema, error) {
	s := f.Schema()
	_, vt, err := value.Field(s)
	if err != nil {
		return nil, err
	}
	types := s.ColumnTypes()
	for i, t := range types {
		st, err := remoteframe.Supertype(t, vt)
		if err != nil || (st == remoteframe.Utf8 && t != remoteframe.Utf8) {
			continue
		}
		types[i] = st
	}
	return rebuild(s.ColumnNames(), types)
}

// FillNull replaces the nulls of every column with value
func FillNull(value *expr.Expr) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		if value == nil {
			return nil, fmt.Errorf("FillNull requires a fill value")
		}
		s, err := fillSchema(f, value)
		if err != nil {
			return nil, err
		}
		return &lazy.OperationResult{
			Node: &mapNode{
				kind:     lazy.TransformNodeKind,
				function: "FillNull",
				fields:   []lazy.Field{lazy.ExprField("fill_value", value)},
			},
			Schema: s,
		}, nil
	}
}

// FillNan replaces the NaNs of every floating point column with value
func FillNan(value *expr.Expr) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		if value == nil {
			return nil, fmt.Errorf("FillNan requires a fill value")
		}
		s := f.Schema()
		_, vt, err := value.Field(s)
		if err != nil {
			return nil, err
		}
		if !vt.IsNumeric() && vt != remoteframe.Null {
			return nil, errors.IncompatibleTypeError{Operation: "fill_nan", Types: []string{vt.String()}}
		}
		return &lazy.OperationResult{
			Node: &mapNode{
				kind:     lazy.TransformNodeKind,
				function: "FillNan",
				fields:   []lazy.Field{lazy.ExprField("fill_value", value)},
			},
			Schema: s,
		}, nil
	}
}

// Interpolate replaces the nulls of numeric columns by linear interpolation
func Interpolate() lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		return &lazy.OperationResult{
			Node:   &mapNode{kind: lazy.TransformNodeKind, function: "Interpolate"},
			Schema: f.Schema(),
		}, nil
	}
}
