package transform

import (
	"fmt"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/errors"
	"github.com/go-sif/remoteframe/expr"
	"github.com/go-sif/remoteframe/lazy"
	jsoniter "github.com/json-iterator/go"
)

type filterNode struct {
	predicate *expr.Expr
}

func (n *filterNode) Kind() lazy.NodeKind {
	return lazy.TransformNodeKind
}

func (n *filterNode) WriteJSON(stream *jsoniter.Stream, inputs []*lazy.Frame) {
	lazy.WriteNode(stream, "Selection",
		lazy.InputField("input", inputs[0]),
		lazy.ExprField("predicate", n.predicate),
	)
}

// Filter keeps the rows for which predicate evaluates to true
func Filter(predicate *expr.Expr) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		if predicate == nil {
			return nil, fmt.Errorf("Filter requires a predicate")
		}
		s := f.Schema()
		_, t, err := predicate.Field(s)
		if err != nil {
			return nil, err
		}
		if t != remoteframe.Boolean {
			return nil, errors.IncompatibleTypeError{Operation: "filter", Types: []string{t.String()}}
		}
		return &lazy.OperationResult{Node: &filterNode{predicate: predicate}, Schema: s}, nil
	}
}

// DropNulls removes rows which contain a null in any of the given columns,
// or in any column if none are given
func DropNulls(subset ...string) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		s := f.Schema()
		if len(subset) == 0 {
			subset = s.ColumnNames()
		}
		for _, name := range subset {
			if !s.HasColumn(name) {
				return nil, errors.MissingColumnError{Name: name}
			}
		}
		return &lazy.OperationResult{
			Node: &mapNode{
				kind:     lazy.TransformNodeKind,
				function: "DropNulls",
				fields:   []lazy.Field{lazy.ValueField("subset", subset)},
			},
			Schema: s,
		}, nil
	}
}
