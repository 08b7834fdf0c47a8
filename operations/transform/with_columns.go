package transform

import (
	"fmt"

	"github.com/go-sif/remoteframe/errors"
	"github.com/go-sif/remoteframe/expr"
	"github.com/go-sif/remoteframe/lazy"
	jsoniter "github.com/json-iterator/go"
)

type hstackNode struct {
	exprs []*expr.Expr
}

func (n *hstackNode) Kind() lazy.NodeKind {
	return lazy.ProjectNodeKind
}

func (n *hstackNode) WriteJSON(stream *jsoniter.Stream, inputs []*lazy.Frame) {
	lazy.WriteNode(stream, "HStack",
		lazy.InputField("input", inputs[0]),
		lazy.ExprsField("exprs", n.exprs),
	)
}

// WithColumns evaluates exprs against a Frame and adds the results as columns.
// A result named after an existing column replaces it in place.
func WithColumns(exprs ...*expr.Expr) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		if len(exprs) == 0 {
			return nil, fmt.Errorf("WithColumns requires at least one expression")
		}
		input := f.Schema()
		s := f.Schema()
		expanded := expr.Expand(exprs, input)
		seen := make(map[string]bool, len(expanded))
		for _, e := range expanded {
			name, t, err := e.Field(input)
			if err != nil {
				return nil, err
			}
			if seen[name] {
				return nil, errors.DuplicateColumnError{Name: name}
			}
			seen[name] = true
			if s.HasColumn(name) {
				names := s.ColumnNames()
				types := s.ColumnTypes()
				col, _ := s.GetColumn(name)
				types[col.Index()] = t
				if s, err = rebuild(names, types); err != nil {
					return nil, err
				}
				continue
			}
			if _, err := s.CreateColumn(name, t); err != nil {
				return nil, err
			}
		}
		return &lazy.OperationResult{Node: &hstackNode{exprs: expanded}, Schema: s}, nil
	}
}

// WithColumn evaluates e against a Frame and adds the result as a column
func WithColumn(e *expr.Expr) lazy.Operation {
	return WithColumns(e)
}
