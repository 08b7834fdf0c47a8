package transform

import (
	"fmt"

	"github.com/go-sif/remoteframe/expr"
	"github.com/go-sif/remoteframe/lazy"
	jsoniter "github.com/json-iterator/go"
)

// SortOptions configures Sort
type SortOptions struct {
	By         []*expr.Expr // [REQUIRED] sort keys, in order of precedence
	Descending []bool       // sort direction, either one for all keys or one per key. Defaults to ascending.
	NullsLast  bool         // place nulls after all other values
}

type sortNode struct {
	by         []*expr.Expr
	descending []bool
	nullsLast  bool
}

func (n *sortNode) Kind() lazy.NodeKind {
	return lazy.TransformNodeKind
}

func (n *sortNode) WriteJSON(stream *jsoniter.Stream, inputs []*lazy.Frame) {
	lazy.WriteNode(stream, "Sort",
		lazy.InputField("input", inputs[0]),
		lazy.ExprsField("by_column", n.by),
		lazy.ObjectField("args",
			lazy.ValueField("reverse", n.descending),
			lazy.ValueField("nulls_last", n.nullsLast),
		),
	)
}

// Sort orders the rows of a Frame by one or more keys
func Sort(opts SortOptions) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		if len(opts.By) == 0 {
			return nil, fmt.Errorf("Sort requires at least one key")
		}
		s := f.Schema()
		by := expr.Expand(opts.By, s)
		for _, e := range by {
			if _, _, err := e.Field(s); err != nil {
				return nil, err
			}
		}
		descending := make([]bool, len(by))
		switch len(opts.Descending) {
		case 0:
		case 1:
			for i := range descending {
				descending[i] = opts.Descending[0]
			}
		case len(by):
			copy(descending, opts.Descending)
		default:
			return nil, fmt.Errorf("Sort received %d directions for %d keys", len(opts.Descending), len(by))
		}
		return &lazy.OperationResult{
			Node:   &sortNode{by: by, descending: descending, nullsLast: opts.NullsLast},
			Schema: s,
		}, nil
	}
}

// Reverse reverses the order of the rows of a Frame
func Reverse() lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		return &lazy.OperationResult{
			Node:   &mapNode{kind: lazy.TransformNodeKind, function: "Reverse"},
			Schema: f.Schema(),
		}, nil
	}
}
