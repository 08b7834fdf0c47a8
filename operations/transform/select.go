package transform

import (
	"fmt"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/errors"
	"github.com/go-sif/remoteframe/expr"
	"github.com/go-sif/remoteframe/lazy"
	"github.com/go-sif/remoteframe/schema"
	jsoniter "github.com/json-iterator/go"
)

type selectNode struct {
	exprs []*expr.Expr
}

func (n *selectNode) Kind() lazy.NodeKind {
	return lazy.ProjectNodeKind
}

func (n *selectNode) WriteJSON(stream *jsoniter.Stream, inputs []*lazy.Frame) {
	lazy.WriteNode(stream, "Select",
		lazy.InputField("input", inputs[0]),
		lazy.ExprsField("expr", n.exprs),
	)
}

// project computes the schema produced by evaluating exprs against s
func project(s remoteframe.Schema, exprs []*expr.Expr) (remoteframe.Schema, error) {
	res := schema.CreateSchema()
	for _, e := range exprs {
		name, t, err := e.Field(s)
		if err != nil {
			return nil, err
		}
		if res.HasColumn(name) {
			return nil, errors.DuplicateColumnError{Name: name}
		}
		if _, err := res.CreateColumn(name, t); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Select replaces the columns of a Frame with the results of evaluating exprs.
// All() expands to every column.
func Select(exprs ...*expr.Expr) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		if len(exprs) == 0 {
			return nil, fmt.Errorf("Select requires at least one expression")
		}
		s := f.Schema()
		expanded := expr.Expand(exprs, s)
		newSchema, err := project(s, expanded)
		if err != nil {
			return nil, err
		}
		return &lazy.OperationResult{Node: &selectNode{exprs: expanded}, Schema: newSchema}, nil
	}
}

// aggregateAll reduces every column of a Frame with the given aggregation
func aggregateAll(agg func(*expr.Expr) *expr.Expr) lazy.Operation {
	return Select(agg(expr.All()))
}

// Sum reduces each column to its sum
func Sum() lazy.Operation { return aggregateAll((*expr.Expr).Sum) }

// Mean reduces each column to its mean
func Mean() lazy.Operation { return aggregateAll((*expr.Expr).Mean) }

// Median reduces each column to its median
func Median() lazy.Operation { return aggregateAll((*expr.Expr).Median) }

// Min reduces each column to its minimum
func Min() lazy.Operation { return aggregateAll((*expr.Expr).Min) }

// Max reduces each column to its maximum
func Max() lazy.Operation { return aggregateAll((*expr.Expr).Max) }

// Std reduces each column to its standard deviation
func Std(ddof int) lazy.Operation {
	return aggregateAll(func(e *expr.Expr) *expr.Expr { return e.Std(ddof) })
}

// Var reduces each column to its variance
func Var(ddof int) lazy.Operation {
	return aggregateAll(func(e *expr.Expr) *expr.Expr { return e.Var(ddof) })
}

// Quantile reduces each column to its q-th quantile
func Quantile(q float64) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		if q < 0 || q > 1 {
			return nil, fmt.Errorf("quantile must be between 0 and 1, got %v", q)
		}
		return aggregateAll(func(e *expr.Expr) *expr.Expr { return e.Quantile(q) })(f)
	}
}
