package transform

import (
	"fmt"

	"github.com/go-sif/remoteframe/expr"
	"github.com/go-sif/remoteframe/lazy"
)

// Slice keeps length rows starting at offset. A negative offset counts back from the last row.
func Slice(offset int64, length uint64) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		return &lazy.OperationResult{Node: &sliceNode{offset: offset, length: length}, Schema: f.Schema()}, nil
	}
}

// Limit keeps the first n rows of a Frame
func Limit(n uint64) lazy.Operation {
	return Slice(0, n)
}

// Head keeps the first n rows of a Frame
func Head(n uint64) lazy.Operation {
	return Slice(0, n)
}

// First keeps the first row of a Frame
func First() lazy.Operation {
	return Slice(0, 1)
}

// Tail keeps the last n rows of a Frame
func Tail(n uint64) lazy.Operation {
	return Slice(-int64(n), n)
}

// Last keeps the last row of a Frame
func Last() lazy.Operation {
	return Tail(1)
}

// Shift moves the values of every column down by n rows (up, if n is negative),
// introducing nulls
func Shift(n int64) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		return &lazy.OperationResult{
			Node: &mapNode{
				kind:     lazy.TransformNodeKind,
				function: "Shift",
				fields:   []lazy.Field{lazy.ValueField("periods", n)},
			},
			Schema: f.Schema(),
		}, nil
	}
}

// ShiftAndFill moves the values of every column by n rows, filling the
// vacated rows with fill instead of nulls
func ShiftAndFill(n int64, fill *expr.Expr) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		if fill == nil {
			return nil, fmt.Errorf("ShiftAndFill requires a fill value")
		}
		s, err := fillSchema(f, fill)
		if err != nil {
			return nil, err
		}
		return &lazy.OperationResult{
			Node: &mapNode{
				kind:     lazy.TransformNodeKind,
				function: "ShiftAndFill",
				fields: []lazy.Field{
					lazy.ValueField("periods", n),
					lazy.ExprField("fill_value", fill),
				},
			},
			Schema: s,
		}, nil
	}
}

// TakeEvery keeps every n-th row of a Frame, starting with the first
func TakeEvery(n int) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		if n <= 0 {
			return nil, fmt.Errorf("TakeEvery requires a positive step, got %d", n)
		}
		return &lazy.OperationResult{
			Node: &mapNode{
				kind:     lazy.TransformNodeKind,
				function: "TakeEvery",
				fields:   []lazy.Field{lazy.ValueField("n", n)},
			},
			Schema: f.Schema(),
		}, nil
	}
}
