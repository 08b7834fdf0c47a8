package lazy

import (
	"fmt"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/errors"
	"github.com/go-sif/remoteframe/expr"
	"github.com/go-sif/remoteframe/schema"
	jsoniter "github.com/json-iterator/go"
)

// RollingOptions configures GroupByRolling
type RollingOptions struct {
	IndexColumn string       // [REQUIRED] integer or temporal column defining the windows
	Period      string       // [REQUIRED] length of each window, e.g. "2d" or "10i"
	Offset      string       // offset of each window. Defaults to -Period.
	Closed      string       // which window boundaries are inclusive: "left", "right", "both" or "none". Defaults to "right".
	By          []*expr.Expr // additional grouping keys
}

// DynamicOptions configures GroupByDynamic
type DynamicOptions struct {
	IndexColumn       string       // [REQUIRED] integer or temporal column defining the windows
	Every             string       // [REQUIRED] interval between window starts
	Period            string       // length of each window. Defaults to Every.
	Offset            string       // offset of window starts. Defaults to "0".
	Truncate          bool         // truncate the index to the window start
	IncludeBoundaries bool         // add _lower_boundary and _upper_boundary columns
	Closed            string       // which window boundaries are inclusive. Defaults to "left".
	By                []*expr.Expr // additional grouping keys
}

type groupKind int

const (
	plainGroup groupKind = iota
	rollingGroup
	dynamicGroup
)

// GroupBy is the intermediate state of a grouping operation on a Frame.
// It produces a new Frame through one of its aggregation methods.
type GroupBy struct {
	input         *Frame
	kind          groupKind
	keys          []*expr.Expr
	maintainOrder bool
	rolling       RollingOptions
	dynamic       DynamicOptions
}

// GroupBy groups a Frame by one or more key expressions
func (f *Frame) GroupBy(by []*expr.Expr, maintainOrder bool) (*GroupBy, error) {
	if len(by) == 0 {
		return nil, fmt.Errorf("GroupBy requires at least one key")
	}
	g := &GroupBy{input: f, kind: plainGroup, keys: expr.Expand(by, f.schema), maintainOrder: maintainOrder}
	if _, err := g.keySchema(); err != nil {
		return nil, err
	}
	return g, nil
}

func checkIndexColumn(f *Frame, name string) error {
	col, err := f.schema.GetColumn(name)
	if err != nil {
		return err
	}
	if !col.Type().IsInteger() && !col.Type().IsTemporal() {
		return errors.IncompatibleTypeError{Operation: "group by window", Types: []string{col.Type().String()}}
	}
	return nil
}

// GroupByRolling groups a Frame into rolling windows over an index column
func (f *Frame) GroupByRolling(opts RollingOptions) (*GroupBy, error) {
	if opts.Period == "" {
		return nil, fmt.Errorf("GroupByRolling requires a period")
	}
	if err := checkIndexColumn(f, opts.IndexColumn); err != nil {
		return nil, err
	}
	if opts.Offset == "" {
		opts.Offset = "-" + opts.Period
	}
	if opts.Closed == "" {
		opts.Closed = "right"
	}
	g := &GroupBy{input: f, kind: rollingGroup, keys: expr.Expand(opts.By, f.schema), rolling: opts}
	if _, err := g.keySchema(); err != nil {
		return nil, err
	}
	return g, nil
}

// GroupByDynamic groups a Frame into (possibly overlapping) windows of an index column
func (f *Frame) GroupByDynamic(opts DynamicOptions) (*GroupBy, error) {
	if opts.Every == "" {
		return nil, fmt.Errorf("GroupByDynamic requires an interval")
	}
	if err := checkIndexColumn(f, opts.IndexColumn); err != nil {
		return nil, err
	}
	if opts.Period == "" {
		opts.Period = opts.Every
	}
	if opts.Offset == "" {
		opts.Offset = "0"
	}
	if opts.Closed == "" {
		opts.Closed = "left"
	}
	g := &GroupBy{input: f, kind: dynamicGroup, keys: expr.Expand(opts.By, f.schema), dynamic: opts}
	if _, err := g.keySchema(); err != nil {
		return nil, err
	}
	return g, nil
}

// Input returns the Frame being grouped
func (g *GroupBy) Input() *Frame {
	return g.input
}

// Keys returns the grouping keys
func (g *GroupBy) Keys() []*expr.Expr {
	res := make([]*expr.Expr, len(g.keys))
	copy(res, g.keys)
	return res
}

// Clone returns a copy of this GroupBy
func (g *GroupBy) Clone() *GroupBy {
	clone := *g
	clone.input = g.input.Clone()
	return &clone
}

// keySchema computes the leading columns of any Frame produced by this GroupBy
func (g *GroupBy) keySchema() (remoteframe.Schema, error) {
	s := schema.CreateSchema()
	for _, k := range g.keys {
		name, t, err := k.Field(g.input.schema)
		if err != nil {
			return nil, err
		}
		if _, err := s.CreateColumn(name, t); err != nil {
			return nil, err
		}
	}
	var index string
	switch g.kind {
	case rollingGroup:
		index = g.rolling.IndexColumn
	case dynamicGroup:
		index = g.dynamic.IndexColumn
		if g.dynamic.IncludeBoundaries {
			col, _ := g.input.schema.GetColumn(index)
			for _, b := range []string{"_lower_boundary", "_upper_boundary"} {
				if _, err := s.CreateColumn(b, col.Type()); err != nil {
					return nil, err
				}
			}
		}
	default:
		return s, nil
	}
	col, _ := g.input.schema.GetColumn(index)
	if _, err := s.CreateColumn(index, col.Type()); err != nil {
		return nil, err
	}
	return s, nil
}

// Agg aggregates each group. Expressions which do not aggregate produce list columns.
func (g *GroupBy) Agg(aggs ...*expr.Expr) (*Frame, error) {
	s, err := g.keySchema()
	if err != nil {
		return nil, err
	}
	aggs = expr.Expand(aggs, g.input.schema, s.ColumnNames()...)
	for _, a := range aggs {
		name, t, err := a.Field(g.input.schema)
		if err != nil {
			return nil, err
		}
		if !a.IsAggregation() {
			t = remoteframe.ListOf(t)
		}
		if _, err := s.CreateColumn(name, t); err != nil {
			return nil, err
		}
	}
	return g.frame(&aggregateNode{group: g, aggs: aggs}, s), nil
}

// Head takes the first n rows of each group
func (g *GroupBy) Head(n int) (*Frame, error) {
	return g.slice("Head", n)
}

// Tail takes the last n rows of each group
func (g *GroupBy) Tail(n int) (*Frame, error) {
	return g.slice("Tail", n)
}

func (g *GroupBy) slice(which string, n int) (*Frame, error) {
	if n < 0 {
		return nil, fmt.Errorf("%s requires a non-negative row count, got %d", which, n)
	}
	s, err := g.keySchema()
	if err != nil {
		return nil, err
	}
	err = g.input.schema.ForEachColumn(func(name string, col remoteframe.Column) error {
		if s.HasColumn(name) {
			return nil
		}
		_, err := s.CreateColumn(name, col.Type())
		return err
	})
	if err != nil {
		return nil, err
	}
	return g.frame(&aggregateNode{group: g, slice: which, n: n}, s), nil
}

func (g *GroupBy) frame(node Node, s remoteframe.Schema) *Frame {
	return &Frame{inputs: []*Frame{g.input}, node: node, schema: s}
}

// aggregateNode encodes any operation produced by a GroupBy
type aggregateNode struct {
	group *GroupBy
	aggs  []*expr.Expr
	slice string
	n     int
}

func (n *aggregateNode) Kind() NodeKind {
	return AggregateNodeKind
}

func (n *aggregateNode) WriteJSON(stream *jsoniter.Stream, inputs []*Frame) {
	g := n.group
	options := []Field{ValueField("maintain_order", g.maintainOrder)}
	switch g.kind {
	case rollingGroup:
		r := g.rolling
		options = append(options, ObjectField("rolling",
			ValueField("index_column", r.IndexColumn),
			ValueField("period", r.Period),
			ValueField("offset", r.Offset),
			ValueField("closed_window", r.Closed),
		))
	case dynamicGroup:
		d := g.dynamic
		options = append(options, ObjectField("dynamic",
			ValueField("index_col", d.IndexColumn),
			ValueField("every", d.Every),
			ValueField("period", d.Period),
			ValueField("offset", d.Offset),
			ValueField("truncate", d.Truncate),
			ValueField("include_boundaries", d.IncludeBoundaries),
			ValueField("closed_window", d.Closed),
		))
	}
	fields := []Field{
		InputField("input", inputs[0]),
		ExprsField("keys", g.keys),
		ExprsField("aggs", n.aggs),
		ObjectField("options", options...),
	}
	if n.slice != "" {
		fields = append(fields, ObjectField("apply", ValueField(n.slice, n.n)))
	}
	WriteNode(stream, "Aggregate", fields...)
}
