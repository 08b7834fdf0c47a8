package lazy

import (
	"fmt"
	"strings"

	"github.com/go-sif/remoteframe"
	jsoniter "github.com/json-iterator/go"
)

// Frame is a local, lazily-evaluated plan over columnar data. It tracks the
// Schema produced by each step, but holds no values. Frames are immutable;
// every operation produces a new Frame referring to its inputs.
type Frame struct {
	inputs []*Frame           // the frames consumed by node. Empty if this is a root.
	node   Node               // the step represented by this Frame
	schema remoteframe.Schema // the schema of the data produced by node
}

// Empty creates a Frame with no rows, typed per the given Schema
func Empty(schema remoteframe.Schema) *Frame {
	s := schema.Clone()
	return &Frame{
		inputs: nil,
		node:   &scanNode{schema: s},
		schema: s,
	}
}

// To is a "functional operations" factory method for Frames,
// chaining operations onto the current one.
func (f *Frame) To(ops ...Operation) (*Frame, error) {
	next := f
	for _, op := range ops {
		result, err := op(next)
		if err != nil {
			return nil, err
		}
		inputs := make([]*Frame, 0, 1+len(result.Inputs))
		inputs = append(inputs, next)
		inputs = append(inputs, result.Inputs...)
		next = &Frame{
			inputs: inputs,
			node:   result.Node,
			schema: result.Schema,
		}
	}
	return next, nil
}

// Schema returns a copy of the Schema of this Frame
func (f *Frame) Schema() remoteframe.Schema {
	return f.schema.Clone()
}

// Columns returns the column names of this Frame, in order
func (f *Frame) Columns() []string {
	return f.schema.ColumnNames()
}

// DTypes returns the column types of this Frame, in order
func (f *Frame) DTypes() []remoteframe.DType {
	return f.schema.ColumnTypes()
}

// Width returns the number of columns of this Frame
func (f *Frame) Width() int {
	return f.schema.NumColumns()
}

// HasColumn returns true iff this Frame has a column with the given name
func (f *Frame) HasColumn(name string) bool {
	return f.schema.HasColumn(name)
}

// Node returns the step represented by this Frame
func (f *Frame) Node() Node {
	return f.node
}

// Inputs returns the Frames consumed by this Frame's Node
func (f *Frame) Inputs() []*Frame {
	res := make([]*Frame, len(f.inputs))
	copy(res, f.inputs)
	return res
}

// Depth returns the length of the longest chain of nodes leading to this Frame
func (f *Frame) Depth() int {
	depth := 0
	for _, in := range f.inputs {
		if d := in.Depth(); d > depth {
			depth = d
		}
	}
	return depth + 1
}

// Clone returns a new Frame with the same plan and an independent copy of its Schema
func (f *Frame) Clone() *Frame {
	return &Frame{
		inputs: f.inputs,
		node:   f.node,
		schema: f.schema.Clone(),
	}
}

// writeJSON writes the plan encoding of this Frame and its inputs
func (f *Frame) writeJSON(stream *jsoniter.Stream) {
	f.node.WriteJSON(stream, f.inputs)
}

// WriteJSON returns the plan encoding of this Frame
func (f *Frame) WriteJSON() ([]byte, error) {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(nil)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)
	f.writeJSON(stream)
	if stream.Error != nil {
		return nil, stream.Error
	}
	res := make([]byte, len(stream.Buffer()))
	copy(res, stream.Buffer())
	return res, nil
}

// String returns a short description of this Frame's Schema
func (f *Frame) String() string {
	cols := make([]string, 0, f.schema.NumColumns())
	for i, name := range f.schema.ColumnNames() {
		cols = append(cols, fmt.Sprintf("%s: %s", name, f.schema.ColumnTypes()[i]))
	}
	return fmt.Sprintf("LazyFrame{%s}", strings.Join(cols, ", "))
}
