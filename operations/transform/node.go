package transform

import (
	"github.com/go-sif/remoteframe/lazy"
	jsoniter "github.com/json-iterator/go"
)

// mapNode encodes a structural transformation of a single input as
// {"MapFunction":{"input":...,"function":{"<name>":{<fields>}}}}
type mapNode struct {
	kind     lazy.NodeKind
	function string
	fields   []lazy.Field
}

func (n *mapNode) Kind() lazy.NodeKind {
	return n.kind
}

func (n *mapNode) WriteJSON(stream *jsoniter.Stream, inputs []*lazy.Frame) {
	lazy.WriteNode(stream, "MapFunction",
		lazy.InputField("input", inputs[0]),
		lazy.ObjectField("function", lazy.ObjectField(n.function, n.fields...)),
	)
}

// sliceNode encodes a contiguous range of rows. Negative offsets count from the end.
type sliceNode struct {
	offset int64
	length uint64
}

func (n *sliceNode) Kind() lazy.NodeKind {
	return lazy.TransformNodeKind
}

func (n *sliceNode) WriteJSON(stream *jsoniter.Stream, inputs []*lazy.Frame) {
	lazy.WriteNode(stream, "Slice",
		lazy.InputField("input", inputs[0]),
		lazy.ValueField("offset", n.offset),
		lazy.ValueField("len", n.length),
	)
}

// cacheNode marks its input for reuse by the executor
type cacheNode struct{}

func (n *cacheNode) Kind() lazy.NodeKind {
	return lazy.CacheNodeKind
}

func (n *cacheNode) WriteJSON(stream *jsoniter.Stream, inputs []*lazy.Frame) {
	lazy.WriteNode(stream, "Cache", lazy.InputField("input", inputs[0]))
}

// Cache marks a Frame for reuse, leaving its schema unchanged
func Cache() lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		return &lazy.OperationResult{Node: &cacheNode{}, Schema: f.Schema()}, nil
	}
}
