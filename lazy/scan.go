package lazy

import (
	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/schema"
	jsoniter "github.com/json-iterator/go"
)

// scanNode is the root of every local plan: an empty in-memory frame
type scanNode struct {
	schema remoteframe.Schema
}

func (n *scanNode) Kind() NodeKind {
	return ScanNodeKind
}

func (n *scanNode) WriteJSON(stream *jsoniter.Stream, _ []*Frame) {
	WriteNode(stream, "DataFrameScan", Field{Name: "schema", Write: func(stream *jsoniter.Stream) {
		schema.WriteJSON(stream, n.schema)
	}})
}
