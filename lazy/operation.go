package lazy

import (
	"github.com/go-sif/remoteframe"
	jsoniter "github.com/json-iterator/go"
)

// A Node is a single step of a local plan. Nodes know how to write
// their plan encoding, given the Frames they consume.
type Node interface {
	Kind() NodeKind
	WriteJSON(stream *jsoniter.Stream, inputs []*Frame)
}

// OperationResult is the result of applying an Operation to a Frame: the Node
// representing the operation, the Schema of its output, and any Frames it
// consumes in addition to the one it was applied to.
type OperationResult struct {
	Node   Node
	Schema remoteframe.Schema
	Inputs []*Frame
}

// Operation is a generic Frame transform, validated against the Frame it is applied to
type Operation func(f *Frame) (*OperationResult, error)
