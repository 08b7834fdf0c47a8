package expr

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/go-sif/remoteframe"
)

// binaryVersion is bumped whenever the layout of wireNode changes
const binaryVersion = 1

// wireNode is the flattened form of an Expr node. Args index earlier nodes of the same table.
type wireNode struct {
	Kind    uint8
	Name    string
	Op      string
	Literal string
	DType   string
	Param   float64
	Index   int
	Args    []int
}

type wireTable struct {
	Version int
	Nodes   []wireNode
}

// flatten appends e and its descendants to nodes in post-order, returning the index of e
func (e *Expr) flatten(nodes *[]wireNode) int {
	args := make([]int, len(e.args))
	for i, a := range e.args {
		args[i] = a.flatten(nodes)
	}
	*nodes = append(*nodes, wireNode{
		Kind:    uint8(e.kind),
		Name:    e.name,
		Op:      e.op,
		Literal: e.literal,
		DType:   e.dtype.String(),
		Param:   e.param,
		Index:   e.index,
		Args:    args,
	})
	return len(*nodes) - 1
}

// MarshalBinary encodes this expression as a compact node table. The last node is the root.
func (e *Expr) MarshalBinary() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	table := wireTable{Version: binaryVersion}
	e.flatten(&table.Nodes)
	buff := new(bytes.Buffer)
	if err := gob.NewEncoder(buff).Encode(&table); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// UnmarshalBinary decodes an expression produced by MarshalBinary into e
func (e *Expr) UnmarshalBinary(data []byte) error {
	var table wireTable
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&table); err != nil {
		return err
	}
	if table.Version != binaryVersion {
		return fmt.Errorf("unsupported expression encoding version %d", table.Version)
	}
	if len(table.Nodes) == 0 {
		return fmt.Errorf("expression encoding contains no nodes")
	}
	built := make([]*Expr, len(table.Nodes))
	for i, n := range table.Nodes {
		node := &Expr{
			kind:    Kind(n.Kind),
			name:    n.Name,
			op:      n.Op,
			literal: n.Literal,
			dtype:   remoteframe.DType(n.DType),
			param:   n.Param,
			index:   n.Index,
		}
		for _, a := range n.Args {
			if a < 0 || a >= i {
				return fmt.Errorf("node %d refers to invalid argument %d", i, a)
			}
			node.args = append(node.args, built[a])
		}
		built[i] = node
	}
	*e = *built[len(built)-1]
	return nil
}
