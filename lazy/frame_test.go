package lazy

import (
	"fmt"
	"testing"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/schema"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

func createTestSchema(t *testing.T) remoteframe.Schema {
	s, err := schema.Of(
		[]string{"id", "name", "score"},
		[]remoteframe.DType{remoteframe.Int64, remoteframe.Utf8, remoteframe.Float64},
	)
	require.Nil(t, err)
	return s
}

type tagNode struct {
	tag string
}

func (n *tagNode) Kind() NodeKind {
	return TransformNodeKind
}

func (n *tagNode) WriteJSON(stream *jsoniter.Stream, inputs []*Frame) {
	fields := make([]Field, len(inputs))
	for i, in := range inputs {
		fields[i] = InputField(fmt.Sprintf("input_%d", i), in)
	}
	WriteNode(stream, n.tag, fields...)
}

func dropFirst(tag string) Operation {
	return func(f *Frame) (*OperationResult, error) {
		s := f.Schema()
		if s.NumColumns() == 0 {
			return nil, fmt.Errorf("no columns left")
		}
		s.RemoveColumn(s.ColumnNames()[0])
		return &OperationResult{Node: &tagNode{tag: tag}, Schema: s}, nil
	}
}

func TestEmptyFrame(t *testing.T) {
	s := createTestSchema(t)
	f := Empty(s)
	require.Equal(t, []string{"id", "name", "score"}, f.Columns())
	require.Equal(t, []remoteframe.DType{remoteframe.Int64, remoteframe.Utf8, remoteframe.Float64}, f.DTypes())
	require.Equal(t, 3, f.Width())
	require.Equal(t, 1, f.Depth())
	require.Equal(t, ScanNodeKind, f.Node().Kind())
	require.Empty(t, f.Inputs())

	// the frame owns a copy of the schema it was built from
	s.RemoveColumn("id")
	require.True(t, f.HasColumn("id"))

	plan, err := f.WriteJSON()
	require.Nil(t, err)
	require.JSONEq(t, `{"DataFrameScan":{"schema":{"inner":{"id":"Int64","name":"Utf8","score":"Float64"}}}}`, string(plan))
	require.Equal(t, "LazyFrame{id: Int64, name: Utf8, score: Float64}", f.String())
}

func TestFrameTo(t *testing.T) {
	root := Empty(createTestSchema(t))
	next, err := root.To(dropFirst("A"), dropFirst("B"))
	require.Nil(t, err)
	require.Equal(t, []string{"score"}, next.Columns())
	require.Equal(t, 3, next.Depth())
	require.Equal(t, 3, root.Width())

	plan, err := next.WriteJSON()
	require.Nil(t, err)
	require.JSONEq(t, `{"B":{"input_0":{"A":{"input_0":{"DataFrameScan":{"schema":{"inner":{"id":"Int64","name":"Utf8","score":"Float64"}}}}}}}}`, string(plan))

	_, err = next.To(dropFirst("C"), dropFirst("D"))
	require.EqualError(t, err, "no columns left")
}

func TestFrameToExtraInputs(t *testing.T) {
	left := Empty(createTestSchema(t))
	right := Empty(createTestSchema(t))
	merge := func(f *Frame) (*OperationResult, error) {
		return &OperationResult{Node: &tagNode{tag: "Merge"}, Schema: f.Schema(), Inputs: []*Frame{right}}, nil
	}
	merged, err := left.To(merge)
	require.Nil(t, err)
	require.Len(t, merged.Inputs(), 2)
	require.Equal(t, left, merged.Inputs()[0])
	require.Equal(t, right, merged.Inputs()[1])
	require.Equal(t, TransformNodeKind, merged.Node().Kind())
}

func TestFrameClone(t *testing.T) {
	f, err := Empty(createTestSchema(t)).To(dropFirst("A"))
	require.Nil(t, err)
	clone := f.Clone()
	require.Equal(t, f.Columns(), clone.Columns())
	require.Equal(t, f.Node(), clone.Node())

	p1, err := f.WriteJSON()
	require.Nil(t, err)
	p2, err := clone.WriteJSON()
	require.Nil(t, err)
	require.Equal(t, p1, p2)

	// Schema() hands out copies
	clone.Schema().RemoveColumn("name")
	require.True(t, clone.HasColumn("name"))
}
