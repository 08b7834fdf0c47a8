package transform

import (
	"testing"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/errors"
	"github.com/go-sif/remoteframe/expr"
	"github.com/go-sif/remoteframe/lazy"
	"github.com/go-sif/remoteframe/schema"
	"github.com/stretchr/testify/require"
)

func createPricesFrame(t *testing.T) *lazy.Frame {
	s, err := schema.Of(
		[]string{"id", "price", "score", "ts"},
		[]remoteframe.DType{remoteframe.Int32, remoteframe.Float64, remoteframe.Float32, remoteframe.Int64},
	)
	require.Nil(t, err)
	return lazy.Empty(s)
}

func TestJoin(t *testing.T) {
	left := createTestFrame(t)
	right := createPricesFrame(t)
	res, err := left.To(Join(right, JoinOptions{On: expr.Cols("id")}))
	require.Nil(t, err)
	require.Equal(t, []string{"id", "name", "score", "tags", "price", "score_right", "ts"}, res.Columns())
	require.Equal(t, lazy.JoinNodeKind, res.Node().Kind())
	require.Len(t, res.Inputs(), 2)

	plan, err := res.WriteJSON()
	require.Nil(t, err)
	require.Contains(t, string(plan), `"left_on":[{"Column":"id"}],"right_on":[{"Column":"id"}]`)
	require.Contains(t, string(plan), `"options":{"how":"inner","suffix":"_right","allow_parallel":true,"force_parallel":false}`)

	res, err = left.To(Join(right, JoinOptions{LeftOn: expr.Cols("id"), RightOn: expr.Cols("ts"), How: LeftJoin, Suffix: "_p"}))
	require.Nil(t, err)
	require.Equal(t, []string{"id", "name", "score", "tags", "id_p", "price", "score_p"}, res.Columns())

	res, err = left.To(Join(right, JoinOptions{On: expr.Cols("id"), DisallowParallel: true}))
	require.Nil(t, err)
	plan, err = res.WriteJSON()
	require.Nil(t, err)
	require.Contains(t, string(plan), `"allow_parallel":false`)

	res, err = left.To(Join(right, JoinOptions{On: expr.Cols("id"), How: SemiJoin}))
	require.Nil(t, err)
	require.Equal(t, left.Columns(), res.Columns())

	res, err = left.To(Join(right, JoinOptions{How: CrossJoin}))
	require.Nil(t, err)
	require.Equal(t, 8, res.Width())
}

func TestJoinErrors(t *testing.T) {
	left := createTestFrame(t)
	right := createPricesFrame(t)
	_, err := left.To(Join(nil, JoinOptions{On: expr.Cols("id")}))
	require.Error(t, err)
	_, err = left.To(Join(right, JoinOptions{}))
	require.Error(t, err)
	_, err = left.To(Join(right, JoinOptions{On: expr.Cols("id"), How: "sideways"}))
	require.Error(t, err)
	_, err = left.To(Join(right, JoinOptions{On: expr.Cols("id"), How: CrossJoin}))
	require.Error(t, err)
	_, err = left.To(Join(right, JoinOptions{On: expr.Cols("name")}))
	require.ErrorAs(t, err, &errors.MissingColumnError{})
	_, err = left.To(Join(right, JoinOptions{LeftOn: expr.Cols("tags"), RightOn: expr.Cols("price")}))
	require.ErrorAs(t, err, &errors.IncompatibleTypeError{})
}

func TestJoinAsof(t *testing.T) {
	left := createTestFrame(t)
	right := createPricesFrame(t)
	res, err := left.To(JoinAsof(right, AsofOptions{LeftOn: "id", RightOn: "ts", Tolerance: 5}))
	require.Nil(t, err)
	require.Equal(t, []string{"id", "name", "score", "tags", "id_right", "price", "score_right"}, res.Columns())

	plan, err := res.WriteJSON()
	require.Nil(t, err)
	require.Contains(t, string(plan), `"options":{"how":"asof","asof":{"strategy":"backward","left_by":null,"right_by":null,"tolerance":5},"suffix":"_right","allow_parallel":true,"force_parallel":false}`)

	res, err = left.To(JoinAsof(right, AsofOptions{On: "id", Strategy: "nearest"}))
	require.Nil(t, err)
	require.Equal(t, []string{"id", "name", "score", "tags", "price", "score_right", "ts"}, res.Columns())

	_, err = left.To(JoinAsof(right, AsofOptions{On: "id", Strategy: "sideways"}))
	require.Error(t, err)
	_, err = left.To(JoinAsof(right, AsofOptions{LeftOn: "id"}))
	require.Error(t, err)
	_, err = left.To(JoinAsof(right, AsofOptions{On: "id", ByLeft: []string{"name"}}))
	require.Error(t, err)
	_, err = left.To(JoinAsof(nil, AsofOptions{On: "id"}))
	require.Error(t, err)
}
