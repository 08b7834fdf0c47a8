package plan

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/go-sif/remoteframe/errors"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type fakeSnapshot string

func (s fakeSnapshot) WriteJSON() ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("empty snapshot")
	}
	return []byte(s), nil
}

type fakeCallable []byte

func (c fakeCallable) Bytes() ([]byte, error) {
	return c, nil
}

func TestSegmentShapes(t *testing.T) {
	s, err := EntryPoint{Identifier: "abc"}.Serialize()
	require.Nil(t, err)
	require.JSONEq(t, `{"EntryPointPlanSegment":"abc"}`, s)

	s, err = EntryPoint{Identifier: `quo"te`}.Serialize()
	require.Nil(t, err)
	require.Equal(t, `quo"te`, gjson.Get(s, "EntryPointPlanSegment").String())

	s, err = LocalPlan{Snapshot: fakeSnapshot(`{"DataFrameScan":{}}`)}.Serialize()
	require.Nil(t, err)
	require.JSONEq(t, `{"PolarsPlanSegment":{"DataFrameScan":{}}}`, s)

	udf := []byte{0x00, 0x01, 0xfe, 0xff}
	s, err = UdfApply{Columns: []string{"b", "a"}, Function: fakeCallable(udf)}.Serialize()
	require.Nil(t, err)
	require.JSONEq(t, fmt.Sprintf(`{"UdfPlanSegment":{"columns":["b","a"],"udf":%q}}`, base64.StdEncoding.EncodeToString(udf)), s)

	s, err = Stack{}.Serialize()
	require.Nil(t, err)
	require.Equal(t, `"StackPlanSegment"`, s)
}

func TestSegmentErrors(t *testing.T) {
	_, err := Base{}.Serialize()
	require.ErrorAs(t, err, &errors.UnimplementedSegmentError{})

	_, err = LocalPlan{}.Serialize()
	require.Error(t, err)
	_, err = LocalPlan{Snapshot: fakeSnapshot("")}.Serialize()
	require.EqualError(t, err, "empty snapshot")
	_, err = LocalPlan{Snapshot: fakeSnapshot("{nope")}.Serialize()
	require.Error(t, err)
	_, err = UdfApply{Columns: []string{"a"}}.Serialize()
	require.Error(t, err)
}

func TestHistoryPersistence(t *testing.T) {
	var empty History
	require.Equal(t, 0, empty.Len())
	require.Empty(t, empty.Segments())

	base := NewHistory(EntryPoint{Identifier: "a"})
	left := base.Append(Stack{})
	right := base.Append(EntryPoint{Identifier: "b"}, Stack{})

	require.Equal(t, 1, base.Len())
	require.Equal(t, 2, left.Len())
	require.Equal(t, 3, right.Len())
	require.Equal(t, []Segment{EntryPoint{Identifier: "a"}}, base.Segments())
	require.Equal(t, []Segment{EntryPoint{Identifier: "a"}, Stack{}}, left.Segments())
	require.Equal(t, []Segment{EntryPoint{Identifier: "a"}, EntryPoint{Identifier: "b"}, Stack{}}, right.Segments())

	both := left.Concat(right)
	require.Equal(t, 5, both.Len())
	require.Equal(t, 2, left.Len())
	require.Equal(t, 3, right.Len())
}

func TestSerializeComposite(t *testing.T) {
	h := NewHistory(EntryPoint{Identifier: "abc"}, LocalPlan{Snapshot: fakeSnapshot(`{"x":1}`)}, Stack{})
	s, err := h.Serialize()
	require.Nil(t, err)
	require.JSONEq(t, `[{"EntryPointPlanSegment":"abc"},{"PolarsPlanSegment":{"x":1}},"StackPlanSegment"]`, s)

	s, err = Serialize(nil)
	require.Nil(t, err)
	require.Equal(t, "[]", s)

	_, err = h.Append(Base{}).Serialize()
	require.ErrorAs(t, err, &errors.UnimplementedSegmentError{})
}

func TestFingerprint(t *testing.T) {
	require.Equal(t, Fingerprint(`["a"]`), Fingerprint(`["a"]`))
	require.NotEqual(t, Fingerprint(`["a"]`), Fingerprint(`["b"]`))
}
