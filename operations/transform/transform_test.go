package transform

import (
	"testing"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/errors"
	"github.com/go-sif/remoteframe/expr"
	"github.com/go-sif/remoteframe/lazy"
	"github.com/go-sif/remoteframe/schema"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

const testScan = `{"DataFrameScan":{"schema":{"inner":{"id":"Int64","name":"Utf8","score":"Float64","tags":"List(Utf8)"}}}}`

func createTestFrame(t *testing.T) *lazy.Frame {
	s, err := schema.Of(
		[]string{"id", "name", "score", "tags"},
		[]remoteframe.DType{remoteframe.Int64, remoteframe.Utf8, remoteframe.Float64, remoteframe.ListOf(remoteframe.Utf8)},
	)
	require.Nil(t, err)
	return lazy.Empty(s)
}

func requirePlan(t *testing.T, expected string, f *lazy.Frame) {
	plan, err := f.WriteJSON()
	require.Nil(t, err)
	require.JSONEq(t, expected, string(plan))
}

func TestFilter(t *testing.T) {
	f := createTestFrame(t)
	res, err := f.To(Filter(expr.Col("score").Gt(expr.Lit(0.5))))
	require.Nil(t, err)
	require.Equal(t, f.Columns(), res.Columns())
	requirePlan(t, `{"Selection":{
		"input":`+testScan+`,
		"predicate":{"BinaryExpr":{"left":{"Column":"score"},"op":"Gt","right":{"Literal":{"Float64":0.5}}}}
	}}`, res)

	_, err = f.To(Filter(expr.Col("score")))
	require.ErrorAs(t, err, &errors.IncompatibleTypeError{})
	_, err = f.To(Filter(expr.Col("missing").IsNull()))
	require.ErrorAs(t, err, &errors.MissingColumnError{})
	_, err = f.To(Filter(nil))
	require.Error(t, err)
}

func TestSelect(t *testing.T) {
	f := createTestFrame(t)
	res, err := f.To(Select(expr.Col("name"), expr.Col("score").Mul(expr.Lit(2)).Alias("double")))
	require.Nil(t, err)
	require.Equal(t, []string{"name", "double"}, res.Columns())
	require.Equal(t, []remoteframe.DType{remoteframe.Utf8, remoteframe.Float64}, res.DTypes())
	require.Equal(t, lazy.ProjectNodeKind, res.Node().Kind())

	all, err := f.To(Select(expr.All()))
	require.Nil(t, err)
	require.Equal(t, f.Columns(), all.Columns())

	_, err = f.To(Select(expr.Col("id"), expr.Col("id")))
	require.ErrorAs(t, err, &errors.DuplicateColumnError{})
	_, err = f.To(Select())
	require.Error(t, err)
}

func TestAggregateAll(t *testing.T) {
	f := createTestFrame(t)
	res, err := f.To(Drop("tags"), Mean())
	require.Nil(t, err)
	require.Equal(t, []string{"id", "name", "score"}, res.Columns())
	require.Equal(t, []remoteframe.DType{remoteframe.Float64, remoteframe.Utf8, remoteframe.Float64}, res.DTypes())

	res, err = f.To(Drop("tags", "name"), Sum())
	require.Nil(t, err)
	require.Equal(t, []remoteframe.DType{remoteframe.Int64, remoteframe.Float64}, res.DTypes())

	res, err = f.To(Max())
	require.Nil(t, err)
	require.Equal(t, f.DTypes(), res.DTypes())

	for _, op := range []lazy.Operation{Min(), Median(), Std(1), Var(0), Quantile(0.9)} {
		_, err = f.To(Drop("tags"), op)
		require.Nil(t, err)
	}
	_, err = f.To(Quantile(2))
	require.Error(t, err)
}

func TestWithColumns(t *testing.T) {
	f := createTestFrame(t)
	res, err := f.To(WithColumns(
		expr.Col("id").Cast(remoteframe.Float64),
		expr.Col("score").Gt(expr.Lit(1)).Alias("high"),
	))
	require.Nil(t, err)
	require.Equal(t, []string{"id", "name", "score", "tags", "high"}, res.Columns())
	require.Equal(t, remoteframe.Float64, res.DTypes()[0])
	require.Equal(t, remoteframe.Boolean, res.DTypes()[4])

	res, err = f.To(WithColumn(expr.Lit(int64(1)).Alias("one")))
	require.Nil(t, err)
	requirePlan(t, `{"HStack":{"input":`+testScan+`,"exprs":[{"Alias":[{"Literal":{"Int64":1}},"one"]}]}}`, res)

	_, err = f.To(WithColumns(expr.Col("id").Alias("x"), expr.Col("name").Alias("x")))
	require.ErrorAs(t, err, &errors.DuplicateColumnError{})
}

func TestDrop(t *testing.T) {
	f := createTestFrame(t)
	res, err := f.To(Drop("name", "tags"))
	require.Nil(t, err)
	require.Equal(t, []string{"id", "score"}, res.Columns())
	requirePlan(t, `{"MapFunction":{"input":`+testScan+`,"function":{"Drop":{"names":["name","tags"]}}}}`, res)

	_, err = f.To(Drop("nope", "name", "also_nope"))
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 2)

	_, err = f.To(Drop(f.Columns()...))
	require.Error(t, err)
}

func TestRename(t *testing.T) {
	f := createTestFrame(t)
	res, err := f.To(Rename(map[string]string{"id": "name", "name": "id"}))
	require.Nil(t, err)
	require.Equal(t, []string{"name", "id", "score", "tags"}, res.Columns())
	require.Equal(t, remoteframe.Int64, res.DTypes()[0])
	requirePlan(t, `{"MapFunction":{"input":`+testScan+`,"function":{"Rename":{"existing":["id","name"],"new":["name","id"]}}}}`, res)

	_, err = f.To(Rename(map[string]string{"id": "name"}))
	require.ErrorAs(t, err, &errors.DuplicateColumnError{})
	_, err = f.To(Rename(map[string]string{"nope": "x"}))
	require.ErrorAs(t, err, &errors.MissingColumnError{})
}

func TestSort(t *testing.T) {
	f := createTestFrame(t)
	res, err := f.To(Sort(SortOptions{By: expr.Cols("score", "id"), Descending: []bool{true}}))
	require.Nil(t, err)
	requirePlan(t, `{"Sort":{
		"input":`+testScan+`,
		"by_column":[{"Column":"score"},{"Column":"id"}],
		"args":{"reverse":[true,true],"nulls_last":false}
	}}`, res)

	_, err = f.To(Sort(SortOptions{By: expr.Cols("score", "id"), Descending: []bool{true, false, true}}))
	require.Error(t, err)
	_, err = f.To(Sort(SortOptions{}))
	require.Error(t, err)

	res, err = f.To(Reverse())
	require.Nil(t, err)
	requirePlan(t, `{"MapFunction":{"input":`+testScan+`,"function":{"Reverse":{}}}}`, res)
}

func TestSlices(t *testing.T) {
	f := createTestFrame(t)
	cases := map[string]lazy.Operation{
		`{"Slice":{"input":` + testScan + `,"offset":0,"len":5}}`:  Head(5),
		`{"Slice":{"input":` + testScan + `,"offset":0,"len":7}}`:  Limit(7),
		`{"Slice":{"input":` + testScan + `,"offset":0,"len":1}}`:  First(),
		`{"Slice":{"input":` + testScan + `,"offset":-3,"len":3}}`: Tail(3),
		`{"Slice":{"input":` + testScan + `,"offset":-1,"len":1}}`: Last(),
		`{"Slice":{"input":` + testScan + `,"offset":2,"len":4}}`:  Slice(2, 4),
	}
	for expected, op := range cases {
		res, err := f.To(op)
		require.Nil(t, err)
		require.Equal(t, f.Columns(), res.Columns())
		requirePlan(t, expected, res)
	}

	_, err := f.To(TakeEvery(0))
	require.Error(t, err)
	res, err := f.To(TakeEvery(2))
	require.Nil(t, err)
	requirePlan(t, `{"MapFunction":{"input":`+testScan+`,"function":{"TakeEvery":{"n":2}}}}`, res)
}

func TestShift(t *testing.T) {
	f := createTestFrame(t)
	res, err := f.To(Shift(-2))
	require.Nil(t, err)
	requirePlan(t, `{"MapFunction":{"input":`+testScan+`,"function":{"Shift":{"periods":-2}}}}`, res)

	res, err = f.To(Drop("name", "tags"), ShiftAndFill(1, expr.Lit(0.5)))
	require.Nil(t, err)
	require.Equal(t, []remoteframe.DType{remoteframe.Float64, remoteframe.Float64}, res.DTypes())
	_, err = f.To(ShiftAndFill(1, nil))
	require.Error(t, err)
}

func TestFill(t *testing.T) {
	f := createTestFrame(t)
	res, err := f.To(FillNull(expr.Lit(int64(0))))
	require.Nil(t, err)
	require.Equal(t, f.DTypes(), res.DTypes())

	res, err = f.To(FillNull(expr.Lit("?")))
	require.Nil(t, err)
	require.Equal(t, f.DTypes(), res.DTypes())

	res, err = f.To(FillNan(expr.Lit(0.0)))
	require.Nil(t, err)
	requirePlan(t, `{"MapFunction":{"input":`+testScan+`,"function":{"FillNan":{"fill_value":{"Literal":{"Float64":0}}}}}}`, res)
	_, err = f.To(FillNan(expr.Lit("x")))
	require.ErrorAs(t, err, &errors.IncompatibleTypeError{})

	res, err = f.To(Interpolate())
	require.Nil(t, err)
	require.Equal(t, f.DTypes(), res.DTypes())
}

func TestWithRowCount(t *testing.T) {
	f := createTestFrame(t)
	res, err := f.To(WithRowCount("", 0))
	require.Nil(t, err)
	require.Equal(t, []string{"row_nr", "id", "name", "score", "tags"}, res.Columns())
	require.Equal(t, remoteframe.UInt32, res.DTypes()[0])

	_, err = f.To(WithRowCount("id", 0))
	require.ErrorAs(t, err, &errors.DuplicateColumnError{})
}

func TestExplode(t *testing.T) {
	f := createTestFrame(t)
	res, err := f.To(Explode("tags", "name"))
	require.Nil(t, err)
	require.Equal(t, []remoteframe.DType{remoteframe.Int64, remoteframe.Utf8, remoteframe.Float64, remoteframe.Utf8}, res.DTypes())

	_, err = f.To(Explode("score"))
	require.ErrorAs(t, err, &errors.IncompatibleTypeError{})
	_, err = f.To(Explode())
	require.Error(t, err)
}

func TestUniqueAndDropNulls(t *testing.T) {
	f := createTestFrame(t)
	res, err := f.To(Unique(UniqueOptions{Subset: []string{"id"}, MaintainOrder: true}))
	require.Nil(t, err)
	requirePlan(t, `{"Distinct":{"input":`+testScan+`,"options":{"subset":["id"],"keep_strategy":"first","maintain_order":true}}}`, res)
	_, err = f.To(Unique(UniqueOptions{Keep: "middle"}))
	require.Error(t, err)
	_, err = f.To(Unique(UniqueOptions{Subset: []string{"nope"}}))
	require.ErrorAs(t, err, &errors.MissingColumnError{})

	res, err = f.To(DropNulls())
	require.Nil(t, err)
	requirePlan(t, `{"MapFunction":{"input":`+testScan+`,"function":{"DropNulls":{"subset":["id","name","score","tags"]}}}}`, res)
	_, err = f.To(DropNulls("nope"))
	require.ErrorAs(t, err, &errors.MissingColumnError{})
}

func TestMelt(t *testing.T) {
	f := createTestFrame(t)
	res, err := f.To(Melt(MeltOptions{IDVars: []string{"name"}, ValueVars: []string{"id", "score"}}))
	require.Nil(t, err)
	require.Equal(t, []string{"name", "variable", "value"}, res.Columns())
	require.Equal(t, []remoteframe.DType{remoteframe.Utf8, remoteframe.Utf8, remoteframe.Float64}, res.DTypes())

	res, err = f.To(Drop("tags"), Melt(MeltOptions{IDVars: []string{"id"}, ValueName: "v"}))
	require.Nil(t, err)
	require.Equal(t, []string{"id", "variable", "v"}, res.Columns())
	require.Equal(t, remoteframe.Utf8, res.DTypes()[2])
}

func TestCache(t *testing.T) {
	f := createTestFrame(t)
	res, err := f.To(Cache())
	require.Nil(t, err)
	require.Equal(t, lazy.CacheNodeKind, res.Node().Kind())
	requirePlan(t, `{"Cache":{"input":`+testScan+`}}`, res)
}
