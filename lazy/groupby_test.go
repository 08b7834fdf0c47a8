package lazy

import (
	"testing"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/errors"
	"github.com/go-sif/remoteframe/expr"
	"github.com/go-sif/remoteframe/schema"
	"github.com/stretchr/testify/require"
)

func createEventSchema(t *testing.T) remoteframe.Schema {
	s, err := schema.Of(
		[]string{"ts", "user", "amount", "ok"},
		[]remoteframe.DType{remoteframe.Datetime, remoteframe.Utf8, remoteframe.Int32, remoteframe.Boolean},
	)
	require.Nil(t, err)
	return s
}

func TestGroupByAgg(t *testing.T) {
	f := Empty(createEventSchema(t))
	g, err := f.GroupBy(expr.Cols("user"), true)
	require.Nil(t, err)
	require.Equal(t, f, g.Input())

	res, err := g.Agg(
		expr.Col("amount").Sum().Alias("total"),
		expr.Col("ok").Count(),
		expr.Col("amount"),
	)
	require.Nil(t, err)
	require.Equal(t, []string{"user", "total", "ok", "amount"}, res.Columns())
	require.Equal(t, []remoteframe.DType{
		remoteframe.Utf8,
		remoteframe.Int32,
		remoteframe.UInt32,
		remoteframe.ListOf(remoteframe.Int32),
	}, res.DTypes())
	require.Equal(t, AggregateNodeKind, res.Node().Kind())
	require.Equal(t, 2, res.Depth())

	plan, err := res.WriteJSON()
	require.Nil(t, err)
	require.JSONEq(t, `{"Aggregate":{
		"input":{"DataFrameScan":{"schema":{"inner":{"ts":"Datetime","user":"Utf8","amount":"Int32","ok":"Boolean"}}}},
		"keys":[{"Column":"user"}],
		"aggs":[
			{"Alias":[{"Agg":{"Sum":{"Column":"amount"}}},"total"]},
			{"Agg":{"Count":{"Column":"ok"}}},
			{"Column":"amount"}
		],
		"options":{"maintain_order":true}
	}}`, string(plan))
}

func TestGroupByAggWildcard(t *testing.T) {
	g, err := Empty(createEventSchema(t)).GroupBy(expr.Cols("user"), false)
	require.Nil(t, err)
	res, err := g.Agg(expr.All().Max())
	require.Nil(t, err)
	require.Equal(t, []string{"user", "ts", "amount", "ok"}, res.Columns())
}

func TestGroupByErrors(t *testing.T) {
	f := Empty(createEventSchema(t))
	_, err := f.GroupBy(nil, false)
	require.Error(t, err)

	_, err = f.GroupBy(expr.Cols("nope"), false)
	require.ErrorAs(t, err, &errors.MissingColumnError{})

	g, err := f.GroupBy(expr.Cols("user"), false)
	require.Nil(t, err)
	_, err = g.Agg(expr.Col("user").First())
	require.ErrorAs(t, err, &errors.DuplicateColumnError{})

	_, err = g.Head(-1)
	require.Error(t, err)
}

func TestGroupByHeadTail(t *testing.T) {
	g, err := Empty(createEventSchema(t)).GroupBy(expr.Cols("ok"), false)
	require.Nil(t, err)
	head, err := g.Head(2)
	require.Nil(t, err)
	require.Equal(t, []string{"ok", "ts", "user", "amount"}, head.Columns())

	tail, err := g.Tail(3)
	require.Nil(t, err)
	plan, err := tail.WriteJSON()
	require.Nil(t, err)
	require.Contains(t, string(plan), `"apply":{"Tail":3}`)
}

func TestGroupByRolling(t *testing.T) {
	f := Empty(createEventSchema(t))
	_, err := f.GroupByRolling(RollingOptions{IndexColumn: "user", Period: "2d"})
	require.ErrorAs(t, err, &errors.IncompatibleTypeError{})
	_, err = f.GroupByRolling(RollingOptions{IndexColumn: "ts"})
	require.Error(t, err)

	g, err := f.GroupByRolling(RollingOptions{IndexColumn: "ts", Period: "2d", By: expr.Cols("user")})
	require.Nil(t, err)
	res, err := g.Agg(expr.Col("amount").Mean())
	require.Nil(t, err)
	require.Equal(t, []string{"user", "ts", "amount"}, res.Columns())
	require.Equal(t, remoteframe.Float64, res.DTypes()[2])

	plan, err := res.WriteJSON()
	require.Nil(t, err)
	require.Contains(t, string(plan), `"rolling":{"index_column":"ts","period":"2d","offset":"-2d","closed_window":"right"}`)
}

func TestGroupByDynamic(t *testing.T) {
	f := Empty(createEventSchema(t))
	g, err := f.GroupByDynamic(DynamicOptions{IndexColumn: "ts", Every: "1h", IncludeBoundaries: true})
	require.Nil(t, err)
	res, err := g.Agg(expr.Col("amount").Max())
	require.Nil(t, err)
	require.Equal(t, []string{"_lower_boundary", "_upper_boundary", "ts", "amount"}, res.Columns())
	require.Equal(t, remoteframe.Datetime, res.DTypes()[0])

	clone := g.Clone()
	require.Equal(t, g.Keys(), clone.Keys())
	require.NotSame(t, g.Input(), clone.Input())
}
