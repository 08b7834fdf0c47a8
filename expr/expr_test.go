package expr

import (
	"testing"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/errors"
	"github.com/go-sif/remoteframe/schema"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) remoteframe.Schema {
	s, err := schema.Of(
		[]string{"a", "b", "name", "ok", "f32"},
		[]remoteframe.DType{remoteframe.Int64, remoteframe.Float64, remoteframe.Utf8, remoteframe.Boolean, remoteframe.Float32},
	)
	require.Nil(t, err)
	return s
}

func TestFieldInference(t *testing.T) {
	s := testSchema(t)
	cases := []struct {
		e     *Expr
		name  string
		dtype remoteframe.DType
	}{
		{Col("a"), "a", remoteframe.Int64},
		{Col("a").Add(Col("b")), "a", remoteframe.Float64},
		{Col("a").Div(Lit(2)), "a", remoteframe.Float64},
		{Col("f32").Div(Col("f32")), "f32", remoteframe.Float32},
		{Col("a").Gt(Lit(3)), "a", remoteframe.Boolean},
		{Col("ok").And(Col("a").Lt(Lit(1))), "ok", remoteframe.Boolean},
		{Col("a").Sum(), "a", remoteframe.Int64},
		{Col("ok").Sum(), "ok", remoteframe.UInt32},
		{Col("a").Mean(), "a", remoteframe.Float64},
		{Col("f32").Std(1), "f32", remoteframe.Float32},
		{Col("name").Count(), "name", remoteframe.UInt32},
		{Col("name").List(), "name", remoteframe.ListOf(remoteframe.Utf8)},
		{Col("a").Alias("renamed"), "renamed", remoteframe.Int64},
		{Col("a").Cast(remoteframe.Utf8), "a", remoteframe.Utf8},
		{Col("name").IsNull(), "name", remoteframe.Boolean},
		{Col("a").FillNull(Lit(1.5)), "a", remoteframe.Float64},
		{Col("name").Add(Lit("x")), "name", remoteframe.Utf8},
		{Lit("x"), "literal", remoteframe.Utf8},
		{Arg(1, remoteframe.Int32).Mul(Lit(int32(2))), "arg_1", remoteframe.Int32},
	}
	for _, c := range cases {
		name, dtype, err := c.e.Field(s)
		require.NoError(t, err, c.e.String())
		require.Equal(t, c.name, name, c.e.String())
		require.Equal(t, c.dtype, dtype, c.e.String())
	}
}

func TestFieldErrors(t *testing.T) {
	s := testSchema(t)

	_, _, err := Col("missing").Field(s)
	var missing errors.MissingColumnError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "missing", missing.Name)

	_, _, err = Col("name").Mul(Lit(2)).Field(s)
	var incompatible errors.IncompatibleTypeError
	require.ErrorAs(t, err, &incompatible)

	_, _, err = Col("a").Not().Field(s)
	require.ErrorAs(t, err, &incompatible)

	_, _, err = Lit(struct{}{}).Field(s)
	require.Error(t, err)

	_, _, err = Col("a").Quantile(1.5).Field(s)
	require.Error(t, err)

	_, _, err = All().Field(s)
	require.Error(t, err)
}

func TestColumnsAndAggregation(t *testing.T) {
	e := Col("a").Add(Col("b")).Mul(Col("a")).Sum()
	require.Equal(t, []string{"a", "b"}, e.Columns())
	require.True(t, e.IsAggregation())
	require.False(t, Col("a").Add(Lit(1)).IsAggregation())
}

func TestExpandWildcard(t *testing.T) {
	s := testSchema(t)
	expanded := Expand([]*Expr{All().Max(), Col("a").Alias("x")}, s, "name")
	require.Len(t, expanded, 5)
	require.Equal(t, `col("a").max()`, expanded[0].String())
	require.Equal(t, `col("ok").max()`, expanded[2].String())
	require.Equal(t, `col("a").alias("x")`, expanded[4].String())
}

func TestWriteJSON(t *testing.T) {
	cases := []struct {
		expected string
		e        *Expr
	}{
		{`{"Column":"a"}`, Col("a")},
		{`{"Literal":{"Int64":3}}`, Lit(3)},
		{`{"Literal":{"Utf8":"a\"b"}}`, Lit(`a"b`)},
		{`{"Literal":"Null"}`, Lit(nil)},
		{`{"BinaryExpr":{"left":{"Column":"a"},"op":"Gt","right":{"Literal":{"Float64":1.5}}}}`, Col("a").Gt(Lit(1.5))},
		{`{"Agg":{"Sum":{"Column":"a"}}}`, Col("a").Sum()},
		{`{"Agg":{"Quantile":{"expr":{"Column":"a"},"quantile":0.25}}}`, Col("a").Quantile(0.25)},
		{`{"Alias":[{"Column":"a"},"b"]}`, Col("a").Alias("b")},
		{`{"Cast":{"expr":{"Column":"a"},"data_type":"Float32"}}`, Col("a").Cast(remoteframe.Float32)},
		{`{"Function":{"input":[{"Column":"a"},{"Literal":{"Int64":0}}],"function":"FillNull"}}`, Col("a").FillNull(Lit(0))},
		{`"Wildcard"`, All()},
	}
	for _, c := range cases {
		actual, err := c.e.MarshalJSON()
		require.NoError(t, err)
		require.JSONEq(t, c.expected, string(actual))
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	original := Arg(0, remoteframe.Float64).Mul(Lit(2.0)).Add(Arg(1, remoteframe.Int64).Cast(remoteframe.Float64)).Alias("out")
	data, err := original.MarshalBinary()
	require.NoError(t, err)

	decoded := &Expr{}
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.Equal(t, original.String(), decoded.String())

	name, dtype, err := decoded.Field(nil)
	require.NoError(t, err)
	require.Equal(t, "out", name)
	require.Equal(t, remoteframe.Float64, dtype)
}

func TestBinaryRejectsInvalidLiteral(t *testing.T) {
	_, err := Lit(make(chan int)).MarshalBinary()
	require.Error(t, err)
}
