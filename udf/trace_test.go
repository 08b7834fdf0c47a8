package udf

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/errors"
	"github.com/go-sif/remoteframe/expr"
	"github.com/stretchr/testify/require"
)

func weightedSum(a *expr.Expr, b *expr.Expr) *expr.Expr {
	return a.Mul(expr.Lit(2)).Add(b).Alias("weighted")
}

func TestTrace(t *testing.T) {
	fn, err := Trace(weightedSum, []remoteframe.DType{remoteframe.Int64, remoteframe.Float32})
	require.Nil(t, err)
	require.Equal(t, []remoteframe.DType{remoteframe.Int64, remoteframe.Float32}, fn.ArgTypes())
	require.Equal(t, remoteframe.Float64, fn.ReturnType())
	require.Equal(t, expr.AliasKind, fn.Body().Kind())
	require.Equal(t, "weighted", fn.Body().Name())
}

func TestTraceWithError(t *testing.T) {
	fn, err := Trace(func(a *expr.Expr) (*expr.Expr, error) {
		return a.IsNull(), nil
	}, []remoteframe.DType{remoteframe.Utf8})
	require.Nil(t, err)
	require.Equal(t, remoteframe.Boolean, fn.ReturnType())

	_, err = Trace(func(a *expr.Expr) (*expr.Expr, error) {
		return nil, fmt.Errorf("nope")
	}, []remoteframe.DType{remoteframe.Utf8})
	var traceErr errors.FunctionTraceError
	require.ErrorAs(t, err, &traceErr)
	require.Contains(t, traceErr.Err.Error(), "nope")
}

func TestTraceFailures(t *testing.T) {
	one := []remoteframe.DType{remoteframe.Int64}
	failures := map[string]interface{}{
		"nil":           nil,
		"not a func":    42,
		"arity":         weightedSum,
		"variadic":      func(args ...*expr.Expr) *expr.Expr { return args[0] },
		"argument type": func(a int) *expr.Expr { return expr.Lit(a) },
		"return type":   func(a *expr.Expr) int { return 0 },
		"panics":        func(a *expr.Expr) *expr.Expr { panic("untraceable") },
		"nil result":    func(a *expr.Expr) *expr.Expr { return nil },
		"column ref":    func(a *expr.Expr) *expr.Expr { return a.Add(expr.Col("other")) },
		"wildcard":      func(a *expr.Expr) *expr.Expr { return expr.All() },
		"ill typed":     func(a *expr.Expr) *expr.Expr { return a.Not() },
		"bad literal":   func(a *expr.Expr) *expr.Expr { return a.Add(expr.Lit(struct{}{})) },
	}
	for name, fn := range failures {
		_, err := Trace(fn, one)
		require.ErrorAs(t, err, &errors.FunctionTraceError{}, name)
	}
}

func TestFunctionBytes(t *testing.T) {
	fn, err := Trace(weightedSum, []remoteframe.DType{remoteframe.Int64, remoteframe.Float32})
	require.Nil(t, err)
	b, err := fn.Bytes()
	require.Nil(t, err)
	require.NotEmpty(t, b)

	decoded, err := Decode(b)
	require.Nil(t, err)
	require.Equal(t, fn.ArgTypes(), decoded.ArgTypes())
	require.Equal(t, fn.ReturnType(), decoded.ReturnType())
	require.Equal(t, fn.Body().String(), decoded.Body().String())

	encoded, err := fn.Base64()
	require.Nil(t, err)
	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.Nil(t, err)
	require.Equal(t, b, raw)

	_, err = Decode([]byte("definitely not lz4"))
	require.Error(t, err)
}

func TestDecodeRejectsArgumentIndices(t *testing.T) {
	cases := map[string]*expr.Expr{
		"negative":     expr.Arg(-1, remoteframe.Int64),
		"out of range": expr.Arg(1<<40, remoteframe.Int64).Add(expr.Lit(1)),
	}
	for name, body := range cases {
		b, err := (&Function{body: body}).Bytes()
		require.Nil(t, err, name)
		require.NotPanics(t, func() {
			_, err = Decode(b)
		}, name)
		require.ErrorContains(t, err, "out of range", name)
	}
}
