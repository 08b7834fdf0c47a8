package udf

import (
	"fmt"
	"reflect"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/errors"
	"github.com/go-sif/remoteframe/expr"
	iutil "github.com/go-sif/remoteframe/internal/util"
)

var (
	exprType  = reflect.TypeOf((*expr.Expr)(nil))
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// checkSignature verifies that fn has the form func(*expr.Expr, ...) *expr.Expr
// or func(*expr.Expr, ...) (*expr.Expr, error), with one parameter per argument type
func checkSignature(fn reflect.Value, numArgs int) error {
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return errors.FunctionTraceError{Reason: fmt.Sprintf("expected a function, got %T", fn.Interface())}
	}
	ft := fn.Type()
	if ft.IsVariadic() {
		return errors.FunctionTraceError{Reason: "variadic functions cannot be traced"}
	}
	if ft.NumIn() != numArgs {
		return errors.FunctionTraceError{Reason: fmt.Sprintf("function accepts %d arguments, but %d column types were declared", ft.NumIn(), numArgs)}
	}
	for i := 0; i < ft.NumIn(); i++ {
		if ft.In(i) != exprType {
			return errors.FunctionTraceError{Reason: fmt.Sprintf("argument %d has type %s, expected *expr.Expr", i, ft.In(i))}
		}
	}
	switch {
	case ft.NumOut() == 1 && ft.Out(0) == exprType:
	case ft.NumOut() == 2 && ft.Out(0) == exprType && ft.Out(1) == errorType:
	default:
		return errors.FunctionTraceError{Reason: fmt.Sprintf("function of type %s must return *expr.Expr or (*expr.Expr, error)", ft)}
	}
	return nil
}

// Trace converts fn into a Function by calling it once with one typed placeholder
// per entry of argTypes. fn must build its result only from its arguments and
// literals; referencing columns by name is an error, as is panicking.
func Trace(fn interface{}, argTypes []remoteframe.DType) (*Function, error) {
	if fn == nil {
		return nil, errors.FunctionTraceError{Reason: "function is nil"}
	}
	fv := reflect.ValueOf(fn)
	if err := checkSignature(fv, len(argTypes)); err != nil {
		return nil, err
	}
	args := make([]reflect.Value, len(argTypes))
	for i, t := range argTypes {
		args[i] = reflect.ValueOf(expr.Arg(i, t))
	}
	var body *expr.Expr
	err := iutil.SafeCall("Trace", func() error {
		out := fv.Call(args)
		if len(out) == 2 && !out[1].IsNil() {
			return out[1].Interface().(error)
		}
		body = out[0].Interface().(*expr.Expr)
		return nil
	})
	if err != nil {
		return nil, errors.FunctionTraceError{Reason: "function failed while tracing", Err: err}
	}
	if body == nil {
		return nil, errors.FunctionTraceError{Reason: "function returned a nil expression"}
	}
	if cols := body.Columns(); len(cols) > 0 {
		return nil, errors.FunctionTraceError{Reason: fmt.Sprintf("function refers to columns %v by name rather than through its arguments", cols)}
	}
	if body.HasWildcard() {
		return nil, errors.FunctionTraceError{Reason: "function refers to every column rather than to its arguments"}
	}
	_, outType, err := body.Field(nil)
	if err != nil {
		return nil, errors.FunctionTraceError{Reason: "function result is not well typed", Err: err}
	}
	declared := make([]remoteframe.DType, len(argTypes))
	copy(declared, argTypes)
	return &Function{argTypes: declared, body: body, outType: outType}, nil
}
