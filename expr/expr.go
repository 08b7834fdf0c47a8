package expr

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sif/remoteframe"
	jsoniter "github.com/json-iterator/go"
)

// Kind describes the type of an expression node
type Kind uint8

const (
	// ColumnKind references an input column by name
	ColumnKind Kind = iota
	// LiteralKind is a constant value
	LiteralKind
	// BinaryKind combines two expressions with an operator
	BinaryKind
	// AggKind reduces an expression to a single value (per group)
	AggKind
	// AliasKind renames the output of an expression
	AliasKind
	// CastKind converts an expression to another data type
	CastKind
	// FunctionKind applies a named function to one or more expressions
	FunctionKind
	// WildcardKind stands for every column of the input
	WildcardKind
	// ArgKind is a positional argument of a traced user-defined function
	ArgKind
)

// Binary operators
const (
	OpPlus     = "Plus"
	OpMinus    = "Minus"
	OpMultiply = "Multiply"
	OpDivide   = "TrueDivide"
	OpModulus  = "Modulus"
	OpEq       = "Eq"
	OpNotEq    = "NotEq"
	OpLt       = "Lt"
	OpLtEq     = "LtEq"
	OpGt       = "Gt"
	OpGtEq     = "GtEq"
	OpAnd      = "And"
	OpOr       = "Or"
)

// Aggregations
const (
	AggSum      = "Sum"
	AggMean     = "Mean"
	AggMedian   = "Median"
	AggMin      = "Min"
	AggMax      = "Max"
	AggFirst    = "First"
	AggLast     = "Last"
	AggCount    = "Count"
	AggNUnique  = "NUnique"
	AggStd      = "Std"
	AggVar      = "Var"
	AggQuantile = "Quantile"
	AggList     = "List"
)

// Functions
const (
	FnIsNull    = "IsNull"
	FnIsNotNull = "IsNotNull"
	FnIsNan     = "IsNan"
	FnNot       = "Not"
	FnFillNull  = "FillNull"
	FnAbs       = "Abs"
)

// Expr is a node of an expression tree, describing a computation over the columns of a frame.
// Exprs are immutable: every method returns a new Expr.
type Expr struct {
	kind    Kind
	name    string            // column name or alias
	op      string            // operator, aggregation or function name
	literal string            // JSON encoding of a literal value
	dtype   remoteframe.DType // literal type, cast target or argument type
	param   float64           // quantile or ddof
	index   int               // argument position
	args    []*Expr
	err     error // deferred construction error, reported on inference
}

// Col references a column by name
func Col(name string) *Expr {
	return &Expr{kind: ColumnKind, name: name}
}

// Cols references several columns by name
func Cols(names ...string) []*Expr {
	res := make([]*Expr, len(names))
	for i, n := range names {
		res[i] = Col(n)
	}
	return res
}

// All stands for every column of the input frame
func All() *Expr {
	return &Expr{kind: WildcardKind}
}

// Arg is the i-th positional argument of a traced function, with a declared type
func Arg(i int, dtype remoteframe.DType) *Expr {
	return &Expr{kind: ArgKind, index: i, dtype: dtype}
}

// Lit is a constant value. Supported values are nil, bools, integers, floats, strings,
// time.Time (as a Datetime) and time.Duration.
func Lit(value interface{}) *Expr {
	e := &Expr{kind: LiteralKind}
	switch v := value.(type) {
	case nil:
		e.dtype, e.literal = remoteframe.Null, "null"
	case bool:
		e.dtype, e.literal = remoteframe.Boolean, strconv.FormatBool(v)
	case int:
		e.dtype, e.literal = remoteframe.Int64, strconv.FormatInt(int64(v), 10)
	case int8:
		e.dtype, e.literal = remoteframe.Int8, strconv.FormatInt(int64(v), 10)
	case int16:
		e.dtype, e.literal = remoteframe.Int16, strconv.FormatInt(int64(v), 10)
	case int32:
		e.dtype, e.literal = remoteframe.Int32, strconv.FormatInt(int64(v), 10)
	case int64:
		e.dtype, e.literal = remoteframe.Int64, strconv.FormatInt(v, 10)
	case uint:
		e.dtype, e.literal = remoteframe.UInt64, strconv.FormatUint(uint64(v), 10)
	case uint8:
		e.dtype, e.literal = remoteframe.UInt8, strconv.FormatUint(uint64(v), 10)
	case uint16:
		e.dtype, e.literal = remoteframe.UInt16, strconv.FormatUint(uint64(v), 10)
	case uint32:
		e.dtype, e.literal = remoteframe.UInt32, strconv.FormatUint(uint64(v), 10)
	case uint64:
		e.dtype, e.literal = remoteframe.UInt64, strconv.FormatUint(v, 10)
	case float32:
		e.dtype, e.literal = remoteframe.Float32, strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		e.dtype, e.literal = remoteframe.Float64, strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		e.dtype = remoteframe.Utf8
		e.literal, e.err = jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(v)
	case time.Time:
		e.dtype, e.literal = remoteframe.Datetime, strconv.FormatInt(v.UnixNano(), 10)
	case time.Duration:
		e.dtype, e.literal = remoteframe.Duration, strconv.FormatInt(int64(v), 10)
	default:
		e.err = fmt.Errorf("unsupported literal value %v of type %T", value, value)
	}
	return e
}

func (e *Expr) binary(op string, other *Expr) *Expr {
	return &Expr{kind: BinaryKind, op: op, args: []*Expr{e, other}}
}

func (e *Expr) agg(op string, param float64) *Expr {
	return &Expr{kind: AggKind, op: op, param: param, args: []*Expr{e}}
}

func (e *Expr) function(op string, others ...*Expr) *Expr {
	return &Expr{kind: FunctionKind, op: op, args: append([]*Expr{e}, others...)}
}

// Add computes e + other
func (e *Expr) Add(other *Expr) *Expr { return e.binary(OpPlus, other) }

// Sub computes e - other
func (e *Expr) Sub(other *Expr) *Expr { return e.binary(OpMinus, other) }

// Mul computes e * other
func (e *Expr) Mul(other *Expr) *Expr { return e.binary(OpMultiply, other) }

// Div computes e / other, always producing a floating point result
func (e *Expr) Div(other *Expr) *Expr { return e.binary(OpDivide, other) }

// Mod computes e % other
func (e *Expr) Mod(other *Expr) *Expr { return e.binary(OpModulus, other) }

// Eq computes e == other
func (e *Expr) Eq(other *Expr) *Expr { return e.binary(OpEq, other) }

// Neq computes e != other
func (e *Expr) Neq(other *Expr) *Expr { return e.binary(OpNotEq, other) }

// Lt computes e < other
func (e *Expr) Lt(other *Expr) *Expr { return e.binary(OpLt, other) }

// Lte computes e <= other
func (e *Expr) Lte(other *Expr) *Expr { return e.binary(OpLtEq, other) }

// Gt computes e > other
func (e *Expr) Gt(other *Expr) *Expr { return e.binary(OpGt, other) }

// Gte computes e >= other
func (e *Expr) Gte(other *Expr) *Expr { return e.binary(OpGtEq, other) }

// And computes e && other
func (e *Expr) And(other *Expr) *Expr { return e.binary(OpAnd, other) }

// Or computes e || other
func (e *Expr) Or(other *Expr) *Expr { return e.binary(OpOr, other) }

// Sum aggregates e by summing
func (e *Expr) Sum() *Expr { return e.agg(AggSum, 0) }

// Mean aggregates e by averaging
func (e *Expr) Mean() *Expr { return e.agg(AggMean, 0) }

// Median aggregates e to its median
func (e *Expr) Median() *Expr { return e.agg(AggMedian, 0) }

// Min aggregates e to its minimum
func (e *Expr) Min() *Expr { return e.agg(AggMin, 0) }

// Max aggregates e to its maximum
func (e *Expr) Max() *Expr { return e.agg(AggMax, 0) }

// First aggregates e to its first value
func (e *Expr) First() *Expr { return e.agg(AggFirst, 0) }

// Last aggregates e to its last value
func (e *Expr) Last() *Expr { return e.agg(AggLast, 0) }

// Count aggregates e to its number of values
func (e *Expr) Count() *Expr { return e.agg(AggCount, 0) }

// NUnique aggregates e to its number of distinct values
func (e *Expr) NUnique() *Expr { return e.agg(AggNUnique, 0) }

// Std aggregates e to its standard deviation with ddof delta degrees of freedom
func (e *Expr) Std(ddof int) *Expr { return e.agg(AggStd, float64(ddof)) }

// Var aggregates e to its variance with ddof delta degrees of freedom
func (e *Expr) Var(ddof int) *Expr { return e.agg(AggVar, float64(ddof)) }

// Quantile aggregates e to its q-th quantile
func (e *Expr) Quantile(q float64) *Expr { return e.agg(AggQuantile, q) }

// List aggregates e into a list
func (e *Expr) List() *Expr { return e.agg(AggList, 0) }

// Alias renames the output of e
func (e *Expr) Alias(name string) *Expr {
	return &Expr{kind: AliasKind, name: name, args: []*Expr{e}}
}

// Cast converts e to another data type
func (e *Expr) Cast(dtype remoteframe.DType) *Expr {
	return &Expr{kind: CastKind, dtype: dtype, args: []*Expr{e}}
}

// IsNull tests whether values of e are null
func (e *Expr) IsNull() *Expr { return e.function(FnIsNull) }

// IsNotNull tests whether values of e are not null
func (e *Expr) IsNotNull() *Expr { return e.function(FnIsNotNull) }

// IsNan tests whether floating point values of e are NaN
func (e *Expr) IsNan() *Expr { return e.function(FnIsNan) }

// Not negates a boolean expression
func (e *Expr) Not() *Expr { return e.function(FnNot) }

// Abs computes the absolute value of a numeric expression
func (e *Expr) Abs() *Expr { return e.function(FnAbs) }

// FillNull replaces null values of e with value
func (e *Expr) FillNull(value *Expr) *Expr { return e.function(FnFillNull, value) }

// Kind returns the kind of this expression node
func (e *Expr) Kind() Kind { return e.kind }

// Name returns the column name or alias carried by this node, if any
func (e *Expr) Name() string { return e.name }

// Op returns the operator, aggregation or function name carried by this node, if any
func (e *Expr) Op() string { return e.op }

// DType returns the literal type, cast target or argument type carried by this node, if any
func (e *Expr) DType() remoteframe.DType { return e.dtype }

// ArgIndex returns the position of an argument placeholder
func (e *Expr) ArgIndex() int { return e.index }

// Args returns the child expressions of this node
func (e *Expr) Args() []*Expr {
	res := make([]*Expr, len(e.args))
	copy(res, e.args)
	return res
}

// Walk visits e and its descendants depth-first, stopping descent wherever fn returns false
func (e *Expr) Walk(fn func(*Expr) bool) {
	if !fn(e) {
		return
	}
	for _, a := range e.args {
		a.Walk(fn)
	}
}

// String returns a human-readable representation of this expression
func (e *Expr) String() string {
	switch e.kind {
	case ColumnKind:
		return fmt.Sprintf("col(%q)", e.name)
	case LiteralKind:
		if e.err != nil {
			return "lit(<invalid>)"
		}
		return fmt.Sprintf("lit(%s)", e.literal)
	case BinaryKind:
		return fmt.Sprintf("[(%s) %s (%s)]", e.args[0], e.op, e.args[1])
	case AggKind:
		switch e.op {
		case AggQuantile, AggStd, AggVar:
			return fmt.Sprintf("%s.%s(%v)", e.args[0], strings.ToLower(e.op), e.param)
		}
		return fmt.Sprintf("%s.%s()", e.args[0], strings.ToLower(e.op))
	case AliasKind:
		return fmt.Sprintf("%s.alias(%q)", e.args[0], e.name)
	case CastKind:
		return fmt.Sprintf("%s.cast(%s)", e.args[0], e.dtype)
	case FunctionKind:
		others := make([]string, 0, len(e.args)-1)
		for _, a := range e.args[1:] {
			others = append(others, a.String())
		}
		return fmt.Sprintf("%s.%s(%s)", e.args[0], strings.ToLower(e.op), strings.Join(others, ", "))
	case WildcardKind:
		return "*"
	case ArgKind:
		return fmt.Sprintf("arg(%d: %s)", e.index, e.dtype)
	}
	return "<unknown>"
}
