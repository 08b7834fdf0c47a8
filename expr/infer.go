package expr

import (
	"fmt"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/errors"
)

// Field computes the output name and data type of an expression evaluated against a Schema.
// s may be nil for expressions which reference no columns (e.g. traced functions).
func (e *Expr) Field(s remoteframe.Schema) (name string, dtype remoteframe.DType, err error) {
	if e.err != nil {
		return "", "", e.err
	}
	switch e.kind {
	case ColumnKind:
		if s == nil {
			return "", "", errors.MissingColumnError{Name: e.name}
		}
		col, err := s.GetColumn(e.name)
		if err != nil {
			return "", "", err
		}
		return e.name, col.Type(), nil
	case LiteralKind:
		return "literal", e.dtype, nil
	case ArgKind:
		return fmt.Sprintf("arg_%d", e.index), e.dtype, nil
	case AliasKind:
		_, t, err := e.args[0].Field(s)
		return e.name, t, err
	case CastKind:
		name, _, err := e.args[0].Field(s)
		return name, e.dtype, err
	case BinaryKind:
		return e.binaryField(s)
	case AggKind:
		return e.aggField(s)
	case FunctionKind:
		return e.functionField(s)
	case WildcardKind:
		return "", "", fmt.Errorf("wildcard expression must be expanded against a schema before use")
	}
	return "", "", fmt.Errorf("unknown expression kind %d", e.kind)
}

func incompatible(op string, types ...remoteframe.DType) error {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return errors.IncompatibleTypeError{Operation: op, Types: names}
}

func (e *Expr) binaryField(s remoteframe.Schema) (string, remoteframe.DType, error) {
	name, lt, err := e.args[0].Field(s)
	if err != nil {
		return "", "", err
	}
	_, rt, err := e.args[1].Field(s)
	if err != nil {
		return "", "", err
	}
	switch e.op {
	case OpEq, OpNotEq, OpLt, OpLtEq, OpGt, OpGtEq:
		if _, err := remoteframe.Supertype(lt, rt); err != nil && !(lt.IsTemporal() && rt == remoteframe.Utf8) {
			return "", "", incompatible(e.op, lt, rt)
		}
		return name, remoteframe.Boolean, nil
	case OpAnd, OpOr:
		if lt == remoteframe.Boolean && (rt == remoteframe.Boolean || rt == remoteframe.Null) {
			return name, remoteframe.Boolean, nil
		}
		if lt.IsInteger() && rt.IsInteger() {
			t, err := remoteframe.Supertype(lt, rt)
			return name, t, err
		}
		return "", "", incompatible(e.op, lt, rt)
	case OpPlus, OpMinus:
		if lt.IsTemporal() || rt.IsTemporal() {
			if e.op == OpMinus && lt == rt && lt != remoteframe.Duration {
				return name, remoteframe.Duration, nil
			}
			if lt.IsTemporal() && (rt == remoteframe.Duration || rt.IsInteger()) {
				return name, lt, nil
			}
			return "", "", incompatible(e.op, lt, rt)
		}
		if e.op == OpPlus && lt == remoteframe.Utf8 && rt == remoteframe.Utf8 {
			return name, remoteframe.Utf8, nil
		}
		fallthrough
	case OpMultiply, OpModulus:
		if !(lt.IsNumeric() || lt == remoteframe.Boolean || lt == remoteframe.Null) ||
			!(rt.IsNumeric() || rt == remoteframe.Boolean || rt == remoteframe.Null) {
			return "", "", incompatible(e.op, lt, rt)
		}
		t, err := remoteframe.Supertype(lt, rt)
		return name, t, err
	case OpDivide:
		if !(lt.IsNumeric() || lt == remoteframe.Null) || !(rt.IsNumeric() || rt == remoteframe.Null) {
			return "", "", incompatible(e.op, lt, rt)
		}
		if lt == remoteframe.Float32 && (rt == remoteframe.Float32 || rt == remoteframe.Null) {
			return name, remoteframe.Float32, nil
		}
		return name, remoteframe.Float64, nil
	}
	return "", "", fmt.Errorf("unknown binary operator %s", e.op)
}

func (e *Expr) aggField(s remoteframe.Schema) (string, remoteframe.DType, error) {
	name, t, err := e.args[0].Field(s)
	if err != nil {
		return "", "", err
	}
	switch e.op {
	case AggCount, AggNUnique:
		return name, remoteframe.UInt32, nil
	case AggMin, AggMax, AggFirst, AggLast:
		return name, t, nil
	case AggList:
		return name, remoteframe.ListOf(t), nil
	case AggSum:
		switch t {
		case remoteframe.Boolean:
			return name, remoteframe.UInt32, nil
		case remoteframe.Int8, remoteframe.Int16, remoteframe.UInt8, remoteframe.UInt16:
			return name, remoteframe.Int64, nil
		}
		// non-numeric columns sum to nulls of the same type
		return name, t, nil
	case AggMean, AggMedian, AggStd, AggVar, AggQuantile:
		if e.op == AggQuantile && (e.param < 0 || e.param > 1) {
			return "", "", fmt.Errorf("quantile must be between 0 and 1, was %v", e.param)
		}
		switch {
		case t == remoteframe.Float32:
			return name, remoteframe.Float32, nil
		case t.IsNumeric() || t == remoteframe.Boolean:
			return name, remoteframe.Float64, nil
		}
		// non-numeric columns aggregate to nulls of the same type
		return name, t, nil
	}
	return "", "", fmt.Errorf("unknown aggregation %s", e.op)
}

func (e *Expr) functionField(s remoteframe.Schema) (string, remoteframe.DType, error) {
	name, t, err := e.args[0].Field(s)
	if err != nil {
		return "", "", err
	}
	switch e.op {
	case FnIsNull, FnIsNotNull:
		return name, remoteframe.Boolean, nil
	case FnIsNan:
		if !t.IsFloat() {
			return "", "", incompatible(e.op, t)
		}
		return name, remoteframe.Boolean, nil
	case FnNot:
		if t != remoteframe.Boolean {
			return "", "", incompatible(e.op, t)
		}
		return name, remoteframe.Boolean, nil
	case FnAbs:
		if !t.IsNumeric() {
			return "", "", incompatible(e.op, t)
		}
		return name, t, nil
	case FnFillNull:
		_, vt, err := e.args[1].Field(s)
		if err != nil {
			return "", "", err
		}
		st, err := remoteframe.Supertype(t, vt)
		if err != nil {
			return "", "", incompatible(e.op, t, vt)
		}
		return name, st, nil
	}
	return "", "", fmt.Errorf("unknown function %s", e.op)
}

// Columns returns the names of the input columns referenced by this expression, in order of first use
func (e *Expr) Columns() []string {
	seen := map[string]bool{}
	var res []string
	e.Walk(func(n *Expr) bool {
		if n.kind == ColumnKind && !seen[n.name] {
			seen[n.name] = true
			res = append(res, n.name)
		}
		return true
	})
	return res
}

// IsAggregation returns true iff this expression reduces its input with an aggregation
func (e *Expr) IsAggregation() bool {
	found := false
	e.Walk(func(n *Expr) bool {
		if n.kind == AggKind {
			found = true
		}
		return !found
	})
	return found
}

// HasWildcard returns true iff this expression contains All()
func (e *Expr) HasWildcard() bool {
	found := false
	e.Walk(func(n *Expr) bool {
		if n.kind == WildcardKind {
			found = true
		}
		return !found
	})
	return found
}

// replace returns a copy of e in which every wildcard is replaced by with
func (e *Expr) replace(with *Expr) *Expr {
	if e.kind == WildcardKind {
		return with
	}
	if len(e.args) == 0 {
		return e
	}
	clone := *e
	clone.args = make([]*Expr, len(e.args))
	for i, a := range e.args {
		clone.args[i] = a.replace(with)
	}
	return &clone
}

// Expand replaces each expression containing All() with one copy per column of s,
// skipping the columns named in exclude
func Expand(exprs []*Expr, s remoteframe.Schema, exclude ...string) []*Expr {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}
	res := make([]*Expr, 0, len(exprs))
	for _, e := range exprs {
		if !e.HasWildcard() {
			res = append(res, e)
			continue
		}
		for _, name := range s.ColumnNames() {
			if !skip[name] {
				res = append(res, e.replace(Col(name)))
			}
		}
	}
	return res
}
