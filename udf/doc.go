// Package udf converts ordinary Go functions over expressions into a
// serializable form which a remote query service can apply to columns.
//
// A traceable function accepts one *expr.Expr per input column and returns
// an *expr.Expr (optionally alongside an error). Trace calls it once with
// typed placeholder arguments, recording the expression it builds.
package udf
