package errors

import (
	"fmt"
	"strings"
)

// CrossSessionError occurs when a binary operation combines frames which belong to two different Sessions
type CrossSessionError struct{ Operation string }

// Error returns a textual representation of this CrossSessionError
func (e CrossSessionError) Error() string {
	return fmt.Sprintf("Cannot %s remote data frames from two different sessions", e.Operation)
}

// FunctionTraceError occurs when a user-defined function cannot be traced into a serializable form
type FunctionTraceError struct {
	Reason string
	Err    error
}

// Error returns a textual representation of this FunctionTraceError
func (e FunctionTraceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Unable to trace function: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("Unable to trace function: %s", e.Reason)
}

// Unwrap returns the underlying cause of this FunctionTraceError, if any
func (e FunctionTraceError) Unwrap() error {
	return e.Err
}

// UnimplementedSegmentError occurs when the abstract plan segment is serialized
type UnimplementedSegmentError struct{}

// Error returns a textual representation of this UnimplementedSegmentError
func (e UnimplementedSegmentError) Error() string {
	return "Plan segment does not implement serialization"
}

// MissingColumnError occurs when an operation refers to a column which does not exist in a Schema
type MissingColumnError struct{ Name string }

// Error returns a textual representation of this MissingColumnError
func (e MissingColumnError) Error() string {
	return fmt.Sprintf("Column %s does not exist", e.Name)
}

// DuplicateColumnError occurs when an operation would produce two columns with the same name
type DuplicateColumnError struct{ Name string }

// Error returns a textual representation of this DuplicateColumnError
func (e DuplicateColumnError) Error() string {
	return fmt.Sprintf("Column %s already exists", e.Name)
}

// SchemaMismatchError occurs when two Schemas which must line up do not
type SchemaMismatchError struct {
	Column   string
	Expected string
	Actual   string
}

// Error returns a textual representation of this SchemaMismatchError
func (e SchemaMismatchError) Error() string {
	return fmt.Sprintf("Column %s mismatch: expected %s, was %s", e.Column, e.Expected, e.Actual)
}

// IncompatibleTypeError occurs when an operation is applied to values of a type which does not support it
type IncompatibleTypeError struct {
	Operation string
	Types     []string
}

// Error returns a textual representation of this IncompatibleTypeError
func (e IncompatibleTypeError) Error() string {
	return fmt.Sprintf("Operation %s is not supported for type(s) %s", e.Operation, strings.Join(e.Types, ", "))
}
