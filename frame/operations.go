package frame

import (
	"github.com/go-sif/remoteframe/expr"
	"github.com/go-sif/remoteframe/operations/transform"
)

// The operations below are recorded in the local plan only. The history of the
// resulting frame is shared with this one until the local plan is snapshotted.

// Sort orders the rows of this frame
func (f *RemoteLazyFrame) Sort(opts transform.SortOptions) (*RemoteLazyFrame, error) {
	return f.To(transform.Sort(opts))
}

// Cache marks this frame for reuse
func (f *RemoteLazyFrame) Cache() (*RemoteLazyFrame, error) {
	return f.To(transform.Cache())
}

// Filter keeps the rows for which predicate is true
func (f *RemoteLazyFrame) Filter(predicate *expr.Expr) (*RemoteLazyFrame, error) {
	return f.To(transform.Filter(predicate))
}

// Select replaces the columns of this frame with the given expressions
func (f *RemoteLazyFrame) Select(exprs ...*expr.Expr) (*RemoteLazyFrame, error) {
	return f.To(transform.Select(exprs...))
}

// WithColumns adds or replaces columns
func (f *RemoteLazyFrame) WithColumns(exprs ...*expr.Expr) (*RemoteLazyFrame, error) {
	return f.To(transform.WithColumns(exprs...))
}

// WithColumn adds or replaces a column
func (f *RemoteLazyFrame) WithColumn(e *expr.Expr) (*RemoteLazyFrame, error) {
	return f.To(transform.WithColumn(e))
}

// Drop removes columns
func (f *RemoteLazyFrame) Drop(columns ...string) (*RemoteLazyFrame, error) {
	return f.To(transform.Drop(columns...))
}

// Rename renames columns, old name -> new name
func (f *RemoteLazyFrame) Rename(mapping map[string]string) (*RemoteLazyFrame, error) {
	return f.To(transform.Rename(mapping))
}

// Reverse reverses the order of the rows
func (f *RemoteLazyFrame) Reverse() (*RemoteLazyFrame, error) {
	return f.To(transform.Reverse())
}

// Shift moves values down by n rows
func (f *RemoteLazyFrame) Shift(n int64) (*RemoteLazyFrame, error) {
	return f.To(transform.Shift(n))
}

// ShiftAndFill moves values down by n rows, filling vacated rows with fill
func (f *RemoteLazyFrame) ShiftAndFill(n int64, fill *expr.Expr) (*RemoteLazyFrame, error) {
	return f.To(transform.ShiftAndFill(n, fill))
}

// Slice keeps length rows starting at offset
func (f *RemoteLazyFrame) Slice(offset int64, length uint64) (*RemoteLazyFrame, error) {
	return f.To(transform.Slice(offset, length))
}

// Limit keeps the first n rows
func (f *RemoteLazyFrame) Limit(n uint64) (*RemoteLazyFrame, error) {
	return f.To(transform.Limit(n))
}

// Head keeps the first n rows
func (f *RemoteLazyFrame) Head(n uint64) (*RemoteLazyFrame, error) {
	return f.To(transform.Head(n))
}

// Tail keeps the last n rows
func (f *RemoteLazyFrame) Tail(n uint64) (*RemoteLazyFrame, error) {
	return f.To(transform.Tail(n))
}

// Last keeps the last row
func (f *RemoteLazyFrame) Last() (*RemoteLazyFrame, error) {
	return f.To(transform.Last())
}

// First keeps the first row
func (f *RemoteLazyFrame) First() (*RemoteLazyFrame, error) {
	return f.To(transform.First())
}

// WithRowCount prepends a row number column
func (f *RemoteLazyFrame) WithRowCount(name string, offset uint32) (*RemoteLazyFrame, error) {
	return f.To(transform.WithRowCount(name, offset))
}

// TakeEvery keeps every n-th row
func (f *RemoteLazyFrame) TakeEvery(n int) (*RemoteLazyFrame, error) {
	return f.To(transform.TakeEvery(n))
}

// FillNull replaces nulls with value
func (f *RemoteLazyFrame) FillNull(value *expr.Expr) (*RemoteLazyFrame, error) {
	return f.To(transform.FillNull(value))
}

// FillNan replaces NaNs with value
func (f *RemoteLazyFrame) FillNan(value *expr.Expr) (*RemoteLazyFrame, error) {
	return f.To(transform.FillNan(value))
}

// Std reduces each column to its standard deviation
func (f *RemoteLazyFrame) Std(ddof int) (*RemoteLazyFrame, error) {
	return f.To(transform.Std(ddof))
}

// Var reduces each column to its variance
func (f *RemoteLazyFrame) Var(ddof int) (*RemoteLazyFrame, error) {
	return f.To(transform.Var(ddof))
}

// Max reduces each column to its maximum
func (f *RemoteLazyFrame) Max() (*RemoteLazyFrame, error) {
	return f.To(transform.Max())
}

// Min reduces each column to its minimum
func (f *RemoteLazyFrame) Min() (*RemoteLazyFrame, error) {
	return f.To(transform.Min())
}

// Sum reduces each column to its sum
func (f *RemoteLazyFrame) Sum() (*RemoteLazyFrame, error) {
	return f.To(transform.Sum())
}

// Mean reduces each column to its mean
func (f *RemoteLazyFrame) Mean() (*RemoteLazyFrame, error) {
	return f.To(transform.Mean())
}

// Median reduces each column to its median
func (f *RemoteLazyFrame) Median() (*RemoteLazyFrame, error) {
	return f.To(transform.Median())
}

// Quantile reduces each column to its q-th quantile
func (f *RemoteLazyFrame) Quantile(q float64) (*RemoteLazyFrame, error) {
	return f.To(transform.Quantile(q))
}

// Explode flattens list columns
func (f *RemoteLazyFrame) Explode(columns ...string) (*RemoteLazyFrame, error) {
	return f.To(transform.Explode(columns...))
}

// Unique removes duplicate rows
func (f *RemoteLazyFrame) Unique(opts transform.UniqueOptions) (*RemoteLazyFrame, error) {
	return f.To(transform.Unique(opts))
}

// DropNulls removes rows with nulls in any of the given columns
func (f *RemoteLazyFrame) DropNulls(subset ...string) (*RemoteLazyFrame, error) {
	return f.To(transform.DropNulls(subset...))
}

// Melt unpivots this frame from wide to long format
func (f *RemoteLazyFrame) Melt(opts transform.MeltOptions) (*RemoteLazyFrame, error) {
	return f.To(transform.Melt(opts))
}

// Interpolate fills nulls by linear interpolation
func (f *RemoteLazyFrame) Interpolate() (*RemoteLazyFrame, error) {
	return f.To(transform.Interpolate())
}
