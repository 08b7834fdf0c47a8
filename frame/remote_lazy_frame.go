package frame

import (
	"context"
	"fmt"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/delegate"
	"github.com/go-sif/remoteframe/errors"
	"github.com/go-sif/remoteframe/expr"
	iutil "github.com/go-sif/remoteframe/internal/util"
	"github.com/go-sif/remoteframe/lazy"
	"github.com/go-sif/remoteframe/operations/transform"
	"github.com/go-sif/remoteframe/plan"
	"github.com/go-sif/remoteframe/udf"
	multierror "github.com/hashicorp/go-multierror"
)

// RemoteLazyFrame is a handle to a dataframe which will be computed by a remote
// query service. Transformations produce new handles; none modify this one.
type RemoteLazyFrame struct {
	local *lazy.Frame
	meta  Metadata
}

var frameAdapter = delegate.Adapter[*RemoteLazyFrame, *lazy.Frame]{
	Get:   func(f *RemoteLazyFrame) *lazy.Frame { return f.local },
	Clone: func(f *RemoteLazyFrame) *RemoteLazyFrame { return f.Clone() },
	Replace: func(f *RemoteLazyFrame, local *lazy.Frame) *RemoteLazyFrame {
		f.local = local
		return f
	},
}

// toGroupBy wraps a grouped local plan, keeping the Metadata of the frame it came from
var toGroupBy = delegate.With(func(f *RemoteLazyFrame, g *lazy.GroupBy) (*RemoteLazyGroupBy, error) {
	return &RemoteLazyGroupBy{local: g, meta: f.meta}, nil
})

// Local returns the local plan of this frame
func (f *RemoteLazyFrame) Local() *lazy.Frame {
	return f.local
}

// Metadata returns the Session and recorded history of this frame
func (f *RemoteLazyFrame) Metadata() Metadata {
	return f.meta
}

// Columns returns the column names of this frame, in order
func (f *RemoteLazyFrame) Columns() []string {
	return delegate.Property(frameAdapter, f, (*lazy.Frame).Columns)
}

// DTypes returns the column types of this frame, in order
func (f *RemoteLazyFrame) DTypes() []remoteframe.DType {
	return delegate.Property(frameAdapter, f, (*lazy.Frame).DTypes)
}

// Schema returns a copy of the Schema of this frame
func (f *RemoteLazyFrame) Schema() remoteframe.Schema {
	return delegate.Property(frameAdapter, f, (*lazy.Frame).Schema)
}

// Width returns the number of columns of this frame
func (f *RemoteLazyFrame) Width() int {
	return delegate.Property(frameAdapter, f, (*lazy.Frame).Width)
}

// Clone returns a handle with an independent local plan and the same history
func (f *RemoteLazyFrame) Clone() *RemoteLazyFrame {
	return &RemoteLazyFrame{local: f.local.Clone(), meta: f.meta}
}

// String returns a short description of this frame
func (f *RemoteLazyFrame) String() string {
	return "RemoteLazyFrame"
}

// To applies functional operations to the local plan of this frame
func (f *RemoteLazyFrame) To(ops ...lazy.Operation) (*RemoteLazyFrame, error) {
	return delegate.Forward(frameAdapter, delegate.Replace[*RemoteLazyFrame, *lazy.Frame](), func(local *lazy.Frame) (*lazy.Frame, error) {
		return local.To(ops...)
	})(f)
}

// EffectivePlan returns the recorded history followed by a snapshot of the local plan
func (f *RemoteLazyFrame) EffectivePlan() plan.History {
	return f.meta.history.Append(plan.LocalPlan{Snapshot: f.local})
}

// CompositePlan serializes the effective plan of this frame
func (f *RemoteLazyFrame) CompositePlan() (string, error) {
	return f.EffectivePlan().Serialize()
}

// Collect submits the composite plan of this frame to the remote query service,
// returning a handle to the result
func (f *RemoteLazyFrame) Collect(ctx context.Context) (*FetchableLazyFrame, error) {
	return f.meta.session.submit(ctx, f.EffectivePlan())
}

// ApplyUDF applies fn to the given columns. fn receives one argument per column,
// in order, and is traced by udf.Trace. The local plan is snapshotted before the
// function is applied, and restarts from an empty frame with the same schema.
func (f *RemoteLazyFrame) ApplyUDF(columns []string, fn interface{}) (*RemoteLazyFrame, error) {
	s := f.local.Schema()
	argTypes := make([]remoteframe.DType, len(columns))
	for i, name := range columns {
		col, err := s.GetColumn(name)
		if err != nil {
			return nil, err
		}
		argTypes[i] = col.Type()
	}
	traced, err := udf.Trace(fn, argTypes)
	if err != nil {
		return nil, err
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	history := f.meta.history.Append(
		plan.LocalPlan{Snapshot: f.local},
		plan.UdfApply{Columns: cols, Function: traced},
	)
	return &RemoteLazyFrame{local: lazy.Empty(s), meta: f.meta.withHistory(history)}, nil
}

// Join combines the columns of this frame with those of other. other's history
// follows this frame's in the result.
func (f *RemoteLazyFrame) Join(other *RemoteLazyFrame, opts transform.JoinOptions) (*RemoteLazyFrame, error) {
	if other == nil {
		return nil, fmt.Errorf("Join requires another frame")
	}
	return f.merge(other, "join", transform.Join(other.local, opts))
}

// JoinAsof combines the columns of this frame with those of other, matching nearest keys.
// other's history follows this frame's in the result.
func (f *RemoteLazyFrame) JoinAsof(other *RemoteLazyFrame, opts transform.AsofOptions) (*RemoteLazyFrame, error) {
	if other == nil {
		return nil, fmt.Errorf("JoinAsof requires another frame")
	}
	return f.merge(other, "join_asof", transform.JoinAsof(other.local, opts))
}

func (f *RemoteLazyFrame) merge(other *RemoteLazyFrame, operation string, op lazy.Operation) (*RemoteLazyFrame, error) {
	if err := f.meta.checkSession(other.meta, operation); err != nil {
		return nil, err
	}
	local, err := f.local.To(op)
	if err != nil {
		return nil, err
	}
	history := f.meta.history.Concat(other.meta.history)
	return &RemoteLazyFrame{local: local, meta: f.meta.withHistory(history)}, nil
}

// VStack appends the rows of other to those of this frame. Both frames must have
// the same columns, in the same order, with the same types.
func (f *RemoteLazyFrame) VStack(other *RemoteLazyFrame) (*RemoteLazyFrame, error) {
	if other == nil {
		return nil, fmt.Errorf("VStack requires another frame")
	}
	if err := f.meta.checkSession(other.meta, "vstack"); err != nil {
		return nil, err
	}
	if err := checkStackable(f.local.Schema(), other.local.Schema()); err != nil {
		return nil, err
	}
	// the service pops the top frame first, so other's plan precedes ours
	history := other.meta.history.
		Append(plan.LocalPlan{Snapshot: other.local}).
		Concat(f.meta.history).
		Append(plan.LocalPlan{Snapshot: f.local}, plan.Stack{})
	return &RemoteLazyFrame{local: lazy.Empty(f.local.Schema()), meta: f.meta.withHistory(history)}, nil
}

func checkStackable(top, bottom remoteframe.Schema) error {
	var errs *multierror.Error
	if top.NumColumns() != bottom.NumColumns() {
		errs = multierror.Append(errs, fmt.Errorf("cannot stack a frame with %d columns onto one with %d", bottom.NumColumns(), top.NumColumns()))
	}
	names, types := top.ColumnNames(), top.ColumnTypes()
	for i, name := range names {
		col, err := bottom.GetColumn(name)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if col.Type() != types[i] {
			errs = multierror.Append(errs, errors.SchemaMismatchError{Column: name, Expected: types[i].String(), Actual: col.Type().String()})
		} else if col.Index() != i {
			errs = multierror.Append(errs, errors.SchemaMismatchError{Column: name, Expected: fmt.Sprintf("position %d", i), Actual: fmt.Sprintf("position %d", col.Index())})
		}
	}
	if errs != nil {
		errs.ErrorFormat = iutil.FormatMultiError
	}
	return errs.ErrorOrNil()
}

// GroupBy groups this frame by one or more key expressions
func (f *RemoteLazyFrame) GroupBy(by []*expr.Expr, maintainOrder bool) (*RemoteLazyGroupBy, error) {
	return delegate.Forward(frameAdapter, toGroupBy, func(local *lazy.Frame) (*lazy.GroupBy, error) {
		return local.GroupBy(by, maintainOrder)
	})(f)
}

// GroupByRolling groups this frame into rolling windows over an index column
func (f *RemoteLazyFrame) GroupByRolling(opts lazy.RollingOptions) (*RemoteLazyGroupBy, error) {
	return delegate.Forward(frameAdapter, toGroupBy, func(local *lazy.Frame) (*lazy.GroupBy, error) {
		return local.GroupByRolling(opts)
	})(f)
}

// GroupByDynamic groups this frame into windows of an index column
func (f *RemoteLazyFrame) GroupByDynamic(opts lazy.DynamicOptions) (*RemoteLazyGroupBy, error) {
	return delegate.Forward(frameAdapter, toGroupBy, func(local *lazy.Frame) (*lazy.GroupBy, error) {
		return local.GroupByDynamic(opts)
	})(f)
}
