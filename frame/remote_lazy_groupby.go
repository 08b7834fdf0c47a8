package frame

import (
	"github.com/go-sif/remoteframe/delegate"
	"github.com/go-sif/remoteframe/expr"
	"github.com/go-sif/remoteframe/lazy"
)

// RemoteLazyGroupBy is a grouped RemoteLazyFrame. It cannot be collected; one of
// its aggregations must produce a RemoteLazyFrame first.
type RemoteLazyGroupBy struct {
	local *lazy.GroupBy
	meta  Metadata
}

var groupByAdapter = delegate.Adapter[*RemoteLazyGroupBy, *lazy.GroupBy]{
	Get: func(g *RemoteLazyGroupBy) *lazy.GroupBy { return g.local },
	Clone: func(g *RemoteLazyGroupBy) *RemoteLazyGroupBy {
		return &RemoteLazyGroupBy{local: g.local.Clone(), meta: g.meta}
	},
	Replace: func(g *RemoteLazyGroupBy, local *lazy.GroupBy) *RemoteLazyGroupBy {
		g.local = local
		return g
	},
}

// toFrame wraps an aggregated local plan, keeping the Metadata of the grouping it came from
var toFrame = delegate.With(func(g *RemoteLazyGroupBy, local *lazy.Frame) (*RemoteLazyFrame, error) {
	return &RemoteLazyFrame{local: local, meta: g.meta}, nil
})

// Metadata returns the Session and recorded history of this grouping
func (g *RemoteLazyGroupBy) Metadata() Metadata {
	return g.meta
}

// Keys returns the grouping keys
func (g *RemoteLazyGroupBy) Keys() []*expr.Expr {
	return delegate.Property(groupByAdapter, g, (*lazy.GroupBy).Keys)
}

// Agg aggregates each group
func (g *RemoteLazyGroupBy) Agg(aggs ...*expr.Expr) (*RemoteLazyFrame, error) {
	return delegate.Forward(groupByAdapter, toFrame, func(local *lazy.GroupBy) (*lazy.Frame, error) {
		return local.Agg(aggs...)
	})(g)
}

// Head takes the first n rows of each group
func (g *RemoteLazyGroupBy) Head(n int) (*RemoteLazyFrame, error) {
	return delegate.Forward(groupByAdapter, toFrame, func(local *lazy.GroupBy) (*lazy.Frame, error) {
		return local.Head(n)
	})(g)
}

// Tail takes the last n rows of each group
func (g *RemoteLazyGroupBy) Tail(n int) (*RemoteLazyFrame, error) {
	return delegate.Forward(groupByAdapter, toFrame, func(local *lazy.GroupBy) (*lazy.Frame, error) {
		return local.Tail(n)
	})(g)
}
