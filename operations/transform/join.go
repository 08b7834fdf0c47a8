package transform

import (
	"fmt"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/errors"
	"github.com/go-sif/remoteframe/expr"
	"github.com/go-sif/remoteframe/lazy"
	jsoniter "github.com/json-iterator/go"
)

// Join strategies
const (
	InnerJoin = "inner"
	LeftJoin  = "left"
	OuterJoin = "outer"
	SemiJoin  = "semi"
	AntiJoin  = "anti"
	CrossJoin = "cross"
)

// JoinOptions configures Join
type JoinOptions struct {
	LeftOn           []*expr.Expr // keys of the left frame
	RightOn          []*expr.Expr // keys of the right frame
	On               []*expr.Expr // keys shared by both frames. Overrides LeftOn and RightOn.
	How              string       // join strategy. Defaults to "inner".
	Suffix           string       // appended to right column names which collide with left ones. Defaults to "_right".
	DisallowParallel bool         // evaluate both sides sequentially. By default the executor may evaluate them in parallel.
	ForceParallel    bool         // force the executor to evaluate both sides in parallel
}

// AsofOptions configures JoinAsof
type AsofOptions struct {
	LeftOn           string      // sorted key of the left frame
	RightOn          string      // sorted key of the right frame
	On               string      // sorted key shared by both frames. Overrides LeftOn and RightOn.
	ByLeft           []string    // exact-match keys of the left frame
	ByRight          []string    // exact-match keys of the right frame
	By               []string    // exact-match keys shared by both frames. Overrides ByLeft and ByRight.
	Strategy         string      // "backward", "forward" or "nearest". Defaults to "backward".
	Suffix           string      // appended to right column names which collide with left ones. Defaults to "_right".
	Tolerance        interface{} // maximum key distance of a match, as a number or a duration string
	DisallowParallel bool        // evaluate both sides sequentially. By default the executor may evaluate them in parallel.
	ForceParallel    bool        // force the executor to evaluate both sides in parallel
}

type joinNode struct {
	leftOn  []*expr.Expr
	rightOn []*expr.Expr
	options []lazy.Field
}

func (n *joinNode) Kind() lazy.NodeKind {
	return lazy.JoinNodeKind
}

func (n *joinNode) WriteJSON(stream *jsoniter.Stream, inputs []*lazy.Frame) {
	lazy.WriteNode(stream, "Join",
		lazy.InputField("input_left", inputs[0]),
		lazy.InputField("input_right", inputs[1]),
		lazy.ExprsField("left_on", n.leftOn),
		lazy.ExprsField("right_on", n.rightOn),
		lazy.ObjectField("options", n.options...),
	)
}

// joinSchema appends the columns of right to those of left, skipping the columns
// named in drop and suffixing collisions
func joinSchema(left, right remoteframe.Schema, drop map[string]bool, suffix string) (remoteframe.Schema, error) {
	s := left.Clone()
	err := right.ForEachColumn(func(name string, col remoteframe.Column) error {
		if drop[name] {
			return nil
		}
		if s.HasColumn(name) {
			name += suffix
		}
		if s.HasColumn(name) {
			return errors.DuplicateColumnError{Name: name}
		}
		_, err := s.CreateColumn(name, col.Type())
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Join combines the columns of a Frame with those of other, matching rows by key
func Join(other *lazy.Frame, opts JoinOptions) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		if other == nil {
			return nil, fmt.Errorf("Join requires another frame")
		}
		if opts.How == "" {
			opts.How = InnerJoin
		}
		if opts.Suffix == "" {
			opts.Suffix = "_right"
		}
		leftOn, rightOn := opts.LeftOn, opts.RightOn
		if len(opts.On) > 0 {
			leftOn, rightOn = opts.On, opts.On
		}
		left, right := f.Schema(), other.Schema()
		switch opts.How {
		case CrossJoin:
			if len(leftOn) > 0 || len(rightOn) > 0 {
				return nil, fmt.Errorf("cross join does not accept keys")
			}
		case InnerJoin, LeftJoin, OuterJoin, SemiJoin, AntiJoin:
			if len(leftOn) == 0 || len(leftOn) != len(rightOn) {
				return nil, fmt.Errorf("%s join requires the same positive number of left and right keys, got %d and %d", opts.How, len(leftOn), len(rightOn))
			}
		default:
			return nil, fmt.Errorf("unknown join strategy %q", opts.How)
		}
		drop := make(map[string]bool, len(rightOn))
		for i := range leftOn {
			_, lt, err := leftOn[i].Field(left)
			if err != nil {
				return nil, err
			}
			_, rt, err := rightOn[i].Field(right)
			if err != nil {
				return nil, err
			}
			if _, err := remoteframe.Supertype(lt, rt); err != nil {
				return nil, errors.IncompatibleTypeError{Operation: "join", Types: []string{lt.String(), rt.String()}}
			}
			if rightOn[i].Kind() == expr.ColumnKind {
				drop[rightOn[i].Name()] = true
			}
		}
		var s remoteframe.Schema
		if opts.How == SemiJoin || opts.How == AntiJoin {
			s = left
		} else {
			var err error
			if s, err = joinSchema(left, right, drop, opts.Suffix); err != nil {
				return nil, err
			}
		}
		return &lazy.OperationResult{
			Node: &joinNode{
				leftOn:  leftOn,
				rightOn: rightOn,
				options: []lazy.Field{
					lazy.ValueField("how", opts.How),
					lazy.ValueField("suffix", opts.Suffix),
					lazy.ValueField("allow_parallel", !opts.DisallowParallel),
					lazy.ValueField("force_parallel", opts.ForceParallel),
				},
			},
			Schema: s,
			Inputs: []*lazy.Frame{other},
		}, nil
	}
}

// JoinAsof combines the columns of a Frame with those of other, matching each row
// with the nearest key of other rather than an equal one
func JoinAsof(other *lazy.Frame, opts AsofOptions) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		if other == nil {
			return nil, fmt.Errorf("JoinAsof requires another frame")
		}
		if opts.Strategy == "" {
			opts.Strategy = "backward"
		}
		switch opts.Strategy {
		case "backward", "forward", "nearest":
		default:
			return nil, fmt.Errorf("unknown asof strategy %q", opts.Strategy)
		}
		if opts.Suffix == "" {
			opts.Suffix = "_right"
		}
		leftOn, rightOn := opts.LeftOn, opts.RightOn
		if opts.On != "" {
			leftOn, rightOn = opts.On, opts.On
		}
		if leftOn == "" || rightOn == "" {
			return nil, fmt.Errorf("JoinAsof requires a key on both sides")
		}
		byLeft, byRight := opts.ByLeft, opts.ByRight
		if len(opts.By) > 0 {
			byLeft, byRight = opts.By, opts.By
		}
		if len(byLeft) != len(byRight) {
			return nil, fmt.Errorf("JoinAsof requires the same number of left and right grouping keys, got %d and %d", len(byLeft), len(byRight))
		}
		left, right := f.Schema(), other.Schema()
		leftKeys := append([]string{leftOn}, byLeft...)
		rightKeys := append([]string{rightOn}, byRight...)
		drop := make(map[string]bool, len(rightKeys))
		for i := range leftKeys {
			lc, err := left.GetColumn(leftKeys[i])
			if err != nil {
				return nil, err
			}
			rc, err := right.GetColumn(rightKeys[i])
			if err != nil {
				return nil, err
			}
			lt, rt := lc.Type(), rc.Type()
			if _, err := remoteframe.Supertype(lt, rt); err != nil {
				return nil, errors.IncompatibleTypeError{Operation: "join_asof", Types: []string{lt.String(), rt.String()}}
			}
			if i == 0 && !(lt.IsNumeric() || lt.IsTemporal()) {
				return nil, errors.IncompatibleTypeError{Operation: "join_asof", Types: []string{lt.String()}}
			}
			drop[rightKeys[i]] = true
		}
		s, err := joinSchema(left, right, drop, opts.Suffix)
		if err != nil {
			return nil, err
		}
		return &lazy.OperationResult{
			Node: &joinNode{
				leftOn:  expr.Cols(leftOn),
				rightOn: expr.Cols(rightOn),
				options: []lazy.Field{
					lazy.ValueField("how", "asof"),
					lazy.ObjectField("asof",
						lazy.ValueField("strategy", opts.Strategy),
						lazy.ValueField("left_by", byLeft),
						lazy.ValueField("right_by", byRight),
						lazy.ValueField("tolerance", opts.Tolerance),
					),
					lazy.ValueField("suffix", opts.Suffix),
					lazy.ValueField("allow_parallel", !opts.DisallowParallel),
					lazy.ValueField("force_parallel", opts.ForceParallel),
				},
			},
			Schema: s,
			Inputs: []*lazy.Frame{other},
		}, nil
	}
}

