package transform

import (
	"fmt"

	"github.com/go-sif/remoteframe/errors"
	"github.com/go-sif/remoteframe/lazy"
	jsoniter "github.com/json-iterator/go"
)

// UniqueOptions configures Unique
type UniqueOptions struct {
	Subset        []string // columns considered when identifying duplicates. Defaults to all columns.
	Keep          string   // which duplicate to keep: "first", "last" or "none". Defaults to "first".
	MaintainOrder bool     // preserve the original row order
}

type distinctNode struct {
	opts UniqueOptions
}

func (n *distinctNode) Kind() lazy.NodeKind {
	return lazy.TransformNodeKind
}

func (n *distinctNode) WriteJSON(stream *jsoniter.Stream, inputs []*lazy.Frame) {
	lazy.WriteNode(stream, "Distinct",
		lazy.InputField("input", inputs[0]),
		lazy.ObjectField("options",
			lazy.ValueField("subset", n.opts.Subset),
			lazy.ValueField("keep_strategy", n.opts.Keep),
			lazy.ValueField("maintain_order", n.opts.MaintainOrder),
		),
	)
}

// Unique removes duplicate rows from a Frame
func Unique(opts UniqueOptions) lazy.Operation {
	return func(f *lazy.Frame) (*lazy.OperationResult, error) {
		s := f.Schema()
		for _, name := range opts.Subset {
			if !s.HasColumn(name) {
				return nil, errors.MissingColumnError{Name: name}
			}
		}
		switch opts.Keep {
		case "":
			opts.Keep = "first"
		case "first", "last", "none":
		default:
			return nil, fmt.Errorf("Unique cannot keep %q duplicates", opts.Keep)
		}
		return &lazy.OperationResult{Node: &distinctNode{opts: opts}, Schema: s}, nil
	}
}
