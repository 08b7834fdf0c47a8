package udf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/expr"
	"github.com/pierrec/lz4/v4"
)

// Function is a traced user-defined function
type Function struct {
	argTypes []remoteframe.DType
	body     *expr.Expr
	outType  remoteframe.DType
}

// ArgTypes returns the declared types of the positional arguments of this Function
func (f *Function) ArgTypes() []remoteframe.DType {
	res := make([]remoteframe.DType, len(f.argTypes))
	copy(res, f.argTypes)
	return res
}

// Body returns the expression computed by this Function, in terms of expr.Arg placeholders
func (f *Function) Body() *expr.Expr {
	return f.body
}

// ReturnType returns the data type produced by this Function
func (f *Function) ReturnType() remoteframe.DType {
	return f.outType
}

// Bytes returns the lz4-compressed binary encoding of this Function
func (f *Function) Bytes() ([]byte, error) {
	raw, err := f.body.MarshalBinary()
	if err != nil {
		return nil, err
	}
	buff := new(bytes.Buffer)
	compressor := lz4.NewWriter(buff)
	if _, err := compressor.Write(raw); err != nil {
		return nil, err
	}
	if err := compressor.Close(); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// Base64 returns the standard base64 encoding of Bytes()
func (f *Function) Base64() (string, error) {
	b, err := f.Bytes()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Decode reconstructs a Function from the output of Bytes()
func Decode(b []byte) (*Function, error) {
	raw, err := io.ReadAll(lz4.NewReader(bytes.NewReader(b)))
	if err != nil {
		return nil, fmt.Errorf("Unable to decompress function: %w", err)
	}
	body := &expr.Expr{}
	if err := body.UnmarshalBinary(raw); err != nil {
		return nil, err
	}
	nodes := 0
	body.Walk(func(e *expr.Expr) bool {
		nodes++
		return true
	})
	var argTypes []remoteframe.DType
	body.Walk(func(e *expr.Expr) bool {
		if err != nil {
			return false
		}
		if e.Kind() == expr.ArgKind {
			i, t := e.ArgIndex(), e.DType()
			// a function cannot take more arguments than its body has nodes
			if i < 0 || i >= nodes {
				err = fmt.Errorf("function argument index %d out of range [0, %d)", i, nodes)
				return false
			}
			for len(argTypes) <= i {
				argTypes = append(argTypes, remoteframe.Null)
			}
			argTypes[i] = t
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	_, outType, err := body.Field(nil)
	if err != nil {
		return nil, err
	}
	return &Function{argTypes: argTypes, body: body, outType: outType}, nil
}
