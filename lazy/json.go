package lazy

import (
	"github.com/go-sif/remoteframe/expr"
	jsoniter "github.com/json-iterator/go"
)

// Field is a named member of a Node's plan encoding
type Field struct {
	Name  string
	Write func(stream *jsoniter.Stream)
}

// WriteNode writes {"<tag>":{<fields>}} to a json stream
func WriteNode(stream *jsoniter.Stream, tag string, fields ...Field) {
	stream.WriteObjectStart()
	stream.WriteObjectField(tag)
	WriteObject(stream, fields...)
	stream.WriteObjectEnd()
}

// WriteObject writes {<fields>} to a json stream
func WriteObject(stream *jsoniter.Stream, fields ...Field) {
	stream.WriteObjectStart()
	for i, f := range fields {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(f.Name)
		f.Write(stream)
	}
	stream.WriteObjectEnd()
}

// InputField encodes a consumed Frame
func InputField(name string, f *Frame) Field {
	return Field{Name: name, Write: f.writeJSON}
}

// ExprField encodes a single expression, or null
func ExprField(name string, e *expr.Expr) Field {
	return Field{Name: name, Write: func(stream *jsoniter.Stream) {
		if e == nil {
			stream.WriteNil()
			return
		}
		e.WriteJSON(stream)
	}}
}

// ExprsField encodes a list of expressions
func ExprsField(name string, es []*expr.Expr) Field {
	return Field{Name: name, Write: func(stream *jsoniter.Stream) { expr.WriteList(stream, es) }}
}

// ValueField encodes an arbitrary value with jsoniter
func ValueField(name string, v interface{}) Field {
	return Field{Name: name, Write: func(stream *jsoniter.Stream) { stream.WriteVal(v) }}
}

// ObjectField encodes a nested object
func ObjectField(name string, fields ...Field) Field {
	return Field{Name: name, Write: func(stream *jsoniter.Stream) { WriteObject(stream, fields...) }}
}
