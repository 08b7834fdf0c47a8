package expr

import (
	"github.com/go-sif/remoteframe"
	jsoniter "github.com/json-iterator/go"
)

// WriteJSON writes the plan encoding of this expression to a json stream
func (e *Expr) WriteJSON(stream *jsoniter.Stream) {
	switch e.kind {
	case WildcardKind:
		stream.WriteString("Wildcard")
		return
	case LiteralKind:
		if e.dtype == remoteframe.Null || e.err != nil {
			writeTagged(stream, "Literal", func() { stream.WriteString("Null") })
			return
		}
		writeTagged(stream, "Literal", func() {
			writeTagged(stream, e.dtype.String(), func() { stream.WriteRaw(e.literal) })
		})
		return
	}
	stream.WriteObjectStart()
	switch e.kind {
	case ColumnKind:
		stream.WriteObjectField("Column")
		stream.WriteString(e.name)
	case ArgKind:
		stream.WriteObjectField("Arg")
		stream.WriteObjectStart()
		stream.WriteObjectField("index")
		stream.WriteInt(e.index)
		stream.WriteMore()
		stream.WriteObjectField("dtype")
		stream.WriteString(e.dtype.String())
		stream.WriteObjectEnd()
	case BinaryKind:
		stream.WriteObjectField("BinaryExpr")
		stream.WriteObjectStart()
		stream.WriteObjectField("left")
		e.args[0].WriteJSON(stream)
		stream.WriteMore()
		stream.WriteObjectField("op")
		stream.WriteString(e.op)
		stream.WriteMore()
		stream.WriteObjectField("right")
		e.args[1].WriteJSON(stream)
		stream.WriteObjectEnd()
	case AggKind:
		stream.WriteObjectField("Agg")
		switch e.op {
		case AggQuantile, AggStd, AggVar:
			param := "quantile"
			if e.op != AggQuantile {
				param = "ddof"
			}
			writeTagged(stream, e.op, func() {
				stream.WriteObjectStart()
				stream.WriteObjectField("expr")
				e.args[0].WriteJSON(stream)
				stream.WriteMore()
				stream.WriteObjectField(param)
				stream.WriteFloat64(e.param)
				stream.WriteObjectEnd()
			})
		default:
			writeTagged(stream, e.op, func() { e.args[0].WriteJSON(stream) })
		}
	case AliasKind:
		stream.WriteObjectField("Alias")
		stream.WriteArrayStart()
		e.args[0].WriteJSON(stream)
		stream.WriteMore()
		stream.WriteString(e.name)
		stream.WriteArrayEnd()
	case CastKind:
		stream.WriteObjectField("Cast")
		stream.WriteObjectStart()
		stream.WriteObjectField("expr")
		e.args[0].WriteJSON(stream)
		stream.WriteMore()
		stream.WriteObjectField("data_type")
		stream.WriteString(e.dtype.String())
		stream.WriteObjectEnd()
	case FunctionKind:
		stream.WriteObjectField("Function")
		stream.WriteObjectStart()
		stream.WriteObjectField("input")
		WriteList(stream, e.args)
		stream.WriteMore()
		stream.WriteObjectField("function")
		stream.WriteString(e.op)
		stream.WriteObjectEnd()
	}
	stream.WriteObjectEnd()
}

// WriteList writes a list of expressions to a json stream as an array
func WriteList(stream *jsoniter.Stream, exprs []*Expr) {
	stream.WriteArrayStart()
	for i, e := range exprs {
		if i > 0 {
			stream.WriteMore()
		}
		e.WriteJSON(stream)
	}
	stream.WriteArrayEnd()
}

func writeTagged(stream *jsoniter.Stream, tag string, body func()) {
	stream.WriteObjectStart()
	stream.WriteObjectField(tag)
	body()
	stream.WriteObjectEnd()
}

// MarshalJSON returns the plan encoding of this expression
func (e *Expr) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(nil)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)
	e.WriteJSON(stream)
	if stream.Error != nil {
		return nil, stream.Error
	}
	res := make([]byte, len(stream.Buffer()))
	copy(res, stream.Buffer())
	return res, nil
}
