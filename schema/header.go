package schema

import (
	"fmt"

	"github.com/go-sif/remoteframe"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
)

// WriteJSON writes a Schema to a json stream as {"inner":{"name":"DType",...}}, preserving column order
func WriteJSON(stream *jsoniter.Stream, s remoteframe.Schema) {
	stream.WriteObjectStart()
	stream.WriteObjectField("inner")
	stream.WriteObjectStart()
	for i, name := range s.ColumnNames() {
		if i > 0 {
			stream.WriteMore()
		}
		col, _ := s.GetColumn(name)
		stream.WriteObjectField(name)
		stream.WriteString(col.Type().String())
	}
	stream.WriteObjectEnd()
	stream.WriteObjectEnd()
}

// EncodeHeader produces the textual header for a Schema, as exchanged with the remote query service
func EncodeHeader(s remoteframe.Schema) (string, error) {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(nil)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)
	WriteJSON(stream, s)
	if stream.Error != nil {
		return "", stream.Error
	}
	return string(stream.Buffer()), nil
}

// DecodeHeader parses a header produced by the remote query service into a Schema.
// Column order follows the order of keys within the header.
func DecodeHeader(header string) (remoteframe.Schema, error) {
	if !gjson.Valid(header) {
		return nil, fmt.Errorf("Schema header is not valid JSON: %q", header)
	}
	inner := gjson.Get(header, "inner")
	if !inner.IsObject() {
		return nil, fmt.Errorf("Schema header has no \"inner\" object: %q", header)
	}
	s := CreateSchema()
	var err error
	inner.ForEach(func(key, value gjson.Result) bool {
		var t remoteframe.DType
		t, err = remoteframe.ParseDType(value.String())
		if err != nil {
			err = fmt.Errorf("column %s: %w", key.String(), err)
			return false
		}
		_, err = s.CreateColumn(key.String(), t)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
