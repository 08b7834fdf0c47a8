package plan

import (
	"fmt"

	"github.com/go-sif/remoteframe/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
)

// Segment is a single step of a composite plan. The set of Segments is closed:
// EntryPoint, LocalPlan, UdfApply and Stack.
type Segment interface {
	// Serialize produces the JSON fragment describing this Segment
	Serialize() (string, error)
	segment()
}

// Snapshot is a local plan which can be embedded in a composite plan
type Snapshot interface {
	WriteJSON() ([]byte, error)
}

// Callable is a user-defined function in its binary traced form
type Callable interface {
	Bytes() ([]byte, error)
}

// Base is the abstract Segment. It cannot be serialized.
type Base struct{}

// Serialize always fails for the abstract Segment
func (Base) Serialize() (string, error) {
	return "", errors.UnimplementedSegmentError{}
}

func (Base) segment() {}

// EntryPoint refers to a frame already known to the remote query service
type EntryPoint struct {
	Identifier string
}

// Serialize produces {"EntryPointPlanSegment":"<identifier>"}
func (s EntryPoint) Serialize() (string, error) {
	return writeSegment(func(stream *jsoniter.Stream) {
		stream.WriteObjectStart()
		stream.WriteObjectField("EntryPointPlanSegment")
		stream.WriteString(s.Identifier)
		stream.WriteObjectEnd()
	})
}

func (EntryPoint) segment() {}

// LocalPlan captures the state of a local plan at the moment it was appended to a history
type LocalPlan struct {
	Snapshot Snapshot
}

// Serialize produces {"PolarsPlanSegment":<local plan>}
func (s LocalPlan) Serialize() (string, error) {
	if s.Snapshot == nil {
		return "", fmt.Errorf("local plan segment has no snapshot")
	}
	local, err := s.Snapshot.WriteJSON()
	if err != nil {
		return "", err
	}
	if !gjson.ValidBytes(local) {
		return "", fmt.Errorf("local plan snapshot is not valid JSON")
	}
	return writeSegment(func(stream *jsoniter.Stream) {
		stream.WriteObjectStart()
		stream.WriteObjectField("PolarsPlanSegment")
		stream.WriteRaw(string(local))
		stream.WriteObjectEnd()
	})
}

func (LocalPlan) segment() {}

// UdfApply applies a traced function to the given columns, in argument order
type UdfApply struct {
	Columns  []string
	Function Callable
}

// Serialize produces {"UdfPlanSegment":{"columns":[...],"udf":"<base64>"}}
func (s UdfApply) Serialize() (string, error) {
	if s.Function == nil {
		return "", fmt.Errorf("udf plan segment has no function")
	}
	b, err := s.Function.Bytes()
	if err != nil {
		return "", err
	}
	return writeSegment(func(stream *jsoniter.Stream) {
		stream.WriteObjectStart()
		stream.WriteObjectField("UdfPlanSegment")
		stream.WriteObjectStart()
		stream.WriteObjectField("columns")
		stream.WriteArrayStart()
		for i, c := range s.Columns {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteString(c)
		}
		stream.WriteArrayEnd()
		stream.WriteMore()
		stream.WriteObjectField("udf")
		// []byte values are written as standard base64
		stream.WriteVal(b)
		stream.WriteObjectEnd()
		stream.WriteObjectEnd()
	})
}

func (UdfApply) segment() {}

// Stack marks that the two preceding sub-plans are to be concatenated vertically
type Stack struct{}

// Serialize produces "StackPlanSegment"
func (Stack) Serialize() (string, error) {
	return `"StackPlanSegment"`, nil
}

func (Stack) segment() {}

func writeSegment(write func(stream *jsoniter.Stream)) (string, error) {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(nil)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)
	write(stream)
	if stream.Error != nil {
		return "", stream.Error
	}
	return string(stream.Buffer()), nil
}
