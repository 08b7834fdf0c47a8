package rpc

import (
	"fmt"

	"github.com/go-sif/remoteframe"
	"google.golang.org/protobuf/types/known/structpb"
)

func stringField(s *structpb.Struct, name string, required bool) (string, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		if required {
			return "", fmt.Errorf("message is missing field %q", name)
		}
		return "", nil
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("field %q must be a string", name)
	}
	return sv.StringValue, nil
}

// EncodeReference converts a Reference to its wire form
func EncodeReference(ref remoteframe.Reference) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"identifier": structpb.NewStringValue(ref.Identifier),
		"header":     structpb.NewStringValue(ref.Header),
	}}
}

// DecodeReference converts the wire form of a Reference back to a Reference
func DecodeReference(s *structpb.Struct) (remoteframe.Reference, error) {
	id, err := stringField(s, "identifier", true)
	if err != nil {
		return remoteframe.Reference{}, err
	}
	header, err := stringField(s, "header", true)
	if err != nil {
		return remoteframe.Reference{}, err
	}
	return remoteframe.Reference{Identifier: id, Header: header}, nil
}

// EncodeEntryPointRequest converts an EntryPointRequest to its wire form
func EncodeEntryPointRequest(req remoteframe.EntryPointRequest) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"identifier":  structpb.NewStringValue(req.Identifier),
		"description": structpb.NewStringValue(req.Description),
	}}
}

// DecodeEntryPointRequest converts the wire form of an EntryPointRequest back to an EntryPointRequest
func DecodeEntryPointRequest(s *structpb.Struct) (remoteframe.EntryPointRequest, error) {
	id, err := stringField(s, "identifier", true)
	if err != nil {
		return remoteframe.EntryPointRequest{}, err
	}
	desc, err := stringField(s, "description", false)
	if err != nil {
		return remoteframe.EntryPointRequest{}, err
	}
	return remoteframe.EntryPointRequest{Identifier: id, Description: desc}, nil
}
