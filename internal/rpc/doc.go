// Package rpc contains the gRPC bindings for s_query.proto. The service exchanges
// protobuf well-known types only, so the bindings below are maintained by hand
// in the shape protoc-gen-go-grpc would produce.
package rpc
