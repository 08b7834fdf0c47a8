package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	QueryService_SubmitPlan_FullMethodName         = "/remoteframe.QueryService/SubmitPlan"
	QueryService_FetchDataFrame_FullMethodName     = "/remoteframe.QueryService/FetchDataFrame"
	QueryService_RegisterEntryPoint_FullMethodName = "/remoteframe.QueryService/RegisterEntryPoint"
)

// QueryServiceClient is the client API for QueryService service.
type QueryServiceClient interface {
	SubmitPlan(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	FetchDataFrame(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (QueryService_FetchDataFrameClient, error)
	RegisterEntryPoint(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type queryServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewQueryServiceClient creates a QueryServiceClient over a connection
func NewQueryServiceClient(cc grpc.ClientConnInterface) QueryServiceClient {
	return &queryServiceClient{cc}
}

func (c *queryServiceClient) SubmitPlan(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, QueryService_SubmitPlan_FullMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *queryServiceClient) FetchDataFrame(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (QueryService_FetchDataFrameClient, error) {
	stream, err := c.cc.NewStream(ctx, &QueryService_ServiceDesc.Streams[0], QueryService_FetchDataFrame_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &queryServiceFetchDataFrameClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// QueryService_FetchDataFrameClient receives the chunks of a realized data frame
type QueryService_FetchDataFrameClient interface {
	Recv() (*wrapperspb.BytesValue, error)
	grpc.ClientStream
}

type queryServiceFetchDataFrameClient struct {
	grpc.ClientStream
}

func (x *queryServiceFetchDataFrameClient) Recv() (*wrapperspb.BytesValue, error) {
	m := new(wrapperspb.BytesValue)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *queryServiceClient) RegisterEntryPoint(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, QueryService_RegisterEntryPoint_FullMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// QueryServiceServer is the server API for QueryService service.
type QueryServiceServer interface {
	SubmitPlan(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	FetchDataFrame(*wrapperspb.StringValue, QueryService_FetchDataFrameServer) error
	RegisterEntryPoint(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterQueryServiceServer registers a QueryServiceServer with a gRPC server
func RegisterQueryServiceServer(s grpc.ServiceRegistrar, srv QueryServiceServer) {
	s.RegisterService(&QueryService_ServiceDesc, srv)
}

func _QueryService_SubmitPlan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QueryServiceServer).SubmitPlan(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: QueryService_SubmitPlan_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QueryServiceServer).SubmitPlan(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _QueryService_FetchDataFrame_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(wrapperspb.StringValue)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(QueryServiceServer).FetchDataFrame(m, &queryServiceFetchDataFrameServer{stream})
}

// QueryService_FetchDataFrameServer sends the chunks of a realized data frame
type QueryService_FetchDataFrameServer interface {
	Send(*wrapperspb.BytesValue) error
	grpc.ServerStream
}

type queryServiceFetchDataFrameServer struct {
	grpc.ServerStream
}

func (x *queryServiceFetchDataFrameServer) Send(m *wrapperspb.BytesValue) error {
	return x.ServerStream.SendMsg(m)
}

func _QueryService_RegisterEntryPoint_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QueryServiceServer).RegisterEntryPoint(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: QueryService_RegisterEntryPoint_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QueryServiceServer).RegisterEntryPoint(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// QueryService_ServiceDesc is the grpc.ServiceDesc for QueryService service.
var QueryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "remoteframe.QueryService",
	HandlerType: (*QueryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SubmitPlan",
			Handler:    _QueryService_SubmitPlan_Handler,
		},
		{
			MethodName: "RegisterEntryPoint",
			Handler:    _QueryService_RegisterEntryPoint_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "FetchDataFrame",
			Handler:       _QueryService_FetchDataFrame_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "s_query.proto",
}
