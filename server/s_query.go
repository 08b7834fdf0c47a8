package server

import (
	"context"
	"errors"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-sif/remoteframe"
	pb "github.com/go-sif/remoteframe/internal/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type queryServer struct {
	collaborator remoteframe.Collaborator
	chunkSize    int
	logger       log.Logger
	metrics      *metrics
}

func createQueryServer(collaborator remoteframe.Collaborator, opts *Options, m *metrics) *queryServer {
	return &queryServer{
		collaborator: collaborator,
		chunkSize:    opts.ChunkSize,
		metrics:      m,
		logger:       log.With(opts.Logger, "component", "query"),
	}
}

// toStatus converts collaborator errors into gRPC errors
func toStatus(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Unknown, err.Error())
}

// SubmitPlan executes a composite plan
func (s *queryServer) SubmitPlan(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if len(req.GetValue()) == 0 {
		return nil, status.Error(codes.InvalidArgument, "plan cannot be empty")
	}
	ref, err := s.collaborator.SubmitPlan(ctx, req.GetValue())
	if err != nil {
		level.Warn(s.logger).Log("msg", "plan failed", "err", err)
		return nil, toStatus(err)
	}
	level.Debug(s.logger).Log("msg", "plan complete", "identifier", ref.Identifier)
	return pb.EncodeReference(ref), nil
}

// FetchDataFrame streams the JSON lines of a data frame, in chunks of at most chunkSize bytes
func (s *queryServer) FetchDataFrame(req *wrapperspb.StringValue, stream pb.QueryService_FetchDataFrameServer) error {
	if len(req.GetValue()) == 0 {
		return status.Error(codes.InvalidArgument, "identifier cannot be empty")
	}
	data, err := s.collaborator.FetchByIdentifier(stream.Context(), req.GetValue())
	if err != nil {
		level.Warn(s.logger).Log("msg", "fetch failed", "identifier", req.GetValue(), "err", err)
		return toStatus(err)
	}
	numChunks := 0
	for offset := 0; offset < len(data); offset += s.chunkSize {
		end := offset + s.chunkSize
		if end > len(data) {
			end = len(data)
		}
		if err := stream.Send(wrapperspb.Bytes(data[offset:end])); err != nil {
			return err
		}
		s.metrics.bytesFetched.Add(float64(end - offset))
		numChunks++
	}
	level.Debug(s.logger).Log("msg", "fetch complete", "identifier", req.GetValue(), "bytes", len(data), "chunks", numChunks)
	return nil
}

// RegisterEntryPoint binds a dataset for use as the root of a plan
func (s *queryServer) RegisterEntryPoint(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	epr, err := pb.DecodeEntryPointRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	ref, err := s.collaborator.RegisterEntryPoint(ctx, epr)
	if err != nil {
		level.Warn(s.logger).Log("msg", "entry point registration failed", "dataset", epr.Identifier, "err", err)
		return nil, toStatus(err)
	}
	level.Debug(s.logger).Log("msg", "registered entry point", "dataset", epr.Identifier, "identifier", ref.Identifier)
	return pb.EncodeReference(ref), nil
}
