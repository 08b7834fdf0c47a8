package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-sif/remoteframe"
	pb "github.com/go-sif/remoteframe/internal/rpc"
	"github.com/go-sif/remoteframe/logging"
	"golang.org/x/sync/semaphore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client is a Collaborator backed by a remote query service
type Client struct {
	opts     *Options
	conn     *grpc.ClientConn
	query    pb.QueryServiceClient
	inFlight *semaphore.Weighted
	logger   log.Logger
}

var _ remoteframe.Collaborator = &Client{}

// Dial creates a Client for the query service at opts.Address. Additional
// DialOptions (e.g. a custom dialer) are applied after the defaults.
func Dial(opts *Options, extra ...grpc.DialOption) (*Client, error) {
	if opts == nil {
		opts = &Options{}
	} else {
		opts = CloneOptions(opts)
	}
	ensureDefaultOptionsValues(opts)
	logger, err := logging.NewLogger(opts.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}
	return DialWithLogger(opts, logger, extra...)
}

// DialWithLogger is Dial, with a caller-supplied logger
func DialWithLogger(opts *Options, logger log.Logger, extra ...grpc.DialOption) (*Client, error) {
	if opts == nil {
		opts = &Options{}
	} else {
		opts = CloneOptions(opts)
	}
	ensureDefaultOptionsValues(opts)
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(opts.MaxRecvMsgSize)),
	}, extra...)
	conn, err := grpc.NewClient(opts.Address, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("Unable to connect to query service at %s: %w", opts.Address, err)
	}
	return &Client{
		opts:     opts,
		conn:     conn,
		query:    pb.NewQueryServiceClient(conn),
		inFlight: semaphore.NewWeighted(opts.MaxInFlight),
		logger:   log.With(logging.OrNop(logger), "address", opts.Address),
	}, nil
}

// Close the connection to the query service
func (c *Client) Close() error {
	return c.conn.Close()
}

// acquire reserves an in-flight slot, returning a function which releases it
func (c *Client) acquire(ctx context.Context) (func(), error) {
	if err := c.inFlight.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { c.inFlight.Release(1) }, nil
}

// SubmitPlan runs a serialized composite plan
func (c *Client) SubmitPlan(ctx context.Context, plan string) (remoteframe.Reference, error) {
	release, err := c.acquire(ctx)
	if err != nil {
		return remoteframe.Reference{}, err
	}
	defer release()
	rpcCtx, cancel := context.WithTimeout(ctx, c.opts.RPCTimeout)
	defer cancel()
	res, err := c.query.SubmitPlan(rpcCtx, wrapperspb.String(plan))
	if err != nil {
		level.Warn(c.logger).Log("msg", "SubmitPlan failed", "err", err)
		return remoteframe.Reference{}, err
	}
	return pb.DecodeReference(res)
}

// FetchByIdentifier realizes a data frame, reassembling the streamed chunks.
// Fetches are bounded by ctx rather than RPCTimeout, since they may be large.
func (c *Client) FetchByIdentifier(ctx context.Context, identifier string) ([]byte, error) {
	release, err := c.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	stream, err := c.query.FetchDataFrame(ctx, wrapperspb.String(identifier))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	numChunks := 0
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			break
		} else if err != nil {
			level.Warn(c.logger).Log("msg", "FetchDataFrame failed", "identifier", identifier, "err", err)
			return nil, err
		}
		buf.Write(chunk.GetValue())
		numChunks++
	}
	level.Debug(c.logger).Log("msg", "fetched data frame", "identifier", identifier, "bytes", buf.Len(), "chunks", numChunks)
	return buf.Bytes(), nil
}

// RegisterEntryPoint binds a dataset held by the query service
func (c *Client) RegisterEntryPoint(ctx context.Context, req remoteframe.EntryPointRequest) (remoteframe.Reference, error) {
	release, err := c.acquire(ctx)
	if err != nil {
		return remoteframe.Reference{}, err
	}
	defer release()
	rpcCtx, cancel := context.WithTimeout(ctx, c.opts.RPCTimeout)
	defer cancel()
	res, err := c.query.RegisterEntryPoint(rpcCtx, pb.EncodeEntryPointRequest(req))
	if err != nil {
		level.Warn(c.logger).Log("msg", "RegisterEntryPoint failed", "dataset", req.Identifier, "err", err)
		return remoteframe.Reference{}, err
	}
	return pb.DecodeReference(res)
}
