package server

import (
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-sif/remoteframe"
	pb "github.com/go-sif/remoteframe/internal/rpc"
	"github.com/go-sif/remoteframe/logging"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
)

// Options configure a Server
type Options struct {
	Port           int                   // port for this Server to bind to
	Host           string                // hostname for this Server to bind to
	ChunkSize      int                   // maximum number of bytes sent per FetchDataFrame message
	MaxRecvMsgSize int                   // maximum size of an incoming plan, in bytes
	LogLevel       string                // minimum level of log messages (debug, info, warn, error)
	Logger         log.Logger            // destination for log messages. Defaults to logfmt on stderr.
	Registerer     prometheus.Registerer // registry for request metrics. Metrics are not registered if nil.
}

// CloneOptions makes a copy of an Options
func CloneOptions(opts *Options) *Options {
	return &Options{
		Port:           opts.Port,
		Host:           opts.Host,
		ChunkSize:      opts.ChunkSize,
		MaxRecvMsgSize: opts.MaxRecvMsgSize,
		LogLevel:       opts.LogLevel,
		Logger:         opts.Logger,
		Registerer:     opts.Registerer,
	}
}

func ensureDefaultOptionsValues(opts *Options) error {
	if opts.Port == 0 {
		opts.Port = 50056
	}
	if len(opts.Host) == 0 {
		opts.Host = "0.0.0.0"
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 1 << 20
	}
	if opts.MaxRecvMsgSize <= 0 {
		opts.MaxRecvMsgSize = 64 << 20
	}
	if len(opts.LogLevel) == 0 {
		opts.LogLevel = logging.InfoLevel
	}
	if opts.Logger == nil {
		logger, err := logging.NewLogger(opts.LogLevel, os.Stderr)
		if err != nil {
			return err
		}
		opts.Logger = logger
	} else {
		filter, err := logging.LevelFilter(opts.LogLevel)
		if err != nil {
			return err
		}
		opts.Logger = level.NewFilter(opts.Logger, filter)
	}
	return nil
}

// connectionString returns the connection string for this Server
func (o *Options) connectionString() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// Server exposes a Collaborator over gRPC, so that remote sessions can submit
// plans to it
type Server struct {
	opts              *Options
	server            *grpc.Server
	queryServer       *queryServer
	bootstrappingLock sync.Mutex
}

// CreateServer creates a Server which executes plans with collaborator
func CreateServer(collaborator remoteframe.Collaborator, opts *Options) (*Server, error) {
	if collaborator == nil {
		return nil, fmt.Errorf("Collaborator cannot be nil")
	}
	if opts == nil {
		opts = &Options{}
	} else {
		opts = CloneOptions(opts)
	}
	if err := ensureDefaultOptionsValues(opts); err != nil {
		return nil, err
	}
	m := newMetrics(opts.Registerer)
	s := &Server{opts: opts, queryServer: createQueryServer(collaborator, opts, m)}
	s.server = grpc.NewServer(
		grpc.MaxRecvMsgSize(opts.MaxRecvMsgSize),
		grpc.ChainUnaryInterceptor(m.unaryInterceptor),
		grpc.ChainStreamInterceptor(m.streamInterceptor),
	)
	pb.RegisterQueryServiceServer(s.server, s.queryServer)
	return s, nil
}

// Start the Server on its configured host and port - blocking unless run in a goroutine
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.opts.connectionString())
	if err != nil {
		return fmt.Errorf("failed to listen: %v", err)
	}
	return s.Serve(lis)
}

// Serve requests arriving on lis - blocking unless run in a goroutine
func (s *Server) Serve(lis net.Listener) error {
	s.bootstrappingLock.Lock()
	level.Info(s.opts.Logger).Log("msg", "starting query service", "address", lis.Addr().String())
	s.bootstrappingLock.Unlock()
	if err := s.server.Serve(lis); err != nil {
		return fmt.Errorf("failed to serve: %v", err)
	}
	return nil
}

// GracefulStop the Server, waiting for RPCs to finish
func (s *Server) GracefulStop() error {
	s.bootstrappingLock.Lock()
	defer s.bootstrappingLock.Unlock()
	s.server.GracefulStop()
	return nil
}

// Stop the Server immediately
func (s *Server) Stop() error {
	s.bootstrappingLock.Lock()
	defer s.bootstrappingLock.Unlock()
	s.server.Stop()
	return nil
}
