package client

import (
	"fmt"
	"os"
	"time"

	"github.com/go-sif/remoteframe/logging"
	"sigs.k8s.io/yaml"
)

const (
	// AddressEnv overrides Options.Address in OptionsFromEnv
	AddressEnv = "REMOTEFRAME_ADDRESS"
	// RPCTimeoutEnv overrides Options.RPCTimeout in OptionsFromEnv (e.g. "10s")
	RPCTimeoutEnv = "REMOTEFRAME_RPC_TIMEOUT"
	// LogLevelEnv overrides Options.LogLevel in OptionsFromEnv
	LogLevelEnv = "REMOTEFRAME_LOG_LEVEL"
)

// Options configure a Client
type Options struct {
	Address        string        // host:port of the remote query service
	RPCTimeout     time.Duration // timeout for unary RPC calls
	MaxInFlight    int64         // maximum number of concurrent RPCs issued by a Client
	MaxRecvMsgSize int           // maximum size of an incoming message, in bytes
	LogLevel       string        // minimum level of log messages (debug, info, warn, error)
}

// CloneOptions makes a copy of an Options
func CloneOptions(opts *Options) *Options {
	return &Options{
		Address:        opts.Address,
		RPCTimeout:     opts.RPCTimeout,
		MaxInFlight:    opts.MaxInFlight,
		MaxRecvMsgSize: opts.MaxRecvMsgSize,
		LogLevel:       opts.LogLevel,
	}
}

func ensureDefaultOptionsValues(opts *Options) {
	if len(opts.Address) == 0 {
		opts.Address = "localhost:50056"
	}
	if opts.RPCTimeout == 0 {
		opts.RPCTimeout = time.Duration(5) * time.Second
	}
	if opts.MaxInFlight <= 0 {
		opts.MaxInFlight = 8
	}
	if opts.MaxRecvMsgSize <= 0 {
		opts.MaxRecvMsgSize = 64 << 20
	}
	if len(opts.LogLevel) == 0 {
		opts.LogLevel = logging.InfoLevel
	}
}

// OptionsFromEnv creates Options from environment variables, leaving unset values
// to their defaults
func OptionsFromEnv() (*Options, error) {
	opts := &Options{
		Address:  os.Getenv(AddressEnv),
		LogLevel: os.Getenv(LogLevelEnv),
	}
	if timeout := os.Getenv(RPCTimeoutEnv); len(timeout) > 0 {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("$%s=\"%s\" is not a valid duration: %w", RPCTimeoutEnv, timeout, err)
		}
		opts.RPCTimeout = d
	}
	if _, err := logging.LevelFilter(opts.LogLevel); err != nil {
		return nil, fmt.Errorf("$%s: %w", LogLevelEnv, err)
	}
	ensureDefaultOptionsValues(opts)
	return opts, nil
}

type fileOptions struct {
	Address        string `json:"address"`
	RPCTimeout     string `json:"rpcTimeout"`
	MaxInFlight    int64  `json:"maxInFlight"`
	MaxRecvMsgSize int    `json:"maxRecvMsgSize"`
	LogLevel       string `json:"logLevel"`
}

// LoadOptions parses Options from a YAML (or JSON) document, e.g.
//
//	address: query.internal:50056
//	rpcTimeout: 10s
//	logLevel: debug
func LoadOptions(data []byte) (*Options, error) {
	var fo fileOptions
	if err := yaml.UnmarshalStrict(data, &fo); err != nil {
		return nil, fmt.Errorf("Unable to parse client options: %w", err)
	}
	opts := &Options{
		Address:        fo.Address,
		MaxInFlight:    fo.MaxInFlight,
		MaxRecvMsgSize: fo.MaxRecvMsgSize,
		LogLevel:       fo.LogLevel,
	}
	if len(fo.RPCTimeout) > 0 {
		d, err := time.ParseDuration(fo.RPCTimeout)
		if err != nil {
			return nil, fmt.Errorf("rpcTimeout \"%s\" is not a valid duration: %w", fo.RPCTimeout, err)
		}
		opts.RPCTimeout = d
	}
	if _, err := logging.LevelFilter(opts.LogLevel); err != nil {
		return nil, err
	}
	ensureDefaultOptionsValues(opts)
	return opts, nil
}
