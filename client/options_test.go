package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := &Options{}
	ensureDefaultOptionsValues(opts)
	require.Equal(t, "localhost:50056", opts.Address)
	require.Equal(t, 5*time.Second, opts.RPCTimeout)
	require.EqualValues(t, 8, opts.MaxInFlight)
	require.Equal(t, 64<<20, opts.MaxRecvMsgSize)
	require.Equal(t, "info", opts.LogLevel)
}

func TestCloneOptions(t *testing.T) {
	opts := &Options{Address: "a:1", RPCTimeout: time.Second, MaxInFlight: 2, MaxRecvMsgSize: 3, LogLevel: "debug"}
	clone := CloneOptions(opts)
	require.Equal(t, opts, clone)
	clone.Address = "b:2"
	require.Equal(t, "a:1", opts.Address)
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv(AddressEnv, "query:9000")
	t.Setenv(RPCTimeoutEnv, "250ms")
	t.Setenv(LogLevelEnv, "debug")
	opts, err := OptionsFromEnv()
	require.Nil(t, err)
	require.Equal(t, "query:9000", opts.Address)
	require.Equal(t, 250*time.Millisecond, opts.RPCTimeout)
	require.Equal(t, "debug", opts.LogLevel)
	require.EqualValues(t, 8, opts.MaxInFlight)
}

func TestOptionsFromEnvErrors(t *testing.T) {
	t.Setenv(RPCTimeoutEnv, "soon")
	_, err := OptionsFromEnv()
	require.Error(t, err)

	t.Setenv(RPCTimeoutEnv, "")
	t.Setenv(LogLevelEnv, "loud")
	_, err = OptionsFromEnv()
	require.Error(t, err)
}

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions([]byte("address: query.internal:50056\nrpcTimeout: 10s\nmaxInFlight: 2\n"))
	require.Nil(t, err)
	require.Equal(t, "query.internal:50056", opts.Address)
	require.Equal(t, 10*time.Second, opts.RPCTimeout)
	require.EqualValues(t, 2, opts.MaxInFlight)
	require.Equal(t, 64<<20, opts.MaxRecvMsgSize)

	_, err = LoadOptions([]byte("rpcTimeout: eventually\n"))
	require.Error(t, err)
	_, err = LoadOptions([]byte("adress: typo:1\n"))
	require.Error(t, err)
	_, err = LoadOptions([]byte("logLevel: loud\n"))
	require.Error(t, err)
}
