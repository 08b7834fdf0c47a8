package testing

import (
	"context"
	"net"

	"github.com/go-kit/log"
	"github.com/go-sif/remoteframe"
	"github.com/go-sif/remoteframe/client"
	"github.com/go-sif/remoteframe/server"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

// LocalServe serves collaborator over an in-process gRPC connection, returning a
// Client connected to it and a function which shuts both down
func LocalServe(collaborator remoteframe.Collaborator, sopts *server.Options, copts *client.Options) (*client.Client, func(), error) {
	if sopts == nil {
		sopts = &server.Options{}
	}
	sopts = server.CloneOptions(sopts)
	if sopts.Logger == nil {
		sopts.Logger = log.NewNopLogger()
	}
	srv, err := server.CreateServer(collaborator, sopts)
	if err != nil {
		return nil, nil, err
	}
	lis := bufconn.Listen(1 << 20)
	done := make(chan struct{})
	go func() {
		defer close(done)
		// Serve only fails once stopped
		_ = srv.Serve(lis)
	}()

	if copts == nil {
		copts = &client.Options{}
	}
	copts = client.CloneOptions(copts)
	copts.Address = "passthrough:///bufconn"
	c, err := client.DialWithLogger(copts, log.NewNopLogger(), grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		srv.Stop()
		<-done
		return nil, nil, err
	}
	stop := func() {
		c.Close()
		srv.Stop()
		<-done
	}
	return c, stop, nil
}
