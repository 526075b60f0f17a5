// Package grpc exposes the NoteVault services over gRPC.
package grpc

import (
	"context"
	"errors"
	"net"

	"github.com/dmitrijs2005/notevault/internal/logging"
	"github.com/dmitrijs2005/notevault/internal/rpcapi"
	"github.com/dmitrijs2005/notevault/internal/server/metrics"
	"github.com/dmitrijs2005/notevault/internal/server/ratelimit"
	"github.com/dmitrijs2005/notevault/internal/server/services"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	address string
	auth    *services.AuthService
	notes   *services.NoteService
	guard   *services.OwnershipGuard
	limiter ratelimit.Limiter
	metrics *metrics.Metrics
	logger  logging.Logger
}

// NewGRPCServer builds a server for address. limiter and m may be nil, which
// disables login throttling and metrics respectively.
func NewGRPCServer(address string, l logging.Logger, as *services.AuthService, ns *services.NoteService,
	g *services.OwnershipGuard, limiter ratelimit.Limiter, m *metrics.Metrics) *GRPCServer {
	return &GRPCServer{
		address: address,
		auth:    as,
		notes:   ns,
		guard:   g,
		limiter: limiter,
		metrics: m,
		logger:  l.With("module", "grpc_server"),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.observeInterceptor,
		s.loginRateLimitInterceptor,
		s.accessTokenInterceptor,
	))
	rpcapi.RegisterNoteVaultServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	<-stopped
	return nil
}
