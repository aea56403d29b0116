// Package grpc serves the auth service over gRPC using the JSON codec from
// internal/api.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"google.golang.org/grpc"
)

// AuthService is the part of services.AuthService the handlers use.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*services.UserInfo, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	GetProfile(ctx context.Context, userID string) (*services.Profile, error)
	Authenticate(accessToken string) (*services.UserInfo, error)
}

type GRPCServer struct {
	address string
	svc     AuthService
	logger  logging.Logger
}

func NewGRPCServer(address string, svc AuthService, l logging.Logger) *GRPCServer {
	return &GRPCServer{
		address: address,
		svc:     svc,
		logger:  l.With("module", "grpc_server"),
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis and stops gracefully on ctx cancel.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	RegisterAuthServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}
