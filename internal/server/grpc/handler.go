package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/authkeeper/internal/api"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	user, err := s.svc.Register(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.RegisterResponse{Message: api.MsgRegistered, User: api.User{ID: user.ID, Email: user.Email}}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	res, err := s.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.LoginResponse{
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		User:         api.User{ID: res.User.ID, Email: res.User.Email},
	}, nil
}

func (s *GRPCServer) Refresh(ctx context.Context, req *api.RefreshRequest) (*api.TokenPair, error) {
	pair, err := s.svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.TokenPair{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *api.Empty) (*api.MessageResponse, error) {
	user, ok := userFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	if err := s.svc.Logout(ctx, user.ID); err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.MessageResponse{Message: api.MsgLoggedOut}, nil
}

func (s *GRPCServer) Profile(ctx context.Context, _ *api.Empty) (*api.ProfileResponse, error) {
	user, ok := userFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	p, err := s.svc.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return &api.ProfileResponse{ID: p.ID, Email: p.Email, CreatedAt: p.CreatedAt}, nil
}

func (s *GRPCServer) Ping(context.Context, *api.Empty) (*api.PingResponse, error) {
	return &api.PingResponse{Status: api.StatusOK}, nil
}

func (s *GRPCServer) fail(ctx context.Context, err error) error {
	st := toStatus(err)
	if status.Code(st) == codes.Internal {
		s.logger.Error(ctx, "rpc failed", "error", err)
	}
	return st
}

// toStatus maps the error taxonomy onto gRPC codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, common.ErrInvalidCredentials.Error())
	case errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	case errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, "user not found")
	case errors.Is(err, common.ErrConflict):
		return status.Error(codes.AlreadyExists, "user already exists")
	default:
		return status.Error(codes.Internal, common.ErrInternal.Error())
	}
}
