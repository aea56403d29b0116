package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/api"
	"github.com/dmitrijs2005/authkeeper/internal/client/session"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	conn *grpc.ClientConn
}

func NewGRPCClient(addr string, sess *session.Session) (*GRPCClient, error) {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName)),
		grpc.WithUnaryInterceptor(sess.UnaryClientInterceptor()),
	)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &GRPCClient{conn: conn}, nil
}

func (c *GRPCClient) Register(ctx context.Context, email, password string) (*api.User, error) {
	var resp api.RegisterResponse
	if err := c.invoke(ctx, api.MethodRegister, &api.RegisterRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *GRPCClient) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.invoke(ctx, api.MethodLogin, &api.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *GRPCClient) Refresh(ctx context.Context, refreshToken string) (*api.TokenPair, error) {
	var resp api.TokenPair
	if err := c.invoke(ctx, api.MethodRefresh, &api.RefreshRequest{RefreshToken: refreshToken}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *GRPCClient) Logout(ctx context.Context) error {
	var resp api.MessageResponse
	return c.invoke(ctx, api.MethodLogout, &api.Empty{}, &resp)
}

func (c *GRPCClient) Profile(ctx context.Context) (*api.ProfileResponse, error) {
	var resp api.ProfileResponse
	if err := c.invoke(ctx, api.MethodProfile, &api.Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	var resp api.PingResponse
	if err := c.invoke(ctx, api.MethodPing, &api.Empty{}, &resp); err != nil {
		return err
	}
	if resp.Status != api.StatusOK {
		return ErrUnavailable
	}
	return nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) invoke(ctx context.Context, method string, in, out any) error {
	return mapError(c.conn.Invoke(ctx, method, in, out))
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, session.ErrSessionExpired) {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrConflict, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
