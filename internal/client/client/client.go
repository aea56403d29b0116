package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/api"
	"github.com/dmitrijs2005/authkeeper/internal/client/config"
	"github.com/dmitrijs2005/authkeeper/internal/client/session"
	"github.com/dmitrijs2005/authkeeper/internal/client/tokens"
)

type Client interface {
	Register(ctx context.Context, email, password string) (*api.User, error)
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*api.TokenPair, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*api.ProfileResponse, error)
	Ping(ctx context.Context) error
	Close() error
}

// New builds the client selected by cfg.Transport and points sess at its
// Refresh call.
func New(cfg *config.Config, sess *session.Session) (Client, error) {
	var (
		c   Client
		err error
	)
	switch cfg.Transport {
	case config.TransportHTTP:
		c = NewHTTPClient(cfg.ServerURL, sess)
	case config.TransportGRPC:
		c, err = NewGRPCClient(cfg.GRPCAddr, sess)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}

	sess.SetRefreshFunc(RefreshFunc(c))
	return c, nil
}

// RefreshFunc adapts c.Refresh to the session's refresh hook.
func RefreshFunc(c Client) session.RefreshFunc {
	return func(ctx context.Context, refreshToken string) (tokens.Pair, error) {
		p, err := c.Refresh(ctx, refreshToken)
		if err != nil {
			return tokens.Pair{}, err
		}
		return tokens.Pair{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken}, nil
	}
}
