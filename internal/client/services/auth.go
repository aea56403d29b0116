// Package services contains application services for the authkeeper client.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/api"
	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/tokens"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

// AuthService defines the account operations available to the CLI.
//
// Contract:
//   - Register: create an account; the caller is not logged in afterwards.
//   - Login: authenticate and keep the token pair in the cache.
//   - Logout: revoke server-side, then forget the tokens locally even when
//     the server call failed.
//   - Profile: fetch the current user; renewal happens underneath.
//   - IsAuthenticated: whether a refresh token is stored.
//
// Passwords are wiped after use.
type AuthService interface {
	Register(ctx context.Context, email string, password []byte) (*api.User, error)
	Login(ctx context.Context, email string, password []byte) (*api.User, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*api.ProfileResponse, error)
	IsAuthenticated(ctx context.Context) (bool, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	cache  *tokens.Cache
	logger logging.Logger
}

func NewAuthService(c client.Client, cache *tokens.Cache, logger logging.Logger) AuthService {
	return &authService{client: c, cache: cache, logger: logger}
}

func (a *authService) Register(ctx context.Context, email string, password []byte) (*api.User, error) {
	defer common.WipeByteArray(password)

	u, err := a.client.Register(ctx, email, string(password))
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return u, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*api.User, error) {
	defer common.WipeByteArray(password)

	resp, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := a.cache.Store(ctx, tokens.Pair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}); err != nil {
		return nil, fmt.Errorf("save tokens: %w", err)
	}
	return &resp.User, nil
}

// logoutTimeout caps the server call so a dead server does not block the
// local logout.
const logoutTimeout = 5 * time.Second

func (a *authService) Logout(ctx context.Context) error {
	callCtx, cancel := context.WithTimeout(ctx, logoutTimeout)
	defer cancel()

	callErr := a.client.Logout(callCtx)
	if callErr != nil {
		a.logger.Warn(ctx, "server logout failed", "error", callErr)
	}

	if err := a.cache.ClearAll(ctx); err != nil {
		return errors.Join(callErr, fmt.Errorf("clear tokens: %w", err))
	}
	if callErr != nil && !errors.Is(callErr, client.ErrUnauthorized) {
		return fmt.Errorf("logout: %w", callErr)
	}
	return nil
}

func (a *authService) Profile(ctx context.Context) (*api.ProfileResponse, error) {
	p, err := a.client.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return p, nil
}

func (a *authService) IsAuthenticated(ctx context.Context) (bool, error) {
	rt, err := a.cache.RefreshToken(ctx)
	if err != nil {
		return false, err
	}
	return rt != "", nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(context.Context) error {
	return a.client.Close()
}
