// Package session keeps a client authenticated: it attaches the cached
// access token to outgoing calls and, when the server rejects it, renews
// the pair exactly once no matter how many calls failed at the same time.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/client/tokens"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNoRefreshToken = errors.New("no refresh token")
	ErrSessionExpired = errors.New("session expired")
)

// DefaultRefreshTimeout bounds a single refresh call.
const DefaultRefreshTimeout = 10 * time.Second

const refreshKey = "refresh"

// RefreshFunc exchanges a refresh token for a new pair.
type RefreshFunc func(ctx context.Context, refreshToken string) (tokens.Pair, error)

type Session struct {
	cache     *tokens.Cache
	refresh   RefreshFunc
	timeout   time.Duration
	onExpired func()
	logger    logging.Logger
	group     singleflight.Group
}

type Option func(*Session)

func WithRefreshTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithOnExpired registers a callback run once per failed renewal, after
// both token slots have been cleared.
func WithOnExpired(fn func()) Option {
	return func(s *Session) { s.onExpired = fn }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func New(cache *tokens.Cache, refresh RefreshFunc, opts ...Option) *Session {
	s := &Session{
		cache:   cache,
		refresh: refresh,
		timeout: DefaultRefreshTimeout,
		logger:  logging.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetRefreshFunc replaces the refresh call. It must not be called while
// requests are in flight.
func (s *Session) SetRefreshFunc(fn RefreshFunc) { s.refresh = fn }

// SetOnExpired replaces the expiry callback. Same restriction as SetRefreshFunc.
func (s *Session) SetOnExpired(fn func()) { s.onExpired = fn }

func (s *Session) Cache() *tokens.Cache { return s.cache }

func (s *Session) AccessToken() string { return s.cache.AccessToken() }

// Renew returns an access token newer than staleAccess. Concurrent callers
// share one refresh; a caller whose ctx ends stops waiting but does not
// cancel the refresh for the others.
func (s *Session) Renew(ctx context.Context, staleAccess string) (string, error) {
	if cur := s.cache.AccessToken(); cur != "" && cur != staleAccess {
		return cur, nil
	}

	ch := s.group.DoChan(refreshKey, func() (any, error) {
		return s.renewFrom(context.WithoutCancel(ctx), staleAccess)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// renewFrom runs as the single-flight leader. A leader that finished just
// before this one started has already replaced staleAccess.
func (s *Session) renewFrom(ctx context.Context, staleAccess string) (string, error) {
	if cur := s.cache.AccessToken(); cur != "" && cur != staleAccess {
		return cur, nil
	}
	return s.doRefresh(ctx)
}

func (s *Session) doRefresh(ctx context.Context) (string, error) {
	refreshToken, err := s.cache.RefreshToken(ctx)
	if err != nil {
		return "", err
	}
	if refreshToken == "" {
		s.expire(ctx)
		return "", fmt.Errorf("%w: %w", ErrSessionExpired, ErrNoRefreshToken)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	pair, err := s.refresh(ctx, refreshToken)
	if err != nil {
		s.logger.Warn(ctx, "token refresh failed", "error", err)
		s.expire(ctx)
		return "", fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	if err := s.cache.Store(ctx, pair); err != nil {
		s.expire(ctx)
		return "", fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	s.logger.Debug(ctx, "tokens refreshed")
	return pair.AccessToken, nil
}

func (s *Session) expire(ctx context.Context) {
	if err := s.cache.ClearAll(ctx); err != nil {
		s.logger.Error(ctx, "clear tokens", "error", err)
	}
	if s.onExpired != nil {
		s.onExpired()
	}
}
